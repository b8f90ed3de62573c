// Package metadata aggregates per-corpus metadata tables into a single
// table and a Markdown overview for meta-repositories.
package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/franz/corpus-pages/internal/tab"
	"github.com/franz/corpus-pages/internal/util"
)

// MetadataFilename is the per-corpus metadata file looked for in each
// immediate child directory of the repository root.
const MetadataFilename = "metadata.tsv"

// CorpusColumn is the grouping column added to the concatenated table.
const CorpusColumn = "corpus"

// BooleanColumns are stored as nullable tri-state integers (0/1/empty)
// in the concatenated TSV.
var BooleanColumns = []string{"has_drumset"}

// Column-name compatibility shim. Earlier corpus releases used different
// names for the relative-path and file-name columns; both generations are
// accepted, with the first listed name being the canonical one.
var (
	RelPathColumns  = []string{"subdirectory", "rel_paths"}
	FileNameColumns = []string{"fname", "fnames"}
)

// ResolveColumn returns the first of the candidate column names present in
// the frame. The second return is false when none is.
func ResolveColumn(frame *tab.Frame, candidates []string) (string, bool) {
	for i, name := range candidates {
		if frame.HasColumn(name) {
			if i > 0 {
				util.WarnLog("Using legacy column name %q; the canonical name is %q", name, candidates[0])
			}
			return name, true
		}
	}
	return "", false
}

// Aggregate is the concatenated metadata of all corpora under a root.
type Aggregate struct {
	// Frame holds the concatenated table with the corpus column first.
	Frame *tab.Frame
}

// Empty reports whether no per-corpus metadata was found.
func (a *Aggregate) Empty() bool {
	return a.Frame == nil || a.Frame.Nrow() == 0
}

// Concat walks the immediate child directories of root in sorted order,
// loads each metadata.tsv found, and concatenates the tables keyed by
// corpus name. Relative-path columns are rewritten to be rooted at root.
// An empty Aggregate is returned when no metadata files exist.
func Concat(root string) (*Aggregate, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	// os.ReadDir yields entries sorted by name, which fixes the corpus order
	var corpora []string
	var frames []*tab.Frame
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name(), MetadataFilename)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		frame, err := loadCorpus(path)
		if err != nil {
			return nil, err
		}
		corpora = append(corpora, entry.Name())
		frames = append(frames, frame)
	}
	if len(frames) == 0 {
		return &Aggregate{}, nil
	}

	concatenated, err := concatFrames(corpora, frames)
	if err != nil {
		return nil, err
	}
	if err := rewriteRelPaths(concatenated); err != nil {
		return nil, err
	}
	return &Aggregate{Frame: concatenated}, nil
}

// loadCorpus reads one per-corpus metadata table, converting the known
// boolean columns through the tri-state parser.
func loadCorpus(path string) (*tab.Frame, error) {
	frame, err := tab.ReadFile(path)
	if err != nil {
		return nil, err
	}
	for _, column := range BooleanColumns {
		values, err := frame.Col(column)
		if err != nil {
			continue // corpus has no such column
		}
		for i, v := range values {
			values[i] = ParseTriState(v)
		}
		if err := frame.SetCol(column, values); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

// ParseTriState maps boolean-ish text to "1"/"0". The tokens t/true/f/false
// are matched case-insensitively; any value convertible to an integer is
// read as its truth value; everything else passes through unchanged.
func ParseTriState(s string) string {
	switch strings.ToLower(s) {
	case "t", "true":
		return "1"
	case "f", "false":
		return "0"
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		if n != 0 {
			return "1"
		}
		return "0"
	}
	return s
}

// concatFrames stacks the per-corpus frames aligned by column name: the
// output columns are the union of all tables' columns in first-appearance
// order, cells absent from a table stay empty, and the corpus column comes
// first. A table carrying the same column twice cannot be aligned.
func concatFrames(corpora []string, frames []*tab.Frame) (*tab.Frame, error) {
	var columns []string
	seen := make(map[string]bool)
	for i, frame := range frames {
		for _, column := range frame.Columns {
			if !seen[column] {
				seen[column] = true
				columns = append(columns, column)
			}
		}
		if dup := firstDuplicate(frame.Columns); dup != "" {
			return nil, fmt.Errorf("%w: corpus %s (%s) lists the column %q more than once",
				util.ErrAlignment, corpora[i], strings.Join(frame.Columns, ", "), dup)
		}
	}
	out := tab.New(append([]string{CorpusColumn}, columns...)...)
	for i, frame := range frames {
		for r := range frame.Rows {
			row := make([]string, 0, len(columns)+1)
			row = append(row, corpora[i])
			for _, column := range columns {
				row = append(row, frame.Cell(r, column))
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

func firstDuplicate(columns []string) string {
	seen := make(map[string]bool, len(columns))
	for _, column := range columns {
		if seen[column] {
			return column
		}
		seen[column] = true
	}
	return ""
}

// rewriteRelPaths prefixes every relative-path value with its owning corpus
// name. A legacy-named duplicate path column, if present, is rewritten too.
func rewriteRelPaths(frame *tab.Frame) error {
	column, ok := ResolveColumn(frame, RelPathColumns)
	if !ok {
		return fmt.Errorf("%w: metadata is expected to come with a column called %q or (previously) %q",
			util.ErrMissingColumn, RelPathColumns[0], RelPathColumns[1])
	}
	targets := []string{column}
	if frame.HasColumn("rel_path") {
		targets = append(targets, "rel_path")
	}
	corpora, err := frame.Col(CorpusColumn)
	if err != nil {
		return err
	}
	for _, target := range targets {
		values, err := frame.Col(target)
		if err != nil {
			return err
		}
		for i, v := range values {
			// filepath.Join would turn an empty cell into the bare corpus name
			if v == "" {
				continue
			}
			values[i] = filepath.Join(corpora[i], v)
		}
		if err := frame.SetCol(target, values); err != nil {
			return err
		}
	}
	return nil
}

