package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/franz/corpus-pages/internal/tab"
	"github.com/franz/corpus-pages/internal/util"
)

func writeCorpus(t *testing.T, root, corpus, content string) {
	t.Helper()
	dir := filepath.Join(root, corpus)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, MetadataFilename), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

const corpusA = "fname\tsubdirectory\tlast_mn\tlabel_count\tharmony_version\thas_drumset\n" +
	"n01\tscores/n01\t95\t320\t2.1.1\tTRUE\n" +
	"n02\tscores/n02\t120\t411\t2.1.1\tfalse\n"

const corpusB = "fname\tsubdirectory\tlast_mn\tlabel_count\tharmony_version\thas_drumset\n" +
	"op18\tMS3/op18\t80\t208\t2.1.0\t\n"

func TestConcatPrefixesRelPathsOnce(t *testing.T) {
	root := t.TempDir()
	writeCorpus(t, root, "beethoven", corpusA)
	writeCorpus(t, root, "mozart", corpusB)
	// A child directory without metadata is skipped, not an error
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	agg, err := Concat(root)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	if agg.Empty() {
		t.Fatal("Expected non-empty aggregate")
	}
	if agg.Frame.Nrow() != 3 {
		t.Fatalf("Expected 3 rows, got %d", agg.Frame.Nrow())
	}
	if agg.Frame.Columns[0] != CorpusColumn {
		t.Errorf("Expected corpus as first column, got %v", agg.Frame.Columns)
	}

	paths, err := agg.Frame.Col("subdirectory")
	if err != nil {
		t.Fatalf("Col failed: %v", err)
	}
	want := []string{"beethoven/scores/n01", "beethoven/scores/n02", "mozart/MS3/op18"}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("Row %d: subdirectory = %q, want %q", i, p, want[i])
		}
	}

	// Booleans were converted on load
	bools, err := agg.Frame.Col("has_drumset")
	if err != nil {
		t.Fatalf("Col failed: %v", err)
	}
	wantBools := []string{"1", "0", ""}
	for i, b := range bools {
		if b != wantBools[i] {
			t.Errorf("Row %d: has_drumset = %q, want %q", i, b, wantBools[i])
		}
	}
}

func TestConcatNoMetadata(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "child"), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	agg, err := Concat(root)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	if !agg.Empty() {
		t.Error("Expected empty aggregate for root without metadata files")
	}
}

func TestConcatAlignsReorderedColumns(t *testing.T) {
	root := t.TempDir()
	writeCorpus(t, root, "alpha", "fname\tsubdirectory\tlast_mn\nn01\tscores/n01\t95\n")
	writeCorpus(t, root, "beta", "subdirectory\tfname\tlast_mn\nMS3/op18\top18\t80\n")

	agg, err := Concat(root)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	// Columns align by name, so beta's values land in alpha's layout
	if got := agg.Frame.Cell(1, "fname"); got != "op18" {
		t.Errorf("fname = %q, want op18", got)
	}
	if got := agg.Frame.Cell(1, "subdirectory"); got != "beta/MS3/op18" {
		t.Errorf("subdirectory = %q, want beta/MS3/op18", got)
	}
}

func TestConcatUnionsColumnSets(t *testing.T) {
	root := t.TempDir()
	writeCorpus(t, root, "alpha", "fname\tsubdirectory\tlast_mn\nn01\tscores/n01\t95\n")
	writeCorpus(t, root, "beta", "fname\tsubdirectory\textra\nop18\tMS3/op18\ty\n")

	agg, err := Concat(root)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	// Columns absent from a table are filled with empty cells
	if got := agg.Frame.Cell(0, "extra"); got != "" {
		t.Errorf("alpha extra = %q, want empty", got)
	}
	if got := agg.Frame.Cell(1, "extra"); got != "y" {
		t.Errorf("beta extra = %q, want y", got)
	}
	if got := agg.Frame.Cell(1, "last_mn"); got != "" {
		t.Errorf("beta last_mn = %q, want empty", got)
	}
}

func TestConcatKeepsEmptyRelPathsEmpty(t *testing.T) {
	root := t.TempDir()
	writeCorpus(t, root, "alpha", "fname\tsubdirectory\nn01\tscores/n01\nn02\t\n")

	agg, err := Concat(root)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	if got := agg.Frame.Cell(0, "subdirectory"); got != "alpha/scores/n01" {
		t.Errorf("subdirectory = %q, want alpha/scores/n01", got)
	}
	// An empty path cell must not become the bare corpus name
	if got := agg.Frame.Cell(1, "subdirectory"); got != "" {
		t.Errorf("subdirectory = %q, want empty", got)
	}
}

func TestConcatFramesRejectsDuplicateColumns(t *testing.T) {
	broken := tab.New("fname", "fname")
	broken.Rows = [][]string{{"a", "b"}}

	_, err := concatFrames([]string{"broken"}, []*tab.Frame{broken})
	if !errors.Is(err, util.ErrAlignment) {
		t.Fatalf("Expected ErrAlignment, got %v", err)
	}
	// Diagnostic names the corpus and its column shape
	if !strings.Contains(err.Error(), "broken") || !strings.Contains(err.Error(), "fname") {
		t.Errorf("Diagnostic misses the table shape: %v", err)
	}
}

func TestConcatMissingPathColumn(t *testing.T) {
	root := t.TempDir()
	writeCorpus(t, root, "beethoven", "fname\tlast_mn\nn01\t95\n")

	_, err := Concat(root)
	if !errors.Is(err, util.ErrMissingColumn) {
		t.Fatalf("Expected ErrMissingColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), "subdirectory") {
		t.Errorf("Error should name the required column: %v", err)
	}
}

func TestConcatLegacyRelPathsColumn(t *testing.T) {
	root := t.TempDir()
	writeCorpus(t, root, "haydn", "fname\trel_paths\trel_path\nsym104\told/sym104\tdup/sym104\n")

	agg, err := Concat(root)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	if got := agg.Frame.Cell(0, "rel_paths"); got != "haydn/old/sym104" {
		t.Errorf("rel_paths = %q", got)
	}
	// The legacy duplicate column is rewritten identically
	if got := agg.Frame.Cell(0, "rel_path"); got != "haydn/dup/sym104" {
		t.Errorf("rel_path = %q", got)
	}
}

func TestParseTriState(t *testing.T) {
	cases := []struct{ in, want string }{
		{"t", "1"},
		{"TRUE", "1"},
		{"f", "0"},
		{"False", "0"},
		{"1", "1"},
		{"0", "0"},
		{"7", "1"},
		{"", ""},
		{"maybe", "maybe"},
	}
	for _, c := range cases {
		if got := ParseTriState(c.in); got != c.want {
			t.Errorf("ParseTriState(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestWriteTSVRejectsBadBooleans(t *testing.T) {
	frame := tab.New(CorpusColumn, "fname", "subdirectory", "has_drumset")
	frame.Rows = [][]string{{"x", "a", "x/a", "maybe"}}
	agg := &Aggregate{Frame: frame}

	err := agg.WriteTSV(filepath.Join(t.TempDir(), TSVFilename))
	if !errors.Is(err, util.ErrBadBoolean) {
		t.Fatalf("Expected ErrBadBoolean, got %v", err)
	}
}

func TestWriteTSVRoundTrip(t *testing.T) {
	root := t.TempDir()
	writeCorpus(t, root, "beethoven", corpusA)
	agg, err := Concat(root)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), TSVFilename)
	if err := agg.WriteTSV(path); err != nil {
		t.Fatalf("WriteTSV failed: %v", err)
	}
	again, err := tab.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if again.Nrow() != agg.Frame.Nrow() {
		t.Fatalf("Row count changed: %d vs %d", again.Nrow(), agg.Frame.Nrow())
	}
	for i, row := range agg.Frame.Rows {
		for j, cell := range row {
			if again.Rows[i][j] != cell {
				t.Errorf("Cell (%d,%d) changed: %q vs %q", i, j, again.Rows[i][j], cell)
			}
		}
	}
}
