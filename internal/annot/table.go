// Package annot models expanded harmony-annotation tables as exported by
// the upstream score parser: one row per label with measure position,
// time signature, key and phrase information.
package annot

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/franz/corpus-pages/internal/tab"
)

// Column names of the annotation-table export format.
const (
	ColMN           = "mn"
	ColMNOnset      = "mn_onset"
	ColTimesig      = "timesig"
	ColMNFraction   = "mn_fraction"
	ColGlobalKey    = "globalkey"
	ColLocalKey     = "localkey"
	ColNumeral      = "numeral"
	ColRelativeRoot = "relativeroot"
	ColPhraseEnd    = "phraseend"
)

// phraseEndTokens are the markers closing a phrase in the annotation
// standard (phrase end, interlocked phrase end, end-and-begin).
var phraseEndTokens = map[string]bool{
	`\\`: true,
	"}":  true,
	"}{": true,
}

// Table is an expanded annotation table.
type Table struct {
	Frame *tab.Frame
}

// ReadFile loads an annotation table from a TSV export.
func ReadFile(path string) (*Table, error) {
	frame, err := tab.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Table{Frame: frame}, nil
}

// GlobalKey returns the score's annotated global key: the first non-empty
// value of the globalkey column, or "" when the column is absent or empty.
func (t *Table) GlobalKey() string {
	values, err := t.Frame.Col(ColGlobalKey)
	if err != nil {
		return ""
	}
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// LastMN returns the highest measure number in the table.
func (t *Table) LastMN() (int, error) {
	values, err := t.Frame.Col(ColMN)
	if err != nil {
		return 0, fmt.Errorf("annotation table: %w", err)
	}
	last := 0
	for i, v := range values {
		mn, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("annotation table: mn row %d: %w", i, err)
		}
		if mn > last {
			last = mn
		}
	}
	return last, nil
}

// Positions returns each row's fractional-measure position. An existing
// mn_fraction column is used verbatim; otherwise the column is computed
// as mn + mn_onset/timesig and inserted right after mn for later callers.
func (t *Table) Positions() ([]float64, error) {
	if !t.Frame.HasColumn(ColMNFraction) {
		if err := t.computeMNFraction(); err != nil {
			return nil, err
		}
	}
	values, err := t.Frame.Col(ColMNFraction)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("annotation table: mn_fraction row %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

func (t *Table) computeMNFraction() error {
	mnIdx := t.Frame.ColIndex(ColMN)
	if mnIdx < 0 {
		return fmt.Errorf("annotation table: no column %q", ColMN)
	}
	values := make([]string, t.Frame.Nrow())
	for i := range t.Frame.Rows {
		mn, err := t.Frame.Int(i, ColMN)
		if err != nil {
			return fmt.Errorf("annotation table: %w", err)
		}
		onset, err := parseFraction(t.Frame.Cell(i, ColMNOnset))
		if err != nil {
			return fmt.Errorf("annotation table: mn_onset row %d: %w", i, err)
		}
		timesig, err := parseFraction(t.Frame.Cell(i, ColTimesig))
		if err != nil {
			return fmt.Errorf("annotation table: timesig row %d: %w", i, err)
		}
		position := float64(mn)
		if timesig != 0 {
			position += onset / timesig
		}
		values[i] = strconv.FormatFloat(position, 'g', -1, 64)
	}
	return t.Frame.InsertCol(mnIdx+1, ColMNFraction, values)
}

// PhraseEnds returns the fractional-measure positions of all rows whose
// phrase-end marker closes a phrase, in table order. Tables without a
// phraseend column have no phrase markers.
func (t *Table) PhraseEnds() ([]float64, error) {
	markers, err := t.Frame.Col(ColPhraseEnd)
	if err != nil {
		return nil, nil
	}
	positions, err := t.Positions()
	if err != nil {
		return nil, err
	}
	var out []float64
	for i, marker := range markers {
		if phraseEndTokens[marker] {
			out = append(out, positions[i])
		}
	}
	return out, nil
}

// parseFraction parses "a/b", integer, or decimal text as a float.
// Empty text parses as zero.
func parseFraction(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return 0, fmt.Errorf("invalid fraction %q", s)
	}
	f, _ := r.Float64()
	return f, nil
}
