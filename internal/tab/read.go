package tab

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/unicode/norm"
)

// Read parses tab-separated data with a header row. Type detection is
// disabled so every column comes back string-typed, and all cell values are
// normalized to NFC (corpus file names routinely carry combining accents).
func Read(r io.Reader) (*Frame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.WithDelimiter('\t'),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parsing TSV: %w", df.Err)
	}
	records := df.Records()
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing TSV: no header row")
	}
	frame := &Frame{Columns: normalize(records[0])}
	for _, rec := range records[1:] {
		frame.Rows = append(frame.Rows, normalize(rec))
	}
	return frame, nil
}

// ReadFile parses a tab-separated file with a header row.
func ReadFile(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()
	frame, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return frame, nil
}

func normalize(record []string) []string {
	out := make([]string, len(record))
	for i, v := range record {
		// gota spells missing values as "NaN"; keep cells empty instead
		if v == "NaN" {
			v = ""
		}
		out[i] = norm.NFC.String(v)
	}
	return out
}
