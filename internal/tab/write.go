package tab

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Write writes the frame as tab-separated values with a header row.
func (f *Frame) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(f.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range f.Rows {
		if len(row) != len(f.Columns) {
			return fmt.Errorf("row %d has %d cells for %d columns", i, len(row), len(f.Columns))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
