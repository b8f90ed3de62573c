// Package tab provides string-typed tabular frames backed by tab-separated
// files. Loading goes through gota with type detection disabled so that
// every cell survives as its original text; empty cells stay empty strings.
package tab

import (
	"fmt"
	"os"
	"strconv"
)

// Frame is an ordered table of string cells.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// New creates an empty frame with the given columns.
func New(columns ...string) *Frame {
	return &Frame{Columns: columns}
}

// Nrow returns the number of rows.
func (f *Frame) Nrow() int {
	return len(f.Rows)
}

// ColIndex returns the position of a column, or -1 if absent.
func (f *Frame) ColIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the frame has a column of the given name.
func (f *Frame) HasColumn(name string) bool {
	return f.ColIndex(name) >= 0
}

// Col returns all values of a column in row order. The frame must have
// the column.
func (f *Frame) Col(name string) ([]string, error) {
	idx := f.ColIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("no column %q in frame", name)
	}
	values := make([]string, len(f.Rows))
	for i, row := range f.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// SetCol replaces all values of an existing column.
func (f *Frame) SetCol(name string, values []string) error {
	idx := f.ColIndex(name)
	if idx < 0 {
		return fmt.Errorf("no column %q in frame", name)
	}
	if len(values) != len(f.Rows) {
		return fmt.Errorf("column %q: %d values for %d rows", name, len(values), len(f.Rows))
	}
	for i := range f.Rows {
		f.Rows[i][idx] = values[i]
	}
	return nil
}

// InsertCol inserts a new column at the given position.
func (f *Frame) InsertCol(pos int, name string, values []string) error {
	if len(values) != len(f.Rows) && len(f.Rows) > 0 {
		return fmt.Errorf("column %q: %d values for %d rows", name, len(values), len(f.Rows))
	}
	if pos < 0 || pos > len(f.Columns) {
		return fmt.Errorf("column %q: position %d out of range", name, pos)
	}
	f.Columns = append(f.Columns[:pos], append([]string{name}, f.Columns[pos:]...)...)
	for i := range f.Rows {
		row := f.Rows[i]
		f.Rows[i] = append(row[:pos], append([]string{values[i]}, row[pos:]...)...)
	}
	return nil
}

// RenameCol renames a column in place. Renaming a missing column is a no-op.
func (f *Frame) RenameCol(from, to string) {
	if idx := f.ColIndex(from); idx >= 0 {
		f.Columns[idx] = to
	}
}

// Select returns a new frame holding only the named columns, in the given
// order. The rows share no storage with the receiver.
func (f *Frame) Select(columns ...string) (*Frame, error) {
	indices := make([]int, len(columns))
	for i, name := range columns {
		idx := f.ColIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("no column %q in frame", name)
		}
		indices[i] = idx
	}
	out := &Frame{Columns: append([]string(nil), columns...)}
	for _, row := range f.Rows {
		selected := make([]string, len(indices))
		for i, idx := range indices {
			selected[i] = row[idx]
		}
		out.Rows = append(out.Rows, selected)
	}
	return out, nil
}

// Float parses the cell at (row, column) as a float.
func (f *Frame) Float(row int, column string) (float64, error) {
	idx := f.ColIndex(column)
	if idx < 0 {
		return 0, fmt.Errorf("no column %q in frame", column)
	}
	v, err := strconv.ParseFloat(f.Rows[row][idx], 64)
	if err != nil {
		return 0, fmt.Errorf("column %q row %d: %w", column, row, err)
	}
	return v, nil
}

// Int parses the cell at (row, column) as an integer.
func (f *Frame) Int(row int, column string) (int, error) {
	idx := f.ColIndex(column)
	if idx < 0 {
		return 0, fmt.Errorf("no column %q in frame", column)
	}
	v, err := strconv.Atoi(f.Rows[row][idx])
	if err != nil {
		return 0, fmt.Errorf("column %q row %d: %w", column, row, err)
	}
	return v, nil
}

// Cell returns the cell at (row, column), or "" for a missing column.
func (f *Frame) Cell(row int, column string) string {
	idx := f.ColIndex(column)
	if idx < 0 {
		return ""
	}
	return f.Rows[row][idx]
}

// WriteFile writes the frame to a tab-separated file.
func (f *Frame) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := f.Write(file); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}
