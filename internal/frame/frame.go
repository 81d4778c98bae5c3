// Package frame implements the in-memory relation the ETL pipeline
// operates on: an ordered set of named columns over rows of values.
package frame

import (
	"fmt"
	"strings"
)

// Frame is a named relation: ordered columns and rows of values.
// A nil cell value represents SQL NULL.
type Frame struct {
	name string
	cols []string
	rows [][]any
}

// New creates an empty frame with the given relation name and columns.
func New(name string, cols []string) *Frame {
	return &Frame{
		name: name,
		cols: append([]string(nil), cols...),
	}
}

// Name returns the relation name.
func (f *Frame) Name() string {
	return f.name
}

// Columns returns the ordered column names.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.cols...)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Append adds a row. The value count must match the column count.
func (f *Frame) Append(values ...any) error {
	if len(values) != len(f.cols) {
		return fmt.Errorf("frame %s: row has %d values, want %d",
			f.name, len(values), len(f.cols))
	}
	f.rows = append(f.rows, values)
	return nil
}

// Row returns the i-th row. The slice is shared, not copied.
func (f *Frame) Row(i int) []any {
	return f.rows[i]
}

// colIndex returns the position of a column, or -1.
func (f *Frame) colIndex(name string) int {
	for i, c := range f.cols {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the frame has the named column.
func (f *Frame) HasColumn(name string) bool {
	return f.colIndex(name) >= 0
}

// Value returns the cell at row i, column name. Unknown columns yield nil.
func (f *Frame) Value(i int, name string) any {
	idx := f.colIndex(name)
	if idx < 0 {
		return nil
	}
	return f.rows[i][idx]
}

// Rename renames columns according to the given old→new map. Renaming a
// column to a name that is already in use removes the existing column;
// the renamed column wins. Old names not present are ignored.
func (f *Frame) Rename(renames map[string]string) {
	for old, next := range renames {
		idx := f.colIndex(old)
		if idx < 0 || old == next {
			continue
		}
		// An existing column under the target name gets displaced.
		if clash := f.colIndex(next); clash >= 0 {
			f.removeColumn(clash)
			if clash < idx {
				idx--
			}
		}
		f.cols[idx] = next
	}
}

// Drop removes the named columns. Dropping a column that does not exist
// is a no-op, never an error.
func (f *Frame) Drop(names ...string) {
	for _, name := range names {
		if idx := f.colIndex(name); idx >= 0 {
			f.removeColumn(idx)
		}
	}
}

func (f *Frame) removeColumn(idx int) {
	f.cols = append(f.cols[:idx], f.cols[idx+1:]...)
	for i, row := range f.rows {
		f.rows[i] = append(row[:idx], row[idx+1:]...)
	}
}

// Pick returns a new frame containing only the named columns, in the
// given order. Unknown columns are an error.
func (f *Frame) Pick(names ...string) (*Frame, error) {
	idxs := make([]int, len(names))
	for i, name := range names {
		idx := f.colIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("frame %s: no column %q", f.name, name)
		}
		idxs[i] = idx
	}
	out := New(f.name, names)
	for _, row := range f.rows {
		picked := make([]any, len(idxs))
		for i, idx := range idxs {
			picked[i] = row[idx]
		}
		out.rows = append(out.rows, picked)
	}
	return out, nil
}

// Apply replaces each value of the named column with fn(value). Applying
// to a missing column is an error: normalization depends on the column
// being present.
func (f *Frame) Apply(name string, fn func(any) any) error {
	idx := f.colIndex(name)
	if idx < 0 {
		return fmt.Errorf("frame %s: no column %q", f.name, name)
	}
	for _, row := range f.rows {
		row[idx] = fn(row[idx])
	}
	return nil
}

// InnerJoin performs an inner equi-join with the right frame on the given
// key columns. Rows without a counterpart on the other side are dropped
// silently. A left row matching K right rows produces K output rows
// (fan-out). Output columns are the left columns followed by the right
// columns minus the join keys.
func (f *Frame) InnerJoin(right *Frame, on ...string) (*Frame, error) {
	leftKey := make([]int, len(on))
	rightKey := make([]int, len(on))
	for i, name := range on {
		li, ri := f.colIndex(name), right.colIndex(name)
		if li < 0 {
			return nil, fmt.Errorf("frame %s: no join column %q", f.name, name)
		}
		if ri < 0 {
			return nil, fmt.Errorf("frame %s: no join column %q", right.name, name)
		}
		leftKey[i], rightKey[i] = li, ri
	}

	// Right-side columns carried into the output.
	var carry []int
	cols := f.Columns()
	for i, c := range right.cols {
		keyCol := false
		for _, ri := range rightKey {
			if i == ri {
				keyCol = true
				break
			}
		}
		if !keyCol {
			carry = append(carry, i)
			cols = append(cols, c)
		}
	}

	// Hash the right side by key.
	byKey := make(map[string][][]any)
	for _, row := range right.rows {
		k := joinKey(row, rightKey)
		byKey[k] = append(byKey[k], row)
	}

	out := New(f.name, cols)
	for _, lrow := range f.rows {
		for _, rrow := range byKey[joinKey(lrow, leftKey)] {
			joined := make([]any, 0, len(cols))
			joined = append(joined, lrow...)
			for _, ci := range carry {
				joined = append(joined, rrow[ci])
			}
			out.rows = append(out.rows, joined)
		}
	}
	return out, nil
}

func joinKey(row []any, idxs []int) string {
	parts := make([]string, len(idxs))
	for i, idx := range idxs {
		parts[i] = fmt.Sprintf("%v", row[idx])
	}
	return strings.Join(parts, "\x1f")
}
