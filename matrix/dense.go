// SPDX-License-Identifier: MIT

// Package matrix - Dense binary storage (row-major) & safe accessors.
//
// Purpose:
//   - Keep a whole generation in one contiguous buffer with the explicit index
//     formula i*cols + j, so the evaluator streams it row by row.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Expose RowView for the hot path: a no-copy window into row i that
//     reproduction writes children into.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); RowView: O(1); Clone/CopyFrom: O(r*c).

package matrix

import (
	"bytes"
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt   = "At"
	ctxSet  = "Set"
	ctxRow  = "Row"
	ctxFrom = "FromRows"
	ctxCopy = "CopyFrom"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = " "
)

// Dense is a concrete row-major binary matrix.
//   - r,c hold dimensions (rows, cols), both > 0.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - every cell is 0 or 1; Set and the constructors enforce it.
type Dense struct {
	r, c int     // row and column counts
	data []uint8 // contiguous row-major storage (len == r*c)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate a zero-filled buffer.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]uint8, rows*cols)}, nil
}

// FromRows builds a Dense by copying a rectangular [][]uint8.
// All rows must have the same non-zero length.
//
// Complexity: O(r*c).
func FromRows(rows [][]uint8) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	d, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}

	var i, j int
	for i = 0; i < d.r; i++ {
		if len(rows[i]) != d.c {
			return nil, denseErrorf(ctxFrom, i, len(rows[i]), ErrDimensionMismatch)
		}
		for j = 0; j < d.c; j++ {
			if rows[i][j] > 1 {
				return nil, denseErrorf(ctxFrom, i, j, ErrNonBinary)
			}
			d.data[i*d.c+j] = rows[i][j]
		}
	}

	return d, nil
}

// Rows returns the number of rows (individuals).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns (genes per individual).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (uint8, error) {
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col). v must be 0 or 1.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v uint8) error {
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	if v > 1 {
		return denseErrorf(ctxSet, row, col, ErrNonBinary)
	}
	m.data[idx] = v

	return nil
}

// Row returns a copy of row i.
// Complexity: O(c).
func (m *Dense) Row(i int) ([]uint8, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]uint8, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// RowView returns row i as a slice sharing the matrix storage.
// Writes through the slice mutate the matrix. The capacity is clipped to the
// row so appends never bleed into row i+1.
//
// RowView does not validate i; an out-of-range index panics like slice indexing.
// Complexity: O(1).
func (m *Dense) RowView(i int) []uint8 {
	lo := i * m.c

	return m.data[lo : lo+m.c : lo+m.c]
}

// Data returns the flat row-major backing slice (no copy).
func (m *Dense) Data() []uint8 { return m.data }

// Clone returns a deep copy of the matrix.
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]uint8, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// CopyFrom overwrites m with the contents of src. Shapes must match.
// Complexity: O(r*c), no allocation.
func (m *Dense) CopyFrom(src *Dense) error {
	if src == nil || src.r != m.r || src.c != m.c {
		return matrixErrorf(ctxCopy, ErrDimensionMismatch)
	}
	copy(m.data, src.data)

	return nil
}

// Equal reports whether m and o have the same shape and identical cells.
func (m *Dense) Equal(o *Dense) bool {
	if m == nil || o == nil {
		return m == o
	}

	return m.r == o.r && m.c == o.c && bytes.Equal(m.data, o.data)
}

// Ones returns the number of 1-cells in row i. It does not validate i.
func (m *Dense) Ones(i int) int {
	var n int
	for _, v := range m.RowView(i) {
		n += int(v)
	}

	return n
}

// String implements fmt.Stringer: one bracketed row per line.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var sb strings.Builder
	sb.Grow(m.r * (2*m.c + 2))

	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			sb.WriteByte('0' + m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
