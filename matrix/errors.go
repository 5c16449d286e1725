// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All public functions return these sentinels (possibly wrapped with call-site
// context via %w); tests match them with errors.Is.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand lengths, e.g. MulVec
	// with len(v) != Cols() or len(dst) != Rows().
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonBinary signals a cell value other than 0 or 1.
	ErrNonBinary = errors.New("matrix: cell value must be 0 or 1")

	// ErrEmptyVector is returned by reductions (ArgMax, Max) over an empty vector.
	ErrEmptyVector = errors.New("matrix: empty vector")
)

// denseErrorf wraps an error with a uniform Dense context and call-site indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// matrixErrorf wraps an error with the name of the failing operation.
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("matrix.%s: %w", op, err)
}
