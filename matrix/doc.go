// SPDX-License-Identifier: MIT

// Package matrix provides the dense binary gene matrix used to store a
// generation of individuals, plus the small integer vector kernels the
// evolution engine needs on its hot path.
//
// The package provides:
//
//   - Dense: a row-major M×N matrix of 0/1 cells stored in one flat []uint8
//     buffer. Row i is the gene vector of individual i and RowView returns it
//     without copying, so reproduction can write children straight into the
//     scratch generation.
//   - MulVec: the matrix-vector product of a generation with a per-object
//     column (weights, sizes or costs), accumulated in int64.
//   - ThresholdLE, MulElem, ArgMax, ArgMaxMasked: elementwise kernels used to
//     turn raw totals into fitness and to pick tournament winners.
//
// Determinism:
//
//	All loops run in fixed index order; ties in ArgMax resolve to the lowest
//	index. The same inputs always produce the same outputs.
//
// Errors:
//
//	Public accessors never panic on user input. They return the sentinels in
//	errors.go (ErrInvalidDimensions, ErrOutOfRange, ErrDimensionMismatch,
//	ErrNonBinary, ErrEmptyVector). RowView is the one exception: it is the
//	unchecked hot-path accessor and follows slice-indexing semantics.
package matrix
