// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the integer vector kernels used by fitness evaluation and
//     tournament selection: mat-vec product, in-place threshold, in-place
//     elementwise product, argmax.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - All kernels write into caller-provided buffers; nothing allocates.
//   - Totals accumulate in int64: a row of N cells times int32 values cannot
//     overflow for any N that fits in memory.

package matrix

// MulVec computes dst[i] = Σ_j m[i,j]·v[j] for every row i.
//
// Contracts:
//   - len(v) == m.Cols(), len(dst) == m.Rows(); else ErrDimensionMismatch.
//
// Complexity: O(r*c) time, O(1) extra space.
func (m *Dense) MulVec(dst []int64, v []int32) error {
	if len(v) != m.c || len(dst) != m.r {
		return matrixErrorf("MulVec", ErrDimensionMismatch)
	}

	var (
		i, j int
		acc  int64
		row  []uint8
	)
	for i = 0; i < m.r; i++ {
		row = m.data[i*m.c : (i+1)*m.c]
		acc = 0
		for j = 0; j < m.c; j++ {
			// Cells are 0/1, so the product is a masked add.
			acc += int64(row[j]) * int64(v[j])
		}
		dst[i] = acc
	}

	return nil
}

// ThresholdLE rewrites v in place: v[i] = 1 if v[i] <= limit, else 0.
// Complexity: O(n).
func ThresholdLE(v []int64, limit int64) {
	for i, x := range v {
		if x <= limit {
			v[i] = 1
		} else {
			v[i] = 0
		}
	}
}

// MulElem rewrites dst in place: dst[i] *= src[i].
// Returns ErrDimensionMismatch when lengths differ.
// Complexity: O(n).
func MulElem(dst, src []int64) error {
	if len(dst) != len(src) {
		return matrixErrorf("MulElem", ErrDimensionMismatch)
	}
	for i := range dst {
		dst[i] *= src[i]
	}

	return nil
}

// ArgMax returns the index of the first maximum of v.
// Returns ErrEmptyVector for len(v) == 0.
// Complexity: O(n).
func ArgMax(v []int64) (int, error) {
	if len(v) == 0 {
		return 0, matrixErrorf("ArgMax", ErrEmptyVector)
	}

	best := 0
	for i := 1; i < len(v); i++ {
		// Strict > keeps the first occurrence on ties.
		if v[i] > v[best] {
			best = i
		}
	}

	return best, nil
}

// ArgMaxMasked returns the index of the first maximum of the masked vector
// w[i] = mask[i]·v[i], without materialising w. Unselected slots count as 0,
// so when every selected value is <= 0 the lowest index holding the maximum
// of w wins, whether or not it was selected.
//
// Contracts:
//   - len(mask) == len(v) > 0; else ErrDimensionMismatch / ErrEmptyVector.
//
// Complexity: O(n).
func ArgMaxMasked(mask []uint8, v []int64) (int, error) {
	if len(mask) != len(v) {
		return 0, matrixErrorf("ArgMaxMasked", ErrDimensionMismatch)
	}
	if len(v) == 0 {
		return 0, matrixErrorf("ArgMaxMasked", ErrEmptyVector)
	}

	var (
		best    int
		bestVal = int64(mask[0]) * v[0]
		w       int64
	)
	for i := 1; i < len(v); i++ {
		w = int64(mask[i]) * v[i]
		if w > bestVal {
			best, bestVal = i, w
		}
	}

	return best, nil
}

// Max returns the maximum value of v.
// Returns ErrEmptyVector for len(v) == 0.
func Max(v []int64) (int64, error) {
	i, err := ArgMax(v)
	if err != nil {
		return 0, err
	}

	return v[i], nil
}
