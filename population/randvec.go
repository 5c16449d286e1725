// Package population - fixed-cardinality random binary vectors.
//
// Tournament selection needs a vector with exactly k ones among n slots,
// chosen uniformly. The sparse path draws distinct indices by rejection; for
// k > n/2 it builds the complement (n-k ones) and flips it, which keeps the
// expected number of draws below 2·min(k, n-k).
package population

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidCardinality indicates k ∉ [0, n] or n <= 0.
var ErrInvalidCardinality = errors.New("population: cardinality out of range")

// RandomVector returns a length-n vector with exactly k ones at uniformly
// random positions.
//
// Errors: ErrInvalidCardinality.
// Complexity: O(n) expected.
func RandomVector(rng *rand.Rand, k, n int) ([]uint8, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidCardinality, n)
	}
	dst := make([]uint8, n)
	if err := FillRandomVector(rng, dst, k); err != nil {
		return nil, err
	}

	return dst, nil
}

// FillRandomVector overwrites dst with exactly k ones at uniformly random
// positions. It never allocates.
//
// Errors: ErrInvalidCardinality when len(dst) == 0 or k ∉ [0, len(dst)].
func FillRandomVector(rng *rand.Rand, dst []uint8, k int) error {
	n := len(dst)
	if n == 0 || k < 0 || k > n {
		return fmt.Errorf("%w: k=%d n=%d", ErrInvalidCardinality, k, n)
	}
	fillRandomVector(rng, dst, k)

	return nil
}

// fillRandomVector is the unchecked kernel: 0 <= k <= len(dst).
func fillRandomVector(rng *rand.Rand, dst []uint8, k int) {
	n := len(dst)
	switch {
	case k == 0:
		clear(dst)
	case k == n:
		for i := range dst {
			dst[i] = 1
		}
	case k <= n/2:
		scatterOnes(rng, dst, k)
	default:
		scatterOnes(rng, dst, n-k)
		for i := range dst {
			dst[i] ^= 1
		}
	}
}

// scatterOnes zeroes dst and sets k distinct random slots to 1.
// The counter advances only when a fresh slot is hit.
func scatterOnes(rng *rand.Rand, dst []uint8, k int) {
	clear(dst)
	n := len(dst)
	for placed := 0; placed < k; {
		idx := rng.Intn(n)
		if dst[idx] == 0 {
			dst[idx] = 1
			placed++
		}
	}
}
