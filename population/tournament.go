package population

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/genet/matrix"
)

// ErrTournamentSize indicates a tournament size outside [1, len(fitness)].
var ErrTournamentSize = errors.New("population: tournament size out of range")

// Tournament samples k distinct contestants uniformly from the len(fitness)
// individuals and returns the index of the fittest one.
//
// The winner is the argmax of mask·fitness with the first index winning
// ties. When every contestant scores 0 the masked vector is all zero and the
// lowest index of the whole population is returned, contestant or not.
//
// mask is an optional scratch buffer of length len(fitness); pass nil to let
// Tournament allocate one.
//
// Errors: ErrTournamentSize, matrix.ErrDimensionMismatch (mask length).
// Complexity: O(M) time.
func Tournament(rng *rand.Rand, fitness []int64, k int, mask []uint8) (int, error) {
	m := len(fitness)
	if k < 1 || k > m {
		return 0, fmt.Errorf("%w: k=%d population=%d", ErrTournamentSize, k, m)
	}
	if mask == nil {
		mask = make([]uint8, m)
	} else if len(mask) != m {
		return 0, fmt.Errorf("population: mask length %d for %d individuals: %w",
			len(mask), m, matrix.ErrDimensionMismatch)
	}

	return tournament(rng, fitness, k, mask), nil
}

// tournament is the unchecked kernel used by the engine.
func tournament(rng *rand.Rand, fitness []int64, k int, mask []uint8) int {
	fillRandomVector(rng, mask, k)
	winner, _ := matrix.ArgMaxMasked(mask, fitness) // lengths checked by caller

	return winner
}
