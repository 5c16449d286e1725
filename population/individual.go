package population

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/genet/matrix"
)

// Reproduce fills child from two parents with single-point crossover
// followed by per-gene mutation, using cfg's probabilities.
//
// Crossover: one uniform u ∈ [0,1) is drawn; if u < CrossoverProbability a
// point c ∈ [0, N) is drawn and child = parent1[:c] ++ parent2[c:], otherwise
// child = parent1. Mutation: every gene is flipped independently when a fresh
// uniform draw is below MutationProbability.
//
// Every gene of child is overwritten; its prior content is irrelevant.
// child may not alias either parent.
//
// Errors: matrix.ErrDimensionMismatch on unequal or empty lengths.
// Complexity: O(N).
func Reproduce(child, parent1, parent2 []uint8, cfg Config, rng *rand.Rand) error {
	n := len(child)
	if n == 0 || len(parent1) != n || len(parent2) != n {
		return fmt.Errorf("population: reproduce lengths child=%d parent1=%d parent2=%d: %w",
			n, len(parent1), len(parent2), matrix.ErrDimensionMismatch)
	}
	reproduce(child, parent1, parent2, cfg.CrossoverProbability, cfg.MutationProbability, rng)

	return nil
}

// reproduce is the unchecked kernel used by the engine.
func reproduce(child, parent1, parent2 []uint8, pc, pm float64, rng *rand.Rand) {
	crossover(child, parent1, parent2, pc, rng)
	mutate(child, pm, rng)
}

func crossover(child, parent1, parent2 []uint8, pc float64, rng *rand.Rand) {
	if rng.Float64() >= pc {
		copy(child, parent1)
		return
	}
	c := rng.Intn(len(child))
	copy(child[:c], parent1[:c])
	copy(child[c:], parent2[c:])
}

func mutate(genes []uint8, pm float64, rng *rand.Rand) {
	for i := range genes {
		if rng.Float64() < pm {
			genes[i] ^= 1
		}
	}
}
