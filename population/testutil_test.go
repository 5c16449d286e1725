// Package population_test shares fixtures across the engine tests.
package population_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/genet/matrix"
	"github.com/katalvlaran/genet/population"
	"github.com/katalvlaran/genet/scenario"
)

const seedDet int64 = 42

// knownOptimum is the best feasible cost of smallScenario: objects 1 and 3
// (w=8, z=2, c=60).
const knownOptimum int64 = 60

// smallScenario is the five-object instance with weight budget 8 and size
// budget 3 (unit sizes, so at most three objects fit).
func smallScenario(t testing.TB) scenario.Scenario {
	t.Helper()
	s, err := scenario.New(
		[]int32{2, 3, 4, 5, 1},
		[]int32{1, 1, 1, 1, 1},
		[]int32{10, 20, 30, 40, 5},
		8, 3,
	)
	require.NoError(t, err)

	return s
}

func smallConfig() population.Config {
	return population.Config{
		PopulationSize:       20,
		TournamentSize:       5,
		CrossoverProbability: 0.7,
		MutationProbability:  0.05,
	}
}

// bruteForceFitness scores one individual without the engine.
func bruteForceFitness(s scenario.Scenario, genes []uint8) int64 {
	var w, z, c int64
	for j, g := range genes {
		if g == 1 {
			w += int64(s.Weights[j])
			z += int64(s.Sizes[j])
			c += int64(s.Costs[j])
		}
	}
	if w > int64(s.MaxWeight) || z > int64(s.MaxSize) {
		return 0
	}

	return c
}

func mustFromRows(t testing.TB, rows [][]uint8) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return m
}

func ones(v []uint8) int {
	var n int
	for _, x := range v {
		n += int(x)
	}

	return n
}
