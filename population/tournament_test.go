package population_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/genet/matrix"
	"github.com/katalvlaran/genet/population"
)

// TestTournament_WinnerIsFittestContestant inspects the caller-owned mask to
// recover the contestants of every round.
func TestTournament_WinnerIsFittestContestant(t *testing.T) {
	t.Parallel()

	fitness := []int64{5, 17, 3, 9, 11, 2, 8, 14}
	mask := make([]uint8, len(fitness))
	rng := population.NewRand(seedDet)
	for round := 0; round < 200; round++ {
		w, err := population.Tournament(rng, fitness, 3, mask)
		require.NoError(t, err)
		require.Equal(t, 3, ones(mask))
		require.Equal(t, uint8(1), mask[w], "winner must be a contestant")
		for i, m := range mask {
			if m == 1 {
				assert.GreaterOrEqual(t, fitness[w], fitness[i])
			}
		}
	}
}

func TestTournament_FullSizeIsGlobalArgMax(t *testing.T) {
	t.Parallel()

	fitness := []int64{4, 9, 1, 9, 0}
	w, err := population.Tournament(population.NewRand(seedDet), fitness, len(fitness), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, w, "first maximum wins ties")
}

func TestTournament_AllZeroReturnsLowestIndex(t *testing.T) {
	t.Parallel()

	fitness := make([]int64, 6)
	rng := population.NewRand(seedDet)
	for round := 0; round < 20; round++ {
		w, err := population.Tournament(rng, fitness, 2, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, w)
	}
}

func TestTournament_Errors(t *testing.T) {
	t.Parallel()

	rng := population.NewRand(seedDet)
	fitness := []int64{1, 2, 3}
	_, err := population.Tournament(rng, fitness, 0, nil)
	assert.ErrorIs(t, err, population.ErrTournamentSize)
	_, err = population.Tournament(rng, fitness, 4, nil)
	assert.ErrorIs(t, err, population.ErrTournamentSize)
	_, err = population.Tournament(rng, fitness, 2, make([]uint8, 2))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
