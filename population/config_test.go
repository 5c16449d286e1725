package population_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/genet/population"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, smallConfig().Validate())
	require.NoError(t, population.Config{PopulationSize: 1, TournamentSize: 1, CrossoverProbability: 1, MutationProbability: 1}.Validate())

	cases := []struct {
		name  string
		mut   func(*population.Config)
		field string
	}{
		{"zero population", func(c *population.Config) { c.PopulationSize = 0 }, "PopulationSize"},
		{"zero tournament", func(c *population.Config) { c.TournamentSize = 0 }, "TournamentSize"},
		{"tournament above population", func(c *population.Config) { c.TournamentSize = c.PopulationSize + 1 }, "TournamentSize"},
		{"negative crossover", func(c *population.Config) { c.CrossoverProbability = -0.1 }, "CrossoverProbability"},
		{"crossover above one", func(c *population.Config) { c.CrossoverProbability = 1.5 }, "CrossoverProbability"},
		{"mutation NaN", func(c *population.Config) { c.MutationProbability = math.NaN() }, "MutationProbability"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := smallConfig()
			tc.mut(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, population.ErrConfigInvalid)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestConfig_ValidateReportsEveryField(t *testing.T) {
	t.Parallel()

	err := population.Config{PopulationSize: 2, TournamentSize: 5, MutationProbability: 2}.Validate()
	require.ErrorIs(t, err, population.ErrConfigInvalid)
	assert.Contains(t, err.Error(), "TournamentSize")
	assert.Contains(t, err.Error(), "MutationProbability")
}
