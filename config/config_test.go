package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/genet/config"
	"github.com/katalvlaran/genet/population"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Engine.PopulationSize)
	assert.Equal(t, 5, cfg.Engine.TournamentSize)
	assert.InDelta(t, 0.7, cfg.Engine.CrossoverProbability, 1e-12)
	assert.InDelta(t, 0.01, cfg.Engine.MutationProbability, 1e-12)
	assert.Equal(t, 100, cfg.Train.GenerationLimit)
	assert.Nil(t, cfg.Train.Epsilon)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Equal(t, "text", cfg.Report.Format)
	assert.Empty(t, cfg.Metrics.Addr)
	assert.Equal(t, 1, cfg.Train.Runs)
	assert.Empty(t, cfg.Report.Average)
	require.NoError(t, cfg.Validate())
}

func TestLoadFrom_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom(map[string]string{
		"GENET_ENGINE_POPULATION_SIZE":       "40",
		"GENET_ENGINE_TOURNAMENT_SIZE":       "3",
		"GENET_ENGINE_CROSSOVER_PROBABILITY": "0.9",
		"GENET_ENGINE_SEED":                  "17",
		"GENET_ENGINE_WORKERS":               "2",
		"GENET_TRAIN_GENERATION_LIMIT":       "25",
		"GENET_TRAIN_EPSILON":                "0.001",
		"GENET_LOG_LEVEL":                    "debug",
		"GENET_REPORT_FORMAT":                "csv",
		"GENET_METRICS_ADDR":                 "localhost:9090",
	})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, population.Config{
		PopulationSize: 40, TournamentSize: 3, CrossoverProbability: 0.9, MutationProbability: 0.01,
	}, cfg.PopulationConfig())
	require.NotNil(t, cfg.Train.Epsilon)
	assert.InDelta(t, 0.001, *cfg.Train.Epsilon, 1e-15)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Len(t, cfg.EngineOptions(), 2)
	assert.Len(t, cfg.TrainOptions(nil, nil), 4)
}

func TestLoadFrom_ParseError(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFrom(map[string]string{"GENET_ENGINE_POPULATION_SIZE": "many"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config:")
}

func TestRunSeed(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2, 3}, []int64{cfg.RunSeed(0), cfg.RunSeed(1), cfg.RunSeed(2)})

	cfg.Engine.Seed = 10
	assert.Equal(t, []int64{10, 11, 12}, []int64{cfg.RunSeed(0), cfg.RunSeed(1), cfg.RunSeed(2)})
}

func TestValidate_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string]map[string]string{
		"limit":      {"GENET_TRAIN_GENERATION_LIMIT": "0"},
		"epsilon":    {"GENET_TRAIN_EPSILON": "-0.5"},
		"format":     {"GENET_REPORT_FORMAT": "json"},
		"workers":    {"GENET_ENGINE_WORKERS": "-1"},
		"metrics":    {"GENET_METRICS_ADDR": "not an address"},
		"tournament": {"GENET_ENGINE_TOURNAMENT_SIZE": "500"},
		"runs":       {"GENET_TRAIN_RUNS": "0"},
	}
	for name, environ := range cases {
		environ := environ
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg, err := config.LoadFrom(environ)
			require.NoError(t, err)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}

	cfg, err := config.LoadFrom(map[string]string{"GENET_ENGINE_MUTATION_PROBABILITY": "1.5"})
	require.NoError(t, err)
	err = cfg.Validate()
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.ErrorIs(t, err, population.ErrConfigInvalid)
}
