// Package config loads the run configuration of the genet CLI from GENET_*
// environment variables. Command-line flags override the loaded values, and
// Validate runs once both sources are merged.
package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/genet/population"
	"github.com/katalvlaran/genet/train"
)

// Prefix is prepended to every environment variable name.
const Prefix = "GENET_"

// ErrInvalid is matched by every Validate rejection.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the merged CLI configuration. Every field has a GENET_<GROUP>_<NAME>
// variable, where GROUP is the envPrefix of the enclosing struct.
type Config struct {
	Engine struct {
		PopulationSize       int     `env:"POPULATION_SIZE" envDefault:"100"`
		TournamentSize       int     `env:"TOURNAMENT_SIZE" envDefault:"5"`
		CrossoverProbability float64 `env:"CROSSOVER_PROBABILITY" envDefault:"0.7"`
		MutationProbability  float64 `env:"MUTATION_PROBABILITY" envDefault:"0.01"`
		Seed                 int64   `env:"SEED" envDefault:"0"`
		Workers              int     `env:"WORKERS" envDefault:"0" validate:"gte=0"` // 0 ⇒ GOMAXPROCS
	} `envPrefix:"ENGINE_"`
	Train struct {
		GenerationLimit int      `env:"GENERATION_LIMIT" envDefault:"100" validate:"gt=0"`
		Epsilon         *float64 `env:"EPSILON" validate:"omitnil,gte=0"`
		Runs            int      `env:"RUNS" envDefault:"1" validate:"gte=1"` // independent runs, seeds from RunSeed
	} `envPrefix:"TRAIN_"`
	Log struct {
		Level slog.Level `env:"LEVEL" envDefault:"info"`
	} `envPrefix:"LOG_"`
	Report struct {
		Format  string `env:"FORMAT" envDefault:"text" validate:"oneof=text csv xlsx"`
		Output  string `env:"OUTPUT"`  // empty ⇒ stdout
		Average string `env:"AVERAGE"` // mean best per generation CSV; empty ⇒ not written
	} `envPrefix:"REPORT_"`
	Metrics struct {
		Addr string `env:"ADDR" validate:"omitempty,hostname_port"` // empty ⇒ disabled
	} `envPrefix:"METRICS_"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom reads the configuration from environ instead of the process
// environment. Keys carry the GENET_ prefix.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
			// the first error is enough to fix the environment
			return nil, fmt.Errorf("config: %w", aggErr.Errors[0])
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the CLI-level fields and the engine parameters.
// Engine violations also match population.ErrConfigInvalid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %s %s (got %v)", ErrInvalid, fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.PopulationConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// PopulationConfig returns the engine parameters.
func (c *Config) PopulationConfig() population.Config {
	return population.Config{
		PopulationSize:       c.Engine.PopulationSize,
		TournamentSize:       c.Engine.TournamentSize,
		CrossoverProbability: c.Engine.CrossoverProbability,
		MutationProbability:  c.Engine.MutationProbability,
	}
}

// EngineOptions returns the population options implied by c.
func (c *Config) EngineOptions() []population.Option {
	opts := []population.Option{population.WithSeed(c.Engine.Seed)}
	if c.Engine.Workers > 0 {
		opts = append(opts, population.WithWorkers(c.Engine.Workers))
	}

	return opts
}

// RunSeed returns the engine seed of run i (0-based). Run 0 uses
// Engine.Seed; later runs count up from it, with seed 0 standing for the
// engine's default seed 1.
func (c *Config) RunSeed(i int) int64 {
	if i == 0 {
		return c.Engine.Seed
	}
	base := c.Engine.Seed
	if base == 0 {
		base = 1
	}

	return base + int64(i)
}

// TrainOptions returns the training options implied by c, routing logs to
// logger and metrics to reg (either may be nil).
func (c *Config) TrainOptions(logger *slog.Logger, reg prometheus.Registerer) []train.Option {
	opts := []train.Option{
		train.WithGenerationLimit(c.Train.GenerationLimit),
		train.WithEngineOptions(c.EngineOptions()...),
		train.WithLogger(logger),
	}
	if c.Train.Epsilon != nil {
		opts = append(opts, train.WithEpsilon(*c.Train.Epsilon))
	}
	if reg != nil {
		opts = append(opts, train.WithRegisterer(reg))
	}

	return opts
}
