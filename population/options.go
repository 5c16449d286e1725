package population

import (
	"runtime"

	"github.com/katalvlaran/genet/matrix"
)

// Option customizes engine construction.
type Option func(*options)

type options struct {
	seed    int64
	workers int
	initial *matrix.Dense
}

func defaultOptions() options {
	return options{
		seed:    0, // ⇒ defaultRNGSeed
		workers: runtime.GOMAXPROCS(0),
	}
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithSeed sets the RNG seed. 0 selects the fixed default seed, so an
// unseeded engine is still reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithWorkers bounds the number of goroutines used for initialization and
// reproduction. Results do not depend on it. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("population: WithWorkers requires n >= 1")
	}

	return func(o *options) { o.workers = n }
}

// WithInitialPopulation replaces the random first generation with a copy of m.
// m must be PopulationSize × NumberOfObjects; New reports a mismatch.
func WithInitialPopulation(m *matrix.Dense) Option {
	return func(o *options) { o.initial = m }
}
