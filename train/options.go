package train

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/genet/population"
)

// DefaultGenerationLimit is used when WithGenerationLimit is not given.
const DefaultGenerationLimit = 100

var (
	// ErrGenerationLimit indicates a non-positive generation limit.
	ErrGenerationLimit = errors.New("train: generation limit must be > 0")

	// ErrEpsilon indicates a negative or NaN convergence threshold.
	ErrEpsilon = errors.New("train: epsilon must be >= 0")
)

// Option customizes a training run.
type Option func(*options)

type options struct {
	limit      int
	epsilon    float64
	hasEpsilon bool
	logger     *slog.Logger
	registerer prometheus.Registerer
	engine     []population.Option
	observer   func(Generation)
}

func gatherOptions(opts []Option) (options, error) {
	o := options{
		limit:  DefaultGenerationLimit,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.limit <= 0 {
		return o, fmt.Errorf("%w (got %d)", ErrGenerationLimit, o.limit)
	}
	if o.hasEpsilon && (o.epsilon < 0 || math.IsNaN(o.epsilon)) {
		return o, fmt.Errorf("%w (got %v)", ErrEpsilon, o.epsilon)
	}

	return o, nil
}

// WithGenerationLimit sets the maximum number of generations.
func WithGenerationLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

// WithEpsilon enables early stopping once the relative change between two
// consecutive best values is at most eps.
func WithEpsilon(eps float64) Option {
	return func(o *options) { o.epsilon, o.hasEpsilon = eps, true }
}

// WithLogger routes run logs to l. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRegisterer registers the run metrics on r. Without it the metrics are
// still updated but never exported.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) { o.registerer = r }
}

// WithEngineOptions forwards options to population.New (Train only).
func WithEngineOptions(opts ...population.Option) Option {
	return func(o *options) { o.engine = append(o.engine, opts...) }
}

// WithObserver calls fn after every generation, on the training goroutine.
func WithObserver(fn func(Generation)) Option {
	return func(o *options) { o.observer = fn }
}
