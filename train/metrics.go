package train

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "genet"

// metrics groups the collectors updated by the training loop.
type metrics struct {
	generations prometheus.Counter
	best        prometheus.Gauge
	bestEver    prometheus.Gauge
	duration    prometheus.Histogram
}

// newMetrics builds the collectors and registers them on reg when non-nil.
// Collectors already registered by an earlier run are reused.
func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generations_total",
			Help:      "Generations evolved.",
		}),
		best: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "best_fitness",
			Help:      "Best fitness of the last evaluated generation.",
		}),
		bestEver: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "best_ever_fitness",
			Help:      "Best fitness seen during the current run.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time of one evaluate-and-reproduce step.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
		}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.generations, err = register(reg, m.generations); err != nil {
		return nil, err
	}
	if m.best, err = register(reg, m.best); err != nil {
		return nil, err
	}
	if m.bestEver, err = register(reg, m.bestEver); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}

	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return c, fmt.Errorf("train: register metrics: %w", err)
}
