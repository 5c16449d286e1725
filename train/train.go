// Package train drives the evolution engine: it repeats Evolve, tracks the
// running best, applies the stopping rule and reports what happened.
//
// Stopping rule:
//   - after the generation limit, or
//   - earlier, when an epsilon is configured and the relative change
//     |best_t − best_{t−1}| / best_t is at most epsilon.
//
// The previous best starts at math.MaxInt64, so the first generation can
// never trigger the rule. best_t == 0 yields +Inf (or NaN when the previous
// best is also 0), neither of which is <= epsilon.
//
// Cancellation is observed between generations only; a generation always
// runs to completion.
package train

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/genet/population"
	"github.com/katalvlaran/genet/scenario"
)

// Evolver is anything that produces one generation per call and reports the
// best fitness of the generation it consumed.
type Evolver interface {
	Evolve() int64
}

// bestReporter is implemented by *population.Population.
type bestReporter interface {
	Best() (genes []uint8, fitness int64, ok bool)
}

// Generation describes one completed step, passed to WithObserver callbacks.
type Generation struct {
	Index    int           // 0-based
	Best     int64         // best fitness of the consumed generation
	BestEver int64         // running maximum including this generation
	Delta    float64       // relative change vs the previous best
	Elapsed  time.Duration // wall time of this step
}

// Result is the outcome of a run.
type Result struct {
	RunID          uuid.UUID
	Bests          []int64 // best fitness per generation, in order
	BestEver       int64
	BestGenes      []uint8 // individual that scored BestEver; nil if unknown
	Baseline       int64   // scenario.Greedy of the instance; set by Train only
	Generations    int
	Converged      bool // stopped by epsilon
	PopulationInit time.Duration
	Evolution      time.Duration
}

// Train builds an engine for s and cfg and runs it.
//
// Errors: ErrGenerationLimit, ErrEpsilon, any population.New error, and the
// context error when ctx is done before the limit is reached (the partial
// Result is still returned).
func Train(ctx context.Context, s scenario.Scenario, cfg population.Config, opts ...Option) (Result, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	pop, err := population.New(s, cfg, o.engine...)
	if err != nil {
		return Result{}, err
	}
	initTime := time.Since(start)
	baseline := scenario.Greedy(s)
	o.logger.Info("population initialized",
		slog.Int("population_size", cfg.PopulationSize),
		slog.Int("objects", s.NumberOfObjects),
		slog.Int("workers", pop.Workers()),
		slog.Int64("greedy_baseline", baseline),
		slog.Duration("elapsed", initTime),
	)

	res, err := run(ctx, pop, o)
	res.PopulationInit = initTime
	res.Baseline = baseline

	return res, err
}

// Run runs the training loop over e.
func Run(ctx context.Context, e Evolver, opts ...Option) (Result, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return Result{}, err
	}

	return run(ctx, e, o)
}

func run(ctx context.Context, e Evolver, o options) (Result, error) {
	m, err := newMetrics(o.registerer)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		RunID: uuid.New(),
		Bests: make([]int64, 0, o.limit),
	}
	log := o.logger.With(slog.String("run_id", res.RunID.String()))
	log.Info("training started",
		slog.Int("generation_limit", o.limit),
		slog.Bool("epsilon_enabled", o.hasEpsilon),
		slog.Float64("epsilon", o.epsilon),
	)

	reporter, _ := e.(bestReporter)
	prev := int64(math.MaxInt64)
	begin := time.Now()

	for g := 0; g < o.limit; g++ {
		if err = ctx.Err(); err != nil {
			log.Info("training cancelled", slog.Int("generations", res.Generations), slog.Any("error", err))
			res.Evolution = time.Since(begin)
			return res, fmt.Errorf("train: stopped after %d generations: %w", res.Generations, err)
		}

		stepStart := time.Now()
		best := e.Evolve()
		elapsed := time.Since(stepStart)

		res.Bests = append(res.Bests, best)
		res.Generations++
		if res.Generations == 1 || best > res.BestEver {
			res.BestEver = best
			if reporter != nil {
				if genes, _, ok := reporter.Best(); ok {
					res.BestGenes = genes
				}
			}
		}
		delta := relativeChange(best, prev)
		prev = best

		m.generations.Inc()
		m.best.Set(float64(best))
		m.bestEver.Set(float64(res.BestEver))
		m.duration.Observe(elapsed.Seconds())
		log.Debug("generation",
			slog.Int("generation", g),
			slog.Int64("best", best),
			slog.Int64("best_ever", res.BestEver),
			slog.Float64("delta", delta),
			slog.Duration("elapsed", elapsed),
		)
		if o.observer != nil {
			o.observer(Generation{Index: g, Best: best, BestEver: res.BestEver, Delta: delta, Elapsed: elapsed})
		}

		if o.hasEpsilon && delta <= o.epsilon {
			res.Converged = true
			break
		}
	}

	res.Evolution = time.Since(begin)
	log.Info("training finished",
		slog.Int("generations", res.Generations),
		slog.Int64("best_ever", res.BestEver),
		slog.Bool("converged", res.Converged),
		slog.Duration("elapsed", res.Evolution),
	)

	return res, nil
}

// relativeChange returns |best − prev| / best in float64.
func relativeChange(best, prev int64) float64 {
	return math.Abs(float64(best)-float64(prev)) / float64(best)
}
