// SPDX-License-Identifier: MIT

package population

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sourcegraph/conc/pool"

	"github.com/katalvlaran/genet/matrix"
	"github.com/katalvlaran/genet/scenario"
)

// maxChunks bounds the number of row chunks (and RNG streams).
const maxChunks = 64

// chunk is a contiguous row range [lo, hi) with its private RNG and mask.
type chunk struct {
	lo, hi int
	rng    *rand.Rand
	mask   []uint8
}

// Population is the evolution engine: two M×N generation buffers, the fitness
// vector of the last evaluation and the per-chunk random streams.
//
// A Population is not safe for concurrent use; Evolve parallelizes internally.
type Population struct {
	scenario scenario.Scenario
	config   Config
	workers  int

	current   *matrix.Dense
	next      *matrix.Dense
	evaluated *matrix.Dense // generation the fitness vector belongs to; nil before the first evaluation
	fitness   []int64
	eval      *evaluator
	chunks    []chunk

	generation int
}

// New validates cfg and s, allocates every buffer the engine needs and builds
// the first generation (uniform random bits, or a copy of the
// WithInitialPopulation matrix).
//
// Implementation:
//   - Stage 1: validate config and scenario shape, guard M·N against overflow.
//   - Stage 2: allocate current, next, fitness and the reduction buffers.
//   - Stage 3: lay out row chunks and derive one RNG stream per chunk.
//   - Stage 4: fill current in parallel (or copy the provided matrix).
//
// Errors: ErrConfigInvalid, ErrScenarioShape, ErrPopulationTooLarge,
// matrix.ErrDimensionMismatch (initial population shape).
func New(s scenario.Scenario, cfg Config, opts ...Option) (*Population, error) {
	// Stage 1
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkScenario(s); err != nil {
		return nil, err
	}
	m, n := cfg.PopulationSize, s.NumberOfObjects
	if n > math.MaxInt/m {
		return nil, fmt.Errorf("%w: %d×%d", ErrPopulationTooLarge, m, n)
	}
	o := gatherOptions(opts)

	// Stage 2
	current, err := matrix.NewDense(m, n)
	if err != nil {
		return nil, err
	}
	next, err := matrix.NewDense(m, n)
	if err != nil {
		return nil, err
	}
	p := &Population{
		scenario: s.Clone(),
		config:   cfg,
		workers:  min(o.workers, m),
		current:  current,
		next:     next,
		fitness:  make([]int64, m),
		eval:     newEvaluator(m),
	}

	// Stage 3
	p.chunks = layoutChunks(m, rngFromSeed(o.seed))

	// Stage 4
	if o.initial != nil {
		if err = p.current.CopyFrom(o.initial); err != nil {
			return nil, fmt.Errorf("population: initial population: %w", err)
		}
	} else {
		p.forEachChunk(p.randomize)
	}

	return p, nil
}

// layoutChunks splits [0, m) into min(m, maxChunks) near-equal ranges and
// derives one stream per range, in order, from base.
func layoutChunks(m int, base *rand.Rand) []chunk {
	k := min(m, maxChunks)
	chunks := make([]chunk, k)
	var lo int
	for i := range chunks {
		hi := lo + m/k
		if i < m%k {
			hi++
		}
		chunks[i] = chunk{
			lo:   lo,
			hi:   hi,
			rng:  deriveRNG(base, uint64(i)),
			mask: make([]uint8, m),
		}
		lo = hi
	}

	return chunks
}

// forEachChunk runs fn on every chunk with at most p.workers goroutines.
func (p *Population) forEachChunk(fn func(c *chunk)) {
	if p.workers == 1 {
		for i := range p.chunks {
			fn(&p.chunks[i])
		}
		return
	}
	wp := pool.New().WithMaxGoroutines(p.workers)
	for i := range p.chunks {
		c := &p.chunks[i]
		wp.Go(func() { fn(c) })
	}
	wp.Wait()
}

// randomize fills the chunk's rows of current with fair coin flips.
func (p *Population) randomize(c *chunk) {
	for i := c.lo; i < c.hi; i++ {
		row := p.current.RowView(i)
		for j := range row {
			row[j] = uint8(c.rng.Int63() & 1)
		}
	}
}

// breed fills the chunk's rows of next from current and fitness.
func (p *Population) breed(c *chunk) {
	k := p.config.TournamentSize
	pc, pm := p.config.CrossoverProbability, p.config.MutationProbability
	for i := c.lo; i < c.hi; i++ {
		a := tournament(c.rng, p.fitness, k, c.mask)
		b := tournament(c.rng, p.fitness, k, c.mask)
		reproduce(p.next.RowView(i), p.current.RowView(a), p.current.RowView(b), pc, pm, c.rng)
	}
}

// Evaluate computes the fitness of the current generation and returns its
// best value without producing a new generation. It panics if the engine's
// buffers no longer match the scenario.
//
// Complexity: O(M·N).
func (p *Population) Evaluate() int64 {
	if err := p.eval.evaluate(p.current, &p.scenario, p.fitness); err != nil {
		// New fixed every buffer shape, so this is an engine bug.
		panic(err)
	}
	p.evaluated = p.current
	best, _ := matrix.Max(p.fitness) // M > 0

	return best
}

// Evolve evaluates the current generation, breeds the next one into the
// scratch buffer, swaps the buffers and returns the best fitness of the
// generation that was consumed.
//
// Complexity: O(M·N + M·M) work (tournament masks are length M), spread over
// the worker pool.
func (p *Population) Evolve() int64 {
	best := p.Evaluate()
	p.forEachChunk(p.breed)
	p.current, p.next = p.next, p.current
	p.generation++

	return best
}

// Current returns the current generation. The matrix is owned by the engine
// and is overwritten by the next Evolve call; treat it as read-only.
func (p *Population) Current() *matrix.Dense { return p.current }

// Fitness returns a copy of the last evaluated fitness vector, or nil before
// the first evaluation.
func (p *Population) Fitness() []int64 {
	if p.evaluated == nil {
		return nil
	}

	return append([]int64(nil), p.fitness...)
}

// Best returns a copy of the fittest individual of the last evaluation and
// its fitness (first index on ties). ok is false before the first evaluation.
func (p *Population) Best() (genes []uint8, fitness int64, ok bool) {
	if p.evaluated == nil {
		return nil, 0, false
	}
	i, _ := matrix.ArgMax(p.fitness)

	return append([]uint8(nil), p.evaluated.RowView(i)...), p.fitness[i], true
}

// Generation returns the number of completed Evolve calls.
func (p *Population) Generation() int { return p.generation }

// Scenario returns the engine's copy of the problem instance.
func (p *Population) Scenario() scenario.Scenario { return p.scenario.Clone() }

// Config returns the engine's configuration.
func (p *Population) Config() Config { return p.config }

// Workers returns the effective goroutine bound.
func (p *Population) Workers() int { return p.workers }
