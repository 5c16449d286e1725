// Package population - parallel fitness evaluation.
//
// Fitness of row i:
//
//	weightOK[i] = [Σ_j g[i,j]·weight[j] <= MaxWeight]
//	sizeOK[i]   = [Σ_j g[i,j]·size[j]   <= MaxSize]
//	fitness[i]  = (Σ_j g[i,j]·cost[j]) · weightOK[i] · sizeOK[i]
//
// The three reductions are independent and run concurrently; each writes a
// private buffer, and the combination happens after the join.
package population

import (
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/katalvlaran/genet/matrix"
	"github.com/katalvlaran/genet/scenario"
)

// Evaluate computes the fitness of every row of pop against s into out.
//
// Contracts:
//   - pop.Cols() == s.NumberOfObjects and len of every scenario vector equals it.
//   - len(out) == pop.Rows().
//
// Errors: ErrScenarioShape, matrix.ErrDimensionMismatch.
// Complexity: O(M·N) work, three goroutines.
func Evaluate(pop *matrix.Dense, s scenario.Scenario, out []int64) error {
	if err := checkScenario(s); err != nil {
		return err
	}
	if pop.Cols() != s.NumberOfObjects || len(out) != pop.Rows() {
		return fmt.Errorf("population: evaluate %dx%d into %d slots for %d objects: %w",
			pop.Rows(), pop.Cols(), len(out), s.NumberOfObjects, matrix.ErrDimensionMismatch)
	}

	return newEvaluator(pop.Rows()).evaluate(pop, &s, out)
}

// evaluator owns the reduction buffers; the cost reduction writes straight
// into the fitness vector.
type evaluator struct {
	weights []int64
	sizes   []int64
}

func newEvaluator(rows int) *evaluator {
	return &evaluator{
		weights: make([]int64, rows),
		sizes:   make([]int64, rows),
	}
}

// evaluate fills fitness for pop. Every kernel error is returned, joined
// when several reductions fail.
func (e *evaluator) evaluate(pop *matrix.Dense, s *scenario.Scenario, fitness []int64) error {
	p := pool.New().WithErrors()
	p.Go(func() error {
		if err := pop.MulVec(e.weights, s.Weights); err != nil {
			return err
		}
		matrix.ThresholdLE(e.weights, int64(s.MaxWeight))
		return nil
	})
	p.Go(func() error {
		if err := pop.MulVec(e.sizes, s.Sizes); err != nil {
			return err
		}
		matrix.ThresholdLE(e.sizes, int64(s.MaxSize))
		return nil
	})
	p.Go(func() error {
		return pop.MulVec(fitness, s.Costs)
	})
	if err := p.Wait(); err != nil {
		return fmt.Errorf("population: evaluate: %w", err)
	}

	if err := matrix.MulElem(fitness, e.weights); err != nil {
		return fmt.Errorf("population: evaluate: %w", err)
	}
	if err := matrix.MulElem(fitness, e.sizes); err != nil {
		return fmt.Errorf("population: evaluate: %w", err)
	}

	return nil
}

// checkScenario verifies the shape invariants the kernels rely on.
func checkScenario(s scenario.Scenario) error {
	n := s.NumberOfObjects
	if n <= 0 || len(s.Weights) != n || len(s.Sizes) != n || len(s.Costs) != n {
		return fmt.Errorf("%w: objects=%d weights=%d sizes=%d costs=%d",
			ErrScenarioShape, n, len(s.Weights), len(s.Sizes), len(s.Costs))
	}

	return nil
}
