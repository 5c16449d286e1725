// SPDX-License-Identifier: MIT

// Package population implements the evolution engine of the knapsack genetic
// algorithm: a generation is an M×N binary matrix (M individuals, N objects),
// and every call to Evolve turns the current generation into the next one.
//
// Pipeline of one Evolve call:
//
//	Ready ─► Evaluating ─► Reproducing ─► Ready (buffers swapped)
//
//  1. Evaluate: three concurrent reductions compute, for every individual, its
//     total weight, total size and total cost (mat-vec products). Weight and
//     size totals are thresholded into 0/1 feasibility indicators; fitness is
//     cost·weightOK·sizeOK, so any over-budget individual scores exactly 0.
//  2. Record best = max(fitness).
//  3. Reproduce: every row of the scratch generation is filled independently:
//     two tournament winners are drawn against the fitness vector, crossed
//     over at a random point (with probability CrossoverProbability) and
//     mutated gene by gene (with probability MutationProbability).
//  4. Swap the current and scratch buffers (pointer swap, no copy) and return best.
//
// Concurrency & determinism:
//   - Rows are partitioned into a fixed set of contiguous chunks whose layout
//     depends only on the population size. Each chunk owns a private
//     *rand.Rand stream (derived from the seed with a SplitMix64 mix) and a
//     private tournament mask buffer. Chunks run on a bounded goroutine pool.
//   - current and the fitness vector are read-only during reproduction; next
//     is written with disjoint row ownership. No locks are needed.
//   - The same seed, scenario and config produce byte-identical generations at
//     every step, independently of the worker count and of GOMAXPROCS.
//
// Memory:
//   - current, next, the fitness vector, the two reduction buffers and all
//     chunk masks are allocated once in New; Evolve never reallocates them.
//
// Errors (sentinel):
//
//	– ErrConfigInvalid       any Config violation (wrapped with field details).
//	– ErrTournamentSize      tournament size outside [1, M] in Tournament.
//	– ErrInvalidCardinality  RandomVector with k ∉ [0, n] or n <= 0.
//	– ErrScenarioShape       scenario vectors inconsistent with NumberOfObjects.
//
// Evolve itself has no failure path: every invariant it relies on is checked
// in New.
//
// Example usage:
//
//	pop, err := population.New(s, population.Config{
//	    PopulationSize:       200,
//	    TournamentSize:       5,
//	    CrossoverProbability: 0.7,
//	    MutationProbability:  0.01,
//	}, population.WithSeed(42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for g := 0; g < 100; g++ {
//	    fmt.Println(pop.Evolve())
//	}
package population
