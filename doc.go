// Package genet is a parallel genetic-algorithm solver for the 0/1
// knapsack problem with two capacity constraints (weight and size).
//
// 🚀 What is genet?
//
//	A small, deterministic, multi-core optimizer that brings together:
//		• Scenarios: CSV loader, random generator, budget sanity floor
//		• Binary population matrix: flat row-major M×N gene buffer
//		• Parallel evaluation: weight, size and cost reductions run concurrently
//		• Tournament selection, single-point crossover, bit-flip mutation
//		• Training loop: generation limit, epsilon convergence, metrics, reports
//
// ✨ Why genet?
//
//   - Reproducible – a seed fixes every generation, whatever the core count
//   - Allocation-free generations – buffers are allocated once and swapped
//   - Small API – New, Evolve, Train, Write
//
// Under the hood, everything is organized under these subpackages:
//
//	matrix/      binary Dense matrix and the integer vector kernels
//	scenario/    problem instance, CSV I/O, generator
//	population/  evolution engine (evaluate, select, reproduce, swap)
//	train/       training driver, stopping rule, Prometheus metrics
//	report/      text, CSV and XLSX run reports, summary statistics
//	config/      GENET_* environment configuration for the CLI
//	cmd/genet/   command-line front end
//
// Quick example:
//
//	s, _ := scenario.Load("scenario.csv")
//	res, _ := train.Train(ctx, s, population.Config{
//	    PopulationSize: 200, TournamentSize: 5,
//	    CrossoverProbability: 0.7, MutationProbability: 0.01,
//	}, train.WithGenerationLimit(100))
//	_ = report.Write(os.Stdout, report.FormatText, res)
//
//	go install github.com/katalvlaran/genet/cmd/genet@latest
package genet
