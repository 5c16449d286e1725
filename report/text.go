package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/genet/train"
)

// WriteText writes one "generation N: best B" line per generation, then the
// summary and the timings.
func WriteText(w io.Writer, res train.Result) error {
	bw := bufio.NewWriter(w)
	s := Summarize(res)

	fmt.Fprintf(bw, "run %s\n", s.RunID)
	for g, b := range res.Bests {
		fmt.Fprintf(bw, "generation %d: best %d\n", g, b)
	}
	fmt.Fprintf(bw, "generations: %d\n", s.Generations)
	fmt.Fprintf(bw, "best ever:   %d (generation %d)\n", s.BestEver, s.BestEverAt)
	fmt.Fprintf(bw, "greedy:      %d\n", s.Baseline)
	if res.BestGenes != nil {
		fmt.Fprintf(bw, "best genes:  %v\n", res.BestGenes)
	}
	fmt.Fprintf(bw, "last:        %d\n", s.Last)
	fmt.Fprintf(bw, "mean:        %.3f\n", s.Mean)
	fmt.Fprintf(bw, "stddev:      %.3f\n", s.StdDev)
	fmt.Fprintf(bw, "median:      %.3f\n", s.Median)
	fmt.Fprintf(bw, "converged:   %t\n", s.Converged)
	fmt.Fprintf(bw, "population init: %s\n", res.PopulationInit)
	fmt.Fprintf(bw, "evolution:       %s\n", res.Evolution)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("report: write text: %w", err)
	}

	return nil
}

// WriteCSV writes "generation,best" records.
func WriteCSV(w io.Writer, res train.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"generation", "best"}); err != nil {
		return fmt.Errorf("report: write csv header: %w", err)
	}
	rec := make([]string, 2)
	for g, b := range res.Bests {
		rec[0] = strconv.Itoa(g)
		rec[1] = strconv.FormatInt(b, 10)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("report: write csv generation %d: %w", g, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flush csv: %w", err)
	}

	return nil
}
