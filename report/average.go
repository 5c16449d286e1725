package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/genet/train"
)

// ErrNoRuns indicates an empty result set passed to Average.
var ErrNoRuns = errors.New("report: no runs to average")

// Average returns the mean best fitness per generation over results.
// Runs stopped early by epsilon are shorter, so the series covers the
// generations every run reached.
//
// Complexity: O(R·G) for R runs of G generations.
func Average(results []train.Result) ([]float64, error) {
	if len(results) == 0 {
		return nil, ErrNoRuns
	}
	gens := len(results[0].Bests)
	for _, r := range results[1:] {
		gens = min(gens, len(r.Bests))
	}

	out := make([]float64, gens)
	col := make([]float64, len(results))
	for g := range out {
		for i, r := range results {
			col[i] = float64(r.Bests[g])
		}
		out[g] = stat.Mean(col, nil)
	}

	return out, nil
}

// WriteAverageCSV writes "generation,mean_best" records for Average(results).
func WriteAverageCSV(w io.Writer, results []train.Result) error {
	means, err := Average(results)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err = cw.Write([]string{"generation", "mean_best"}); err != nil {
		return fmt.Errorf("report: write average header: %w", err)
	}
	rec := make([]string, 2)
	for g, m := range means {
		rec[0] = strconv.Itoa(g)
		rec[1] = strconv.FormatFloat(m, 'f', -1, 64)
		if err = cw.Write(rec); err != nil {
			return fmt.Errorf("report: write average generation %d: %w", g, err)
		}
	}
	cw.Flush()
	if err = cw.Error(); err != nil {
		return fmt.Errorf("report: flush average: %w", err)
	}

	return nil
}
