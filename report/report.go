// Package report renders a training run for humans and tools.
//
// Formats:
//
//	text  one line per generation followed by a summary block
//	csv   header "generation,best" then one record per generation
//	xlsx  workbook with a "generations" sheet and a "summary" sheet
//
// Summary statistics are computed over the best-per-generation series with
// gonum/stat.
package report

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/genet/train"
)

// Format selects an output encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat indicates a format name other than text, csv or xlsx.
var ErrUnknownFormat = errors.New("report: unknown format")

// ParseFormat maps a case-insensitive name to a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Summary condenses a Result.
type Summary struct {
	RunID       uuid.UUID
	Generations int
	BestEver    int64
	BestEverAt  int // first generation reaching BestEver; -1 when empty
	Baseline    int64
	Last        int64
	Mean        float64
	StdDev      float64 // sample standard deviation; 0 for fewer than 2 generations
	Median      float64
	Converged   bool
}

// Summarize computes the summary of res.
//
// Complexity: O(G log G) for G generations (the median sorts a copy).
func Summarize(res train.Result) Summary {
	sum := Summary{
		RunID:       res.RunID,
		Generations: res.Generations,
		BestEver:    res.BestEver,
		BestEverAt:  -1,
		Baseline:    res.Baseline,
		Converged:   res.Converged,
	}
	if len(res.Bests) == 0 {
		return sum
	}

	xs := make([]float64, len(res.Bests))
	for i, b := range res.Bests {
		xs[i] = float64(b)
		if sum.BestEverAt < 0 && b == res.BestEver {
			sum.BestEverAt = i
		}
	}
	sum.Last = res.Bests[len(res.Bests)-1]
	sum.Mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		sum.StdDev = stat.StdDev(xs, nil)
	}
	sort.Float64s(xs)
	sum.Median = stat.Quantile(0.5, stat.Empirical, xs, nil)

	return sum
}

// Write renders res to w in format f.
func Write(w io.Writer, f Format, res train.Result) error {
	switch f {
	case FormatText:
		return WriteText(w, res)
	case FormatCSV:
		return WriteCSV(w, res)
	case FormatXLSX:
		return WriteXLSX(w, res)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}
