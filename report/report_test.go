package report_test

import (
	"bytes"
	"encoding/csv"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/genet/report"
	"github.com/katalvlaran/genet/train"
)

func sampleResult() train.Result {
	return train.Result{
		RunID:          uuid.MustParse("6f1c2a3e-1b2c-4d5e-8f90-123456789abc"),
		Bests:          []int64{35, 45, 60, 55, 60},
		BestEver:       60,
		BestGenes:      []uint8{0, 1, 0, 1, 0},
		Baseline:       40,
		Generations:    5,
		Converged:      true,
		PopulationInit: 3 * time.Millisecond,
		Evolution:      40 * time.Millisecond,
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := report.Summarize(sampleResult())
	assert.Equal(t, 5, s.Generations)
	assert.Equal(t, int64(60), s.BestEver)
	assert.Equal(t, 2, s.BestEverAt)
	assert.Equal(t, int64(40), s.Baseline)
	assert.Equal(t, int64(60), s.Last)
	assert.InDelta(t, 51.0, s.Mean, 1e-12)
	// sample variance: (256+36+81+16+81)/4 = 117.5
	assert.InDelta(t, math.Sqrt(117.5), s.StdDev, 1e-9)
	assert.InDelta(t, 55.0, s.Median, 1e-12)
	assert.True(t, s.Converged)
}

func TestSummarize_EdgeCases(t *testing.T) {
	t.Parallel()

	empty := report.Summarize(train.Result{})
	assert.Equal(t, -1, empty.BestEverAt)
	assert.Zero(t, empty.Mean)

	one := report.Summarize(train.Result{Bests: []int64{7}, BestEver: 7, Generations: 1})
	assert.Equal(t, 0, one.BestEverAt)
	assert.Zero(t, one.StdDev)
	assert.InDelta(t, 7.0, one.Median, 1e-12)
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatText, sampleResult()))
	out := buf.String()
	assert.Contains(t, out, "run 6f1c2a3e-1b2c-4d5e-8f90-123456789abc")
	assert.Contains(t, out, "generation 0: best 35\n")
	assert.Contains(t, out, "generation 4: best 60\n")
	assert.Contains(t, out, "best ever:   60 (generation 2)")
	assert.Contains(t, out, "greedy:      40\n")
	assert.Contains(t, out, "best genes:  [0 1 0 1 0]")
	assert.Contains(t, out, "converged:   true")
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatCSV, sampleResult()))
	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 6)
	assert.Equal(t, []string{"generation", "best"}, recs[0])
	assert.Equal(t, []string{"2", "60"}, recs[3])
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatXLSX, sampleResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(report.SheetGenerations)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"generation", "best"}, rows[0])
	assert.Equal(t, []string{"4", "60"}, rows[5])

	v, err := f.GetCellValue(report.SheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "60", v)
	v, err = f.GetCellValue(report.SheetSummary, "B5")
	require.NoError(t, err)
	assert.Equal(t, "40", v)
	v, err = f.GetCellValue(report.SheetSummary, "A1")
	require.NoError(t, err)
	assert.Equal(t, "run_id", v)
}

func TestFormats(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]report.Format{"text": report.FormatText, " CSV ": report.FormatCSV, "Xlsx": report.FormatXLSX} {
		got, err := report.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := report.ParseFormat("json")
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
	assert.ErrorIs(t, report.Write(&bytes.Buffer{}, report.Format("yaml"), sampleResult()), report.ErrUnknownFormat)
}

func TestAverage(t *testing.T) {
	t.Parallel()

	runs := []train.Result{
		{Bests: []int64{10, 20, 30, 40}},
		{Bests: []int64{20, 20, 40}},
		{Bests: []int64{0, 50, 50, 50}},
	}
	means, err := report.Average(runs)
	require.NoError(t, err)
	require.Len(t, means, 3, "series stops at the shortest run")
	assert.InDeltaSlice(t, []float64{10, 30, 40}, means, 1e-12)

	_, err = report.Average(nil)
	assert.ErrorIs(t, err, report.ErrNoRuns)
}

func TestWriteAverageCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.WriteAverageCSV(&buf, []train.Result{
		{Bests: []int64{1, 4}},
		{Bests: []int64{2, 4}},
	}))
	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"generation", "mean_best"}, {"0", "1.5"}, {"1", "4"}}, recs)

	assert.ErrorIs(t, report.WriteAverageCSV(&bytes.Buffer{}, nil), report.ErrNoRuns)
}
