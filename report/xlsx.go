package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/genet/train"
)

// Sheet names used by WriteXLSX.
const (
	SheetGenerations = "generations"
	SheetSummary     = "summary"
)

// WriteXLSX writes a workbook with the per-generation series and the summary.
func WriteXLSX(w io.Writer, res train.Result) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("report: close workbook: %w", cerr)
		}
	}()

	if err = f.SetSheetName(f.GetSheetName(0), SheetGenerations); err != nil {
		return fmt.Errorf("report: rename sheet: %w", err)
	}
	if err = setRow(f, SheetGenerations, 1, "generation", "best"); err != nil {
		return err
	}
	for g, b := range res.Bests {
		if err = setRow(f, SheetGenerations, g+2, g, b); err != nil {
			return err
		}
	}

	if _, err = f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("report: create sheet: %w", err)
	}
	s := Summarize(res)
	rows := [][2]any{
		{"run_id", s.RunID.String()},
		{"generations", s.Generations},
		{"best_ever", s.BestEver},
		{"best_ever_at", s.BestEverAt},
		{"greedy_baseline", s.Baseline},
		{"last", s.Last},
		{"mean", s.Mean},
		{"stddev", s.StdDev},
		{"median", s.Median},
		{"converged", s.Converged},
		{"population_init_seconds", res.PopulationInit.Seconds()},
		{"evolution_seconds", res.Evolution.Seconds()},
	}
	for i, kv := range rows {
		if err = setRow(f, SheetSummary, i+1, kv[0], kv[1]); err != nil {
			return err
		}
	}

	if err = f.Write(w); err != nil {
		return fmt.Errorf("report: write workbook: %w", err)
	}

	return nil
}

// setRow writes values into consecutive cells of row (1-based) from column A.
func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("report: cell %d,%d: %w", col+1, row, err)
		}
		if err = f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("report: set %s!%s: %w", sheet, cell, err)
		}
	}

	return nil
}
