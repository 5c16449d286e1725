package main

import (
	"flag"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/genet/population"
	"github.com/katalvlaran/genet/scenario"
)

func (a *app) generate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var (
		n, w, s int
		seed    int64
	)
	fs.IntVar(&n, "n", 0, "number of objects (>= 2)")
	fs.IntVar(&w, "w", 0, "weight budget (> 0)")
	fs.IntVar(&s, "s", 0, "size budget (> 0)")
	fs.Int64Var(&seed, "seed", 0, "RNG seed (0 = fixed default)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	output, err := positional(fs, "OUTPUT")
	if err != nil {
		return err
	}

	log := a.logger(slog.LevelInfo)
	for _, v := range []struct {
		name string
		val  int
	}{{"n", n}, {"w", w}, {"s", s}} {
		if v.val < 0 || v.val > 1<<31-1 {
			err = fmt.Errorf("%w: -%s %d out of int32 range", scenario.ErrGenerateParams, v.name, v.val)
			log.Error("invalid generate flags", slog.Any("error", err))
			return err
		}
	}

	sc, err := scenario.Generate(population.NewRand(seed), scenario.GenerateParams{
		NumberOfObjects: int32(n),
		MaxWeight:       int32(w),
		MaxSize:         int32(s),
	})
	if err != nil {
		log.Error("cannot generate scenario", slog.Any("error", err))
		return err
	}
	if err = scenario.Save(output, sc); err != nil {
		log.Error("cannot save scenario", slog.String("path", output), slog.Any("error", err))
		return err
	}
	log.Info("scenario written",
		slog.String("path", output),
		slog.Int("objects", sc.NumberOfObjects),
		slog.Int64("total_weight", sc.TotalWeight()),
		slog.Int64("total_size", sc.TotalSize()),
	)

	return nil
}

func (a *app) printScenario(args []string) error {
	fs := flag.NewFlagSet("print-scenario", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	input, err := positional(fs, "INPUT")
	if err != nil {
		return err
	}

	sc, err := scenario.Load(input)
	if err != nil {
		a.logger(slog.LevelInfo).Error("cannot load scenario", slog.String("path", input), slog.Any("error", err))
		return err
	}
	fmt.Fprint(a.stdout, sc.String())

	return nil
}
