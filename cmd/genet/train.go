package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/genet/config"
	"github.com/katalvlaran/genet/population"
	"github.com/katalvlaran/genet/report"
	"github.com/katalvlaran/genet/scenario"
	"github.com/katalvlaran/genet/train"
)

const shutdownTimeout = 5 * time.Second

// registerTrainFlags binds the train flags to cfg; the loaded values become
// the flag defaults, so only flags given on the command line override them.
func registerTrainFlags(fs *flag.FlagSet, cfg *config.Config, epsilon *float64) {
	fs.IntVar(&cfg.Train.GenerationLimit, "l", cfg.Train.GenerationLimit, "generation limit")
	fs.IntVar(&cfg.Train.GenerationLimit, "limit", cfg.Train.GenerationLimit, "generation limit")
	fs.IntVar(&cfg.Engine.PopulationSize, "p", cfg.Engine.PopulationSize, "population size")
	fs.IntVar(&cfg.Engine.PopulationSize, "population", cfg.Engine.PopulationSize, "population size")
	fs.IntVar(&cfg.Engine.TournamentSize, "t", cfg.Engine.TournamentSize, "tournament size")
	fs.IntVar(&cfg.Engine.TournamentSize, "tournament", cfg.Engine.TournamentSize, "tournament size")
	fs.Float64Var(&cfg.Engine.CrossoverProbability, "c", cfg.Engine.CrossoverProbability, "crossover probability")
	fs.Float64Var(&cfg.Engine.CrossoverProbability, "crossover", cfg.Engine.CrossoverProbability, "crossover probability")
	fs.Float64Var(&cfg.Engine.MutationProbability, "m", cfg.Engine.MutationProbability, "mutation probability")
	fs.Float64Var(&cfg.Engine.MutationProbability, "mutation", cfg.Engine.MutationProbability, "mutation probability")
	fs.Float64Var(epsilon, "e", *epsilon, "convergence epsilon (negative = disabled)")
	fs.Float64Var(epsilon, "epsilon", *epsilon, "convergence epsilon (negative = disabled)")
	fs.Int64Var(&cfg.Engine.Seed, "seed", cfg.Engine.Seed, "RNG seed (0 = fixed default)")
	fs.IntVar(&cfg.Train.Runs, "runs", cfg.Train.Runs, "independent runs; the report shows the best one")
	fs.IntVar(&cfg.Engine.Workers, "workers", cfg.Engine.Workers, "goroutine bound (0 = GOMAXPROCS)")
	fs.StringVar(&cfg.Report.Format, "format", cfg.Report.Format, "report format: text, csv or xlsx")
	fs.StringVar(&cfg.Report.Output, "o", cfg.Report.Output, "report file (default stdout)")
	fs.StringVar(&cfg.Report.Output, "out", cfg.Report.Output, "report file (default stdout)")
	fs.StringVar(&cfg.Report.Average, "average", cfg.Report.Average, "write the mean best per generation over all runs to this CSV file")
	fs.StringVar(&cfg.Metrics.Addr, "metrics-addr", cfg.Metrics.Addr, "serve Prometheus metrics on this address")
}

func (a *app) train(ctx context.Context, args []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		a.logger(slog.LevelInfo).Error("cannot load configuration", slog.Any("error", err))
		return err
	}

	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	epsilon := -1.0
	if cfg.Train.Epsilon != nil {
		epsilon = *cfg.Train.Epsilon
	}
	registerTrainFlags(fs, cfg, &epsilon)
	if err = fs.Parse(args); err != nil {
		return err
	}
	input, err := positional(fs, "INPUT")
	if err != nil {
		return err
	}
	// A negative epsilon on the command line or in the environment disables
	// early stopping.
	cfg.Train.Epsilon = nil
	if epsilon >= 0 {
		cfg.Train.Epsilon = &epsilon
	}

	log := a.logger(cfg.Log.Level)
	if err = cfg.Validate(); err != nil {
		log.Error("invalid configuration", slog.Any("error", err))
		return err
	}
	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		log.Error("invalid report format", slog.Any("error", err))
		return err
	}

	loadStart := time.Now()
	sc, err := scenario.Load(input)
	if err != nil {
		log.Error("cannot load scenario", slog.String("path", input), slog.Any("error", err))
		return err
	}
	log.Info("scenario loaded",
		slog.String("path", input),
		slog.Int("objects", sc.NumberOfObjects),
		slog.Duration("elapsed", time.Since(loadStart)),
	)

	var reg prometheus.Registerer
	if cfg.Metrics.Addr != "" {
		r := prometheus.NewRegistry()
		r.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		stopServer, serr := serveMetrics(cfg.Metrics.Addr, r, log)
		if serr != nil {
			log.Error("cannot start metrics server", slog.String("addr", cfg.Metrics.Addr), slog.Any("error", serr))
			return serr
		}
		defer stopServer()
		reg = r
	}

	results, trainErr := a.trainRuns(ctx, sc, cfg, log, reg)
	if len(results) == 0 {
		log.Error("training failed", slog.Any("error", trainErr))
		return trainErr
	}

	if err = a.writeReport(cfg.Report.Output, format, bestRun(results)); err != nil {
		log.Error("cannot write report", slog.Any("error", err))
		return err
	}
	if cfg.Report.Average != "" {
		err = writeFile(cfg.Report.Average, func(w io.Writer) error { return report.WriteAverageCSV(w, results) })
		if err != nil {
			log.Error("cannot write average", slog.Any("error", err))
			return err
		}
	}
	if trainErr != nil {
		log.Error("training interrupted", slog.Int("runs", len(results)), slog.Any("error", trainErr))
		return trainErr
	}

	return nil
}

// trainRuns performs cfg.Train.Runs independent runs with seeds from
// cfg.RunSeed. It stops at the first error and returns every run that
// completed at least one generation.
func (a *app) trainRuns(ctx context.Context, sc scenario.Scenario, cfg *config.Config, log *slog.Logger, reg prometheus.Registerer) ([]train.Result, error) {
	results := make([]train.Result, 0, cfg.Train.Runs)
	for i := 0; i < cfg.Train.Runs; i++ {
		opts := cfg.TrainOptions(log, reg)
		if i > 0 {
			opts = append(opts, train.WithEngineOptions(population.WithSeed(cfg.RunSeed(i))))
		}
		res, err := train.Train(ctx, sc, cfg.PopulationConfig(), opts...)
		if res.Generations > 0 {
			results = append(results, res)
		}
		if err != nil {
			return results, err
		}
		if cfg.Train.Runs > 1 {
			log.Info("run finished",
				slog.Int("run", i),
				slog.String("run_id", res.RunID.String()),
				slog.Int64("best_ever", res.BestEver),
			)
		}
	}

	return results, nil
}

// bestRun returns the run with the highest BestEver, the first on ties.
func bestRun(results []train.Result) train.Result {
	best := results[0]
	for _, r := range results[1:] {
		if r.BestEver > best.BestEver {
			best = r
		}
	}

	return best
}

func (a *app) writeReport(path string, format report.Format, res train.Result) error {
	if path == "" {
		return report.Write(a.stdout, format, res)
	}

	return writeFile(path, func(w io.Writer) error { return report.Write(w, format, res) })
}

// writeFile creates path and passes it to write, reporting the first of the
// write and close errors.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("genet: create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("genet: close %q: %w", path, cerr)
		}
	}()

	return write(f)
}

// serveMetrics starts a promhttp server for reg on addr and returns a
// function that shuts it down.
func serveMetrics(addr string, reg *prometheus.Registry, log *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", slog.Any("error", err))
		}
	}()
	log.Info("serving metrics", slog.String("addr", ln.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("metrics server shutdown", slog.Any("error", err))
		}
	}, nil
}
