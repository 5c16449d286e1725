// Command genet generates knapsack scenarios and solves them with the
// genetic algorithm.
//
// Usage:
//
//	genet generate -n N -w MAX_WEIGHT -s MAX_SIZE [-seed S] OUTPUT
//	genet train [flags] INPUT
//	genet print-scenario INPUT
//
// The train defaults come from GENET_* environment variables (see package
// config); flags override them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/genet/config"
)

const usage = `usage:
  genet generate -n N -w MAX_WEIGHT -s MAX_SIZE [-seed S] OUTPUT
  genet train [flags] INPUT
  genet print-scenario INPUT
`

// app carries the process dependencies so commands can run in tests.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (*config.Config, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{stdout: os.Stdout, stderr: os.Stderr, loadConfig: config.Load}
	code := a.run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run dispatches to a subcommand and returns the exit code.
func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "generate":
		err = a.generate(args[1:])
	case "train":
		err = a.train(ctx, args[1:])
	case "print-scenario":
		err = a.printScenario(args[1:])
	case "-h", "-help", "--help", "help":
		fmt.Fprint(a.stdout, usage)
		return 0
	default:
		fmt.Fprintf(a.stderr, "genet: unknown command %q\n%s", args[0], usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	default:
		return 1
	}
}

// logger builds the stderr logger used by every command.
func (a *app) logger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
}

// errUsage reports a wrong number of positional arguments.
var errUsage = errors.New("genet: wrong arguments")

func positional(fs *flag.FlagSet, name string) (string, error) {
	if fs.NArg() != 1 {
		fmt.Fprintf(fs.Output(), "genet %s: expected exactly one %s argument, got %d\n", fs.Name(), name, fs.NArg())
		fs.Usage()
		return "", errUsage
	}

	return fs.Arg(0), nil
}
