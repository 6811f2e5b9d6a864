package app

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/numrt/abi"
	"github.com/agbru/numrt/internal/cli"
	"github.com/agbru/numrt/internal/conformance"
	apperrors "github.com/agbru/numrt/internal/errors"
	"github.com/agbru/numrt/internal/eval"
	"github.com/agbru/numrt/internal/logging"
	"github.com/agbru/numrt/internal/metrics"
	"github.com/agbru/numrt/internal/server"
)

// runCall performs one call. Arithmetic failures are displayed like results
// and then mapped to their dedicated exit codes.
func (a *Application) runCall(out io.Writer) int {
	if len(a.Config.Args) == 0 {
		return a.fail(apperrors.NewConfigError("usage: call <symbol> <a> [b]"))
	}
	e, err := eval.New(a.Convention)
	if err != nil {
		return a.fail(err)
	}
	ev, err := e.Evaluate(a.Config.Args[0], a.Config.Args[1:]...)
	if err != nil {
		return a.fail(err)
	}
	if err := cli.DisplayEvaluation(out, ev, a.outputConfig()); err != nil {
		return a.fail(err)
	}
	if ev.Failed() {
		return apperrors.ExitCodeFor(apperrors.EvaluationError{Symbol: ev.Name, Cause: ev.Err})
	}
	return apperrors.ExitSuccess
}

func (a *Application) runList(out io.Writer) int {
	r, err := abi.NewResolver(a.Convention)
	if err != nil {
		return a.fail(err)
	}
	return a.fail(cli.DisplaySymbols(out, a.Convention, r.Bindings(), a.outputConfig()))
}

// runVerify runs the conformance suite, optionally restricted to the entry
// points named on the command line.
func (a *Application) runVerify(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	resolver, err := abi.NewResolver(a.Convention)
	if err != nil {
		return a.fail(err)
	}
	opts := conformance.Options{
		Samples: a.Config.Samples,
		Seed:    a.Config.Seed,
		Workers: a.Config.Workers,
	}
	for _, name := range a.Config.Args {
		b, err := resolver.Resolve(name)
		if err != nil {
			return a.fail(err)
		}
		opts.Symbols = append(opts.Symbols, b.Symbol())
	}

	var (
		reporter    conformance.ProgressReporter = cli.CLIProgressReporter{}
		presenter   conformance.ResultPresenter  = cli.CLIResultPresenter{Verbose: a.Config.Verbose}
		progressOut                              = out
	)
	if a.Config.Quiet || a.Config.JSON {
		reporter, progressOut = conformance.NullProgressReporter{}, io.Discard
	}
	if a.Config.JSON {
		presenter = cli.JSONResultPresenter{}
	}

	a.Logger.Debug("verify",
		logging.Int("samples", opts.Samples),
		logging.Int("workers", opts.Workers),
		logging.Int("symbols", len(opts.Symbols)),
	)
	report, err := conformance.Run(ctx, resolver, opts, reporter, progressOut, a.Logger)
	if err != nil {
		return a.fail(err)
	}
	if a.Config.Quiet && !a.Config.JSON {
		if err := report.Err(); err != nil {
			return a.fail(err)
		}
		return apperrors.ExitSuccess
	}
	return conformance.AnalyzeResults(report, presenter, out)
}

func (a *Application) runREPL(out io.Writer) int {
	r, err := cli.NewREPL(cli.REPLConfig{Convention: a.Convention, HexOutput: a.Config.Hex})
	if err != nil {
		return a.fail(err)
	}
	r.SetInput(a.In)
	r.SetOutput(out)
	r.Start()
	return apperrors.ExitSuccess
}

// runServe starts the diagnostic service and blocks until SIGINT, SIGTERM
// or ctx cancellation.
func (a *Application) runServe(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	m := metrics.New()
	e, err := eval.New(a.Convention, eval.WithObserver(m))
	if err != nil {
		return a.fail(err)
	}
	srv := server.New(a.Config.Addr, e,
		server.WithMetrics(m),
		server.WithLogger(a.Logger),
	)
	if err := srv.ListenAndServe(ctx); err != nil {
		return a.fail(err)
	}
	return apperrors.ExitSuccess
}
