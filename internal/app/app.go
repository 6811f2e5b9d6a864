// Package app wires configuration, the calling convention and the
// presentation layer into the numrt commands.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/numrt/abi"
	"github.com/agbru/numrt/internal/cli"
	"github.com/agbru/numrt/internal/config"
	apperrors "github.com/agbru/numrt/internal/errors"
	"github.com/agbru/numrt/internal/logging"
	"github.com/agbru/numrt/internal/ui"
	"github.com/agbru/numrt/numeric"
)

// Application represents one numrt invocation.
type Application struct {
	Config     config.AppConfig
	Convention abi.Convention
	Logger     logging.Logger
	ErrWriter  io.Writer
	// In feeds the REPL.
	In io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the REPL input.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithLogger replaces the console logger built from --log-level.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New parses args (including the program name), resolves the calling
// convention and builds the logger.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	programName := "numrt"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = config.ApplyAdaptiveDefaults(cfg)

	conv, err := loadConvention(app.Config)
	if err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return nil, err
	}
	app.Convention = conv

	if app.Logger == nil {
		logger, err := logging.NewConsoleLogger(errWriter, "numrt", app.Config.LogLevel)
		if err != nil {
			err = apperrors.NewConfigError("--log-level: %v", err)
			fmt.Fprintf(errWriter, "Error: %v\n", err)
			return nil, err
		}
		app.Logger = logger
	}
	return app, nil
}

// loadConvention reads the profile, if any, and applies --checked.
func loadConvention(cfg config.AppConfig) (abi.Convention, error) {
	conv := abi.DefaultConvention()
	if cfg.Profile != "" {
		loaded, err := abi.LoadProfile(cfg.Profile)
		if err != nil {
			return abi.Convention{}, apperrors.ConfigError{Message: err.Error()}
		}
		conv = loaded
	}
	if cfg.Checked {
		conv.Semantics = numeric.Checked
	}
	if _, err := abi.NewResolver(conv); err != nil {
		return abi.Convention{}, apperrors.ConfigError{Message: err.Error()}
	}
	return conv, nil
}

// Run executes the configured command and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)
	a.Logger.Debug("starting",
		logging.String("command", a.Config.Command),
		logging.String("semantics", a.Convention.Semantics.String()),
	)

	switch a.Config.Command {
	case "call":
		return a.runCall(out)
	case "list":
		return a.runList(out)
	case "verify":
		return a.runVerify(ctx, out)
	case "repl":
		return a.runREPL(out)
	case "serve":
		return a.runServe(ctx)
	case "profile":
		return a.fail(cli.DisplayProfile(out, a.Convention))
	case "completion":
		return a.runCompletion(out)
	case "version":
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	return a.fail(apperrors.NewConfigError("unknown command %q", a.Config.Command))
}

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{Quiet: a.Config.Quiet, Hex: a.Config.Hex, JSON: a.Config.JSON}
}

// fail reports err on the error writer and maps it to an exit code.
func (a *Application) fail(err error) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(a.ErrWriter, "%s\n", ui.Colorize(ui.ColorRed(), "Error: "+err.Error()))
	return apperrors.ExitCodeFor(err)
}

func (a *Application) runCompletion(out io.Writer) int {
	if len(a.Config.Args) != 1 {
		return a.fail(apperrors.NewConfigError("usage: completion <bash|zsh|fish>"))
	}
	r, err := abi.NewResolver(a.Convention)
	if err != nil {
		return a.fail(err)
	}
	if err := cli.GenerateCompletion(out, a.Config.Args[0], r.Names()); err != nil {
		return a.fail(apperrors.ConfigError{Message: err.Error()})
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
