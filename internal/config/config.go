// Package config parses the numrt command line and environment into an
// AppConfig. Priority is CLI flags > NUMRT_* environment variables > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"time"

	apperrors "github.com/agbru/numrt/internal/errors"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "NUMRT_"

const (
	DefaultTimeout  = time.Minute
	DefaultSamples  = 1000
	DefaultSeed     = 1
	DefaultAddr     = ":8080"
	DefaultLogLevel = "info"
)

// Commands lists the subcommands in the order they appear in usage output.
var Commands = []string{"call", "list", "verify", "repl", "serve", "profile", "completion", "version"}

// AppConfig is the fully resolved configuration of one invocation.
type AppConfig struct {
	// Command is the subcommand; Args are its positional arguments.
	Command string
	Args    []string

	// Profile is the path of a YAML calling convention profile.
	Profile string
	// Checked selects the checked table regardless of the profile.
	Checked bool

	Hex     bool
	JSON    bool
	Quiet   bool
	Verbose bool
	NoColor bool

	Timeout time.Duration
	Samples int
	Seed    int64
	// Workers bounds verify concurrency. Zero means adaptive.
	Workers int

	Addr     string
	LogLevel string
}

// Validate checks the values that flag parsing cannot.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	if c.Samples < 0 {
		return apperrors.NewConfigError("--samples must be non-negative, got %d", c.Samples)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("--workers must be non-negative, got %d", c.Workers)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	if !slices.Contains(Commands, c.Command) {
		return apperrors.NewConfigError("unknown command %q (want one of %v)", c.Command, Commands)
	}
	return nil
}

// ParseConfig parses args (without the program name). Usage and errors are
// written to errWriter. flag.ErrHelp is returned unchanged for -h.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	fs.StringVar(&cfg.Profile, "profile", "", "YAML calling convention profile.")
	fs.BoolVar(&cfg.Checked, "checked", false, "Use the checked table (overflow fails instead of wrapping).")
	fs.BoolVar(&cfg.Hex, "hex", false, "Show integer results and words in hexadecimal.")
	fs.BoolVar(&cfg.JSON, "json", false, "Print results as JSON.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only results.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Print operand words and per-symbol details.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Time limit for verify and server shutdown.")
	fs.IntVar(&cfg.Samples, "samples", DefaultSamples, "Random vectors per symbol for verify.")
	fs.Int64Var(&cfg.Seed, "seed", DefaultSeed, "Seed of the verify random vectors.")
	fs.IntVar(&cfg.Workers, "workers", 0, "Concurrent verify workers (0 = adaptive).")
	fs.StringVar(&cfg.Addr, "addr", DefaultAddr, "Listen address for serve.")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error.")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] <command> [args]\n\n", programName)
		fmt.Fprintln(errWriter, "Commands:")
		fmt.Fprintln(errWriter, "  call <symbol> <a> [b]   invoke one entry point")
		fmt.Fprintln(errWriter, "  list                    list entry points under the active profile")
		fmt.Fprintln(errWriter, "  verify                  run the conformance suite")
		fmt.Fprintln(errWriter, "  repl                    interactive session")
		fmt.Fprintln(errWriter, "  serve                   diagnostic HTTP service")
		fmt.Fprintln(errWriter, "  profile                 print the active profile as YAML")
		fmt.Fprintln(errWriter, "  completion <shell>      bash, zsh or fish completion script")
		fmt.Fprintln(errWriter, "  version                 print version information")
		fmt.Fprintln(errWriter, "\nFlags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&cfg, fs)

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return AppConfig{}, apperrors.NewConfigError("missing command")
	}
	cfg.Command, cfg.Args = rest[0], rest[1:]

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}
