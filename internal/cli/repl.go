package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agbru/numrt/abi"
	"github.com/agbru/numrt/internal/eval"
	"github.com/agbru/numrt/internal/ui"
	"github.com/agbru/numrt/numeric"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	Convention abi.Convention
	// Options are passed to every evaluator the session builds.
	Options []eval.Option
	// HexOutput displays integer results in hexadecimal.
	HexOutput bool
}

// REPL is an interactive session over one evaluator. Toggling the checked
// table rebuilds the evaluator.
type REPL struct {
	config    REPLConfig
	evaluator *eval.Evaluator
	in        io.Reader
	out       io.Writer
}

// NewREPL creates a session for config.Convention.
func NewREPL(config REPLConfig) (*REPL, error) {
	ev, err := eval.New(config.Convention, config.Options...)
	if err != nil {
		return nil, err
	}
	return &REPL{
		config:    config,
		evaluator: ev,
		in:        os.Stdin,
		out:       os.Stdout,
	}, nil
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads commands until "exit" or EOF.
func (r *REPL) Start() {
	fmt.Fprintf(r.out, "%s\n", ui.Header("numrt interactive mode"))
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.Colorize(ui.ColorGreen(), "numrt> "))

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%s\n", ui.Colorize(ui.ColorRed(), "read error: "+err.Error()))
			return
		}
		eof := err != nil

		input = strings.TrimSpace(input)
		if input != "" && !r.processCommand(input) {
			return
		}
		if eof {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, line := range [][2]string{
		{"call <name> <a> [b]", "Invoke an entry point"},
		{"<name> <a> [b]", "Shorthand for call"},
		{"list [prefix]", "List entry points"},
		{"checked", "Toggle the checked table"},
		{"hex", "Toggle hexadecimal display"},
		{"status", "Display the active convention"},
		{"help", "Display this help"},
		{"exit / quit", "Exit interactive mode"},
	} {
		fmt.Fprintf(r.out, "  %s%-20s%s - %s\n", ui.ColorYellow(), line[0], ui.ColorReset(), line[1])
	}
}

// processCommand executes one line. It returns false when the session
// should end.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "call", "c":
		if len(args) == 0 {
			fmt.Fprintf(r.out, "%s\n", ui.Colorize(ui.ColorRed(), "Usage: call <name> <a> [b]"))
			return true
		}
		r.call(args[0], args[1:])
	case "list", "ls":
		r.cmdList(args)
	case "checked":
		r.cmdChecked()
	case "hex":
		r.config.HexOutput = !r.config.HexOutput
		fmt.Fprintf(r.out, "Hexadecimal display: %s\n", ui.Colorize(ui.ColorGreen(), onOff(r.config.HexOutput)))
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%s\n", ui.Colorize(ui.ColorGreen(), "Goodbye!"))
		return false
	default:
		// entry point names are case sensitive under custom naming schemes
		r.call(parts[0], args)
	}
	return true
}

func (r *REPL) call(name string, operands []string) {
	ev, err := r.evaluator.Evaluate(name, operands...)
	if err != nil {
		var unknown *abi.UnknownSymbolError
		if errors.As(err, &unknown) {
			fmt.Fprintf(r.out, "%s\n", ui.Colorize(ui.ColorRed(), "Unknown command or entry point: "+name))
			fmt.Fprintf(r.out, "Type %s to see available commands.\n", ui.Colorize(ui.ColorYellow(), "help"))
			return
		}
		fmt.Fprintf(r.out, "%s\n", ui.Colorize(ui.ColorRed(), "Error: "+err.Error()))
		return
	}
	_ = DisplayEvaluation(r.out, ev, OutputConfig{Hex: r.config.HexOutput})
}

func (r *REPL) cmdList(args []string) {
	bindings := r.evaluator.Bindings()
	if len(args) > 0 {
		filtered := bindings[:0]
		for _, b := range bindings {
			if strings.HasPrefix(b.Name, args[0]) {
				filtered = append(filtered, b)
			}
		}
		bindings = filtered
	}
	_ = DisplaySymbols(r.out, r.config.Convention, bindings, OutputConfig{})
}

func (r *REPL) cmdChecked() {
	conv := r.config.Convention
	if conv.Semantics == numeric.Checked {
		conv.Semantics = numeric.Wrapping
	} else {
		conv.Semantics = numeric.Checked
	}
	ev, err := eval.New(conv, r.config.Options...)
	if err != nil {
		fmt.Fprintf(r.out, "%s\n", ui.Colorize(ui.ColorRed(), "Error: "+err.Error()))
		return
	}
	r.config.Convention, r.evaluator = conv, ev
	fmt.Fprintf(r.out, "Integer semantics: %s\n", ui.Colorize(ui.ColorGreen(), conv.Semantics.String()))
}

func (r *REPL) cmdStatus() {
	c := r.config.Convention
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, row := range [][2]string{
		{"Naming", c.Naming.Prefix + c.Naming.Template},
		{"Semantics", c.Semantics.String()},
		{"Errors", c.Errors.String()},
		{"Narrow ints", c.NarrowInts.String()},
		{"Float32", c.Float32.String()},
		{"Hexadecimal", onOff(r.config.HexOutput)},
	} {
		fmt.Fprintf(r.out, "  %-13s %s\n", row[0]+":", ui.Colorize(ui.ColorCyan(), row[1]))
	}
	fmt.Fprintln(r.out)
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
