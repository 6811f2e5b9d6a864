// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayEvaluation], [DisplaySymbols], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatEvaluation], [FormatQuietEvaluation].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/numrt/abi"
	"github.com/agbru/numrt/internal/eval"
	"github.com/agbru/numrt/internal/format"
	"github.com/agbru/numrt/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// Quiet prints only the result, for scripts.
	Quiet bool
	// Hex renders integers as two's complement patterns.
	Hex bool
	// JSON emits one JSON object per evaluation.
	JSON bool
}

// EvaluationJSON is the machine-readable form of an evaluation.
type EvaluationJSON struct {
	Name     string   `json:"name"`
	Symbol   string   `json:"symbol"`
	Operands []string `json:"operands"`
	Result   string   `json:"result,omitempty"`
	Word     string   `json:"word,omitempty"`
	Status   string   `json:"status"`
	Error    string   `json:"error,omitempty"`
}

// NewEvaluationJSON converts ev.
func NewEvaluationJSON(ev eval.Evaluation, hex bool) EvaluationJSON {
	j := EvaluationJSON{
		Name:     ev.Name,
		Symbol:   ev.Symbol.String(),
		Operands: formatOperands(ev, hex),
		Status:   ev.Status.String(),
	}
	if ev.Failed() {
		j.Error = ev.Err.Error()
	} else {
		j.Result = format.FormatValue(ev.Result, hex)
		j.Word = format.FormatWord(ev.Word)
	}
	return j
}

func formatOperands(ev eval.Evaluation, hex bool) []string {
	ops := make([]string, len(ev.Operands))
	for i, v := range ev.Operands {
		ops[i] = format.FormatValue(v, hex)
	}
	return ops
}

// FormatQuietEvaluation returns the bare result, or the status name of a
// failed call.
func FormatQuietEvaluation(ev eval.Evaluation, hex bool) string {
	if ev.Failed() {
		return ev.Status.String()
	}
	return format.FormatValue(ev.Result, hex)
}

// FormatEvaluation renders ev as "name(a, b) = result".
func FormatEvaluation(ev eval.Evaluation, hex bool) string {
	call := fmt.Sprintf("%s(%s)", ui.Colorize(ui.ColorBlue(), ev.Name), strings.Join(formatOperands(ev, hex), ", "))
	if ev.Failed() {
		return fmt.Sprintf("%s failed: %s", call, ui.Colorize(ui.StatusColor(ev.Status.String()), ev.Status.String()))
	}
	return fmt.Sprintf("%s = %s", call, ui.Colorize(ui.ColorGreen()+ui.ColorBold(), format.FormatValue(ev.Result, hex)))
}

// DisplayEvaluation writes ev according to config.
func DisplayEvaluation(out io.Writer, ev eval.Evaluation, config OutputConfig) error {
	switch {
	case config.JSON:
		return json.NewEncoder(out).Encode(NewEvaluationJSON(ev, config.Hex))
	case config.Quiet:
		_, err := fmt.Fprintln(out, FormatQuietEvaluation(ev, config.Hex))
		return err
	}
	if _, err := fmt.Fprintln(out, FormatEvaluation(ev, config.Hex)); err != nil {
		return err
	}
	if ev.Failed() {
		_, err := fmt.Fprintf(out, "  %s\n", ev.Err)
		return err
	}
	_, err := fmt.Fprintf(out, "  word: %s\n", ui.Colorize(ui.ColorCyan(), format.FormatWord(ev.Word)))
	return err
}

// SymbolJSON is one row of `list --json`.
type SymbolJSON struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Arity  int    `json:"arity"`
}

// DisplaySymbols lists the entry points of a convention.
func DisplaySymbols(out io.Writer, conv abi.Convention, bindings []*abi.Binding, config OutputConfig) error {
	if config.JSON {
		rows := make([]SymbolJSON, len(bindings))
		for i, b := range bindings {
			rows[i] = SymbolJSON{Name: b.Name, Symbol: b.Symbol().String(), Arity: b.Entry.Arity()}
		}
		return json.NewEncoder(out).Encode(rows)
	}
	if config.Quiet {
		for _, b := range bindings {
			fmt.Fprintln(out, b.Name)
		}
		return nil
	}

	fmt.Fprintf(out, "%s\n", ui.Header(fmt.Sprintf("Entry points (%s semantics, %s errors)", conv.Semantics, conv.Errors)))
	width := 0
	for _, b := range bindings {
		width = max(width, len(b.Name))
	}
	for _, b := range bindings {
		args := "a"
		if b.Entry.Arity() == 2 {
			args = "a, b"
		}
		fmt.Fprintf(out, "  %s%s  %s(%s)\n",
			ui.Colorize(ui.ColorBlue(), b.Name), strings.Repeat(" ", width-len(b.Name)),
			b.Symbol(), args)
	}
	return nil
}

// DisplayProfile writes conv as a YAML profile.
func DisplayProfile(out io.Writer, conv abi.Convention) error {
	data, err := abi.MarshalProfile(conv)
	if err != nil {
		return fmt.Errorf("render profile: %w", err)
	}
	_, err = out.Write(data)
	return err
}
