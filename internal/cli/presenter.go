package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/agbru/numrt/internal/conformance"
	"github.com/agbru/numrt/internal/format"
	"github.com/agbru/numrt/internal/ui"
)

// CLIResultPresenter renders verify reports as a colorized table.
type CLIResultPresenter struct {
	// Verbose lists passing symbols too.
	Verbose bool
}

var _ conformance.ResultPresenter = CLIResultPresenter{}

// PresentSummary displays one row per symbol with its vector count,
// duration and status. Padding is computed manually so ANSI codes do not
// disturb alignment.
func (p CLIResultPresenter) PresentSummary(report conformance.Report, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.Header("Conformance summary"))

	maxNameLen := len("Entry point")
	for _, res := range report.Results {
		maxNameLen = max(maxNameLen, len(res.Name))
	}

	fmt.Fprintf(out, "%sEntry point%s%s   %sVectors%s   %sDuration%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Entry point")),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())

	shown := 0
	for _, res := range report.Results {
		if res.Passed() && !p.Verbose {
			continue
		}
		shown++
		var status string
		switch {
		case res.Err != nil:
			status = ui.Colorize(ui.ColorRed(), fmt.Sprintf("✗ aborted (%v)", res.Err))
		case len(res.Failures) > 0:
			status = ui.Colorize(ui.ColorRed(), fmt.Sprintf("✗ %d mismatch(es)", len(res.Failures)))
		default:
			status = ui.Colorize(ui.ColorGreen(), "✓ pass")
		}
		fmt.Fprintf(out, "%s%s   %7s   %8s   %s\n",
			ui.Colorize(ui.ColorBlue(), res.Name), padRight("", maxNameLen-len(res.Name)),
			format.FormatCount(res.Vectors), durationCell(res),
			status)
	}
	if passed := len(report.Results) - shown; passed > 0 {
		fmt.Fprintf(out, "%s\n", ui.Colorize(ui.ColorGreen(), fmt.Sprintf("%d entry points passed", passed)))
	}

	fmt.Fprintf(out, "\n%s vectors checked in %s (seed %d, %s semantics)\n",
		format.FormatCount(report.Total()), format.FormatExecutionDuration(report.Duration),
		report.Seed, report.Convention.Semantics)
	if m := report.Mismatches(); m > 0 {
		fmt.Fprintf(out, "%s\n", ui.Colorize(ui.ColorRed(), fmt.Sprintf("%s mismatches", format.FormatCount(m))))
	} else {
		fmt.Fprintf(out, "%s\n", ui.Colorize(ui.ColorGreen(), "all vectors agree with the reference model"))
	}
}

// PresentFailures lists at most limit failing vectors per symbol.
func (CLIResultPresenter) PresentFailures(report conformance.Report, limit int, out io.Writer) {
	for _, res := range report.Results {
		if len(res.Failures) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n%s%s%s\n", ui.ColorBold(), res.Name, ui.ColorReset())
		for i, f := range res.Failures {
			if i == limit {
				fmt.Fprintf(out, "  … %d more\n", len(res.Failures)-limit)
				break
			}
			fmt.Fprintf(out, "  %s\n", f)
		}
	}
}

func durationCell(res conformance.SymbolResult) string {
	if res.Duration == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(res.Duration)
}

func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// JSONResultPresenter renders verify reports as a single JSON document.
type JSONResultPresenter struct{}

var _ conformance.ResultPresenter = JSONResultPresenter{}

type reportJSON struct {
	Seed       int64        `json:"seed"`
	Semantics  string       `json:"semantics"`
	Vectors    int          `json:"vectors"`
	Mismatches int          `json:"mismatches"`
	DurationMS float64      `json:"duration_ms"`
	Symbols    []symbolJSON `json:"symbols"`
}

type symbolJSON struct {
	Name     string   `json:"name"`
	Vectors  int      `json:"vectors"`
	Passed   bool     `json:"passed"`
	Error    string   `json:"error,omitempty"`
	Failures []string `json:"failures,omitempty"`
}

// PresentSummary writes the whole report, failures included.
func (JSONResultPresenter) PresentSummary(report conformance.Report, out io.Writer) {
	doc := reportJSON{
		Seed:       report.Seed,
		Semantics:  report.Convention.Semantics.String(),
		Vectors:    report.Total(),
		Mismatches: report.Mismatches(),
		DurationMS: float64(report.Duration.Microseconds()) / 1000,
	}
	for _, res := range report.Results {
		s := symbolJSON{Name: res.Name, Vectors: res.Vectors, Passed: res.Passed()}
		if res.Err != nil {
			s.Error = res.Err.Error()
		}
		for _, f := range res.Failures {
			s.Failures = append(s.Failures, f.String())
		}
		doc.Symbols = append(doc.Symbols, s)
	}
	_ = json.NewEncoder(out).Encode(doc)
}

// PresentFailures is a no-op: failures are part of the summary document.
func (JSONResultPresenter) PresentFailures(conformance.Report, int, io.Writer) {}
