package conformance

import (
	"io"
	"sort"

	apperrors "github.com/agbru/numrt/internal/errors"
)

// ResultPresenter renders a report. It decouples the runner from output
// formats (table, JSON).
type ResultPresenter interface {
	// PresentSummary displays one row per symbol.
	PresentSummary(report Report, out io.Writer)
	// PresentFailures lists failing vectors, at most limit per symbol.
	PresentFailures(report Report, limit int, out io.Writer)
}

// MaxFailuresShown bounds the failing vectors listed per symbol.
const MaxFailuresShown = 5

// Err returns an apperrors.MismatchError when any vector failed, else nil.
func (r Report) Err() error {
	if m := r.Mismatches(); m > 0 {
		return apperrors.MismatchError{Mismatches: m, Total: r.Total()}
	}
	return nil
}

// AnalyzeResults presents the report and returns the exit code of the run:
// ExitSuccess when every vector matched, ExitErrorMismatch otherwise.
// Failing symbols are listed first.
func AnalyzeResults(report Report, presenter ResultPresenter, out io.Writer) int {
	sort.SliceStable(report.Results, func(i, j int) bool {
		return !report.Results[i].Passed() && report.Results[j].Passed()
	})
	presenter.PresentSummary(report, out)
	err := report.Err()
	if err != nil {
		presenter.PresentFailures(report, MaxFailuresShown, out)
	}
	return apperrors.ExitCodeFor(err)
}
