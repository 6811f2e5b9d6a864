package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/numrt/internal/conformance"
	"github.com/agbru/numrt/internal/format"
	"github.com/agbru/numrt/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with an aggregated progress bar and ETA
// until progressChan is closed. It calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan conformance.ProgressUpdate, numTasks int, out io.Writer) {
	defer wg.Done()
	agg := conformance.NewProgressAggregator(numTasks)
	if agg == nil {
		for range progressChan {
		}
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(0, 0))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case u, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintf(out, "%s %s\n", progressSuffix(agg.CalculateAverage(), 0), ui.Colorize(ui.ColorGreen(), "done"))
				return
			}
			agg.Update(u)
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(agg.CalculateAverage(), agg.GetETA()))
		}
	}
}

func progressSuffix(progress float64, eta time.Duration) string {
	return " Verifying " + ui.Colorize(ui.ColorCyan(), format.FormatProgressBarWithETA(progress, eta, ProgressBarWidth))
}

// CLIProgressReporter displays verify progress with a spinner.
type CLIProgressReporter struct{}

var _ conformance.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements conformance.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan conformance.ProgressUpdate, numTasks int, out io.Writer) {
	DisplayProgress(wg, progressChan, numTasks, out)
}
