package conformance

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/numrt/internal/format"
)

// ProgressUpdate reports the completion fraction of one symbol's task.
type ProgressUpdate struct {
	// Index is the task index, in table order.
	Index int
	// Value is the completed fraction, 0.0 to 1.0.
	Value float64
}

// ProgressReporter displays progress while a run is in flight. This keeps
// the runner independent of the presentation layer.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed and then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer) {
	f(wg, progressChan, numTasks, out)
}

// NullProgressReporter drains the channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// ProgressAggregator folds per-task updates into an average and an ETA.
type ProgressAggregator struct {
	state    *format.ProgressWithETA
	numTasks int
}

// NewProgressAggregator returns nil if numTasks <= 0.
func NewProgressAggregator(numTasks int) *ProgressAggregator {
	if numTasks <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgressWithETA(numTasks), numTasks: numTasks}
}

// AggregatedProgress is the result of folding one update.
type AggregatedProgress struct {
	Index           int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update folds u into the aggregate.
func (a *ProgressAggregator) Update(u ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(u.Index, u.Value)
	return AggregatedProgress{Index: u.Index, Value: u.Value, AverageProgress: avg, ETA: eta}
}

// CalculateAverage returns the current average without updating.
func (a *ProgressAggregator) CalculateAverage() float64 { return a.state.CalculateAverage() }

// GetETA returns the current estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration { return a.state.GetETA() }

// NumTasks returns the number of tracked tasks.
func (a *ProgressAggregator) NumTasks() int { return a.numTasks }
