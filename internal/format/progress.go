package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps estimates produced from very slow early rates.
const maxETA = 24 * time.Hour

// ProgressState tracks the completion fraction of a fixed number of
// concurrent tasks, one slot per task. It is safe for concurrent use.
type ProgressState struct {
	mu         sync.Mutex
	numTasks   int
	progresses []float64
}

// NewProgressState creates a state for n tasks, all at zero.
func NewProgressState(n int) *ProgressState {
	if n < 0 {
		n = 0
	}
	return &ProgressState{numTasks: n, progresses: make([]float64, n)}
}

// Update records the progress of task i, clamped to [0, 1]. Out of range
// indices are ignored.
func (s *ProgressState) Update(i int, progress float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= s.numTasks {
		return
	}
	s.progresses[i] = clamp01(progress)
}

// CalculateAverage returns the mean progress over all tasks.
func (s *ProgressState) CalculateAverage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.averageLocked()
}

func (s *ProgressState) averageLocked() float64 {
	if s.numTasks == 0 {
		return 0
	}
	var sum float64
	for _, p := range s.progresses {
		sum += p
	}
	return sum / float64(s.numTasks)
}

// ProgressWithETA adds a remaining-time estimate derived from the average
// progress rate since creation.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	progressRate float64 // average progress per second
}

// NewProgressWithETA creates a tracker for n tasks starting now.
func NewProgressWithETA(n int) *ProgressWithETA {
	return &ProgressWithETA{ProgressState: NewProgressState(n), startTime: time.Now()}
}

// UpdateWithETA records progress for task i and returns the new average and
// the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(i int, progress float64) (float64, time.Duration) {
	p.Update(i, progress)
	avg := p.CalculateAverage()
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 && avg > 0 {
		p.progressRate = avg / elapsed
	}
	return avg, p.GetETA()
}

// GetETA returns the estimated time remaining, or zero while no rate is known.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA {
		eta = maxETA
	}
	return eta
}

// ProgressBar renders progress as a bar of length cells.
func ProgressBar(progress float64, length int) string {
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar] 42.0% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
