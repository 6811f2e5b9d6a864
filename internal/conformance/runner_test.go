package conformance

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/numrt/abi"
	apperrors "github.com/agbru/numrt/internal/errors"
	"github.com/agbru/numrt/numeric"
)

func resolverFor(t *testing.T, conv abi.Convention) *abi.Resolver {
	t.Helper()
	r, err := abi.NewResolver(conv)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r
}

func TestRunAllConventionsPass(t *testing.T) {
	t.Parallel()
	checked := abi.DefaultConvention()
	checked.Semantics = numeric.Checked

	exotic := abi.DefaultConvention()
	exotic.NarrowInts = abi.ZeroExtend
	exotic.Float32 = abi.Float32Widened
	exotic.Errors = abi.TrapErrors
	exotic.Naming = abi.Naming{Template: "{op}_{type}", Prefix: "rt_"}

	tests := []struct {
		name string
		conv abi.Convention
	}{
		{"default", abi.DefaultConvention()},
		{"checked", checked},
		{"zero-extended widened trapping", exotic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			report, err := Run(context.Background(), resolverFor(t, tt.conv),
				Options{Samples: 200, Seed: 42, Workers: 4}, nil, io.Discard, nil)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if len(report.Results) != 25 {
				t.Fatalf("checked %d symbols, want 25", len(report.Results))
			}
			for _, res := range report.Results {
				for i, f := range res.Failures {
					if i == 3 {
						break
					}
					t.Errorf("%s: %s", res.Name, f)
				}
			}
			if report.Err() != nil {
				t.Errorf("report error: %v", report.Err())
			}
			// every symbol ran its edge vectors plus the samples
			if report.Total() < 25*(200+7) {
				t.Errorf("Total = %d, too few vectors", report.Total())
			}
		})
	}
}

func TestRunSelectedSymbols(t *testing.T) {
	t.Parallel()
	report, err := Run(context.Background(), resolverFor(t, abi.DefaultConvention()),
		Options{Samples: 10, Seed: 1, Symbols: []numeric.Symbol{sym(numeric.I16, numeric.Divide)}},
		nil, io.Discard, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Results) != 1 || report.Results[0].Name != "i16_divide" {
		t.Errorf("results = %+v", report.Results)
	}
	if report.Results[0].Vectors != 49+10 {
		t.Errorf("Vectors = %d, want 59", report.Results[0].Vectors)
	}
}

type countingReporter struct {
	mu      sync.Mutex
	updates int
	final   map[int]float64
}

func (c *countingReporter) DisplayProgress(wg *sync.WaitGroup, ch <-chan ProgressUpdate, numTasks int, _ io.Writer) {
	defer wg.Done()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.final = make(map[int]float64, numTasks)
	for u := range ch {
		c.updates++
		c.final[u.Index] = u.Value
	}
}

func TestRunReportsProgress(t *testing.T) {
	t.Parallel()
	reporter := &countingReporter{}
	_, err := Run(context.Background(), resolverFor(t, abi.DefaultConvention()),
		Options{Samples: 50, Seed: 3, Workers: 1}, reporter, io.Discard, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	reporter.mu.Lock()
	defer reporter.mu.Unlock()
	if reporter.updates == 0 {
		t.Fatal("no progress updates received")
	}
	for idx, v := range reporter.final {
		if v != 1 {
			t.Errorf("task %d finished at %v, want 1", idx, v)
		}
	}
}

func TestRunTimeout(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := Run(ctx, resolverFor(t, abi.DefaultConvention()),
		Options{Samples: 1000, Seed: 1}, NullProgressReporter{}, io.Discard, nil)
	var timeoutErr apperrors.TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("error = %v, want TimeoutError", err)
	}
	if apperrors.ExitCodeFor(err) != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d", apperrors.ExitCodeFor(err))
	}
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, resolverFor(t, abi.DefaultConvention()), Options{}, nil, io.Discard, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

type recordingPresenter struct {
	summary, failures int
	limit             int
}

func (p *recordingPresenter) PresentSummary(Report, io.Writer) { p.summary++ }
func (p *recordingPresenter) PresentFailures(_ Report, limit int, _ io.Writer) {
	p.failures++
	p.limit = limit
}

func TestAnalyzeResults(t *testing.T) {
	t.Parallel()
	pass := SymbolResult{Name: "i32_add", Vectors: 10}
	fail := SymbolResult{Name: "i32_divide", Vectors: 10, Failures: []Failure{{Property: "reference"}}}

	tests := []struct {
		name         string
		results      []SymbolResult
		wantCode     int
		wantFailures int
	}{
		{"all pass", []SymbolResult{pass}, apperrors.ExitSuccess, 0},
		{"mismatch", []SymbolResult{pass, fail}, apperrors.ExitErrorMismatch, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &recordingPresenter{}
			report := Report{Results: append([]SymbolResult(nil), tt.results...)}
			var out bytes.Buffer
			if code := AnalyzeResults(report, p, &out); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if p.summary != 1 || p.failures != tt.wantFailures {
				t.Errorf("presenter calls = %d/%d", p.summary, p.failures)
			}
			if tt.wantFailures > 0 {
				if report.Results[0].Name != "i32_divide" {
					t.Error("failing symbols should be listed first")
				}
				if p.limit != MaxFailuresShown {
					t.Errorf("limit = %d", p.limit)
				}
			}
		})
	}
}

func TestProgressAggregator(t *testing.T) {
	t.Parallel()
	if NewProgressAggregator(0) != nil {
		t.Error("aggregator for zero tasks should be nil")
	}
	a := NewProgressAggregator(2)
	got := a.Update(ProgressUpdate{Index: 1, Value: 1})
	if got.AverageProgress != 0.5 || a.NumTasks() != 2 {
		t.Errorf("aggregate = %+v", got)
	}
}
