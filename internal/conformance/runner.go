package conformance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/numrt/abi"
	apperrors "github.com/agbru/numrt/internal/errors"
	"github.com/agbru/numrt/internal/logging"
	"github.com/agbru/numrt/numeric"
)

// ProgressBufferMultiplier sizes the progress channel relative to the
// number of tasks so workers rarely block on a slow display.
const ProgressBufferMultiplier = 5

// progressEvery is the number of vectors between progress updates and
// context checks.
const progressEvery = 64

// Options configures a Run.
type Options struct {
	// Samples is the number of random vectors per symbol.
	Samples int
	Seed    int64
	// Workers bounds the number of symbols checked concurrently.
	Workers int
	// Symbols restricts the run; nil means every entry.
	Symbols []numeric.Symbol
}

// Failure is one vector whose outcome disagreed with the reference.
type Failure struct {
	Vector Vector
	Want   Expectation
	Got    numeric.Value
	GotErr error
	// Property names the check that failed: "reference" or "round-trip".
	Property string
}

func (f Failure) String() string {
	got := f.Got.String()
	if f.GotErr != nil {
		got = f.GotErr.Error()
	}
	want := f.Want.Value.String()
	if f.Want.Err != nil {
		want = f.Want.Err.Error()
	}
	return fmt.Sprintf("%s%v [%s]: got %s, want %s", f.Vector.Symbol, f.Vector.Operands, f.Property, got, want)
}

// SymbolResult summarizes one entry point.
type SymbolResult struct {
	Name     string
	Symbol   numeric.Symbol
	Vectors  int
	Failures []Failure
	Duration time.Duration
	// Err is set when the task stopped early, e.g. on cancellation.
	Err error
}

// Passed reports whether every vector matched.
func (r SymbolResult) Passed() bool { return r.Err == nil && len(r.Failures) == 0 }

// Report is the outcome of a Run.
type Report struct {
	Convention abi.Convention
	Seed       int64
	Results    []SymbolResult
	Duration   time.Duration
}

// Total returns the number of vectors checked.
func (r Report) Total() int {
	n := 0
	for _, res := range r.Results {
		n += res.Vectors
	}
	return n
}

// Mismatches returns the number of failing vectors.
func (r Report) Mismatches() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Failures)
	}
	return n
}

// Run checks every selected binding of resolver against the reference
// models. Symbols are checked concurrently, bounded by opts.Workers. The
// returned error is non-nil only if the run could not complete; mismatches
// are reported in the Report.
func Run(ctx context.Context, resolver *abi.Resolver, opts Options, reporter ProgressReporter, out io.Writer, logger logging.Logger) (Report, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if reporter == nil {
		reporter = NullProgressReporter{}
	}
	bindings, err := selectBindings(resolver, opts.Symbols)
	if err != nil {
		return Report{}, err
	}

	start := time.Now()
	report := Report{
		Convention: resolver.Convention(),
		Seed:       opts.Seed,
		Results:    make([]SymbolResult, len(bindings)),
	}

	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	progressChan := make(chan ProgressUpdate, len(bindings)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(bindings), out)

	for i, b := range bindings {
		idx, binding := i, b
		g.Go(func() error {
			res := checkBinding(gctx, resolver, binding, opts, func(p float64) {
				u := ProgressUpdate{Index: idx, Value: p}
				if p >= 1 {
					// reporters drain until close; the final update must not be dropped
					progressChan <- u
					return
				}
				select {
				case progressChan <- u:
				default:
				}
			})
			report.Results[idx] = res
			logger.Debug("symbol checked",
				logging.String("symbol", res.Name),
				logging.Int("vectors", res.Vectors),
				logging.Int("failures", len(res.Failures)),
				logging.Duration("duration", res.Duration))
			return res.Err
		})
	}

	runErr := g.Wait()
	close(progressChan)
	displayWg.Wait()
	report.Duration = time.Since(start)

	if runErr != nil {
		if errors.Is(runErr, context.DeadlineExceeded) {
			limit := report.Duration
			if deadline, ok := ctx.Deadline(); ok {
				limit = deadline.Sub(start)
			}
			return report, apperrors.TimeoutError{Operation: "verify", Limit: limit.Round(time.Millisecond)}
		}
		return report, apperrors.WrapError(runErr, "verify")
	}
	logger.Info("verification finished",
		logging.Int("symbols", len(report.Results)),
		logging.Int("vectors", report.Total()),
		logging.Int("mismatches", report.Mismatches()))
	return report, nil
}

func selectBindings(r *abi.Resolver, symbols []numeric.Symbol) ([]*abi.Binding, error) {
	if len(symbols) == 0 {
		return r.Bindings(), nil
	}
	out := make([]*abi.Binding, 0, len(symbols))
	for _, s := range symbols {
		b, err := r.ResolveSymbol(s)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func checkBinding(ctx context.Context, resolver *abi.Resolver, b *abi.Binding, opts Options, progress func(float64)) SymbolResult {
	start := time.Now()
	sym := b.Symbol()
	sem := resolver.Convention().Semantics
	widened := sym.Kind == numeric.F32 && resolver.Convention().Float32 == abi.Float32Widened
	res := SymbolResult{Name: b.Name, Symbol: sym}

	vectors := append(EdgeVectors(sym), RandomVectors(sym, opts.Samples, opts.Seed)...)

	var inverse *abi.Binding
	if sym.Op == numeric.Add && !sym.Kind.IsFloat() {
		inverse, _ = resolver.ResolveSymbol(numeric.Symbol{Kind: sym.Kind, Op: numeric.Subtract})
	}

	for i, v := range vectors {
		if i%progressEvery == 0 {
			if err := ctx.Err(); err != nil {
				res.Err = err
				break
			}
			progress(float64(i) / float64(len(vectors)))
		}
		want := Expect(sem, sym, v.Operands...)
		if widened && want.Value.IsNaN() {
			// widening to binary64 quiets signaling NaNs
			want.AnyNaN = true
		}
		got, err := invoke(resolver.Convention(), b, v.Operands)
		res.Vectors++
		if !want.Matches(got, err) {
			res.Failures = append(res.Failures, Failure{Vector: v, Want: want, Got: got, GotErr: err, Property: "reference"})
			continue
		}
		if inverse != nil && err == nil {
			// subtract(add(a, b), b) == a
			back, err := invoke(resolver.Convention(), inverse, []numeric.Value{got, v.Operands[1]})
			roundTrip := Expectation{Value: v.Operands[0]}
			if !roundTrip.Matches(back, err) {
				res.Failures = append(res.Failures, Failure{Vector: v, Want: roundTrip, Got: back, GotErr: err, Property: "round-trip"})
			}
		}
	}
	if res.Err == nil {
		progress(1)
	}
	res.Duration = time.Since(start)
	return res
}

// invoke sends operands through the binding's word interface, so the
// convention's encoding is exercised along with the arithmetic.
func invoke(conv abi.Convention, b *abi.Binding, args []numeric.Value) (got numeric.Value, err error) {
	words := make([]uint64, len(args))
	for i, a := range args {
		words[i] = conv.Encode(a)
	}
	var w uint64
	if trapErr := abi.Guard(func() { w, err = b.Call(words...) }); trapErr != nil {
		return numeric.Value{}, trapErr
	}
	if err != nil {
		return numeric.Value{}, err
	}
	return conv.Decode(b.Symbol().Kind, w), nil
}
