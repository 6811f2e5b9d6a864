// Package eval performs exactly one table call from textual input: it
// resolves an entry point name under the active calling convention, parses
// the operands for the entry's kind and reports the outcome.
//
// It is not an expression evaluator. One request is one entry point.
package eval

import (
	"fmt"

	"github.com/agbru/numrt/abi"
	apperrors "github.com/agbru/numrt/internal/errors"
	"github.com/agbru/numrt/numeric"
)

// Evaluation is the outcome of one call. Arithmetic failures
// (DivisionByZero, Overflow) are outcomes, not errors: Err is set and
// Status classifies it.
type Evaluation struct {
	// Name is the entry point name under the active naming scheme.
	Name     string
	Symbol   numeric.Symbol
	Operands []numeric.Value
	Result   numeric.Value
	// Word is Result encoded under the active convention.
	Word   uint64
	Status abi.Status
	Err    error
}

// Failed reports whether the call ended in an arithmetic failure.
func (e Evaluation) Failed() bool { return e.Err != nil }

// Observer is notified of every completed evaluation.
type Observer interface {
	ObserveEvaluation(Evaluation)
}

// Evaluator owns a resolver for one convention. It is safe for concurrent use.
type Evaluator struct {
	resolver  *abi.Resolver
	observers []Observer
}

// Option configures an Evaluator during construction.
type Option func(*Evaluator)

// WithObserver registers o.
func WithObserver(o Observer) Option {
	return func(e *Evaluator) { e.observers = append(e.observers, o) }
}

// New builds an evaluator for conv.
func New(conv abi.Convention, opts ...Option) (*Evaluator, error) {
	r, err := abi.NewResolver(conv)
	if err != nil {
		return nil, apperrors.ConfigError{Message: err.Error()}
	}
	e := &Evaluator{resolver: r}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Convention returns the active convention.
func (e *Evaluator) Convention() abi.Convention { return e.resolver.Convention() }

// Bindings lists the entry points in table order.
func (e *Evaluator) Bindings() []*abi.Binding { return e.resolver.Bindings() }

// Evaluate resolves name, parses operands and performs the call.
//
// The returned error is non-nil only for requests that could not be made:
// an unknown name (*abi.UnknownSymbolError) or malformed operands
// (apperrors.ValidationError).
func (e *Evaluator) Evaluate(name string, operands ...string) (Evaluation, error) {
	b, err := e.resolver.Resolve(name)
	if err != nil {
		return Evaluation{}, err
	}
	if len(operands) != b.Entry.Arity() {
		return Evaluation{}, apperrors.ValidationError{
			Field:   "operands",
			Message: fmt.Sprintf("%s takes %d operand(s), got %d", name, b.Entry.Arity(), len(operands)),
		}
	}
	args := make([]numeric.Value, len(operands))
	for i, s := range operands {
		v, err := ParseOperand(b.Symbol().Kind, s)
		if err != nil {
			return Evaluation{}, apperrors.ValidationError{Field: operandField(i), Message: err.Error()}
		}
		args[i] = v
	}
	return e.call(b, args)
}

// EvaluateValues is Evaluate for already parsed operands.
func (e *Evaluator) EvaluateValues(name string, operands ...numeric.Value) (Evaluation, error) {
	b, err := e.resolver.Resolve(name)
	if err != nil {
		return Evaluation{}, err
	}
	return e.call(b, operands)
}

func (e *Evaluator) call(b *abi.Binding, args []numeric.Value) (Evaluation, error) {
	ev := Evaluation{Name: b.Name, Symbol: b.Symbol(), Operands: args}

	var (
		result  numeric.Value
		callErr error
	)
	trapErr := abi.Guard(func() {
		result, callErr = b.CallValues(args...)
	})
	if trapErr != nil {
		callErr = trapErr
	}

	if abi.StatusOf(callErr) == abi.StatusInvalid {
		return Evaluation{}, apperrors.ValidationError{Field: "operands", Message: callErr.Error()}
	}
	ev.Status = abi.StatusOf(callErr)
	ev.Err = callErr
	if callErr == nil {
		ev.Result = result
		ev.Word = e.resolver.Convention().Encode(result)
	}
	for _, o := range e.observers {
		o.ObserveEvaluation(ev)
	}
	return ev, nil
}

func operandField(i int) string {
	return string(rune('a' + i))
}
