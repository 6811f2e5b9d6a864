//go:generate mockgen -source=evaluator.go -destination=mocks/mock_evaluator.go -package=mocks

package server

import (
	"github.com/agbru/numrt/abi"
	"github.com/agbru/numrt/internal/eval"
)

// Evaluator is the part of *eval.Evaluator the service depends on.
type Evaluator interface {
	// Evaluate performs one call from textual operands.
	Evaluate(name string, operands ...string) (eval.Evaluation, error)
	// Bindings lists the entry points of the active convention.
	Bindings() []*abi.Binding
	// Convention returns the active convention.
	Convention() abi.Convention
}

var _ Evaluator = (*eval.Evaluator)(nil)
