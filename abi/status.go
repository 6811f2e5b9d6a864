package abi

import (
	"errors"
	"fmt"

	"github.com/agbru/numrt/numeric"
)

// Status is the integer form of an arithmetic outcome, for callers that
// report conditions through a status register instead of errors.
type Status int

const (
	StatusOK             Status = 0
	StatusDivisionByZero Status = 1
	StatusOverflow       Status = 2
	// StatusInvalid covers operand errors and anything outside the table's
	// taxonomy.
	StatusInvalid Status = 255
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDivisionByZero:
		return "division_by_zero"
	case StatusOverflow:
		return "overflow"
	case StatusInvalid:
		return "invalid"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// StatusOf classifies err.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, numeric.ErrDivisionByZero):
		return StatusDivisionByZero
	case errors.Is(err, numeric.ErrOverflow):
		return StatusOverflow
	}
	return StatusInvalid
}

// Trap is the panic value raised by bindings in TrapErrors mode.
type Trap struct {
	// Name is the entry point name under the active naming scheme.
	Name   string
	Status Status
	Err    error
}

func (t *Trap) Error() string {
	return fmt.Sprintf("trap in %s: %v", t.Name, t.Err)
}

func (t *Trap) Unwrap() error { return t.Err }

// Guard runs fn and converts a *Trap panic into a returned error. Any other
// panic is propagated unchanged.
func Guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			trap, ok := r.(*Trap)
			if !ok {
				panic(r)
			}
			err = trap
		}
	}()
	fn()
	return nil
}
