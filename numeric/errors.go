package numeric

import "fmt"

// DivisionByZeroError is reported by integer divide when the divisor is zero.
type DivisionByZeroError struct {
	// Symbol is the entry point that failed, e.g. "i16_divide".
	Symbol string
}

func (e DivisionByZeroError) Error() string {
	if e.Symbol == "" {
		return "integer division by zero"
	}
	return fmt.Sprintf("%s: integer division by zero", e.Symbol)
}

// Is matches any DivisionByZeroError regardless of symbol, so callers can
// test against ErrDivisionByZero.
func (e DivisionByZeroError) Is(target error) bool {
	_, ok := target.(DivisionByZeroError)
	return ok
}

// OverflowError is reported when an integer result is not representable:
// MIN / -1 in every table, and add, subtract, multiply or negate in the
// checked table.
type OverflowError struct {
	// Symbol is the entry point that failed, e.g. "i32_divide".
	Symbol string
}

func (e OverflowError) Error() string {
	if e.Symbol == "" {
		return "integer overflow"
	}
	return fmt.Sprintf("%s: integer overflow", e.Symbol)
}

// Is matches any OverflowError regardless of symbol.
func (e OverflowError) Is(target error) bool {
	_, ok := target.(OverflowError)
	return ok
}

var (
	// ErrDivisionByZero matches every DivisionByZeroError via errors.Is.
	ErrDivisionByZero error = DivisionByZeroError{}
	// ErrOverflow matches every OverflowError via errors.Is.
	ErrOverflow error = OverflowError{}
)

// OperandError is reported by Entry.Call when the operands do not fit the
// entry: wrong count or wrong kind. The typed entry points never return it.
type OperandError struct {
	Symbol  string
	Message string
}

func (e OperandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Symbol, e.Message)
}
