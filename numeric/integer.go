package numeric

// Go defines signed integer overflow as two's-complement wraparound, so the
// native +, -, * and unary - on int16/int32/int64 are the wrapping operations
// the table promises. Only division needs explicit checks.

type signed interface {
	~int16 | ~int32 | ~int64
}

// isMin reports whether a is the minimum of its type: the only non-zero
// two's-complement value that is its own negation.
func isMin[T signed](a T) bool {
	return a != 0 && a == -a
}

func divide[T signed](symbol string, a, b T) (T, error) {
	if b == 0 {
		return 0, DivisionByZeroError{Symbol: symbol}
	}
	if b == -1 && isMin(a) {
		return 0, OverflowError{Symbol: symbol}
	}
	return a / b, nil
}

func checkedAdd[T signed](symbol string, a, b T) (T, error) {
	s := a + b
	// operands of equal sign must produce a sum of the same sign
	if (a >= 0) == (b >= 0) && (s >= 0) != (a >= 0) {
		return 0, OverflowError{Symbol: symbol}
	}
	return s, nil
}

func checkedSubtract[T signed](symbol string, a, b T) (T, error) {
	d := a - b
	if (a >= 0) != (b >= 0) && (d >= 0) != (a >= 0) {
		return 0, OverflowError{Symbol: symbol}
	}
	return d, nil
}

func checkedMultiply[T signed](symbol string, a, b T) (T, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && isMin(b)) || (b == -1 && isMin(a)) {
		return 0, OverflowError{Symbol: symbol}
	}
	p := a * b
	if p/b != a {
		return 0, OverflowError{Symbol: symbol}
	}
	return p, nil
}

func checkedNegate[T signed](symbol string, a T) (T, error) {
	if isMin(a) {
		return 0, OverflowError{Symbol: symbol}
	}
	return -a, nil
}

// i16

func I16Add(a, b int16) int16      { return a + b }
func I16Subtract(a, b int16) int16 { return a - b }
func I16Multiply(a, b int16) int16 { return a * b }

// I16Negate returns -a; I16Negate(math.MinInt16) is math.MinInt16.
func I16Negate(a int16) int16 { return -a }

// I16Divide returns a / b truncated toward zero.
func I16Divide(a, b int16) (int16, error) { return divide("i16_divide", a, b) }

// i32

func I32Add(a, b int32) int32      { return a + b }
func I32Subtract(a, b int32) int32 { return a - b }
func I32Multiply(a, b int32) int32 { return a * b }

// I32Negate returns -a; I32Negate(math.MinInt32) is math.MinInt32.
func I32Negate(a int32) int32 { return -a }

// I32Divide returns a / b truncated toward zero.
func I32Divide(a, b int32) (int32, error) { return divide("i32_divide", a, b) }

// i64

func I64Add(a, b int64) int64      { return a + b }
func I64Subtract(a, b int64) int64 { return a - b }
func I64Multiply(a, b int64) int64 { return a * b }

// I64Negate returns -a; I64Negate(math.MinInt64) is math.MinInt64.
func I64Negate(a int64) int64 { return -a }

// I64Divide returns a / b truncated toward zero.
func I64Divide(a, b int64) (int64, error) { return divide("i64_divide", a, b) }

// Checked variants fail with OverflowError instead of wrapping.

func I16CheckedAdd(a, b int16) (int16, error) { return checkedAdd("i16_add", a, b) }
func I16CheckedSubtract(a, b int16) (int16, error) {
	return checkedSubtract("i16_subtract", a, b)
}
func I16CheckedMultiply(a, b int16) (int16, error) {
	return checkedMultiply("i16_multiply", a, b)
}
func I16CheckedNegate(a int16) (int16, error) { return checkedNegate("i16_negate", a) }

func I32CheckedAdd(a, b int32) (int32, error) { return checkedAdd("i32_add", a, b) }
func I32CheckedSubtract(a, b int32) (int32, error) {
	return checkedSubtract("i32_subtract", a, b)
}
func I32CheckedMultiply(a, b int32) (int32, error) {
	return checkedMultiply("i32_multiply", a, b)
}
func I32CheckedNegate(a int32) (int32, error) { return checkedNegate("i32_negate", a) }

func I64CheckedAdd(a, b int64) (int64, error) { return checkedAdd("i64_add", a, b) }
func I64CheckedSubtract(a, b int64) (int64, error) {
	return checkedSubtract("i64_subtract", a, b)
}
func I64CheckedMultiply(a, b int64) (int64, error) {
	return checkedMultiply("i64_multiply", a, b)
}
func I64CheckedNegate(a int64) (int64, error) { return checkedNegate("i64_negate", a) }
