package numeric

import "math"

const (
	signBit32 = 1 << 31
	signBit64 = 1 << 63
)

// Explicit conversions keep each result rounded to the operand precision;
// the compiler may otherwise fuse or widen intermediate float expressions.

// F32Add, F32Subtract and F32Multiply round to nearest even per IEEE 754.
// NaN and infinities propagate.
func F32Add(a, b float32) float32      { return float32(a + b) }
func F32Subtract(a, b float32) float32 { return float32(a - b) }
func F32Multiply(a, b float32) float32 { return float32(a * b) }

// F32Divide never fails: x/±0 is ±Inf and 0/0 is NaN.
func F32Divide(a, b float32) float32 { return float32(a / b) }

// F32Negate flips the sign bit only, so NaN payloads survive and
// F32Negate(0) is -0.
func F32Negate(a float32) float32 {
	return math.Float32frombits(math.Float32bits(a) ^ signBit32)
}

// F64Add, F64Subtract and F64Multiply round to nearest even per IEEE 754.
func F64Add(a, b float64) float64      { return float64(a + b) }
func F64Subtract(a, b float64) float64 { return float64(a - b) }
func F64Multiply(a, b float64) float64 { return float64(a * b) }

// F64Divide never fails: x/±0 is ±Inf and 0/0 is NaN.
func F64Divide(a, b float64) float64 { return float64(a / b) }

// F64Negate flips the sign bit only.
func F64Negate(a float64) float64 {
	return math.Float64frombits(math.Float64bits(a) ^ signBit64)
}
