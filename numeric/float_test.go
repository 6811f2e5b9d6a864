package numeric

import (
	"math"
	"testing"
)

func TestFloatDivisionByZero(t *testing.T) {
	t.Parallel()

	if got := F32Divide(1, 0); !math.IsInf(float64(got), 1) {
		t.Errorf("F32Divide(1, 0) = %v, want +Inf", got)
	}
	if got := F32Divide(-1, 0); !math.IsInf(float64(got), -1) {
		t.Errorf("F32Divide(-1, 0) = %v, want -Inf", got)
	}
	if got := F32Divide(0, 0); !math.IsNaN(float64(got)) {
		t.Errorf("F32Divide(0, 0) = %v, want NaN", got)
	}
	if got := F64Divide(1, 0); !math.IsInf(got, 1) {
		t.Errorf("F64Divide(1, 0) = %v, want +Inf", got)
	}
	if got := F64Divide(-1, 0); !math.IsInf(got, -1) {
		t.Errorf("F64Divide(-1, 0) = %v, want -Inf", got)
	}
	if got := F64Divide(1, math.Copysign(0, -1)); !math.IsInf(got, -1) {
		t.Errorf("F64Divide(1, -0) = %v, want -Inf", got)
	}
	if got := F64Divide(0, 0); !math.IsNaN(got) {
		t.Errorf("F64Divide(0, 0) = %v, want NaN", got)
	}
}

func TestFloatNaNPropagates(t *testing.T) {
	t.Parallel()
	nan64 := math.NaN()
	nan32 := float32(nan64)
	operands := []float64{0, -1, 1.5, math.Inf(1), math.Inf(-1), math.MaxFloat64}

	for _, x := range operands {
		for name, fn := range map[string]func(a, b float64) float64{
			"add": F64Add, "subtract": F64Subtract, "multiply": F64Multiply, "divide": F64Divide,
		} {
			if got := fn(nan64, x); !math.IsNaN(got) {
				t.Errorf("f64 %s(NaN, %v) = %v, want NaN", name, x, got)
			}
			if got := fn(x, nan64); !math.IsNaN(got) {
				t.Errorf("f64 %s(%v, NaN) = %v, want NaN", name, x, got)
			}
		}
		x32 := float32(x)
		for name, fn := range map[string]func(a, b float32) float32{
			"add": F32Add, "subtract": F32Subtract, "multiply": F32Multiply, "divide": F32Divide,
		} {
			if got := fn(nan32, x32); !math.IsNaN(float64(got)) {
				t.Errorf("f32 %s(NaN, %v) = %v, want NaN", name, x32, got)
			}
		}
	}
}

func TestFloatNegateFlipsSignBit(t *testing.T) {
	t.Parallel()

	negZero := F64Negate(0)
	if negZero != 0 || !math.Signbit(negZero) {
		t.Errorf("F64Negate(0) = %v (signbit %v), want -0", negZero, math.Signbit(negZero))
	}

	payload := math.Float64frombits(0x7ff8_0000_0000_0001)
	neg := F64Negate(payload)
	if math.Float64bits(neg) != 0xfff8_0000_0000_0001 {
		t.Errorf("F64Negate(NaN) bits = %#x, want %#x", math.Float64bits(neg), uint64(0xfff8_0000_0000_0001))
	}

	nan32 := math.Float32frombits(0x7fc0_0001)
	if got := math.Float32bits(F32Negate(nan32)); got != 0xffc0_0001 {
		t.Errorf("F32Negate(NaN) bits = %#x, want %#x", got, uint32(0xffc0_0001))
	}

	if got := F32Negate(float32(math.Inf(1))); !math.IsInf(float64(got), -1) {
		t.Errorf("F32Negate(+Inf) = %v, want -Inf", got)
	}
}

func TestFloatIEEEEdges(t *testing.T) {
	t.Parallel()
	inf := math.Inf(1)

	if got := F64Subtract(inf, inf); !math.IsNaN(got) {
		t.Errorf("Inf - Inf = %v, want NaN", got)
	}
	if got := F64Multiply(inf, 0); !math.IsNaN(got) {
		t.Errorf("Inf * 0 = %v, want NaN", got)
	}
	negZero := math.Copysign(0, -1)
	if got := F64Add(negZero, negZero); !math.Signbit(got) {
		t.Errorf("-0 + -0 = %v, want -0", got)
	}
	if got := F32Multiply(math.MaxFloat32, 2); !math.IsInf(float64(got), 1) {
		t.Errorf("f32 MaxFloat32*2 = %v, want +Inf", got)
	}
	// 16777217 is not representable in binary32; rounding to nearest even
	// yields 16777216.
	if got := F32Add(16777216, 1); got != 16777216 {
		t.Errorf("F32Add(2^24, 1) = %v, want 16777216", got)
	}
}
