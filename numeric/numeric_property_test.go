package numeric

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func propertyParams() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	return parameters
}

// wrapBig reduces x modulo 2^w and reinterprets the result as a
// two's-complement w-bit integer.
func wrapBig(x *big.Int, w uint) int64 {
	mod := new(big.Int).Lsh(big.NewInt(1), w)
	r := new(big.Int).Mod(x, mod)
	if r.Cmp(new(big.Int).Rsh(mod, 1)) >= 0 {
		r.Sub(r, mod)
	}
	return r.Int64()
}

// TestWrappingAdd_PropertyBased verifies add(a,b) == (a+b) mod 2^w for every
// integer width against an exact big.Int oracle.
func TestWrappingAdd_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParams())

	properties.Property("i16_add wraps modulo 2^16", prop.ForAll(
		func(a, b int16) bool {
			want := wrapBig(new(big.Int).Add(big.NewInt(int64(a)), big.NewInt(int64(b))), 16)
			return int64(I16Add(a, b)) == want
		},
		gen.Int16(), gen.Int16(),
	))
	properties.Property("i32_add wraps modulo 2^32", prop.ForAll(
		func(a, b int32) bool {
			want := wrapBig(new(big.Int).Add(big.NewInt(int64(a)), big.NewInt(int64(b))), 32)
			return int64(I32Add(a, b)) == want
		},
		gen.Int32(), gen.Int32(),
	))
	properties.Property("i64_add wraps modulo 2^64", prop.ForAll(
		func(a, b int64) bool {
			want := wrapBig(new(big.Int).Add(big.NewInt(a), big.NewInt(b)), 64)
			return I64Add(a, b) == want
		},
		gen.Int64(), gen.Int64(),
	))
	properties.Property("i64_multiply wraps modulo 2^64", prop.ForAll(
		func(a, b int64) bool {
			want := wrapBig(new(big.Int).Mul(big.NewInt(a), big.NewInt(b)), 64)
			return I64Multiply(a, b) == want
		},
		gen.Int64(), gen.Int64(),
	))
	properties.Property("i16_multiply wraps modulo 2^16", prop.ForAll(
		func(a, b int16) bool {
			want := wrapBig(new(big.Int).Mul(big.NewInt(int64(a)), big.NewInt(int64(b))), 16)
			return int64(I16Multiply(a, b)) == want
		},
		gen.Int16(), gen.Int16(),
	))

	properties.TestingRun(t)
}

// TestRoundTrip_PropertyBased verifies subtract(add(a,b),b) == a under
// wraparound for every integer width.
func TestRoundTrip_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParams())

	properties.Property("i16 round trip", prop.ForAll(
		func(a, b int16) bool { return I16Subtract(I16Add(a, b), b) == a },
		gen.Int16(), gen.Int16(),
	))
	properties.Property("i32 round trip", prop.ForAll(
		func(a, b int32) bool { return I32Subtract(I32Add(a, b), b) == a },
		gen.Int32(), gen.Int32(),
	))
	properties.Property("i64 round trip", prop.ForAll(
		func(a, b int64) bool { return I64Subtract(I64Add(a, b), b) == a },
		gen.Int64(), gen.Int64(),
	))

	properties.TestingRun(t)
}

// TestDivide_PropertyBased checks divide against truncated big.Int division
// and the two failure conditions.
func TestDivide_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParams())

	properties.Property("i32_divide matches truncated quotient", prop.ForAll(
		func(a, b int32) bool {
			got, err := I32Divide(a, b)
			switch {
			case b == 0:
				return errors.Is(err, ErrDivisionByZero)
			case a == math.MinInt32 && b == -1:
				return errors.Is(err, ErrOverflow)
			}
			want := new(big.Int).Quo(big.NewInt(int64(a)), big.NewInt(int64(b)))
			return err == nil && int64(got) == want.Int64()
		},
		gen.Int32(), gen.Int32Range(-3, 3),
	))
	properties.Property("i64_divide by zero always fails", prop.ForAll(
		func(a int64) bool {
			_, err := I64Divide(a, 0)
			return errors.Is(err, ErrDivisionByZero)
		},
		gen.Int64(),
	))
	properties.Property("i16_divide by zero always fails", prop.ForAll(
		func(a int16) bool {
			_, err := I16Divide(a, 0)
			return errors.Is(err, ErrDivisionByZero)
		},
		gen.Int16(),
	))

	properties.TestingRun(t)
}

// TestChecked_PropertyBased verifies that checked operations fail exactly when
// the exact result leaves the representable range.
func TestChecked_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParams())
	minI32, maxI32 := big.NewInt(math.MinInt32), big.NewInt(math.MaxInt32)
	inRange := func(x *big.Int) bool { return x.Cmp(minI32) >= 0 && x.Cmp(maxI32) <= 0 }

	properties.Property("i32 checked add", prop.ForAll(
		func(a, b int32) bool {
			exact := new(big.Int).Add(big.NewInt(int64(a)), big.NewInt(int64(b)))
			got, err := I32CheckedAdd(a, b)
			if inRange(exact) {
				return err == nil && int64(got) == exact.Int64()
			}
			return errors.Is(err, ErrOverflow)
		},
		gen.Int32(), gen.Int32(),
	))
	properties.Property("i32 checked subtract", prop.ForAll(
		func(a, b int32) bool {
			exact := new(big.Int).Sub(big.NewInt(int64(a)), big.NewInt(int64(b)))
			got, err := I32CheckedSubtract(a, b)
			if inRange(exact) {
				return err == nil && int64(got) == exact.Int64()
			}
			return errors.Is(err, ErrOverflow)
		},
		gen.Int32(), gen.Int32(),
	))
	properties.Property("i32 checked multiply", prop.ForAll(
		func(a, b int32) bool {
			exact := new(big.Int).Mul(big.NewInt(int64(a)), big.NewInt(int64(b)))
			got, err := I32CheckedMultiply(a, b)
			if inRange(exact) {
				return err == nil && int64(got) == exact.Int64()
			}
			return errors.Is(err, ErrOverflow)
		},
		gen.Int32(), gen.Int32(),
	))
	properties.Property("i64 checked multiply agrees with big.Int", prop.ForAll(
		func(a, b int64) bool {
			exact := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
			got, err := I64CheckedMultiply(a, b)
			if exact.IsInt64() {
				return err == nil && got == exact.Int64()
			}
			return errors.Is(err, ErrOverflow)
		},
		gen.Int64(), gen.Int64(),
	))

	properties.TestingRun(t)
}

// TestFloatNaN_PropertyBased verifies that NaN propagates through every
// binary float operation for arbitrary second operands.
func TestFloatNaN_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParams())
	nan := math.NaN()

	properties.Property("f64 NaN op x is NaN", prop.ForAll(
		func(x float64) bool {
			return math.IsNaN(F64Add(nan, x)) && math.IsNaN(F64Subtract(nan, x)) &&
				math.IsNaN(F64Multiply(nan, x)) && math.IsNaN(F64Divide(nan, x))
		},
		gen.Float64(),
	))
	properties.Property("f32 NaN op x is NaN", prop.ForAll(
		func(x float32) bool {
			n := float32(nan)
			return math.IsNaN(float64(F32Add(n, x))) && math.IsNaN(float64(F32Subtract(n, x))) &&
				math.IsNaN(float64(F32Multiply(n, x))) && math.IsNaN(float64(F32Divide(n, x)))
		},
		gen.Float32(),
	))
	properties.Property("f64 negate is an involution on bits", prop.ForAll(
		func(x float64) bool {
			return math.Float64bits(F64Negate(F64Negate(x))) == math.Float64bits(x)
		},
		gen.Float64(),
	))

	properties.TestingRun(t)
}
