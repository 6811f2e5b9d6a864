package conformance

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/numrt/numeric"
)

func sym(k numeric.Kind, op numeric.Op) numeric.Symbol {
	return numeric.Symbol{Kind: k, Op: op}
}

func TestExpectInteger(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		sem     numeric.Semantics
		symbol  numeric.Symbol
		args    []numeric.Value
		want    numeric.Value
		wantErr error
	}{
		{"wrapping add", numeric.Wrapping, sym(numeric.I32, numeric.Add),
			[]numeric.Value{numeric.Int32(math.MaxInt32), numeric.Int32(1)}, numeric.Int32(math.MinInt32), nil},
		{"checked add", numeric.Checked, sym(numeric.I32, numeric.Add),
			[]numeric.Value{numeric.Int32(math.MaxInt32), numeric.Int32(1)}, numeric.Value{}, numeric.ErrOverflow},
		{"wrapping negate min", numeric.Wrapping, sym(numeric.I16, numeric.Negate),
			[]numeric.Value{numeric.Int16(math.MinInt16)}, numeric.Int16(math.MinInt16), nil},
		{"checked negate min", numeric.Checked, sym(numeric.I16, numeric.Negate),
			[]numeric.Value{numeric.Int16(math.MinInt16)}, numeric.Value{}, numeric.ErrOverflow},
		{"wrapping multiply", numeric.Wrapping, sym(numeric.I16, numeric.Multiply),
			[]numeric.Value{numeric.Int16(300), numeric.Int16(300)}, numeric.Int16(24464), nil},
		{"divide truncates", numeric.Wrapping, sym(numeric.I64, numeric.Divide),
			[]numeric.Value{numeric.Int64(-7), numeric.Int64(2)}, numeric.Int64(-3), nil},
		{"divide by zero", numeric.Wrapping, sym(numeric.I16, numeric.Divide),
			[]numeric.Value{numeric.Int16(5), numeric.Int16(0)}, numeric.Value{}, numeric.ErrDivisionByZero},
		{"divide overflow", numeric.Wrapping, sym(numeric.I64, numeric.Divide),
			[]numeric.Value{numeric.Int64(math.MinInt64), numeric.Int64(-1)}, numeric.Value{}, numeric.ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Expect(tt.sem, tt.symbol, tt.args...)
			if tt.wantErr != nil {
				if got.Err != tt.wantErr {
					t.Errorf("Err = %v, want %v", got.Err, tt.wantErr)
				}
				return
			}
			if got.Err != nil || !got.Value.Identical(tt.want) {
				t.Errorf("Expect = %v (%v), want %v", got.Value, got.Err, tt.want)
			}
		})
	}
}

func TestExpectFloat(t *testing.T) {
	t.Parallel()
	f64 := numeric.Float64
	f32 := func(f float64) numeric.Value { return numeric.Float32(float32(f)) }
	negZero := math.Copysign(0, -1)

	tests := []struct {
		name    string
		symbol  numeric.Symbol
		args    []numeric.Value
		want    numeric.Value
		wantNaN bool
	}{
		{"1/0", sym(numeric.F64, numeric.Divide), []numeric.Value{f64(1), f64(0)}, f64(math.Inf(1)), false},
		{"-1/0", sym(numeric.F64, numeric.Divide), []numeric.Value{f64(-1), f64(0)}, f64(math.Inf(-1)), false},
		{"1/-0", sym(numeric.F32, numeric.Divide), []numeric.Value{f32(1), f32(negZero)}, f32(math.Inf(-1)), false},
		{"0/0", sym(numeric.F64, numeric.Divide), []numeric.Value{f64(0), f64(0)}, numeric.Value{}, true},
		{"inf-inf", sym(numeric.F64, numeric.Subtract), []numeric.Value{f64(math.Inf(1)), f64(math.Inf(1))}, numeric.Value{}, true},
		{"0*inf", sym(numeric.F32, numeric.Multiply), []numeric.Value{f32(0), f32(math.Inf(-1))}, numeric.Value{}, true},
		{"nan propagates", sym(numeric.F64, numeric.Add), []numeric.Value{f64(math.NaN()), f64(1)}, numeric.Value{}, true},
		{"x + -x is +0", sym(numeric.F64, numeric.Add), []numeric.Value{f64(1.5), f64(-1.5)}, f64(0), false},
		{"-0 + -0 is -0", sym(numeric.F64, numeric.Add), []numeric.Value{f64(negZero), f64(negZero)}, f64(negZero), false},
		{"f32 rounds", sym(numeric.F32, numeric.Add), []numeric.Value{f32(1 << 24), f32(1)}, f32(1 << 24), false},
		{"f32 overflow", sym(numeric.F32, numeric.Multiply), []numeric.Value{f32(math.MaxFloat32), f32(2)}, f32(math.Inf(1)), false},
		{"f64 subnormal", sym(numeric.F64, numeric.Divide),
			[]numeric.Value{f64(math.SmallestNonzeroFloat64), f64(2)}, f64(0), false}, // tie rounds to even
		{"f32 subnormal", sym(numeric.F32, numeric.Multiply),
			[]numeric.Value{f32(0x1p-126), f32(0.5)}, f32(0x1p-127), false},
		{"negate nan keeps payload", sym(numeric.F64, numeric.Negate),
			[]numeric.Value{numeric.FromBits(numeric.F64, 0x7ff0000000000001)},
			numeric.FromBits(numeric.F64, 0xfff0000000000001), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Expect(numeric.Wrapping, tt.symbol, tt.args...)
			if got.Err != nil {
				t.Fatalf("float expectation has error %v", got.Err)
			}
			if tt.wantNaN {
				if !got.AnyNaN || !got.Value.IsNaN() {
					t.Errorf("Expect = %v, want any NaN", got.Value)
				}
				return
			}
			if !got.Value.Identical(tt.want) {
				t.Errorf("Expect = %v (%#x), want %v (%#x)", got.Value, got.Value.Bits(), tt.want, tt.want.Bits())
			}
		})
	}
}

func TestExpectationMatches(t *testing.T) {
	t.Parallel()
	nan := Expectation{Value: numeric.Float64(math.NaN()), AnyNaN: true}
	if !nan.Matches(numeric.FromBits(numeric.F64, 0xfff8000000000123), nil) {
		t.Error("AnyNaN should accept any payload")
	}
	if nan.Matches(numeric.Float32(float32(math.NaN())), nil) {
		t.Error("AnyNaN must still check the kind")
	}
	zero := Expectation{Value: numeric.Float64(0)}
	if zero.Matches(numeric.Float64(math.Copysign(0, -1)), nil) {
		t.Error("-0 must not match +0")
	}
	div := Expectation{Err: numeric.ErrDivisionByZero}
	if !div.Matches(numeric.Value{}, numeric.DivisionByZeroError{Symbol: "i32_divide"}) {
		t.Error("error expectation should match by kind")
	}
	if div.Matches(numeric.Value{}, nil) {
		t.Error("missing error must not match")
	}
}

// TestOracleAgreesWithTable_PropertyBased cross-checks the reference models
// and the table on generated operands.
func TestOracleAgreesWithTable_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)
	table := numeric.Default()

	check := func(s numeric.Symbol, args ...numeric.Value) bool {
		e, _ := table.LookupSymbol(s)
		got, err := e.Call(args...)
		return Expect(numeric.Wrapping, s, args...).Matches(got, err)
	}

	properties.Property("i32 multiply", prop.ForAll(
		func(a, b int32) bool {
			return check(sym(numeric.I32, numeric.Multiply), numeric.Int32(a), numeric.Int32(b))
		},
		gen.Int32(), gen.Int32(),
	))
	properties.Property("i64 divide", prop.ForAll(
		func(a, b int64) bool {
			return check(sym(numeric.I64, numeric.Divide), numeric.Int64(a), numeric.Int64(b))
		},
		gen.Int64(), gen.Int64(),
	))
	properties.Property("f64 add", prop.ForAll(
		func(a, b float64) bool {
			return check(sym(numeric.F64, numeric.Add), numeric.Float64(a), numeric.Float64(b))
		},
		gen.Float64(), gen.Float64(),
	))
	properties.Property("f64 divide", prop.ForAll(
		func(a, b float64) bool {
			return check(sym(numeric.F64, numeric.Divide), numeric.Float64(a), numeric.Float64(b))
		},
		gen.Float64(), gen.Float64(),
	))
	properties.Property("f32 multiply", prop.ForAll(
		func(a, b float32) bool {
			return check(sym(numeric.F32, numeric.Multiply), numeric.Float32(a), numeric.Float32(b))
		},
		gen.Float32(), gen.Float32(),
	))

	properties.TestingRun(t)
}
