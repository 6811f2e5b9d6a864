package conformance

import (
	"errors"
	"math"
	"math/big"

	"github.com/agbru/numrt/numeric"
)

// Expectation is the reference outcome of one vector.
type Expectation struct {
	Value numeric.Value
	// Err is numeric.ErrDivisionByZero, numeric.ErrOverflow or nil.
	Err error
	// AnyNaN accepts any NaN payload. Arithmetic on NaN operands is only
	// required to produce some NaN.
	AnyNaN bool
}

// Matches reports whether an observed outcome satisfies the expectation.
func (e Expectation) Matches(got numeric.Value, err error) bool {
	if e.Err != nil {
		return errors.Is(err, e.Err)
	}
	if err != nil {
		return false
	}
	if e.AnyNaN {
		return got.Kind() == e.Value.Kind() && got.IsNaN()
	}
	return got.Identical(e.Value)
}

// Expect computes the reference outcome of sym applied to args under sem.
func Expect(sem numeric.Semantics, sym numeric.Symbol, args ...numeric.Value) Expectation {
	if sym.Kind.IsFloat() {
		return expectFloat(sym, args)
	}
	return expectInteger(sem, sym, args)
}

func expectInteger(sem numeric.Semantics, sym numeric.Symbol, args []numeric.Value) Expectation {
	width := uint(sym.Kind.Width())
	a := big.NewInt(args[0].Int64())
	var b *big.Int
	if len(args) > 1 {
		b = big.NewInt(args[1].Int64())
	}

	exact := new(big.Int)
	switch sym.Op {
	case numeric.Add:
		exact.Add(a, b)
	case numeric.Subtract:
		exact.Sub(a, b)
	case numeric.Multiply:
		exact.Mul(a, b)
	case numeric.Negate:
		exact.Neg(a)
	case numeric.Divide:
		if b.Sign() == 0 {
			return Expectation{Err: numeric.ErrDivisionByZero}
		}
		// Quo truncates toward zero.
		exact.Quo(a, b)
		if !fits(exact, width) {
			return Expectation{Err: numeric.ErrOverflow}
		}
		return Expectation{Value: numeric.FromInt(sym.Kind, exact.Int64())}
	}

	if sem == numeric.Checked && !fits(exact, width) {
		return Expectation{Err: numeric.ErrOverflow}
	}
	return Expectation{Value: numeric.FromInt(sym.Kind, wrap(exact, width))}
}

// fits reports whether x is representable as a signed integer of width bits.
func fits(x *big.Int, width uint) bool {
	limit := new(big.Int).Lsh(big.NewInt(1), width-1)
	return x.Cmp(new(big.Int).Neg(limit)) >= 0 && x.Cmp(limit) < 0
}

// wrap reduces x modulo 2^width into the signed range and returns it as int64.
func wrap(x *big.Int, width uint) int64 {
	mod := new(big.Int).Lsh(big.NewInt(1), width)
	r := new(big.Int).Mod(x, mod) // 0 <= r < 2^width
	if r.Cmp(new(big.Int).Rsh(mod, 1)) >= 0 {
		r.Sub(r, mod)
	}
	return r.Int64()
}

// Working precision for float references. Large enough that add and
// subtract of any two finite operands are exact, so the conversion back to
// the target format is the only rounding step.
const (
	precF32 = 320
	precF64 = 2200
)

func expectFloat(sym numeric.Symbol, args []numeric.Value) Expectation {
	if sym.Op == numeric.Negate {
		// Negation is a sign-bit flip for every input, NaN included.
		a := args[0]
		return Expectation{Value: numeric.FromBits(sym.Kind, a.Bits()^uint64(1)<<(sym.Kind.Width()-1))}
	}
	nan := Expectation{Value: nanOf(sym.Kind), AnyNaN: true}
	for _, a := range args {
		if a.IsNaN() {
			return nan
		}
	}

	prec := uint(precF64)
	if sym.Kind == numeric.F32 {
		prec = precF32
	}
	x := new(big.Float).SetPrec(prec).SetFloat64(args[0].Float64())
	y := new(big.Float).SetPrec(prec).SetFloat64(args[1].Float64())

	z, ok := bigFloatOp(sym.Op, prec, x, y)
	if !ok {
		return nan
	}
	if sym.Kind == numeric.F32 {
		f, _ := z.Float32()
		return Expectation{Value: numeric.Float32(f)}
	}
	f, _ := z.Float64()
	return Expectation{Value: numeric.Float64(f)}
}

// bigFloatOp applies op at precision prec. It returns false when IEEE 754
// defines the result as NaN (Inf-Inf, 0*Inf, 0/0, Inf/Inf); big.Float
// signals those by panicking with big.ErrNaN.
func bigFloatOp(op numeric.Op, prec uint, x, y *big.Float) (z *big.Float, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isNaN := r.(big.ErrNaN); !isNaN {
				panic(r)
			}
			z, ok = nil, false
		}
	}()
	z = new(big.Float).SetPrec(prec).SetMode(big.ToNearestEven)
	switch op {
	case numeric.Add:
		z.Add(x, y)
	case numeric.Subtract:
		z.Sub(x, y)
	case numeric.Multiply:
		z.Mul(x, y)
	case numeric.Divide:
		z.Quo(x, y)
	}
	return z, true
}

func nanOf(k numeric.Kind) numeric.Value {
	if k == numeric.F32 {
		return numeric.Float32(float32(math.NaN()))
	}
	return numeric.Float64(math.NaN())
}
