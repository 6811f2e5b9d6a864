package conformance

import (
	"math"
	"math/rand/v2"

	"github.com/agbru/numrt/numeric"
)

// Vector is one operand tuple for one entry point.
type Vector struct {
	Symbol   numeric.Symbol
	Operands []numeric.Value
	// Edge marks deterministic edge vectors, as opposed to random ones.
	Edge bool
}

// EdgeOperands returns the boundary values of kind k.
func EdgeOperands(k numeric.Kind) []numeric.Value {
	if k.IsFloat() {
		fs := []float64{
			0, math.Copysign(0, -1), 1, -1,
			math.Inf(1), math.Inf(-1), math.NaN(),
		}
		if k == numeric.F32 {
			fs = append(fs,
				math.MaxFloat32, -math.MaxFloat32,
				math.SmallestNonzeroFloat32, -math.SmallestNonzeroFloat32,
				0x1p-126, -0x1p-126,
			)
		} else {
			fs = append(fs,
				math.MaxFloat64, -math.MaxFloat64,
				math.SmallestNonzeroFloat64, -math.SmallestNonzeroFloat64,
				0x1p-1022, -0x1p-1022,
			)
		}
		out := make([]numeric.Value, len(fs))
		for i, f := range fs {
			out[i] = numeric.FromFloat(k, f)
		}
		return out
	}
	lo, hi := k.Min(), k.Max()
	return []numeric.Value{
		numeric.FromInt(k, lo),
		numeric.FromInt(k, lo+1),
		numeric.FromInt(k, -1),
		numeric.FromInt(k, 0),
		numeric.FromInt(k, 1),
		numeric.FromInt(k, hi-1),
		numeric.FromInt(k, hi),
	}
}

// EdgeVectors returns every edge operand for unary operations and every
// ordered pair of edge operands for binary ones.
func EdgeVectors(sym numeric.Symbol) []Vector {
	edges := EdgeOperands(sym.Kind)
	if sym.Op.Arity() == 1 {
		out := make([]Vector, len(edges))
		for i, a := range edges {
			out[i] = Vector{Symbol: sym, Operands: []numeric.Value{a}, Edge: true}
		}
		return out
	}
	out := make([]Vector, 0, len(edges)*len(edges))
	for _, a := range edges {
		for _, b := range edges {
			out = append(out, Vector{Symbol: sym, Operands: []numeric.Value{a, b}, Edge: true})
		}
	}
	return out
}

// RandomVectors returns n seeded random vectors for sym. The same seed and
// symbol always produce the same vectors.
func RandomVectors(sym numeric.Symbol, n int, seed int64) []Vector {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(sym.Kind)<<8|uint64(sym.Op)))
	out := make([]Vector, n)
	for i := range out {
		ops := make([]numeric.Value, sym.Op.Arity())
		for j := range ops {
			ops[j] = randomOperand(rng, sym.Kind)
		}
		out[i] = Vector{Symbol: sym, Operands: ops}
	}
	return out
}

// randomOperand mixes raw bit patterns, which reach every NaN payload and
// subnormal, with small magnitudes, where most interesting carries happen.
func randomOperand(rng *rand.Rand, k numeric.Kind) numeric.Value {
	switch rng.IntN(4) {
	case 0:
		return numeric.FromBits(k, rng.Uint64())
	case 1:
		if k.IsFloat() {
			return numeric.FromFloat(k, float64(rng.IntN(201)-100))
		}
		return numeric.FromInt(k, int64(rng.IntN(201)-100))
	}
	if k.IsFloat() {
		scale := math.Ldexp(1, rng.IntN(64)-32)
		return numeric.FromFloat(k, rng.NormFloat64()*scale)
	}
	// values near the extremes
	if rng.IntN(2) == 0 {
		return numeric.FromInt(k, k.Max()-int64(rng.IntN(16)))
	}
	return numeric.FromInt(k, k.Min()+int64(rng.IntN(16)))
}
