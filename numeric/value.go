package numeric

import (
	"math"
	"strconv"
)

// Value is a kinded operand held in a 64-bit word. Integers are stored
// sign-extended to 64 bits, f32 as its IEEE pattern in the low 32 bits and
// f64 as its IEEE pattern. The zero Value is the i16 zero.
type Value struct {
	kind Kind
	bits uint64
}

func Int16(v int16) Value     { return Value{kind: I16, bits: uint64(int64(v))} }
func Int32(v int32) Value     { return Value{kind: I32, bits: uint64(int64(v))} }
func Int64(v int64) Value     { return Value{kind: I64, bits: uint64(v)} }
func Float32(v float32) Value { return Value{kind: F32, bits: uint64(math.Float32bits(v))} }
func Float64(v float64) Value { return Value{kind: F64, bits: math.Float64bits(v)} }

// FromBits builds a Value of kind k from a raw word. Bits above the kind's
// width are discarded; narrow integers are then sign-extended.
func FromBits(k Kind, bits uint64) Value {
	switch k {
	case I16:
		return Int16(int16(bits))
	case I32:
		return Int32(int32(bits))
	case F32:
		return Value{kind: F32, bits: bits & math.MaxUint32}
	}
	return Value{kind: k, bits: bits}
}

// FromInt converts v to an integer kind, wrapping modulo 2^w.
// Float kinds receive the nearest representable value.
func FromInt(k Kind, v int64) Value {
	switch k {
	case I16:
		return Int16(int16(v))
	case I32:
		return Int32(int32(v))
	case F32:
		return Float32(float32(v))
	case F64:
		return Float64(float64(v))
	}
	return Int64(v)
}

// FromFloat converts f to a float kind, rounding to f32 precision for F32.
// Integer kinds receive the truncated value; out-of-range inputs are
// implementation-specific and callers should range-check first.
func FromFloat(k Kind, f float64) Value {
	switch k {
	case F32:
		return Float32(float32(f))
	case F64:
		return Float64(f)
	}
	return FromInt(k, int64(f))
}

func (v Value) Kind() Kind { return v.kind }

// Bits returns the canonical word of v.
func (v Value) Bits() uint64 { return v.bits }

// Int64 returns an integer Value sign-extended to 64 bits.
func (v Value) Int64() int64 { return int64(v.bits) }

func (v Value) Float32() float32 { return math.Float32frombits(uint32(v.bits)) }

// Float64 returns the float value of v; f32 values are widened exactly.
func (v Value) Float64() float64 {
	if v.kind == F32 {
		return float64(v.Float32())
	}
	return math.Float64frombits(v.bits)
}

// IsNaN reports whether v is a float NaN.
func (v Value) IsNaN() bool {
	return v.kind.IsFloat() && math.IsNaN(v.Float64())
}

// Signbit reports whether the sign bit of v is set.
func (v Value) Signbit() bool {
	if !v.kind.Valid() {
		return false
	}
	return v.bits>>(v.kind.Width()-1)&1 == 1
}

// Identical reports bitwise identity of kind and word. A NaN is identical to
// a NaN with the same payload, and +0 is not identical to -0.
func (v Value) Identical(o Value) bool {
	return v.kind == o.kind && v.bits == o.bits
}

func (v Value) String() string {
	switch v.kind {
	case F32:
		return strconv.FormatFloat(float64(v.Float32()), 'g', -1, 32)
	case F64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	}
	return strconv.FormatInt(v.Int64(), 10)
}
