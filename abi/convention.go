// Package abi describes how generated code reaches the numeric table: the
// names of the entry points, how operands and results travel in 64-bit
// words, and how arithmetic failures are signaled.
//
// None of these choices belong to the table itself; they are owned by the
// consuming toolchain and are therefore configurable through a Convention,
// usually loaded from a YAML profile.
package abi

import (
	"fmt"
	"math"
	"strings"

	"github.com/agbru/numrt/numeric"
)

// Extension selects how i16 and i32 values are widened into a word.
type Extension uint8

const (
	SignExtend Extension = iota
	ZeroExtend
)

func (e Extension) String() string {
	if e == ZeroExtend {
		return "zero"
	}
	return "sign"
}

// Float32Repr selects how f32 values travel in a word.
type Float32Repr uint8

const (
	// Float32Bits carries the binary32 pattern in the low 32 bits.
	Float32Bits Float32Repr = iota
	// Float32Widened carries the value as a binary64 pattern.
	Float32Widened
)

func (r Float32Repr) String() string {
	if r == Float32Widened {
		return "widened"
	}
	return "bits"
}

// ErrorMode selects how a Binding signals DivisionByZero and Overflow.
type ErrorMode uint8

const (
	// ReturnErrors returns the error to the caller.
	ReturnErrors ErrorMode = iota
	// TrapErrors panics with a *Trap.
	TrapErrors
)

func (m ErrorMode) String() string {
	if m == TrapErrors {
		return "trap"
	}
	return "return"
}

// Convention is the complete calling contract between generated code and
// the table.
type Convention struct {
	Naming     Naming
	NarrowInts Extension
	Float32    Float32Repr
	Errors     ErrorMode
	Semantics  numeric.Semantics
}

// DefaultConvention returns the canonical convention: "<type>_<op>" names,
// sign-extended narrow integers, raw binary32 patterns, returned errors and
// wrapping integer semantics.
func DefaultConvention() Convention {
	return Convention{Naming: DefaultNaming()}
}

// Encode converts v into the word representation of the convention.
func (c Convention) Encode(v numeric.Value) uint64 {
	switch v.Kind() {
	case numeric.I16:
		if c.NarrowInts == ZeroExtend {
			return uint64(uint16(v.Int64()))
		}
	case numeric.I32:
		if c.NarrowInts == ZeroExtend {
			return uint64(uint32(v.Int64()))
		}
	case numeric.F32:
		if c.Float32 == Float32Widened {
			return math.Float64bits(float64(v.Float32()))
		}
	}
	return v.Bits()
}

// Decode reads a word of kind k. Integer words are truncated to the kind's
// width, so either extension is accepted on input. Widened f32 words are
// rounded to binary32.
func (c Convention) Decode(k numeric.Kind, word uint64) numeric.Value {
	if k == numeric.F32 && c.Float32 == Float32Widened {
		return numeric.Float32(float32(math.Float64frombits(word)))
	}
	return numeric.FromBits(k, word)
}

// Naming maps a (kind, operation) pair to an entry point name.
type Naming struct {
	// Template may reference {type}, {op} and {width}.
	Template string
	// Prefix is prepended to every rendered name.
	Prefix string
	// Types renames kinds, e.g. i32 -> int.
	Types map[string]string
	// Ops renames operations, e.g. divide -> div.
	Ops map[string]string
}

// DefaultTemplate renders the canonical "<type>_<operation>" names.
const DefaultTemplate = "{type}_{op}"

func DefaultNaming() Naming {
	return Naming{Template: DefaultTemplate}
}

// Name renders the entry point name of s.
func (n Naming) Name(s numeric.Symbol) string {
	tmpl := n.Template
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	typeName := s.Kind.String()
	if alias, ok := n.Types[typeName]; ok {
		typeName = alias
	}
	opName := s.Op.String()
	if alias, ok := n.Ops[opName]; ok {
		opName = alias
	}
	r := strings.NewReplacer(
		"{type}", typeName,
		"{op}", opName,
		"{width}", fmt.Sprint(s.Kind.Width()),
	)
	return n.Prefix + r.Replace(tmpl)
}
