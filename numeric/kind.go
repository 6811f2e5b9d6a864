package numeric

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies one of the numeric domains the table operates on.
type Kind uint8

const (
	I16 Kind = iota
	I32
	I64
	F32
	F64

	numKinds = int(F64) + 1
)

// Kinds lists every supported kind in table order.
var Kinds = [...]Kind{I16, I32, I64, F32, F64}

var kindNames = [...]string{
	I16: "i16",
	I32: "i32",
	I64: "i64",
	F32: "f32",
	F64: "f64",
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return int(k) < numKinds
}

// IsFloat reports whether k is an IEEE 754 kind.
func (k Kind) IsFloat() bool {
	return k == F32 || k == F64
}

// Width returns the bit width of the kind.
func (k Kind) Width() int {
	switch k {
	case I16:
		return 16
	case I32, F32:
		return 32
	case I64, F64:
		return 64
	}
	return 0
}

// Size returns the storage size of the kind in bytes.
func (k Kind) Size() int {
	return k.Width() / 8
}

// Min returns the smallest representable integer of an integer kind.
// For float kinds it returns 0.
func (k Kind) Min() int64 {
	switch k {
	case I16:
		return math.MinInt16
	case I32:
		return math.MinInt32
	case I64:
		return math.MinInt64
	}
	return 0
}

// Max returns the largest representable integer of an integer kind.
// For float kinds it returns 0.
func (k Kind) Max() int64 {
	switch k {
	case I16:
		return math.MaxInt16
	case I32:
		return math.MaxInt32
	case I64:
		return math.MaxInt64
	}
	return 0
}

// ParseKind returns the kind named by s ("i16", "i32", "i64", "f32", "f64").
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown numeric kind %q", s)
}

// Op identifies one operation of the closed operation set.
type Op uint8

const (
	Add Op = iota
	Subtract
	Negate
	Multiply
	Divide

	numOps = int(Divide) + 1
)

// Ops lists every supported operation in table order.
var Ops = [...]Op{Add, Subtract, Negate, Multiply, Divide}

var opNames = [...]string{
	Add:      "add",
	Subtract: "subtract",
	Negate:   "negate",
	Multiply: "multiply",
	Divide:   "divide",
}

func (o Op) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
	return opNames[o]
}

// Valid reports whether o is one of the declared operations.
func (o Op) Valid() bool {
	return int(o) < numOps
}

// Arity is the number of operands the operation takes.
func (o Op) Arity() int {
	if o == Negate {
		return 1
	}
	return 2
}

// ParseOp returns the operation named by s.
func ParseOp(s string) (Op, error) {
	for o, name := range opNames {
		if strings.EqualFold(s, name) {
			return Op(o), nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}

// Symbol names a single (kind, operation) pair of the table.
type Symbol struct {
	Kind Kind
	Op   Op
}

// String returns the canonical entry point name, e.g. "i32_add".
func (s Symbol) String() string {
	return s.Kind.String() + "_" + s.Op.String()
}

// ParseSymbol parses a canonical entry point name such as "f64_divide".
func ParseSymbol(name string) (Symbol, error) {
	kindPart, opPart, ok := strings.Cut(name, "_")
	if !ok {
		return Symbol{}, fmt.Errorf("malformed symbol %q: want <type>_<operation>", name)
	}
	k, err := ParseKind(kindPart)
	if err != nil {
		return Symbol{}, fmt.Errorf("malformed symbol %q: %w", name, err)
	}
	o, err := ParseOp(opPart)
	if err != nil {
		return Symbol{}, fmt.Errorf("malformed symbol %q: %w", name, err)
	}
	return Symbol{Kind: k, Op: o}, nil
}
