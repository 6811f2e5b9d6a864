package numeric

import (
	"fmt"
	"strings"
)

// Semantics selects how integer add, subtract, multiply and negate behave
// when the exact result leaves the representable range.
type Semantics uint8

const (
	// Wrapping reduces results modulo 2^w.
	Wrapping Semantics = iota
	// Checked fails with OverflowError.
	Checked
)

func (s Semantics) String() string {
	switch s {
	case Wrapping:
		return "wrapping"
	case Checked:
		return "checked"
	}
	return fmt.Sprintf("Semantics(%d)", uint8(s))
}

// ParseSemantics accepts "wrapping" or "checked".
func ParseSemantics(s string) (Semantics, error) {
	switch strings.ToLower(s) {
	case "", "wrapping", "wrap":
		return Wrapping, nil
	case "checked":
		return Checked, nil
	}
	return 0, fmt.Errorf("unknown semantics %q (want wrapping or checked)", s)
}

// Entry is a single entry point of the table.
type Entry struct {
	Symbol Symbol
	// Func is the typed Go function behind the entry, for example
	// func(int32, int32) int32 or func(int16, int16) (int16, error).
	Func any
	// Fallible reports whether the entry can return an error.
	Fallible bool

	call func(a, b Value) (Value, error)
}

// Name returns the canonical entry point name.
func (e Entry) Name() string { return e.Symbol.String() }

// Arity returns the number of operands the entry takes.
func (e Entry) Arity() int { return e.Symbol.Op.Arity() }

// Call applies the entry to kinded operands. Operands must match the
// entry's arity and kind; otherwise an OperandError is returned and the
// operation is not performed.
func (e Entry) Call(args ...Value) (Value, error) {
	if e.call == nil {
		return Value{}, OperandError{Symbol: e.Name(), Message: "entry is not bound"}
	}
	if len(args) != e.Arity() {
		return Value{}, OperandError{
			Symbol:  e.Name(),
			Message: fmt.Sprintf("expected %d operand(s), got %d", e.Arity(), len(args)),
		}
	}
	for i, a := range args {
		if a.kind != e.Symbol.Kind {
			return Value{}, OperandError{
				Symbol:  e.Name(),
				Message: fmt.Sprintf("operand %d has kind %s, want %s", i+1, a.kind, e.Symbol.Kind),
			}
		}
	}
	var b Value
	if len(args) == 2 {
		b = args[1]
	}
	return e.call(args[0], b)
}

// Table holds exactly one Entry per (kind, operation) pair. Tables are
// immutable once built.
type Table struct {
	semantics Semantics
	entries   [numKinds][numOps]Entry
}

var shared = [...]*Table{
	Wrapping: NewTable(Wrapping),
	Checked:  NewTable(Checked),
}

// TableFor returns the shared immutable table for s.
func TableFor(s Semantics) *Table {
	if int(s) >= len(shared) {
		return shared[Wrapping]
	}
	return shared[s]
}

// Default returns the shared wrapping table.
func Default() *Table { return shared[Wrapping] }

// NewTable builds a table with the given integer semantics.
func NewTable(s Semantics) *Table {
	t := &Table{semantics: s}

	t.setIntegers(integerEntries(I16, s, intFuncs[int16]{
		add: I16Add, subtract: I16Subtract, multiply: I16Multiply, negate: I16Negate, divide: I16Divide,
		checkedAdd: I16CheckedAdd, checkedSubtract: I16CheckedSubtract,
		checkedMultiply: I16CheckedMultiply, checkedNegate: I16CheckedNegate,
	}))
	t.setIntegers(integerEntries(I32, s, intFuncs[int32]{
		add: I32Add, subtract: I32Subtract, multiply: I32Multiply, negate: I32Negate, divide: I32Divide,
		checkedAdd: I32CheckedAdd, checkedSubtract: I32CheckedSubtract,
		checkedMultiply: I32CheckedMultiply, checkedNegate: I32CheckedNegate,
	}))
	t.setIntegers(integerEntries(I64, s, intFuncs[int64]{
		add: I64Add, subtract: I64Subtract, multiply: I64Multiply, negate: I64Negate, divide: I64Divide,
		checkedAdd: I64CheckedAdd, checkedSubtract: I64CheckedSubtract,
		checkedMultiply: I64CheckedMultiply, checkedNegate: I64CheckedNegate,
	}))

	t.set(f32Binary(Add, F32Add))
	t.set(f32Binary(Subtract, F32Subtract))
	t.set(f32Unary(Negate, F32Negate))
	t.set(f32Binary(Multiply, F32Multiply))
	t.set(f32Binary(Divide, F32Divide))

	t.set(f64Binary(Add, F64Add))
	t.set(f64Binary(Subtract, F64Subtract))
	t.set(f64Unary(Negate, F64Negate))
	t.set(f64Binary(Multiply, F64Multiply))
	t.set(f64Binary(Divide, F64Divide))

	for _, k := range Kinds {
		for _, o := range Ops {
			if t.entries[k][o].call == nil {
				panic(fmt.Sprintf("numeric: no entry for %s", Symbol{Kind: k, Op: o}))
			}
		}
	}
	return t
}

func (t *Table) set(e Entry) {
	t.entries[e.Symbol.Kind][e.Symbol.Op] = e
}

func (t *Table) setIntegers(entries []Entry) {
	for _, e := range entries {
		t.set(e)
	}
}

// Semantics returns the integer semantics of the table.
func (t *Table) Semantics() Semantics { return t.semantics }

// Lookup returns the entry for (k, op). ok is false only for undeclared
// kinds or operations.
func (t *Table) Lookup(k Kind, op Op) (Entry, bool) {
	if !k.Valid() || !op.Valid() {
		return Entry{}, false
	}
	return t.entries[k][op], true
}

// LookupSymbol is Lookup keyed by Symbol.
func (t *Table) LookupSymbol(s Symbol) (Entry, bool) {
	return t.Lookup(s.Kind, s.Op)
}

// LookupName resolves a canonical entry point name such as "i32_add".
func (t *Table) LookupName(name string) (Entry, error) {
	s, err := ParseSymbol(name)
	if err != nil {
		return Entry{}, err
	}
	e, _ := t.LookupSymbol(s)
	return e, nil
}

// Entries returns every entry ordered by kind, then operation.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, numKinds*numOps)
	for _, k := range Kinds {
		for _, o := range Ops {
			out = append(out, t.entries[k][o])
		}
	}
	return out
}

type intFuncs[T signed] struct {
	add, subtract, multiply func(a, b T) T
	negate                  func(a T) T
	divide                  func(a, b T) (T, error)

	checkedAdd, checkedSubtract, checkedMultiply func(a, b T) (T, error)
	checkedNegate                                func(a T) (T, error)
}

func integerEntries[T signed](k Kind, s Semantics, f intFuncs[T]) []Entry {
	entries := []Entry{intBinaryErr(Symbol{k, Divide}, f.divide)}
	if s == Checked {
		return append(entries,
			intBinaryErr(Symbol{k, Add}, f.checkedAdd),
			intBinaryErr(Symbol{k, Subtract}, f.checkedSubtract),
			intBinaryErr(Symbol{k, Multiply}, f.checkedMultiply),
			intUnaryErr(Symbol{k, Negate}, f.checkedNegate),
		)
	}
	return append(entries,
		intBinary(Symbol{k, Add}, f.add),
		intBinary(Symbol{k, Subtract}, f.subtract),
		intBinary(Symbol{k, Multiply}, f.multiply),
		intUnary(Symbol{k, Negate}, f.negate),
	)
}

func intBinary[T signed](s Symbol, fn func(a, b T) T) Entry {
	return Entry{Symbol: s, Func: fn, call: func(a, b Value) (Value, error) {
		return FromInt(s.Kind, int64(fn(T(a.Int64()), T(b.Int64())))), nil
	}}
}

func intBinaryErr[T signed](s Symbol, fn func(a, b T) (T, error)) Entry {
	return Entry{Symbol: s, Func: fn, Fallible: true, call: func(a, b Value) (Value, error) {
		r, err := fn(T(a.Int64()), T(b.Int64()))
		if err != nil {
			return Value{}, err
		}
		return FromInt(s.Kind, int64(r)), nil
	}}
}

func intUnary[T signed](s Symbol, fn func(a T) T) Entry {
	return Entry{Symbol: s, Func: fn, call: func(a, _ Value) (Value, error) {
		return FromInt(s.Kind, int64(fn(T(a.Int64())))), nil
	}}
}

func intUnaryErr[T signed](s Symbol, fn func(a T) (T, error)) Entry {
	return Entry{Symbol: s, Func: fn, Fallible: true, call: func(a, _ Value) (Value, error) {
		r, err := fn(T(a.Int64()))
		if err != nil {
			return Value{}, err
		}
		return FromInt(s.Kind, int64(r)), nil
	}}
}

func f32Binary(op Op, fn func(a, b float32) float32) Entry {
	return Entry{Symbol: Symbol{F32, op}, Func: fn, call: func(a, b Value) (Value, error) {
		return Float32(fn(a.Float32(), b.Float32())), nil
	}}
}

func f32Unary(op Op, fn func(a float32) float32) Entry {
	return Entry{Symbol: Symbol{F32, op}, Func: fn, call: func(a, _ Value) (Value, error) {
		return Float32(fn(a.Float32())), nil
	}}
}

func f64Binary(op Op, fn func(a, b float64) float64) Entry {
	return Entry{Symbol: Symbol{F64, op}, Func: fn, call: func(a, b Value) (Value, error) {
		return Float64(fn(a.Float64(), b.Float64())), nil
	}}
}

func f64Unary(op Op, fn func(a float64) float64) Entry {
	return Entry{Symbol: Symbol{F64, op}, Func: fn, call: func(a, _ Value) (Value, error) {
		return Float64(fn(a.Float64())), nil
	}}
}
