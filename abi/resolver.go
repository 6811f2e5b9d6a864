package abi

import (
	"fmt"
	"sort"

	"github.com/agbru/numrt/numeric"
)

// Binding is an entry point as the generated code sees it: a name and a
// word-in/word-out call under a convention.
type Binding struct {
	Name  string
	Entry numeric.Entry

	conv Convention
}

// Symbol returns the canonical pair behind the binding.
func (b *Binding) Symbol() numeric.Symbol { return b.Entry.Symbol }

// Convention returns the convention the binding was built with.
func (b *Binding) Convention() Convention { return b.conv }

// Call decodes the operand words, invokes the entry and encodes the result.
// In TrapErrors mode arithmetic failures panic with a *Trap; operand errors
// are always returned.
func (b *Binding) Call(words ...uint64) (uint64, error) {
	args := make([]numeric.Value, len(words))
	for i, w := range words {
		args[i] = b.conv.Decode(b.Entry.Symbol.Kind, w)
	}
	v, err := b.CallValues(args...)
	if err != nil {
		return 0, err
	}
	return b.conv.Encode(v), nil
}

// CallValues is Call for already decoded operands.
func (b *Binding) CallValues(args ...numeric.Value) (numeric.Value, error) {
	v, err := b.Entry.Call(args...)
	if err == nil {
		return v, nil
	}
	status := StatusOf(err)
	if b.conv.Errors == TrapErrors && status != StatusInvalid {
		panic(&Trap{Name: b.Name, Status: status, Err: err})
	}
	return numeric.Value{}, err
}

// Resolver maps entry point names to bindings for one convention.
type Resolver struct {
	conv     Convention
	byName   map[string]*Binding
	bindings []*Binding
}

// NewResolver binds every entry of the table selected by the convention's
// semantics. It fails if the naming scheme gives two entries the same name.
func NewResolver(conv Convention) (*Resolver, error) {
	table := numeric.TableFor(conv.Semantics)
	r := &Resolver{
		conv:   conv,
		byName: make(map[string]*Binding),
	}
	for _, e := range table.Entries() {
		name := conv.Naming.Name(e.Symbol)
		if name == "" {
			return nil, fmt.Errorf("naming scheme renders an empty name for %s", e.Symbol)
		}
		if prev, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("naming scheme maps both %s and %s to %q", prev.Symbol(), e.Symbol, name)
		}
		b := &Binding{Name: name, Entry: e, conv: conv}
		r.byName[name] = b
		r.bindings = append(r.bindings, b)
	}
	return r, nil
}

// Convention returns the resolver's convention.
func (r *Resolver) Convention() Convention { return r.conv }

// Resolve returns the binding named name.
func (r *Resolver) Resolve(name string) (*Binding, error) {
	b, ok := r.byName[name]
	if !ok {
		return nil, &UnknownSymbolError{Name: name}
	}
	return b, nil
}

// ResolveSymbol returns the binding of a canonical pair.
func (r *Resolver) ResolveSymbol(s numeric.Symbol) (*Binding, error) {
	return r.Resolve(r.conv.Naming.Name(s))
}

// Bindings returns all bindings in table order.
func (r *Resolver) Bindings() []*Binding {
	out := make([]*Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// Names returns all entry point names sorted lexically.
func (r *Resolver) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownSymbolError is returned when a name does not resolve.
type UnknownSymbolError struct {
	Name string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown entry point %q", e.Name)
}
