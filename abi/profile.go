package abi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agbru/numrt/numeric"
)

// Profile is the on-disk form of a Convention.
//
//	name: c-shim
//	naming:
//	  template: "{type}_{op}"
//	  prefix: "__numrt_"
//	  types: {i32: int}
//	  ops: {divide: div}
//	narrow_ints: sign     # sign | zero
//	float32: bits         # bits | widened
//	errors: return        # return | trap
//	semantics: wrapping   # wrapping | checked
type Profile struct {
	Name       string        `yaml:"name,omitempty"`
	Naming     NamingProfile `yaml:"naming"`
	NarrowInts string        `yaml:"narrow_ints,omitempty"`
	Float32    string        `yaml:"float32,omitempty"`
	Errors     string        `yaml:"errors,omitempty"`
	Semantics  string        `yaml:"semantics,omitempty"`
}

type NamingProfile struct {
	Template string            `yaml:"template,omitempty"`
	Prefix   string            `yaml:"prefix,omitempty"`
	Types    map[string]string `yaml:"types,omitempty"`
	Ops      map[string]string `yaml:"ops,omitempty"`
}

// LoadProfile reads a YAML profile from path.
func LoadProfile(path string) (Convention, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Convention{}, fmt.Errorf("read profile: %w", err)
	}
	conv, err := ParseProfile(data)
	if err != nil {
		return Convention{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return conv, nil
}

// ParseProfile decodes a YAML profile. Unknown keys are rejected. An empty
// document yields DefaultConvention.
func ParseProfile(data []byte) (Convention, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Convention{}, fmt.Errorf("decode: %w", err)
	}
	return p.Convention()
}

// Convention validates the profile and converts it.
func (p Profile) Convention() (Convention, error) {
	conv := DefaultConvention()

	if p.Naming.Template != "" {
		conv.Naming.Template = p.Naming.Template
	}
	conv.Naming.Prefix = p.Naming.Prefix

	// Keys are case-insensitive; Naming.Name looks aliases up by the
	// canonical lowercase name.
	types, err := canonicalAliases("naming.types", p.Naming.Types, func(k string) (string, error) {
		kind, err := numeric.ParseKind(k)
		return kind.String(), err
	})
	if err != nil {
		return Convention{}, err
	}
	ops, err := canonicalAliases("naming.ops", p.Naming.Ops, func(k string) (string, error) {
		op, err := numeric.ParseOp(k)
		return op.String(), err
	})
	if err != nil {
		return Convention{}, err
	}
	conv.Naming.Types = types
	conv.Naming.Ops = ops

	switch p.NarrowInts {
	case "", "sign":
		conv.NarrowInts = SignExtend
	case "zero":
		conv.NarrowInts = ZeroExtend
	default:
		return Convention{}, fmt.Errorf("narrow_ints: unknown extension %q (want sign or zero)", p.NarrowInts)
	}

	switch p.Float32 {
	case "", "bits":
		conv.Float32 = Float32Bits
	case "widened":
		conv.Float32 = Float32Widened
	default:
		return Convention{}, fmt.Errorf("float32: unknown representation %q (want bits or widened)", p.Float32)
	}

	switch p.Errors {
	case "", "return":
		conv.Errors = ReturnErrors
	case "trap":
		conv.Errors = TrapErrors
	default:
		return Convention{}, fmt.Errorf("errors: unknown mode %q (want return or trap)", p.Errors)
	}

	sem, err := numeric.ParseSemantics(p.Semantics)
	if err != nil {
		return Convention{}, fmt.Errorf("semantics: %w", err)
	}
	conv.Semantics = sem

	return conv, nil
}

func canonicalAliases(field string, aliases map[string]string, canonical func(string) (string, error)) (map[string]string, error) {
	if len(aliases) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(aliases))
	seen := make(map[string]string, len(aliases))
	for k, v := range aliases {
		name, err := canonical(k)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		if v == "" {
			return nil, fmt.Errorf("%s: empty alias for %s", field, k)
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%s: keys %q and %q both name %s", field, prev, k, name)
		}
		seen[name] = k
		out[name] = v
	}
	return out, nil
}

// ProfileOf returns the profile describing c.
func ProfileOf(c Convention) Profile {
	return Profile{
		Naming: NamingProfile{
			Template: c.Naming.Template,
			Prefix:   c.Naming.Prefix,
			Types:    c.Naming.Types,
			Ops:      c.Naming.Ops,
		},
		NarrowInts: c.NarrowInts.String(),
		Float32:    c.Float32.String(),
		Errors:     c.Errors.String(),
		Semantics:  c.Semantics.String(),
	}
}

// MarshalProfile renders c as a YAML profile.
func MarshalProfile(c Convention) ([]byte, error) {
	return yaml.Marshal(ProfileOf(c))
}
