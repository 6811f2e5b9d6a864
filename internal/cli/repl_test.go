package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agbru/numrt/abi"
)

func runREPL(t *testing.T, conv abi.Convention, input string) string {
	t.Helper()
	r, err := NewREPL(REPLConfig{Convention: conv})
	if err != nil {
		t.Fatalf("NewREPL: %v", err)
	}
	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	r.Start()
	return out.String()
}

func TestREPLCommands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"call", "call i32_add 2147483647 1\n", []string{"i32_add(2147483647, 1) = -2147483648"}},
		{"shorthand", "i16_negate -32768\n", []string{"i16_negate(-32768) = -32768"}},
		{"failure", "i16_divide 5 0\n", []string{"failed: division_by_zero"}},
		{"checked toggle", "checked\ni16_add 32767 1\nchecked\ni16_add 32767 1\n",
			[]string{"Integer semantics: checked", "failed: overflow", "Integer semantics: wrapping", "= -32768"}},
		{"hex toggle", "hex\ni16_subtract 0 1\n", []string{"Hexadecimal display: enabled", "= 0xffff"}},
		{"list with prefix", "list f32_\n", []string{"f32_add", "f32_negate"}},
		{"status", "status\n", []string{"Semantics:", "wrapping", "Narrow ints:"}},
		{"unknown", "frobnicate\n", []string{"Unknown command or entry point: frobnicate"}},
		{"bad operand", "i16_add 1 x\n", []string{"Error:", "not a valid i16 literal"}},
		{"missing name", "call\n", []string{"Usage: call"}},
		{"exit", "exit\ni32_add 1 1\n", []string{"Goodbye!"}},
		{"eof without newline", "i64_multiply 3 4", []string{"= 12", "Goodbye!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := runREPL(t, abi.DefaultConvention(), tt.input)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output does not contain %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestREPLExitStopsProcessing(t *testing.T) {
	t.Parallel()
	out := runREPL(t, abi.DefaultConvention(), "exit\ni32_add 1 1\n")
	if strings.Contains(out, "i32_add(1, 1)") {
		t.Error("command after exit was processed")
	}
}

func TestREPLListFilterDoesNotShrinkTable(t *testing.T) {
	t.Parallel()
	out := runREPL(t, abi.DefaultConvention(), "list i16_\nlist\n")
	if !strings.Contains(out, "f64_divide") {
		t.Error("a filtered list must not affect later listings")
	}
}
