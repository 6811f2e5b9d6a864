package format

import (
	"fmt"
	"strings"

	"github.com/agbru/numrt/numeric"
)

// FormatValue renders v for display. Integers are decimal, or two's
// complement hexadecimal of the kind's width when hex is set. Floats always
// use the shortest decimal form that round-trips at their width.
func FormatValue(v numeric.Value, hex bool) string {
	if hex && !v.Kind().IsFloat() {
		return FormatBits(v)
	}
	return v.String()
}

// FormatBits renders the IEEE or two's complement pattern of v at its
// natural width, e.g. 0x8000 for the i16 minimum.
func FormatBits(v numeric.Value) string {
	width := v.Kind().Width()
	mask := uint64(1)<<width - 1
	if width == 64 {
		mask = ^uint64(0)
	}
	return fmt.Sprintf("0x%0*x", width/4, v.Bits()&mask)
}

// FormatWord renders a 64-bit word as it travels through a calling convention.
func FormatWord(w uint64) string {
	return fmt.Sprintf("0x%016x", w)
}

// FormatNumberString inserts thousands separators into a decimal string.
func FormatNumberString(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// FormatCount is FormatNumberString for an int.
func FormatCount(n int) string {
	return FormatNumberString(fmt.Sprint(n))
}
