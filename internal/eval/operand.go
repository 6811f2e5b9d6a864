package eval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agbru/numrt/numeric"
)

// BitsPrefix introduces a raw word operand, e.g. "bits:0x7fc00001".
const BitsPrefix = "bits:"

// ParseOperand parses s as a value of kind k.
//
// Integers accept decimal, 0x, 0o and 0b forms with an optional sign and
// must fit the kind's range. Floats accept anything strconv.ParseFloat
// does, including NaN and ±Inf. Either kind accepts a raw bit pattern
// after BitsPrefix; the pattern must fit the kind's width.
func ParseOperand(k numeric.Kind, s string) (numeric.Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return numeric.Value{}, errors.New("empty operand")
	}
	if rest, ok := strings.CutPrefix(s, BitsPrefix); ok {
		return parseBits(k, rest)
	}
	if k.IsFloat() {
		f, err := strconv.ParseFloat(s, k.Width())
		if err != nil {
			return numeric.Value{}, numError(k, s, err)
		}
		return numeric.FromFloat(k, f), nil
	}
	i, err := strconv.ParseInt(s, 0, k.Width())
	if err != nil {
		return numeric.Value{}, numError(k, s, err)
	}
	return numeric.FromInt(k, i), nil
}

func parseBits(k numeric.Kind, s string) (numeric.Value, error) {
	u, err := strconv.ParseUint(s, 0, k.Width())
	if err != nil {
		return numeric.Value{}, numError(k, BitsPrefix+s, err)
	}
	return numeric.FromBits(k, u), nil
}

func numError(k numeric.Kind, s string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%q is out of range for %s", s, k)
	}
	return fmt.Errorf("%q is not a valid %s literal", s, k)
}
