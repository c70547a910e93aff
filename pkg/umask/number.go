package umask

import (
	"fmt"
	"strconv"
	"strings"
)

// Number is a parameter value together with the form it was written in.
type Number struct {
	Value   float64
	Integer bool
}

// ParseNumber converts raw parameter text to a Number.
//
// Text containing a decimal point is parsed as a float, anything else as a
// base-10 integer. "1" is therefore the integer 1, "1.0" the float 1, and
// "1e3" is rejected because it has no decimal point and is not an integer.
func ParseNumber(raw string) (Number, error) {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Number{}, fmt.Errorf("parsing float %q: %w", raw, err)
		}
		return Number{Value: f}, nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Number{}, fmt.Errorf("parsing integer %q: %w", raw, err)
	}
	return Number{Value: float64(i), Integer: true}, nil
}

// String formats the number the way it was written: integers without a
// fractional part, floats in their shortest form.
func (n Number) String() string {
	if n.Integer {
		return strconv.FormatInt(int64(n.Value), 10)
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}
