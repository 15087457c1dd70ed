package stats

import (
	"fmt"
	"strings"
)

// Rate is a ratio statistic that may be undefined. A zero Rate is undefined,
// which is distinct from a defined 0.000.
type Rate struct {
	value   float64
	defined bool
}

// Undefined returns the undefined rate
func Undefined() Rate {
	return Rate{}
}

// Defined wraps a known value
func Defined(v float64) Rate {
	return Rate{value: v, defined: true}
}

// Ratio returns num/den, or undefined when den is zero
func Ratio(num, den int) Rate {
	if den == 0 {
		return Undefined()
	}
	return Defined(float64(num) / float64(den))
}

// Value returns the rate and whether it is defined
func (r Rate) Value() (float64, bool) {
	return r.value, r.defined
}

// IsDefined reports whether the rate has a value
func (r Rate) IsDefined() bool {
	return r.defined
}

// Plus adds two rates. The sum is undefined if either side is.
func (r Rate) Plus(o Rate) Rate {
	if !r.defined || !o.defined {
		return Undefined()
	}
	return Defined(r.value + o.value)
}

// Format renders the rate with three decimals in box-score style (".300",
// "1.250"), or placeholder when undefined.
func (r Rate) Format(placeholder string) string {
	if !r.defined {
		return placeholder
	}
	s := fmt.Sprintf("%.3f", r.value)
	if strings.HasPrefix(s, "0.") {
		return s[1:]
	}
	return s
}

// String renders undefined rates as "-"
func (r Rate) String() string {
	return r.Format("-")
}
