package models

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Accepted input range. Values outside it decode to zero like any other
// unparseable input, which keeps rescaling (Round, Mul) bounded.
const (
	maxNumberExponent = 15
	minNumberExponent = -20
)

// maxNumberMagnitude is the largest absolute value a Number may hold
var maxNumberMagnitude = decimal.New(1, maxNumberExponent)

// Number is a decimal that decodes leniently from JSON. Numbers and numeric
// strings parse; null, empty strings, anything unparseable and anything
// outside the money range decode to zero.
type Number struct {
	decimal.Decimal
}

// NewNumber wraps a float for request construction in code and tests
func NewNumber(f float64) Number {
	return boundedNumber(decimal.NewFromFloat(f))
}

// NumberFromString parses s, falling back to zero
func NumberFromString(s string) Number {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Number{Decimal: decimal.Zero}
	}
	return boundedNumber(d)
}

func boundedNumber(d decimal.Decimal) Number {
	exp := d.Exponent()
	if exp > maxNumberExponent || exp < minNumberExponent {
		return Number{Decimal: decimal.Zero}
	}
	if d.Abs().GreaterThan(maxNumberMagnitude) {
		return Number{Decimal: decimal.Zero}
	}
	return Number{Decimal: d}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		n.Decimal = decimal.Zero
		return nil
	}
	// Objects and arrays are not numbers; treat them as zero instead of failing the body.
	if b[0] == '{' || b[0] == '[' {
		n.Decimal = decimal.Zero
		return nil
	}
	*n = NumberFromString(string(bytes.Trim(b, `"`)))
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return n.Decimal.MarshalJSON()
}

// Bounded returns n, or zero when n was built in code outside the money range
func (n Number) Bounded() Number {
	return boundedNumber(n.Decimal)
}

// NonNegative returns the bounded value, or zero when negative
func (n Number) NonNegative() decimal.Decimal {
	d := n.Bounded().Decimal
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Int truncates toward zero like parseInt. Negatives and values too large
// for an int become zero.
func (n Number) Int() int {
	if n.Decimal.IsNegative() || n.Decimal.GreaterThan(maxNumberMagnitude) {
		return 0
	}
	v := n.Decimal.IntPart()
	if int64(int(v)) != v {
		return 0
	}
	return int(v)
}
