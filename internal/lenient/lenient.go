// Package lenient parses numbers typed by operators, coercing malformed
// input to zero instead of failing.
package lenient

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Float parses s as a decimal. A comma decimal separator is accepted. Blank
// input yields nil (not measured); anything else that does not parse yields 0.
func Float(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return &v
}

// Int parses s as a whole number; malformed input yields 0.
func Int(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// IntValue is an int that unmarshals from a JSON number or string; values
// that are neither, or that do not fit in an int64, yield 0.
type IntValue int

func (v *IntValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			*v = IntValue(i)
			return nil
		}
		if f, err := n.Float64(); err == nil {
			if f < math.MinInt64 || f >= math.MaxInt64 {
				f = 0
			}
			*v = IntValue(int64(f))
			return nil
		}
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = IntValue(Int(s))
		return nil
	}
	*v = 0
	return nil
}
