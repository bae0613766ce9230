// Package jsonutil provides the one piece of custom JSON encoding this
// module needs: a float64 that can carry +/-Infinity through the state and
// result files (encoding/json itself refuses to marshal Inf/NaN), the same
// way a Jackson-backed Java service represents those values as the bare
// strings "Infinity"/"-Infinity" rather than a numeric literal.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

type InfFloat64 float64

func (f InfFloat64) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return json.Marshal("Infinity")
	case math.IsInf(v, -1):
		return json.Marshal("-Infinity")
	case math.IsNaN(v):
		return json.Marshal("NaN")
	default:
		return json.Marshal(v)
	}
}

func (f *InfFloat64) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		switch s {
		case "Infinity":
			*f = InfFloat64(math.Inf(1))
			return nil
		case "-Infinity":
			*f = InfFloat64(math.Inf(-1))
			return nil
		case "NaN":
			*f = InfFloat64(math.NaN())
			return nil
		default:
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("jsonutil: cannot parse %q as float64: %w", s, err)
			}
			*f = InfFloat64(v)
			return nil
		}
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = InfFloat64(v)
	return nil
}

func (f InfFloat64) Float64() float64 { return float64(f) }
