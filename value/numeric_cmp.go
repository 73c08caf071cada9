package value

import "math/big"

// asNumber converts any of the four numeric Value variants to a big.Rat for
// cross-variant ordering (an Integral compares correctly against a Decimal,
// etc.), returning false for non-numeric kinds.
func asNumber(v Value) (*big.Rat, bool) {
	switch t := v.(type) {
	case Integral:
		return new(big.Rat).SetInt64(int64(t)), true
	case Integer:
		if t.n == nil {
			return new(big.Rat), true
		}
		return new(big.Rat).SetInt(t.n), true
	case Decimal:
		if t.unscaled == nil {
			return new(big.Rat), true
		}
		return new(big.Rat).SetFrac(t.unscaled, pow10(t.scale)), true
	case Floating:
		r := new(big.Rat)
		r.SetFloat64(float64(t))
		return r, true
	default:
		return nil, false
	}
}
