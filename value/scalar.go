package value

import (
	"math/big"
	"strconv"

	"github.com/meshcore/ld/internal/lex"
)

// Nil represents absence. It prunes away under prune mode and is the only
// value for which IsNil reports true.
type Nil struct{}

// Nothing is the singleton Nil value.
var Nothing = Nil{}

func (Nil) Kind() Kind                 { return KindNil }
func (Nil) Encode(base string) string  { return "" }
func (Nil) Equal(other Value) bool     { _, ok := other.(Nil); return ok }
func DecodeNil(base, s string) (Value, bool) {
	if s == "" {
		return Nothing, true
	}
	return nil, false
}

// Bit is a boolean literal.
type Bit bool

func (b Bit) Kind() Kind { return KindBit }
func (b Bit) Encode(base string) string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bit) Equal(other Value) bool {
	o, ok := other.(Bit)
	return ok && o == b
}

// DecodeBit parses the canonical lexical of a Bit.
func DecodeBit(base, s string) (Value, bool) {
	switch s {
	case "true":
		return Bit(true), true
	case "false":
		return Bit(false), true
	default:
		return nil, false
	}
}

// Integral is a 64-bit signed integer literal.
type Integral int64

func (i Integral) Kind() Kind                { return KindIntegral }
func (i Integral) Encode(base string) string { return strconv.FormatInt(int64(i), 10) }
func (i Integral) Equal(other Value) bool {
	o, ok := other.(Integral)
	return ok && o == i
}

// DecodeIntegral parses an exact 64-bit signed integer lexical.
func DecodeIntegral(base, s string) (Value, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, false
	}
	return Integral(n), true
}

// Floating is an IEEE-754 double.
type Floating float64

func (f Floating) Kind() Kind                { return KindFloating }
func (f Floating) Encode(base string) string { return lex.FormatFloating(float64(f)) }
func (f Floating) Equal(other Value) bool {
	o, ok := other.(Floating)
	return ok && o == f
}

// DecodeFloating parses either the canonical scientific form or the legacy
// plain-decimal form.
func DecodeFloating(base, s string) (Value, bool) {
	f, ok := lex.ParseFloating(s)
	if !ok {
		return nil, false
	}
	return Floating(f), true
}

// Integer is an arbitrary-precision integer literal.
type Integer struct{ n *big.Int }

// NewInteger wraps n as an Integer value.
func NewInteger(n *big.Int) Integer { return Integer{n: new(big.Int).Set(n)} }

// NewIntegerFromInt64 builds an Integer from an int64.
func NewIntegerFromInt64(n int64) Integer { return Integer{n: big.NewInt(n)} }

func (i Integer) Kind() Kind { return KindInteger }
func (i Integer) Encode(base string) string {
	if i.n == nil {
		return "0"
	}
	return i.n.String()
}
func (i Integer) Equal(other Value) bool {
	o, ok := other.(Integer)
	if !ok || o.n == nil || i.n == nil {
		return ok && o.n == i.n
	}
	return i.n.Cmp(o.n) == 0
}

// Big returns the underlying arbitrary-precision integer.
func (i Integer) Big() *big.Int { return i.n }

// DecodeInteger parses an exact arbitrary-precision integer lexical,
// rejecting leading zeros.
func DecodeInteger(base, s string) (Value, bool) {
	n, ok := lex.ParseInteger(s)
	if !ok {
		return nil, false
	}
	return Integer{n: n}, true
}

// Decimal is an arbitrary-precision decimal: unscaled * 10^-scale, with the
// trailing zero preserved to a scale of at least 1 (so "0" round-trips as
// "0.0" rather than "0").
type Decimal struct {
	unscaled *big.Int
	scale    int
}

// NewDecimal builds a Decimal from its unscaled integer and scale.
func NewDecimal(unscaled *big.Int, scale int) Decimal {
	if scale < 1 {
		unscaled = new(big.Int).Mul(unscaled, pow10(1-scale))
		scale = 1
	}
	return Decimal{unscaled: new(big.Int).Set(unscaled), scale: scale}
}

func (d Decimal) Kind() Kind { return KindDecimal }
func (d Decimal) Encode(base string) string {
	if d.unscaled == nil {
		return "0.0"
	}
	return lex.FormatDecimal(d.unscaled, d.scale)
}
func (d Decimal) Equal(other Value) bool {
	o, ok := other.(Decimal)
	if !ok {
		return false
	}
	// Compare by value, not by scale: 1.20 == 1.2.
	a := new(big.Rat).SetFrac(d.unscaled, pow10(d.scale))
	b := new(big.Rat).SetFrac(o.unscaled, pow10(o.scale))
	return a.Cmp(b) == 0
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// DecodeDecimal parses a decimal lexical (mandatory fractional part).
func DecodeDecimal(base, s string) (Value, bool) {
	unscaled, scale, ok := lex.ParseDecimal(s)
	if !ok {
		return nil, false
	}
	return Decimal{unscaled: unscaled, scale: scale}, true
}

// DecodeNumber dispatches a numeric lexical to whichever of Integral,
// Integer, Decimal or Floating form fits it best; this backs a Shape whose
// datatype is the generic Number parent tag. Preference order: an exact
// 64-bit integer lexical becomes Integral, an arbitrary-precision integer
// lexical that overflows 64 bits becomes Integer, a decimal-point lexical
// becomes Decimal, and anything else falls back to Floating.
func DecodeNumber(base, s string) (Value, bool) {
	if !lex.LooksNumeric(s) {
		return nil, false
	}
	if v, ok := DecodeIntegral(base, s); ok {
		return v, true
	}
	if v, ok := DecodeInteger(base, s); ok {
		return v, true
	}
	if v, ok := DecodeDecimal(base, s); ok {
		return v, true
	}
	return DecodeFloating(base, s)
}
