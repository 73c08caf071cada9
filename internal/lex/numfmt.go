package lex

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// FormatFloating renders f in the canonical normalized scientific form
// d.dddEn with a single digit before the decimal point and a lowercase "e",
// e.g. 12.3 -> "1.23e1", 0.5 -> "5.0e-1".
func FormatFloating(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "INF"
	}
	if math.IsInf(f, -1) {
		return "-INF"
	}
	if f == 0 {
		if math.Signbit(f) {
			return "-0.0e0"
		}
		return "0.0e0"
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	// strconv gives us "d.ddde±dd" or "de±dd"; normalize the mantissa to
	// always carry at least one fractional digit and drop the exponent's
	// leading zeros / plus sign.
	mantissa, exp, _ := strings.Cut(s, "e")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	expN, _ := strconv.Atoi(exp)
	return fmt.Sprintf("%se%d", mantissa, expN)
}

var floatLexical = regexp.MustCompile(`^-?\d+(\.\d+)?[eE][+-]?\d+$|^-?\d+\.\d+$`)

// ParseFloating parses either the canonical scientific form or the legacy
// plain-decimal form (spec §9: both accepted on decode).
func ParseFloating(s string) (float64, bool) {
	switch s {
	case "NaN":
		return math.NaN(), true
	case "INF":
		return math.Inf(1), true
	case "-INF":
		return math.Inf(-1), true
	}
	if !floatLexical.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatDecimal renders an arbitrary-precision decimal (unscaled * 10^-scale)
// with at least one digit after the decimal point, preserving trailing
// zeros down to the declared scale.
func FormatDecimal(unscaled *big.Int, scale int) string {
	neg := unscaled.Sign() < 0
	abs := new(big.Int).Abs(unscaled)
	digits := abs.String()

	if scale < 1 {
		if abs.Sign() != 0 {
			digits += strings.Repeat("0", 1-scale)
		}
		scale = 1
	}
	for len(digits) <= scale {
		digits = "0" + digits
	}

	intPart := digits[:len(digits)-scale]
	fracPart := digits[len(digits)-scale:]
	if intPart == "" {
		intPart = "0"
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(intPart)
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

var decimalLexical = regexp.MustCompile(`^-?\d+\.\d+$`)

// ParseDecimal parses a decimal lexical into its unscaled integer and scale.
func ParseDecimal(s string) (unscaled *big.Int, scale int, ok bool) {
	if !decimalLexical.MatchString(s) {
		return nil, 0, false
	}
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	digits := intPart + fracPart
	n := new(big.Int)
	n.SetString(digits, 10)
	if neg {
		n.Neg(n)
	}
	return n, len(fracPart), true
}

var integerLexical = regexp.MustCompile(`^-?(0|[1-9]\d*)$`)

// ParseInteger parses an arbitrary-precision integer lexical, rejecting
// leading zeros (other than the literal "0").
func ParseInteger(s string) (*big.Int, bool) {
	if !integerLexical.MatchString(s) {
		return nil, false
	}
	n := new(big.Int)
	if _, ok := n.SetString(s, 10); !ok {
		return nil, false
	}
	return n, true
}
