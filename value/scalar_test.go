package value

import (
	"math/big"
	"testing"
)

func TestIntegralRoundTrip(t *testing.T) {
	v := Integral(42)
	s := v.Encode(DefaultBase)
	got, ok := DecodeIntegral(DefaultBase, s)
	if !ok || !got.Equal(v) {
		t.Fatalf("round trip failed: got %v, ok=%v", got, ok)
	}
}

func TestDecimalZeroCanonicalForm(t *testing.T) {
	d := NewDecimal(big.NewInt(0), 0)
	if got := d.Encode(DefaultBase); got != "0.0" {
		t.Fatalf("expected canonical 0.0, got %q", got)
	}
}

func TestDecimalEqualityIgnoresScale(t *testing.T) {
	a := NewDecimal(big.NewInt(12), 1)  // 1.2
	b := NewDecimal(big.NewInt(120), 2) // 1.20
	if !a.Equal(b) {
		t.Fatalf("expected 1.2 == 1.20")
	}
}

func TestIntegerArbitraryPrecision(t *testing.T) {
	n := new(big.Int)
	n.SetString("123456789012345678901234567890", 10)
	i := NewInteger(n)
	s := i.Encode(DefaultBase)
	got, ok := DecodeInteger(DefaultBase, s)
	if !ok || !got.Equal(i) {
		t.Fatalf("round trip failed for big integer: %v", got)
	}
}

func TestDecodeNumberDispatch(t *testing.T) {
	cases := []struct {
		lexical string
		kind    Kind
	}{
		{"42", KindIntegral},
		{"3.14", KindDecimal},
		{"1.23E1", KindFloating},
	}
	for _, c := range cases {
		v, ok := DecodeNumber(DefaultBase, c.lexical)
		if !ok {
			t.Fatalf("DecodeNumber(%q) failed", c.lexical)
		}
		if v.Kind() != c.kind {
			t.Errorf("DecodeNumber(%q) = kind %v, want %v", c.lexical, v.Kind(), c.kind)
		}
	}
}

func TestDecodeNumberRejectsNonNumeric(t *testing.T) {
	if _, ok := DecodeNumber(DefaultBase, "not-a-number"); ok {
		t.Fatalf("expected DecodeNumber to reject non-numeric lexical")
	}
}
