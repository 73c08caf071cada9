package value

import "testing"

func TestTextRootLocaleEncode(t *testing.T) {
	tx := NewText(RootLocale, "hello")
	if got := tx.Encode(DefaultBase); got != "hello" {
		t.Fatalf("expected bare lexical for ROOT locale, got %q", got)
	}
}

func TestTextTaggedLocaleEncode(t *testing.T) {
	tx := NewText("en", "hello")
	if got := tx.Encode(DefaultBase); got != "hello@en" {
		t.Fatalf("expected tagged lexical, got %q", got)
	}
}

func TestTextRoundTrip(t *testing.T) {
	cases := []Text{
		NewText(RootLocale, "bare"),
		NewText("en", "hi"),
		NewText("en-US", "hi"),
	}
	for _, tx := range cases {
		s := tx.Encode(DefaultBase)
		got, ok := DecodeText(DefaultBase, s)
		if !ok || !got.Equal(tx) {
			t.Fatalf("round trip failed for %+v: got %v, ok=%v", tx, got, ok)
		}
	}
}

func TestDecodeTextRejectsMalformedLocale(t *testing.T) {
	if _, ok := DecodeText(DefaultBase, "hi@123bad_tag!"); ok {
		t.Fatalf("expected malformed locale tag to be rejected")
	}
}

func TestURIRoundTripRelative(t *testing.T) {
	base := "https://example.org/base/"
	v, ok := DecodeURI(base, "path")
	if !ok {
		t.Fatalf("DecodeURI failed")
	}
	u := v.(URI)
	if got := u.Encode(base); got != "path" {
		t.Fatalf("expected root-relative round trip, got %q", got)
	}
}

func TestURIAbsoluteUnderDifferentAuthoritySurvives(t *testing.T) {
	base := "https://example.org/base/"
	other := "https://other.example.com/thing"
	v, ok := DecodeURI(base, other)
	if !ok {
		t.Fatalf("DecodeURI failed")
	}
	u := v.(URI)
	if got := u.Encode(base); got != other {
		t.Fatalf("expected unchanged absolute URI, got %q", got)
	}
}

func TestURIEmptyStringPreserved(t *testing.T) {
	base := "https://example.org/base/"
	v, ok := DecodeURI(base, "")
	if !ok {
		t.Fatalf("DecodeURI failed on empty string")
	}
	u := v.(URI)
	if got := u.Encode(base); got != "" {
		t.Fatalf("expected empty URI to round-trip as empty, got %q", got)
	}
}
