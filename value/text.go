package value

import (
	"strings"

	"github.com/meshcore/ld/internal/lex"
)

// RootLocale is the ROOT locale: the empty-string tag.
const RootLocale = lex.Root

// AnyLocale is the wildcard ANY locale: "*".
const AnyLocale = lex.Any

// Text is a (locale, string) pair: localized text.
type Text struct {
	Locale string
	S      string
}

// NewText builds a Text value, defaulting an empty locale to RootLocale.
func NewText(locale, s string) Text {
	return Text{Locale: locale, S: s}
}

func (t Text) Kind() Kind { return KindText }

// Encode renders "value" for the ROOT locale, else "value@tag".
func (t Text) Encode(base string) string {
	if t.Locale == RootLocale {
		return t.S
	}
	return t.S + "@" + t.Locale
}
func (t Text) Equal(other Value) bool {
	o, ok := other.(Text)
	return ok && o.Locale == t.Locale && o.S == t.S
}

// DecodeText parses "value" or "value@tag"; tag must be ROOT, ANY, or a
// syntactically valid locale tag.
func DecodeText(base, s string) (Value, bool) {
	idx := strings.LastIndex(s, "@")
	if idx < 0 {
		return Text{Locale: RootLocale, S: s}, true
	}
	tag := s[idx+1:]
	if !lex.ValidLocale(tag) {
		return nil, false
	}
	return Text{Locale: tag, S: s[:idx]}, true
}
