package lex

import (
	"regexp"

	"golang.org/x/text/language"
)

// Root is the locale tag for Text's ROOT locale: the empty string.
const Root = ""

// Any is the locale tag for Text's wildcard locale: "*".
const Any = "*"

var tagPattern = regexp.MustCompile(`^[a-z]{2}(-[A-Za-z0-9]+)*$`)

// ValidLocale reports whether tag is ROOT, ANY, or a syntactically valid
// BCP-47-ish locale tag ([a-z]{2}(-[A-Za-z0-9]+)*).
func ValidLocale(tag string) bool {
	if tag == Root || tag == Any {
		return true
	}
	if !tagPattern.MatchString(tag) {
		return false
	}
	// Delegate to golang.org/x/text/language for a stronger well-formedness
	// check (rejects nonsense subtags that the regex alone would accept).
	_, err := language.Parse(tag)
	return err == nil
}

// CanonicalLocale returns the canonical BCP-47 form of tag, or tag itself
// when it is ROOT, ANY, or not parseable.
func CanonicalLocale(tag string) string {
	if tag == Root || tag == Any {
		return tag
	}
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return t.String()
}
