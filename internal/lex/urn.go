package lex

import urn "github.com/leodido/go-urn"

// ParseURN reports whether s is a well-formed RFC 8141 URN and returns its
// normalized string form. URIs using the urn: scheme are otherwise handled
// like any other absolute URI; this helper backs the optional stricter
// "urn" well-known format check.
func ParseURN(s string) (string, bool) {
	u, ok := urn.Parse([]byte(s))
	if !ok {
		return "", false
	}
	return u.Normalize().String(), true
}
