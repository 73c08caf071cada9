// Package lex provides the lexical helpers shared by the value, query and
// codec packages: URI base resolution, locale parsing, string escaping and
// numeric canonicalization.
package lex

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// Resolve resolves ref against base, returning the absolute URI form.
// The empty string resolves to itself: an empty URI means "default/empty"
// and round-trips as such rather than resolving to the base.
func Resolve(base, ref string) string {
	if ref == "" {
		return ""
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if refURL.IsAbs() {
		return normalizeHost(refURL).String()
	}

	baseURL, err := url.Parse(base)
	if err != nil || base == "" {
		return normalizeHost(refURL).String()
	}

	return normalizeHost(baseURL.ResolveReference(refURL)).String()
}

// Relativize renders full against base in root-relative form when scheme
// and authority match; otherwise it returns full unchanged.
func Relativize(base, full string) string {
	if full == "" {
		return ""
	}

	fullURL, err := url.Parse(full)
	if err != nil {
		return full
	}
	baseURL, err := url.Parse(base)
	if err != nil || base == "" {
		return full
	}

	if !strings.EqualFold(fullURL.Scheme, baseURL.Scheme) || !strings.EqualFold(fullURL.Host, baseURL.Host) {
		return full
	}

	rel := baseURL.ResolveReference(fullURL)
	relPath := rel.Path
	basePath := baseURL.Path

	if idx := strings.LastIndex(basePath, "/"); idx >= 0 {
		basePath = basePath[:idx+1]
	}

	out := relPath
	if strings.HasPrefix(relPath, basePath) {
		out = relPath[len(basePath):]
	} else if strings.HasPrefix(relPath, "/") {
		out = relPath
	}

	if rel.RawQuery != "" {
		out += "?" + rel.RawQuery
	}
	if rel.Fragment != "" {
		out += "#" + rel.Fragment
	}
	return out
}

// normalizeHost lower-cases and applies IDNA ToASCII normalization to the
// host component of u, leaving the rest of the URI untouched. Hosts that
// fail IDNA normalization (e.g. bare IP literals or non-DNS authorities)
// are left as-is.
func normalizeHost(u *url.URL) *url.URL {
	if u.Host == "" {
		return u
	}
	host := u.Hostname()
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return u
	}
	if port := u.Port(); port != "" {
		ascii += ":" + port
	}
	out := *u
	out.Host = ascii
	return &out
}

// IsAbsolute reports whether s is an absolute URI (has a scheme).
func IsAbsolute(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs()
}
