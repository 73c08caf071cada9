package lex

import (
	"sync"

	govalidator "github.com/asaskevich/govalidator"
	"github.com/go-playground/validator/v10"
)

var (
	formatOnce      sync.Once
	formatValidator *validator.Validate
)

func validate() *validator.Validate {
	formatOnce.Do(func() {
		formatValidator = validator.New()
	})
	return formatValidator
}

// wellKnownTags maps a Shape datatype's local name (the fragment or last
// path segment of its datatype URI) to the go-playground/validator "Var"
// tag that checks its lexical form.
var wellKnownTags = map[string]string{
	"email":    "email",
	"url":      "url",
	"uri":      "uri",
	"uuid":     "uuid",
	"ipv4":     "ipv4",
	"ipv6":     "ipv6",
	"ip":       "ip",
	"mac":      "mac",
	"hostname": "hostname",
	"fqdn":     "fqdn",
	"cidr":     "cidr",
}

// CheckFormat runs the built-in well-known lexical check for the given
// datatype local name, reporting false if name has no known format or the
// lexical fails the check.
func CheckFormat(name, lexical string) (known bool, valid bool) {
	if name == "urn" {
		_, ok := ParseURN(lexical)
		return true, ok
	}
	tag, ok := wellKnownTags[name]
	if !ok {
		return false, false
	}
	err := validate().Var(lexical, tag)
	return true, err == nil
}

// LooksNumeric is a fast pre-check used before the slower exact-lexical
// numeric parsers run; it rejects obviously non-numeric input.
func LooksNumeric(s string) bool {
	return govalidator.IsFloat(s) || govalidator.IsInt(s)
}
