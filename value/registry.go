package value

import "sync"

// builtInConstraintNames guards RegisterConstraint against shadowing one of
// the Shape constraint facets that already has a dedicated field (datatype,
// range bounds, text length, pattern, in, hasValue, languageIn, uniqueLang,
// minCount, maxCount): those are parsed and applied by the validator
// directly and must not be redefined as named custom constraints.
var builtInConstraintNames = map[string]bool{
	"datatype":      true,
	"minExclusive":  true,
	"maxExclusive":  true,
	"minInclusive":  true,
	"maxInclusive":  true,
	"minLength":     true,
	"maxLength":     true,
	"pattern":       true,
	"in":            true,
	"hasValue":      true,
	"languageIn":    true,
	"uniqueLang":    true,
	"minCount":      true,
	"maxCount":      true,
}

var customConstraints sync.Map // name string -> ConstraintFunc

// RegisterConstraint adds name to the process-wide registry of custom
// constraint functions available to Shape.ByName. Registering over a
// built-in facet name panics; registering twice under the same name
// replaces the previous function.
func RegisterConstraint(name string, fn ConstraintFunc) {
	if builtInConstraintNames[name] {
		panic("value: " + name + " is a built-in constraint facet, not a custom constraint name")
	}
	customConstraints.Store(name, fn)
}

// LookupConstraint resolves a previously registered custom constraint by
// name.
func LookupConstraint(name string) (ConstraintFunc, bool) {
	v, ok := customConstraints.Load(name)
	if !ok {
		return nil, false
	}
	return v.(ConstraintFunc), true
}

// ByName appends the named custom constraint to the Shape's constraint
// list, failing if name isn't registered.
func (s *Shape) ByName(name string) (*Shape, error) {
	fn, ok := LookupConstraint(name)
	if !ok {
		return nil, newShapeError("no custom constraint registered under %q", name)
	}
	return s.WithConstraint(name, fn), nil
}
