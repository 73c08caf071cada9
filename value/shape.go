package value

import (
	"regexp"

	om "github.com/wk8/go-ordered-map/v2"
)

// Shape is an immutable record of constraints and structure bound to a
// Value. Every With* builder method returns a new Shape rather than
// mutating the receiver, preserving a fluent surface without mutable
// shared state.
type Shape struct {
	virtual   bool
	idField   *string
	typField  *string
	datatype  Value   // zero-value tag of the required Kind, nil = unconstrained
	mediaType *string // expected sniffed MIME type for a base64-carried Data literal

	clazzes []Type // first is the explicit class

	minExclusive, maxExclusive Value
	minInclusive, maxInclusive Value

	minLength, maxLength *int
	pattern              *regexp.Regexp
	patternSrc           string

	in         []Value
	hasValue   []Value
	languageIn []string
	uniqueLang bool

	minCount, maxCount *int

	constraints []NamedConstraint

	properties *om.OrderedMap[string, Property]
}

// NewShape builds an empty, unconstrained Shape.
func NewShape() *Shape {
	return &Shape{properties: om.New[string, Property]()}
}

func (s *Shape) clone() *Shape {
	if s == nil {
		return NewShape()
	}
	out := *s
	out.clazzes = append([]Type(nil), s.clazzes...)
	out.in = append([]Value(nil), s.in...)
	out.hasValue = append([]Value(nil), s.hasValue...)
	out.languageIn = append([]string(nil), s.languageIn...)
	out.constraints = append([]NamedConstraint(nil), s.constraints...)
	out.properties = om.New[string, Property]()
	if s.properties != nil {
		for pair := s.properties.Oldest(); pair != nil; pair = pair.Next() {
			out.properties.Set(pair.Key, pair.Value)
		}
	}
	return &out
}

// --- fluent builder ---

// WithVirtual marks the Shape virtual: its focus isn't itself persisted,
// only computed from other data.
func (s *Shape) WithVirtual(v bool) *Shape {
	out := s.clone()
	out.virtual = v
	return out
}

// WithID sets the field name aliased to @id on the wire.
func (s *Shape) WithID(field string) *Shape {
	out := s.clone()
	out.idField = &field
	return out
}

// WithTypeField sets the field name aliased to @type on the wire.
func (s *Shape) WithTypeField(field string) *Shape {
	out := s.clone()
	out.typField = &field
	return out
}

// WithDatatype constrains the focus to the Kind of tag.
func (s *Shape) WithDatatype(tag Value) *Shape {
	out := s.clone()
	out.datatype = tag
	return out
}

// WithMediaType constrains a base64-carried Data literal's sniffed MIME
// type (via SniffMediaType) to mt, e.g. "image/png".
func (s *Shape) WithMediaType(mt string) *Shape {
	out := s.clone()
	out.mediaType = &mt
	return out
}

// WithClass appends t to the ordered list of classes; the first class
// added is the Shape's explicit class.
func (s *Shape) WithClass(t Type) *Shape {
	out := s.clone()
	out.clazzes = append(out.clazzes, t)
	return out
}

// WithMinExclusive sets an exclusive lower range bound.
func (s *Shape) WithMinExclusive(v Value) *Shape { out := s.clone(); out.minExclusive = v; return out }

// WithMaxExclusive sets an exclusive upper range bound.
func (s *Shape) WithMaxExclusive(v Value) *Shape { out := s.clone(); out.maxExclusive = v; return out }

// WithMinInclusive sets an inclusive lower range bound.
func (s *Shape) WithMinInclusive(v Value) *Shape { out := s.clone(); out.minInclusive = v; return out }

// WithMaxInclusive sets an inclusive upper range bound.
func (s *Shape) WithMaxInclusive(v Value) *Shape { out := s.clone(); out.maxInclusive = v; return out }

// WithMinLength sets a minimum lexical length.
func (s *Shape) WithMinLength(n int) *Shape { out := s.clone(); out.minLength = &n; return out }

// WithMaxLength sets a maximum lexical length.
func (s *Shape) WithMaxLength(n int) *Shape { out := s.clone(); out.maxLength = &n; return out }

// WithPattern sets a regular expression the lexical form must match.
func (s *Shape) WithPattern(re string) (*Shape, error) {
	compiled, err := regexp.Compile(re)
	if err != nil {
		return nil, newShapeError("invalid pattern %q: %v", re, err)
	}
	out := s.clone()
	out.pattern = compiled
	out.patternSrc = re
	return out, nil
}

// WithIn sets the closed enumeration of acceptable values.
func (s *Shape) WithIn(values ...Value) *Shape {
	out := s.clone()
	out.in = append([]Value(nil), values...)
	return out
}

// WithHasValue requires every listed value to appear in the focus set.
func (s *Shape) WithHasValue(values ...Value) *Shape {
	out := s.clone()
	out.hasValue = append([]Value(nil), values...)
	return out
}

// WithLanguageIn restricts Text values to the given locale tags.
func (s *Shape) WithLanguageIn(tags ...string) *Shape {
	out := s.clone()
	out.languageIn = append([]string(nil), tags...)
	return out
}

// WithUniqueLang requires distinct locales across the Text focus set.
func (s *Shape) WithUniqueLang(v bool) *Shape { out := s.clone(); out.uniqueLang = v; return out }

// WithMinCount sets the minimum cardinality of the focus set.
func (s *Shape) WithMinCount(n int) *Shape { out := s.clone(); out.minCount = &n; return out }

// WithMaxCount sets the maximum cardinality of the focus set.
func (s *Shape) WithMaxCount(n int) *Shape { out := s.clone(); out.maxCount = &n; return out }

// WithConstraint appends a named custom constraint function.
func (s *Shape) WithConstraint(name string, fn ConstraintFunc) *Shape {
	out := s.clone()
	out.constraints = append(out.constraints, NamedConstraint{Name: name, Fn: fn})
	return out
}

// WithProperty adds or replaces the named Property. Panics if p is
// structurally invalid (Embedded and Foreign both set) — this is the
// construction-time enforcement of the invariant that mergeProperty
// otherwise only catches when two Shapes carrying the property collide,
// catching a malformed Property the moment it's attached rather than
// letting it surface later as a confusing merge failure.
func (s *Shape) WithProperty(p Property) *Shape {
	if p.conflictsStructurally() {
		panic(newShapeError("property %q: embedded and foreign conflict", p.Name))
	}
	out := s.clone()
	out.properties.Set(p.Name, p)
	return out
}

// --- accessors ---

func (s *Shape) Virtual() bool       { return s != nil && s.virtual }
func (s *Shape) IDField() (string, bool) {
	if s == nil || s.idField == nil {
		return "", false
	}
	return *s.idField, true
}
func (s *Shape) TypeField() (string, bool) {
	if s == nil || s.typField == nil {
		return "", false
	}
	return *s.typField, true
}
func (s *Shape) Datatype() Value { if s == nil { return nil }; return s.datatype }

// MediaType returns the expected sniffed MIME type set by WithMediaType.
func (s *Shape) MediaType() (string, bool) {
	if s == nil || s.mediaType == nil {
		return "", false
	}
	return *s.mediaType, true
}
func (s *Shape) Classes() []Type { if s == nil { return nil }; return s.clazzes }
func (s *Shape) ExplicitClass() (Type, bool) {
	if s == nil || len(s.clazzes) == 0 {
		return Type{}, false
	}
	return s.clazzes[0], true
}
func (s *Shape) UniqueLang() bool { return s != nil && s.uniqueLang }
func (s *Shape) LanguageIn() []string { if s == nil { return nil }; return s.languageIn }

// Property looks up a declared property by name.
func (s *Shape) Property(name string) (Property, bool) {
	if s == nil || s.properties == nil {
		return Property{}, false
	}
	return s.properties.Get(name)
}

// Properties calls fn for each declared property in declaration order.
func (s *Shape) Properties(fn func(Property) bool) {
	if s == nil || s.properties == nil {
		return
	}
	for pair := s.properties.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Value) {
			return
		}
	}
}

// PropertyNames returns declared property names in declaration order.
func (s *Shape) PropertyNames() []string {
	var names []string
	s.Properties(func(p Property) bool {
		names = append(names, p.Name)
		return true
	})
	return names
}
