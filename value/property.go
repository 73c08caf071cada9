package value

// PropertyRef names the forward or reverse predicate URI of a Property.
// Auto means the predicate is derived from the property name against the
// enclosing base at wire time rather than fixed to an explicit URI.
type PropertyRef struct {
	Auto bool
	URI  URI
}

// AutoRef is the auto-derived predicate reference.
func AutoRef() PropertyRef { return PropertyRef{Auto: true} }

// ExplicitRef is a fixed predicate URI reference.
func ExplicitRef(u URI) PropertyRef { return PropertyRef{URI: u} }

func (r PropertyRef) equal(other PropertyRef) bool {
	if r.Auto != other.Auto {
		return false
	}
	return r.Auto || r.URI.s == other.URI.s
}

// Property describes one named slot of a Shape: its forward and/or reverse
// predicate, its nested Shape, and structural flags. A Property may be
// forward-only, reverse-only, or bidirectional; Embedded and Foreign are
// mutually exclusive.
type Property struct {
	Name     string
	Forward  *PropertyRef
	Reverse  *PropertyRef
	Nested   *Shape
	Embedded bool
	Foreign  bool
	Hidden   bool
}

// NewProperty builds a forward Property named name with an auto-derived
// predicate and no nested shape.
func NewProperty(name string) Property {
	fwd := AutoRef()
	return Property{Name: name, Forward: &fwd}
}

// WithForward returns a copy of p with an explicit forward predicate.
func (p Property) WithForward(u URI) Property {
	ref := ExplicitRef(u)
	p.Forward = &ref
	return p
}

// WithReverse returns a copy of p with an explicit reverse predicate.
func (p Property) WithReverse(u URI) Property {
	ref := ExplicitRef(u)
	p.Reverse = &ref
	return p
}

// WithNested returns a copy of p carrying the given nested Shape.
func (p Property) WithNested(s *Shape) Property {
	p.Nested = s
	return p
}

// WithEmbedded marks p as embedded. Embedded and Foreign are mutually
// exclusive; the conflict is caught as soon as a so-marked Property is
// attached to a Shape via Shape.WithProperty, not here, so this setter
// (like every other Property/Shape setter) stays total.
func (p Property) WithEmbedded(v bool) Property {
	p.Embedded = v
	return p
}

// WithForeign marks p as foreign; see WithEmbedded on the exclusion with
// Embedded.
func (p Property) WithForeign(v bool) Property {
	p.Foreign = v
	return p
}

// WithHidden marks p as hidden from default codec output.
func (p Property) WithHidden(v bool) Property {
	p.Hidden = v
	return p
}

// conflictsStructurally reports the embedded/foreign mutual exclusion.
func (p Property) conflictsStructurally() bool {
	return p.Embedded && p.Foreign
}

// mergeProperty combines two Properties of the same name under merge/extend
// semantics: forward/reverse combine if non-conflicting, embedded/foreign
// conflict is fatal, nested shapes merge recursively.
func mergeProperty(a, b Property, extend bool) (Property, error) {
	if a.Name != b.Name {
		return Property{}, newShapeError("property name mismatch in merge: %q vs %q", a.Name, b.Name)
	}
	out := Property{Name: a.Name, Hidden: a.Hidden || b.Hidden}

	fwd, err := mergeRef(a.Forward, b.Forward, "forward")
	if err != nil {
		return Property{}, err
	}
	out.Forward = fwd

	rev, err := mergeRef(a.Reverse, b.Reverse, "reverse")
	if err != nil {
		return Property{}, err
	}
	out.Reverse = rev

	out.Embedded = a.Embedded || b.Embedded
	out.Foreign = a.Foreign || b.Foreign
	if out.conflictsStructurally() {
		return Property{}, newShapeError("property %q: embedded and foreign conflict", a.Name)
	}

	switch {
	case a.Nested == nil:
		out.Nested = b.Nested
	case b.Nested == nil:
		out.Nested = a.Nested
	default:
		var merged *Shape
		var err error
		if extend {
			merged, err = a.Nested.Extend(b.Nested)
		} else {
			merged, err = a.Nested.Merge(b.Nested)
		}
		if err != nil {
			return Property{}, err
		}
		out.Nested = merged
	}
	return out, nil
}

func mergeRef(a, b *PropertyRef, side string) (*PropertyRef, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	case a.equal(*b):
		return a, nil
	case a.Auto:
		return b, nil
	case b.Auto:
		return a, nil
	default:
		return nil, newShapeError("conflicting explicit %s predicates", side)
	}
}
