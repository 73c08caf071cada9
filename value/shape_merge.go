package value

import om "github.com/wk8/go-ordered-map/v2"

// Merge folds two Shapes, taking the union of classes/properties/in/
// hasValue/languageIn/constraints and the more restrictive of any scalar
// constraint set on both sides. Incompatible explicit classes (different
// head Type) or incompatible datatypes fail the merge. Merge is
// associative and commutative over compatible inputs.
func (s *Shape) Merge(other *Shape) (*Shape, error) {
	return mergeShapes(s, other, false)
}

// Extend behaves like Merge except the result keeps the receiver's own
// explicit class (head of clazzes) rather than requiring agreement with
// other's — used to express sub-typing without adopting the parent's
// disambiguator. Extend is associative.
func (s *Shape) Extend(other *Shape) (*Shape, error) {
	return mergeShapes(s, other, true)
}

func mergeShapes(a, b *Shape, extend bool) (*Shape, error) {
	if a == nil {
		return b.clone(), nil
	}
	if b == nil {
		return a.clone(), nil
	}

	out := NewShape()
	out.virtual = a.virtual || b.virtual

	idField, err := mergeStringPtr(a.idField, b.idField, "id")
	if err != nil {
		return nil, err
	}
	out.idField = idField

	typField, err := mergeStringPtr(a.typField, b.typField, "type")
	if err != nil {
		return nil, err
	}
	out.typField = typField

	dt, err := mergeDatatype(a.datatype, b.datatype)
	if err != nil {
		return nil, err
	}
	out.datatype = dt

	mt, err := mergeStringPtr(a.mediaType, b.mediaType, "mediaType")
	if err != nil {
		return nil, err
	}
	out.mediaType = mt

	clazzes, err := mergeClasses(a.clazzes, b.clazzes, extend)
	if err != nil {
		return nil, err
	}
	out.clazzes = clazzes

	out.minExclusive = mergeBound(a.minExclusive, b.minExclusive, true)
	out.maxExclusive = mergeBound(a.maxExclusive, b.maxExclusive, false)
	out.minInclusive = mergeBound(a.minInclusive, b.minInclusive, true)
	out.maxInclusive = mergeBound(a.maxInclusive, b.maxInclusive, false)

	out.minLength = mergeIntPtr(a.minLength, b.minLength, true)
	out.maxLength = mergeIntPtr(a.maxLength, b.maxLength, false)
	out.minCount = mergeIntPtr(a.minCount, b.minCount, true)
	out.maxCount = mergeIntPtr(a.maxCount, b.maxCount, false)

	out.constraints = unionConstraints(a.constraints, b.constraints)
	if extraPattern := mergePattern(a, b); extraPattern != nil {
		out.constraints = append(out.constraints, *extraPattern)
	} else {
		if a.pattern != nil {
			out.pattern, out.patternSrc = a.pattern, a.patternSrc
		} else {
			out.pattern, out.patternSrc = b.pattern, b.patternSrc
		}
	}

	out.in = unionValues(a.in, b.in)
	out.hasValue = unionValues(a.hasValue, b.hasValue)
	out.languageIn = unionStrings(a.languageIn, b.languageIn)
	out.uniqueLang = a.uniqueLang || b.uniqueLang

	props, err := mergeProperties(a, b, extend)
	if err != nil {
		return nil, err
	}
	out.properties = props

	return out, nil
}

func mergeStringPtr(a, b *string, field string) (*string, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	case *a == *b:
		return a, nil
	default:
		return nil, newShapeError("conflicting %s field names: %q vs %q", field, *a, *b)
	}
}

func mergeDatatype(a, b Value) (Value, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	case a.Kind() == b.Kind():
		return a, nil
	default:
		return nil, newShapeError("incompatible datatypes: %v vs %v", a.Kind(), b.Kind())
	}
}

func mergeClasses(a, b []Type, extend bool) ([]Type, error) {
	var headA, headB *Type
	if len(a) > 0 {
		headA = &a[0]
	}
	if len(b) > 0 {
		headB = &b[0]
	}

	var head *Type
	switch {
	case extend:
		head = headA
	case headA == nil:
		head = headB
	case headB == nil:
		head = headA
	case headA.Equal(*headB):
		head = headA
	default:
		return nil, newShapeError("incompatible explicit classes: %q vs %q", headA.Name, headB.Name)
	}

	out := make([]Type, 0, len(a)+len(b))
	seen := map[string]bool{}
	add := func(t Type) {
		if !seen[t.Name] {
			seen[t.Name] = true
			out = append(out, t)
		}
	}
	if head != nil {
		add(*head)
	}
	for _, t := range a {
		add(t)
	}
	for _, t := range b {
		add(t)
	}
	return out, nil
}

// mergeBound returns the more restrictive of two optional range bounds:
// for lower bounds (tighter), the greater value wins; for upper bounds,
// the lesser value wins. Incomparable bounds keep the receiver's.
func mergeBound(a, b Value, lower bool) Value {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	cmp, ok := Compare(a, b)
	if !ok {
		return a
	}
	if lower {
		if cmp >= 0 {
			return a
		}
		return b
	}
	if cmp <= 0 {
		return a
	}
	return b
}

func mergeIntPtr(a, b *int, lower bool) *int {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	if (lower && *a >= *b) || (!lower && *a <= *b) {
		return a
	}
	return b
}

// mergePattern returns a combined NamedConstraint requiring both regexes to
// match when a and b each declare a different pattern; nil when at most one
// side declares a pattern (the scalar pattern field suffices) or both sides
// declare the same one.
func mergePattern(a, b *Shape) *NamedConstraint {
	if a.pattern == nil || b.pattern == nil || a.patternSrc == b.patternSrc {
		return nil
	}
	pa, pb := a.pattern, b.pattern
	return &NamedConstraint{
		Name: "pattern&pattern",
		Fn: func(focus Value) Value {
			lex, ok := lexicalOf(focus)
			if !ok {
				return Nothing
			}
			if pa.MatchString(lex) && pb.MatchString(lex) {
				return Nothing
			}
			return NewObject().Set("rule", String("pattern")).Set("message", String("value does not match both merged patterns"))
		},
	}
}

func unionValues(a, b []Value) []Value {
	out := append([]Value(nil), a...)
	for _, v := range b {
		dup := false
		for _, existing := range out {
			if existing.Equal(v) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

func unionStrings(a, b []string) []string {
	out := append([]string(nil), a...)
	for _, v := range b {
		dup := false
		for _, existing := range out {
			if existing == v {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

func unionConstraints(a, b []NamedConstraint) []NamedConstraint {
	out := append([]NamedConstraint(nil), a...)
	for _, c := range b {
		dup := false
		for _, existing := range out {
			if existing.Name == c.Name {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

func mergeProperties(a, b *Shape, extend bool) (*om.OrderedMap[string, Property], error) {
	out := om.New[string, Property]()
	if a.properties != nil {
		for pair := a.properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, pair.Value)
		}
	}
	if b.properties != nil {
		for pair := b.properties.Oldest(); pair != nil; pair = pair.Next() {
			if existing, ok := out.Get(pair.Key); ok {
				merged, err := mergeProperty(existing, pair.Value, extend)
				if err != nil {
					return nil, err
				}
				out.Set(pair.Key, merged)
			} else {
				out.Set(pair.Key, pair.Value)
			}
		}
	}
	return out, nil
}
