package value

// Expand materializes a canonical "request model" from v: it adds an
// empty slot for every property declared by v's carried Shape (so the
// shape becomes observable on the wire), drops fields not declared by the
// shape, omits hidden properties, and recurses into nested Objects and
// into Query models. A Text-typed property with no values expands to a
// single wildcard-locale Text("*", "") to signal "any language accepted".
// Expand is idempotent: Expand(Expand(v)) equals Expand(v).
func Expand(v Value) Value {
	switch t := v.(type) {
	case Object:
		return expandObject(t)
	case Array:
		return t.Map(Expand)
	case Query:
		return t.WithModel(Expand(t.Model))
	default:
		return v
	}
}

func expandObject(o Object) Object {
	shape := o.Shape()
	if shape == nil {
		return o
	}

	out := NewObject()
	if idField, ok := shape.IDField(); ok {
		if id, has := o.ID(); has {
			out = out.WithID(id)
			_ = idField
		} else {
			out = out.WithID(NewURI(""))
		}
	}
	if typField, ok := shape.TypeField(); ok {
		if t, has := o.Type(); has {
			out = out.WithType(t)
		}
		_ = typField
	}
	out = out.WithShape(shape).(Object)

	shape.Properties(func(p Property) bool {
		if p.Hidden {
			return true
		}
		existing, present := o.Get(p.Name)
		arr, isArr := existing.(Array)
		emptyText := isArr && arr.IsEmpty() && p.Nested != nil && p.Nested.Datatype() != nil && p.Nested.Datatype().Kind() == KindText
		switch {
		case !present, emptyText:
			out = out.Set(p.Name, defaultSlot(p))
		case p.Nested != nil:
			out = out.Set(p.Name, Expand(existing))
		default:
			out = out.Set(p.Name, existing)
		}
		return true
	})
	return out
}

// defaultSlot produces the empty placeholder for a declared property that
// is absent (or, when Text-typed, holds an empty array), so the property's presence (and, for Text, its language
// openness) is still observable on the wire.
func defaultSlot(p Property) Value {
	if p.Nested != nil && p.Nested.Datatype() != nil && p.Nested.Datatype().Kind() == KindText {
		return NewArray(NewText(AnyLocale, ""))
	}
	return Nothing
}
