package value

// Populate performs a shape-aware merge of source onto target, used to
// overlay stored data onto a request template. Populate(t, t) is the
// identity for any shape-conformant t.
//
// Rules: scalar variants pass straight through from source. Object-into-
// Object merges pairwise by field name; when target carries a Shape, only
// keys already present in target are retained (source can't introduce new
// fields). Query targets populate their Model from source but keep their
// own criteria untouched. Specs targets never absorb external fields —
// their projection is fixed. Text/Data fields populate only when their
// locale/datatype matches target's, or when target declares the
// wildcard locale/datatype.
func Populate(target, source Value) Value {
	switch t := target.(type) {
	case Object:
		if so, ok := source.(Object); ok {
			return populateObject(t, so)
		}
		return target
	case Query:
		if so, ok := source.(Query); ok {
			source = so.Model
		}
		return t.WithModel(Populate(t.Model, source))
	case Specs:
		return target
	case Text:
		if st, ok := source.(Text); ok && (t.Locale == AnyLocale || t.Locale == st.Locale) {
			return st
		}
		return target
	case Data:
		if sd, ok := source.(Data); ok && (t.Datatype == "" || t.Datatype == sd.Datatype) {
			return sd
		}
		return target
	case Array:
		if sa, ok := source.(Array); ok {
			return populateArray(t, sa)
		}
		return target
	case Nil:
		return source
	default:
		return source
	}
}

func populateObject(target, source Object) Object {
	out := target
	hasShape := target.Shape() != nil

	source.Range(func(name string, sv Value) bool {
		if hasShape {
			if _, declared := target.Get(name); !declared {
				return true
			}
		}
		if tv, present := target.Get(name); present {
			out = out.Set(name, Populate(tv, sv))
		} else {
			out = out.Set(name, sv)
		}
		return true
	})

	if id, ok := source.ID(); ok {
		if _, already := target.ID(); !already {
			out = out.WithID(id)
		}
	}
	if typ, ok := source.Type(); ok {
		if _, already := target.Type(); !already {
			out = out.WithType(typ)
		}
	}
	return out
}

func populateArray(target, source Array) Array {
	// A single template item describes the shape of every populated item;
	// with no template item, the source passes through unchanged.
	if target.Len() == 0 {
		return source
	}
	template := target.At(0)
	items := make([]Value, source.Len())
	for i, sv := range source.Items() {
		items[i] = Populate(template, sv)
	}
	return NewArray(items...)
}
