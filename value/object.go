package value

import (
	om "github.com/wk8/go-ordered-map/v2"
)

// Object is an ordered map of field name to Value, with an optional id
// (carried as a URI), an optional type string, and an optional Shape
// annotation. Field insertion order is observable and preserved through
// every transformation (encode/decode/merge/expand/populate).
type Object struct {
	fields *om.OrderedMap[string, Value]
	id     *URI
	typ    *string
	shape  *Shape
}

// NewObject builds an empty Object.
func NewObject() Object {
	return Object{fields: om.New[string, Value]()}
}

func (o Object) Kind() Kind { return KindObject }

// Encode renders the Object's id relativized against base, or "" when the
// id is absent. This is the scalar lexical form; the primary surface for
// Object is the JSON codec, not this encoding.
func (o Object) Encode(base string) string {
	if o.id == nil {
		return ""
	}
	return o.id.Encode(base)
}

// Equal compares fields elementwise in insertion order, plus id/type/shape
// identity. Two Objects with the same fields in different orders are not
// Equal, matching the order-preservation invariant.
func (o Object) Equal(other Value) bool {
	p, ok := other.(Object)
	if !ok {
		return false
	}
	if !uriPtrEqual(o.id, p.id) || !strPtrEqual(o.typ, p.typ) {
		return false
	}
	if o.fields.Len() != p.fields.Len() {
		return false
	}
	oPair := o.fields.Oldest()
	pPair := p.fields.Oldest()
	for oPair != nil {
		if pPair == nil || oPair.Key != pPair.Key || !valueEqual(oPair.Value, pPair.Value) {
			return false
		}
		oPair = oPair.Next()
		pPair = pPair.Next()
	}
	return true
}

func valueEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func uriPtrEqual(a, b *URI) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.s == b.s
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ID returns the object's identity URI and whether one is set.
func (o Object) ID() (URI, bool) {
	if o.id == nil {
		return URI{}, false
	}
	return *o.id, true
}

// Type returns the object's type string and whether one is set.
func (o Object) Type() (string, bool) {
	if o.typ == nil {
		return "", false
	}
	return *o.typ, true
}

// WithID returns a copy of o with the given identity URI set.
func (o Object) WithID(id URI) Object {
	o.id = &id
	return o
}

// WithType returns a copy of o with the given type string set.
func (o Object) WithType(t string) Object {
	o.typ = &t
	return o
}

// Shape returns the Object's carried Shape annotation, or nil.
func (o Object) Shape() *Shape { return o.shape }

// WithShape returns a copy of o carrying the given Shape annotation.
// Implements the Shaped interface.
func (o Object) WithShape(s *Shape) Value {
	o.shape = s
	return o
}

// Set returns a copy of o with field name bound to v, preserving the
// existing position of name if already present, else appending.
func (o Object) Set(name string, v Value) Object {
	cloned := o.clone()
	cloned.fields.Set(name, v)
	return cloned
}

// Get returns the Value bound to name and whether it was present.
func (o Object) Get(name string) (Value, bool) {
	return o.fields.Get(name)
}

// Delete returns a copy of o with name removed.
func (o Object) Delete(name string) Object {
	cloned := o.clone()
	cloned.fields.Delete(name)
	return cloned
}

// Len reports the number of fields.
func (o Object) Len() int {
	if o.fields == nil {
		return 0
	}
	return o.fields.Len()
}

// Range calls fn for each field in insertion order, stopping early if fn
// returns false.
func (o Object) Range(fn func(name string, v Value) bool) {
	if o.fields == nil {
		return
	}
	for pair := o.fields.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Names returns field names in insertion order.
func (o Object) Names() []string {
	names := make([]string, 0, o.Len())
	o.Range(func(name string, _ Value) bool {
		names = append(names, name)
		return true
	})
	return names
}

func (o Object) clone() Object {
	cloned := NewObject()
	cloned.id, cloned.typ, cloned.shape = o.id, o.typ, o.shape
	if o.fields != nil {
		for pair := o.fields.Oldest(); pair != nil; pair = pair.Next() {
			cloned.fields.Set(pair.Key, pair.Value)
		}
	}
	return cloned
}

// IsEmpty reports whether the Object has no fields, no id, and no type —
// the condition pruning removes an Object field under.
func (o Object) IsEmpty() bool {
	return o.Len() == 0 && o.id == nil && o.typ == nil
}
