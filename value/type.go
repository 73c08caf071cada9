package value

// Type names an explicit class a Shape may declare, with an optional URI
// identity and description. The first Type in a Shape's clazzes list is
// its "explicit" class, used by merge/extend to decide compatibility.
type Type struct {
	Name        string
	URI         *URI
	Description string
}

// NewType builds a Type with no URI or description.
func NewType(name string) Type { return Type{Name: name} }

// WithURI returns a copy of t carrying the given identity URI.
func (t Type) WithURI(u URI) Type {
	t.URI = &u
	return t
}

// WithDescription returns a copy of t carrying the given description.
func (t Type) WithDescription(d string) Type {
	t.Description = d
	return t
}

// Equal compares Types by name and URI identity; description is
// documentation only and doesn't affect equality.
func (t Type) Equal(other Type) bool {
	return t.Name == other.Name && uriPtrEqual(t.URI, other.URI)
}
