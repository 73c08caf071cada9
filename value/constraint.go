package value

// ConstraintFunc is an opaque custom validation rule: given the focus
// value it returns a trace fragment (Nil or an empty Object for success,
// a non-empty trace Object otherwise). Constraints run in declaration
// order; their trace fragments are concatenated into the enclosing
// Shape's validation trace.
type ConstraintFunc func(focus Value) Value

// NamedConstraint pairs a ConstraintFunc with the name it was registered
// or declared under; Shape merges treat constraints sharing a name as one.
type NamedConstraint struct {
	Name string
	Fn   ConstraintFunc
}
