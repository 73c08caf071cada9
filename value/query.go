package value

// criterionEntry pairs an Expression with its Criterion, preserving the
// order criteria were added (mirroring Object's field-order invariant).
type criterionEntry struct {
	Expr Expression
	Crit Criterion
}

// Query is a (model, criteria, offset, limit) filter tree: model is
// typically an Object or Array wrapping one, criteria are keyed by
// Expression, and offset/limit page the result.
type Query struct {
	Model    Value
	entries  []criterionEntry
	Offset   *int
	Limit    *int
}

// NewQuery builds an empty Query over model.
func NewQuery(model Value) Query {
	return Query{Model: model}
}

func (q Query) Kind() Kind { return KindQuery }

// Encode has no single scalar lexical; Query's primary surface is the URL
// and JSON query forms (see the query-parsing helpers), not this encoding.
func (q Query) Encode(base string) string { return "" }

func (q Query) Equal(other Value) bool {
	o, ok := other.(Query)
	if !ok || len(o.entries) != len(q.entries) {
		return false
	}
	if !valueEqual(q.Model, o.Model) {
		return false
	}
	if !intPtrEqual(q.Offset, o.Offset) || !intPtrEqual(q.Limit, o.Limit) {
		return false
	}
	for i := range q.entries {
		if !q.entries[i].Expr.Equal(o.entries[i].Expr) {
			return false
		}
		if !q.entries[i].Crit.Equal(o.entries[i].Crit) {
			return false
		}
	}
	return true
}

// WithModel returns a copy of q with a different model, keeping criteria.
func (q Query) WithModel(model Value) Query {
	q.Model = model
	return q
}

// WithOffset returns a copy of q with the given offset.
func (q Query) WithOffset(n int) Query {
	q.Offset = &n
	return q
}

// WithLimit returns a copy of q with the given limit.
func (q Query) WithLimit(n int) Query {
	q.Limit = &n
	return q
}

// Criterion looks up the Criterion bound to expr.
func (q Query) Criterion(expr Expression) (Criterion, bool) {
	for _, e := range q.entries {
		if e.Expr.Equal(expr) {
			return e.Crit, true
		}
	}
	return Criterion{}, false
}

// Criteria calls fn for each (Expression, Criterion) pair in insertion
// order.
func (q Query) Criteria(fn func(Expression, Criterion) bool) {
	for _, e := range q.entries {
		if !fn(e.Expr, e.Crit) {
			return
		}
	}
}

// WithCriterion returns a copy of q with expr's Criterion merged against
// crit (or set outright if expr wasn't already present).
func (q Query) WithCriterion(expr Expression, crit Criterion) (Query, error) {
	out := q
	out.entries = append([]criterionEntry(nil), q.entries...)
	for i, e := range out.entries {
		if e.Expr.Equal(expr) {
			merged, err := e.Crit.Merge(crit)
			if err != nil {
				return Query{}, err
			}
			out.entries[i].Crit = merged
			return out, nil
		}
	}
	out.entries = append(out.entries, criterionEntry{Expr: expr, Crit: crit})
	return out, nil
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Probe is a single projected, aliased column of a Specs: alias names the
// output column, expr addresses the source value, and model carries the
// Value shape (often Nothing) the column is projected through.
type Probe struct {
	Alias string
	Expr  Expression
	Model Value
}

// Specs is an ordered set of Probes forming a tabular projection over
// shape.
type Specs struct {
	Shape  *Shape
	Probes []Probe
}

// NewSpecs builds a Specs over shape with the given probes, in order.
func NewSpecs(shape *Shape, probes ...Probe) Specs {
	return Specs{Shape: shape, Probes: append([]Probe(nil), probes...)}
}

func (s Specs) Kind() Kind                { return KindSpecs }
func (s Specs) Encode(base string) string { return "" }
func (s Specs) Equal(other Value) bool {
	o, ok := other.(Specs)
	if !ok || len(o.Probes) != len(s.Probes) {
		return false
	}
	for i := range s.Probes {
		if s.Probes[i].Alias != o.Probes[i].Alias || !s.Probes[i].Expr.Equal(o.Probes[i].Expr) {
			return false
		}
	}
	return true
}
