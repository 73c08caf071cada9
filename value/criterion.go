package value

// Criterion is the optional conjunction of bounds, likeness, any-of-set,
// focus-set, and order that can be attached to one Expression inside a
// Query.
type Criterion struct {
	Order *int // signed priority; nil = unordered by this expression

	// Focus restricts the set of values an Expression must resolve to
	// before bounds/like are applied; nil = the whole focus set.
	Focus []Value

	Lt, Lte Value // exclusive/inclusive upper bound
	Gt, Gte Value // exclusive/inclusive lower bound

	Like *string // stemmed word search

	// Any is nil when unspecified, an empty-but-non-nil slice for the
	// existential "path=*" form (any value, just must exist), and a
	// populated slice for "any(path) ⊇ {v1,v2,...}".
	Any []Value
}

// Equal compares two Criteria field-by-field: bounds and Any/Focus by
// Value.Equal (order-sensitive for Any/Focus, matching Merge's own
// treatment of them as ordered slices), Order and Like by pointee.
func (c Criterion) Equal(other Criterion) bool {
	if !intPtrEqual(c.Order, other.Order) {
		return false
	}
	if !stringPtrEqual(c.Like, other.Like) {
		return false
	}
	if !valueEqual(c.Lt, other.Lt) || !valueEqual(c.Lte, other.Lte) {
		return false
	}
	if !valueEqual(c.Gt, other.Gt) || !valueEqual(c.Gte, other.Gte) {
		return false
	}
	return valueSliceEqual(c.Any, other.Any) && valueSliceEqual(c.Focus, other.Focus)
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func valueSliceEqual(a, b []Value) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !valueEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Merge conjoins two Criteria over the same Expression: bounds take the
// narrower of the two, Any sets intersect, Order must agree, and Like must
// be identical on both sides (a differing Like on the same expression is a
// conflict, since there's no well-defined combination of two distinct
// stemmed searches).
func (c Criterion) Merge(other Criterion) (Criterion, error) {
	out := Criterion{}

	lt, lte, err := mergeUpper(c.Lt, c.Lte, other.Lt, other.Lte)
	if err != nil {
		return Criterion{}, err
	}
	out.Lt, out.Lte = lt, lte

	gt, gte, err := mergeLower(c.Gt, c.Gte, other.Gt, other.Gte)
	if err != nil {
		return Criterion{}, err
	}
	out.Gt, out.Gte = gt, gte

	order, err := mergeOrder(c.Order, other.Order)
	if err != nil {
		return Criterion{}, err
	}
	out.Order = order

	like, err := mergeLike(c.Like, other.Like)
	if err != nil {
		return Criterion{}, err
	}
	out.Like = like

	any, err := mergeAny(c.Any, other.Any)
	if err != nil {
		return Criterion{}, err
	}
	out.Any = any

	out.Focus = mergeFocus(c.Focus, other.Focus)

	return out, nil
}

type boundCandidate struct {
	val  Value
	excl bool
}

func mergeUpper(aLt, aLte, bLt, bLte Value) (lt, lte Value, err error) {
	var cands []boundCandidate
	if aLt != nil {
		cands = append(cands, boundCandidate{aLt, true})
	}
	if aLte != nil {
		cands = append(cands, boundCandidate{aLte, false})
	}
	if bLt != nil {
		cands = append(cands, boundCandidate{bLt, true})
	}
	if bLte != nil {
		cands = append(cands, boundCandidate{bLte, false})
	}
	winner, err := narrowest(cands, false)
	if err != nil {
		return nil, nil, err
	}
	if winner == nil {
		return nil, nil, nil
	}
	if winner.excl {
		return winner.val, nil, nil
	}
	return nil, winner.val, nil
}

func mergeLower(aGt, aGte, bGt, bGte Value) (gt, gte Value, err error) {
	var cands []boundCandidate
	if aGt != nil {
		cands = append(cands, boundCandidate{aGt, true})
	}
	if aGte != nil {
		cands = append(cands, boundCandidate{aGte, false})
	}
	if bGt != nil {
		cands = append(cands, boundCandidate{bGt, true})
	}
	if bGte != nil {
		cands = append(cands, boundCandidate{bGte, false})
	}
	winner, err := narrowest(cands, true)
	if err != nil {
		return nil, nil, err
	}
	if winner == nil {
		return nil, nil, nil
	}
	if winner.excl {
		return winner.val, nil, nil
	}
	return nil, winner.val, nil
}

// narrowest picks the tightest bound among candidates: for a lower bound
// (greater) the largest value wins, for an upper bound the smallest.
// Equal values with differing exclusivity are a conflict: it's ambiguous
// whether the boundary value itself is admitted.
func narrowest(cands []boundCandidate, lower bool) (*boundCandidate, error) {
	if len(cands) == 0 {
		return nil, nil
	}
	best := cands[0]
	for _, c := range cands[1:] {
		cmp, ok := Compare(c.val, best.val)
		if !ok {
			return nil, NewQueryError("incomparable bound kinds %v and %v", c.val.Kind(), best.val.Kind())
		}
		if cmp == 0 {
			if c.excl != best.excl {
				return nil, NewQueryError("equal but differently-exclusive bounds at %s", c.val.Encode(DefaultBase))
			}
			continue
		}
		if (lower && cmp > 0) || (!lower && cmp < 0) {
			best = c
		}
	}
	return &best, nil
}

func mergeOrder(a, b *int) (*int, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	case *a == *b:
		return a, nil
	default:
		return nil, NewQueryError("conflicting order priorities %d vs %d", *a, *b)
	}
}

func mergeLike(a, b *string) (*string, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	case *a == *b:
		return a, nil
	default:
		return nil, NewQueryError("conflicting like patterns %q vs %q", *a, *b)
	}
}

func mergeAny(a, b []Value) ([]Value, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	}
	var out []Value
	for _, v := range a {
		for _, w := range b {
			if v.Equal(w) {
				out = append(out, v)
				break
			}
		}
	}
	if len(out) == 0 && len(a) > 0 && len(b) > 0 {
		return nil, NewQueryError("disjoint any-of sets cannot be merged")
	}
	return out, nil
}

func mergeFocus(a, b []Value) []Value {
	if a == nil {
		return b
	}
	return a
}
