package value

import "strings"

// Compare reports the natural order of a and b when they are of
// comparable kinds, and false when they are not (a validation error, per
// the spec, not a panic). Numerics compare across variants (Integral vs
// Integer vs Decimal vs Floating); Temporal values compare chronologically;
// String and Text compare lexically on their lexical form.
func Compare(a, b Value) (int, bool) {
	if an, aok := asNumber(a); aok {
		if bn, bok := asNumber(b); bok {
			return an.Cmp(bn), true
		}
		return 0, false
	}
	if at, aok := a.(Temporal); aok {
		if bt, bok := b.(Temporal); bok {
			ta, err1 := asTime(at)
			tb, err2 := asTime(bt)
			if err1 != nil || err2 != nil {
				return 0, false
			}
			switch {
			case ta.Before(tb):
				return -1, true
			case ta.After(tb):
				return 1, true
			default:
				return 0, true
			}
		}
		return 0, false
	}
	as, aok := lexicalOf(a)
	bs, bok := lexicalOf(b)
	if aok && bok {
		return strings.Compare(as, bs), true
	}
	return 0, false
}

func lexicalOf(v Value) (string, bool) {
	switch t := v.(type) {
	case String:
		return string(t), true
	case Text:
		return t.S, true
	case URI:
		return t.s, true
	}
	return "", false
}
