// Package query parses the URL-encoded and JSON forms of the embedded
// query DSL into value.Query/value.Specs trees, against a value.Shape.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/meshcore/ld/value"
)

// accumulator collects every facet seen for one Expression across the
// pairs of a single URL-encoded query string, so repeated "path=v1" /
// "path=v2" pairs union into one Any set rather than being merged via
// Criterion.Merge's intersection rule (which governs combining criteria
// from separate sources, not repeated pairs of the same source).
type accumulator struct {
	order *int
	focus []value.Value
	lt, lte, gt, gte value.Value
	like  *string
	any   []value.Value
	anySet bool
}

// ParseURL parses a "pair[&pair]*" query string into a Query wrapping an
// empty shaped Object model, per the sigil table in the embedded query
// language.
func ParseURL(shape *value.Shape, raw string) (value.Query, error) {
	q := value.NewQuery(value.NewObject().WithShape(shape))

	var exprOrder []string
	accs := map[string]*accumulator{}

	var offset, limit *int

	pairs := strings.Split(raw, "&")
	for _, pair := range pairs {
		if pair == "" {
			continue
		}
		key, val, hasVal := cutFirst(pair, "=")
		key, err := url.QueryUnescape(key)
		if err != nil {
			return value.Query{}, value.NewSyntaxError(0, 0, "malformed query key %q", key)
		}
		if hasVal {
			val, err = url.QueryUnescape(val)
			if err != nil {
				return value.Query{}, value.NewSyntaxError(0, 0, "malformed query value %q", val)
			}
		}

		switch {
		case key == "@":
			n, err := strconv.Atoi(val)
			if err != nil {
				return value.Query{}, value.NewQueryError("malformed offset %q", val)
			}
			offset = &n
		case key == "#":
			n, err := strconv.Atoi(val)
			if err != nil {
				return value.Query{}, value.NewQueryError("malformed limit %q", val)
			}
			limit = &n
		default:
			if err := accumulate(accs, &exprOrder, key, val, hasVal); err != nil {
				return value.Query{}, err
			}
		}
	}

	for _, exprKey := range exprOrder {
		acc := accs[exprKey]
		crit := value.Criterion{
			Order: acc.order,
			Focus: acc.focus,
			Lt:    acc.lt,
			Lte:   acc.lte,
			Gt:    acc.gt,
			Gte:   acc.gte,
			Like:  acc.like,
		}
		if acc.anySet {
			crit.Any = acc.any
		}
		var err error
		q, err = q.WithCriterion(value.ParseExpression(exprKey), crit)
		if err != nil {
			return value.Query{}, err
		}
	}

	if offset != nil {
		q = q.WithOffset(*offset)
	}
	if limit != nil {
		q = q.WithLimit(*limit)
	}
	return q, nil
}

func accumulate(accs map[string]*accumulator, order *[]string, key, val string, hasVal bool) error {
	sigil, rest := splitSigil(key)
	if sigil == "" && hasVal {
		// Infix bounds "path>=v" / "path<=v": cutting the pair at its first
		// '=' leaves the comparison character at the end of the key.
		switch {
		case strings.HasSuffix(key, ">"):
			sigil, rest = ">=", strings.TrimSuffix(key, ">")
		case strings.HasSuffix(key, "<"):
			sigil, rest = "<=", strings.TrimSuffix(key, "<")
		}
	}

	exprKey := rest
	acc, ok := accs[exprKey]
	if !ok {
		acc = &accumulator{}
		accs[exprKey] = acc
		*order = append(*order, exprKey)
	}

	switch sigil {
	case "<":
		v := decodeLexical(val)
		acc.lt = v
	case ">":
		acc.gt = decodeLexical(val)
	case "<=":
		acc.lte = decodeLexical(val)
	case ">=":
		acc.gte = decodeLexical(val)
	case "~":
		s := val
		acc.like = &s
	case "^":
		n, err := parseOrder(val)
		if err != nil {
			return err
		}
		acc.order = &n
	default:
		acc.anySet = true
		switch {
		case !hasVal:
			acc.any = append(acc.any, value.Nothing)
		case val == "*":
			// existential "path=*": Any must be non-nil-but-empty so it's
			// distinguishable from "no Any constraint at all".
			if acc.any == nil {
				acc.any = []value.Value{}
			}
		default:
			acc.any = append(acc.any, decodeLexical(val))
		}
	}
	return nil
}

func parseOrder(val string) (int, error) {
	switch val {
	case "increasing":
		return 1, nil
	case "decreasing":
		return -1, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, value.NewQueryError("malformed order priority %q", val)
	}
	return n, nil
}

// splitSigil splits a sigil-prefixed path into (sigil, pathWithTransforms).
// Longest sigils are checked first so "<=" isn't mistaken for "<".
func splitSigil(key string) (string, string) {
	for _, s := range []string{"<=", ">=", "<", ">", "~", "^"} {
		if strings.HasPrefix(key, s) {
			return s, key[len(s):]
		}
	}
	return "", key
}

// decodeLexical parses val against the generic numeric/string palette;
// callers with a concrete Shape datatype should re-decode more precisely
// downstream. Lacking shape context here, values are kept as String unless
// they parse as a number.
func decodeLexical(val string) value.Value {
	if v, ok := value.DecodeNumber("", val); ok {
		return v
	}
	return value.String(val)
}

func cutFirst(s, sep string) (before, after string, found bool) {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}
