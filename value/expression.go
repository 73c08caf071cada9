package value

import "strings"

// Expression addresses a value reachable from a focus: path is a sequence
// of property-name labels (empty path addresses the focus itself), and
// transforms is an ordered pipeline of aggregation/transform tags (at
// least count, min, max, sum, avg; extensible by name) applied outermost
// last, i.e. transforms[0] is applied first.
type Expression struct {
	Transforms []string
	Path       []string
}

// NewExpression builds a path-only Expression with no transforms.
func NewExpression(path ...string) Expression {
	return Expression{Path: append([]string(nil), path...)}
}

// WithTransforms returns a copy of e with the given transform pipeline.
func (e Expression) WithTransforms(transforms ...string) Expression {
	e.Transforms = append([]string(nil), transforms...)
	return e
}

// String renders the canonical "t1:t2:...:label.label" form used both as
// a URL-query path prefix and as a map key for Query criteria/Specs
// probes.
func (e Expression) String() string {
	var b strings.Builder
	for _, t := range e.Transforms {
		b.WriteString(t)
		b.WriteByte(':')
	}
	b.WriteString(strings.Join(e.Path, "."))
	return b.String()
}

// Equal compares Expressions by canonical string form.
func (e Expression) Equal(other Expression) bool {
	return e.String() == other.String()
}

// ParseExpression parses "t1:t2:...:label.label" (or just "label.label",
// or "" for the focus) into an Expression. It also accepts the
// SQL-flavored function-call spelling of a single transform, "name()" or
// "name(label.label)" — the form used by the query DSL's aggregation
// probe keys (e.g. "count()") — as equivalent to "name:" / "name:path".
func ParseExpression(s string) Expression {
	if name, inner, ok := parseTransformCall(s); ok {
		var path []string
		if inner != "" {
			path = strings.Split(inner, ".")
		}
		return Expression{Transforms: []string{name}, Path: path}
	}

	parts := strings.Split(s, ":")
	pathPart := parts[len(parts)-1]
	transforms := parts[:len(parts)-1]
	var path []string
	if pathPart != "" {
		path = strings.Split(pathPart, ".")
	}
	return Expression{Transforms: transforms, Path: path}
}

// parseTransformCall recognizes the whole-string "name(...)" function-call
// form; name must be a bare identifier (no ':' or '.') so it can't be
// confused with a colon-pipeline or dotted path already containing parens.
func parseTransformCall(s string) (name, inner string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || s[len(s)-1] != ')' {
		return "", "", false
	}
	name = s[:open]
	if strings.ContainsAny(name, ":.") {
		return "", "", false
	}
	inner = s[open+1 : len(s)-1]
	return name, inner, true
}
