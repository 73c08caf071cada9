package value

import (
	"fmt"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/meshcore/ld/internal/lex"
)

// Validate walks focus under shape and returns a trace Value: Nil on
// success, else an Object of path -> array-of-issue reports. Validation is
// pure and stateless; failures aggregate rather than short-circuiting.
func Validate(focus Value, shape *Shape) Value {
	tb := newTrace()
	validateAt(tb, focus, shape, "")
	return tb.result()
}

func validateAt(tb *trace, focus Value, shape *Shape, path string) {
	if shape == nil {
		return
	}

	items, count := focusSet(focus)

	if shape.minCount != nil && count < *shape.minCount {
		tb.add(path, "minCount", fmt.Sprintf("expected at least %d value(s), got %d", *shape.minCount, count))
	}
	if shape.maxCount != nil && count > *shape.maxCount {
		tb.add(path, "maxCount", fmt.Sprintf("expected at most %d value(s), got %d", *shape.maxCount, count))
	}

	if len(shape.hasValue) > 0 {
		for _, want := range shape.hasValue {
			found := false
			for _, item := range items {
				if item.Equal(want) {
					found = true
					break
				}
			}
			if !found {
				tb.add(path, "hasValue", fmt.Sprintf("missing required value %s", want.Encode(DefaultBase)))
			}
		}
	}

	if shape.uniqueLang {
		seen := map[string]bool{}
		for _, item := range items {
			if t, ok := item.(Text); ok {
				if seen[t.Locale] {
					tb.add(path, "uniqueLang", fmt.Sprintf("duplicate locale %q", t.Locale))
				}
				seen[t.Locale] = true
			}
		}
	}

	for _, c := range shape.constraints {
		tb.absorb(c.Fn(focus), path)
	}

	for i, item := range items {
		itemPath := path
		if isArrayFocus(focus) {
			itemPath = appendIndex(path, i)
		}
		validateItem(tb, item, shape, itemPath)
	}
}

func isArrayFocus(v Value) bool {
	_, ok := v.(Array)
	return ok
}

func focusSet(focus Value) ([]Value, int) {
	if arr, ok := focus.(Array); ok {
		return arr.Items(), arr.Len()
	}
	if IsNil(focus) {
		return nil, 0
	}
	return []Value{focus}, 1
}

func validateItem(tb *trace, item Value, shape *Shape, path string) {
	if shape.datatype != nil && item.Kind() != shape.datatype.Kind() {
		tb.add(path, "datatype", fmt.Sprintf("expected %v, got %v", shape.datatype.Kind(), item.Kind()))
		return
	}

	if explicit, ok := shape.ExplicitClass(); ok {
		if obj, isObj := item.(Object); isObj {
			if t, hasType := obj.Type(); hasType && t != explicit.Name {
				tb.add(path, "class", fmt.Sprintf("expected class %q, got %q", explicit.Name, t))
			}
		}
	}

	checkBound(tb, item, shape.minExclusive, path, "minExclusive", func(cmp int) bool { return cmp > 0 })
	checkBound(tb, item, shape.maxExclusive, path, "maxExclusive", func(cmp int) bool { return cmp < 0 })
	checkBound(tb, item, shape.minInclusive, path, "minInclusive", func(cmp int) bool { return cmp >= 0 })
	checkBound(tb, item, shape.maxInclusive, path, "maxInclusive", func(cmp int) bool { return cmp <= 0 })

	if shape.minLength != nil || shape.maxLength != nil || shape.pattern != nil {
		if lexical, ok := lexicalOf(item); ok {
			if shape.minLength != nil {
				if err := ozzo.Validate(lexical, ozzo.Length(*shape.minLength, 0)); err != nil {
					tb.add(path, "minLength", err.Error())
				}
			}
			if shape.maxLength != nil {
				if err := ozzo.Validate(lexical, ozzo.Length(0, *shape.maxLength)); err != nil {
					tb.add(path, "maxLength", err.Error())
				}
			}
			if shape.pattern != nil {
				if err := ozzo.Validate(lexical, ozzo.Match(shape.pattern)); err != nil {
					tb.add(path, "pattern", fmt.Sprintf("value does not match %q", shape.patternSrc))
				}
			}
		}
	}

	if d, ok := item.(Data); ok && shape.datatype != nil {
		if known, valid := lex.CheckFormat(localName(d.Datatype), d.Lexical); known && !valid {
			tb.add(path, "format", fmt.Sprintf("lexical %q is not a valid %s", d.Lexical, localName(d.Datatype)))
		}
		if want, ok := shape.MediaType(); ok {
			if got, sniffed := SniffMediaType(d.Lexical); sniffed && got != want {
				tb.add(path, "mediaType", fmt.Sprintf("sniffed media type %q, expected %q", got, want))
			}
		}
	}

	if len(shape.in) > 0 {
		found := false
		for _, v := range shape.in {
			if item.Equal(v) {
				found = true
				break
			}
		}
		if !found {
			tb.add(path, "in", "value not in enumerated set")
		}
	}

	if len(shape.languageIn) > 0 {
		if t, ok := item.(Text); ok {
			allowed := false
			for _, tag := range shape.languageIn {
				if tag == t.Locale || tag == AnyLocale {
					allowed = true
					break
				}
			}
			if !allowed {
				tb.add(path, "languageIn", fmt.Sprintf("locale %q not permitted", t.Locale))
			}
		}
	}

	if obj, ok := item.(Object); ok {
		shape.Properties(func(p Property) bool {
			if p.Nested == nil {
				return true
			}
			fieldVal, present := obj.Get(p.Name)
			if !present {
				fieldVal = Nothing
			}
			validateAt(tb, fieldVal, p.Nested, appendPath(path, p.Name))
			return true
		})
	}
}

// localName extracts the fragment or final path segment of a datatype URI,
// the name CheckFormat keys its well-known lexical-format checks on.
func localName(uri string) string {
	if i := strings.LastIndexAny(uri, "#/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

func checkBound(tb *trace, item, bound Value, path, rule string, ok func(cmp int) bool) {
	if bound == nil {
		return
	}
	cmp, comparable := Compare(item, bound)
	if !comparable {
		tb.add(path, rule, fmt.Sprintf("value of kind %v is not comparable to bound of kind %v", item.Kind(), bound.Kind()))
		return
	}
	if !ok(cmp) {
		tb.add(path, rule, fmt.Sprintf("value %s violates %s %s", item.Encode(DefaultBase), rule, bound.Encode(DefaultBase)))
	}
}
