package query

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/meshcore/ld/value"
)

// ParseJSON parses the JSON array-of-a-single-object query form into a
// Query, or into a Query wrapping a Specs when one or more probe keys are
// present: an "alias=expr" assignment, or a plain property key, which is
// both merged into the model and projected as a column under its own
// name. raw is expected to already be JSON (Base64 and
// URL-encoded unwrapping happens upstream in the codec).
//
// The top-level object's key order is read via json.Decoder's token
// stream rather than encoding/json's map[string]any (which does not
// preserve key order) because that order is exactly the order Specs.Probes
// must be built in; deeper nested values fall back to ordinary
// encoding/json decoding since probe/criterion values aren't re-serialized
// order-sensitively downstream — the codec's own hand-rolled lexer
// already owns order-preserving parsing for actual wire documents.
func ParseJSON(shape *value.Shape, raw []byte) (value.Query, error) {
	pairs, err := topLevelObjectPairs(raw)
	if err != nil {
		return value.Query{}, err
	}

	q := value.NewQuery(value.NewObject().WithShape(shape))
	var probes []value.Probe
	var orderAliases []string

	for _, kv := range pairs {
		key := kv.key
		var decoded any
		if err := json.Unmarshal(kv.raw, &decoded); err != nil {
			return value.Query{}, value.NewSyntaxError(0, 0, "malformed query value for %q: %v", key, err)
		}

		switch {
		case key == "@id" || key == "@type" || key == "@" || key == "#":
			if err := applyReservedKey(&q, key, decoded); err != nil {
				return value.Query{}, err
			}
		case key == "^":
			aliases, err := asStringArray(decoded)
			if err != nil {
				return value.Query{}, err
			}
			orderAliases = aliases
		case strings.HasPrefix(key, "?"):
			any, err := decodeAnySet(decoded)
			if err != nil {
				return value.Query{}, err
			}
			expr := value.ParseExpression(strings.TrimPrefix(key, "?"))
			merged, err := q.WithCriterion(expr, value.Criterion{Any: any})
			if err != nil {
				return value.Query{}, err
			}
			q = merged
		case strings.HasPrefix(key, "!"):
			focus, err := asValueArray(decoded)
			if err != nil {
				return value.Query{}, err
			}
			expr := value.ParseExpression(strings.TrimPrefix(key, "!"))
			merged, err := q.WithCriterion(expr, value.Criterion{Focus: focus})
			if err != nil {
				return value.Query{}, err
			}
			q = merged
		case containsProbeAssignment(key):
			alias, expr, _ := strings.Cut(key, "=")
			probes = append(probes, value.Probe{
				Alias: alias,
				Expr:  value.ParseExpression(expr),
				Model: jsonToValue(decoded),
			})
		case startsWithSigil(key):
			sigil, path := splitSigil(key)
			if err := applySigilCriterion(&q, sigil, path, decoded); err != nil {
				return value.Query{}, err
			}
		default:
			// A property of the shape: merged into the model as a nested
			// sub-query/model filter, and also projected as a column.
			nested := jsonToValue(decoded)
			merged, err := mergeModelField(q.Model, key, nested)
			if err != nil {
				return value.Query{}, err
			}
			q = q.WithModel(merged)
			probes = append(probes, value.Probe{Alias: key, Expr: value.ParseExpression(key), Model: nested})
		}
	}

	if len(probes) == 0 {
		return q, nil
	}

	for i, alias := range orderAliases {
		priority := i + 1
		for _, p := range probes {
			if p.Alias == alias {
				var err error
				q, err = q.WithCriterion(p.Expr, value.Criterion{Order: &priority})
				if err != nil {
					return value.Query{}, err
				}
			}
		}
	}

	specs := value.NewSpecs(shape, probes...)
	return q.WithModel(specs), nil
}

type kv struct {
	key string
	raw json.RawMessage
}

// topLevelObjectPairs parses raw as a JSON array containing exactly one
// object, returning that object's (key, raw value) pairs in document
// order.
func topLevelObjectPairs(raw []byte) ([]kv, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, value.NewSyntaxError(0, 0, "malformed query array: %v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, value.NewQueryError("query form must be a JSON array")
	}

	var pairs []kv
	count := 0
	for dec.More() {
		count++
		if count > 1 {
			return nil, value.NewQueryError("query array must contain exactly one object")
		}
		pairs, err = decodeObjectPairs(dec)
		if err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, value.NewSyntaxError(0, 0, "malformed query array: %v", err)
	}
	if count == 0 {
		return nil, value.NewQueryError("query array must contain exactly one object, got 0")
	}
	return pairs, nil
}

func decodeObjectPairs(dec *json.Decoder) ([]kv, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, value.NewSyntaxError(0, 0, "malformed query object: %v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, value.NewQueryError("query array entry must be an object")
	}
	var pairs []kv
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, value.NewSyntaxError(0, 0, "malformed query object key: %v", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, value.NewQueryError("expected string object key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, value.NewSyntaxError(0, 0, "malformed value for %q: %v", key, err)
		}
		pairs = append(pairs, kv{key: key, raw: raw})
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, value.NewSyntaxError(0, 0, "malformed query object: %v", err)
	}
	return pairs, nil
}

func applyReservedKey(q *value.Query, key string, raw any) error {
	switch key {
	case "@":
		n, ok := asInt(raw)
		if !ok {
			return value.NewQueryError("malformed offset")
		}
		*q = q.WithOffset(n)
	case "#":
		n, ok := asInt(raw)
		if !ok {
			return value.NewQueryError("malformed limit")
		}
		*q = q.WithLimit(n)
	case "@id", "@type":
		// Carried through as model-level filters; the codec layer resolves
		// these against the shape's configured id/type field names.
	}
	return nil
}

func containsProbeAssignment(key string) bool {
	if key == "" || strings.HasPrefix(key, "@") {
		return false
	}
	return strings.Contains(key, "=") && !startsWithSigil(key)
}

func startsWithSigil(key string) bool {
	for _, s := range []string{"<=", ">=", "<", ">", "~", "^"} {
		if strings.HasPrefix(key, s) {
			return true
		}
	}
	return false
}

func applySigilCriterion(q *value.Query, sigil, path string, raw any) error {
	expr := value.ParseExpression(path)
	crit := value.Criterion{}
	v := jsonToValue(raw)
	switch sigil {
	case "<":
		crit.Lt = v
	case ">":
		crit.Gt = v
	case "<=":
		crit.Lte = v
	case ">=":
		crit.Gte = v
	case "~":
		if s, ok := raw.(string); ok {
			crit.Like = &s
		}
	case "^":
		n, ok := asInt(raw)
		if !ok {
			switch raw {
			case "increasing":
				n, ok = 1, true
			case "decreasing":
				n, ok = -1, true
			}
		}
		if !ok {
			return value.NewQueryError("malformed order priority for %q", path)
		}
		crit.Order = &n
	}
	merged, err := q.WithCriterion(expr, crit)
	if err != nil {
		return err
	}
	*q = merged
	return nil
}

func mergeModelField(model value.Value, key string, v value.Value) (value.Value, error) {
	obj, ok := model.(value.Object)
	if !ok {
		return model, nil
	}
	return obj.Set(key, v), nil
}

func asInt(raw any) (int, bool) {
	switch t := raw.(type) {
	case float64:
		return int(t), true
	case json.Number:
		n, err := t.Int64()
		return int(n), err == nil
	}
	return 0, false
}

// decodeAnySet parses the JSON value of a "?path" key into the Any-set
// encoding documented on Criterion: JSON null is the non-existential
// "missing" singleton {Nil}, the string "*" is the existential empty-set
// form, and a JSON array is a populated any-of set.
func decodeAnySet(raw any) ([]value.Value, error) {
	switch t := raw.(type) {
	case nil:
		return []value.Value{value.Nothing}, nil
	case string:
		if t == "*" {
			return []value.Value{}, nil
		}
		return nil, value.NewQueryError("malformed any-of set %q", t)
	case []any:
		return asValueArray(t)
	default:
		return nil, value.NewQueryError("malformed any-of set")
	}
}

func asValueArray(raw any) ([]value.Value, error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, value.NewQueryError("expected an array")
	}
	out := make([]value.Value, 0, len(arr))
	for _, item := range arr {
		out = append(out, jsonToValue(item))
	}
	return out, nil
}

func asStringArray(raw any) ([]string, error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, value.NewQueryError("expected an array")
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, value.NewQueryError("expected string array entries")
		}
		out = append(out, s)
	}
	return out, nil
}

// jsonToValue converts a generically-decoded JSON value (string,
// float64/json.Number, bool, nil, []any, map[string]any) into the closest
// Value variant absent shape context; precise typed decoding happens in
// the codec package once a Shape is available for a given field.
func jsonToValue(raw any) value.Value {
	switch t := raw.(type) {
	case nil:
		return value.Nothing
	case bool:
		return value.Bit(t)
	case string:
		return value.String(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return value.NewIntegerFromInt64(n)
		}
		f, _ := t.Float64()
		return value.Floating(f)
	case float64:
		if t == float64(int64(t)) {
			return value.NewIntegerFromInt64(int64(t))
		}
		return value.Floating(t)
	case []any:
		items := make([]value.Value, len(t))
		for i, item := range t {
			items[i] = jsonToValue(item)
		}
		return value.NewArray(items...)
	case map[string]any:
		obj := value.NewObject()
		for k, v := range t {
			obj = obj.Set(k, jsonToValue(v))
		}
		return obj
	default:
		return value.Nothing
	}
}
