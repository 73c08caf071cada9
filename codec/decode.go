package codec

import (
	"strings"

	"github.com/meshcore/ld/internal/lex"
	"github.com/meshcore/ld/query"
	"github.com/meshcore/ld/value"
)

// Options carries the per-call mutable state a Decoder/Encoder needs:
// base URI, prune mode. Per the concurrency model, these are one-shot and
// not safe to share across goroutines.
type Options struct {
	Base  string
	Prune bool
}

// DefaultOptions returns Options using value.DefaultBase and strict
// (non-pruning) decode.
func DefaultOptions() Options {
	return Options{Base: value.DefaultBase}
}

// Decode parses raw (transparently unwrapping Base64/URL-encoded payloads)
// against shape, producing a Value. shape may be nil, in which case
// decoding is permissive: all fields are accepted, integer literals decode
// to Integer, and literals with a fraction or exponent decode to Decimal, or
// to Floating when the Decimal form does not fit.
func Decode(raw []byte, shape *value.Shape, opts Options) (value.Value, error) {
	unwrapped := UnwrapPayload(raw)

	if isQueryForm(unwrapped) {
		q, err := query.ParseJSON(shape, unwrapped)
		if err != nil {
			return nil, err
		}
		return q, nil
	}

	n, err := parseDocument(string(unwrapped))
	if err != nil {
		return nil, err
	}
	return decodeNode(n, shape, opts)
}

// isQueryForm sniffs whether raw is a JSON array containing exactly one
// object whose keys include a query sigil or a probe "alias=expr"
// assignment — the form that decodes to a Query/Specs rather than a plain
// Array.
func isQueryForm(raw []byte) bool {
	n, err := parseDocument(string(raw))
	if err != nil || n.kind != nodeArray || len(n.array) != 1 {
		return false
	}
	obj := n.array[0]
	if obj.kind != nodeObject {
		return false
	}
	for pair := obj.object.Oldest(); pair != nil; pair = pair.Next() {
		key := pair.Key
		if key == "@" || key == "#" || strings.HasPrefix(key, "^") {
			return true
		}
		if strings.ContainsAny(key, "<>~?!") {
			return true
		}
		if strings.Contains(key, "=") {
			return true
		}
	}
	return false
}

func decodeNode(n node, shape *value.Shape, opts Options) (value.Value, error) {
	switch n.kind {
	case nodeNull:
		return value.Nothing, nil
	case nodeBool:
		return value.Bit(n.bool), nil
	case nodeNumber:
		return decodeNumber(n.number, shape)
	case nodeString:
		return decodeString(n.string, shape, opts.Base)
	case nodeArray:
		return decodeArray(n, shape, opts)
	case nodeObject:
		return decodeObject(n, shape, opts)
	default:
		return nil, semanticf("unrecognized node kind")
	}
}

func decodeNumber(lexical string, shape *value.Shape) (value.Value, error) {
	if shape != nil && shape.Datatype() != nil {
		switch shape.Datatype().Kind() {
		case value.KindIntegral:
			if v, ok := value.DecodeIntegral("", lexical); ok {
				return v, nil
			}
		case value.KindInteger:
			if v, ok := value.DecodeInteger("", lexical); ok {
				return v, nil
			}
		case value.KindDecimal:
			if v, ok := value.DecodeDecimal("", lexical); ok {
				return v, nil
			}
		case value.KindFloating:
			if v, ok := value.DecodeFloating("", lexical); ok {
				return v, nil
			}
		}
	}
	if strings.ContainsAny(lexical, ".eE") {
		if v, ok := value.DecodeDecimal("", lexical); ok {
			return v, nil
		}
		if v, ok := value.DecodeFloating("", lexical); ok {
			return v, nil
		}
	}
	if n, ok := lex.ParseInteger(lexical); ok {
		return value.NewInteger(n), nil
	}
	return nil, semanticf("malformed numeric lexical %q", lexical)
}

func decodeString(s string, shape *value.Shape, base string) (value.Value, error) {
	if shape == nil || shape.Datatype() == nil {
		return value.String(s), nil
	}
	switch shape.Datatype().Kind() {
	case value.KindURI:
		v, _ := value.DecodeURI(base, s)
		return v, nil
	case value.KindText:
		v, ok := value.DecodeText(base, s)
		if !ok {
			return nil, semanticf("malformed language tag in %q", s)
		}
		return v, nil
	case value.KindTemporal:
		v, ok := value.DecodeTemporal(base, s)
		if !ok {
			return nil, semanticf("malformed temporal lexical %q", s)
		}
		return v, nil
	case value.KindTemporalAmount:
		v, ok := value.DecodeTemporalAmount(base, s)
		if !ok {
			return nil, semanticf("malformed temporal amount lexical %q", s)
		}
		return v, nil
	case value.KindObject:
		// Inline id shorthand: a bare string where an Object is expected is
		// the object's @id.
		if _, ok := shape.IDField(); ok {
			id, _ := value.DecodeURI(base, s)
			obj := value.NewObject().WithShape(shape).(value.Object).WithID(id.(value.URI))
			return obj, nil
		}
		return value.String(s), nil
	default:
		return value.String(s), nil
	}
}

func decodeArray(n node, shape *value.Shape, opts Options) (value.Value, error) {
	items := make([]value.Value, 0, len(n.array))
	for _, item := range n.array {
		if item.kind == nodeNull {
			return nil, semanticf("null entries are not permitted in a shaped array")
		}
		if item.kind == nodeArray {
			return nil, semanticf("nested arrays are not permitted in a shaped array")
		}
		v, err := decodeNode(item, shape, opts)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return value.NewArray(items...), nil
}

func decodeObject(n node, shape *value.Shape, opts Options) (value.Value, error) {
	// Top-level {"@value":..,"@language"|"@type":..} is Text or Data.
	if v, ok, err := decodeValueKeyword(n, opts.Base); ok || err != nil {
		return v, err
	}

	out := value.NewObject()
	if shape != nil {
		out = out.WithShape(shape).(value.Object)
	}

	idField, hasIDField := shape.IDField()
	typField, hasTypField := shape.TypeField()

	for pair := n.object.Oldest(); pair != nil; pair = pair.Next() {
		key, fieldNode := pair.Key, pair.Value

		if hasIDField && key == idField {
			idStr, ok := fieldNode.string, fieldNode.kind == nodeString
			if !ok {
				return nil, semanticf("expected string at id field %q", idField)
			}
			id, _ := value.DecodeURI(opts.Base, idStr)
			out = out.WithID(id.(value.URI))
			continue
		}
		if hasTypField && key == typField {
			if fieldNode.kind != nodeString {
				return nil, semanticf("expected string at type field %q", typField)
			}
			out = out.WithType(fieldNode.string)
			continue
		}

		prop, declared := shape.Property(key)
		if shape != nil && !declared {
			return nil, semanticf("unknown property %q", key)
		}

		fieldShape := (*value.Shape)(nil)
		if declared {
			fieldShape = prop.Nested
		}

		fv, err := decodeField(fieldNode, fieldShape, opts)
		if err != nil {
			return nil, err
		}
		if opts.Prune && isPruneable(fv) {
			continue
		}
		out = out.Set(key, fv)
	}
	return out, nil
}

// isPruneable reports whether v is one of the kinds prune mode discards:
// Nil, an empty Object, or an empty Array.
func isPruneable(v value.Value) bool {
	switch t := v.(type) {
	case value.Nil:
		return true
	case value.Object:
		return t.IsEmpty()
	case value.Array:
		return t.IsEmpty()
	default:
		return false
	}
}

// decodeField decodes one object field, expanding language-map shorthand
// (an object keyed by locale tag) into an array of Text values when the
// field's shape declares a Text datatype.
func decodeField(n node, shape *value.Shape, opts Options) (value.Value, error) {
	if shape != nil && shape.Datatype() != nil && shape.Datatype().Kind() == value.KindText && n.kind == nodeObject {
		return decodeLanguageMap(n, opts.Base)
	}
	return decodeNode(n, shape, opts)
}

func decodeLanguageMap(n node, base string) (value.Value, error) {
	var items []value.Value
	for pair := n.object.Oldest(); pair != nil; pair = pair.Next() {
		locale := pair.Key
		if locale == "" {
			locale = value.RootLocale
		}
		if pair.Value.kind != nodeString {
			return nil, semanticf("language map value for %q must be a string", locale)
		}
		items = append(items, value.NewText(locale, pair.Value.string))
	}
	return value.NewArray(items...), nil
}

func decodeValueKeyword(n node, base string) (value.Value, bool, error) {
	_, hasValue := n.object.Get("@value")
	if !hasValue {
		return nil, false, nil
	}
	valNode, _ := n.object.Get("@value")
	if valNode.kind != nodeString {
		return nil, false, semanticf("@value must be a string")
	}
	if langNode, ok := n.object.Get("@language"); ok {
		if langNode.kind != nodeString {
			return nil, false, semanticf("@language must be a string")
		}
		v, ok := value.DecodeText(base, valNode.string+"@"+langNode.string)
		if !ok {
			return nil, false, semanticf("malformed @language tag %q", langNode.string)
		}
		if langNode.string == value.RootLocale {
			v = value.NewText(value.RootLocale, valNode.string)
		}
		return v, true, nil
	}
	if typeNode, ok := n.object.Get("@type"); ok {
		if typeNode.kind != nodeString {
			return nil, false, semanticf("@type must be a string")
		}
		return value.NewData(lex.Resolve(base, typeNode.string), valNode.string), true, nil
	}
	return nil, false, semanticf("@value without @language or @type")
}
