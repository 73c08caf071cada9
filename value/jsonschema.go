package value

import (
	"github.com/invopop/jsonschema"
	om "github.com/wk8/go-ordered-map/v2"
)

// JSONSchema renders s as a JSON Schema document, for introspection and
// tooling only — it is not part of the wire codec, which is shape-driven
// directly rather than through an intermediate schema.
func (s *Shape) JSONSchema() *jsonschema.Schema {
	out := &jsonschema.Schema{}
	populateJSONSchema(out, s)
	return out
}

func populateJSONSchema(out *jsonschema.Schema, s *Shape) {
	if s == nil {
		return
	}
	if explicit, ok := s.ExplicitClass(); ok {
		out.Title = explicit.Name
		if explicit.Description != "" {
			out.Description = explicit.Description
		}
	}
	if s.pattern != nil {
		out.Pattern = s.patternSrc
	}
	if s.minLength != nil {
		n := uint64(*s.minLength)
		out.MinLength = &n
	}
	if s.maxLength != nil {
		n := uint64(*s.maxLength)
		out.MaxLength = &n
	}
	if len(s.in) > 0 {
		for _, v := range s.in {
			out.Enum = append(out.Enum, v.Encode(DefaultBase))
		}
	}

	if s.properties == nil || s.properties.Len() == 0 {
		out.Type = jsonSchemaScalarType(s.datatype)
		return
	}

	out.Type = "object"
	out.Properties = om.New[string, *jsonschema.Schema]()
	var required []string
	s.Properties(func(p Property) bool {
		child := &jsonschema.Schema{}
		populateJSONSchema(child, p.Nested)
		out.Properties.Set(p.Name, child)
		if p.Nested != nil && p.Nested.minCount != nil && *p.Nested.minCount > 0 {
			required = append(required, p.Name)
		}
		return true
	})
	out.Required = required
}

func jsonSchemaScalarType(tag Value) string {
	if tag == nil {
		return ""
	}
	switch tag.Kind() {
	case KindBit:
		return "boolean"
	case KindIntegral, KindInteger:
		return "integer"
	case KindFloating, KindDecimal, KindNumber:
		return "number"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "string"
	}
}
