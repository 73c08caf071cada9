// Package value implements the Value sum type and the Shape constraint
// algebra that annotates it. The two live in one package because they are
// mutually recursive: a Shape's datatype/in/hasValue constraints hold
// Values, and an Object Value carries an optional Shape.
package value

// Kind discriminates the variants of the Value sum type.
type Kind int

const (
	KindNil Kind = iota
	KindBit
	KindIntegral
	KindFloating
	KindInteger
	KindDecimal
	KindNumber
	KindString
	KindURI
	KindTemporal
	KindTemporalAmount
	KindText
	KindData
	KindObject
	KindArray
	KindQuery
	KindSpecs
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBit:
		return "bit"
	case KindIntegral:
		return "integral"
	case KindFloating:
		return "floating"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindURI:
		return "uri"
	case KindTemporal:
		return "temporal"
	case KindTemporalAmount:
		return "temporal-amount"
	case KindText:
		return "text"
	case KindData:
		return "data"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindQuery:
		return "query"
	case KindSpecs:
		return "specs"
	default:
		return "unknown"
	}
}

// Value is the tagged union at the center of the system. Every variant
// carries a canonical lexical form (Encode) and is structurally comparable
// (Equal). DefaultBase is used wherever a base is needed but the caller has
// none more specific (mirrors the teacher's pattern of never holding base
// URI in global state except for this test default).
const DefaultBase = "app:/"

type Value interface {
	Kind() Kind
	// Encode renders the canonical lexical form of the value relative to
	// base. Container kinds (Object, Array, Query, Specs) render a
	// best-effort textual form; their primary surface is the JSON codec,
	// not this lexical encoding.
	Encode(base string) string
	// Equal reports structural equality. Containers compare elementwise
	// with order-preserving semantics for Object fields and Array items.
	Equal(other Value) bool
}

// IsNil reports whether v is the Nil value (or a nil interface).
func IsNil(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Nil)
	return ok
}

// Shaped is implemented by Value variants that carry an optional Shape
// annotation — currently only Object. The annotation, when present, is
// authoritative for wire-layer decisions (aliasing, pruning, shorthand
// applicability); without it the codec is permissive.
type Shaped interface {
	Value
	Shape() *Shape
	WithShape(s *Shape) Value
}
