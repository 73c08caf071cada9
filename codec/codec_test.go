package codec

import (
	"strings"
	"testing"

	"github.com/meshcore/ld/value"
)

func TestDecodeUnshapedObjectPreservesFieldOrder(t *testing.T) {
	v, err := Decode([]byte(`{"x":1,"y":2}`), nil, DefaultOptions())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	obj, ok := v.(value.Object)
	if !ok {
		t.Fatalf("expected an Object, got %T", v)
	}
	names := obj.Names()
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Fatalf("expected field order [x y], got %v", names)
	}
	x, _ := obj.Get("x")
	if !x.Equal(value.NewIntegerFromInt64(1)) {
		t.Fatalf("expected x=1, got %v", x)
	}
}

func TestDecodeResolvesIDFieldAgainstBase(t *testing.T) {
	shape := value.NewShape().WithID("id")
	v, err := Decode([]byte(`{"id":"path"}`), shape, Options{Base: "https://example.org/"})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	obj, ok := v.(value.Object)
	if !ok {
		t.Fatalf("expected an Object, got %T", v)
	}
	id, ok := obj.ID()
	if !ok {
		t.Fatalf("expected object to carry an id")
	}
	if got := id.Encode("https://example.org/"); got != "path" {
		t.Fatalf("expected id to round-trip relative to base, got %q", got)
	}
}

func TestDecodeRejectsUnknownPropertyUnderShape(t *testing.T) {
	shape := value.NewShape().WithProperty(value.NewProperty("name"))
	if _, err := Decode([]byte(`{"name":"Ada","surprise":1}`), shape, DefaultOptions()); err == nil {
		t.Fatalf("expected unknown property under a shape to fail decode")
	}
}

func TestEncodeQueryRoundTripsJSONForm(t *testing.T) {
	shape := value.NewShape().WithProperty(value.NewProperty("office").WithNested(
		value.NewShape().WithProperty(value.NewProperty("label")),
	))
	raw := []byte(`[{"~office.label":"US","#":10}]`)
	q, err := Decode(raw, shape, DefaultOptions())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if _, ok := q.(value.Query); !ok {
		t.Fatalf("expected the query form to decode to a Query, got %T", q)
	}
	encoded, err := Encode(q, shape, DefaultOptions())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got := strings.Join(strings.Fields(string(encoded)), "")
	if !strings.Contains(got, `"~office.label":"US"`) {
		t.Fatalf("expected re-encoded query to contain the like criterion, got %s", got)
	}
	if !strings.Contains(got, `"#":10`) {
		t.Fatalf("expected re-encoded query to contain the limit, got %s", got)
	}
}

func TestEncodeQueryRoundTripsAnyAndFocus(t *testing.T) {
	shape := value.NewShape().WithProperty(value.NewProperty("tag"))
	raw := []byte(`[{"?tag":["a","b"],"!tag":["a"],"~tag":"x"}]`)
	q, err := Decode(raw, shape, DefaultOptions())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	query, ok := q.(value.Query)
	if !ok {
		t.Fatalf("expected a Query, got %T", q)
	}
	crit, ok := query.Criterion(value.NewExpression("tag"))
	if !ok || len(crit.Any) != 2 || len(crit.Focus) != 1 {
		t.Fatalf("expected any/focus to decode, got %+v ok=%v", crit, ok)
	}

	encoded, err := Encode(q, shape, DefaultOptions())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	q2, err := Decode(encoded, shape, DefaultOptions())
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if !q.Equal(q2) {
		t.Fatalf("expected Any/Focus to round-trip losslessly through encode/decode, got %s", encoded)
	}
}

func TestEncodeQueryRoundTripsExistentialAny(t *testing.T) {
	shape := value.NewShape().WithProperty(value.NewProperty("tag"))
	raw := []byte(`[{"?tag":"*"}]`)
	q, err := Decode(raw, shape, DefaultOptions())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	query := q.(value.Query)
	crit, ok := query.Criterion(value.NewExpression("tag"))
	if !ok || crit.Any == nil || len(crit.Any) != 0 {
		t.Fatalf("expected a non-nil empty Any set, got %+v ok=%v", crit, ok)
	}
	encoded, err := Encode(q, shape, DefaultOptions())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !strings.Contains(string(encoded), `"?tag":"*"`) {
		t.Fatalf("expected existential any-of to re-encode as \"*\", got %s", encoded)
	}
}

func TestDecodeEncodeRoundTripWithShape(t *testing.T) {
	shape := value.NewShape().
		WithID("id").
		WithProperty(value.NewProperty("name"))
	raw := []byte(`{"id":"thing/1","name":"Ada"}`)
	v, err := Decode(raw, shape, Options{Base: "https://example.org/"})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	encoded, err := Encode(v, shape, Options{Base: "https://example.org/"})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	v2, err := Decode(encoded, shape, Options{Base: "https://example.org/"})
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if !v.Equal(v2) {
		t.Fatalf("expected decode(encode(decode(x))) == decode(x); got %v vs %v", v2, v)
	}
}

func TestEncodePruneDropsEmptyFields(t *testing.T) {
	shape := value.NewShape().
		WithProperty(value.NewProperty("name")).
		WithProperty(value.NewProperty("tags"))
	obj := value.NewObject().WithShape(shape).(value.Object).
		Set("name", value.Nothing).
		Set("tags", value.NewArray())
	encoded, err := Encode(obj, shape, Options{Base: value.DefaultBase, Prune: true})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got := string(encoded)
	if strings.Contains(got, "name") || strings.Contains(got, "tags") {
		t.Fatalf("expected pruning to drop nil/empty fields, got %s", got)
	}
}

func TestEncodeLanguageMapFidelity(t *testing.T) {
	shape := value.NewShape().WithProperty(
		value.NewProperty("label").WithNested(value.NewShape().WithDatatype(value.NewText("", ""))),
	)
	obj := value.NewObject().WithShape(shape).(value.Object).
		Set("label", value.NewArray(value.NewText("en", "hello"), value.NewText("fr", "bonjour")))
	encoded, err := Encode(obj, shape, DefaultOptions())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	v2, err := Decode(encoded, shape, DefaultOptions())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !obj.Equal(v2) {
		t.Fatalf("expected language map to round-trip, got %s", encoded)
	}
}
