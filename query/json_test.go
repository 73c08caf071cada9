package query

import (
	"testing"

	"github.com/meshcore/ld/value"
)

func officeQueryShape() *value.Shape {
	office := value.NewProperty("office").WithNested(
		value.NewShape().WithProperty(value.NewProperty("label")),
	)
	return value.NewShape().WithProperty(office)
}

func TestParseJSONProjectionAndOrderAndLimit(t *testing.T) {
	raw := []byte(`[{"~office.label":"US","^":["count()"],"#":10,"count()":0,"office":{"id":"","label":""}}]`)
	q, err := ParseJSON(officeQueryShape(), raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if q.Limit == nil || *q.Limit != 10 {
		t.Fatalf("expected limit 10, got %v", q.Limit)
	}

	specs, ok := q.Model.(value.Specs)
	if !ok {
		t.Fatalf("expected model to materialize a Specs, got %T", q.Model)
	}
	if len(specs.Probes) != 2 {
		t.Fatalf("expected 2 probes, got %d", len(specs.Probes))
	}
	aliases := map[string]bool{}
	for _, p := range specs.Probes {
		aliases[p.Alias] = true
	}
	if !aliases["office"] || !aliases["count()"] {
		t.Fatalf("expected probes for 'office' and 'count()', got %+v", specs.Probes)
	}

	likeCrit, ok := q.Criterion(value.NewExpression("office", "label"))
	if !ok || likeCrit.Like == nil || *likeCrit.Like != "US" {
		t.Fatalf("expected like(office.label, US), got %+v ok=%v", likeCrit, ok)
	}

	countExpr := value.ParseExpression("count()")
	if len(countExpr.Transforms) != 1 || countExpr.Transforms[0] != "count" || len(countExpr.Path) != 0 {
		t.Fatalf("expected count() to parse as the count transform over an empty path, got %+v", countExpr)
	}
	orderCrit, ok := q.Criterion(countExpr)
	if !ok || orderCrit.Order == nil || *orderCrit.Order != 1 {
		t.Fatalf("expected order priority 1 on count(), got %+v ok=%v", orderCrit, ok)
	}
}

func TestParseJSONPureFilterHasNoSpecs(t *testing.T) {
	raw := []byte(`[{"~office.label":"US","#":10}]`)
	q, err := ParseJSON(officeQueryShape(), raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, ok := q.Model.(value.Specs); ok {
		t.Fatalf("did not expect a Specs to materialize from sigil/reserved keys alone")
	}
}

func TestParseJSONOffset(t *testing.T) {
	raw := []byte(`[{"@":5}]`)
	q, err := ParseJSON(value.NewShape(), raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if q.Offset == nil || *q.Offset != 5 {
		t.Fatalf("expected offset 5, got %v", q.Offset)
	}
}

func TestParseJSONRejectsMultipleObjects(t *testing.T) {
	raw := []byte(`[{"a":1},{"b":2}]`)
	if _, err := ParseJSON(value.NewShape(), raw); err == nil {
		t.Fatalf("expected multiple array entries to be rejected")
	}
}

func TestParseJSONRejectsNonArray(t *testing.T) {
	raw := []byte(`{"a":1}`)
	if _, err := ParseJSON(value.NewShape(), raw); err == nil {
		t.Fatalf("expected a bare object (not wrapped in an array) to be rejected")
	}
}

func TestParseJSONKeyOrderDrivesProbeOrder(t *testing.T) {
	raw := []byte(`[{"b=b":1,"a=a":2}]`)
	q, err := ParseJSON(value.NewShape(), raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	specs, ok := q.Model.(value.Specs)
	if !ok || len(specs.Probes) != 2 {
		t.Fatalf("expected a 2-probe Specs, got %+v", q.Model)
	}
	if specs.Probes[0].Alias != "b" || specs.Probes[1].Alias != "a" {
		t.Fatalf("expected probes in document order [b a], got [%s %s]", specs.Probes[0].Alias, specs.Probes[1].Alias)
	}
}
