package query

import (
	"testing"

	"github.com/meshcore/ld/value"
)

func TestParseURLRangeCriterion(t *testing.T) {
	shape := value.NewShape().WithProperty(value.NewProperty("x"))
	q, err := ParseURL(shape, "x>=lower&x<=upper")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	crit, ok := q.Criterion(value.NewExpression("x"))
	if !ok {
		t.Fatalf("expected a criterion bound to 'x'")
	}
	if !crit.Gte.Equal(value.String("lower")) {
		t.Fatalf("expected gte=lower, got %v", crit.Gte)
	}
	if !crit.Lte.Equal(value.String("upper")) {
		t.Fatalf("expected lte=upper, got %v", crit.Lte)
	}
}

func TestParseURLOffsetAndLimit(t *testing.T) {
	shape := value.NewShape()
	q, err := ParseURL(shape, "@=5&#=10")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if q.Offset == nil || *q.Offset != 5 {
		t.Fatalf("expected offset 5, got %v", q.Offset)
	}
	if q.Limit == nil || *q.Limit != 10 {
		t.Fatalf("expected limit 10, got %v", q.Limit)
	}
}

func TestParseURLRepeatedKeyUnionsIntoAny(t *testing.T) {
	shape := value.NewShape().WithProperty(value.NewProperty("tag"))
	q, err := ParseURL(shape, "tag=a&tag=b")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	crit, ok := q.Criterion(value.NewExpression("tag"))
	if !ok {
		t.Fatalf("expected a criterion bound to 'tag'")
	}
	if len(crit.Any) != 2 {
		t.Fatalf("expected 2 any-of values, got %d", len(crit.Any))
	}
}

func TestParseURLExistentialAnyIsNonNilEmpty(t *testing.T) {
	shape := value.NewShape().WithProperty(value.NewProperty("tag"))
	q, err := ParseURL(shape, "tag=*")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	crit, ok := q.Criterion(value.NewExpression("tag"))
	if !ok {
		t.Fatalf("expected a criterion bound to 'tag'")
	}
	if crit.Any == nil {
		t.Fatalf("expected the existential 'tag=*' form to produce a non-nil (empty) Any set")
	}
	if len(crit.Any) != 0 {
		t.Fatalf("expected an empty Any set, got %d entries", len(crit.Any))
	}
}

func TestParseURLMissingAnyIsNilSet(t *testing.T) {
	shape := value.NewShape().WithProperty(value.NewProperty("tag"))
	q, err := ParseURL(shape, "other=1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, ok := q.Criterion(value.NewExpression("tag")); ok {
		t.Fatalf("expected no criterion at all for an absent key")
	}
}

func TestParseURLOrderSigil(t *testing.T) {
	shape := value.NewShape().WithProperty(value.NewProperty("name"))
	q, err := ParseURL(shape, "^name=increasing")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	crit, ok := q.Criterion(value.NewExpression("name"))
	if !ok {
		t.Fatalf("expected a criterion bound to 'name'")
	}
	if crit.Order == nil || *crit.Order != 1 {
		t.Fatalf("expected order priority 1, got %v", crit.Order)
	}
}

func TestParseURLMalformedLimitFails(t *testing.T) {
	shape := value.NewShape()
	if _, err := ParseURL(shape, "#=not-a-number"); err == nil {
		t.Fatalf("expected malformed limit to fail")
	}
}
