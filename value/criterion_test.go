package value

import "testing"

func TestCriterionMergeNarrowsBounds(t *testing.T) {
	a := Criterion{Gte: Integral(10)}
	b := Criterion{Gte: Integral(20)}
	merged, err := a.Merge(b)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if !merged.Gte.Equal(Integral(20)) {
		t.Fatalf("expected narrower (higher) lower bound 20, got %v", merged.Gte)
	}
}

func TestCriterionMergeEqualButDifferentExclusivityConflicts(t *testing.T) {
	a := Criterion{Lt: Integral(10)}
	b := Criterion{Lte: Integral(10)}
	if _, err := a.Merge(b); err == nil {
		t.Fatalf("expected equal-but-differently-exclusive bounds to conflict")
	}
}

func TestCriterionMergeAnyIntersects(t *testing.T) {
	a := Criterion{Any: []Value{Integral(1), Integral(2), Integral(3)}}
	b := Criterion{Any: []Value{Integral(2), Integral(3), Integral(4)}}
	merged, err := a.Merge(b)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if len(merged.Any) != 2 {
		t.Fatalf("expected intersection of size 2, got %d", len(merged.Any))
	}
}

func TestCriterionMergeDisjointAnyFails(t *testing.T) {
	a := Criterion{Any: []Value{Integral(1)}}
	b := Criterion{Any: []Value{Integral(2)}}
	if _, err := a.Merge(b); err == nil {
		t.Fatalf("expected disjoint any-of sets to fail merge")
	}
}

func TestCriterionMergeConflictingOrderFails(t *testing.T) {
	inc, dec := 1, -1
	a := Criterion{Order: &inc}
	b := Criterion{Order: &dec}
	if _, err := a.Merge(b); err == nil {
		t.Fatalf("expected conflicting order priorities to fail merge")
	}
}

func TestExpressionCanonicalStringForm(t *testing.T) {
	e := NewExpression("office", "label").WithTransforms("count")
	s := e.String()
	if s != "count:office.label" {
		t.Fatalf("expected canonical form, got %q", s)
	}
	back := ParseExpression(s)
	if !back.Equal(e) {
		t.Fatalf("expected round trip through ParseExpression, got %+v", back)
	}
}

func TestParseExpressionFunctionCallSyntax(t *testing.T) {
	e := ParseExpression("count()")
	if len(e.Transforms) != 1 || e.Transforms[0] != "count" || len(e.Path) != 0 {
		t.Fatalf("expected count() to parse as transform 'count' over an empty path, got %+v", e)
	}

	withPath := ParseExpression("sum(office.total)")
	if len(withPath.Transforms) != 1 || withPath.Transforms[0] != "sum" {
		t.Fatalf("expected transform 'sum', got %+v", withPath)
	}
	if len(withPath.Path) != 2 || withPath.Path[0] != "office" || withPath.Path[1] != "total" {
		t.Fatalf("expected path [office total], got %+v", withPath.Path)
	}

	plain := ParseExpression("office.label")
	if len(plain.Transforms) != 0 || len(plain.Path) != 2 {
		t.Fatalf("expected a plain dotted path to parse unaffected, got %+v", plain)
	}
}
