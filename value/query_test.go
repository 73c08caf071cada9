package value

import "testing"

func TestQueryEqualComparesCriteria(t *testing.T) {
	base := NewQuery(NewObject())
	a, err := base.WithCriterion(NewExpression("x"), Criterion{Gte: Integral(1)})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	b, err := base.WithCriterion(NewExpression("x"), Criterion{Gte: Integral(2)})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if a.Equal(b) {
		t.Fatalf("expected Queries with differing bounds on the same expression to not be Equal")
	}
	c, err := base.WithCriterion(NewExpression("x"), Criterion{Gte: Integral(1)})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if !a.Equal(c) {
		t.Fatalf("expected Queries with identical criteria to be Equal")
	}
}

func TestCriterionEqualCoversAnyAndFocus(t *testing.T) {
	a := Criterion{Any: []Value{Integral(1), Integral(2)}}
	b := Criterion{Any: []Value{Integral(1), Integral(3)}}
	if a.Equal(b) {
		t.Fatalf("expected differing Any sets to compare unequal")
	}
	c := Criterion{Focus: []Value{String("x")}}
	d := Criterion{Focus: []Value{String("y")}}
	if c.Equal(d) {
		t.Fatalf("expected differing Focus sets to compare unequal")
	}
}
