package value

import "testing"

func TestShapeMergeUnionsProperties(t *testing.T) {
	a := NewShape().WithProperty(NewProperty("name"))
	b := NewShape().WithProperty(NewProperty("age"))
	merged, err := a.Merge(b)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if _, ok := merged.Property("name"); !ok {
		t.Fatalf("expected merged shape to carry 'name'")
	}
	if _, ok := merged.Property("age"); !ok {
		t.Fatalf("expected merged shape to carry 'age'")
	}
}

func TestShapeMergeWithEmptyIsIdentity(t *testing.T) {
	a := NewShape().WithMinLength(2).WithMaxLength(10)
	merged, err := a.Merge(NewShape())
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if *merged.minLength != 2 || *merged.maxLength != 10 {
		t.Fatalf("expected merge(a, empty) = a, got min=%v max=%v", merged.minLength, merged.maxLength)
	}
}

func TestShapeMergeIsIdempotent(t *testing.T) {
	a := NewShape().WithMinLength(2).WithMaxLength(10).WithIn(String("x"), String("y"))
	merged, err := a.Merge(a)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if *merged.minLength != 2 || *merged.maxLength != 10 {
		t.Fatalf("expected merge(a, a) = a on bounds")
	}
	if len(merged.in) != 2 {
		t.Fatalf("expected merge(a, a) to dedup 'in' set, got %d entries", len(merged.in))
	}
}

func TestShapeMergeTakesMoreRestrictiveBounds(t *testing.T) {
	a := NewShape().WithMinLength(2)
	b := NewShape().WithMinLength(5)
	merged, err := a.Merge(b)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if *merged.minLength != 5 {
		t.Fatalf("expected the more restrictive (higher) minLength 5, got %d", *merged.minLength)
	}
}

func TestShapeMergeConflictingExplicitClassesFails(t *testing.T) {
	a := NewShape().WithClass(NewType("Person"))
	b := NewShape().WithClass(NewType("Organization"))
	if _, err := a.Merge(b); err == nil {
		t.Fatalf("expected conflicting explicit classes to fail merge")
	}
}

func TestShapeExtendPreservesOwnExplicitClass(t *testing.T) {
	child := NewShape().WithClass(NewType("Employee"))
	parent := NewShape().WithClass(NewType("Person")).WithProperty(NewProperty("name"))
	extended, err := child.Extend(parent)
	if err != nil {
		t.Fatalf("extend failed: %v", err)
	}
	head, ok := extended.ExplicitClass()
	if !ok || head.Name != "Employee" {
		t.Fatalf("expected extend to keep receiver's explicit class, got %+v", head)
	}
	if _, ok := extended.Property("name"); !ok {
		t.Fatalf("expected extend to inherit parent's properties")
	}
}

func TestPropertyMergeEmbeddedForeignConflict(t *testing.T) {
	a := NewProperty("owner").WithEmbedded(true)
	b := NewProperty("owner").WithForeign(true)
	shapeA := NewShape().WithProperty(a)
	shapeB := NewShape().WithProperty(b)
	if _, err := shapeA.Merge(shapeB); err == nil {
		t.Fatalf("expected embedded/foreign conflict to fail merge")
	}
}

func TestWithPropertyPanicsOnEmbeddedForeignConflict(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected WithProperty to panic on a structurally invalid Property")
		}
	}()
	p := NewProperty("owner").WithEmbedded(true).WithForeign(true)
	NewShape().WithProperty(p)
}
