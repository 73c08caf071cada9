package value

import "testing"

func TestObjectFieldOrderPreserved(t *testing.T) {
	o := NewObject().Set("y", Integral(2)).Set("x", Integral(1))
	names := o.Names()
	if len(names) != 2 || names[0] != "y" || names[1] != "x" {
		t.Fatalf("expected insertion order [y x], got %v", names)
	}
}

func TestObjectSetPreservesExistingPosition(t *testing.T) {
	o := NewObject().Set("a", Integral(1)).Set("b", Integral(2)).Set("a", Integral(3))
	names := o.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("expected [a b], got %v", names)
	}
	v, _ := o.Get("a")
	if !v.Equal(Integral(3)) {
		t.Fatalf("expected updated value for a, got %v", v)
	}
}

func TestObjectEqualityRequiresSameOrder(t *testing.T) {
	a := NewObject().Set("x", Integral(1)).Set("y", Integral(2))
	b := NewObject().Set("y", Integral(2)).Set("x", Integral(1))
	if a.Equal(b) {
		t.Fatalf("objects with different field order should not be Equal")
	}
}

func TestObjectIdentityViaID(t *testing.T) {
	id := NewURI("https://example.org/thing/1")
	a := NewObject().WithID(id)
	got, ok := a.ID()
	if !ok || !got.Equal(id) {
		t.Fatalf("expected id to round-trip, got %v ok=%v", got, ok)
	}
}

func TestObjectIsEmpty(t *testing.T) {
	if !NewObject().IsEmpty() {
		t.Fatalf("expected a fresh Object to be empty")
	}
	if NewObject().Set("a", Nothing).IsEmpty() {
		t.Fatalf("an object with a field is not empty even if the field value is Nil")
	}
}

func TestArrayNeverCollapsesAndPreservesOrder(t *testing.T) {
	arr := NewArray(Integral(1), Integral(2), Integral(3))
	if arr.Len() != 3 {
		t.Fatalf("expected length 3, got %d", arr.Len())
	}
	items := arr.Items()
	for i, want := range []int64{1, 2, 3} {
		if !items[i].Equal(Integral(want)) {
			t.Fatalf("item %d: expected %d, got %v", i, want, items[i])
		}
	}
}
