package value

import "testing"

func employeeShape() *Shape {
	surname := NewProperty("surname").WithNested(NewShape().WithMinCount(1))
	return NewShape().WithProperty(surname)
}

func TestValidateMissingRequiredFieldProducesTrace(t *testing.T) {
	shape := employeeShape()
	focus := NewObject().WithShape(shape).Set("givenName", String("Ada"))
	trace := Validate(focus, shape)

	obj, ok := trace.(Object)
	if !ok {
		t.Fatalf("expected a non-empty trace Object, got %T", trace)
	}
	issues, ok := obj.Get("surname")
	if !ok {
		t.Fatalf("expected trace to reference 'surname', got fields %v", obj.Names())
	}
	arr, ok := issues.(Array)
	if !ok || arr.Len() == 0 {
		t.Fatalf("expected a non-empty array of issues at 'surname'")
	}
	first := arr.At(0).(Object)
	rule, _ := first.Get("rule")
	if !rule.Equal(String("minCount")) {
		t.Fatalf("expected minCount rule, got %v", rule)
	}
}

func TestValidateSatisfiedShapeProducesEmptyTrace(t *testing.T) {
	shape := employeeShape()
	focus := NewObject().WithShape(shape).Set("surname", String("Lovelace"))
	trace := Validate(focus, shape)
	if !IsNil(trace) {
		t.Fatalf("expected empty trace for a satisfying value, got %v", trace)
	}
}

func TestValidateRangeBounds(t *testing.T) {
	shape := NewShape().WithMinInclusive(Integral(0)).WithMaxInclusive(Integral(150))
	if trace := Validate(Integral(30), shape); !IsNil(trace) {
		t.Fatalf("expected in-range value to validate cleanly, got %v", trace)
	}
	trace := Validate(Integral(200), shape)
	if IsNil(trace) {
		t.Fatalf("expected out-of-range value to fail")
	}
}

func TestValidateShortStringFailsMinLengthOnly(t *testing.T) {
	shape := NewShape().WithMinLength(5).WithMaxLength(10)
	trace := Validate(String("hi"), shape)
	obj, ok := trace.(Object)
	if !ok {
		t.Fatalf("expected a trace Object")
	}
	issues, _ := obj.Get("")
	arr := issues.(Array)
	if arr.Len() != 1 {
		t.Fatalf("expected exactly one minLength failure, got %d issues", arr.Len())
	}
}

func TestValidateMediaTypeSniff(t *testing.T) {
	png := NewData("https://example.org/ns#binary", "iVBORw0KGgo=")
	shape := NewShape().WithDatatype(NewData("", "")).WithMediaType("image/png")
	if trace := Validate(png, shape); !IsNil(trace) {
		t.Fatalf("expected a matching sniffed media type to validate cleanly, got %v", trace)
	}

	mismatched := NewShape().WithDatatype(NewData("", "")).WithMediaType("text/plain")
	trace := Validate(png, mismatched)
	obj, ok := trace.(Object)
	if !ok {
		t.Fatalf("expected a trace Object for a media type mismatch, got %T", trace)
	}
	issues, ok := obj.Get("")
	if !ok {
		t.Fatalf("expected an issue at the focus path")
	}
	arr, ok := issues.(Array)
	if !ok || arr.Len() != 1 {
		t.Fatalf("expected exactly one mediaType issue, got %v", issues)
	}
	rule, _ := arr.At(0).(Object).Get("rule")
	if !rule.Equal(String("mediaType")) {
		t.Fatalf("expected mediaType rule, got %v", rule)
	}
}

func TestValidateUniqueLangDuplicateLocale(t *testing.T) {
	shape := NewShape().WithUniqueLang(true)
	focus := NewArray(NewText("en", "hi"), NewText("en", "hello"))
	trace := Validate(focus, shape)
	if IsNil(trace) {
		t.Fatalf("expected duplicate locale to fail uniqueLang")
	}
}
