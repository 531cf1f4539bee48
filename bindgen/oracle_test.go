package bindgen

import (
	"strings"
	"testing"
)

func TestClassifyType_Primitives(t *testing.T) {
	tests := []struct {
		goName string
		cType  string
		cgo    string
	}{
		{"int8", "int8_t", "C.int8_t"},
		{"int32", "int32_t", "C.int32_t"},
		{"int64", "int64_t", "C.int64_t"},
		{"uint8", "uint8_t", "C.uint8_t"},
		{"byte", "uint8_t", "C.uint8_t"},
		{"int", "intptr_t", "C.intptr_t"},
		{"uintptr", "uintptr_t", "C.uintptr_t"},
		{"float32", "float", "C.float"},
		{"float64", "double", "C.double"},
		{"bool", "bool", "C.bool"},
		{"rune", "int32_t", "C.int32_t"},
	}
	for _, tt := range tests {
		d := ClassifyType(Named(tt.goName), false)
		if d.Kind != DescPrimitive {
			t.Errorf("%s: expected primitive, got %s", tt.goName, d.Kind)
			continue
		}
		if d.CType != tt.cType {
			t.Errorf("%s: expected C type %s, got %s", tt.goName, tt.cType, d.CType)
		}
		if d.CgoName != tt.cgo {
			t.Errorf("%s: expected cgo name %s, got %s", tt.goName, tt.cgo, d.CgoName)
		}
	}
}

func TestClassifyType_OpaquePointer(t *testing.T) {
	d := ClassifyType(Named("unsafe.Pointer"), false)
	if d.Kind != DescOpaquePointer {
		t.Fatalf("expected opaque pointer, got %s", d.Kind)
	}
	if d.CType != "void*" {
		t.Errorf("expected void*, got %s", d.CType)
	}
}

func TestClassifyType_ContainersOnlyInFields(t *testing.T) {
	// string
	d := ClassifyType(Named("string"), true)
	if d.Kind != DescContainer || d.Container != ContainerString {
		t.Errorf("string in field: expected string container, got %s", d.Kind)
	}
	d = ClassifyType(Named("string"), false)
	if d.Kind != DescUnsupported {
		t.Errorf("string outside field: expected unsupported, got %s", d.Kind)
	}

	// numeric slice
	ref := SliceOf(Named("float64"))
	d = ClassifyType(ref, true)
	if d.Kind != DescContainer || d.Container != ContainerSlice {
		t.Fatalf("[]float64 in field: expected slice container, got %s", d.Kind)
	}
	if d.Elem == nil || d.Elem.GoName != "float64" {
		t.Error("[]float64: expected float64 element descriptor")
	}
	d = ClassifyType(ref, false)
	if d.Kind != DescUnsupported {
		t.Errorf("[]float64 outside field: expected unsupported, got %s", d.Kind)
	}
}

func TestClassifyType_NonNumericSlice(t *testing.T) {
	d := ClassifyType(SliceOf(Named("string")), true)
	if d.Kind != DescUnsupported {
		t.Fatalf("[]string: expected unsupported, got %s", d.Kind)
	}
	if !strings.Contains(d.Reason, "numeric") {
		t.Errorf("[]string: reason should mention numeric elements, got %q", d.Reason)
	}
}

func TestClassifyType_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		ref  TypeRef
	}{
		{"named struct", Named("Point")},
		{"pointer", PointerTo(Named("float64"))},
		{"bare error", Named("error")},
		{"map syntax", Named("map[string]int")},
	}
	for _, tt := range tests {
		d := ClassifyType(tt.ref, false)
		if d.Kind != DescUnsupported {
			t.Errorf("%s: expected unsupported, got %s", tt.name, d.Kind)
		}
		if d.Reason == "" {
			t.Errorf("%s: expected a reason", tt.name)
		}
	}
}

func TestClassifyReturn_Unit(t *testing.T) {
	d := ClassifyReturn(nil)
	if d.Kind != DescUnit {
		t.Fatalf("expected unit, got %s", d.Kind)
	}
	if d.CType != "void" {
		t.Errorf("expected void, got %s", d.CType)
	}
}

func TestClassifyReturn_Single(t *testing.T) {
	d := ClassifyReturn([]TypeRef{Named("float64")})
	if d.Kind != DescPrimitive || d.CType != "double" {
		t.Fatalf("expected double primitive, got %s %s", d.Kind, d.CType)
	}
}

func TestClassifyReturn_ErrorShape(t *testing.T) {
	d := ClassifyReturn([]TypeRef{Named("float64"), Named("error")})
	if d.Kind != DescErrorShape {
		t.Fatalf("expected error shape, got %s", d.Kind)
	}
	if d.Ok == nil || d.Ok.CType != "double" {
		t.Error("expected double success slot")
	}
	if d.Err == nil || d.Err.CType != "int32_t" {
		t.Error("expected int32_t failure slot")
	}
}

func TestClassifyReturn_ErrorShapeUnit(t *testing.T) {
	// A sole error result is still an error shape, just with nothing in
	// the success slot.
	d := ClassifyReturn([]TypeRef{Named("error")})
	if d.Kind != DescErrorShape {
		t.Fatalf("sole error result: expected error shape, got %s", d.Kind)
	}
	if d.Ok == nil || d.Ok.Kind != DescUnit {
		t.Error("expected a unit success slot")
	}
	if d.Err == nil || d.Err.CType != "int32_t" {
		t.Error("expected int32_t failure slot")
	}
}

func TestClassifyReturn_OptionalShape(t *testing.T) {
	d := ClassifyReturn([]TypeRef{Named("float64"), Named("bool")})
	if d.Kind != DescOptionalShape {
		t.Fatalf("expected optional shape, got %s", d.Kind)
	}
	if d.Elem == nil || d.Elem.CType != "double" {
		t.Error("expected double payload slot")
	}
}

func TestClassifyReturn_NestedPayloadRejected(t *testing.T) {
	// Containers legal as fields are still rejected as shape payloads:
	// the record layout must be fully zero-fillable.
	d := ClassifyReturn([]TypeRef{Named("string"), Named("error")})
	if d.Kind != DescUnsupported {
		t.Fatalf("(string, error): expected unsupported, got %s", d.Kind)
	}

	d = ClassifyReturn([]TypeRef{Named("Point"), Named("bool")})
	if d.Kind != DescUnsupported {
		t.Fatalf("(Point, bool): expected unsupported, got %s", d.Kind)
	}
}

func TestClassifyReturn_TooManyResults(t *testing.T) {
	d := ClassifyReturn([]TypeRef{Named("int32"), Named("int32"), Named("error")})
	if d.Kind != DescUnsupported {
		t.Fatalf("three results: expected unsupported, got %s", d.Kind)
	}
}
