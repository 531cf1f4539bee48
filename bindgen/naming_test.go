package bindgen

import (
	"strings"
	"testing"
)

func TestMemberName(t *testing.T) {
	tests := []struct {
		owner  string
		goName string
		want   string
	}{
		{"Point", "New", "new"},
		{"Point", "NewPoint", "new"},
		{"Point", "NewPointPolar", "new_point_polar"},
		{"Point", "DistanceFromOrigin", "distance_from_origin"},
		{"Point", "SetX", "set_x"},
		{"Counter", "Add", "add"},
	}
	for _, tt := range tests {
		if got := MemberName(tt.owner, tt.goName); got != tt.want {
			t.Errorf("MemberName(%s, %s): expected %q, got %q", tt.owner, tt.goName, tt.want, got)
		}
	}
}

func TestSymbols(t *testing.T) {
	if got := MethodSymbol("Point", "DistanceFromOrigin"); got != "Point_distance_from_origin" {
		t.Errorf("MethodSymbol: got %q", got)
	}
	if got := MethodSymbol("Point", "NewPoint"); got != "Point_new" {
		t.Errorf("MethodSymbol constructor: got %q", got)
	}
	if got := GetterSymbol("Point", "X"); got != "Point_get_x" {
		t.Errorf("GetterSymbol: got %q", got)
	}
	if got := SetterSymbol("Point", "Label"); got != "Point_set_label" {
		t.Errorf("SetterSymbol: got %q", got)
	}
	if got := FreeSymbol("Point"); got != "Point_free" {
		t.Errorf("FreeSymbol: got %q", got)
	}
	if got := ResultTypeName("Divide"); got != "CResult_Divide" {
		t.Errorf("ResultTypeName: got %q", got)
	}
	if got := OptionTypeName("SafeSqrt"); got != "COption_SafeSqrt" {
		t.Errorf("OptionTypeName: got %q", got)
	}
}

func TestSelector(t *testing.T) {
	tests := []struct {
		goName string
		params int
		want   string
	}{
		{"Norm", 0, "norm"},
		{"SetX", 1, "setX:"},
		{"Divide", 2, "divide:_:"},
		{"Replace", 3, "replace:_:_:"},
		{"DistanceFromOrigin", 0, "distanceFromOrigin"},
	}
	for _, tt := range tests {
		if got := Selector(tt.goName, tt.params); got != tt.want {
			t.Errorf("Selector(%s, %d): expected %q, got %q", tt.goName, tt.params, tt.want, got)
		}
	}
}

func TestHostClassName(t *testing.T) {
	if got := HostClassName("Go", "Point"); got != "Go::Point" {
		t.Errorf("HostClassName: got %q", got)
	}
}

func TestSymbolRegistry_Duplicate(t *testing.T) {
	reg := NewSymbolRegistry()
	if err := reg.Claim("Point_free", "Point"); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	err := reg.Claim("Point_free", "point")
	if err == nil {
		t.Fatal("expected duplicate symbol error")
	}
	if !strings.Contains(err.Error(), "Point_free") {
		t.Errorf("error should name the symbol: %v", err)
	}
	if !strings.Contains(err.Error(), "Point") || !strings.Contains(err.Error(), "point") {
		t.Errorf("error should name both claimants: %v", err)
	}
}
