package bindgen

import (
	"strings"
	"testing"
)

func TestClassifyMethod(t *testing.T) {
	tests := []struct {
		name string
		m    Method
		want MethodRole
	}{
		{
			name: "receiver-less new",
			m:    Method{Name: "New", Receiver: RecvNone, Results: []TypeRef{Named("int32")}},
			want: RoleConstructor,
		},
		{
			name: "receiver-less NewOwner",
			m:    Method{Name: "NewPoint", Receiver: RecvNone, Results: []TypeRef{Named("Point")}},
			want: RoleConstructor,
		},
		{
			name: "receiver-less returning owner",
			m:    Method{Name: "Origin", Receiver: RecvNone, Results: []TypeRef{Named("Point")}},
			want: RoleConstructor,
		},
		{
			name: "receiver-less returning owner pointer",
			m:    Method{Name: "Origin", Receiver: RecvNone, Results: []TypeRef{PointerTo(Named("Point"))}},
			want: RoleConstructor,
		},
		{
			name: "receiver-less plain",
			m:    Method{Name: "Dot", Receiver: RecvNone, Results: []TypeRef{Named("float64")}},
			want: RoleStaticFunction,
		},
		{
			// A builder method that mutates and returns the owner stays an
			// instance method: the receiver disqualifies constructor status.
			name: "builder returning owner",
			m:    Method{Name: "WithLabel", Receiver: RecvExclusive, Results: []TypeRef{PointerTo(Named("Point"))}},
			want: RoleInstanceMethod,
		},
		{
			name: "setter",
			m:    Method{Name: "SetX", Receiver: RecvExclusive, Params: []Param{{Name: "x", Type: Named("float64")}}},
			want: RoleInstanceMethod,
		},
		{
			name: "value receiver",
			m:    Method{Name: "Norm", Receiver: RecvShared, Results: []TypeRef{Named("float64")}},
			want: RoleInstanceMethod,
		},
		{
			name: "method named New with receiver",
			m:    Method{Name: "New", Receiver: RecvExclusive, Results: []TypeRef{Named("Point")}},
			want: RoleInstanceMethod,
		},
	}
	for _, tt := range tests {
		if got := ClassifyMethod("Point", tt.m); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestCheck_UnsafeFunction(t *testing.T) {
	d := &Decl{
		Kind:   DeclFunction,
		Name:   "RawIndex",
		Unsafe: true,
		Func:   &Function{Name: "RawIndex"},
	}
	diag := Check(d)
	if diag == nil {
		t.Fatal("expected diagnostic for unsafe function")
	}
	if diag.Kind != SafetyError {
		t.Errorf("expected safety error, got %s", diag.Kind)
	}
}

func TestCheck_UnsafeMember(t *testing.T) {
	d := &Decl{
		Kind: DeclMethodCollection,
		Name: "Buffer",
		Methods: &MethodCollection{
			Owner: "Buffer",
			Members: []Method{
				{Name: "Len", Receiver: RecvShared, Results: []TypeRef{Named("int")}},
				{Name: "At", Receiver: RecvShared, Unsafe: true, Results: []TypeRef{Named("float64")}},
			},
		},
	}
	diag := Check(d)
	if diag == nil {
		t.Fatal("expected diagnostic for unsafe member")
	}
	if diag.Kind != SafetyError {
		t.Errorf("expected safety error, got %s", diag.Kind)
	}
	if !strings.Contains(diag.Decl, "Buffer.At") {
		t.Errorf("diagnostic should name the member, got %q", diag.Decl)
	}
}

func TestCheck_BadParameter(t *testing.T) {
	d := &Decl{
		Kind: DeclFunction,
		Name: "Join",
		Func: &Function{
			Name:    "Join",
			Params:  []Param{{Name: "parts", Type: SliceOf(Named("string"))}},
			Results: []TypeRef{Named("int32")},
		},
	}
	diag := Check(d)
	if diag == nil {
		t.Fatal("expected diagnostic for slice parameter")
	}
	if diag.Kind != TypeError {
		t.Errorf("expected type error, got %s", diag.Kind)
	}
	if !strings.Contains(diag.Msg, "parts") {
		t.Errorf("diagnostic should name the parameter, got %q", diag.Msg)
	}
}

func TestCheck_BadReturn(t *testing.T) {
	d := &Decl{
		Kind: DeclFunction,
		Name: "Describe",
		Func: &Function{
			Name:    "Describe",
			Results: []TypeRef{Named("string")},
		},
	}
	diag := Check(d)
	if diag == nil {
		t.Fatal("expected diagnostic for string return")
	}
	if diag.Kind != TypeError {
		t.Errorf("expected type error, got %s", diag.Kind)
	}
}

func TestCheck_OwnerReturnLegalInCollection(t *testing.T) {
	d := &Decl{
		Kind: DeclMethodCollection,
		Name: "Point",
		Methods: &MethodCollection{
			Owner: "Point",
			Members: []Method{
				{Name: "NewPoint", Receiver: RecvNone,
					Params:  []Param{{Name: "x", Type: Named("float64")}},
					Results: []TypeRef{Named("Point")}},
				{Name: "Scaled", Receiver: RecvShared,
					Params:  []Param{{Name: "f", Type: Named("float64")}},
					Results: []TypeRef{Named("Point")}},
			},
		},
	}
	if diag := Check(d); diag != nil {
		t.Fatalf("owner-typed results should pass inside a collection: %v", diag)
	}
}

func TestCheck_RecordAlwaysPasses(t *testing.T) {
	// Unsupported fields are skipped at emission, not rejected.
	d := &Decl{
		Kind: DeclDataRecord,
		Name: "Mixed",
		Record: &DataRecord{
			Name: "Mixed",
			Fields: []Field{
				{Name: "X", Type: Named("float64")},
				{Name: "Callback", Type: Named("func()")},
			},
		},
	}
	if diag := Check(d); diag != nil {
		t.Fatalf("records never fail the check: %v", diag)
	}
}

func TestCheck_EmptyDecl(t *testing.T) {
	diag := Check(&Decl{Kind: DeclFunction, Name: "Broken"})
	if diag == nil {
		t.Fatal("expected diagnostic for decl without payload")
	}
	if diag.Kind != StructuralError {
		t.Errorf("expected structural error, got %s", diag.Kind)
	}
}
