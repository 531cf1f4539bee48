package host

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type point struct {
	X, Y float64
}

func newPointRegistry() *Registry {
	r := NewRegistry()
	r.RegisterClass("Go::Point", reflect.TypeOf(point{}))
	r.RegisterConstructor("Go::Point", func(recv any, args []any) any {
		return &point{X: args[0].(float64), Y: args[1].(float64)}
	})
	r.RegisterPrimitive("Go::Point", "translate:_:", func(recv any, args []any) any {
		p := recv.(*point)
		p.X += args[0].(float64)
		p.Y += args[1].(float64)
		return nil
	})
	r.RegisterPrimitive("Go::Point", "divide:_:", func(recv any, args []any) any {
		b := args[1].(float64)
		if b == 0 {
			Raise(errors.New("division by zero"))
		}
		return args[0].(float64) / b
	})
	return r
}

func TestRegistry_New(t *testing.T) {
	r := newPointRegistry()
	obj, err := r.New("Go::Point", 3.0, 4.0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p, ok := obj.(*point)
	if !ok {
		t.Fatalf("expected *point, got %T", obj)
	}
	if p.X != 3.0 || p.Y != 4.0 {
		t.Errorf("expected (3, 4), got (%v, %v)", p.X, p.Y)
	}
}

func TestRegistry_NewWithoutConstructor(t *testing.T) {
	r := NewRegistry()
	r.RegisterClass("Go::Bare", reflect.TypeOf(point{}))
	_, err := r.New("Go::Bare")
	if err == nil {
		t.Fatal("expected error for class without constructor")
	}
}

func TestRegistry_Invoke(t *testing.T) {
	r := newPointRegistry()
	p := &point{X: 1, Y: 2}
	if _, err := r.Invoke("Go::Point", "translate:_:", p, 2.0, 3.0); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if p.X != 3 || p.Y != 5 {
		t.Errorf("expected (3, 5), got (%v, %v)", p.X, p.Y)
	}
}

func TestRegistry_ConstructThenInvoke(t *testing.T) {
	// Constructor hooks box by-value results before the host stores them,
	// in the same shape generated glue uses, so instance primitives can
	// assert the pointer type on their receiver.
	r := NewRegistry()
	r.RegisterClass("Go::Point", reflect.TypeOf(point{}))
	r.RegisterConstructor("Go::Point", func(recv any, args []any) any {
		v := point{X: args[0].(float64), Y: args[1].(float64)}
		return &v
	})
	r.RegisterPrimitive("Go::Point", "norm", func(recv any, args []any) any {
		p := recv.(*point)
		return p.X*p.X + p.Y*p.Y
	})

	obj, err := r.New("Go::Point", 3.0, 4.0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := r.Invoke("Go::Point", "norm", obj)
	if err != nil {
		t.Fatalf("Invoke on constructed object: %v", err)
	}
	if result.(float64) != 25.0 {
		t.Errorf("expected 25.0, got %v", result)
	}
}

func TestRegistry_InvokeUnknownSelector(t *testing.T) {
	r := newPointRegistry()
	_, err := r.Invoke("Go::Point", "scale:", &point{})
	if err == nil {
		t.Fatal("expected error for unknown selector")
	}
	if !strings.Contains(err.Error(), "does not understand") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRegistry_GoErrorUnwinds(t *testing.T) {
	r := newPointRegistry()
	result, err := r.Invoke("Go::Point", "divide:_:", nil, 10.0, 2.0)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if result.(float64) != 5.0 {
		t.Errorf("expected 5.0, got %v", result)
	}

	_, err = r.Invoke("Go::Point", "divide:_:", nil, 1.0, 0.0)
	if err == nil {
		t.Fatal("expected error from raised GoError")
	}
	if err.Error() != "division by zero" {
		t.Errorf("expected the original error text, got %q", err.Error())
	}
}

func TestRegistry_ForeignPanicPropagates(t *testing.T) {
	r := NewRegistry()
	r.RegisterPrimitive("Go::Boom", "boom", func(recv any, args []any) any {
		panic("not a GoError")
	})
	defer func() {
		if rec := recover(); rec == nil {
			t.Error("expected non-GoError panic to propagate")
		}
	}()
	r.Invoke("Go::Boom", "boom", nil)
}

func TestRegistry_LookupByType(t *testing.T) {
	r := newPointRegistry()
	c := r.LookupByType(reflect.TypeOf(point{}))
	if c == nil || c.Name != "Go::Point" {
		t.Fatal("expected type-keyed lookup to find Go::Point")
	}
}

func TestRegistry_RegistrationOrderIndependent(t *testing.T) {
	// Primitives may register before the class binding arrives.
	r := NewRegistry()
	r.RegisterPrimitive("Go::Late", "id", func(recv any, args []any) any { return recv })
	r.RegisterClass("Go::Late", reflect.TypeOf(point{}))

	c := r.LookupByType(reflect.TypeOf(point{}))
	if c == nil || c.Name != "Go::Late" {
		t.Fatal("expected late class registration to fill in the type")
	}
	if _, err := r.Invoke("Go::Late", "id", nil); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
}

func TestFieldGet(t *testing.T) {
	p := &point{X: 7}
	v, err := FieldGet(p, "X")
	if err != nil {
		t.Fatalf("FieldGet: %v", err)
	}
	if v.(float64) != 7 {
		t.Errorf("expected 7, got %v", v)
	}

	if _, err := FieldGet(p, "Z"); err == nil {
		t.Error("expected error for missing field")
	}
}

func TestFieldSet(t *testing.T) {
	p := &point{}
	if err := FieldSet(p, "Y", 2.5); err != nil {
		t.Fatalf("FieldSet: %v", err)
	}
	if p.Y != 2.5 {
		t.Errorf("expected 2.5, got %v", p.Y)
	}

	// Convertible values are converted.
	if err := FieldSet(p, "X", 3); err != nil {
		t.Fatalf("FieldSet with int: %v", err)
	}
	if p.X != 3.0 {
		t.Errorf("expected 3.0, got %v", p.X)
	}

	if err := FieldSet(*p, "X", 1.0); err == nil {
		t.Error("expected error for non-pointer target")
	}
}
