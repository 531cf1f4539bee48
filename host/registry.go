// Package host defines the native-extension registration protocol that
// generated dynamic-host bindings link against: classes keyed by qualified
// name, selector-addressed primitives, and a designated constructor hook
// per class. A scripting runtime embeds a Registry; generated
// RegisterPrimitives functions populate it.
package host

import (
	"fmt"
	"reflect"
	"sync"
)

// PrimitiveFunc is the native entry form: receiver and arguments in, one
// result out. Failures surface as GoError panics, which the host unwinds
// into its own error values; absent optionals return nil.
type PrimitiveFunc func(recv any, args []any) any

// GoError carries a Go error across the extension boundary.
type GoError struct {
	Err error
}

func (e GoError) Error() string { return e.Err.Error() }

// Raise panics with err wrapped as a GoError. Generated code calls this on
// every non-nil error from a wrapped body.
func Raise(err error) {
	panic(GoError{Err: err})
}

// ClassInfo describes one registered class and its Go backing type.
type ClassInfo struct {
	Name        string
	GoType      reflect.Type
	Constructor PrimitiveFunc
	primitives  map[string]PrimitiveFunc
}

// Registry maps class names to Go types and selectors to primitives.
// Safe for concurrent registration and lookup.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*ClassInfo
	byType  map[reflect.Type]*ClassInfo
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		classes: make(map[string]*ClassInfo),
		byType:  make(map[reflect.Type]*ClassInfo),
	}
}

// RegisterClass binds a class name to its backing Go type. Registering the
// same name twice returns the existing class, so glue files can be loaded
// in any order.
func (r *Registry) RegisterClass(name string, goType reflect.Type) *ClassInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.classes[name]; ok {
		if c.GoType == nil && goType != nil {
			c.GoType = goType
			r.byType[goType] = c
		}
		return c
	}
	c := &ClassInfo{
		Name:       name,
		GoType:     goType,
		primitives: make(map[string]PrimitiveFunc),
	}
	r.classes[name] = c
	if goType != nil {
		r.byType[goType] = c
	}
	return c
}

// RegisterConstructor installs the class's designated constructor hook.
func (r *Registry) RegisterConstructor(name string, fn PrimitiveFunc) {
	c := r.RegisterClass(name, nil)
	r.mu.Lock()
	c.Constructor = fn
	r.mu.Unlock()
}

// RegisterPrimitive installs a selector-addressed primitive on a class.
func (r *Registry) RegisterPrimitive(class, selector string, fn PrimitiveFunc) {
	c := r.RegisterClass(class, nil)
	r.mu.Lock()
	c.primitives[selector] = fn
	r.mu.Unlock()
}

// Lookup returns the class info for a name, or nil.
func (r *Registry) Lookup(name string) *ClassInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classes[name]
}

// LookupByType returns the class registered for a Go type, or nil.
func (r *Registry) LookupByType(t reflect.Type) *ClassInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byType[t]
}

// New invokes the class's constructor hook.
func (r *Registry) New(class string, args ...any) (result any, err error) {
	c := r.Lookup(class)
	if c == nil || c.Constructor == nil {
		return nil, fmt.Errorf("class %s has no constructor", class)
	}
	return r.call(c.Constructor, nil, args)
}

// Invoke dispatches a selector on a class, recovering GoError panics into
// ordinary errors the host can surface natively.
func (r *Registry) Invoke(class, selector string, recv any, args ...any) (result any, err error) {
	c := r.Lookup(class)
	if c == nil {
		return nil, fmt.Errorf("unknown class %s", class)
	}
	r.mu.RLock()
	fn := c.primitives[selector]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("class %s does not understand %s", class, selector)
	}
	return r.call(fn, recv, args)
}

func (r *Registry) call(fn PrimitiveFunc, recv any, args []any) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if ge, ok := rec.(GoError); ok {
				err = ge.Err
				return
			}
			panic(rec)
		}
	}()
	return fn(recv, args), nil
}

// FieldGet reads a struct field by name through reflection. Hosts map
// record fields directly instead of going through generated accessors.
func FieldGet(obj any, field string) (any, error) {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("field access on non-struct %T", obj)
	}
	f := v.FieldByName(field)
	if !f.IsValid() {
		return nil, fmt.Errorf("%T has no field %s", obj, field)
	}
	return f.Interface(), nil
}

// FieldSet writes a struct field by name; obj must be a pointer.
func FieldSet(obj any, field string, value any) error {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Pointer {
		return fmt.Errorf("field write requires a pointer, got %T", obj)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("field write on non-struct %T", obj)
	}
	f := v.FieldByName(field)
	if !f.IsValid() || !f.CanSet() {
		return fmt.Errorf("%T has no settable field %s", obj, field)
	}
	val := reflect.ValueOf(value)
	if !val.Type().AssignableTo(f.Type()) {
		if !val.Type().ConvertibleTo(f.Type()) {
			return fmt.Errorf("cannot assign %T to field %s", value, field)
		}
		val = val.Convert(f.Type())
	}
	f.Set(val)
	return nil
}
