package bindgen

import "go/token"

// MethodRole is the constructor-classifier verdict for one member.
type MethodRole int

const (
	RoleConstructor MethodRole = iota
	RoleStaticFunction
	RoleInstanceMethod
)

func (r MethodRole) String() string {
	switch r {
	case RoleConstructor:
		return "constructor"
	case RoleStaticFunction:
		return "static function"
	}
	return "instance method"
}

// ClassifyMethod decides Constructor / StaticFunction / InstanceMethod.
// A present receiver disqualifies constructor status regardless of name or
// return type: a builder method that mutates and returns the owner (or a
// plain value) must never be treated as a second constructor.
func ClassifyMethod(owner string, m Method) MethodRole {
	if m.Receiver != RecvNone {
		return RoleInstanceMethod
	}
	if MemberName(owner, m.Name) == "new" || returnsOwner(owner, m.Results) {
		return RoleConstructor
	}
	return RoleStaticFunction
}

// returnsOwner reports whether the single result structurally equals the
// owner type (by value or one pointer deep).
func returnsOwner(owner string, results []TypeRef) bool {
	return len(results) == 1 && results[0].IsOwner(owner)
}

// Check validates a declaration against the accepted shapes, in fixed
// precedence: function, then data record, then method collection. It
// returns the first build-failing diagnostic, or nil. A failing
// declaration produces no generated output.
func Check(d *Decl) *Diagnostic {
	switch {
	case d.Kind == DeclFunction && d.Func != nil:
		return checkFunction(d)
	case d.Kind == DeclDataRecord && d.Record != nil:
		return checkRecord(d)
	case d.Kind == DeclMethodCollection && d.Methods != nil:
		return checkCollection(d)
	}
	return diagf(StructuralError, d.Name, d.Pos,
		"applies only to functions, data records, or method collections")
}

func checkFunction(d *Decl) *Diagnostic {
	if d.Unsafe {
		return diagf(SafetyError, d.Name, d.Pos,
			"declarations with unchecked preconditions cannot be re-exported directly")
	}
	if diag := checkSignature(d.Name, d.Pos, d.Func.Params, d.Func.Results, ""); diag != nil {
		return diag
	}
	return nil
}

func checkRecord(d *Decl) *Diagnostic {
	// Unsupported field types are skipped at emission, not rejected here.
	return nil
}

func checkCollection(d *Decl) *Diagnostic {
	owner := d.Methods.Owner
	for _, m := range d.Methods.Members {
		if m.Unsafe {
			return diagf(SafetyError, owner+"."+m.Name, m.Pos,
				"declarations with unchecked preconditions cannot be re-exported directly")
		}
		if diag := checkSignature(owner+"."+m.Name, m.Pos, m.Params, m.Results, owner); diag != nil {
			return diag
		}
	}
	return nil
}

// checkSignature runs every parameter and the return shape through the
// oracle. An owner-typed single result is legal inside a collection; it
// crosses the boundary heap-boxed.
func checkSignature(name string, pos token.Position, params []Param, results []TypeRef, owner string) *Diagnostic {
	for _, p := range params {
		desc := ClassifyType(p.Type, false)
		if desc.Kind == DescUnsupported || desc.Kind == DescContainer {
			return diagf(TypeError, name, pos,
				"parameter %s has unsupported type %s: %s", p.Name, p.Type, reason(desc))
		}
	}
	if owner != "" && returnsOwner(owner, results) {
		return nil
	}
	ret := ClassifyReturn(results)
	if ret.Kind == DescUnsupported || ret.Kind == DescContainer {
		return diagf(TypeError, name, pos,
			"unsupported return type: %s", reason(ret))
	}
	return nil
}

func reason(d *TypeDescriptor) string {
	if d.Reason != "" {
		return d.Reason
	}
	return "not representable across the C boundary"
}
