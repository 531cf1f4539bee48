package bindgen

import (
	"fmt"
	"go/token"
)

// DiagKind categorizes compile-time failures. The engine has no runtime
// error path of its own; every failure is one of these.
type DiagKind int

const (
	// StructuralError: the input matches none of the accepted declaration
	// shapes, or an attachment target is not a simple identifier.
	StructuralError DiagKind = iota
	// TypeError: a parameter, return type, or nested shape payload failed
	// the compatibility oracle.
	TypeError
	// SafetyError: a declaration with unchecked preconditions cannot be
	// re-exported directly.
	SafetyError
)

func (k DiagKind) String() string {
	switch k {
	case StructuralError:
		return "structural error"
	case TypeError:
		return "type error"
	case SafetyError:
		return "safety error"
	}
	return "error"
}

// Diagnostic is a build-failing message tied to a source position. A
// declaration that produces a Diagnostic yields no generated output.
type Diagnostic struct {
	Kind DiagKind
	Decl string
	Msg  string
	Pos  token.Position
}

func (d *Diagnostic) Error() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s: %s", d.Pos, d.Kind, d.Decl, d.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Decl, d.Msg)
}

func diagf(kind DiagKind, decl string, pos token.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Decl: decl, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
