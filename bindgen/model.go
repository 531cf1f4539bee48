// Package bindgen classifies annotated Go declarations and generates
// FFI wrapper code: a C-ABI surface via cgo, and optionally a dynamic-host
// extension surface from the same declarations.
package bindgen

import "go/token"

// DeclKind tags the accepted declaration shapes.
type DeclKind int

const (
	DeclFunction DeclKind = iota
	DeclDataRecord
	DeclMethodCollection
)

func (k DeclKind) String() string {
	switch k {
	case DeclFunction:
		return "function"
	case DeclDataRecord:
		return "data record"
	case DeclMethodCollection:
		return "method collection"
	}
	return "unknown"
}

// ReceiverKind describes how a member accesses its owner instance.
type ReceiverKind int

const (
	RecvNone      ReceiverKind = iota // attached package-level function
	RecvShared                        // value receiver: read-only access
	RecvExclusive                     // pointer receiver: mutable access
)

// Decl is the discriminated-union input to the engine. Exactly one of
// Func, Record, or Methods is set, matching Kind.
type Decl struct {
	Kind    DeclKind
	Name    string
	Unsafe  bool // declared with the `unsafe` directive option
	Pos     token.Position
	Func    *Function
	Record  *DataRecord
	Methods *MethodCollection
}

// Function is a package-level function declaration.
type Function struct {
	Name    string
	Params  []Param
	Results []TypeRef
}

// DataRecord is an exported struct type with its fields in declaration order.
type DataRecord struct {
	Name   string
	Fields []Field
}

// MethodCollection groups the members attached to one owner record:
// its methods plus annotated package-level functions bound to it.
type MethodCollection struct {
	Owner   string
	Members []Method
}

// Method is one member of a MethodCollection.
type Method struct {
	Name     string
	Receiver ReceiverKind
	Unsafe   bool
	Params   []Param
	Results  []TypeRef
	Pos      token.Position
}

// Param is a named parameter.
type Param struct {
	Name string
	Type TypeRef
}

// Field is one struct field, in declaration order.
type Field struct {
	Name string
	Type TypeRef
}

// RefKind discriminates the syntactic forms a TypeRef can take.
type RefKind int

const (
	RefNamed   RefKind = iota // identifier or qualified name ("int32", "error", "Point")
	RefPointer                // *Elem
	RefSlice                  // []Elem
)

// TypeRef is a syntactic type reference, derived from the source once and
// classified by the oracle per occurrence.
type TypeRef struct {
	Kind RefKind
	Name string
	Elem *TypeRef
}

// Named returns a TypeRef for a plain identifier.
func Named(name string) TypeRef { return TypeRef{Kind: RefNamed, Name: name} }

// PointerTo returns a TypeRef for *elem.
func PointerTo(elem TypeRef) TypeRef { return TypeRef{Kind: RefPointer, Elem: &elem} }

// SliceOf returns a TypeRef for []elem.
func SliceOf(elem TypeRef) TypeRef { return TypeRef{Kind: RefSlice, Elem: &elem} }

// String renders the reference in Go syntax.
func (r TypeRef) String() string {
	switch r.Kind {
	case RefPointer:
		return "*" + r.Elem.String()
	case RefSlice:
		return "[]" + r.Elem.String()
	}
	return r.Name
}

// IsOwner reports whether the reference names the given owner type,
// directly or through one level of pointer.
func (r TypeRef) IsOwner(owner string) bool {
	if r.Kind == RefPointer {
		return r.Elem.Kind == RefNamed && r.Elem.Name == owner
	}
	return r.Kind == RefNamed && r.Name == owner
}

// GeneratedArtifact is one emitted wrapper: the exported symbol plus its
// generated source text. Artifacts are emitted once and never mutated.
type GeneratedArtifact struct {
	Symbol string
	Source string
}
