package bindgen

// DescKind classifies a type for foreign-boundary purposes.
type DescKind int

const (
	DescPrimitive DescKind = iota
	DescOpaquePointer
	DescUnit
	DescErrorShape
	DescOptionalShape
	DescContainer
	DescUnsupported
)

func (k DescKind) String() string {
	switch k {
	case DescPrimitive:
		return "primitive"
	case DescOpaquePointer:
		return "opaque pointer"
	case DescUnit:
		return "unit"
	case DescErrorShape:
		return "error shape"
	case DescOptionalShape:
		return "optional shape"
	case DescContainer:
		return "container"
	}
	return "unsupported"
}

// ContainerKind distinguishes the allow-listed duplicate-on-read containers.
type ContainerKind int

const (
	ContainerNone ContainerKind = iota
	ContainerString
	ContainerSlice // []K for fixed-width numeric K
)

// TypeDescriptor is the oracle's classification result. Descriptors are
// derived per occurrence and never stored across declarations.
type TypeDescriptor struct {
	Kind      DescKind
	GoName    string // Go spelling ("float64", "int32", ...)
	CType     string // C declaration type ("double", "int32_t", ...)
	CgoName   string // cgo spelling ("C.double", ...)
	Container ContainerKind
	Elem      *TypeDescriptor // slice element or optional payload
	Ok, Err   *TypeDescriptor // error-shape slots
	Reason    string          // set when Kind == DescUnsupported
}

// primInfo maps one Go primitive onto its C and cgo representations.
type primInfo struct {
	c   string
	cgo string
}

// primitives is the pass-through allow-list: fixed-width integers,
// floating point, bool, rune, and the platform-sized int/uint.
var primitives = map[string]primInfo{
	"int8":    {"int8_t", "C.int8_t"},
	"int16":   {"int16_t", "C.int16_t"},
	"int32":   {"int32_t", "C.int32_t"},
	"int64":   {"int64_t", "C.int64_t"},
	"uint8":   {"uint8_t", "C.uint8_t"},
	"byte":    {"uint8_t", "C.uint8_t"},
	"uint16":  {"uint16_t", "C.uint16_t"},
	"uint32":  {"uint32_t", "C.uint32_t"},
	"uint64":  {"uint64_t", "C.uint64_t"},
	"int":     {"intptr_t", "C.intptr_t"},
	"uint":    {"uintptr_t", "C.uintptr_t"},
	"uintptr": {"uintptr_t", "C.uintptr_t"},
	"float32": {"float", "C.float"},
	"float64": {"double", "C.double"},
	"bool":    {"bool", "C.bool"},
	"rune":    {"int32_t", "C.int32_t"},
}

// numericElems are the slice element kinds the vec handoff helpers cover.
var numericElems = map[string]bool{
	"int8": true, "int16": true, "int32": true, "int64": true,
	"uint8": true, "byte": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true,
}

func primitive(goName string) *TypeDescriptor {
	info := primitives[goName]
	return &TypeDescriptor{Kind: DescPrimitive, GoName: goName, CType: info.c, CgoName: info.cgo}
}

func unsupported(ref TypeRef, reason string) *TypeDescriptor {
	return &TypeDescriptor{Kind: DescUnsupported, GoName: ref.String(), Reason: reason}
}

// errCodeDesc is the failure slot of every error shape: a stable int32
// code extracted from the Go error (Code() int32, or -1).
func errCodeDesc() *TypeDescriptor { return primitive("int32") }

// ClassifyType classifies a single type reference. Containers (string,
// numeric slices) are accepted only in data-record field position; inField
// gates that asymmetry.
func ClassifyType(ref TypeRef, inField bool) *TypeDescriptor {
	switch ref.Kind {
	case RefNamed:
		if _, ok := primitives[ref.Name]; ok {
			return primitive(ref.Name)
		}
		switch ref.Name {
		case "unsafe.Pointer":
			return &TypeDescriptor{Kind: DescOpaquePointer, GoName: ref.Name, CType: "void*", CgoName: "unsafe.Pointer"}
		case "string":
			if inField {
				return &TypeDescriptor{Kind: DescContainer, GoName: "string", CType: "char*", Container: ContainerString}
			}
			return unsupported(ref, "string is only accepted as a data-record field")
		case "error":
			return unsupported(ref, "error is only accepted as the final result of an error shape")
		}
		return unsupported(ref, "not representable across the C boundary")
	case RefPointer:
		// Raw pointers would be opaque, but pointers to named records are
		// handled by the owner-type rule, not the oracle.
		return unsupported(ref, "pointer types cross the boundary as owning handles, not raw pointers")
	case RefSlice:
		if ref.Elem.Kind == RefNamed && numericElems[ref.Elem.Name] {
			if inField {
				return &TypeDescriptor{
					Kind:      DescContainer,
					GoName:    ref.String(),
					CType:     "CVec",
					Container: ContainerSlice,
					Elem:      primitive(ref.Elem.Name),
				}
			}
			return unsupported(ref, "slices are only accepted as data-record fields")
		}
		return unsupported(ref, "only fixed-width numeric element slices are supported")
	}
	return unsupported(ref, "unrecognized type form")
}

// ClassifyReturn classifies a result list. Two-result forms map onto the
// boundary shapes: (T, error) is an error shape, (T, bool) an optional
// shape. Nested payloads must classify primitive or unit; the shapes'
// binary layout has to be fully self-contained and zero-fillable, so the
// container types legal as plain fields are rejected here.
func ClassifyReturn(results []TypeRef) *TypeDescriptor {
	switch len(results) {
	case 0:
		return &TypeDescriptor{Kind: DescUnit, CType: "void"}
	case 1:
		// A sole error result is the unit-payload error shape: flag plus
		// failure slot, no success slot.
		if results[0].Kind == RefNamed && results[0].Name == "error" {
			return &TypeDescriptor{
				Kind: DescErrorShape,
				Ok:   &TypeDescriptor{Kind: DescUnit, CType: "void"},
				Err:  errCodeDesc(),
			}
		}
		return ClassifyType(results[0], false)
	case 2:
		last := results[1]
		if last.Kind != RefNamed {
			break
		}
		switch last.Name {
		case "error":
			ok := payload(results[0])
			if ok.Kind == DescUnsupported {
				return ok
			}
			return &TypeDescriptor{Kind: DescErrorShape, Ok: ok, Err: errCodeDesc()}
		case "bool":
			inner := payload(results[0])
			if inner.Kind == DescUnsupported {
				return inner
			}
			return &TypeDescriptor{Kind: DescOptionalShape, Elem: inner}
		}
	}
	return unsupported(results[0], "unsupported result arity or final result type")
}

// payload classifies a nested error/optional slot, restricted to primitive
// and unit payloads.
func payload(ref TypeRef) *TypeDescriptor {
	d := ClassifyType(ref, false)
	switch d.Kind {
	case DescPrimitive, DescUnit:
		return d
	case DescUnsupported:
		return d
	}
	return unsupported(ref, "error/optional payloads must be primitive or unit")
}
