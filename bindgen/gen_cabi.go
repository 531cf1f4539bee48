package bindgen

import (
	"fmt"
	"sort"
	"strings"
)

// vecSuffix maps slice element kinds onto the handoff helper suffixes.
var vecSuffix = map[string]string{
	"int8": "i8", "int16": "i16", "int32": "i32", "int64": "i64",
	"uint8": "u8", "byte": "u8", "uint16": "u16", "uint32": "u32", "uint64": "u64",
	"float32": "f32", "float64": "f64",
}

// CABIEmitter generates the C-ABI wrapper path: //export functions over
// cgo, paired C record typedefs for error/optional shapes, and owning
// handles for heap-boxed instances. One emitter instance covers one
// generated output file; the preamble accumulates as declarations are
// emitted.
type CABIEmitter struct {
	pkgAlias string
	reg      *SymbolRegistry

	typedefs    []string
	externs     map[string]string
	helperDecls map[string]string
	protos      []string

	usesHandles bool
	usesErrCode bool
	usesUnsafe  bool
	usesPkg     bool
}

// NewCABIEmitter returns an emitter writing wrappers that delegate to the
// wrapped package under the given import alias.
func NewCABIEmitter(pkgAlias string, reg *SymbolRegistry) *CABIEmitter {
	return &CABIEmitter{
		pkgAlias:    pkgAlias,
		reg:         reg,
		externs:     make(map[string]string),
		helperDecls: make(map[string]string),
	}
}

// Emit generates the wrapper artifacts for one checked declaration.
func (e *CABIEmitter) Emit(d *Decl) ([]GeneratedArtifact, error) {
	if diag := Check(d); diag != nil {
		return nil, diag
	}
	switch d.Kind {
	case DeclFunction:
		return e.emitFunction(d)
	case DeclDataRecord:
		return e.emitRecord(d)
	case DeclMethodCollection:
		return e.emitCollection(d)
	}
	return nil, diagf(StructuralError, d.Name, d.Pos,
		"applies only to functions, data records, or method collections")
}

// --- Functions ---

func (e *CABIEmitter) emitFunction(d *Decl) ([]GeneratedArtifact, error) {
	fn := d.Func
	// Free functions export under their unchanged name.
	symbol := fn.Name
	if err := e.reg.Claim(symbol, d.Name); err != nil {
		return nil, err
	}

	ret := ClassifyReturn(fn.Results)
	call := fmt.Sprintf("%s.%s(%s)", e.pkgAlias, fn.Name, e.callArgs(fn.Params))
	e.usesPkg = true

	var b strings.Builder
	switch ret.Kind {
	case DescErrorShape:
		e.writeErrorWrapper(&b, symbol, fn.Params, ret, call)
	case DescOptionalShape:
		e.writeOptionWrapper(&b, symbol, fn.Params, ret, call)
	default:
		e.writePassthrough(&b, symbol, fn.Params, ret, call)
	}
	return []GeneratedArtifact{{Symbol: symbol, Source: b.String()}}, nil
}

// writePassthrough emits the identity export: same name, same parameter
// list, delegating to the original body unchanged.
func (e *CABIEmitter) writePassthrough(b *strings.Builder, symbol string, params []Param, ret *TypeDescriptor, call string) {
	fmt.Fprintf(b, "//export %s\n", symbol)
	if ret.Kind == DescUnit {
		fmt.Fprintf(b, "func %s(%s) {\n", symbol, e.cgoParams(params))
		fmt.Fprintf(b, "\t%s\n", call)
		e.proto("void", symbol, params)
	} else {
		fmt.Fprintf(b, "func %s(%s) %s {\n", symbol, e.cgoParams(params), cgoType(ret))
		fmt.Fprintf(b, "\treturn %s\n", goToC(ret, call))
		e.proto(ret.CType, symbol, params)
	}
	b.WriteString("}\n")
}

// writeErrorWrapper emits the paired flag/slot record and the wrapper that
// fills it. The record is zero-initialized up front, so the inactive slot
// carries the all-zero bit pattern on every path.
func (e *CABIEmitter) writeErrorWrapper(b *strings.Builder, symbol string, params []Param, ret *TypeDescriptor, call string) {
	recName := ResultTypeName(symbol)
	e.typedefResult(recName, ret)

	fmt.Fprintf(b, "//export %s\n", symbol)
	fmt.Fprintf(b, "func %s(%s) C.%s {\n", symbol, e.cgoParams(params), recName)
	fmt.Fprintf(b, "\tvar out C.%s\n", recName)
	if ret.Ok.Kind == DescUnit {
		fmt.Fprintf(b, "\terr := %s\n", call)
	} else {
		fmt.Fprintf(b, "\tv, err := %s\n", call)
	}
	b.WriteString("\tif err != nil {\n")
	fmt.Fprintf(b, "\t\tout.err_value = %s\n", goToC(ret.Err, "errorCode(err)"))
	b.WriteString("\t\treturn out\n")
	b.WriteString("\t}\n")
	b.WriteString("\tout.is_ok = 1\n")
	if ret.Ok.Kind != DescUnit {
		fmt.Fprintf(b, "\tout.ok_value = %s\n", goToC(ret.Ok, "v"))
	}
	b.WriteString("\treturn out\n")
	b.WriteString("}\n")

	e.usesErrCode = true
	e.proto(recName, symbol, params)
}

// writeOptionWrapper emits the single-slot presence record, with the same
// zero-fill discipline for the absent case.
func (e *CABIEmitter) writeOptionWrapper(b *strings.Builder, symbol string, params []Param, ret *TypeDescriptor, call string) {
	recName := OptionTypeName(symbol)
	e.typedefOption(recName, ret)

	fmt.Fprintf(b, "//export %s\n", symbol)
	fmt.Fprintf(b, "func %s(%s) C.%s {\n", symbol, e.cgoParams(params), recName)
	fmt.Fprintf(b, "\tvar out C.%s\n", recName)
	if ret.Elem.Kind == DescUnit {
		fmt.Fprintf(b, "\tok := %s\n", call)
	} else {
		fmt.Fprintf(b, "\tv, ok := %s\n", call)
	}
	b.WriteString("\tif !ok {\n")
	b.WriteString("\t\treturn out\n")
	b.WriteString("\t}\n")
	b.WriteString("\tout.is_some = 1\n")
	if ret.Elem.Kind != DescUnit {
		fmt.Fprintf(b, "\tout.value = %s\n", goToC(ret.Elem, "v"))
	}
	b.WriteString("\treturn out\n")
	b.WriteString("}\n")

	e.proto(recName, symbol, params)
}

// --- Data records ---

func (e *CABIEmitter) emitRecord(d *Decl) ([]GeneratedArtifact, error) {
	rec := d.Record
	var artifacts []GeneratedArtifact

	// Fixed, declaration-order layout surface for the header.
	e.recordTypedef(rec)

	// Exactly one deallocation wrapper per record, null-guarded.
	freeSym := FreeSymbol(rec.Name)
	if err := e.reg.Claim(freeSym, d.Name); err != nil {
		return nil, err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "//export %s\n", freeSym)
	fmt.Fprintf(&b, "func %s(h C.uintptr_t) {\n", freeSym)
	b.WriteString("\tif h == 0 {\n")
	b.WriteString("\t\treturn\n")
	b.WriteString("\t}\n")
	b.WriteString("\tcgo.Handle(h).Delete()\n")
	b.WriteString("}\n")
	e.usesHandles = true
	e.protos = append(e.protos, fmt.Sprintf("void %s(uintptr_t handle);", freeSym))
	artifacts = append(artifacts, GeneratedArtifact{Symbol: freeSym, Source: b.String()})

	for _, f := range rec.Fields {
		desc := ClassifyType(f.Type, true)
		switch desc.Kind {
		case DescPrimitive, DescOpaquePointer, DescContainer:
			getter, err := e.emitGetter(d, rec, f, desc)
			if err != nil {
				return nil, err
			}
			setter, err := e.emitSetter(d, rec, f, desc)
			if err != nil {
				return nil, err
			}
			artifacts = append(artifacts, getter, setter)
		default:
			// Unsupported field types get no accessor and no diagnostic.
		}
	}
	return artifacts, nil
}

func (e *CABIEmitter) emitGetter(d *Decl, rec *DataRecord, f Field, desc *TypeDescriptor) (GeneratedArtifact, error) {
	symbol := GetterSymbol(rec.Name, f.Name)
	if err := e.reg.Claim(symbol, d.Name); err != nil {
		return GeneratedArtifact{}, err
	}
	e.usesHandles = true
	e.usesPkg = true

	var b strings.Builder
	fmt.Fprintf(&b, "//export %s\n", symbol)
	fmt.Fprintf(&b, "func %s(h C.uintptr_t) %s {\n", symbol, cgoType(desc))
	fmt.Fprintf(&b, "\tr := cgo.Handle(h).Value().(*%s.%s)\n", e.pkgAlias, rec.Name)
	field := "r." + f.Name

	switch desc.Container {
	case ContainerString:
		// Duplicate on read: the caller owns the copy.
		fmt.Fprintf(&b, "\treturn C.CString(%s)\n", field)
		e.accessorProto("char*", symbol, "")
	case ContainerSlice:
		helper := e.vecHelper(desc.Elem)
		fmt.Fprintf(&b, "\tif len(%s) == 0 {\n", field)
		fmt.Fprintf(&b, "\t\treturn C.CVec{}\n")
		b.WriteString("\t}\n")
		fmt.Fprintf(&b, "\treturn C.%s((*%s)(unsafe.Pointer(&%s[0])), C.size_t(len(%s)))\n",
			helper, cgoType(desc.Elem), field, field)
		e.usesUnsafe = true
		e.accessorProto("CVec", symbol, "")
	default:
		if desc.Kind == DescOpaquePointer {
			e.usesUnsafe = true
		}
		fmt.Fprintf(&b, "\treturn %s\n", goToC(desc, field))
		e.accessorProto(desc.CType, symbol, "")
	}
	b.WriteString("}\n")
	return GeneratedArtifact{Symbol: symbol, Source: b.String()}, nil
}

func (e *CABIEmitter) emitSetter(d *Decl, rec *DataRecord, f Field, desc *TypeDescriptor) (GeneratedArtifact, error) {
	symbol := SetterSymbol(rec.Name, f.Name)
	if err := e.reg.Claim(symbol, d.Name); err != nil {
		return GeneratedArtifact{}, err
	}
	e.usesHandles = true
	e.usesPkg = true

	var b strings.Builder
	fmt.Fprintf(&b, "//export %s\n", symbol)
	switch desc.Container {
	case ContainerString:
		fmt.Fprintf(&b, "func %s(h C.uintptr_t, value *C.char) {\n", symbol)
		fmt.Fprintf(&b, "\tr := cgo.Handle(h).Value().(*%s.%s)\n", e.pkgAlias, rec.Name)
		fmt.Fprintf(&b, "\tr.%s = C.GoString(value)\n", f.Name)
		e.accessorProto("void", symbol, "const char* value")
	case ContainerSlice:
		fmt.Fprintf(&b, "func %s(h C.uintptr_t, data *%s, n C.size_t) {\n", symbol, cgoType(desc.Elem))
		fmt.Fprintf(&b, "\tr := cgo.Handle(h).Value().(*%s.%s)\n", e.pkgAlias, rec.Name)
		fmt.Fprintf(&b, "\tr.%s = append([]%s(nil), unsafe.Slice((*%s)(unsafe.Pointer(data)), int(n))...)\n",
			f.Name, desc.Elem.GoName, desc.Elem.GoName)
		e.usesUnsafe = true
		e.accessorProto("void", symbol, fmt.Sprintf("const %s* data, size_t len", desc.Elem.CType))
	default:
		if desc.Kind == DescOpaquePointer {
			e.usesUnsafe = true
		}
		fmt.Fprintf(&b, "func %s(h C.uintptr_t, value %s) {\n", symbol, cgoType(desc))
		fmt.Fprintf(&b, "\tr := cgo.Handle(h).Value().(*%s.%s)\n", e.pkgAlias, rec.Name)
		fmt.Fprintf(&b, "\tr.%s = %s\n", f.Name, cToGo(desc, "value"))
		e.accessorProto("void", symbol, desc.CType+" value")
	}
	b.WriteString("}\n")
	return GeneratedArtifact{Symbol: symbol, Source: b.String()}, nil
}

// --- Method collections ---

func (e *CABIEmitter) emitCollection(d *Decl) ([]GeneratedArtifact, error) {
	col := d.Methods
	var artifacts []GeneratedArtifact
	for _, m := range col.Members {
		a, err := e.emitMember(d, col.Owner, m)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

// emitMember generates the Owner_member wrapper. The boxing decision lives
// here in one place: constructors heap-box, and so does any member whose
// return type equals the owner type, so every owner value crossing the
// boundary is released through the single Owner_free wrapper.
func (e *CABIEmitter) emitMember(d *Decl, owner string, m Method) (GeneratedArtifact, error) {
	symbol := MethodSymbol(owner, m.Name)
	if err := e.reg.Claim(symbol, d.Name); err != nil {
		return GeneratedArtifact{}, err
	}
	role := ClassifyMethod(owner, m)
	e.usesPkg = true

	var call string
	switch role {
	case RoleInstanceMethod:
		call = fmt.Sprintf("r.%s(%s)", m.Name, e.callArgs(m.Params))
	default:
		call = fmt.Sprintf("%s.%s(%s)", e.pkgAlias, m.Name, e.callArgs(m.Params))
	}

	params := e.cgoParams(m.Params)
	recv := ""
	if m.Receiver != RecvNone {
		// Shared receivers borrow read-only, exclusive ones mutably; both
		// resolve the handle only for the call's duration.
		recv = "h C.uintptr_t"
		if params != "" {
			recv += ", "
		}
		e.usesHandles = true
	}

	var b strings.Builder
	boxed := returnsOwner(owner, m.Results)
	switch {
	case boxed:
		fmt.Fprintf(&b, "//export %s\n", symbol)
		fmt.Fprintf(&b, "func %s(%s%s) C.uintptr_t {\n", symbol, recv, params)
		e.writeRecv(&b, owner, m)
		fmt.Fprintf(&b, "\tobj := %s\n", call)
		if m.Results[0].Kind == RefPointer {
			b.WriteString("\treturn C.uintptr_t(cgo.NewHandle(obj))\n")
		} else {
			b.WriteString("\treturn C.uintptr_t(cgo.NewHandle(&obj))\n")
		}
		b.WriteString("}\n")
		e.usesHandles = true
		e.protoHandle(symbol, m)
	default:
		ret := ClassifyReturn(m.Results)
		switch ret.Kind {
		case DescErrorShape:
			e.writeRecvWrapped(&b, symbol, ResultTypeName(symbol), recv, params, owner, m, func(bb *strings.Builder) {
				e.writeErrorBody(bb, symbol, ret, call)
			})
		case DescOptionalShape:
			e.writeRecvWrapped(&b, symbol, OptionTypeName(symbol), recv, params, owner, m, func(bb *strings.Builder) {
				e.writeOptionBody(bb, symbol, ret, call)
			})
		case DescUnit:
			fmt.Fprintf(&b, "//export %s\n", symbol)
			fmt.Fprintf(&b, "func %s(%s%s) {\n", symbol, recv, params)
			e.writeRecv(&b, owner, m)
			fmt.Fprintf(&b, "\t%s\n", call)
			b.WriteString("}\n")
			e.protoMember("void", symbol, m)
		default:
			fmt.Fprintf(&b, "//export %s\n", symbol)
			fmt.Fprintf(&b, "func %s(%s%s) %s {\n", symbol, recv, params, cgoType(ret))
			e.writeRecv(&b, owner, m)
			fmt.Fprintf(&b, "\treturn %s\n", goToC(ret, call))
			b.WriteString("}\n")
			e.protoMember(ret.CType, symbol, m)
		}
	}
	return GeneratedArtifact{Symbol: symbol, Source: b.String()}, nil
}

// writeRecv emits the handle resolution line for instance members.
func (e *CABIEmitter) writeRecv(b *strings.Builder, owner string, m Method) {
	if m.Receiver == RecvNone {
		return
	}
	fmt.Fprintf(b, "\tr := cgo.Handle(h).Value().(*%s.%s)\n", e.pkgAlias, owner)
}

// writeRecvWrapped emits a member wrapper whose body is an error/optional
// record fill, sharing the function-path record machinery.
func (e *CABIEmitter) writeRecvWrapped(b *strings.Builder, symbol, recName, recv, params, owner string, m Method, body func(*strings.Builder)) {
	fmt.Fprintf(b, "//export %s\n", symbol)
	fmt.Fprintf(b, "func %s(%s%s) C.%s {\n", symbol, recv, params, recName)
	e.writeRecv(b, owner, m)
	body(b)
	b.WriteString("}\n")
	e.protoMember(recName, symbol, m)
}

func (e *CABIEmitter) writeErrorBody(b *strings.Builder, symbol string, ret *TypeDescriptor, call string) {
	recName := ResultTypeName(symbol)
	e.typedefResult(recName, ret)
	fmt.Fprintf(b, "\tvar out C.%s\n", recName)
	if ret.Ok.Kind == DescUnit {
		fmt.Fprintf(b, "\terr := %s\n", call)
	} else {
		fmt.Fprintf(b, "\tv, err := %s\n", call)
	}
	b.WriteString("\tif err != nil {\n")
	fmt.Fprintf(b, "\t\tout.err_value = %s\n", goToC(ret.Err, "errorCode(err)"))
	b.WriteString("\t\treturn out\n")
	b.WriteString("\t}\n")
	b.WriteString("\tout.is_ok = 1\n")
	if ret.Ok.Kind != DescUnit {
		fmt.Fprintf(b, "\tout.ok_value = %s\n", goToC(ret.Ok, "v"))
	}
	b.WriteString("\treturn out\n")
	e.usesErrCode = true
}

func (e *CABIEmitter) writeOptionBody(b *strings.Builder, symbol string, ret *TypeDescriptor, call string) {
	recName := OptionTypeName(symbol)
	e.typedefOption(recName, ret)
	fmt.Fprintf(b, "\tvar out C.%s\n", recName)
	if ret.Elem.Kind == DescUnit {
		fmt.Fprintf(b, "\tok := %s\n", call)
	} else {
		fmt.Fprintf(b, "\tv, ok := %s\n", call)
	}
	b.WriteString("\tif !ok {\n")
	b.WriteString("\t\treturn out\n")
	b.WriteString("\t}\n")
	b.WriteString("\tout.is_some = 1\n")
	if ret.Elem.Kind != DescUnit {
		fmt.Fprintf(b, "\tout.value = %s\n", goToC(ret.Elem, "v"))
	}
	b.WriteString("\treturn out\n")
}

// --- Preamble and assembly helpers ---

// typedefResult records the C layout of an error-shape record: flag byte,
// success slot, failure slot, in that field order.
func (e *CABIEmitter) typedefResult(name string, ret *TypeDescriptor) {
	var fields []string
	fields = append(fields, "uint8_t is_ok;")
	if ret.Ok.Kind != DescUnit {
		fields = append(fields, ret.Ok.CType+" ok_value;")
	}
	fields = append(fields, ret.Err.CType+" err_value;")
	e.typedefs = append(e.typedefs,
		fmt.Sprintf("typedef struct { %s } %s;", strings.Join(fields, " "), name))
}

func (e *CABIEmitter) typedefOption(name string, ret *TypeDescriptor) {
	var fields []string
	fields = append(fields, "uint8_t is_some;")
	if ret.Elem.Kind != DescUnit {
		fields = append(fields, ret.Elem.CType+" value;")
	}
	e.typedefs = append(e.typedefs,
		fmt.Sprintf("typedef struct { %s } %s;", strings.Join(fields, " "), name))
}

// recordTypedef pins the record's layout surface: declaration order, no
// reordering, C-compatible representation.
func (e *CABIEmitter) recordTypedef(rec *DataRecord) {
	var fields []string
	for _, f := range rec.Fields {
		desc := ClassifyType(f.Type, true)
		if desc.Kind != DescPrimitive && desc.Kind != DescOpaquePointer {
			continue
		}
		fields = append(fields, fmt.Sprintf("%s %s;", desc.CType, lowerSnake(f.Name)))
	}
	e.typedefs = append(e.typedefs,
		fmt.Sprintf("typedef struct { %s } %s;", strings.Join(fields, " "), rec.Name))
}

// vecHelper registers the extern declaration of the handoff helper for an
// element kind and returns its name. The helpers themselves live in the
// external runtime library; generated code only calls the copy-in form,
// but the header also declares the drop the foreign caller pairs it with.
func (e *CABIEmitter) vecHelper(elem *TypeDescriptor) string {
	suffix := vecSuffix[elem.GoName]
	name := "bridgen_vec_copy_" + suffix
	e.externs[name] = fmt.Sprintf("extern CVec %s(const %s* data, size_t len);", name, elem.CType)
	e.helperDecls["bridgen_vec_drop_"+suffix] = fmt.Sprintf("void bridgen_vec_drop_%s(CVec v);", suffix)
	return name
}

// Preamble assembles the cgo comment block: includes, record typedefs, and
// extern helper declarations, in emission order.
func (e *CABIEmitter) Preamble() string {
	var b strings.Builder
	b.WriteString("#include <stdint.h>\n")
	b.WriteString("#include <stdbool.h>\n")
	b.WriteString("#include <stddef.h>\n")
	if len(e.externs) > 0 {
		b.WriteString("\ntypedef struct { void* ptr; size_t len; size_t cap; } CVec;\n")
	}
	if len(e.typedefs) > 0 {
		b.WriteString("\n")
		for _, td := range e.typedefs {
			b.WriteString(td + "\n")
		}
	}
	if len(e.externs) > 0 {
		b.WriteString("\n")
		names := make([]string, 0, len(e.externs))
		for n := range e.externs {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			b.WriteString(e.externs[n] + "\n")
		}
	}
	return b.String()
}

// Header returns the C header contents: typedefs plus one prototype per
// exported wrapper.
func (e *CABIEmitter) Header() string {
	var b strings.Builder
	b.WriteString("#include <stdint.h>\n#include <stdbool.h>\n#include <stddef.h>\n\n")
	b.WriteString("typedef struct { void* ptr; size_t len; size_t cap; } CVec;\n\n")
	for _, td := range e.typedefs {
		b.WriteString(td + "\n")
	}
	if len(e.helperDecls) > 0 {
		b.WriteString("\n")
		names := make([]string, 0, len(e.helperDecls))
		for n := range e.helperDecls {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			b.WriteString(e.helperDecls[n] + "\n")
		}
	}
	b.WriteString("\n")
	for _, p := range e.protos {
		b.WriteString(p + "\n")
	}
	return b.String()
}

// UsesHandles, UsesErrorCode, and UsesUnsafe drive the generated file's
// import block.
func (e *CABIEmitter) UsesHandles() bool   { return e.usesHandles }
func (e *CABIEmitter) UsesErrorCode() bool { return e.usesErrCode }
func (e *CABIEmitter) UsesUnsafe() bool    { return e.usesUnsafe }
func (e *CABIEmitter) UsesPackage() bool   { return e.usesPkg }

// --- small shared helpers ---

func (e *CABIEmitter) cgoParams(params []Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		desc := ClassifyType(p.Type, false)
		t := cgoType(desc)
		if desc.Kind == DescOpaquePointer {
			e.usesUnsafe = true
		}
		parts = append(parts, p.Name+" "+t)
	}
	return strings.Join(parts, ", ")
}

func (e *CABIEmitter) callArgs(params []Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, cToGo(ClassifyType(p.Type, false), p.Name))
	}
	return strings.Join(parts, ", ")
}

// accessorProto records a header prototype for a handle-receiving accessor.
func (e *CABIEmitter) accessorProto(cRet, symbol, extra string) {
	args := "uintptr_t handle"
	if extra != "" {
		args += ", " + extra
	}
	e.protos = append(e.protos, fmt.Sprintf("%s %s(%s);", cRet, symbol, args))
}

func (e *CABIEmitter) proto(cRet, symbol string, params []Param) {
	parts := make([]string, 0, len(params)+1)
	for _, p := range params {
		parts = append(parts, ClassifyType(p.Type, false).CType+" "+lowerSnake(p.Name))
	}
	e.protos = append(e.protos, fmt.Sprintf("%s %s(%s);", cRet, symbol, strings.Join(parts, ", ")))
}

func (e *CABIEmitter) protoMember(cRet, symbol string, m Method) {
	parts := make([]string, 0, len(m.Params)+1)
	if m.Receiver != RecvNone {
		if m.Receiver == RecvShared {
			parts = append(parts, "uintptr_t handle /* read-only */")
		} else {
			parts = append(parts, "uintptr_t handle")
		}
	}
	for _, p := range m.Params {
		parts = append(parts, ClassifyType(p.Type, false).CType+" "+lowerSnake(p.Name))
	}
	e.protos = append(e.protos, fmt.Sprintf("%s %s(%s);", cRet, symbol, strings.Join(parts, ", ")))
}

func (e *CABIEmitter) protoHandle(symbol string, m Method) {
	e.protoMember("uintptr_t", symbol, m)
}

func cgoType(d *TypeDescriptor) string {
	if d.Kind == DescOpaquePointer {
		return "unsafe.Pointer"
	}
	if d.Container == ContainerString {
		return "*C.char"
	}
	if d.Container == ContainerSlice {
		return "C.CVec"
	}
	return d.CgoName
}

func goToC(d *TypeDescriptor, expr string) string {
	if d.Kind == DescOpaquePointer {
		return expr
	}
	return fmt.Sprintf("%s(%s)", d.CgoName, expr)
}

func cToGo(d *TypeDescriptor, expr string) string {
	if d.Kind == DescOpaquePointer {
		return expr
	}
	return fmt.Sprintf("%s(%s)", d.GoName, expr)
}
