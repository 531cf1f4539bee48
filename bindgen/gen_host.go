package bindgen

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/iancoleman/strcase"
)

// HostEmitter generates the dynamic-host extension path: a Go glue file
// whose RegisterPrimitives function populates a host.Registry. The host
// protocol takes error and optional shapes natively (errors unwind as
// GoError, absent values are nil) and maps record fields directly, so no
// flag/zero-fill reshaping happens on this path.
type HostEmitter struct {
	wrappedImport string // import path of the package being wrapped
	hostImport    string // import path of the host protocol package
	namespace     string // e.g. "Go"
	pkgClass      string // class that receives free functions

	file *jen.File
	body []jen.Code
}

// NewHostEmitter returns an emitter producing one glue file named genPkg,
// wrapping the package at wrappedImport against the host protocol at
// hostImport.
func NewHostEmitter(genPkg, wrappedImport, pkgName, hostImport, namespace string) *HostEmitter {
	f := jen.NewFile(genPkg)
	f.HeaderComment("Code generated by bridgen. DO NOT EDIT.")
	f.ImportAlias(wrappedImport, "pkg")
	f.ImportName(hostImport, "host")
	return &HostEmitter{
		wrappedImport: wrappedImport,
		hostImport:    hostImport,
		namespace:     namespace,
		pkgClass:      HostClassName(namespace, strcase.ToCamel(pkgName)),
		file:          f,
	}
}

// Emit appends the registration statements for one checked declaration.
func (h *HostEmitter) Emit(d *Decl) error {
	if diag := Check(d); diag != nil {
		return diag
	}
	switch d.Kind {
	case DeclFunction:
		h.emitFunction(d.Func)
	case DeclDataRecord:
		h.emitRecord(d.Record)
	case DeclMethodCollection:
		h.emitCollection(d.Methods)
	}
	return nil
}

// Render assembles the generated file.
func (h *HostEmitter) Render() (string, error) {
	h.file.Comment("RegisterPrimitives installs every generated binding into the host registry.")
	h.file.Func().Id("RegisterPrimitives").Params(jen.Id("r").Op("*").Qual(h.hostImport, "Registry")).Block(h.body...)
	var buf bytes.Buffer
	if err := h.file.Render(&buf); err != nil {
		return "", fmt.Errorf("rendering host glue: %w", err)
	}
	return buf.String(), nil
}

func (h *HostEmitter) emitFunction(fn *Function) {
	sel := Selector(fn.Name, len(fn.Params))
	h.body = append(h.body, jen.Id("r").Dot("RegisterPrimitive").Call(
		jen.Lit(h.pkgClass), jen.Lit(sel),
		h.primitive(fn.Params, fn.Results, h.callFree(fn.Name, fn.Params), false),
	))
}

// emitRecord maps the record's fields directly: the host reflects over the
// backing type, so only the class binding is registered.
func (h *HostEmitter) emitRecord(rec *DataRecord) {
	class := HostClassName(h.namespace, rec.Name)
	h.body = append(h.body, jen.Id("r").Dot("RegisterClass").Call(
		jen.Lit(class),
		jen.Qual("reflect", "TypeOf").Call(jen.Qual(h.wrappedImport, rec.Name).Values()),
	))
}

func (h *HostEmitter) emitCollection(col *MethodCollection) {
	class := HostClassName(h.namespace, col.Owner)
	for _, m := range col.Members {
		// Owner values leave as pointers: every instance primitive asserts
		// *pkg.Owner on its receiver, so a by-value result has to be boxed
		// before the host stores it.
		ownerValue := returnsOwner(col.Owner, m.Results) && m.Results[0].Kind == RefNamed

		// Only the receiver-less member literally named "new" becomes the
		// protocol's designated constructor hook.
		if m.Receiver == RecvNone && MemberName(col.Owner, m.Name) == "new" {
			h.body = append(h.body, jen.Id("r").Dot("RegisterConstructor").Call(
				jen.Lit(class),
				h.primitive(m.Params, m.Results, h.callFree(m.Name, m.Params), ownerValue),
			))
			continue
		}

		sel := Selector(m.Name, len(m.Params))
		var call *jen.Statement
		if m.Receiver == RecvNone {
			call = h.callFree(m.Name, m.Params)
		} else {
			call = jen.Id("recv").Assert(jen.Op("*").Qual(h.wrappedImport, col.Owner)).
				Dot(m.Name).Call(h.argList(m.Params)...)
		}
		h.body = append(h.body, jen.Id("r").Dot("RegisterPrimitive").Call(
			jen.Lit(class), jen.Lit(sel),
			h.primitive(m.Params, m.Results, call, ownerValue),
		))
	}
}

// callFree builds `pkg.Name(args...)`.
func (h *HostEmitter) callFree(name string, params []Param) *jen.Statement {
	return jen.Qual(h.wrappedImport, name).Call(h.argList(params)...)
}

// argList asserts each host argument to the parameter's Go type.
func (h *HostEmitter) argList(params []Param) []jen.Code {
	args := make([]jen.Code, 0, len(params))
	for i, p := range params {
		args = append(args, jen.Id("args").Index(jen.Lit(i)).Assert(h.goType(p.Type)))
	}
	return args
}

func (h *HostEmitter) goType(ref TypeRef) jen.Code {
	switch ref.Kind {
	case RefPointer:
		return jen.Op("*").Add(h.goType(*ref.Elem))
	case RefSlice:
		return jen.Index().Add(h.goType(*ref.Elem))
	}
	if ref.Name == "unsafe.Pointer" {
		return jen.Qual("unsafe", "Pointer")
	}
	return jen.Id(ref.Name)
}

// primitive wraps a call expression in the PrimitiveFunc form, handling
// the shape returns natively. ownerValue marks a by-value owner result
// that must be boxed to match the *Owner receiver assertion.
func (h *HostEmitter) primitive(params []Param, results []TypeRef, call *jen.Statement, ownerValue bool) *jen.Statement {
	if ownerValue {
		return jen.Func().Params(
			jen.Id("recv").Any(),
			jen.Id("args").Index().Any(),
		).Any().Block(
			jen.Id("v").Op(":=").Add(call),
			jen.Return(jen.Op("&").Id("v")),
		)
	}

	ret := ClassifyReturn(results)

	var stmts []jen.Code
	switch ret.Kind {
	case DescErrorShape:
		if ret.Ok.Kind == DescUnit {
			stmts = []jen.Code{
				jen.Err().Op(":=").Add(call),
				jen.If(jen.Err().Op("!=").Nil()).Block(
					jen.Qual(h.hostImport, "Raise").Call(jen.Err()),
				),
				jen.Return(jen.Nil()),
			}
		} else {
			stmts = []jen.Code{
				jen.List(jen.Id("v"), jen.Err()).Op(":=").Add(call),
				jen.If(jen.Err().Op("!=").Nil()).Block(
					jen.Qual(h.hostImport, "Raise").Call(jen.Err()),
				),
				jen.Return(jen.Id("v")),
			}
		}
	case DescOptionalShape:
		stmts = []jen.Code{
			jen.List(jen.Id("v"), jen.Id("ok")).Op(":=").Add(call),
			jen.If(jen.Op("!").Id("ok")).Block(
				jen.Return(jen.Nil()),
			),
			jen.Return(jen.Id("v")),
		}
	case DescUnit:
		stmts = []jen.Code{
			call,
			jen.Return(jen.Nil()),
		}
	default:
		stmts = []jen.Code{
			jen.Return(call),
		}
	}

	return jen.Func().Params(
		jen.Id("recv").Any(),
		jen.Id("args").Index().Any(),
	).Any().Block(stmts...)
}
