package bindgen

import (
	"fmt"
	"strings"
)

// Target selects the emission path. It is a build-time configuration
// value threaded into the controller; generated code never branches on it.
type Target int

const (
	// TargetCABI emits cgo //export wrappers and a C header.
	TargetCABI Target = iota
	// TargetHostExtension emits host-registry glue alongside the C-ABI
	// deallocation wrappers and record layout, since the foreign pointer
	// lifecycle exists regardless of the primary consumer.
	TargetHostExtension
)

func (t Target) String() string {
	switch t {
	case TargetCABI:
		return "cabi"
	case TargetHostExtension:
		return "host"
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// ParseTarget maps a manifest or flag value onto a Target.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "", "cabi":
		return TargetCABI, nil
	case "host":
		return TargetHostExtension, nil
	}
	return 0, fmt.Errorf("unknown target %q (want cabi or host)", s)
}

// Options configures one generation run.
type Options struct {
	// Name is the base name for output files: <Name>_cabi.go, <Name>.h,
	// <Name>_host.go.
	Name string
	// GenPackage is the package clause of the generated files.
	GenPackage string
	// ImportPath and PackageName identify the wrapped package.
	ImportPath  string
	PackageName string
	// HostImport is the import path of the host protocol package.
	HostImport string
	// Namespace prefixes host class names, e.g. "Go".
	Namespace string
	Target    Target
}

// OutputFile is one assembled generated file, not yet written to disk.
type OutputFile struct {
	Name     string
	Contents string
}

// Generate runs the selected emission path over the declaration stream and
// assembles the output files. Any diagnostic aborts the run before
// assembly, so a failed build writes nothing.
func Generate(opts Options, decls []*Decl) ([]OutputFile, error) {
	reg := NewSymbolRegistry()
	cabi := NewCABIEmitter("pkg", reg)

	var wrappers []string
	for _, d := range decls {
		if opts.Target == TargetHostExtension && d.Kind != DeclDataRecord {
			// Functions and methods cross through the host registry on
			// this target; only records keep their C-ABI surface.
			if diag := Check(d); diag != nil {
				return nil, diag
			}
			continue
		}
		arts, err := cabi.Emit(d)
		if err != nil {
			return nil, err
		}
		for _, a := range arts {
			wrappers = append(wrappers, a.Source)
		}
	}

	// On the host target the C-ABI surface can come out empty (no data
	// records); an empty cgo file would still carry imports, so it is
	// omitted along with its header.
	var files []OutputFile
	if len(wrappers) > 0 {
		files = append(files,
			OutputFile{Name: opts.Name + "_cabi.go", Contents: assembleCABI(opts, cabi, wrappers)},
			OutputFile{Name: opts.Name + ".h", Contents: cabi.Header()},
		)
	}

	if opts.Target == TargetHostExtension {
		host := NewHostEmitter(opts.GenPackage, opts.ImportPath, opts.PackageName, opts.HostImport, opts.Namespace)
		for _, d := range decls {
			if err := host.Emit(d); err != nil {
				return nil, err
			}
		}
		glue, err := host.Render()
		if err != nil {
			return nil, err
		}
		files = append(files, OutputFile{Name: opts.Name + "_host.go", Contents: glue})
	}

	return files, nil
}

// assembleCABI lays out the cgo file. The preamble comment must sit
// immediately above `import "C"` and the //export blocks must follow it,
// so the pieces concatenate in a fixed order.
func assembleCABI(opts Options, e *CABIEmitter, wrappers []string) string {
	var b strings.Builder
	b.WriteString("// Code generated by bridgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", opts.GenPackage)

	b.WriteString("/*\n")
	b.WriteString(e.Preamble())
	b.WriteString("*/\n")
	b.WriteString("import \"C\"\n\n")

	// Every import is demand-driven: a record whose wrappers never touch
	// the wrapped package (free wrapper only) must not import it.
	b.WriteString("import (\n")
	if e.UsesHandles() {
		b.WriteString("\t\"runtime/cgo\"\n")
	}
	if e.UsesUnsafe() {
		b.WriteString("\t\"unsafe\"\n")
	}
	if e.UsesPackage() {
		if e.UsesHandles() || e.UsesUnsafe() {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\tpkg %q\n", opts.ImportPath)
	}
	b.WriteString(")\n\n")

	if e.UsesErrorCode() {
		b.WriteString("// errorCode flattens an error into the int32 slot: errors carrying\n")
		b.WriteString("// a Code() accessor keep their code, everything else maps to -1.\n")
		b.WriteString("func errorCode(err error) int32 {\n")
		b.WriteString("\tif c, ok := err.(interface{ Code() int32 }); ok {\n")
		b.WriteString("\t\treturn c.Code()\n")
		b.WriteString("\t}\n")
		b.WriteString("\treturn -1\n")
		b.WriteString("}\n\n")
	}

	b.WriteString(strings.Join(wrappers, "\n"))
	return b.String()
}
