package bindgen

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"
)

// directivePrefix marks a declaration for binding generation. Options
// follow the prefix separated by spaces: "unsafe" and "attach=Owner".
const directivePrefix = "bridgen:export"

type directive struct {
	unsafe bool
	attach string
}

// PackageInfo is the introspection result: the wrapped package's
// identity plus its annotated declarations.
type PackageInfo struct {
	Name       string
	ImportPath string
	Decls      []*Decl
}

// IntrospectPackage loads the Go package matching pattern (relative to
// dir, which may be empty) and returns the annotated declarations in a
// stable order: records and their method collections first, standalone
// functions after, source order within each group.
func IntrospectPackage(pattern, dir string) (*PackageInfo, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", pattern, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found for %s", pattern)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package %s: %v", pattern, pkg.Errors[0])
	}

	decls, err := scanPackage(pkg)
	if err != nil {
		return nil, err
	}
	return &PackageInfo{
		Name:       pkg.Name,
		ImportPath: pkg.PkgPath,
		Decls:      decls,
	}, nil
}

func scanPackage(pkg *packages.Package) ([]*Decl, error) {
	fset := pkg.Fset

	// First pass: annotated structs. Their names anchor method attachment
	// in the second pass.
	var records []*Decl
	owners := map[string]*Decl{}
	for _, file := range pkg.Syntax {
		for _, d := range file.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			dir, found, err := parseDirective(gd.Doc, fset)
			if err != nil {
				return nil, err
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				sdir, sfound := dir, found
				if !sfound {
					var serr error
					sdir, sfound, serr = parseDirective(ts.Doc, fset)
					if serr != nil {
						return nil, serr
					}
				}
				if !sfound {
					continue
				}
				pos := fset.Position(ts.Pos())
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					return nil, diagf(StructuralError, ts.Name.Name, pos,
						"applies only to functions, data records, or method collections")
				}
				rec := &Decl{
					Kind:   DeclDataRecord,
					Name:   ts.Name.Name,
					Unsafe: sdir.unsafe,
					Pos:    pos,
					Record: &DataRecord{Name: ts.Name.Name, Fields: structFields(st)},
				}
				records = append(records, rec)
				owners[ts.Name.Name] = rec
			}
		}
	}

	// Second pass: annotated functions and methods.
	collections := map[string]*MethodCollection{}
	var order []string
	var functions []*Decl
	for _, file := range pkg.Syntax {
		for _, d := range file.Decls {
			fd, ok := d.(*ast.FuncDecl)
			if !ok {
				continue
			}
			dir, found, err := parseDirective(fd.Doc, fset)
			if err != nil {
				return nil, err
			}
			if !found {
				continue
			}
			pos := fset.Position(fd.Pos())
			params := fieldParams(fd.Type.Params)
			results := fieldResults(fd.Type.Results)

			if fd.Recv != nil {
				owner, recv, err := receiver(fd, fset)
				if err != nil {
					return nil, err
				}
				col := collection(collections, &order, owner)
				col.Members = append(col.Members, Method{
					Name:     fd.Name.Name,
					Receiver: recv,
					Unsafe:   dir.unsafe,
					Params:   params,
					Results:  results,
					Pos:      pos,
				})
				continue
			}

			owner := dir.attach
			if owner == "" {
				owner = attachByConvention(fd.Name.Name, results, owners)
			}
			if owner != "" {
				col := collection(collections, &order, owner)
				col.Members = append(col.Members, Method{
					Name:     fd.Name.Name,
					Receiver: RecvNone,
					Unsafe:   dir.unsafe,
					Params:   params,
					Results:  results,
					Pos:      pos,
				})
				continue
			}

			functions = append(functions, &Decl{
				Kind:   DeclFunction,
				Name:   fd.Name.Name,
				Unsafe: dir.unsafe,
				Pos:    pos,
				Func:   &Function{Name: fd.Name.Name, Params: params, Results: results},
			})
		}
	}

	// Records first, each followed by its collection, then collections
	// for owners with no annotated record, then standalone functions.
	var decls []*Decl
	for _, rec := range records {
		decls = append(decls, rec)
		if col, ok := collections[rec.Name]; ok {
			decls = append(decls, &Decl{
				Kind:    DeclMethodCollection,
				Name:    rec.Name,
				Pos:     rec.Pos,
				Methods: col,
			})
			delete(collections, rec.Name)
		}
	}
	for _, owner := range order {
		col, ok := collections[owner]
		if !ok {
			continue
		}
		decls = append(decls, &Decl{
			Kind:    DeclMethodCollection,
			Name:    owner,
			Pos:     col.Members[0].Pos,
			Methods: col,
		})
	}
	decls = append(decls, functions...)
	return decls, nil
}

// parseDirective scans a doc comment for the export directive and its
// options. Unknown options are structural errors rather than silent
// no-ops.
func parseDirective(doc *ast.CommentGroup, fset *token.FileSet) (directive, bool, error) {
	var dir directive
	if doc == nil {
		return dir, false, nil
	}
	for _, c := range doc.List {
		text := strings.TrimPrefix(c.Text, "//")
		if !strings.HasPrefix(text, directivePrefix) {
			continue
		}
		pos := fset.Position(c.Pos())
		for _, opt := range strings.Fields(text[len(directivePrefix):]) {
			switch {
			case opt == "unsafe":
				dir.unsafe = true
			case strings.HasPrefix(opt, "attach="):
				target := opt[len("attach="):]
				if !isIdent(target) {
					return dir, false, diagf(StructuralError, target, pos,
						"attach target must be a plain type name, got %q", target)
				}
				dir.attach = target
			default:
				return dir, false, diagf(StructuralError, opt, pos,
					"unknown directive option %q", opt)
			}
		}
		return dir, true, nil
	}
	return dir, false, nil
}

// receiver resolves the method's owner name and borrow kind from the
// receiver field. Pointer receivers take the instance exclusively;
// value receivers see a copy and are treated as shared.
func receiver(fd *ast.FuncDecl, fset *token.FileSet) (string, ReceiverKind, error) {
	rt := fd.Recv.List[0].Type
	kind := RecvShared
	if st, ok := rt.(*ast.StarExpr); ok {
		kind = RecvExclusive
		rt = st.X
	}
	id, ok := rt.(*ast.Ident)
	if !ok {
		return "", RecvNone, diagf(StructuralError, fd.Name.Name, fset.Position(fd.Pos()),
			"receiver must name a plain local type")
	}
	return id.Name, kind, nil
}

// attachByConvention attaches a receiver-less function to an annotated
// owner when its name follows New<Owner> or its sole result is an owner
// type.
func attachByConvention(name string, results []TypeRef, owners map[string]*Decl) string {
	if rest, ok := strings.CutPrefix(name, "New"); ok {
		if rest == "" && len(owners) == 1 {
			for owner := range owners {
				return owner
			}
		}
		if _, ok := owners[rest]; ok {
			return rest
		}
	}
	if len(results) == 1 {
		for owner := range owners {
			if results[0].IsOwner(owner) {
				return owner
			}
		}
	}
	return ""
}

func collection(m map[string]*MethodCollection, order *[]string, owner string) *MethodCollection {
	if col, ok := m[owner]; ok {
		return col
	}
	col := &MethodCollection{Owner: owner}
	m[owner] = col
	*order = append(*order, owner)
	return col
}

func structFields(st *ast.StructType) []Field {
	var fields []Field
	for _, f := range st.Fields.List {
		ref := typeRefFromExpr(f.Type)
		for _, name := range f.Names {
			if !name.IsExported() {
				continue
			}
			fields = append(fields, Field{Name: name.Name, Type: ref})
		}
	}
	return fields
}

func fieldParams(fl *ast.FieldList) []Param {
	var params []Param
	if fl == nil {
		return params
	}
	for _, f := range fl.List {
		ref := typeRefFromExpr(f.Type)
		if len(f.Names) == 0 {
			params = append(params, Param{Name: fmt.Sprintf("arg%d", len(params)), Type: ref})
			continue
		}
		for _, name := range f.Names {
			params = append(params, Param{Name: name.Name, Type: ref})
		}
	}
	return params
}

func fieldResults(fl *ast.FieldList) []TypeRef {
	var results []TypeRef
	if fl == nil {
		return results
	}
	for _, f := range fl.List {
		ref := typeRefFromExpr(f.Type)
		n := len(f.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			results = append(results, ref)
		}
	}
	return results
}

// typeRefFromExpr maps the syntactic type onto the model. Forms the
// model has no shape for come back as named references that the oracle
// then rejects with their printed syntax.
func typeRefFromExpr(e ast.Expr) TypeRef {
	switch t := e.(type) {
	case *ast.Ident:
		return Named(t.Name)
	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok {
			return Named(x.Name + "." + t.Sel.Name)
		}
	case *ast.StarExpr:
		return PointerTo(typeRefFromExpr(t.X))
	case *ast.ArrayType:
		if t.Len == nil {
			return SliceOf(typeRefFromExpr(t.Elt))
		}
	}
	return Named(types.ExprString(e))
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}
