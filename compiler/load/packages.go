package load

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/syssam/buildergen"
)

// TagName is the struct tag key read for per-field generator options.
// `builder:"-"` and `builder:"final"` mark a field as immutable after
// construction, which keeps it out of the builder.
const TagName = "builder"

// Config configures Go package loading.
type Config struct {
	// Dir is the directory patterns are resolved in. Empty means the
	// current directory.
	Dir string
	// BuildFlags are passed to the underlying build system.
	BuildFlags []string
	// Marker is the directive to look for. Defaults to buildergen.Marker.
	Marker string
	// ConstructorPrefix names the constructor function recorded for each
	// marked type (prefix + type name). Defaults to "New".
	ConstructorPrefix string
}

// Load loads the Go packages matching patterns and returns one element per
// declaration carrying the marker directive, ordered by package path and
// then by source position.
//
// Files with a generated-code header are not scanned, so builders emitted
// by a previous run never produce elements of their own. Type errors are
// tolerated: the package may already reference builders that are not
// generated yet.
func Load(ctx context.Context, cfg *Config, patterns ...string) ([]*Element, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	marker := cfg.Marker
	if marker == "" {
		marker = buildergen.Marker
	}
	prefix := cfg.ConstructorPrefix
	if prefix == "" {
		prefix = "New"
	}
	pkgs, err := packages.Load(&packages.Config{
		Context:    ctx,
		Dir:        cfg.Dir,
		BuildFlags: cfg.BuildFlags,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load: loading packages %v: %w", patterns, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("load: no packages found for %v", patterns)
	}
	slices.SortFunc(pkgs, func(a, b *packages.Package) int {
		return strings.Compare(a.PkgPath, b.PkgPath)
	})
	var (
		elems []*Element
		errs  []error
	)
	for _, pkg := range pkgs {
		for _, perr := range pkg.Errors {
			if perr.Kind != packages.TypeError {
				errs = append(errs, perr)
			}
		}
		sc := &scanner{pkg: pkg, marker: "//" + marker, prefix: prefix}
		elems = append(elems, sc.scan()...)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("load: package errors: %w", errors.Join(errs...))
	}
	return elems, nil
}

// scanner collects marked declarations of one package.
type scanner struct {
	pkg    *packages.Package
	marker string
	prefix string
}

func (s *scanner) scan() []*Element {
	var elems []*Element
	for _, file := range s.pkg.Syntax {
		if ast.IsGenerated(file) {
			continue
		}
		if s.marked(file.Doc) {
			elems = append(elems, s.element(file, file.Package, KindPackage, s.pkg.Name))
		}
		for _, decl := range file.Decls {
			switch decl := decl.(type) {
			case *ast.GenDecl:
				elems = append(elems, s.genDecl(file, decl)...)
			case *ast.FuncDecl:
				if !s.marked(decl.Doc) {
					continue
				}
				el := s.element(file, decl.Pos(), KindFunc, decl.Name.Name)
				if decl.Recv != nil && len(decl.Recv.List) > 0 {
					el.Kind = KindMethod
					el.Name = receiverName(decl.Recv.List[0].Type) + "." + decl.Name.Name
				}
				elems = append(elems, el)
			}
		}
	}
	return elems
}

func (s *scanner) genDecl(file *ast.File, decl *ast.GenDecl) []*Element {
	var elems []*Element
	// A marker on a declaration applies to every spec it groups.
	declMarked := s.marked(decl.Doc)
	for _, spec := range decl.Specs {
		switch spec := spec.(type) {
		case *ast.ImportSpec:
			if !declMarked && !s.marked(spec.Doc) {
				continue
			}
			elems = append(elems, s.element(file, spec.Pos(), KindImport, spec.Path.Value))
		case *ast.TypeSpec:
			if st, ok := spec.Type.(*ast.StructType); ok {
				elems = append(elems, s.fieldMarkers(file, spec.Name.Name, st)...)
			}
			if !declMarked && !s.marked(spec.Doc) {
				continue
			}
			elems = append(elems, s.typeElement(file, spec))
		case *ast.ValueSpec:
			if !declMarked && !s.marked(spec.Doc) {
				continue
			}
			kind := KindVar
			if decl.Tok == token.CONST {
				kind = KindConst
			}
			for _, name := range spec.Names {
				elems = append(elems, s.element(file, name.Pos(), kind, name.Name))
			}
		}
	}
	return elems
}

// fieldMarkers reports markers misplaced on struct fields.
func (s *scanner) fieldMarkers(file *ast.File, typeName string, st *ast.StructType) []*Element {
	var elems []*Element
	for _, f := range st.Fields.List {
		if !s.marked(f.Doc) {
			continue
		}
		for _, name := range fieldNames(f) {
			elems = append(elems, s.element(file, f.Pos(), KindField, typeName+"."+name))
		}
	}
	return elems
}

func (s *scanner) typeElement(file *ast.File, spec *ast.TypeSpec) *Element {
	el := s.element(file, spec.Pos(), KindType, spec.Name.Name)
	if spec.TypeParams != nil {
		el.TypeParams = spec.TypeParams.NumFields()
	}
	switch t := spec.Type.(type) {
	case *ast.StructType:
		if spec.Assign.IsValid() {
			break
		}
		el.Kind = KindStruct
		el.Members = structMembers(t)
		el.Members = append(el.Members, s.methods(spec.Name.Name)...)
		el.Imports = s.imports(file)
		el.Constructor = s.constructor(spec.Name.Name)
	case *ast.InterfaceType:
		el.Kind = KindInterface
	}
	return el
}

func (s *scanner) element(file *ast.File, pos token.Pos, kind Kind, name string) *Element {
	p := s.pkg.Fset.Position(pos)
	return &Element{
		Kind:    kind,
		Name:    name,
		Package: s.pkg.Name,
		PkgPath: s.pkg.PkgPath,
		Dir:     filepath.Dir(s.pkg.Fset.File(file.Pos()).Name()),
		Pos:     p.String(),
	}
}

func (s *scanner) marked(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimRight(c.Text, " \t") == s.marker {
			return true
		}
	}
	return false
}

// methods returns the methods declared on the named type, in file order.
func (s *scanner) methods(typeName string) []Member {
	var members []Member
	for _, file := range s.pkg.Syntax {
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
				continue
			}
			if receiverName(fd.Recv.List[0].Type) != typeName {
				continue
			}
			members = append(members, Member{
				Name: fd.Name.Name,
				Kind: MemberMethod,
				Type: types.ExprString(fd.Type),
			})
		}
	}
	return members
}

// constructor looks up the package level constructor of the named type.
func (s *scanner) constructor(typeName string) *Signature {
	name := s.prefix + typeName
	for _, file := range s.pkg.Syntax {
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv != nil || fd.Name.Name != name {
				continue
			}
			return &Signature{
				Name:    name,
				Params:  fieldListTypes(fd.Type.Params),
				Results: fieldListTypes(fd.Type.Results),
			}
		}
	}
	return nil
}

// imports returns the imports of the file keyed by their local name.
func (s *scanner) imports(file *ast.File) []Import {
	imports := make([]Import, 0, len(file.Imports))
	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		var (
			name  string
			alias = spec.Name != nil
		)
		switch {
		case alias:
			name = spec.Name.Name
		case s.pkg.TypesInfo != nil:
			if pn := s.pkg.TypesInfo.PkgNameOf(spec); pn != nil {
				name = pn.Name()
			}
		}
		if name == "" {
			name = path.Base(p)
		}
		if name == "_" || name == "." {
			continue
		}
		imports = append(imports, Import{Name: name, Path: p, Alias: alias})
	}
	return imports
}

func structMembers(st *ast.StructType) []Member {
	var members []Member
	for _, f := range st.Fields.List {
		typ := types.ExprString(f.Type)
		final := false
		if f.Tag != nil {
			if tag, err := strconv.Unquote(f.Tag.Value); err == nil {
				switch reflect.StructTag(tag).Get(TagName) {
				case "-", "final":
					final = true
				}
			}
		}
		for _, name := range fieldNames(f) {
			members = append(members, Member{
				Name:   name,
				Kind:   MemberField,
				Type:   typ,
				Static: name == "_",
				Final:  final,
			})
		}
	}
	return members
}

// fieldNames returns the declared names of a field, or the type name for
// an embedded field.
func fieldNames(f *ast.Field) []string {
	if len(f.Names) == 0 {
		return []string{embeddedName(f.Type)}
	}
	names := make([]string, len(f.Names))
	for i, n := range f.Names {
		names[i] = n.Name
	}
	return names
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	default:
		return types.ExprString(expr)
	}
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.ParenExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	default:
		return types.ExprString(expr)
	}
}

// fieldListTypes flattens a parameter list to one type per parameter.
func fieldListTypes(fl *ast.FieldList) []string {
	if fl == nil {
		return nil
	}
	var typs []string
	for _, f := range fl.List {
		typ := types.ExprString(f.Type)
		n := len(f.Names)
		if n == 0 {
			n = 1
		}
		for range n {
			typs = append(typs, typ)
		}
	}
	return typs
}
