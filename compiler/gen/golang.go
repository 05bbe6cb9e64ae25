package gen

import (
	"bytes"
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/buildergen/compiler/load"
)

// GeneratedHeader is the header comment of every generated Go file.
// The loader relies on it to never scan generated builders.
const GeneratedHeader = "Code generated by buildergen. DO NOT EDIT."

// GoEmitter renders builders as Go source using Jennifer.
//
// Names follow Go visibility: the factory and setters are exported
// (AUser, WithName), the builder fields and the restricted constructor
// (newUserBuilder) are not. Build calls the target constructor, NewUser by
// default, with the fields as positional arguments.
type GoEmitter struct {
	// Header is an extra comment placed under the generated-code header.
	Header string
	// ConstructorPrefix names the constructor Build calls. Defaults to "New".
	ConstructorPrefix string
}

var (
	_ Emitter          = (*GoEmitter)(nil)
	_ ConstructorNamer = (*GoEmitter)(nil)
)

// Name implements Emitter.
func (e *GoEmitter) Name() string { return string(LanguageGo) }

// Path implements Emitter. Builders are written next to their target,
// e.g. user_profile.go declares UserProfile and user_profile_builder.go
// its builder. HTTPServer and HttpServer share http_server_builder.go;
// the driver fails the second of them.
func (e *GoEmitter) Path(s *Spec) string {
	name := snake(s.Type.Name) + "_builder.go"
	return filepath.Join(s.Type.Dir, name)
}

// Emit implements Emitter.
func (e *GoEmitter) Emit(s *Spec) ([]byte, error) {
	if s.Type.Package == "" {
		return nil, errors.New("go output requires a package name")
	}
	var (
		f       = e.newFile(s.Type)
		builder = s.BuilderName
		newFunc = "new" + builder
		recv    = receiverName(s)
	)

	fields := make([]jen.Code, 0, len(s.Fields))
	for _, fd := range s.Fields {
		fields = append(fields, jen.Id(builderField(fd.Name)).Add(e.typeCode(s.Type, fd.Type)))
	}
	f.Commentf("%s builds %s values step by step.", builder, s.Type.Name)
	f.Type().Id(builder).Struct(fields...)

	f.Line()
	f.Func().Id(newFunc).Params().Op("*").Id(builder).Block(
		jen.Return(jen.Op("&").Id(builder).Values()),
	)
	f.Line()

	factory := exported(s.FactoryName)
	f.Commentf("%s returns a new %s.", factory, builder)
	f.Func().Id(factory).Params().Op("*").Id(builder).Block(
		jen.Return(jen.Id(newFunc).Call()),
	)
	f.Line()

	for _, fd := range s.Fields {
		name := builderField(fd.Name)
		setter := exported(fd.Setter)
		f.Commentf("%s sets the %s field.", setter, fd.Name)
		f.Func().Params(jen.Id(recv).Op("*").Id(builder)).Id(setter).
			Params(jen.Id(name).Add(e.typeCode(s.Type, fd.Type))).
			Op("*").Id(builder).
			Block(
				jen.Id(recv).Dot(name).Op("=").Id(name),
				jen.Return(jen.Id(recv)),
			)
		f.Line()
	}

	args := make([]jen.Code, 0, len(s.Fields))
	for _, fd := range s.Fields {
		args = append(args, jen.Id(recv).Dot(builderField(fd.Name)))
	}
	call := jen.Id(e.ConstructorName(s)).Call(args...)
	f.Commentf("Build returns a new %s from the collected fields.", s.Type.Name)
	build := f.Func().Params(jen.Id(recv).Op("*").Id(builder)).Id("Build").Params()
	switch results := e.results(s); len(results) {
	case 0:
		build.Block(call)
	case 1:
		build.Add(results[0]).Block(jen.Return(call))
	default:
		build.Params(results...).Block(jen.Return(call))
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// newFile creates a new Jennifer file with the header comment. Imports of
// the declaring file keep their package names and aliases.
func (e *GoEmitter) newFile(d *load.TypeDescriptor) *jen.File {
	f := jen.NewFile(d.Package)
	f.HeaderComment(GeneratedHeader)
	if e.Header != "" {
		f.HeaderComment(e.Header)
	}
	for _, imp := range d.Imports {
		switch {
		case !token.IsIdentifier(imp.Name):
		case imp.Alias:
			f.ImportAlias(imp.Path, imp.Name)
		default:
			f.ImportName(imp.Path, imp.Name)
		}
	}
	return f
}

// ConstructorName implements ConstructorNamer.
func (e *GoEmitter) ConstructorName(s *Spec) string {
	if e.ConstructorPrefix == "" {
		return s.ConstructorName("New")
	}
	return s.ConstructorName(e.ConstructorPrefix)
}

// results returns the result types of Build. They mirror the recorded
// constructor, or a pointer to the target when none was recorded.
func (e *GoEmitter) results(s *Spec) []jen.Code {
	ctor := s.Type.Constructor
	if ctor == nil || ctor.Name != e.ConstructorName(s) {
		return []jen.Code{jen.Op("*").Id(s.Type.Name)}
	}
	codes := make([]jen.Code, len(ctor.Results))
	for i, r := range ctor.Results {
		codes[i] = e.typeCode(s.Type, r)
	}
	return codes
}

// typeCode converts the source text of a type to Jennifer code, so that
// package qualified names are emitted with their imports.
func (e *GoEmitter) typeCode(d *load.TypeDescriptor, text string) jen.Code {
	expr, err := parser.ParseExpr(text)
	if err != nil {
		return jen.Id(text)
	}
	return typeExpr(d, expr)
}

func typeExpr(d *load.TypeDescriptor, expr ast.Expr) *jen.Statement {
	switch t := expr.(type) {
	case *ast.Ident:
		return jen.Id(t.Name)
	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok {
			if path, ok := d.ImportPath(x.Name); ok {
				return jen.Qual(path, t.Sel.Name)
			}
		}
	case *ast.StarExpr:
		return jen.Op("*").Add(typeExpr(d, t.X))
	case *ast.ParenExpr:
		return jen.Parens(typeExpr(d, t.X))
	case *ast.Ellipsis:
		return jen.Op("...").Add(typeExpr(d, t.Elt))
	case *ast.ArrayType:
		if t.Len == nil {
			return jen.Index().Add(typeExpr(d, t.Elt))
		}
		return jen.Index(jen.Id(types.ExprString(t.Len))).Add(typeExpr(d, t.Elt))
	case *ast.MapType:
		return jen.Map(typeExpr(d, t.Key)).Add(typeExpr(d, t.Value))
	case *ast.ChanType:
		switch t.Dir {
		case ast.SEND:
			return jen.Chan().Op("<-").Add(typeExpr(d, t.Value))
		case ast.RECV:
			return jen.Op("<-").Chan().Add(typeExpr(d, t.Value))
		default:
			return jen.Chan().Add(typeExpr(d, t.Value))
		}
	case *ast.FuncType:
		fn := jen.Func().Params(fieldList(d, t.Params)...)
		if t.Results == nil || len(t.Results.List) == 0 {
			return fn
		}
		if len(t.Results.List) == 1 && len(t.Results.List[0].Names) == 0 {
			return fn.Add(typeExpr(d, t.Results.List[0].Type))
		}
		return fn.Params(fieldList(d, t.Results)...)
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return jen.Interface()
		}
	case *ast.StructType:
		if t.Fields == nil || len(t.Fields.List) == 0 {
			return jen.Struct()
		}
	case *ast.IndexExpr:
		return typeExpr(d, t.X).Types(typeExpr(d, t.Index))
	case *ast.IndexListExpr:
		params := make([]jen.Code, len(t.Indices))
		for i, idx := range t.Indices {
			params[i] = typeExpr(d, idx)
		}
		return typeExpr(d, t.X).Types(params...)
	}
	// Anything else is kept as written.
	return jen.Id(types.ExprString(expr))
}

func fieldList(d *load.TypeDescriptor, fl *ast.FieldList) []jen.Code {
	if fl == nil {
		return nil
	}
	var codes []jen.Code
	for _, f := range fl.List {
		if len(f.Names) == 0 {
			codes = append(codes, typeExpr(d, f.Type))
			continue
		}
		for _, n := range f.Names {
			codes = append(codes, jen.Id(n.Name).Add(typeExpr(d, f.Type)))
		}
	}
	return codes
}

// builderField returns the builder struct field for the given name
// and ensures it doesn't conflict with Go keywords, and it is not exported.
func builderField(name string) string {
	if token.IsKeyword(name) || token.IsExported(name) {
		return "_" + name
	}
	return name
}

// receiverName returns a receiver name that no builder field shadows.
func receiverName(s *Spec) string {
	recv := "b"
	for taken := true; taken; {
		taken = false
		for _, f := range s.Fields {
			if builderField(f.Name) == recv {
				recv = "_" + recv
				taken = true
				break
			}
		}
	}
	return recv
}

// exported returns the exported form of a Go identifier.
func exported(name string) string {
	return upperFirst(name)
}
