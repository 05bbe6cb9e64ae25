package load

import (
	"fmt"
)

// Kind classifies a marked declaration.
type Kind string

// Declaration kinds. Only struct (and class, for foreign hosts) kinds are
// type declarations the generator builds for.
const (
	KindStruct    Kind = "struct"
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindType      Kind = "type"
	KindFunc      Kind = "func"
	KindMethod    Kind = "method"
	KindField     Kind = "field"
	KindVar       Kind = "var"
	KindConst     Kind = "const"
	KindImport    Kind = "import"
	KindPackage   Kind = "package"
)

// IsTypeDeclaration reports whether k denotes a class-like type declaration.
func (k Kind) IsTypeDeclaration() bool {
	return k == KindStruct || k == KindClass
}

// String implements the fmt.Stringer interface.
func (k Kind) String() string {
	if k == "" {
		return "declaration"
	}
	return string(k)
}

// MemberKind classifies a member declared by a type.
type MemberKind string

// Member kinds. An empty kind is read as a field.
const (
	MemberField  MemberKind = "field"
	MemberMethod MemberKind = "method"
)

// Member is a member declared directly by a type, in declaration order.
type Member struct {
	Name   string     `json:"name" yaml:"name"`
	Kind   MemberKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Type   string     `json:"type,omitempty" yaml:"type,omitempty"`
	Static bool       `json:"static,omitempty" yaml:"static,omitempty"`
	Final  bool       `json:"final,omitempty" yaml:"final,omitempty"`
}

// IsField reports whether the member is field-like.
func (m *Member) IsField() bool {
	return m.Kind == "" || m.Kind == MemberField
}

// Import is an import visible to the declaring file.
// Name is the local name the file uses for the package.
type Import struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	// Alias is set when the file renames the import.
	Alias bool `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// Signature describes a constructor function of a type.
type Signature struct {
	Name    string   `json:"name" yaml:"name"`
	Params  []string `json:"params,omitempty" yaml:"params,omitempty"`
	Results []string `json:"results,omitempty" yaml:"results,omitempty"`
}

// Element is a handle to a declaration that carries the generator marker.
// Elements come from Load (Go packages) or ReadBatch (foreign hosts).
type Element struct {
	Kind        Kind       `json:"kind" yaml:"kind"`
	Name        string     `json:"name" yaml:"name"`
	Package     string     `json:"package,omitempty" yaml:"package,omitempty"`
	PkgPath     string     `json:"pkg_path,omitempty" yaml:"pkg_path,omitempty"`
	Dir         string     `json:"dir,omitempty" yaml:"dir,omitempty"`
	Pos         string     `json:"pos,omitempty" yaml:"pos,omitempty"`
	TypeParams  int        `json:"type_params,omitempty" yaml:"type_params,omitempty"`
	Members     []Member   `json:"members,omitempty" yaml:"members,omitempty"`
	Imports     []Import   `json:"imports,omitempty" yaml:"imports,omitempty"`
	Constructor *Signature `json:"constructor,omitempty" yaml:"constructor,omitempty"`
}

// String returns the location reference of the element,
// e.g. "user.go:12:6: User".
func (e *Element) String() string {
	name := e.Name
	if e.Package != "" {
		name = e.Package + "." + e.Name
	}
	if e.Pos == "" {
		return name
	}
	return fmt.Sprintf("%s: %s", e.Pos, name)
}

// FieldDescriptor describes one field of a marked type.
type FieldDescriptor struct {
	Name   string // Identifier as declared.
	Type   string // Declared type, as source text.
	Static bool   // Belongs to the type rather than to instances.
	Final  bool   // Immutable after construction.
}

// TypeDescriptor is the structural metadata of a marked type declaration.
// Fields keep declaration order; it decides constructor argument order.
type TypeDescriptor struct {
	Package     string
	PkgPath     string
	Dir         string
	Name        string
	Pos         string
	Fields      []*FieldDescriptor
	Imports     []Import
	Constructor *Signature
}

// ImportPath returns the import path bound to the local package name.
func (d *TypeDescriptor) ImportPath(name string) (string, bool) {
	for _, imp := range d.Imports {
		if imp.Name == name {
			return imp.Path, true
		}
	}
	return "", false
}
