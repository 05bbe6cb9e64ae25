package gen

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/buildergen"
	"github.com/syssam/buildergen/compiler/load"
)

// Spec is the builder plan derived from a marked type. It is the input of
// every Emitter and is never modified after NewSpec returns.
type Spec struct {
	// Type is the descriptor the spec was derived from.
	Type *load.TypeDescriptor
	// BuilderName is the simple name of the builder type, e.g. UserBuilder.
	BuilderName string
	// FactoryName is the factory method name, e.g. aUser.
	FactoryName string
	// Fields are the settable fields, in declaration order.
	Fields []*SpecField
}

// SpecField is a field the builder sets.
type SpecField struct {
	Name   string // Field name, as declared by the target.
	Type   string // Declared type, as source text.
	Setter string // Setter name, e.g. withName.
}

// NewSpec derives the builder spec of a type descriptor.
//
// A field is included iff it is neither static nor final. This is a
// structural heuristic: nothing guarantees that the target exposes a
// constructor taking exactly these fields (see CheckConstructor).
// Duplicate field names are not detected.
func NewSpec(d *load.TypeDescriptor, article Article) *Spec {
	s := &Spec{
		Type:        d,
		BuilderName: d.Name + "Builder",
		FactoryName: factoryName(d.Name, article),
	}
	for _, f := range d.Fields {
		if f.Static || f.Final {
			continue
		}
		s.Fields = append(s.Fields, &SpecField{
			Name:   f.Name,
			Type:   f.Type,
			Setter: setterName(f.Name),
		})
	}
	return s
}

// QualifiedName returns the package qualified builder name.
func (s *Spec) QualifiedName() string {
	if s.Type.Package == "" {
		return s.BuilderName
	}
	return s.Type.Package + "." + s.BuilderName
}

// ConstructorName returns the name of the target constructor for the prefix.
func (s *Spec) ConstructorName(prefix string) string {
	return prefix + s.Type.Name
}

// CheckConstructor reports a structural error when the recorded constructor
// of the target is not named want or does not accept the included fields in
// declaration order.
func CheckConstructor(s *Spec, want string) error {
	ctor := s.Type.Constructor
	if ctor == nil || ctor.Name != want {
		return structuralError(s, fmt.Sprintf("constructor %s not found", want))
	}
	if len(ctor.Params) != len(s.Fields) {
		return structuralError(s, fmt.Sprintf("constructor %s takes %d arguments, builder has %d fields",
			want, len(ctor.Params), len(s.Fields)))
	}
	for i, f := range s.Fields {
		if ctor.Params[i] != f.Type {
			return structuralError(s, fmt.Sprintf("constructor %s argument %d is %s, field %s is %s",
				want, i+1, ctor.Params[i], f.Name, f.Type))
		}
	}
	return nil
}

func structuralError(s *Spec, msg string) error {
	return buildergen.NewStructuralError(s.Type.Name, "type", msg)
}

// factoryName returns the factory method name for a type name.
func factoryName(name string, article Article) string {
	if article == ArticleGrammatical && startsWithVowel(name) {
		return "an" + name
	}
	return "a" + name
}

// setterName returns the fluent setter name of a field, e.g. withName.
func setterName(field string) string {
	return "with" + upperFirst(field)
}

func startsWithVowel(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return strings.ContainsRune("aeiouAEIOU", r)
}

// upperFirst upper-cases the first rune of s and keeps the rest as is.
// A Caser is stateful, so one is created per call.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}
