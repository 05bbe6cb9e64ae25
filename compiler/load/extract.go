package load

import (
	"github.com/syssam/buildergen"
)

// Extract turns a marked element into a TypeDescriptor.
//
// Only type declarations are accepted; any other element kind yields a
// *buildergen.StructuralError naming it. Members that are not fields are
// dropped and the remaining fields keep their declaration order.
func Extract(el *Element) (*TypeDescriptor, error) {
	if !el.Kind.IsTypeDeclaration() {
		return nil, buildergen.NewStructuralError(el.Name, el.Kind.String(),
			"marker can only be applied to type declarations")
	}
	if el.TypeParams > 0 {
		return nil, buildergen.NewStructuralError(el.Name, el.Kind.String(),
			"marker cannot be applied to generic type declarations")
	}
	d := &TypeDescriptor{
		Package:     el.Package,
		PkgPath:     el.PkgPath,
		Dir:         el.Dir,
		Name:        el.Name,
		Pos:         el.Pos,
		Imports:     el.Imports,
		Constructor: el.Constructor,
	}
	for i := range el.Members {
		m := &el.Members[i]
		if !m.IsField() {
			continue
		}
		d.Fields = append(d.Fields, &FieldDescriptor{
			Name:   m.Name,
			Type:   m.Type,
			Static: m.Static,
			Final:  m.Final,
		})
	}
	return d, nil
}
