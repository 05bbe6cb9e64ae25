// Package buildergen generates fluent builder types for data types marked
// with the builder directive.
//
// A type opts in by carrying the directive in its doc comment:
//
//	//buildergen:builder
//	type User struct {
//		name  string
//		age   int
//		email string
//	}
//
// and running the generator over its package, typically from a
// go:generate line:
//
//	//go:generate go run github.com/syssam/buildergen/cmd/buildergen generate .
//
// The generator writes user_builder.go next to the declaration. It defines
// UserBuilder with a factory AUser, one WithXxx setter per settable field
// and a Build method that calls NewUser with the collected fields in
// declaration order.
//
// The generator is split in the same stages the compiler package drives:
//
//   - compiler/load: turns marked declarations into structural descriptors
//   - compiler/gen: derives builder specs, renders them and reports diagnostics
//   - compiler: the host pipeline that loads packages and runs rounds
package buildergen

const (
	// Marker is the directive that flags a declaration for builder generation.
	// In Go sources it appears as a "//buildergen:builder" doc comment line.
	Marker = "buildergen:builder"

	// DescriptorVersion is the latest descriptor batch format the generator reads.
	DescriptorVersion = 1

	// Version is the generator version.
	Version = "v0.3.0"
)
