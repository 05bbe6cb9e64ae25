// Package gen provides builder code generation for marked types.
//
// This package derives a builder plan from each type descriptor produced by
// the load package, renders it to source text and writes it as an
// artifact, reporting one diagnostic per element.
//
// # Architecture
//
// A round flows through these stages:
//
//	load.Element (marked declaration)
//	        ↓
//	load.Extract → load.TypeDescriptor
//	        ↓
//	NewSpec → Spec (names, included fields)
//	        ↓
//	Emitter.Emit → source text
//	        ↓
//	Filer.Create → Artifact written
//
// Failures at any stage become ERROR diagnostics of the element and never
// abort the round.
//
// # Key Types
//
//   - Spec: builder plan with builder, factory and setter names
//   - Emitter: renders a Spec; GoEmitter (Jennifer) and JavaEmitter (templates)
//   - Filer: opens artifact destinations; DirFiler writes to disk
//   - Driver: runs rounds and returns a Report
//   - Diagnostic: NOTE or ERROR message about one element
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithLanguage("go"),
//	    gen.WithConstructorCheck(),
//	)
//	driver, err := gen.NewDriver(config)
//	report := driver.Process(ctx, elements)
//
// # Naming
//
// For a type User with fields name, age and email the builder is
// UserBuilder, the factory is aUser and the setters are withName, withAge
// and withEmail. The factory always uses the "a" article unless
// WithArticle(ArticleGrammatical) is set; aApple is kept as is because
// consumers of generated code may depend on it. The Go emitter exports
// these names (AUser, WithName).
package gen
