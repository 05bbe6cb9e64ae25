package gen

// Emitter renders builder specs to source text.
//
// Emit must be deterministic: identical specs always render to identical
// bytes, so implementations never iterate maps, read clocks or depend on
// the environment.
type Emitter interface {
	// Name returns the emitter name (e.g. "go", "java").
	Name() string
	// Path returns the artifact path of the spec, relative to the filer
	// root unless the descriptor carries an absolute directory.
	Path(s *Spec) string
	// Emit renders the complete source text of the builder.
	Emit(s *Spec) ([]byte, error)
}

// ConstructorNamer is implemented by emitters whose Build call targets a
// named constructor. The driver uses it for constructor checks.
type ConstructorNamer interface {
	ConstructorName(s *Spec) string
}

// Artifact is a generated source unit. It is written exactly once.
type Artifact struct {
	// QualifiedName is the package qualified builder name. It identifies
	// the artifact within a round.
	QualifiedName string
	// Path is the destination handed to the Filer.
	Path string
	// Source is the full generated text.
	Source []byte
}

// NewEmitter returns the built-in emitter for the configured language.
func NewEmitter(c *Config) (Emitter, error) {
	switch c.Language {
	case "", LanguageGo:
		return &GoEmitter{
			Header:            c.Header,
			ConstructorPrefix: c.constructorPrefix(),
		}, nil
	case LanguageJava:
		return NewJavaEmitter(), nil
	default:
		return nil, NewConfigError("Language", c.Language, "unsupported language; use go or java")
	}
}

// Render renders the artifact of a spec with the given emitter.
func Render(e Emitter, s *Spec) (*Artifact, error) {
	src, err := e.Emit(s)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		QualifiedName: s.QualifiedName(),
		Path:          e.Path(s),
		Source:        src,
	}, nil
}
