package gen

import (
	"bytes"
	"path"
	"strings"
	"text/template"
)

// javaTemplate renders a builder class. Whitespace is significant: the
// output is compared byte for byte across runs.
const javaTemplate = `{{ if .Package }}package {{ .Package }};

{{ end }}public class {{ .BuilderName }} {
{{ range .Fields }}    private {{ .Type }} {{ .Name }};
{{ end }}
    private {{ .BuilderName }}() {}

    public static {{ .BuilderName }} {{ .FactoryName }}() {
        return new {{ .BuilderName }}();
    }

{{ range .Fields }}    public {{ $.BuilderName }} {{ .Setter }}({{ .Type }} {{ .Name }}) {
        this.{{ .Name }} = {{ .Name }};
        return this;
    }

{{ end }}    public {{ .Name }} build() {
        return new {{ .Name }}({{ .Args }});
    }
}
`

// JavaEmitter renders builders as Java classes, for descriptor batches
// handed over by Java hosts.
type JavaEmitter struct {
	tmpl *template.Template
}

var (
	_ Emitter          = (*JavaEmitter)(nil)
	_ ConstructorNamer = (*JavaEmitter)(nil)
)

// NewJavaEmitter returns a new JavaEmitter.
func NewJavaEmitter() *JavaEmitter {
	return &JavaEmitter{
		tmpl: template.Must(template.New("builder.java").Parse(javaTemplate)),
	}
}

// Name implements Emitter.
func (e *JavaEmitter) Name() string { return string(LanguageJava) }

// Path implements Emitter, e.g. com/example/UserBuilder.java.
func (e *JavaEmitter) Path(s *Spec) string {
	name := s.BuilderName + ".java"
	if s.Type.Package == "" {
		return name
	}
	return path.Join(strings.ReplaceAll(s.Type.Package, ".", "/"), name)
}

// ConstructorName implements ConstructorNamer. Java constructors carry
// the class name.
func (e *JavaEmitter) ConstructorName(s *Spec) string { return s.Type.Name }

// Emit implements Emitter.
func (e *JavaEmitter) Emit(s *Spec) ([]byte, error) {
	args := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		args[i] = f.Name
	}
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, struct {
		*Spec
		Package string
		Name    string
		Args    string
	}{
		Spec:    s,
		Package: s.Type.Package,
		Name:    s.Type.Name,
		Args:    strings.Join(args, ", "),
	}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
