package gen

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/buildergen"
	"github.com/syssam/buildergen/compiler/load"
)

// memFiler keeps written artifacts in memory and fails the paths in fail.
type memFiler struct {
	mu    sync.Mutex
	files map[string]*bytes.Buffer
	fail  map[string]error
}

func newMemFiler() *memFiler {
	return &memFiler{files: map[string]*bytes.Buffer{}, fail: map[string]error{}}
}

func (m *memFiler) Create(path string) (io.WriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail[path]; err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	m.files[path] = buf
	return nopCloser{buf}, nil
}

func (m *memFiler) file(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf, ok := m.files[path]
	if !ok {
		return "", false
	}
	return buf.String(), true
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func structElement(name string, fields ...string) *load.Element {
	el := &load.Element{Kind: load.KindStruct, Name: name, Package: "demo", Pos: name + ".go:3:6"}
	for _, f := range fields {
		el.Members = append(el.Members, load.Member{Name: f, Type: "int"})
	}
	return el
}

func newTestDriver(t *testing.T, opts ...Option) (*Driver, *memFiler) {
	t.Helper()
	filer := newMemFiler()
	c, err := NewConfig(append([]Option{WithFiler(filer)}, opts...)...)
	require.NoError(t, err)
	d, err := NewDriver(c)
	require.NoError(t, err)
	return d, filer
}

func TestDriver_Point(t *testing.T) {
	d, filer := newTestDriver(t, WithLanguage("java"))
	report := d.Process(context.Background(), []*load.Element{structElement("Point", "x", "y")})

	require.Len(t, report.Diagnostics, 1)
	diag := report.Diagnostics[0]
	assert.Equal(t, SeverityNote, diag.Severity)
	assert.Equal(t, "generated builder: demo.PointBuilder", diag.Message)
	assert.True(t, report.Claimed)
	assert.False(t, report.HasErrors())
	assert.NoError(t, report.Err())
	assert.NotEmpty(t, report.Round)

	require.Len(t, report.Artifacts, 1)
	assert.Equal(t, "demo/PointBuilder.java", report.Artifacts[0].Path)
	src, ok := filer.file("demo/PointBuilder.java")
	require.True(t, ok)
	assert.Equal(t, pointBuilderJava, src)
}

func TestDriver_Misuse(t *testing.T) {
	d, filer := newTestDriver(t)
	method := &load.Element{Kind: load.KindMethod, Name: "User.Close", Package: "demo", Pos: "user.go:9:1"}
	report := d.Process(context.Background(), []*load.Element{method})

	require.Len(t, report.Diagnostics, 1)
	diag := report.Diagnostics[0]
	assert.Equal(t, SeverityError, diag.Severity)
	assert.Same(t, method, diag.Element)
	assert.True(t, buildergen.IsStructuralError(diag.Err))
	assert.Contains(t, diag.Message, "marker can only be applied to type declarations")
	assert.Empty(t, report.Artifacts)
	assert.Empty(t, filer.files)
	assert.True(t, report.Claimed)
}

func TestDriver_Isolation(t *testing.T) {
	d, filer := newTestDriver(t, WithLanguage("java"))
	diskFull := errors.New("disk full")
	filer.fail["demo/SecondBuilder.java"] = diskFull

	elems := []*load.Element{
		structElement("First", "a"),
		structElement("Second", "b"),
		{Kind: load.KindFunc, Name: "Helper", Package: "demo"},
		structElement("Third", "c"),
	}
	report := d.Process(context.Background(), elems)

	require.Len(t, report.Diagnostics, 4)
	assert.Equal(t, SeverityNote, report.Diagnostics[0].Severity)
	assert.Equal(t, SeverityError, report.Diagnostics[1].Severity)
	assert.Equal(t, SeverityError, report.Diagnostics[2].Severity)
	assert.Equal(t, SeverityNote, report.Diagnostics[3].Severity)
	for i, diag := range report.Diagnostics {
		assert.Same(t, elems[i], diag.Element)
	}

	emitErr := report.Diagnostics[1].Err
	assert.True(t, buildergen.IsEmissionError(emitErr))
	assert.ErrorIs(t, emitErr, diskFull)
	assert.True(t, buildergen.IsStructuralError(report.Diagnostics[2].Err))

	_, ok := filer.file("demo/FirstBuilder.java")
	assert.True(t, ok, "first artifact is still written")
	_, ok = filer.file("demo/ThirdBuilder.java")
	assert.True(t, ok, "elements after a failure are still processed")
	require.Len(t, report.Artifacts, 2)
	assert.Len(t, report.Errors(), 2)
	assert.Len(t, report.Notes(), 2)
	assert.ErrorIs(t, report.Err(), diskFull)
}

func TestDriver_Workers(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	var elems []*load.Element
	for _, n := range names {
		elems = append(elems, structElement(n, "v"))
	}
	d, _ := newTestDriver(t, WithLanguage("java"), WithWorkers(4))
	report := d.Process(context.Background(), elems)

	require.Len(t, report.Artifacts, len(names))
	for i, n := range names {
		assert.Equal(t, "demo."+n+"Builder", report.Artifacts[i].QualifiedName)
		assert.Same(t, elems[i], report.Diagnostics[i].Element)
	}
}

func TestDriver_ConstructorCheck(t *testing.T) {
	el := structElement("Point", "x", "y")
	el.Constructor = &load.Signature{Name: "NewPoint", Params: []string{"int"}}

	d, _ := newTestDriver(t)
	report := d.Process(context.Background(), []*load.Element{el})
	assert.False(t, report.HasErrors(), "unchecked by default")

	d, filer := newTestDriver(t, WithConstructorCheck())
	report = d.Process(context.Background(), []*load.Element{el})
	require.True(t, report.HasErrors())
	assert.True(t, buildergen.IsStructuralError(report.Diagnostics[0].Err))
	assert.Empty(t, filer.files)

	el.Constructor.Params = []string{"int", "int"}
	report = d.Process(context.Background(), []*load.Element{el})
	assert.False(t, report.HasErrors())

	// Java constructors carry the class name.
	d, _ = newTestDriver(t, WithLanguage("java"), WithConstructorCheck())
	el.Constructor.Name = "Point"
	report = d.Process(context.Background(), []*load.Element{el})
	assert.False(t, report.HasErrors())
}

func TestDriver_EmitFailure(t *testing.T) {
	el := structElement("Point", "x")
	el.Package = ""
	d, _ := newTestDriver(t)
	report := d.Process(context.Background(), []*load.Element{el})
	require.Len(t, report.Diagnostics, 1)
	err := report.Diagnostics[0].Err
	require.True(t, buildergen.IsEmissionError(err))
	var emitErr *buildergen.EmissionError
	require.ErrorAs(t, err, &emitErr)
	assert.Equal(t, "PointBuilder", emitErr.Artifact)
}

func TestDriver_PathConflict(t *testing.T) {
	d, filer := newTestDriver(t, WithWorkers(4))
	elems := []*load.Element{
		structElement("HTTPServer", "addr"),
		structElement("HttpServer", "addr"),
		structElement("Client", "addr"),
	}
	report := d.Process(context.Background(), elems)

	require.Len(t, report.Diagnostics, 3)
	assert.Equal(t, SeverityNote, report.Diagnostics[0].Severity)
	assert.Equal(t, SeverityNote, report.Diagnostics[2].Severity)
	conflict := report.Diagnostics[1]
	assert.Equal(t, SeverityError, conflict.Severity)
	assert.True(t, buildergen.IsEmissionError(conflict.Err))
	assert.ErrorIs(t, conflict.Err, ErrPathConflict)
	assert.Contains(t, conflict.Message, "demo.HTTPServerBuilder")

	src, ok := filer.file("http_server_builder.go")
	require.True(t, ok)
	assert.Contains(t, src, "type HTTPServerBuilder struct")
	require.Len(t, report.Artifacts, 2)
	assert.Equal(t, "demo.ClientBuilder", report.Artifacts[1].QualifiedName)
}

func TestDriver_DirFiler(t *testing.T) {
	dir := t.TempDir()
	el := structElement("Point", "x", "y")
	el.Dir = dir

	c, err := NewConfig()
	require.NoError(t, err)
	d, err := NewDriver(c)
	require.NoError(t, err)
	report := d.Process(context.Background(), []*load.Element{el})
	require.False(t, report.HasErrors(), "%v", report.Err())

	src, err := os.ReadFile(filepath.Join(dir, "point_builder.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "return NewPoint(b.x, b.y)")
}

func TestDriver_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d, _ := newTestDriver(t, WithLanguage("java"), WithLogger(logger))
	report := d.Process(context.Background(), []*load.Element{
		structElement("Point", "x"),
		{Kind: load.KindVar, Name: "Default", Package: "demo"},
	})
	out := buf.String()
	assert.Contains(t, out, "round="+report.Round)
	assert.Contains(t, out, "generated builder: demo.PointBuilder")
	assert.Contains(t, out, "element failed")
	assert.Contains(t, out, "round finished")
}

func TestNewDriver(t *testing.T) {
	_, err := NewDriver(nil)
	assert.True(t, IsConfigError(err))

	_, err = NewDriver(&Config{Language: "rust"})
	assert.True(t, IsConfigError(err))

	d, err := NewDriver(&Config{})
	require.NoError(t, err)
	assert.Equal(t, buildergen.Marker, d.Marker())
	assert.Equal(t, buildergen.DescriptorVersion, d.SupportedVersion())
	assert.Equal(t, "go", d.Emitter().Name())

	d, err = NewDriver(MustNewConfig(WithMarker("//gen:builder")))
	require.NoError(t, err)
	assert.Equal(t, "gen:builder", d.Marker())

	custom := NewJavaEmitter()
	d, err = NewDriver(&Config{Emitter: custom})
	require.NoError(t, err)
	assert.Same(t, custom, d.Emitter())
}
