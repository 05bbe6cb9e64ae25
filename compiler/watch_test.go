package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/buildergen/compiler/gen"
)

func TestTriggers(t *testing.T) {
	tests := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"/src/demo/user.go", fsnotify.Write, true},
		{"/src/demo/user.go", fsnotify.Create, true},
		{"/src/demo/user.go", fsnotify.Remove, true},
		{"/src/demo/user.go", fsnotify.Chmod, false},
		{"/src/demo/user_builder.go", fsnotify.Write, false},
		{"/src/demo/user_test.go", fsnotify.Write, false},
		{"/src/demo/.user.go.swp", fsnotify.Write, false},
		{"/src/demo/README.md", fsnotify.Write, false},
	}
	for _, tt := range tests {
		got := triggers(fsnotify.Event{Name: tt.name, Op: tt.op})
		assert.Equal(t, tt.want, got, "%s %s", tt.op, tt.name)
	}
}

func TestWatch(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}
	dir := t.TempDir()
	write := func(name, src string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
	}
	write("go.mod", "module example.com/watched\n\ngo 1.24\n")
	write("point.go", `package watched

//buildergen:builder
type Point struct {
	x, y int
}

func NewPoint(x, y int) *Point { return &Point{x: x, y: y} }
`)

	reports := make(chan *gen.Report, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, gen.MustNewConfig(), &WatchConfig{
			Debounce: 50 * time.Millisecond,
			OnReport: func(r *gen.Report, err error) {
				if err != nil {
					t.Errorf("round failed: %v", err)
					return
				}
				reports <- r
			},
		}, []string{"."}, Dir(dir))
	}()

	next := func() *gen.Report {
		select {
		case r := <-reports:
			return r
		case <-time.After(30 * time.Second):
			t.Fatal("timed out waiting for a round")
			return nil
		}
	}

	first := next()
	require.Len(t, first.Artifacts, 1)
	_, err := os.Stat(filepath.Join(dir, "point_builder.go"))
	require.NoError(t, err)

	// Renamed into place so no round sees a partial file.
	write("size.go.tmp", `package watched

//buildergen:builder
type Size struct {
	w, h int
}

func NewSize(w, h int) *Size { return &Size{w: w, h: h} }
`)
	require.NoError(t, os.Rename(filepath.Join(dir, "size.go.tmp"), filepath.Join(dir, "size.go")))
	second := next()
	require.Len(t, second.Artifacts, 2)
	assert.Equal(t, "watched.SizeBuilder", second.Artifacts[1].QualifiedName)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not stop")
	}
}
