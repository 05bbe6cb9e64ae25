package gen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotGenerated is returned when an artifact would replace a Go file
// that does not carry a generated-code header.
var ErrNotGenerated = errors.New("buildergen: refusing to overwrite a file that is not generated")

// Filer opens write destinations for artifacts.
//
// Each call returns a fresh destination that the caller fully writes and
// closes; destinations are never shared between artifacts.
type Filer interface {
	Create(path string) (io.WriteCloser, error)
}

// DirFiler writes artifacts to the file system. Relative paths are
// resolved against Root. An existing Go file is only replaced when it
// carries a generated-code header.
type DirFiler struct {
	Root string
}

var _ Filer = (*DirFiler)(nil)

// Create implements Filer.
func (f *DirFiler) Create(path string) (io.WriteCloser, error) {
	if !filepath.IsAbs(path) && f.Root != "" {
		path = filepath.Join(f.Root, path)
	}
	if err := checkGenerated(path); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

// checkGenerated fails when path is an existing Go file written by hand.
func checkGenerated(path string) error {
	if filepath.Ext(path) != ".go" {
		return nil
	}
	src, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	}
	f, err := parser.ParseFile(token.NewFileSet(), path, src, parser.PackageClauseOnly|parser.ParseComments)
	if err != nil || !ast.IsGenerated(f) {
		return fmt.Errorf("%w: %s", ErrNotGenerated, path)
	}
	return nil
}

// writeArtifact writes an artifact to a destination opened from the filer.
// The destination is closed on every path; a failed close fails the write.
func writeArtifact(f Filer, a *Artifact) (err error) {
	w, err := f.Create(a.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	_, err = w.Write(a.Source)
	return err
}
