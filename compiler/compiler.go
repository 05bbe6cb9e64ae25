// Package compiler runs builder generation for Go packages and descriptor
// batches. It connects the load package, which finds marked declarations,
// with the gen package, which turns them into builders.
//
//	cfg, err := gen.NewConfig(gen.WithConstructorCheck())
//	if err != nil {
//		log.Fatalf("creating config: %v", err)
//	}
//	report, err := compiler.Generate(ctx, cfg, []string{"./..."})
//	if err != nil {
//		log.Fatalf("running buildergen: %v", err)
//	}
//	if report.HasErrors() {
//		log.Fatal(report.Err())
//	}
package compiler

import (
	"context"
	"fmt"
	"io"

	"github.com/syssam/buildergen/compiler/gen"
	"github.com/syssam/buildergen/compiler/load"
)

// Option configures package loading.
type Option func(*load.Config)

// Dir sets the directory patterns are resolved in.
func Dir(dir string) Option {
	return func(c *load.Config) {
		c.Dir = dir
	}
}

// BuildFlags sets the flags passed to the build system, e.g. build tags.
func BuildFlags(flags ...string) Option {
	return func(c *load.Config) {
		c.BuildFlags = append(c.BuildFlags, flags...)
	}
}

// LoadConfig returns the package loading config for cfg and opts. The
// marker and constructor prefix come from cfg, so the loader scans for the
// marker the driver reports.
func LoadConfig(cfg *gen.Config, opts ...Option) *load.Config {
	lc := &load.Config{}
	if cfg != nil {
		lc.Marker = cfg.Marker
		lc.ConstructorPrefix = cfg.ConstructorPrefix
	}
	for _, opt := range opts {
		opt(lc)
	}
	return lc
}

// Generate loads the Go packages matching patterns and runs one round over
// their marked declarations.
//
// The returned error is non-nil only when the driver cannot be created or
// the packages cannot be loaded. Failed elements are reported in the
// Report and do not stop the others.
func Generate(ctx context.Context, cfg *gen.Config, patterns []string, opts ...Option) (*gen.Report, error) {
	drv, err := gen.NewDriver(cfg)
	if err != nil {
		return nil, err
	}
	elems, err := load.Load(ctx, LoadConfig(cfg, opts...), patterns...)
	if err != nil {
		return nil, err
	}
	return drv.Process(ctx, elems), nil
}

// GenerateBatch runs one round over the elements of a descriptor batch.
func GenerateBatch(ctx context.Context, cfg *gen.Config, r io.Reader, format load.Format) (*gen.Report, error) {
	drv, err := gen.NewDriver(cfg)
	if err != nil {
		return nil, err
	}
	elems, err := load.ReadBatch(r, format)
	if err != nil {
		return nil, fmt.Errorf("compiler: reading batch: %w", err)
	}
	return drv.Process(ctx, elems), nil
}

// Describe loads the Go packages matching patterns and writes their marked
// declarations as a descriptor batch. The batch can be fed back through
// GenerateBatch, e.g. to render builders in another language. cfg may be
// nil.
func Describe(ctx context.Context, cfg *gen.Config, w io.Writer, format load.Format, patterns []string, opts ...Option) error {
	elems, err := load.Load(ctx, LoadConfig(cfg, opts...), patterns...)
	if err != nil {
		return err
	}
	return load.WriteBatch(w, format, elems)
}
