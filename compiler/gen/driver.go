package gen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/buildergen"
	"github.com/syssam/buildergen/compiler/load"
)

// ErrPathConflict is returned when two elements of a round map to the same
// artifact path.
var ErrPathConflict = errors.New("buildergen: artifact path conflict")

// Driver runs generation rounds. It registers interest in one marker and,
// per round, turns every marked element into an artifact or a diagnostic.
//
// A Driver keeps no state between rounds; everything a round produces is
// returned in its Report.
type Driver struct {
	config  *Config
	emitter Emitter
	filer   Filer
	logger  *slog.Logger
}

// NewDriver creates a driver from the given config.
func NewDriver(c *Config) (*Driver, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	emitter := c.Emitter
	if emitter == nil {
		var err error
		if emitter, err = NewEmitter(c); err != nil {
			return nil, err
		}
	}
	filer := c.Filer
	if filer == nil {
		filer = &DirFiler{Root: c.OutputDir}
	}
	return &Driver{
		config:  c,
		emitter: emitter,
		filer:   filer,
		logger:  c.logger(),
	}, nil
}

// Marker returns the marker the driver processes elements for.
func (d *Driver) Marker() string { return d.config.marker() }

// SupportedVersion returns the latest descriptor version the driver reads.
func (d *Driver) SupportedVersion() int { return buildergen.DescriptorVersion }

// Emitter returns the emitter used by the driver.
func (d *Driver) Emitter() Emitter { return d.emitter }

// Report is the outcome of one round.
type Report struct {
	// Round identifies the round in logs.
	Round string
	// Artifacts are the artifacts written, in element order.
	Artifacts []*Artifact
	// Diagnostics holds exactly one diagnostic per element, in element order.
	Diagnostics []Diagnostic
	// Claimed reports that the driver claimed the marker for all elements,
	// whether they succeeded or not.
	Claimed bool
}

// HasErrors reports whether any element failed.
func (r *Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the ERROR diagnostics.
func (r *Report) Errors() []Diagnostic {
	return r.filter(SeverityError)
}

// Notes returns the NOTE diagnostics.
func (r *Report) Notes() []Diagnostic {
	return r.filter(SeverityNote)
}

// Err joins the errors of all failed elements, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, d := range r.Errors() {
		errs = append(errs, d.Err)
	}
	return errors.Join(errs...)
}

func (r *Report) filter(s Severity) []Diagnostic {
	var diags []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == s {
			diags = append(diags, d)
		}
	}
	return diags
}

// Process runs one round over the elements newly marked in a pass.
//
// Every element is attempted exactly once and independently of the others:
// a structural or write failure of one element is reported as its ERROR
// diagnostic and never stops the rest of the batch. Elements are rendered
// in parallel and written in element order, so when two elements map to
// the same path the first one wins and the second fails.
func (d *Driver) Process(ctx context.Context, elems []*load.Element) *Report {
	report := &Report{Round: uuid.NewString(), Claimed: true}
	logger := d.logger.With("round", report.Round)
	logger.DebugContext(ctx, "round started", "elements", len(elems), "emitter", d.emitter.Name())

	// Outcomes are indexed by element so reports keep element order
	// regardless of the worker count.
	type outcome struct {
		artifact *Artifact
		err      error
	}
	outcomes := make([]outcome, len(elems))
	var g errgroup.Group
	g.SetLimit(d.config.workers())
	for i, el := range elems {
		g.Go(func() error {
			a, err := d.render(el)
			outcomes[i] = outcome{artifact: a, err: err}
			return nil
		})
	}
	_ = g.Wait()

	rep := NewReporter(logger)
	written := make(map[string]string, len(elems))
	for i, o := range outcomes {
		if o.err == nil {
			o.err = d.write(o.artifact, written)
		}
		if o.err != nil {
			rep.Error(ctx, elems[i], o.err)
			continue
		}
		report.Artifacts = append(report.Artifacts, o.artifact)
		rep.Note(ctx, elems[i], "generated builder: "+o.artifact.QualifiedName)
	}
	report.Diagnostics = rep.Diagnostics()
	notes, errs := rep.Counts()
	logger.DebugContext(ctx, "round finished", "generated", notes, "failed", errs)
	return report
}

// render runs extraction, spec derivation and rendering for one element.
func (d *Driver) render(el *load.Element) (*Artifact, error) {
	desc, err := load.Extract(el)
	if err != nil {
		return nil, err
	}
	spec := NewSpec(desc, d.config.Article)
	if d.config.CheckConstructor {
		want := d.config.constructorPrefix() + desc.Name
		if cn, ok := d.emitter.(ConstructorNamer); ok {
			want = cn.ConstructorName(spec)
		}
		if err := CheckConstructor(spec, want); err != nil {
			return nil, err
		}
	}
	a, err := Render(d.emitter, spec)
	if err != nil {
		return nil, buildergen.NewEmissionError(spec.QualifiedName(), d.emitter.Path(spec), err)
	}
	return a, nil
}

// write writes an artifact unless an earlier artifact of the round took
// its path. written maps cleaned paths to the artifacts written there.
func (d *Driver) write(a *Artifact, written map[string]string) error {
	path := filepath.Clean(a.Path)
	if prev, ok := written[path]; ok {
		return buildergen.NewEmissionError(a.QualifiedName, a.Path,
			fmt.Errorf("%w: already written by %s", ErrPathConflict, prev))
	}
	if err := writeArtifact(d.filer, a); err != nil {
		return buildergen.NewEmissionError(a.QualifiedName, a.Path, err)
	}
	written[path] = a.QualifiedName
	return nil
}
