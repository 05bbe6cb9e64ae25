package gen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/syssam/buildergen/compiler/load"
)

// Severity is the severity of a diagnostic.
type Severity uint8

// Diagnostic severities.
const (
	SeverityNote Severity = iota
	SeverityError
)

// String implements the fmt.Stringer interface.
func (s Severity) String() string {
	if s == SeverityError {
		return "ERROR"
	}
	return "NOTE"
}

// Diagnostic is a message about one processed element.
type Diagnostic struct {
	Severity Severity
	Message  string
	// Element is the element the diagnostic refers to.
	Element *load.Element
	// Err is the failure behind an ERROR diagnostic.
	Err error
}

// String returns the diagnostic in "location: SEVERITY: message" form.
func (d Diagnostic) String() string {
	if d.Element == nil {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Element, d.Severity, d.Message)
}

// Reporter collects the diagnostics of one round. Counters are local to
// reporting and never influence generation.
type Reporter struct {
	logger *slog.Logger
	diags  []Diagnostic
	notes  int
	errors int
}

// NewReporter returns a reporter that also logs to l.
func NewReporter(l *slog.Logger) *Reporter {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Reporter{logger: l}
}

// Note reports a successful element.
func (r *Reporter) Note(ctx context.Context, el *load.Element, msg string) {
	r.notes++
	r.diags = append(r.diags, Diagnostic{Severity: SeverityNote, Message: msg, Element: el})
	r.logger.InfoContext(ctx, msg, "element", el.String())
}

// Error reports a failed element.
func (r *Reporter) Error(ctx context.Context, el *load.Element, err error) {
	r.errors++
	r.diags = append(r.diags, Diagnostic{Severity: SeverityError, Message: err.Error(), Element: el, Err: err})
	r.logger.ErrorContext(ctx, "element failed", "element", el.String(), "error", err)
}

// Diagnostics returns the diagnostics in report order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diags
}

// Counts returns the number of notes and errors reported.
func (r *Reporter) Counts() (notes, errors int) {
	return r.notes, r.errors
}
