package buildergen

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for failed elements.
var (
	// ErrStructural is returned when the marker is applied to a declaration
	// the generator cannot build for.
	ErrStructural = errors.New("buildergen: structural error")

	// ErrEmission is returned when a generated artifact could not be written.
	ErrEmission = errors.New("buildergen: emission error")
)

// StructuralError reports a misapplied marker, such as a marker on a method
// or a field instead of a struct type declaration.
type StructuralError struct {
	Element string // Name of the offending declaration.
	Kind    string // Kind of the offending declaration.
	Message string
}

// Error returns the error string.
func (e *StructuralError) Error() string {
	var b strings.Builder
	b.WriteString("buildergen: structural error")
	if e.Kind != "" {
		b.WriteString(" on ")
		b.WriteString(e.Kind)
	}
	if e.Element != "" {
		fmt.Fprintf(&b, " %q", e.Element)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target error matches StructuralError.
// This allows errors.Is(structErr, ErrStructural) to return true.
func (e *StructuralError) Is(err error) bool {
	return err == ErrStructural
}

// NewStructuralError returns a new StructuralError for the given declaration.
func NewStructuralError(element, kind, message string) *StructuralError {
	return &StructuralError{Element: element, Kind: kind, Message: message}
}

// IsStructuralError returns true if the error is a StructuralError.
func IsStructuralError(err error) bool {
	if err == nil {
		return false
	}
	var e *StructuralError
	return errors.As(err, &e) || errors.Is(err, ErrStructural)
}

// EmissionError reports a failed artifact render or write.
// The underlying I/O or formatting error is kept as the cause.
type EmissionError struct {
	Artifact string // Qualified name of the artifact.
	Path     string // Destination path, if known.
	Cause    error
}

// Error returns the error string.
func (e *EmissionError) Error() string {
	var b strings.Builder
	b.WriteString("buildergen: emission error")
	if e.Artifact != "" {
		b.WriteString(" for ")
		b.WriteString(e.Artifact)
	}
	if e.Path != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.Path)
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *EmissionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches EmissionError.
func (e *EmissionError) Is(err error) bool {
	return err == ErrEmission
}

// NewEmissionError returns a new EmissionError for the given artifact.
func NewEmissionError(artifact, path string, cause error) *EmissionError {
	return &EmissionError{Artifact: artifact, Path: path, Cause: cause}
}

// IsEmissionError returns true if the error is an EmissionError.
func IsEmissionError(err error) bool {
	if err == nil {
		return false
	}
	var e *EmissionError
	return errors.As(err, &e) || errors.Is(err, ErrEmission)
}
