package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/syssam/buildergen/compiler/gen"
)

var (
	noteColor  = color.New(color.FgGreen)
	errorColor = color.New(color.FgRed, color.Bold)
)

// printReport prints one line per diagnostic and a summary. It returns
// errFailed when the round reported errors.
func printReport(w io.Writer, r *gen.Report) error {
	for _, d := range r.Diagnostics {
		sev := noteColor.Sprint(d.Severity)
		if d.Severity == gen.SeverityError {
			sev = errorColor.Sprint(d.Severity)
		}
		if d.Element != nil {
			fmt.Fprintf(w, "%s: %s: %s\n", d.Element, sev, d.Message)
		} else {
			fmt.Fprintf(w, "%s: %s\n", sev, d.Message)
		}
	}
	errs := len(r.Errors())
	fmt.Fprintf(w, "%d generated, %d failed\n", len(r.Artifacts), errs)
	if errs > 0 {
		return errFailed
	}
	return nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s: %v\n", errorColor.Sprint("error"), err)
}
