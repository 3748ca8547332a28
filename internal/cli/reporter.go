package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/scythejs/scythe/internal/diag"
	"github.com/scythejs/scythe/internal/errors"
)

var (
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
)

// Reporter renders compiler diagnostics and terminal tool errors for the
// user.
type Reporter struct {
	out     io.Writer
	verbose bool
}

// NewReporter creates a reporter writing to out.
func NewReporter(out io.Writer, verbose bool) *Reporter {
	return &Reporter{out: out, verbose: verbose}
}

// ReportDiagnostics prints every diagnostic colored by severity, then a
// tally line the way tsc summarizes a failed build.
func (r *Reporter) ReportDiagnostics(diagnostics []diag.Diagnostic) {
	errorCount := 0
	for _, d := range diagnostics {
		switch d.Category {
		case diag.Error:
			errorCount++
			errorColor.Fprintln(r.out, d.String())
		case diag.Warning:
			warningColor.Fprintln(r.out, d.String())
		default:
			fmt.Fprintln(r.out, d.String())
		}
	}

	switch {
	case errorCount == 1:
		fmt.Fprintf(r.out, "\nFound 1 error.\n")
	case errorCount > 1:
		fmt.Fprintf(r.out, "\nFound %d errors.\n", errorCount)
	}
}

// ReportError prints a terminal tool failure with its suggestions. Rich
// errors show their context and cause chain in verbose mode.
func (r *Reporter) ReportError(err error) {
	var toolErr *errors.ToolError
	if !stderrors.As(err, &toolErr) {
		fmt.Fprintf(r.out, "scythe: %v\n", err)
		return
	}

	fmt.Fprintf(r.out, "scythe: %s\n", toolErr.Error())

	if r.verbose {
		if toolErr.Cause != nil {
			fmt.Fprintf(r.out, "  cause: %v\n", toolErr.Cause)
		}
		context := toolErr.Context()
		keys := make([]string, 0, len(context))
		for key := range context {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(r.out, "  %s: %v\n", key, context[key])
		}
	}

	for i, suggestion := range toolErr.Suggestions() {
		if i == 0 {
			fmt.Fprintf(r.out, "\nSuggestions:\n")
		}
		fmt.Fprintf(r.out, "  %d. %s\n", i+1, suggestion)
	}
}
