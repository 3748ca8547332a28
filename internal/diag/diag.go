// Package diag defines the diagnostic records produced by configuration
// loading and emit, and renders them in the compiler's reporting format.
package diag

import (
	"fmt"
	"strings"
)

// Category classifies how severe a diagnostic is. Only Error categories make
// a run fail.
type Category int

const (
	Error Category = iota
	Warning
	Message
)

func (c Category) String() string {
	switch c {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Message:
		return "message"
	default:
		return "unknown"
	}
}

// Diagnostic is one problem found while loading configuration or emitting
// output, keyed by the numeric code the upstream compiler uses for the same
// condition.
type Diagnostic struct {
	File     string
	Pos      int // byte offset into File, -1 when unknown
	Line     int // 1-based, 0 until resolved
	Column   int
	Category Category
	Code     int
	Message  string
}

// New builds a diagnostic that is not attached to any file.
func New(category Category, code int, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Pos:      -1,
		Category: category,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	}
}

// NewError builds an error diagnostic that is not attached to any file.
func NewError(code int, format string, args ...interface{}) Diagnostic {
	return New(Error, code, format, args...)
}

// NewWarning builds a warning diagnostic that is not attached to any file.
func NewWarning(code int, format string, args ...interface{}) Diagnostic {
	return New(Warning, code, format, args...)
}

// WithFile attaches the diagnostic to a byte offset within a file. Pass a
// negative offset when only the file is known.
func (d Diagnostic) WithFile(file string, pos int) Diagnostic {
	d.File = file
	d.Pos = pos
	return d
}

// String renders the diagnostic as path(line,col): category TScode: message,
// omitting the location parts that are unknown. Diagnostics without a code,
// such as failures surfaced by the embedded compiler, drop the TS tag.
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.File != "" {
		b.WriteString(d.File)
		if d.Line > 0 {
			fmt.Fprintf(&b, "(%d,%d)", d.Line, d.Column)
		}
		b.WriteString(": ")
	}
	if d.Code != 0 {
		fmt.Fprintf(&b, "%s TS%d: %s", d.Category, d.Code, d.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s", d.Category, d.Message)
	}
	return b.String()
}

// PositionResolver turns a byte offset within a file into line and column
// numbers. *source.Cache satisfies it.
type PositionResolver interface {
	Position(path string, offset int) (line, column int)
}

// Resolve fills in line and column for every diagnostic that carries a file
// and byte offset but has not been resolved yet.
func Resolve(diagnostics []Diagnostic, resolver PositionResolver) {
	for i := range diagnostics {
		d := &diagnostics[i]
		if d.File == "" || d.Pos < 0 || d.Line > 0 {
			continue
		}
		d.Line, d.Column = resolver.Position(d.File, d.Pos)
	}
}

// Format renders diagnostics one per line.
func Format(diagnostics []Diagnostic) string {
	lines := make([]string, len(diagnostics))
	for i, d := range diagnostics {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diagnostics []Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Category == Error {
			return true
		}
	}
	return false
}
