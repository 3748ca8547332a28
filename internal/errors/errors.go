package errors

import (
	"fmt"
)

// ErrorCode classifies tool failures so the outermost layer can map them to
// exit behavior and reporting detail.
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// UsageErrorCode covers malformed or unrecognized command-line input.
	UsageErrorCode
	// ConfigErrorCode covers project-configuration loading and resolution.
	ConfigErrorCode
	// ValidationErrorCode covers requirement checks on a loaded configuration.
	ValidationErrorCode
	// EmitErrorCode covers failures surfaced while driving the transpiler.
	EmitErrorCode
	// FileSystemErrorCode covers reads and writes around the emit pipeline.
	FileSystemErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case UsageErrorCode:
		return "UsageError"
	case ConfigErrorCode:
		return "ConfigError"
	case ValidationErrorCode:
		return "ValidationError"
	case EmitErrorCode:
		return "EmitError"
	case FileSystemErrorCode:
		return "FileSystemError"
	default:
		return "UnknownError"
	}
}

// SourceLocation represents where in the project's input an error occurred
type SourceLocation struct {
	File   string // file path where error occurred
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// String returns a formatted string representation of the location
func (s SourceLocation) String() string {
	if s.File == "" {
		return "unknown location"
	}
	if s.Line == 0 {
		return s.File
	}
	if s.Column == 0 {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty returns true if the location has no useful information
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// ToolError is the error type carried through the front end: a code for exit
// mapping, an optional input location, free-form context for reporting, and
// suggestions shown to the user.
type ToolError struct {
	Code        ErrorCode              // type of error
	Message     string                 // error message
	Loc         SourceLocation         // where the error occurred
	Cause       error                  // underlying error cause
	ContextData map[string]interface{} // additional context information
	Hints       []string               // helpful suggestions for fixing the error
}

// Error implements the error interface
func (e *ToolError) Error() string {
	if e.Loc.IsEmpty() {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Loc.String(), e.Message)
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *ToolError) Unwrap() error {
	return e.Cause
}

// Context returns the error context data
func (e *ToolError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

// Suggestions returns helpful suggestions for fixing the error
func (e *ToolError) Suggestions() []string {
	return e.Hints
}

// WithLocation adds location information to the error
func (e *ToolError) WithLocation(loc SourceLocation) *ToolError {
	e.Loc = loc
	return e
}

// WithCause adds an underlying error cause
func (e *ToolError) WithCause(cause error) *ToolError {
	e.Cause = cause
	return e
}

// WithContext adds context data to the error
func (e *ToolError) WithContext(key string, value interface{}) *ToolError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestions adds helpful suggestions for fixing the error
func (e *ToolError) WithSuggestions(suggestions ...string) *ToolError {
	e.Hints = append(e.Hints, suggestions...)
	return e
}

// New creates a new ToolError with the specified code and message
func New(code ErrorCode, message string) *ToolError {
	return &ToolError{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// Newf creates a new ToolError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ToolError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *ToolError {
	return &ToolError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Hints:   make([]string, 0),
	}
}

// Wrapf creates a new error that wraps another error with a formatted message
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *ToolError {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}
