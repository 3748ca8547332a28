package errors

import "fmt"

// Common wrapping patterns used throughout the front end so failure text stays
// consistent between the configuration, emit, and output stages.
// Configuration and transpile failures are not wrapped here: those travel as
// compiler diagnostics, not tool errors.

// WrapFileSystemError wraps a read or write failure around the emit pipeline
func WrapFileSystemError(operation, path string, cause error) *ToolError {
	return Wrap(FileSystemErrorCode, fmt.Sprintf("failed to %s '%s'", operation, path), cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// UsageError creates an error for malformed command-line input
func UsageError(format string, args ...interface{}) *ToolError {
	return Newf(UsageErrorCode, format, args...)
}

// ValidationError creates an error for a failed requirement check, with the
// suggestions surfaced to the user alongside the message
func ValidationError(message string, suggestions ...string) *ToolError {
	return New(ValidationErrorCode, message).WithSuggestions(suggestions...)
}
