package errors

import (
	"fmt"
	"strings"
)

// IOError reports a missing directory or an unreadable file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError creates an I/O error for operation op on path.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// ValidationError identifies the first field of a value that does not match
// its schema. Path is dotted with bracketed indices, e.g. "date[1]" or
// "libs[0].name"; it is empty when the root value itself mismatches.
type ValidationError struct {
	Path     string
	Expected string
	Actual   string
	Message  string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Expected != "" {
		fmt.Fprintf(&b, " (expected: %s)", e.Expected)
	}
	if e.Actual != "" {
		fmt.Fprintf(&b, " (actual: %s)", e.Actual)
	}

	return b.String()
}

// NewValidationError creates a validation error for path.
func NewValidationError(path, expected, actual string) *ValidationError {
	return &ValidationError{Path: path, Expected: expected, Actual: actual}
}

// UnknownComponentError reports a markup tag or semantic component name that
// has no registry entry.
type UnknownComponentError struct {
	Tag string
}

func (e *UnknownComponentError) Error() string {
	return "unknown component: " + e.Tag
}

// NotFoundError reports that a query required one item but none matched.
type NotFoundError struct {
	Pattern string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("content for %q not found", e.Pattern)
}

// ContextError reports that an ambient value was read outside of its scope.
type ContextError struct {
	Key string
}

func (e *ContextError) Error() string {
	return e.Key + " accessed outside of its scope"
}

// MissingReference creates the error raised when content refers to a name
// that is absent from a previously loaded data set.
func MissingReference(kind, name string) *ContentError {
	err := &ContentError{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeMissingReference,
		Message: fmt.Sprintf("no %s found: %s", kind, name),
	}

	return err.WithContext(kind, name)
}
