// Package errors defines the error taxonomy of the content engine.
//
// Every failure surfaced by a query is one of a small set of typed errors
// (IOError, ValidationError, UnknownComponentError, NotFoundError and
// ContextError). Errors raised while processing a specific content file are
// wrapped in a ContentError carrying the file path, so callers can locate the
// offending file while still matching the underlying type with errors.As.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeComponent  ErrorType = "component"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeContext    ErrorType = "context"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeFileNotFound      = "ERR_FILE_NOT_FOUND"
	ErrCodeReadFailed        = "ERR_READ_FAILED"
	ErrCodeDecodeFailed      = "ERR_DECODE_FAILED"
	ErrCodeValidationFailed  = "ERR_VALIDATION_FAILED"
	ErrCodeUnknownComponent  = "ERR_UNKNOWN_COMPONENT"
	ErrCodeContentNotFound   = "ERR_CONTENT_NOT_FOUND"
	ErrCodeMissingContext    = "ERR_MISSING_CONTEXT"
	ErrCodeInvalidPattern    = "ERR_INVALID_PATTERN"
	ErrCodeMissingReference  = "ERR_MISSING_REFERENCE"
	ErrCodeConfigInvalid     = "ERR_CONFIG_INVALID"
	ErrCodeTransformFailed   = "ERR_TRANSFORM_FAILED"
	ErrCodeInternalError     = "ERR_INTERNAL"
)

// ContentError is a structured error type with context.
type ContentError struct {
	Type     ErrorType
	Code     string
	Message  string
	Cause    error
	Context  map[string]interface{}
	FilePath string
	Pattern  string
}

// Error implements the error interface.
func (e *ContentError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Pattern != "" {
		parts = append(parts, "pattern:"+e.Pattern)
	}

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		if result == "" {
			return e.Cause.Error()
		}
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *ContentError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *ContentError) Is(target error) bool {
	var t *ContentError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *ContentError) WithContext(key string, value interface{}) *ContentError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithFile records the content file the error was raised for.
func (e *ContentError) WithFile(path string) *ContentError {
	e.FilePath = path

	return e
}

// WithPattern records the query pattern the error was raised for.
func (e *ContentError) WithPattern(pattern string) *ContentError {
	e.Pattern = pattern

	return e
}

// Wrap wraps err in a ContentError whose type is derived from err.
func Wrap(err error, code, message string) *ContentError {
	if err == nil {
		return nil
	}

	return &ContentError{
		Type:    TypeOf(err),
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// InFile wraps err with the path of the content file being processed.
// It returns nil when err is nil.
func InFile(path string, err error) error {
	if err == nil {
		return nil
	}

	var ce *ContentError
	if errors.As(err, &ce) && ce.FilePath == path {
		return err
	}

	return &ContentError{
		Type:     TypeOf(err),
		Cause:    err,
		FilePath: path,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *ContentError {
	return &ContentError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// TypeOf classifies err by the first typed error found in its chain.
func TypeOf(err error) ErrorType {
	var (
		ioErr        *IOError
		validation   *ValidationError
		unknown      *UnknownComponentError
		notFound     *NotFoundError
		missingScope *ContextError
		ce           *ContentError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &validation):
		return ErrorTypeValidation
	case errors.As(err, &unknown):
		return ErrorTypeComponent
	case errors.As(err, &notFound):
		return ErrorTypeNotFound
	case errors.As(err, &missingScope):
		return ErrorTypeContext
	case errors.As(err, &ioErr):
		return ErrorTypeIO
	case errors.As(err, &ce):
		return ce.Type
	default:
		return ErrorTypeInternal
	}
}

// FilePathOf returns the innermost content file recorded in err's chain.
func FilePathOf(err error) string {
	path := ""
	for err != nil {
		if ce, ok := err.(*ContentError); ok && ce.FilePath != "" {
			path = ce.FilePath
		}
		err = errors.Unwrap(err)
	}

	return path
}

// ErrorHandler provides centralized error handling.
type ErrorHandler struct {
	logger Logger
}

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err with a level matching its type. Content defects are
// warnings for the operator; everything else is an error.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	errType := TypeOf(err)
	fields := []interface{}{"type", errType}
	if path := FilePathOf(err); path != "" {
		fields = append(fields, "file", path)
	}

	switch errType {
	case ErrorTypeValidation, ErrorTypeComponent, ErrorTypeNotFound:
		h.logger.Warn(ctx, err, "Content error occurred", fields...)
	default:
		h.logger.Error(ctx, err, "Error occurred", fields...)
	}
}
