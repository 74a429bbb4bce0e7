package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentErrorError(t *testing.T) {
	err := &ContentError{
		Type:     ErrorTypeValidation,
		Code:     ErrCodeValidationFailed,
		Message:  "bad meta",
		FilePath: "en/experience/acme.md",
		Cause:    NewValidationError("title", "string", "number"),
	}

	msg := err.Error()
	assert.Contains(t, msg, "[ERR_VALIDATION_FAILED]")
	assert.Contains(t, msg, "en/experience/acme.md")
	assert.Contains(t, msg, "bad meta")
	assert.Contains(t, msg, "at title")
}

func TestInFileKeepsTypedCause(t *testing.T) {
	cause := NewValidationError("date[1]", "date", "string")
	err := InFile("en/education/uni.md", cause)

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "date[1]", validation.Path)
	assert.Equal(t, "en/education/uni.md", FilePathOf(err))
	assert.Equal(t, ErrorTypeValidation, TypeOf(err))
	assert.Nil(t, InFile("x.md", nil))
}

func TestInFileDoesNotDoubleWrap(t *testing.T) {
	err := InFile("a.md", &UnknownComponentError{Tag: "table"})
	again := InFile("a.md", err)

	assert.Same(t, err, again)
}

func TestFilePathOfInnermost(t *testing.T) {
	inner := InFile("nested.md", &NotFoundError{Pattern: "*.md"})
	outer := fmt.Errorf("transform: %w", InFile("outer.md", inner))

	assert.Equal(t, "nested.md", FilePathOf(outer))
}

func TestTypeOf(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"nil", nil, ""},
		{"io", NewIOError("scan", "/missing", fs.ErrNotExist), ErrorTypeIO},
		{"validation", NewValidationError("", "array", "object"), ErrorTypeValidation},
		{"component", &UnknownComponentError{Tag: "blink"}, ErrorTypeComponent},
		{"not found", &NotFoundError{Pattern: "intro.md"}, ErrorTypeNotFound},
		{"context", &ContextError{Key: "locale"}, ErrorTypeContext},
		{"reference", MissingReference("skill", "react"), ErrorTypeValidation},
		{"plain", errors.New("boom"), ErrorTypeInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TypeOf(tc.err))
		})
	}
}

func TestContentErrorIs(t *testing.T) {
	err := Wrap(&NotFoundError{Pattern: "a"}, ErrCodeContentNotFound, "missing")
	target := &ContentError{Type: ErrorTypeNotFound, Code: ErrCodeContentNotFound}

	assert.True(t, errors.Is(err, target))
	assert.Nil(t, Wrap(nil, "x", "y"))
}

func TestIOErrorUnwrap(t *testing.T) {
	err := NewIOError("read", "libraries.json", fs.ErrPermission)

	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Contains(t, err.Error(), "read libraries.json")
}

func TestMissingReferenceMessage(t *testing.T) {
	err := MissingReference("skill", "svelte")

	assert.Equal(t, "[ERR_MISSING_REFERENCE] no skill found: svelte", err.Error())
	assert.Equal(t, "svelte", err.Context["skill"])
}

type recordingLogger struct {
	warns  []string
	errors []string
}

func (l *recordingLogger) Warn(_ context.Context, _ error, msg string, _ ...interface{}) {
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Error(_ context.Context, _ error, msg string, _ ...interface{}) {
	l.errors = append(l.errors, msg)
}

func TestErrorHandlerLevels(t *testing.T) {
	logger := &recordingLogger{}
	handler := NewErrorHandler(logger)

	handler.Handle(context.Background(), InFile("a.md", &UnknownComponentError{Tag: "x"}))
	handler.Handle(context.Background(), NewIOError("scan", "/nope", fs.ErrNotExist))
	handler.Handle(context.Background(), nil)

	assert.Len(t, logger.warns, 1)
	assert.Len(t, logger.errors, 1)
}

func TestContentSuggestions(t *testing.T) {
	ctx := &SuggestionContext{ContentRoot: "content", Locale: "nl"}

	suggestions := ContentSuggestions(InFile("nl/intro.md", &NotFoundError{Pattern: "intro.md"}), ctx)
	require.Len(t, suggestions, 2)
	assert.Contains(t, suggestions[1].Description, "content/nl")

	suggestions = ContentSuggestions(&UnknownComponentError{Tag: "table"}, nil)
	require.Len(t, suggestions, 1)
	assert.Contains(t, suggestions[0].Description, "<table>")
}

func TestEnhancedErrorFormatting(t *testing.T) {
	cause := errors.New("listen tcp :80: bind: permission denied")
	err := NewEnhancedError("Failed to start server", cause, ServerStartError(cause, 80, nil))

	assert.Contains(t, err.Error(), "Failed to start server")
	assert.Contains(t, err.Error(), "Suggestions:")
	assert.ErrorIs(t, err, cause)
}
