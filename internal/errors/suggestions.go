package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorSuggestion represents a suggestion for fixing an error
type ErrorSuggestion struct {
	Title       string
	Description string
	Command     string
	Example     string
}

// SuggestionContext provides context for generating suggestions
type SuggestionContext struct {
	ConfigPath  string
	ContentRoot string
	Locale      string
}

// ContentSuggestions generates suggestions for a failed content query.
func ContentSuggestions(err error, ctx *SuggestionContext) []ErrorSuggestion {
	if ctx == nil {
		ctx = &SuggestionContext{}
	}

	var suggestions []ErrorSuggestion

	if path := FilePathOf(err); path != "" {
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Inspect the offending file",
			Description: "The error was raised while processing " + path,
			Command:     "resume preview " + path,
		})
	}

	var (
		validation *ValidationError
		unknown    *UnknownComponentError
		notFound   *NotFoundError
		scope      *ContextError
		ioErr      *IOError
	)

	switch {
	case errors.As(err, &validation):
		field := validation.Path
		if field == "" {
			field = "the root value"
		}
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Fix the front matter or data file",
			Description: fmt.Sprintf("Field %s should be %s", field, validation.Expected),
			Example:     "---\ntitle: Software engineer\ndate: [2020-01-01, 2022-03-01]\n---",
		})
	case errors.As(err, &unknown):
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Unsupported markup element",
			Description: fmt.Sprintf("The markup uses <%s>, which has no registered component", unknown.Tag),
			Example:     "Remove the element or add a component for it to the markdown registry",
		})
	case errors.As(err, &notFound):
		dir := ctx.ContentRoot
		if ctx.Locale != "" {
			dir = strings.TrimSuffix(dir, "/") + "/" + ctx.Locale
		}
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "No content matched",
			Description: fmt.Sprintf("Nothing under %s matches %q", dir, notFound.Pattern),
			Command:     fmt.Sprintf("resume list %q", notFound.Pattern),
		})
	case errors.As(err, &scope):
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Missing locale scope",
			Description: "Localized queries must run inside locale.With",
			Example:     "locale.With(ctx, \"en\", func(ctx context.Context) (T, error) { ... })",
		})
	case errors.As(err, &ioErr):
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Check the content directory",
			Description: "Verify content.root in your configuration points at an existing directory",
			Command:     "ls -la " + ctx.ContentRoot,
		})
	}

	return suggestions
}

// ServerStartError generates suggestions for server startup failures
func ServerStartError(err error, port int, ctx *SuggestionContext) []ErrorSuggestion {
	suggestions := []ErrorSuggestion{}

	errStr := err.Error()

	if strings.Contains(errStr, "address already in use") || strings.Contains(errStr, "bind") {
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Port already in use",
			Description: fmt.Sprintf("Port %d is already being used by another process", port),
			Command:     fmt.Sprintf("lsof -i :%d", port),
		})

		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Use a different port",
			Description: "Start the server on a different port",
			Command:     fmt.Sprintf("resume serve --port %d", port+1),
		})
	}

	if strings.Contains(errStr, "permission denied") && port < 1024 {
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Use unprivileged port",
			Description: "Ports below 1024 require root privileges",
			Command:     "resume serve --port 3000",
		})
	}

	return suggestions
}

// ConfigurationError generates suggestions for configuration issues
func ConfigurationError(configError string, configPath string, ctx *SuggestionContext) []ErrorSuggestion {
	suggestions := []ErrorSuggestion{
		{
			Title:       "Check configuration file",
			Description: "Verify your .resume.yml file exists and has valid syntax",
			Command:     "cat " + configPath,
		},
	}

	if strings.Contains(configError, "yaml") || strings.Contains(configError, "unmarshal") {
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Fix YAML syntax",
			Description: "There's a syntax error in your YAML configuration",
			Example:     "Use proper indentation and avoid tabs",
		})
	}

	if strings.Contains(configError, "locale") {
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Check locale codes",
			Description: "Locales must be BCP 47 tags and the default must be listed",
			Example:     "content:\n  locales: [en, nl]\n  default_locale: en",
		})
	}

	return suggestions
}

// FormatSuggestions formats suggestions into a user-friendly string
func FormatSuggestions(title string, suggestions []ErrorSuggestion) string {
	if len(suggestions) == 0 {
		return title
	}

	var output strings.Builder
	output.WriteString(title + "\n\n")
	output.WriteString("Suggestions:\n")

	for i, suggestion := range suggestions {
		output.WriteString(fmt.Sprintf("  %d. %s\n", i+1, suggestion.Title))
		if suggestion.Description != "" {
			output.WriteString(fmt.Sprintf("     %s\n", suggestion.Description))
		}
		if suggestion.Command != "" {
			output.WriteString(fmt.Sprintf("     Run: %s\n", suggestion.Command))
		}
		if suggestion.Example != "" {
			output.WriteString(fmt.Sprintf("     Example: %s\n", suggestion.Example))
		}
		output.WriteString("\n")
	}

	return output.String()
}

// EnhancedError wraps an error with suggestions
type EnhancedError struct {
	OriginalError error
	Title         string
	Suggestions   []ErrorSuggestion
}

// Error implements the error interface
func (e *EnhancedError) Error() string {
	title := e.Title
	if e.OriginalError != nil {
		title += ": " + e.OriginalError.Error()
	}

	return FormatSuggestions(title, e.Suggestions)
}

// Unwrap returns the original error
func (e *EnhancedError) Unwrap() error {
	return e.OriginalError
}

// NewEnhancedError creates a new enhanced error with suggestions
func NewEnhancedError(title string, originalError error, suggestions []ErrorSuggestion) *EnhancedError {
	return &EnhancedError{
		OriginalError: originalError,
		Title:         title,
		Suggestions:   suggestions,
	}
}
