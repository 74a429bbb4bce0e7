package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/elmarvr/resume-v2/internal/logging"
)

// ValidationError is one configuration problem with suggestions to fix it.
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds every error and warning found in a configuration.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (vr *ValidationResult) HasErrors() bool   { return len(vr.Errors) > 0 }
func (vr *ValidationResult) HasWarnings() bool { return len(vr.Warnings) > 0 }

func (vr *ValidationResult) String() string {
	var b strings.Builder
	write := func(title string, issues []ValidationError) {
		if len(issues) == 0 {
			return
		}
		b.WriteString(title + ":\n")
		for _, issue := range issues {
			fmt.Fprintf(&b, "  - %s: %s\n", issue.Field, issue.Message)
			for _, s := range issue.Suggestions {
				fmt.Fprintf(&b, "      hint: %s\n", s)
			}
		}
	}
	write("Errors", vr.Errors)
	write("Warnings", vr.Warnings)
	return b.String()
}

func (vr *ValidationResult) fail(field string, value interface{}, msg string, suggestions ...string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Value: value, Message: msg, Suggestions: suggestions})
}

func (vr *ValidationResult) warn(field string, value interface{}, msg string, suggestions ...string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Value: value, Message: msg, Suggestions: suggestions})
}

// Validate checks cfg and reports every problem found.
func Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}
	validateServer(&cfg.Server, result)
	validateContent(&cfg.Content, result)
	validateDevelopment(&cfg.Development, result)
	validateLog(&cfg.Log, result)
	return result
}

func validateServer(cfg *ServerConfig, result *ValidationResult) {
	// Port 0 lets the system pick one, which tests rely on.
	if cfg.Port < 0 || cfg.Port > 65535 {
		result.fail("server.port", cfg.Port, fmt.Sprintf("port %d is not in valid range 0-65535", cfg.Port),
			"Use a port such as 3000 or 8080")
	}

	if strings.ContainsAny(cfg.Host, ";&|$`()<>\"'\\ ") {
		result.fail("server.host", cfg.Host, "host contains invalid characters",
			"Use a host name or IP address such as localhost or 0.0.0.0")
	}

	if cfg.ShutdownTimeout < 0 {
		result.fail("server.shutdown_timeout", cfg.ShutdownTimeout, "shutdown timeout must not be negative")
	}

	for i, origin := range cfg.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			result.fail(fmt.Sprintf("server.allowed_origins[%d]", i), origin, "origin must be * or start with http:// or https://")
		}
	}
}

func validateContent(cfg *ContentConfig, result *ValidationResult) {
	if cfg.Root == "" {
		result.fail("content.root", cfg.Root, "content root is empty", "Set content.root to the directory holding your content")
	} else if info, err := os.Stat(cfg.Root); err != nil || !info.IsDir() {
		result.warn("content.root", cfg.Root, "content root does not exist or is not a directory",
			"Create it: mkdir -p "+cfg.Root)
	}

	if len(cfg.Locales) == 0 {
		result.fail("content.locales", cfg.Locales, "no locales configured", "Add at least one locale, for example en")
	}
	for i, code := range cfg.Locales {
		if _, err := language.Parse(code); err != nil {
			result.fail(fmt.Sprintf("content.locales[%d]", i), code, "not a valid language tag",
				"Use BCP 47 tags such as en, nl or en-GB")
		}
	}

	if !slices.Contains(cfg.Locales, cfg.DefaultLocale) {
		result.fail("content.default_locale", cfg.DefaultLocale, "default locale is not one of content.locales",
			"Add it to content.locales or pick one of "+strings.Join(cfg.Locales, ", "))
	}

	if cfg.Concurrency < 0 {
		result.fail("content.concurrency", cfg.Concurrency, "concurrency must not be negative", "Use 0 for one worker per CPU")
	}
}

func validateDevelopment(cfg *DevelopmentConfig, result *ValidationResult) {
	if cfg.Debounce < 0 {
		result.fail("development.debounce", cfg.Debounce, "debounce must not be negative")
	} else if cfg.Debounce > 10*time.Second {
		result.warn("development.debounce", cfg.Debounce, "debounce is long, reloads will feel slow", "Try 100ms to 500ms")
	}
}

func validateLog(cfg *LogConfig, result *ValidationResult) {
	if _, err := logging.ParseLevel(cfg.Level); err != nil {
		result.fail("log.level", cfg.Level, err.Error(), "Use debug, info, warn or error")
	}
	if cfg.Format != "text" && cfg.Format != "json" {
		result.fail("log.format", cfg.Format, "log format must be text or json")
	}
}
