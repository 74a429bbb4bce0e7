// Package config loads the resume configuration with Viper from
// .resume.yml, RESUME_* environment variables and command-line flags.
//
// The configuration covers the HTTP server, the content tree (root, locales,
// query concurrency), theme overrides for the style compiler, development
// options such as live reload, and logging.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/logging"
	"github.com/elmarvr/resume-v2/internal/style"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".resume"

// EnvPrefix prefixes every environment override, RESUME_SERVER_PORT etc.
const EnvPrefix = "RESUME"

// EnvKeyReplacer maps nested keys onto environment names, server.port to
// SERVER_PORT.
func EnvKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Content     ContentConfig     `mapstructure:"content"`
	Theme       ThemeConfig       `mapstructure:"theme"`
	Development DevelopmentConfig `mapstructure:"development"`
	Log         LogConfig         `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type ContentConfig struct {
	Root          string   `mapstructure:"root"`
	Locales       []string `mapstructure:"locales"`
	DefaultLocale string   `mapstructure:"default_locale"`
	// Concurrency bounds the transforms one query runs at once; 0 uses
	// GOMAXPROCS.
	Concurrency int `mapstructure:"concurrency"`
}

// ThemeConfig layers fonts and colours over the default theme.
type ThemeConfig struct {
	Fonts  map[string]string `mapstructure:"fonts"`
	Colors map[string]string `mapstructure:"colors"`
}

type DevelopmentConfig struct {
	HotReload bool          `mapstructure:"hot_reload"`
	Debounce  time.Duration `mapstructure:"debounce"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("content.root", "content")
	v.SetDefault("content.locales", []string{"en", "nl"})
	v.SetDefault("content.default_locale", "en")
	v.SetDefault("content.concurrency", 0)
	v.SetDefault("development.hot_reload", true)
	v.SetDefault("development.debounce", 150*time.Millisecond)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		ce := rerrors.Wrap(err, rerrors.ErrCodeConfigInvalid, "cannot decode configuration")
		ce.Type = rerrors.ErrorTypeConfig
		return nil, ce
	}

	// Slices set through environment variables arrive as one string.
	if v.IsSet("content.locales") {
		cfg.Content.Locales = v.GetStringSlice("content.locales")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.Server.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}

	if result := Validate(&cfg); result.HasErrors() {
		first := result.Errors[0]
		return nil, rerrors.NewConfigError(rerrors.ErrCodeConfigInvalid, first.Error()).
			WithContext("field", first.Field).
			WithContext("errors", len(result.Errors))
	}

	return &cfg, nil
}

// Addr is the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Build returns the default theme extended with the configured overrides.
func (t ThemeConfig) Build() style.Theme {
	return style.DefaultTheme().Extend(t.Fonts, t.Colors)
}

// LoggerConfig converts the log section into a logger configuration.
func (l LogConfig) LoggerConfig() (*logging.LoggerConfig, error) {
	level, err := logging.ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Format = l.Format
	return cfg, nil
}
