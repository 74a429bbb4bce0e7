package cmd

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
	"github.com/spf13/viper"

	"github.com/elmarvr/resume-v2/internal/config"
	"github.com/elmarvr/resume-v2/internal/content"
	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/loader"
	"github.com/elmarvr/resume-v2/internal/locale"
	"github.com/elmarvr/resume-v2/internal/logging"
	"github.com/elmarvr/resume-v2/internal/markup"
	"github.com/elmarvr/resume-v2/internal/resume"
	"github.com/elmarvr/resume-v2/internal/style"
	"github.com/elmarvr/resume-v2/internal/ui"
)

// app holds everything a command needs to load and render the resume.
type app struct {
	cfg    *config.Config
	logger logging.Logger
	kit    *ui.Kit
	store  *content.Store
	client *resume.Client
	layout *resume.Layout
}

// loadConfig loads the configuration, turning failures into errors that
// carry suggestions.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		path := viper.ConfigFileUsed()
		if path == "" {
			path = config.FileName + ".yml"
		}
		suggestions := rerrors.ConfigurationError(err.Error(), path, &rerrors.SuggestionContext{ConfigPath: path})
		return nil, rerrors.NewEnhancedError("Failed to load configuration", err, suggestions)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (logging.Logger, error) {
	logCfg, err := cfg.Log.LoggerConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(logCfg), nil
}

// newApp wires the content engine for cfg: the style compiler and UI kit
// from the theme, the markdown component registry, the loader registry and
// the content store.
func newApp(cfg *config.Config) (*app, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	kit := ui.NewKit(style.NewCompiler(cfg.Theme.Build()), ui.DefaultPrimitives())
	components, err := ui.Markdown(kit)
	if err != nil {
		return nil, err
	}
	layout, err := resume.NewLayout(kit)
	if err != nil {
		return nil, err
	}

	store := content.NewStore(cfg.Content.Root, loader.Default(markup.Func(components)),
		content.WithLogger(logger),
		content.WithConcurrency(cfg.Content.Concurrency))

	return &app{
		cfg:    cfg,
		logger: logger,
		kit:    kit,
		store:  store,
		client: resume.NewClient(store, kit.Compiler(), logger),
		layout: layout,
	}, nil
}

// setup loads the configuration and wires the app.
func setup() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newApp(cfg)
}

// load reads the resume for code.
func (a *app) load(ctx context.Context, code string) (*resume.Resume, error) {
	return locale.With(ctx, code, a.client.Load)
}

// render renders the full html document for code.
func (a *app) render(ctx context.Context, code string, head ...templ.Component) ([]byte, error) {
	r, err := a.load(ctx, code)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := a.layout.Document(r, a.layout.Page(r), head...).Render(ctx, &buf); err != nil {
		return nil, rerrors.Wrap(err, rerrors.ErrCodeInternalError, "rendering resume")
	}
	return buf.Bytes(), nil
}

// explain attaches suggestions to a content error for code.
func (a *app) explain(code string, err error) error {
	suggestions := rerrors.ContentSuggestions(err, &rerrors.SuggestionContext{
		ConfigPath:  viper.ConfigFileUsed(),
		ContentRoot: a.cfg.Content.Root,
		Locale:      code,
	})
	return rerrors.NewEnhancedError("Failed to load the "+code+" resume", err, suggestions)
}
