// Package app provides the application context and dependency management
// for the itemctl CLI. It centralizes configuration, logging and the item
// store so commands only depend on cmd/application.Application.
package app

import (
	"github.com/rs/zerolog"

	"github.com/gvdb/itemctl/cmd/application"
	"github.com/gvdb/itemctl/pkg/corrections"
	"github.com/gvdb/itemctl/pkg/errors"
	"github.com/gvdb/itemctl/pkg/records"
)

// App represents the itemctl application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the default locations and can be replaced
// with functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the output format chosen by --format or config.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Store returns a store over the configured items file. Each call returns a
// fresh store; stores hold no state between loads.
func (a *App) Store() *records.Store {
	return records.NewStore(a.config.ItemsPath,
		records.WithSchema(a.config.Fields.WithDefaults()),
		records.WithStrictKeys(a.config.StrictKeys),
		records.WithLogger(a.logger),
	)
}

// ReferenceCSV returns the configured reference sheet path.
func (a *App) ReferenceCSV() string {
	return a.config.ReferenceCSV
}

// HeaderColumns returns the configured reference sheet columns.
func (a *App) HeaderColumns() corrections.HeaderColumns {
	return a.config.Columns
}

// TemplatePath returns the configured template output path.
func (a *App) TemplatePath() string {
	return a.config.TemplatePath
}

// TemplateGroups returns the configured template categories.
func (a *App) TemplateGroups() []corrections.TemplateGroup {
	return a.config.TemplateCategories
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewConfigError("app", "config is nil", nil)
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
