// Package app provides the application context and dependency management
// for the bizcatalog CLI. It centralizes configuration, logging and the
// command tree.
package app

import (
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/lucheestiy/bizcatalog/internal/cmd/application"
	"github.com/lucheestiy/bizcatalog/internal/cmd/output"
	"github.com/lucheestiy/bizcatalog/internal/config"
	"github.com/lucheestiy/bizcatalog/pkg/errors"
)

// App represents the bizcatalog application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	viper  *viper.Viper
	config *config.Config
	logger *zerolog.Logger
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and config files; flags are
// applied when a command runs.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		viper:   config.New(),
	}

	cfg, err := config.Load(app.viper)
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
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
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the explicit --format, or table on a terminal and
// JSON otherwise.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithViper replaces the configuration source (useful for testing).
func WithViper(v *viper.Viper) Option {
	return func(a *App) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		a.viper = v
		a.config = cfg
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
