// Package application provides the application interface for bizcatalog commands.
//
// Commands accept this interface rather than the concrete App type so they
// can be exercised with Mock in tests:
//
//	mock := &application.Mock{
//	    ConfigFunc: func() *config.Config {
//	        return &config.Config{ExistingJSONL: path}
//	    },
//	}
//	cmd := stats.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/lucheestiy/bizcatalog/internal/config"
)

// Application provides the application interface that commands need.
// The App struct from cmd/bizcatalog/app implements it.
type Application interface {
	// Config returns the configuration after flags were applied.
	Config() *config.Config

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
