package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lucheestiy/bizcatalog/internal/config"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *config.Config
		expected string
	}{
		{name: "default level when no flags set", config: &config.Config{}, expected: "info"},
		{name: "verbose flag sets debug", config: &config.Config{Verbose: true}, expected: "debug"},
		{name: "quiet flag sets warn", config: &config.Config{Quiet: true}, expected: "warn"},
		{name: "explicit log-level overrides verbose", config: &config.Config{LogLevel: "error", Verbose: true}, expected: "error"},
		{name: "explicit log-level overrides quiet", config: &config.Config{LogLevel: "trace", Quiet: true}, expected: "trace"},
		{name: "both verbose and quiet uses quiet", config: &config.Config{Verbose: true, Quiet: true}, expected: "warn"},
		{name: "invalid log-level falls back to info", config: &config.Config{LogLevel: "loud"}, expected: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, determineLogLevel(tt.config))
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		assert.Equal(t, level, validateLogLevel(level))
	}
	assert.Equal(t, "info", validateLogLevel("WARN"))
	assert.Equal(t, "info", validateLogLevel(""))
}
