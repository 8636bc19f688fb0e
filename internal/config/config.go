// Package config loads the bizcatalog CLI configuration from flags,
// environment variables, .env files and an optional YAML config file.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lucheestiy/bizcatalog/pkg/constants"
	"github.com/lucheestiy/bizcatalog/pkg/errors"
)

// EnvPrefix is prepended to every environment variable the CLI reads,
// so BIZCATALOG_SOURCE_DB sets source_db.
const EnvPrefix = "BIZCATALOG"

// Configuration keys. Flag names use dashes and map onto these keys.
const (
	KeyConfig        = "config"
	KeyVerbose       = "verbose"
	KeyQuiet         = "quiet"
	KeyNoColor       = "no_color"
	KeyFormat        = "format"
	KeyLogLevel      = "log_level"
	KeyLogFormat     = "log_format"
	KeyLogOutput     = "log_output"
	KeySourceDB      = "source_db"
	KeyExistingJSONL = "existing_jsonl"
	KeyOutputJSONL   = "output_jsonl"
	KeyMaxCompanies  = "max_companies"
	KeyInPlace       = "in_place"
	KeyBackup        = "backup"
	KeyDryRun        = "dry_run"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// Import configuration
	SourceDB      string
	ExistingJSONL string
	OutputJSONL   string
	MaxCompanies  int
	InPlace       bool
	Backup        bool
	DryRun        bool
}

// New returns a viper instance with the bizcatalog defaults and environment
// bindings applied. Flags are bound onto it by the commands that own them.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLogFormat, "auto")
	v.SetDefault(KeyLogOutput, "stderr")
	v.SetDefault(KeySourceDB, constants.DefaultSourceDBPath)
	v.SetDefault(KeyExistingJSONL, constants.DefaultExistingCatalogPath)
	v.SetDefault(KeyOutputJSONL, constants.DefaultOutputCatalogPath)
	v.SetDefault(KeyMaxCompanies, 0)
	return v
}

// Load reads configuration from all sources in order of precedence:
//  1. Command-line flags bound to v
//  2. Environment variables (BIZCATALOG_*)
//  3. .env and .env.local files
//  4. Config file (--config, or .bizcatalog.yaml in the working or home directory)
//  5. Defaults
func Load(v *viper.Viper) (*Config, error) {
	loadEnvFiles()

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	config := FromViper(v)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// FromViper builds a Config from the current values in v without reading
// any files.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Verbose:    v.GetBool(KeyVerbose),
		Quiet:      v.GetBool(KeyQuiet),
		NoColor:    v.GetBool(KeyNoColor),
		Format:     v.GetString(KeyFormat),
		ConfigFile: v.ConfigFileUsed(),

		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
		LogOutput: v.GetString(KeyLogOutput),

		SourceDB:      v.GetString(KeySourceDB),
		ExistingJSONL: v.GetString(KeyExistingJSONL),
		OutputJSONL:   v.GetString(KeyOutputJSONL),
		MaxCompanies:  v.GetInt(KeyMaxCompanies),
		InPlace:       v.GetBool(KeyInPlace),
		Backup:        v.GetBool(KeyBackup),
		DryRun:        v.GetBool(KeyDryRun),
	}
}

// Validate checks the values a run cannot start with.
func (c *Config) Validate() error {
	if c.MaxCompanies < 0 {
		return errors.NewValidationError(KeyMaxCompanies, c.MaxCompanies, "must not be negative")
	}
	switch strings.ToLower(c.Format) {
	case "", "table", "json", "yaml", "wide":
	default:
		return errors.NewValidationError(KeyFormat, c.Format, "must be one of: table, json, yaml, wide")
	}
	return nil
}

// readConfigFile reads the explicit config file or searches the standard
// locations. A missing default file is not an error; a missing explicit one is.
func readConfigFile(v *viper.Viper) error {
	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return errors.NewConfigError("config", "cannot read "+file, err)
		}
		return nil
	}

	v.SetConfigType("yaml")
	v.SetConfigName(".bizcatalog")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.NewConfigError("config", "cannot parse config file", err)
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overwritten, so
// .env.local only fills what .env left unset.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
