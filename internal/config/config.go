// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by the CLI
	EnvPrefix = "PROFILE_MIGRATE"
	// DefaultFile is the profiles document migrated when no path is given
	DefaultFile = "wiki/profiles.json"
)

// Config holds the settings for a migration run.
// Values come from, in increasing priority: defaults, config file,
// PROFILE_MIGRATE_* environment variables, command-line flags.
type Config struct {
	File          string    `mapstructure:"file" validate:"required"`
	Seed          int64     `mapstructure:"seed"`           // 0 draws a random seed
	DryRun        bool      `mapstructure:"dry_run"`        // Migrate in memory only
	Backup        bool      `mapstructure:"backup"`         // Copy the original file before overwriting
	Strict        bool      `mapstructure:"strict"`         // Exit non-zero on failure
	AllowComments bool      `mapstructure:"allow_comments"` // Accept JSON with comments and trailing commas
	Verbose       bool      `mapstructure:"verbose"`        // Print the run report
	Log           LogConfig `mapstructure:"log"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// New returns a viper instance with defaults and environment bindings set.
// Callers bind command-line flags on it before calling LoadConfig.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("file", DefaultFile)
	v.SetDefault("seed", 0)
	v.SetDefault("dry_run", false)
	v.SetDefault("backup", false)
	v.SetDefault("strict", false)
	v.SetDefault("allow_comments", false)
	v.SetDefault("verbose", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// LoadConfig reads the optional config file at path into v, then unmarshals
// and validates the merged configuration.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
