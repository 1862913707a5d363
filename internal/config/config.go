// Package config loads tool configuration from .serviceowners/config.json
// in the repository root. Everything has a sensible default; the file is
// optional.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	svcerrors "serviceowners/internal/errors"
)

// Config is the complete serviceowners configuration.
type Config struct {
	// ServiceownersFile is the rule document path, relative to repo root
	ServiceownersFile string `json:"serviceownersFile" mapstructure:"serviceownersFile"`

	// ServicesFile is the service catalog path, relative to repo root
	ServicesFile string `json:"servicesFile" mapstructure:"servicesFile"`

	// CommentMarker identifies the PR comment this tool owns
	CommentMarker string `json:"commentMarker" mapstructure:"commentMarker"`

	// CommentTitle is the heading of the PR comment
	CommentTitle string `json:"commentTitle" mapstructure:"commentTitle"`

	// MaxFilesPerService bounds file lists in rendered reports
	MaxFilesPerService int `json:"maxFilesPerService" mapstructure:"maxFilesPerService"`

	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ServiceownersFile:  "SERVICEOWNERS",
		ServicesFile:       "services.yaml",
		CommentMarker:      "serviceowners",
		CommentTitle:       "ServiceOwners",
		MaxFilesPerService: 50,
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .serviceowners/config.json under
// repoRoot, falling back to defaults when the file does not exist.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("serviceownersFile", defaults.ServiceownersFile)
	v.SetDefault("servicesFile", defaults.ServicesFile)
	v.SetDefault("commentMarker", defaults.CommentMarker)
	v.SetDefault("commentTitle", defaults.CommentTitle)
	v.SetDefault("maxFilesPerService", defaults.MaxFilesPerService)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".serviceowners"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, svcerrors.Wrap(svcerrors.ConfigInvalid, "cannot read config", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, svcerrors.Wrap(svcerrors.ConfigInvalid, "cannot parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.ServiceownersFile == "" {
		return svcerrors.New(svcerrors.ConfigInvalid, "serviceownersFile must not be empty")
	}
	if c.CommentMarker == "" {
		return svcerrors.New(svcerrors.ConfigInvalid, "commentMarker must not be empty")
	}
	if c.MaxFilesPerService < 0 {
		return svcerrors.New(svcerrors.ConfigInvalid, "maxFilesPerService must not be negative")
	}
	return nil
}
