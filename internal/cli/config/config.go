package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the grefs CLI configuration
type Config struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
	Verbose bool   `mapstructure:"verbose"`
}

// Load loads the configuration from grefs.yml or grefs.yaml, with
// GREFS_* environment variables taking precedence over the file.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("format", "table")
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", false)

	// grefs.yml or grefs.yaml in the working directory
	v.SetConfigName("grefs")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support (GREFS_FORMAT, GREFS_NO_COLOR, ...)
	v.SetEnvPrefix("GREFS")
	v.AutomaticEnv()

	// A missing config file is fine; anything else is reported.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	switch cfg.Format {
	case "table", "json":
		return nil
	default:
		return fmt.Errorf("format must be 'table' or 'json', got: %s", cfg.Format)
	}
}
