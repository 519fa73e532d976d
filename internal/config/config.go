// Package config provides configuration management for filebak using Viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"filebak/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "filebak"

// DefaultIntervalMinutes is the pass interval used when the config file
// does not set one.
const DefaultIntervalMinutes = 60

// Config represents the top-level configuration structure.
type Config struct {
	Version         int      `mapstructure:"version" yaml:"version"`
	Destination     string   `mapstructure:"destination" yaml:"destination"`
	IntervalMinutes int      `mapstructure:"interval_minutes" yaml:"interval_minutes"`
	Parallel        bool     `mapstructure:"parallel" yaml:"parallel"`
	Sources         []Source `mapstructure:"sources" yaml:"sources"`
}

// Source declares one backup source: a root directory and a selection rule.
// A nil Select means every regular file under the root.
type Source struct {
	Root   string         `mapstructure:"root" yaml:"root"`
	Select map[string]any `mapstructure:"select,omitempty" yaml:"select,omitempty"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support
	viper.SetEnvPrefix("FILEBAK")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("interval_minutes", DefaultIntervalMinutes)
	viper.SetDefault("destination", paths.DefaultDestination())
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Default returns a starter configuration with one example source,
// used by `filebak init`.
func Default() *Config {
	return &Config{
		Version:         1,
		Destination:     paths.DefaultDestination(),
		IntervalMinutes: DefaultIntervalMinutes,
		Sources: []Source{
			{
				Root: paths.ExpandHome("~/Documents"),
				Select: map[string]any{
					"not": map[string]any{"name": "*.tmp"},
				},
			},
		},
	}
}
