// Package config provides configuration management for cfgvault using Viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pkeller/cfgvault/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// DefaultRetention is the default number of backup sets kept by prune.
const DefaultRetention = 10

// Config represents the top-level configuration structure.
type Config struct {
	// BackupRoot is the directory under which backup sets are created.
	BackupRoot string `mapstructure:"backup_root" yaml:"backup_root"`

	// Retention is the number of backup sets `cfgvault prune` keeps.
	Retention int `mapstructure:"retention" yaml:"retention"`

	// Configs maps extra tracked config names to file paths. Entries here
	// extend (and on name collision override) the built-in catalog.
	Configs map[string]string `mapstructure:"configs" yaml:"configs,omitempty"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support
	viper.SetEnvPrefix("CFGVAULT")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("backup_root", paths.DefaultBackupRoot())
	viper.SetDefault("retention", DefaultRetention)
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

// Default returns a Config populated with the built-in defaults.
// Used by `cfgvault config init` to write an initial config file.
func Default() *Config {
	return &Config{
		BackupRoot: paths.DefaultBackupRoot(),
		Retention:  DefaultRetention,
	}
}
