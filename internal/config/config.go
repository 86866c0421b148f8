// Package config manages application configuration from files and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Defaults struct {
		SourceSheet string `mapstructure:"source_sheet"`
		TargetSheet string `mapstructure:"target_sheet"`
		Accumulate  bool   `mapstructure:"accumulate"`
	} `mapstructure:"defaults"`
	Output struct {
		Format string `mapstructure:"format"`
		Color  bool   `mapstructure:"color"`
	} `mapstructure:"output"`
	History struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	} `mapstructure:"history"`
	Watch struct {
		DebounceMs int `mapstructure:"debounce_ms"`
	} `mapstructure:"watch"`
}

// Load reads the configuration from ~/.xlmatch/config.yaml and environment
// variables.
func Load() (*Config, error) {
	dir := Dir()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dir)

	// Defaults
	viper.SetDefault("defaults.accumulate", false)
	viper.SetDefault("output.color", true)
	viper.SetDefault("output.format", "text")
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.path", filepath.Join(dir, "history.jsonl"))
	viper.SetDefault("watch.debounce_ms", 500)

	// Environment variable overrides
	viper.SetEnvPrefix("XLMATCH")
	viper.AutomaticEnv()

	// Read config file (non-fatal if missing)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Set writes a single key into the config file, creating it if needed.
func Set(key, value string) error {
	if _, err := Load(); err != nil {
		return err
	}

	viper.Set(key, value)
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(Path()); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return nil
}

// Get returns a single config value as a string, or "" when unset.
func Get(key string) string {
	if _, err := Load(); err != nil {
		return ""
	}
	return viper.GetString(key)
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Dir returns the configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".xlmatch"
	}
	return filepath.Join(home, ".xlmatch")
}
