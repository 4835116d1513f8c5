package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AppConfig is the top-level application configuration, stored as YAML
// outside the relational store.
type AppConfig struct {
	// DBPath is the location of the SQLite database file.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// Theme selects the UI color theme.
	Theme string `mapstructure:"theme" yaml:"theme"`

	// FirstRun is true until the default boxes have been seeded.
	FirstRun bool `mapstructure:"first_run" yaml:"first_run"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/todobox/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "todobox", "config.yaml")
}

// DefaultDBPath returns the default location for the SQLite database,
// located at ~/.local/share/todobox/todobox.db.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "todobox.db")
	}
	return filepath.Join(home, ".local", "share", "todobox", "todobox.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DBPath:   DefaultDBPath(),
		Theme:    "default",
		FirstRun: true,
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("db_path", DefaultDBPath())
	v.SetDefault("theme", "default")
	v.SetDefault("first_run", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("theme", cfg.Theme)
	v.Set("first_run", cfg.FirstRun)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
