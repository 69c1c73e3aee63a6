// Package config provides configuration loading from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the config file name inside the config directory.
const ConfigFileName = "config.toml"

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "TASKDECK_CONFIG"

// Config is the application configuration.
type Config struct {
	API APIConfig `toml:"api"`
	Log LogConfig `toml:"log"`
	UI  UIConfig  `toml:"ui"`
}

// APIConfig holds [api] settings.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	Token          string `toml:"token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the request timeout, or zero to use the default.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogConfig holds [log] settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// UIConfig holds [ui] settings.
type UIConfig struct {
	CompletedLast bool `toml:"completed_last"`
}

// NewDefault returns the configuration used when no file exists.
func NewDefault() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://api.taskdeck.example",
			TimeoutSeconds: 10,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the config file, falling back to defaults when it does
// not exist. The path resolves from the TASKDECK_CONFIG env var, then
// XDG_CONFIG_HOME, then ~/.config.
func Load() (*Config, error) {
	return LoadFile(DefaultPath())
}

// LoadFile reads the config from an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg := NewDefault()
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns the resolved config file path, or empty when no
// home directory is available.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "taskdeck", ConfigFileName)
}
