// Package config handles configuration loading for xpeak.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. Everything is optional; zero
// values fall back to defaults.
type Config struct {
	// DBPath overrides where the SQLite database lives.
	DBPath string `yaml:"db_path"`
	// StreakTick is how often the habit streak clock runs.
	StreakTick time.Duration `yaml:"streak_tick"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		StreakTick: time.Minute,
		LogLevel:   "info",
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".xpeak.yaml"), nil
}

// Load reads configuration from path. A missing file is not an error; it
// returns defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.StreakTick <= 0 {
		c.StreakTick = defaults.StreakTick
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
}
