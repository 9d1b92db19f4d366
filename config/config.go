// Package config loads runtime settings from an optional YAML file,
// with environment variables taking precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	// WorldDir is a directory of Lua world files. Empty means the
	// embedded default world.
	WorldDir string `yaml:"world_dir"`

	// SaveDir is where the file backend keeps snapshots.
	SaveDir string `yaml:"save_dir"`

	// RedisURL, when set, selects the Redis save backend.
	RedisURL string `yaml:"redis_url"`

	PlayerName  string `yaml:"player_name"`
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the configuration used when no file and no
// environment overrides are present.
func Default() *Config {
	return &Config{
		SaveDir:     "saves",
		Environment: "development",
		LogLevel:    "info",
	}
}

// Load reads the YAML file at path (ignored if path is empty or the
// file doesn't exist) and then applies EMBERWOOD_* environment
// overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnv(&cfg.WorldDir, "EMBERWOOD_WORLD_DIR")
	applyEnv(&cfg.SaveDir, "EMBERWOOD_SAVE_DIR")
	applyEnv(&cfg.RedisURL, "EMBERWOOD_REDIS_URL")
	applyEnv(&cfg.PlayerName, "EMBERWOOD_PLAYER_NAME")
	applyEnv(&cfg.Environment, "EMBERWOOD_ENVIRONMENT")
	applyEnv(&cfg.LogLevel, "EMBERWOOD_LOG_LEVEL")

	return cfg, nil
}

func applyEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// SlogLevel parses the configured log level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
