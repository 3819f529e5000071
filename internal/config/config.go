// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

// Package config loads application configuration with koanf: built-in
// defaults first, then an optional YAML file, then PLAYATLAS_* environment
// variables. The loaded config is validated before use.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/playatlas/playatlas/internal/recommend"
)

// DefaultConfigPaths lists where config files are searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/playatlas/config.yaml",
	"/etc/playatlas/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "PLAYATLAS_CONFIG"

// envPrefix namespaces environment overrides, e.g.
// PLAYATLAS_LOGGING_LEVEL=debug sets logging.level.
const envPrefix = "PLAYATLAS_"

// Config is the full application configuration.
type Config struct {
	// Logging configures the global logger.
	Logging LoggingConfig `koanf:"logging"`

	// Pipeline configures the persona inference pipeline.
	Pipeline PipelineConfig `koanf:"pipeline"`

	// Recommend holds the mood weight tables and ranking limits.
	Recommend recommend.Config `koanf:"recommend"`

	// Resonance configures the resonance log backend.
	Resonance ResonanceConfig `koanf:"resonance"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	// Level is the minimum log level.
	Level string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`

	// Format is json or console.
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`

	// Caller includes caller file/line in log output.
	Caller bool `koanf:"caller"`
}

// PipelineConfig tunes the persona inference pipeline.
type PipelineConfig struct {
	// MaxSignalAge is the signal buffer retention window.
	MaxSignalAge time.Duration `koanf:"max_signal_age" validate:"gt=0"`

	// MoodStaleness is how long a mood entry stays usable as context.
	MoodStaleness time.Duration `koanf:"mood_staleness" validate:"gt=0"`
}

// ResonanceConfig configures the resonance log backend.
type ResonanceConfig struct {
	// BadgerPath is the on-disk directory for the durable log. Empty
	// selects the in-memory log.
	BadgerPath string `koanf:"badger_path"`
}

// defaultConfig returns the built-in defaults, applied before file and env
// overrides.
func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Pipeline: PipelineConfig{
			MaxSignalAge:  7 * 24 * time.Hour,
			MoodStaleness: 24 * time.Hour,
		},
		Recommend: *recommend.DefaultConfig(),
	}
}

// Load builds the configuration: defaults, then the config file (if any),
// then environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// envTransformFunc maps environment variable names to config keys.
// Underscores are ambiguous between nesting and key names, so the known
// variables are mapped explicitly:
//   - PLAYATLAS_LOG_LEVEL          -> logging.level
//   - PLAYATLAS_MAX_SIGNAL_AGE     -> pipeline.max_signal_age
//   - PLAYATLAS_RESONANCE_DB_PATH  -> resonance.badger_path
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	envMappings := map[string]string{
		"log_level":         "logging.level",
		"log_format":        "logging.format",
		"log_caller":        "logging.caller",
		"max_signal_age":    "pipeline.max_signal_age",
		"mood_staleness":    "pipeline.mood_staleness",
		"recommend_k":       "recommend.k",
		"resonance_db_path": "resonance.badger_path",
	}
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unknown variables are ignored rather than guessed at.
	return ""
}

// findConfigFile resolves the config file path: explicit env var first, then
// the default search paths.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate checks structural constraints and the recommend weight tables.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}
