// Package config provides configuration loading for promptbank.
//
// Precedence (highest to lowest):
//  1. Environment variables (PROMPTBANK_BATCH_SIZE, PROMPTBANK_MODEL, ...)
//  2. YAML config file (~/.config/promptbank/config.yaml)
//  3. Hardcoded defaults
//
// The model API credential is deliberately NOT part of this file-backed
// configuration; it is read only from ANTHROPIC_API_KEY at the point
// the model client is constructed.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/fyrsmithlabs/promptbank/internal/analyze"
	"github.com/fyrsmithlabs/promptbank/internal/extract"
)

// envPrefix namespaces the environment overrides.
const envPrefix = "PROMPTBANK_"

// Config holds all promptbank settings.
type Config struct {
	// ProjectsRoot is the directory of recorded session transcripts.
	ProjectsRoot string `koanf:"projects_root"`

	// SessionLimit caps the number of sessions processed (0 = all).
	SessionLimit int `koanf:"session_limit"`

	// MinPromptLength is the quality bar for prompts sent to analysis.
	MinPromptLength int `koanf:"min_prompt_length"`

	// BatchSize is the number of prompts per model call.
	BatchSize int `koanf:"batch_size"`

	// Model identifies the hosted model used for discovery.
	Model string `koanf:"model"`

	// SnapshotPath is where the analysis result JSON is persisted.
	SnapshotPath string `koanf:"snapshot_path"`

	// BankPath is the default knowledge bank output location.
	BankPath string `koanf:"bank_path"`

	// PreferencesPath is the default compact preference file location.
	PreferencesPath string `koanf:"preferences_path"`

	// LogLevel is one of: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is "console" or "json".
	LogFormat string `koanf:"log_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	stateDir := filepath.Join(home, ".config", "promptbank")

	return Config{
		ProjectsRoot:    filepath.Join(home, ".claude", "projects"),
		SessionLimit:    0,
		MinPromptLength: extract.DefaultMinAnalysisLength,
		BatchSize:       analyze.DefaultBatchSize,
		Model:           analyze.DefaultModel,
		SnapshotPath:    filepath.Join(stateDir, "analysis.json"),
		BankPath:        filepath.Join(stateDir, "knowledge-bank.md"),
		PreferencesPath: filepath.Join(stateDir, "preferences.md"),
		LogLevel:        "info",
		LogFormat:       "console",
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "promptbank", "config.yaml")
}

// Load reads configuration from the YAML file at configPath (the
// default path when empty; a missing file is not an error), then
// applies PROMPTBANK_-prefixed environment overrides.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		configPath = DefaultPath()
	}

	if configPath != "" {
		if content, err := os.ReadFile(configPath); err == nil {
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	// PROMPTBANK_BATCH_SIZE -> batch_size, PROMPTBANK_MODEL -> model.
	// Keys are flat, so underscores inside names are preserved.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if c.ProjectsRoot == "" {
		return errors.New("projects_root cannot be empty")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.MinPromptLength < 0 {
		return fmt.Errorf("min_prompt_length cannot be negative, got %d", c.MinPromptLength)
	}
	if c.SessionLimit < 0 {
		return fmt.Errorf("session_limit cannot be negative, got %d", c.SessionLimit)
	}
	if c.Model == "" {
		return errors.New("model cannot be empty")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	return nil
}
