package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/promptbank/internal/analyze"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Contains(t, cfg.ProjectsRoot, filepath.Join(".claude", "projects"))
	assert.Equal(t, 0, cfg.SessionLimit)
	assert.Equal(t, 10, cfg.MinPromptLength)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, analyze.DefaultModel, cfg.Model)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("batch_size: 25\nmodel: test-model\nlog_format: json\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, "test-model", cfg.Model)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, Default().ProjectsRoot, cfg.ProjectsRoot, "unset keys keep defaults")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch_size: 25\n"), 0o644))

	t.Setenv("PROMPTBANK_BATCH_SIZE", "50")
	t.Setenv("PROMPTBANK_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch_size: [unclosed\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty root", func(c *Config) { c.ProjectsRoot = "" }, "projects_root"},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, "batch_size"},
		{"negative min length", func(c *Config) { c.MinPromptLength = -1 }, "min_prompt_length"},
		{"negative session limit", func(c *Config) { c.SessionLimit = -1 }, "session_limit"},
		{"empty model", func(c *Config) { c.Model = "" }, "model"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
