package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Source.Provider)
	assert.Equal(t, "UTC", cfg.Engine.Timezone)
	assert.Equal(t, 3, cfg.Engine.MinTokens)
	assert.Equal(t, 1, cfg.Engine.Workers)
	assert.Equal(t, 5, cfg.Engine.CriticalThreshold)
	assert.Equal(t, 3, cfg.Engine.HighThreshold)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "human", cfg.Output.Mode)
	assert.Equal(t, "standard", cfg.Output.Verbosity)
	assert.False(t, cfg.Output.Pretty)
	assert.Equal(t, 0, cfg.Output.Top)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Empty(t, cfg.Metrics.File)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logtriage.yaml")
	content := `
engine:
  workers: 4
  high_keywords: [failed, panic]
output:
  format: table
  mode: technical
  top: 10
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Engine.Workers)
	assert.Equal(t, []string{"failed", "panic"}, cfg.Engine.HighKeywords)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, "technical", cfg.Output.Mode)
	assert.Equal(t, 10, cfg.Output.Top)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep their defaults
	assert.Equal(t, 5, cfg.Engine.CriticalThreshold)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logtriage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  mode: human\n"), 0o644))

	t.Setenv("LOGTRIAGE_OUTPUT_MODE", "technical")
	t.Setenv("LOGTRIAGE_ENGINE_WORKERS", "8")
	t.Setenv("LOGTRIAGE_OUTPUT_PRETTY", "true")
	t.Setenv("LOGTRIAGE_SOURCE_TOKEN", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "technical", cfg.Output.Mode)
	assert.Equal(t, 8, cfg.Engine.Workers)
	assert.True(t, cfg.Output.Pretty)
	assert.Equal(t, "s3cret", cfg.Source.Token)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LOGTRIAGE_ENGINE_WORKERS", "0")
	t.Setenv("LOGTRIAGE_OUTPUT_FORMAT", "xml")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.workers")
	assert.Contains(t, err.Error(), "output.format")
}

func TestValidate_Thresholds(t *testing.T) {
	cfg := Config{
		Source: SourceConfig{Provider: "file"},
		Engine: EngineConfig{Workers: 1, HighThreshold: 5, CriticalThreshold: 3},
		Output: OutputConfig{Format: "json", Mode: "human", Verbosity: "standard"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thresholds")

	cfg.Engine.HighThreshold, cfg.Engine.CriticalThreshold = 3, 5
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ModeAndVerbosity(t *testing.T) {
	cfg := Config{
		Source: SourceConfig{Provider: "stdin"},
		Engine: EngineConfig{Workers: 1, HighThreshold: 3, CriticalThreshold: 5},
		Output: OutputConfig{Format: "yaml", Mode: "poetic", Verbosity: "loud"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.mode")
	assert.Contains(t, err.Error(), "output.verbosity")
}
