package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("TONELANG_ENV", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "tonelang-mcp", cfg.ServerName)
	assert.Equal(t, 120.0, cfg.ExportBPM)
	assert.Empty(t, cfg.OpenAIAPIKey)
}

func TestLoad_FileAndEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"environment: staging\nopenai_api_key: file-key\nexport_bpm: 90\n"), 0o644))

	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("TONELANG_ENV", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Environment, "file overrides the default")
	assert.Equal(t, "env-key", cfg.OpenAIAPIKey, "env overrides the file")
	assert.Equal(t, 90.0, cfg.ExportBPM)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
