package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("api:\n  base_url: https://fit.example.com\n  timeout: 5s\nlog:\n  level: debug\ndata:\n  dir: /var/lib/fitterm\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://fit.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/lib/fitterm", cfg.DataDir())
	assert.Equal(t, filepath.Join("/var/lib/fitterm", "credentials.db"), cfg.CredentialsPath())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("api:\n  base_url: https://file.example.com\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))
	t.Setenv("FITTERM_API_BASE_URL", "https://env.example.com")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
}

func TestLoad_MalformedFileErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api: ["), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}

func TestConfig_PathFallbacks(t *testing.T) {
	cfg := Config{}
	assert.NotEmpty(t, cfg.DataDir())
	assert.Contains(t, cfg.LogFile(), "fitterm.log")

	cfg.Log.File = "/tmp/custom.log"
	assert.Equal(t, "/tmp/custom.log", cfg.LogFile())
}
