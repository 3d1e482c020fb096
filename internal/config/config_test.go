package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Log.Level)

	// First run writes the default file
	_, statErr := os.Stat(filepath.Join(home, ".cqnu", "config.yaml"))
	assert.NoError(t, statErr)
}

func TestLoadReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".cqnu")
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := "api:\n  base_url: https://events.example.edu\n  timeout_seconds: 10\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://events.example.edu", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.API.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CQNU_API_URL", "https://override.example.edu")

	dir := filepath.Join(home, ".cqnu")
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := "api:\n  base_url: https://events.example.edu\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://override.example.edu", cfg.API.BaseURL)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".cqnu")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api: ["), 0600))

	_, err := Load(context.Background())
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	cfg := defaultConfig()

	tests := []struct {
		key  string
		want string
	}{
		{"api.base_url", "http://localhost:5000"},
		{"api.timeout_seconds", "30"},
		{"log.level", "info"},
		{"log.format", "text"},
		{"log.file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := cfg.Get("nonsense.key")
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	cfg := defaultConfig()

	require.NoError(t, cfg.Set("api.base_url", "https://events.example.edu"))
	assert.Equal(t, "https://events.example.edu", cfg.API.BaseURL)

	require.NoError(t, cfg.Set("api.timeout_seconds", "5"))
	assert.Equal(t, 5, cfg.API.TimeoutSeconds)

	assert.Error(t, cfg.Set("api.timeout_seconds", "zero"))
	assert.Error(t, cfg.Set("api.timeout_seconds", "-1"))
	assert.Error(t, cfg.Set("nonsense.key", "x"))
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := defaultConfig()
	cfg.API.BaseURL = "https://events.example.edu"

	path, err := Path()
	require.NoError(t, err)
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://events.example.edu", loaded.API.BaseURL)
}
