package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"APP_ENV", "LOG_LEVEL", "LOG_FORMAT",
	"TASKFLOW_SETTINGS_PATH", "TASKFLOW_DATASET_PATH",
	"TASKFLOW_SEED_ENABLED", "TASKFLOW_SEED_REBASE",
	"MCP_ADDR", "MCP_AUTH_TOKEN", "MCP_SHUTDOWN_TIMEOUT",
}

// clearEnvVars clears all taskflow environment variables for the test.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, v := range envVars {
		t.Setenv(v, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnvVars(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.LogFormat)
	assert.Equal(t, "settings.toml", filepath.Base(cfg.SettingsPath))
	assert.Equal(t, ".taskflow", filepath.Base(filepath.Dir(cfg.SettingsPath)))
	assert.True(t, cfg.UsesSettingsFile())
	assert.Equal(t, "", cfg.DatasetPath)
	assert.True(t, cfg.SeedEnabled)
	assert.True(t, cfg.SeedRebase)
	assert.Equal(t, "127.0.0.1:8082", cfg.MCPAddr)
	assert.Equal(t, "", cfg.MCPAuthToken)
	assert.Equal(t, 5*time.Second, cfg.MCPShutdownTimeout)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("TASKFLOW_SETTINGS_PATH", "-")
	t.Setenv("TASKFLOW_DATASET_PATH", "/data/tasks.json")
	t.Setenv("TASKFLOW_SEED_ENABLED", "false")
	t.Setenv("TASKFLOW_SEED_REBASE", "0")
	t.Setenv("MCP_ADDR", ":9000")
	t.Setenv("MCP_AUTH_TOKEN", "secret")
	t.Setenv("MCP_SHUTDOWN_TIMEOUT", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.UsesSettingsFile())
	assert.Equal(t, "/data/tasks.json", cfg.DatasetPath)
	assert.False(t, cfg.SeedEnabled)
	assert.False(t, cfg.SeedRebase)
	assert.Equal(t, ":9000", cfg.MCPAddr)
	assert.Equal(t, "secret", cfg.MCPAuthToken)
	assert.Equal(t, 250*time.Millisecond, cfg.MCPShutdownTimeout)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("TASKFLOW_SEED_ENABLED", "sometimes")
	t.Setenv("MCP_SHUTDOWN_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.SeedEnabled)
	assert.Equal(t, 5*time.Second, cfg.MCPShutdownTimeout)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnvVars(t)
	os.Unsetenv("MCP_ADDR")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MCP_ADDR=localhost:7777\n"), 0600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		os.Unsetenv("MCP_ADDR")
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:7777", cfg.MCPAddr)
}
