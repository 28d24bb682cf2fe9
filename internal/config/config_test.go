package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(EnvFile, "")
	t.Setenv(EnvLogLevel, "")
	return dir
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	isolate(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
}

func TestSaveThenLoad(t *testing.T) {
	dir := isolate(t)

	cfg := DefaultConfig()
	cfg.Storage.File = filepath.Join(dir, "mine.json")
	cfg.General.ConfirmDeletes = false
	cfg.General.DefaultCategory = "Food"
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Log.Level = "debug"
	require.NoError(t, Save(cfg))
	require.True(t, Exists())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	info, err := os.Stat(ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[appearance]\ntheme = \"terminal\"\n"), 0o600))

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "terminal", cfg.Appearance.Theme)
	assert.True(t, cfg.General.ConfirmDeletes)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_InvalidTOML(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[storage\nfile="), 0o600))

	_, err := Load()

	assert.ErrorContains(t, err, "parsing config")
}

func TestExpenseFile_Precedence(t *testing.T) {
	dir := isolate(t)
	cfg := DefaultConfig()

	assert.Equal(t, filepath.Join(dir, "data", "xpense", "expenses.json"), ExpenseFile(cfg))

	cfg.Storage.File = "/from/config.json"
	assert.Equal(t, "/from/config.json", ExpenseFile(cfg))

	t.Setenv(EnvFile, "/from/env.json")
	assert.Equal(t, "/from/env.json", ExpenseFile(cfg))
}

func TestLogLevel_EnvOverridesConfig(t *testing.T) {
	isolate(t)
	cfg := DefaultConfig()

	assert.Equal(t, "warn", LogLevel(cfg))
	t.Setenv(EnvLogLevel, "debug")
	assert.Equal(t, "debug", LogLevel(cfg))
}

func TestLoadEnv(t *testing.T) {
	dir := isolate(t)
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("XPENSE_TEST_ONLY=from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("XPENSE_TEST_ONLY") })

	require.NoError(t, LoadEnv(envPath, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "from-dotenv", os.Getenv("XPENSE_TEST_ONLY"))
}
