// Package config loads and saves the xpense TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment overrides.
const (
	EnvFile     = "XPENSE_FILE"
	EnvLogLevel = "XPENSE_LOG_LEVEL"
)

// Config holds all xpense configuration.
type Config struct {
	Storage    StorageConfig    `toml:"storage"`
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// StorageConfig holds where expenses are persisted.
type StorageConfig struct {
	File string `toml:"file,omitempty"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	ConfirmDeletes  bool   `toml:"confirm_deletes"`
	DefaultCategory string `toml:"default_category,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			ConfirmDeletes: true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "xpense")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "xpense")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "xpense")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "xpense")
}

// DefaultExpenseFile is used when neither config, env nor flag name a file.
func DefaultExpenseFile() string {
	return filepath.Join(DataDir(), "expenses.json")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// LoadEnv reads KEY=value pairs from the given .env files (".env" when none
// are named) into the process environment. Variables that are already set
// win, and missing files are not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ExpenseFile returns the expense file from env var, config, or the
// default, in that order.
func ExpenseFile(cfg Config) string {
	if f := os.Getenv(EnvFile); f != "" {
		return f
	}
	if cfg.Storage.File != "" {
		return cfg.Storage.File
	}
	return DefaultExpenseFile()
}

// LogLevel returns the log level name from env var or config.
func LogLevel(cfg Config) string {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		return lvl
	}
	return cfg.Log.Level
}
