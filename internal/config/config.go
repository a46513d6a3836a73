package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/sadopc/healthtrackr/internal/store"
)

// Environment variables that override the config file.
const (
	EnvDBPath   = "HEALTHTRACKR_DB"
	EnvLogLevel = "HEALTHTRACKR_LOG_LEVEL"
	EnvLogPath  = "HEALTHTRACKR_LOG_PATH"
)

type Config struct {
	DBPath string `toml:"db_path"`
	// logging
	LogLevel    string `toml:"log_level"`
	LogPath     string `toml:"log_path"`
	LogToStdout bool   `toml:"log_to_stdout"`
	LogJSON     bool   `toml:"log_format_json"`
	// ui
	StepIncrement int `toml:"step_increment"`
	HistoryDays   int `toml:"history_days"`
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) *Config {
	return &Config{
		DBPath:        filepath.Join(dir, "health.db"),
		LogLevel:      "info",
		LogPath:       filepath.Join(dir, "healthtrackr.log"),
		StepIncrement: 1000,
		HistoryDays:   7,
	}
}

// DefaultPath returns ~/.config/healthtrackr/config.toml
func DefaultPath() (string, error) {
	dir, err := store.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the TOML file at path on top of the defaults, then applies
// environment overrides (a .env file in the working directory is honoured).
// A missing file is not an error.
func Load(path string) (*Config, error) {
	dir, err := store.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	cfg := Default(dir)

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogPath); ok {
		c.LogPath = v
	}
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if c.StepIncrement <= 0 {
		return fmt.Errorf("step_increment must be positive, got %d", c.StepIncrement)
	}
	if c.HistoryDays <= 0 {
		return fmt.Errorf("history_days must be positive, got %d", c.HistoryDays)
	}
	return nil
}
