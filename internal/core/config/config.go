// Package config handles configuration loading and validation for hard75.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Photos   PhotosConfig   `yaml:"photos"`
	TUI      TUIConfig      `yaml:"tui"`
	Confirm  ConfirmConfig  `yaml:"confirm"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects where the challenge snapshot is kept.
type StorageConfig struct {
	// Backend is either "json" or "sqlite".
	Backend string `yaml:"backend" env:"HARD75_STORAGE_BACKEND"`
	// File is the json snapshot file name, relative to the data dir.
	File string `yaml:"file" env:"HARD75_STORAGE_FILE"`
}

// DatabaseConfig tunes the sqlite backend.
type DatabaseConfig struct {
	BusyTimeoutMS int `yaml:"busy_timeout_ms"`
	MaxOpenConns  int `yaml:"max_open_conns"`
}

// PhotosConfig limits progress photo uploads.
type PhotosConfig struct {
	MaxBytes int64 `yaml:"max_bytes" env:"HARD75_PHOTOS_MAX_BYTES"`
}

// TUIConfig holds interactive UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme" env:"HARD75_TUI_THEME"`
}

// ConfirmConfig controls destructive-action prompts.
type ConfirmConfig struct {
	// AssumeYes answers every confirmation prompt with yes.
	AssumeYes bool `yaml:"assume_yes" env:"HARD75_ASSUME_YES"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendJSON,
			File:    "state.json",
		},
		Database: DatabaseConfig{
			BusyTimeoutMS: 5000,
			MaxOpenConns:  1,
		},
		Photos: PhotosConfig{
			MaxBytes: 10 << 20,
		},
		TUI: TUIConfig{
			Theme: "tokyo-night",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
// Environment variables override values from the file.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Re-set dataDir since Unmarshal may have cleared it
	cfg.DataDir = dataDir

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// StatePath returns the json snapshot location.
func (c *Config) StatePath() string {
	return filepath.Join(c.DataDir, c.Storage.File)
}

// LogPath returns the default log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "hard75.log")
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.File == "" {
		c.Storage.File = defaults.Storage.File
	}
	if c.Database.BusyTimeoutMS == 0 {
		c.Database.BusyTimeoutMS = defaults.Database.BusyTimeoutMS
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Photos.MaxBytes == 0 {
		c.Photos.MaxBytes = defaults.Photos.MaxBytes
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Storage.Backend)
	}

	if c.Photos.MaxBytes < 0 {
		return fmt.Errorf("photos.max_bytes cannot be negative")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}

	return nil
}
