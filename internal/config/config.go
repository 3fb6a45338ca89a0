// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/util"
)

// EnvAPIURL is the environment variable overriding the backend base URL.
const EnvAPIURL = "HEMONCHAT_API_URL"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete hemonchat client configuration.
type Config struct {
	API APIConfig `toml:"api"`
	UI  UIConfig  `toml:"ui"`
}

// APIConfig contains backend connection settings.
type APIConfig struct {
	// BaseURL is the backend base URL, e.g. http://localhost:8000
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the timeout for non-streaming requests
	TimeoutSecs int `toml:"timeout_secs"`
	// PollIntervalSecs is the cadence of model readiness checks
	PollIntervalSecs int `toml:"poll_interval_secs"`
}

// UIConfig contains TUI appearance settings.
type UIConfig struct {
	// Theme selects the color theme: "dark" or "light"
	Theme string `toml:"theme"`
	// MarkdownWidth is the word-wrap width for rendered responses
	MarkdownWidth int `toml:"markdown_width"`
	// SnakeEnabled shows the warm-up snake minigame
	SnakeEnabled bool `toml:"snake_enabled"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:          "http://localhost:8000",
			TimeoutSecs:      10,
			PollIntervalSecs: 60,
		},
		UI: UIConfig{
			Theme:         "dark",
			MarkdownWidth: 80,
			SnakeEnabled:  true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the hemonchat config directory (~/.hemonchat).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".hemonchat"), nil
}

// Path returns the config file path (~/.hemonchat/config.toml).
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config file, applies the environment override, and
// validates the result. A missing file is not an error; defaults apply.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file: defaults plus env.
	case err != nil:
		return nil, fmt.Errorf("cannot read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("cannot parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config atomically to the default path, creating the
// config directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config atomically to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}

	return util.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// =============================================================================
// OVERRIDES AND VALIDATION
// =============================================================================

// applyEnv applies environment variable overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
}

// fillDefaults replaces zero values with defaults, so a sparse config
// file doesn't zero out settings it never mentioned.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.TimeoutSecs <= 0 {
		c.API.TimeoutSecs = def.API.TimeoutSecs
	}
	if c.API.PollIntervalSecs <= 0 {
		c.API.PollIntervalSecs = def.API.PollIntervalSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.UI.MarkdownWidth <= 0 {
		c.UI.MarkdownWidth = def.UI.MarkdownWidth
	}
}

// Validate checks the config for values that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q: must be an absolute http(s) URL", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api.base_url scheme %q", u.Scheme)
	}
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		return fmt.Errorf("invalid ui.theme %q: must be dark or light", c.UI.Theme)
	}
	return nil
}
