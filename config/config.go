// Package config loads the storefront settings from
// <profileDir>/config.yaml, with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const filename = "config.yaml"

// Config holds every tunable of the terminal client.
type Config struct {
	Theme string `yaml:"theme"`

	// Catalog source: a local file, or a remote base URL serving /catalog.
	CatalogPath string `yaml:"catalog_path,omitempty"`
	CatalogURL  string `yaml:"catalog_url,omitempty"`
	CatalogAuth string `yaml:"catalog_token,omitempty"`
	Watch       bool   `yaml:"watch"`

	Virtualization VirtualizationConfig `yaml:"virtualization"`
	Logging        LoggingConfig        `yaml:"logging"`
}

// VirtualizationConfig tunes the layout and visibility engine. Lengths are
// in logical units.
type VirtualizationConfig struct {
	ScrollThrottle time.Duration `yaml:"scroll_throttle"`
	Lookahead      float64       `yaml:"lookahead"`
	Breakpoint     float64       `yaml:"breakpoint"`
	ItemHeight     float64       `yaml:"item_height"`
	Gap            float64       `yaml:"gap"`

	// CellWidth and CellHeight are the logical units covered by one terminal
	// column and one terminal row.
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`

	// ScrollStep is how far one wheel notch or j/k press scrolls.
	ScrollStep float64 `yaml:"scroll_step"`
}

// LoggingConfig selects the log level and destination. File "-" logs to
// stderr, which corrupts the terminal UI and is only useful when piping.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Theme: "dark",
		Virtualization: VirtualizationConfig{
			ScrollThrottle: 16 * time.Millisecond,
			Lookahead:      250,
			Breakpoint:     650,
			ItemHeight:     160,
			Gap:            10,
			CellWidth:      8,
			CellHeight:     16,
			ScrollStep:     48,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Path returns the config file location inside profileDir.
func Path(profileDir string) string {
	return filepath.Join(profileDir, filename)
}

// Load reads <profileDir>/config.yaml over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(profileDir string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(Path(profileDir))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnvOverrides()
	if cfg.Logging.File == "" {
		cfg.Logging.File = filepath.Join(profileDir, "storefront.log")
	}
	return cfg, cfg.Validate()
}

// Save writes cfg to <profileDir>/config.yaml, creating the directory.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(Path(profileDir), data, 0o644)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("STOREFRONT_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("STOREFRONT_CATALOG"); v != "" {
		c.CatalogPath = v
	}
	if v := os.Getenv("STOREFRONT_CATALOG_URL"); v != "" {
		c.CatalogURL = v
	}
	if v := os.Getenv("STOREFRONT_CATALOG_TOKEN"); v != "" {
		c.CatalogAuth = v
	}
	if v := os.Getenv("STOREFRONT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate rejects settings the engine cannot work with.
func (c Config) Validate() error {
	v := c.Virtualization
	switch {
	case v.ScrollThrottle <= 0:
		return fmt.Errorf("config: scroll_throttle must be positive, got %s", v.ScrollThrottle)
	case v.CellWidth <= 0 || v.CellHeight <= 0:
		return fmt.Errorf("config: cell_width and cell_height must be positive")
	case v.ItemHeight <= 0:
		return fmt.Errorf("config: item_height must be positive")
	case v.Lookahead < 0 || v.Gap < 0:
		return fmt.Errorf("config: lookahead and gap cannot be negative")
	case v.ScrollStep <= 0:
		return fmt.Errorf("config: scroll_step must be positive")
	case c.CatalogPath != "" && c.CatalogURL != "":
		return fmt.Errorf("config: catalog_path and catalog_url are mutually exclusive")
	}
	return nil
}
