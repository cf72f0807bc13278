package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	want := Default()
	want.Logging.File = filepath.Join(dir, "storefront.log")
	assert.Equal(t, want, cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	doc := `
theme: light
catalog_path: /srv/store.yaml
virtualization:
  scroll_throttle: 32ms
  lookahead: 100
logging:
  level: debug
  file: "-"
`
	require.NoError(t, os.WriteFile(Path(dir), []byte(doc), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "/srv/store.yaml", cfg.CatalogPath)
	assert.Equal(t, 32*time.Millisecond, cfg.Virtualization.ScrollThrottle)
	assert.Equal(t, 100.0, cfg.Virtualization.Lookahead)
	assert.Equal(t, 650.0, cfg.Virtualization.Breakpoint, "unset fields keep defaults")
	assert.Equal(t, LoggingConfig{Level: "debug", File: "-"}, cfg.Logging)
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte("theme: [unclosed"), 0o644))
	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_THEME", "light")
	t.Setenv("STOREFRONT_CATALOG", "")
	t.Setenv("STOREFRONT_CATALOG_URL", "http://shop.local")
	t.Setenv("STOREFRONT_CATALOG_TOKEN", "secret")
	t.Setenv("STOREFRONT_LOG_LEVEL", "warn")

	cfg := Default()
	cfg.CatalogPath = "kept.yaml"
	cfg.applyEnvOverrides()

	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "kept.yaml", cfg.CatalogPath, "empty variables do not override")
	assert.Equal(t, "http://shop.local", cfg.CatalogURL)
	assert.Equal(t, "secret", cfg.CatalogAuth)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero throttle", func(c *Config) { c.Virtualization.ScrollThrottle = 0 }},
		{"zero cell width", func(c *Config) { c.Virtualization.CellWidth = 0 }},
		{"zero item height", func(c *Config) { c.Virtualization.ItemHeight = 0 }},
		{"negative gap", func(c *Config) { c.Virtualization.Gap = -1 }},
		{"zero scroll step", func(c *Config) { c.Virtualization.ScrollStep = 0 }},
		{"two catalog sources", func(c *Config) { c.CatalogPath, c.CatalogURL = "a", "b" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestSaveThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile")
	cfg := Default()
	cfg.Theme = "light"
	cfg.Logging.File = filepath.Join(dir, "custom.log")
	require.NoError(t, Save(dir, cfg))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
