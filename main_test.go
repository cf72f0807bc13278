package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miosa/storefront/app"
	"github.com/miosa/storefront/catalog"
	"github.com/miosa/storefront/config"
	"github.com/miosa/storefront/msg"
	"github.com/miosa/storefront/throttle"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--profile", t.TempDir()))
	err := root.Execute()
	return out.String(), err
}

// field returns the value cell of the table row labelled name.
func field(out, name string) string {
	for _, line := range strings.Split(ansi.Strip(out), "\n") {
		cells := strings.Split(line, "│")
		if len(cells) >= 3 && strings.TrimSpace(cells[1]) == name {
			return strings.TrimSpace(cells[2])
		}
	}
	return ""
}

func TestLayoutCmd(t *testing.T) {
	tests := []struct {
		args    []string
		columns string
		total   string
	}{
		{[]string{"--count", "5", "--width", "800"}, "2", "510"},
		{[]string{"--count", "5", "--width", "500"}, "1", "800"},
		{[]string{"--count", "0", "--width", "800"}, "2", "0"},
		{[]string{"-n", "4", "--cols", "100"}, "2", "330"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := run(t, append([]string{"layout"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.columns, field(out, "columns"))
			assert.Equal(t, tt.total, field(out, "total height"))
		})
	}
}

func TestMockCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	out, err := run(t, "mock", "--categories", "3", "--items", "7", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 3 categories, 21 items")

	cat, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Len(t, cat.Categories, 3)
	assert.Equal(t, 21, cat.ItemCount())

	_, err = run(t, "mock", "--categories", "0", path)
	assert.Error(t, err)
}

func TestConfigCmd(t *testing.T) {
	profile := t.TempDir()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "--write", "--profile", profile})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), config.Path(profile))

	cfg, err := config.Load(profile)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Virtualization, cfg.Virtualization)

	printed, err := run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, printed, "breakpoint: 650")
}

func TestTeardownDisposesControllers(t *testing.T) {
	var m tea.Model = app.New(app.Options{Config: config.Default(), Clock: throttle.NewManualClock()})
	m, _ = m.Update(msg.CatalogLoaded{Catalog: catalog.Mock(3, 4, 1)})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	require.False(t, m.(app.Model).Disposed())

	teardown(m)
	assert.True(t, m.(app.Model).Disposed())

	assert.NotPanics(t, func() { teardown(m) })
	assert.NotPanics(t, func() { teardown(nil) })
}
