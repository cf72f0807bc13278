package app

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miosa/storefront/catalog"
	"github.com/miosa/storefront/config"
	"github.com/miosa/storefront/msg"
	"github.com/miosa/storefront/style"
	"github.com/miosa/storefront/throttle"
	"github.com/miosa/storefront/virt"
)

func newTestModel(t *testing.T) (Model, *throttle.ManualClock) {
	t.Helper()
	clock := throttle.NewManualClock()
	m := New(Options{Config: config.Default(), Clock: clock})
	return m, clock
}

func update(t *testing.T, m Model, message tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(message)
	return next.(Model)
}

// browsing returns a model showing five categories of twenty items in a
// 101x40 terminal.
func browsing(t *testing.T) (Model, *throttle.ManualClock) {
	t.Helper()
	m, clock := newTestModel(t)
	m = update(t, m, msg.CatalogLoaded{Catalog: catalog.Mock(5, 20, 1)})
	m = update(t, m, tea.WindowSizeMsg{Width: 101, Height: 40})
	require.Equal(t, StateBrowsing, m.State())
	require.Len(t, m.controllers, 5)
	return m, clock
}

func assertHidden(t *testing.T, states []virt.State) {
	t.Helper()
	for k, s := range states {
		if !s.ContainerVisible {
			assert.Zero(t, s.VisibleCount(), "category %d hidden but has visible items", k)
		}
	}
}

func TestModel_InitialLayout(t *testing.T) {
	m, _ := browsing(t)
	states := m.states()

	assert.True(t, states[0].ContainerVisible)
	assert.Equal(t, 2, states[0].Metrics.Columns)
	assert.Greater(t, states[0].VisibleCount(), 0)
	assert.Less(t, states[0].VisibleCount(), 20)

	// Category 1 starts visible but is measured off screen on the first tick.
	assert.False(t, states[1].ContainerVisible)
	assert.False(t, states[4].ContainerVisible)
	assertHidden(t, states)

	for _, c := range m.controllers {
		assert.Equal(t, virt.PhaseActive, c.Phase())
		assert.Equal(t, 800.0, c.Width())
	}
}

func TestModel_ScrollIsThrottled(t *testing.T) {
	m, clock := browsing(t)
	before := m.states()

	m = update(t, m, tea.KeyPressMsg{Code: tea.KeyEnd})
	assert.Equal(t, m.page.maxScroll(), m.page.scroll)
	assert.Equal(t, before, m.states(), "nothing recomputed before the trailing edge")
	assert.Equal(t, 5, clock.Pending())

	clock.Advance(throttle.DefaultInterval)
	states := m.states()
	assert.False(t, states[0].ContainerVisible)
	assert.True(t, states[4].ContainerVisible)
	assert.Greater(t, states[4].VisibleCount(), 0)
	assertHidden(t, states)
}

func TestModel_MouseWheelScrollsByStep(t *testing.T) {
	m, _ := browsing(t)
	m = update(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	assert.Equal(t, 3, m.page.scroll)
	m = update(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	assert.Equal(t, 0, m.page.scroll)
}

func TestModel_KeyScrolling(t *testing.T) {
	m, _ := browsing(t)
	m = update(t, m, tea.KeyPressMsg{Code: 'j', Text: "j"})
	assert.Equal(t, 3, m.page.scroll)
	m = update(t, m, tea.KeyPressMsg{Code: tea.KeyPgDown})
	assert.Equal(t, 3+m.layout.PageHeight, m.page.scroll)
	m = update(t, m, tea.KeyPressMsg{Code: 'g', Text: "g"})
	assert.Equal(t, 0, m.page.scroll)
}

func TestModel_ReloadWithNewItemCountResets(t *testing.T) {
	m, clock := browsing(t)
	first := m.controllers[0]

	m = update(t, m, msg.CatalogReloaded{Catalog: catalog.Mock(5, 10, 2)})
	require.Len(t, m.controllers, 5)
	assert.Same(t, first, m.controllers[0], "controllers survive a reload")

	for k, s := range m.states() {
		assert.Len(t, s.ItemVisible, 10)
		assert.Zero(t, s.VisibleCount(), "category %d is reset", k)
	}
	assert.True(t, m.states()[0].ContainerVisible, "seed keeps the first categories visible")
	assert.Equal(t, 1, m.toasts.Len())

	clock.Advance(throttle.DefaultInterval)
	assert.Greater(t, m.states()[0].VisibleCount(), 0)
	assertHidden(t, m.states())
}

func TestModel_ReloadWithFewerCategoriesDisposes(t *testing.T) {
	m, _ := browsing(t)
	old := append([]*virt.Controller(nil), m.controllers...)

	m = update(t, m, msg.CatalogReloaded{Catalog: catalog.Mock(2, 20, 1)})
	require.Len(t, m.controllers, 2)
	assert.False(t, old[1].Disposed())
	for _, c := range old[2:] {
		assert.True(t, c.Disposed())
	}
	assert.Equal(t, 2, m.scrollBus.Len())
}

func TestModel_ReloadErrorKeepsCatalog(t *testing.T) {
	m, _ := browsing(t)
	cat := m.Catalog()
	m = update(t, m, msg.CatalogReloaded{Err: errors.New("yaml: line 3: bad indent")})
	assert.Same(t, cat, m.Catalog())
	assert.Equal(t, StateBrowsing, m.State())
	assert.Equal(t, 1, m.toasts.Len())
}

func TestModel_LoadErrorShowsError(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = update(t, m, msg.CatalogLoaded{Err: errors.New("open catalog.yaml: no such file")})
	assert.Equal(t, StateError, m.State())
	assert.Contains(t, m.renderView(), "could not load the catalog")

	m = update(t, m, msg.CatalogLoaded{})
	assert.Equal(t, StateError, m.State(), "an empty result is an error")
}

func TestModel_ViewFillsTerminal(t *testing.T) {
	m, _ := browsing(t)
	out := m.renderView()
	assert.Equal(t, 40, lipgloss.Height(out))
	assert.Contains(t, out, "5 categories")
	assert.Contains(t, out, "Breakfast")

	v := m.View()
	assert.True(t, v.AltScreen)
}

func TestModel_HelpShrinksPage(t *testing.T) {
	m, _ := browsing(t)
	h := m.layout.PageHeight
	m = update(t, m, tea.KeyPressMsg{Code: '?', Text: "?"})
	assert.True(t, m.showHelp)
	assert.Equal(t, h-len(m.keys.FullHelp()), m.layout.PageHeight)
	assert.Equal(t, 40, lipgloss.Height(m.renderView()))
}

func TestModel_ThemeCycles(t *testing.T) {
	t.Cleanup(func() { style.SetTheme("dark") })
	m, _ := browsing(t)
	m = update(t, m, tea.KeyPressMsg{Code: 't', Text: "t"})
	assert.Equal(t, "light", style.CurrentThemeName)
	assert.Equal(t, "light", m.cfg.Theme)
	assertHidden(t, m.states())
}

func TestModel_DispatchRunsOnUpdate(t *testing.T) {
	m, _ := newTestModel(t)
	ran := false
	update(t, m, msg.Dispatch{Fn: func() { ran = true }})
	assert.True(t, ran)
}

func TestModel_QuitDisposesControllers(t *testing.T) {
	m, clock := browsing(t)
	m = update(t, m, tea.KeyPressMsg{Code: tea.KeyEnd})
	next, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	m = next.(Model)
	for _, c := range m.controllers {
		assert.True(t, c.Disposed())
	}
	assert.Zero(t, clock.Pending())
	assert.Zero(t, m.scrollBus.Len())
}

func TestModel_StatusReflectsMountedCards(t *testing.T) {
	m, _ := browsing(t)
	out := m.status.View()
	assert.True(t, strings.Contains(out, "/100"), "all items counted: %q", out)
}

func TestModel_DisposeWithoutQuit(t *testing.T) {
	m, clock := browsing(t)
	m = update(t, m, tea.KeyPressMsg{Code: tea.KeyEnd})
	require.False(t, m.Disposed())

	m.Dispose()
	assert.True(t, m.Disposed())
	assert.Zero(t, clock.Pending())
	assert.Zero(t, m.resizeBus.Len())
	assert.NotPanics(t, m.Dispose)
}

func TestModel_ResizeDuringScrollKeepsNewViewport(t *testing.T) {
	m, clock := browsing(t)
	m = update(t, m, tea.KeyPressMsg{Code: 'j', Text: "j"})
	m = update(t, m, tea.WindowSizeMsg{Width: 101, Height: 80})
	resized := m.states()

	clock.Advance(throttle.DefaultInterval)
	for k, s := range m.states() {
		assert.Equal(t, resized[k].ItemVisible, s.ItemVisible, "category %d", k)
	}
}
