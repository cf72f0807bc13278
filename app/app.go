// Package app is the storefront terminal program: a bubbletea model that
// lays the catalog out as a scrolling page and lets one virtualization
// controller per category decide what gets drawn.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/miosa/storefront/catalog"
	"github.com/miosa/storefront/client"
	"github.com/miosa/storefront/config"
	"github.com/miosa/storefront/event"
	"github.com/miosa/storefront/msg"
	"github.com/miosa/storefront/resize"
	"github.com/miosa/storefront/style"
	"github.com/miosa/storefront/throttle"
	"github.com/miosa/storefront/ui/common"
	"github.com/miosa/storefront/ui/header"
	"github.com/miosa/storefront/ui/status"
	"github.com/miosa/storefront/ui/toast"
	"github.com/miosa/storefront/virt"
)

// loadTimeout bounds one catalog load or health check.
const loadTimeout = 30 * time.Second

var errNoCatalog = errors.New("loader returned no catalog")

// ProgramReady is sent to the model after the tea.Program is created so
// throttle timers can be routed back into Update.
type ProgramReady struct{ Program *tea.Program }

// Loader fetches a catalog, from disk or from a catalog service.
type Loader func(ctx context.Context) (*catalog.Catalog, error)

// Options configures New.
type Options struct {
	Config  config.Config
	Logger  *zap.Logger
	Loader  Loader
	Source  string // shown in the header
	Version string

	// Client, when set, is health-checked on start.
	Client *client.Client

	// Clock overrides the timer source of the scroll throttles. The default
	// fires on the update loop once a program is attached.
	Clock throttle.Clock
}

// Model is the root bubbletea model.
type Model struct {
	cfg    config.Config
	logger *zap.Logger
	keys   KeyMap
	state  State
	layout Layout

	width    int
	height   int
	showHelp bool

	header header.Model
	status status.Model
	toasts toast.Model

	loader  Loader
	client  *client.Client
	catalog *catalog.Catalog
	loadErr error

	dispatcher  *Dispatcher
	clock       throttle.Clock
	grid        *virt.LayoutCache
	page        *page
	scrollBus   *event.Bus[virt.Frame]
	resizeBus   *event.Bus[virt.Frame]
	observer    *resize.Observer
	controllers []*virt.Controller
}

// New constructs the root Model and applies the configured theme.
func New(opts Options) Model {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Theme != "" && !style.SetTheme(cfg.Theme) {
		logger.Warn("unknown theme, keeping default", zap.String("theme", cfg.Theme))
	}

	v := cfg.Virtualization
	grid := virt.NewLayoutCache(virt.LayoutConfig{
		Breakpoint: v.Breakpoint,
		ItemHeight: v.ItemHeight,
		Gap:        v.Gap,
	})
	scale := common.Scale{CellWidth: v.CellWidth, CellHeight: v.CellHeight}

	dispatcher := NewDispatcher()
	var clock throttle.Clock = dispatcher
	if opts.Clock != nil {
		clock = opts.Clock
	}

	hdr := header.NewHeader()
	hdr.SetSource(opts.Source)
	if opts.Version != "" {
		hdr.SetVersion(opts.Version)
	}

	keys := DefaultKeyMap()
	st := status.New()
	st.SetHint(helpHint(keys))
	st.SetMessage("loading catalog…", false)

	return Model{
		cfg:        cfg,
		logger:     logger,
		keys:       keys,
		state:      StateLoading,
		header:     hdr,
		status:     st,
		toasts:     toast.New(nil),
		loader:     opts.Loader,
		client:     opts.Client,
		dispatcher: dispatcher,
		clock:      clock,
		grid:       grid,
		page:       newPage(scale, grid),
		scrollBus:  event.NewBus[virt.Frame](),
		resizeBus:  event.NewBus[virt.Frame](),
		observer:   resize.NewObserver(),
		width:      80,
		height:     24,
	}
}

// State returns the application state.
func (m Model) State() State { return m.state }

// Catalog returns the catalog on screen, or nil before the first load.
func (m Model) Catalog() *catalog.Catalog { return m.catalog }

// Disposed reports whether every controller has been torn down.
func (m Model) Disposed() bool {
	for _, c := range m.controllers {
		if !c.Disposed() {
			return false
		}
	}
	return true
}

// -- Init ---------------------------------------------------------------------

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.load(false),
		m.checkHealth(),
		func() tea.Msg { return tea.RequestWindowSize() },
	)
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.relayout()
		return m, nil

	case tea.MouseWheelMsg:
		step := m.scrollStep()
		switch v.Button {
		case tea.MouseWheelUp:
			m.scrollBy(-step)
		case tea.MouseWheelDown:
			m.scrollBy(step)
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(v)

	case ProgramReady:
		return m, m.dispatcher.Attach(v.Program)

	case msg.Dispatch:
		if v.Fn != nil {
			v.Fn()
		}
		m.syncStatus()
		return m, nil

	case msg.CatalogLoaded:
		return m.handleLoaded(v)

	case msg.CatalogReloaded:
		return m.handleReloaded(v)

	case msg.HealthResult:
		if v.Err != nil {
			m.logger.Warn("catalog service health check failed", zap.Error(v.Err))
			return m, m.notify(fmt.Sprintf("catalog service: %v", v.Err), toast.Warning)
		}
		m.logger.Info("catalog service healthy",
			zap.String("status", v.Status),
			zap.String("version", v.Version),
			zap.Int("categories", v.Categories))
		if v.Version != "" {
			m.header.SetVersion(v.Version)
		}
		return m, nil

	case msg.TickMsg:
		if next, ok := m.toasts.Tick(); ok {
			return m, toastTick(next)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleLoaded(v msg.CatalogLoaded) (tea.Model, tea.Cmd) {
	if v.Err == nil && v.Catalog == nil {
		v.Err = errNoCatalog
	}
	if v.Err != nil {
		m.logger.Error("catalog load failed", zap.Error(v.Err))
		m.loadErr = v.Err
		if m.catalog == nil {
			m.state = StateError
			m.status.SetMessage(fmt.Sprintf("catalog load failed: %v", v.Err), true)
		}
		return m, m.notify(v.Err.Error(), toast.Error)
	}
	if v.Source != "" {
		m.header.SetSource(v.Source)
	}
	m.logger.Info("catalog loaded",
		zap.Int("categories", len(v.Catalog.Categories)),
		zap.Int("items", v.Catalog.ItemCount()))
	m.applyCatalog(v.Catalog)
	return m, nil
}

func (m Model) handleReloaded(v msg.CatalogReloaded) (tea.Model, tea.Cmd) {
	if v.Err == nil && v.Catalog == nil {
		v.Err = errNoCatalog
	}
	if v.Err != nil {
		m.logger.Warn("catalog reload failed, keeping previous catalog", zap.Error(v.Err))
		return m, m.notify(fmt.Sprintf("reload failed: %v", v.Err), toast.Warning)
	}
	m.logger.Info("catalog reloaded",
		zap.Int("categories", len(v.Catalog.Categories)),
		zap.Int("items", v.Catalog.ItemCount()))
	m.applyCatalog(v.Catalog)
	return m, m.notify(fmt.Sprintf("catalog reloaded: %d items", v.Catalog.ItemCount()), toast.Info)
}

// applyCatalog puts c on the page. Controllers are kept by category
// position: a surviving controller is rebound to the new handles, which
// resets it when the item count changed and recomputes it on the next
// throttle fire.
func (m *Model) applyCatalog(c *catalog.Catalog) {
	m.catalog = c
	m.loadErr = nil
	m.state = StateBrowsing
	m.status.SetMessage("", false)
	m.header.SetCatalog(c.Title, len(c.Categories), c.ItemCount())
	m.page.setCatalog(c)

	f := m.page.frame()
	n := len(c.Categories)
	kept := min(n, len(m.controllers))
	for k := 0; k < kept; k++ {
		m.controllers[k].Rebind(m.page.container(k), m.page.items(k))
	}
	for _, ctrl := range m.controllers[kept:] {
		ctrl.Dispose()
	}
	m.controllers = m.controllers[:kept]
	for k := kept; k < n; k++ {
		ctrl := virt.NewController(k, m.page.container(k), m.page.items(k), m.controllerOptions()...)
		ctrl.Mount(m.binding(), f)
		m.controllers = append(m.controllers, ctrl)
	}
	m.syncStatus()
}

func (m *Model) controllerOptions() []virt.Option {
	v := m.cfg.Virtualization
	return []virt.Option{
		virt.WithLookahead(v.Lookahead),
		virt.WithInterval(v.ScrollThrottle),
		virt.WithClock(m.clock),
		virt.WithLayout(m.grid),
		virt.WithLogger(m.logger),
	}
}

func (m *Model) binding() virt.Binding {
	return virt.Binding{
		Scroll:    m.scrollBus,
		Resize:    m.resizeBus,
		Observer:  m.observer,
		Container: m.page.sizer(),
		Frame:     m.page.frame,
	}
}

// relayout recomputes the frame layout after a size or help change, lets
// the observer report the new container width, then ticks every controller.
func (m *Model) relayout() {
	helpLines := 0
	if m.showHelp {
		helpLines = len(m.keys.FullHelp())
	}
	m.layout = ComputeLayout(m.width, m.height, helpLines)
	m.header.SetWidth(m.width)
	m.status.SetWidth(m.width)
	m.page.resize(m.layout.PageWidth, m.layout.PageHeight)

	m.observer.Refresh()
	m.resizeBus.Emit(m.page.frame())
	m.syncStatus()
}

func (m *Model) scrollStep() int {
	step := m.page.scale.Rows(m.cfg.Virtualization.ScrollStep)
	if step < 1 {
		step = 1
	}
	return step
}

func (m *Model) scrollBy(rows int) {
	if m.page.scrollBy(rows) {
		m.scrollBus.Emit(m.page.frame())
		m.syncStatus()
	}
}

func (m *Model) scrollTo(row int) {
	if m.page.scrollTo(row) {
		m.scrollBus.Emit(m.page.frame())
		m.syncStatus()
	}
}

func (m *Model) states() []virt.State {
	out := make([]virt.State, len(m.controllers))
	for k, c := range m.controllers {
		out[k] = c.State()
	}
	return out
}

func (m *Model) syncStatus() {
	sb := m.scrollbar()
	m.status.SetScroll(sb.Fraction(), sb.Scrollable())
	if len(m.page.metrics) > 0 {
		m.status.SetColumns(m.page.metrics[0].Columns)
	}
	mounted, visible := 0, 0
	for _, s := range m.states() {
		mounted += s.VisibleCount()
		if s.ContainerVisible {
			visible++
		}
	}
	items := 0
	if m.catalog != nil {
		items = m.catalog.ItemCount()
	}
	m.status.SetMounted(mounted, items)
	m.status.SetCategories(visible, len(m.controllers))
}

func (m *Model) scrollbar() common.ScrollbarModel {
	p := m.page
	return common.NewScrollbar(p.height,
		p.scale.Height(p.rows), p.scale.Height(p.height), p.scale.Height(p.scroll))
}

// dispose tears every controller down.
// Dispose tears down every controller. It is safe to call after the quit
// key already did.
func (m Model) Dispose() { m.dispose() }

func (m *Model) dispose() {
	for _, c := range m.controllers {
		c.Dispose()
	}
	m.logger.Debug("controllers disposed", zap.Int("count", len(m.controllers)))
}

func (m *Model) notify(text string, level toast.Level) tea.Cmd {
	m.toasts.Add(text, level)
	return toastTick(toast.TTL)
}

func toastTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg.TickMsg{} })
}

// -- Commands -----------------------------------------------------------------

func (m Model) load(reload bool) tea.Cmd {
	loader := m.loader
	if loader == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		c, err := loader(ctx)
		if reload {
			return msg.CatalogReloaded{Catalog: c, Err: err}
		}
		return msg.CatalogLoaded{Catalog: c, Err: err}
	}
}

func (m Model) checkHealth() tea.Cmd {
	c := m.client
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		h, err := c.Health(ctx)
		if err != nil {
			return msg.HealthResult{Err: err}
		}
		return msg.HealthResult{Status: h.Status, Version: h.Version, Categories: h.Categories}
	}
}

// -- Key handling -------------------------------------------------------------

func (m Model) handleKey(k tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	rows := m.layout.PageHeight
	switch {
	case key.Matches[tea.KeyPressMsg](k, m.keys.Quit):
		m.dispose()
		return m, tea.Quit
	case key.Matches[tea.KeyPressMsg](k, m.keys.Help):
		m.showHelp = !m.showHelp
		m.relayout()
	case key.Matches[tea.KeyPressMsg](k, m.keys.Theme):
		m.nextTheme()
	case key.Matches[tea.KeyPressMsg](k, m.keys.Reload):
		if m.loader == nil {
			return m, nil
		}
		return m, m.load(m.catalog != nil)
	case key.Matches[tea.KeyPressMsg](k, m.keys.LineUp):
		m.scrollBy(-m.scrollStep())
	case key.Matches[tea.KeyPressMsg](k, m.keys.LineDown):
		m.scrollBy(m.scrollStep())
	case key.Matches[tea.KeyPressMsg](k, m.keys.PageUp):
		m.scrollBy(-rows)
	case key.Matches[tea.KeyPressMsg](k, m.keys.PageDown):
		m.scrollBy(rows)
	case key.Matches[tea.KeyPressMsg](k, m.keys.HalfPageUp):
		m.scrollBy(-max(rows/2, 1))
	case key.Matches[tea.KeyPressMsg](k, m.keys.HalfPageDown):
		m.scrollBy(max(rows/2, 1))
	case key.Matches[tea.KeyPressMsg](k, m.keys.Top):
		m.scrollTo(0)
	case key.Matches[tea.KeyPressMsg](k, m.keys.Bottom):
		m.scrollTo(m.page.maxScroll())
	}
	return m, nil
}

func (m *Model) nextTheme() {
	names := style.ThemeNames
	next := names[0]
	for i, n := range names {
		if n == style.CurrentThemeName {
			next = names[(i+1)%len(names)]
			break
		}
	}
	style.SetTheme(next)
	m.cfg.Theme = next
	m.logger.Debug("theme switched", zap.String("theme", next))

	// Rendered descriptions may change height with the theme.
	m.page.invalidate()
	m.observer.Refresh()
	m.resizeBus.Emit(m.page.frame())
	m.syncStatus()
}

// -- View ---------------------------------------------------------------------

// View returns the tea.View for the current frame.
// AltScreen and MouseMode are set on every frame.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderView())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// renderView composes the full terminal frame as a string.
func (m Model) renderView() string {
	sections := []string{m.header.HeaderView(), m.renderMain()}
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}
	sections = append(sections, m.status.View())
	return strings.Join(sections, "\n")
}

// renderMain returns the page with its scrollbar, with toasts drawn over its
// last rows.
func (m Model) renderMain() string {
	h := m.layout.PageHeight
	var body string
	switch m.state {
	case StateBrowsing:
		body = m.page.view(m.states())
	case StateError:
		body = common.Block("\n"+style.ErrorText.Render("  could not load the catalog"), m.layout.PageWidth, h)
	default:
		body = common.Block("\n"+style.Faint.Render("  loading catalog…"), m.layout.PageWidth, h)
	}

	lines := strings.Split(body, "\n")
	if m.toasts.Len() > 0 {
		notes := strings.Split(m.toasts.View(m.layout.PageWidth), "\n")
		start := max(len(lines)-len(notes), 0)
		for i := start; i < len(lines); i++ {
			lines[i] = common.Fit(notes[i-start], m.layout.PageWidth)
		}
	}
	body = strings.Join(lines, "\n")

	bar := m.scrollbar().View()
	if bar == "" {
		bar = common.Block("", scrollbarWidth, h)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, body, bar)
}

func (m Model) renderHelp() string {
	rows := m.keys.FullHelp()
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = common.Fit(" "+common.KeyHelp(row...), m.width)
	}
	return strings.Join(lines, "\n")
}

func helpHint(k KeyMap) string {
	parts := make([]string, 0, 2)
	for _, b := range k.ShortHelp() {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return strings.Join(parts, " · ")
}
