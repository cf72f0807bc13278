package virt

import (
	"math"
	"sync"
)

// LayoutConfig holds the responsive grid rules. The zero value is not useful;
// start from DefaultLayoutConfig.
type LayoutConfig struct {
	// Breakpoint is the container width below which the grid has one column.
	Breakpoint float64
	// ItemHeight is the fixed height of every item slot.
	ItemHeight float64
	// Gap separates rows, and trails the last row, in the two-column grid.
	Gap float64
}

// DefaultLayoutConfig returns the stock grid: one column under 650 units,
// 160-unit items, 10-unit gaps.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{Breakpoint: 650, ItemHeight: 160, Gap: 10}
}

// Metrics describe how a category's items are laid out for one width.
type Metrics struct {
	Columns     int
	Rows        int
	ItemHeight  float64
	Gap         float64
	TotalHeight float64
}

// SlotTop returns the offset of item i's slot from the top of its container.
func (m Metrics) SlotTop(i int) float64 {
	if m.Columns <= 0 || i < 0 {
		return 0
	}
	return float64(i/m.Columns) * (m.ItemHeight + m.Gap)
}

// Column returns the zero-based column of item i.
func (m Metrics) Column(i int) int {
	if m.Columns <= 0 || i < 0 {
		return 0
	}
	return i % m.Columns
}

// Compute lays out count items in a container of the given width.
//
//	columns     = width < Breakpoint ? 1 : 2
//	gap         = columns == 1 ? 0 : Gap   (the trailing gap follows the same rule)
//	rows        = ceil(count / columns)
//	totalHeight = (rows-1)*gap + gap + rows*ItemHeight, floored at 0
func (c LayoutConfig) Compute(count int, width float64) Metrics {
	if count < 0 {
		count = 0
	}
	columns := 2
	if width < c.Breakpoint {
		columns = 1
	}
	gap, lastGap := c.Gap, c.Gap
	if columns == 1 {
		gap, lastGap = 0, 0
	}
	rows := int(math.Ceil(float64(count) / float64(columns)))
	total := float64(rows-1)*gap + lastGap + float64(rows)*c.ItemHeight
	return Metrics{
		Columns:     columns,
		Rows:        rows,
		ItemHeight:  c.ItemHeight,
		Gap:         gap,
		TotalHeight: math.Max(0, total),
	}
}

// ComputeLayout applies DefaultLayoutConfig.
func ComputeLayout(count int, width float64) Metrics {
	return DefaultLayoutConfig().Compute(count, width)
}

const layoutCacheLimit = 512

type layoutKey struct {
	count int
	width float64
}

// LayoutCache memoizes Compute by (count, width). Widths change with every
// resize, so the cache is cleared once it holds layoutCacheLimit entries.
// It is safe for concurrent use and may be shared between controllers.
type LayoutCache struct {
	cfg     LayoutConfig
	mu      sync.Mutex
	entries map[layoutKey]Metrics
}

// NewLayoutCache returns an empty cache for cfg.
func NewLayoutCache(cfg LayoutConfig) *LayoutCache {
	return &LayoutCache{cfg: cfg, entries: make(map[layoutKey]Metrics)}
}

// Config returns the rules the cache computes with.
func (lc *LayoutCache) Config() LayoutConfig { return lc.cfg }

// Get returns the metrics for (count, width).
func (lc *LayoutCache) Get(count int, width float64) Metrics {
	k := layoutKey{count: count, width: width}
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if m, ok := lc.entries[k]; ok {
		return m
	}
	if len(lc.entries) >= layoutCacheLimit {
		lc.entries = make(map[layoutKey]Metrics)
	}
	m := lc.cfg.Compute(count, width)
	lc.entries[k] = m
	return m
}

// Len returns the number of memoized entries.
func (lc *LayoutCache) Len() int {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return len(lc.entries)
}
