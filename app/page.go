package app

import (
	"strings"

	"github.com/miosa/storefront/catalog"
	"github.com/miosa/storefront/resize"
	"github.com/miosa/storefront/ui/category"
	"github.com/miosa/storefront/ui/common"
	"github.com/miosa/storefront/virt"
)

// page is the scrolling document: category blocks stacked top to bottom.
// It answers geometry queries for the virtualization controllers and renders
// the rows inside the viewport.
//
// Positions are kept in rows and converted to logical units on demand, so
// every Geometry call reflects the current scroll offset and layout.
type page struct {
	scale  common.Scale
	layout *virt.LayoutCache

	cats    []*category.Model
	metrics []virt.Metrics
	tops    []int // first row of each category block
	rows    int

	width  int // columns
	height int // viewport rows
	scroll int // first visible row
	ready  bool
}

func newPage(scale common.Scale, layout *virt.LayoutCache) *page {
	return &page{scale: scale, layout: layout}
}

// setCatalog replaces the categories and keeps the scroll offset if it is
// still in range.
func (p *page) setCatalog(c *catalog.Catalog) {
	p.cats = p.cats[:0]
	if c != nil {
		for _, cat := range c.Categories {
			m := category.New(cat, p.scale)
			m.SetWidth(p.width)
			p.cats = append(p.cats, m)
		}
	}
	p.relayout()
}

// resize sets the page size in cells. The page becomes measurable after
// the first call.
func (p *page) resize(width, height int) {
	p.width = width
	p.height = height
	p.ready = width > 0 && height > 0
	for _, m := range p.cats {
		m.SetWidth(width)
	}
	p.relayout()
}

// invalidate re-renders cached category headers, e.g. after a theme change.
func (p *page) invalidate() {
	for _, m := range p.cats {
		m.Invalidate()
	}
	p.relayout()
}

func (p *page) relayout() {
	widthUnits := p.scale.Width(p.width)
	p.metrics = p.metrics[:0]
	p.tops = p.tops[:0]
	row := 0
	for _, m := range p.cats {
		metrics := p.layout.Get(len(m.Category().Items), widthUnits)
		p.metrics = append(p.metrics, metrics)
		p.tops = append(p.tops, row)
		row += m.Rows(metrics)
	}
	p.rows = row
	p.clamp()
}

func (p *page) maxScroll() int {
	if p.rows <= p.height {
		return 0
	}
	return p.rows - p.height
}

func (p *page) clamp() {
	if p.scroll > p.maxScroll() {
		p.scroll = p.maxScroll()
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

// scrollTo moves the viewport and reports whether the offset changed.
func (p *page) scrollTo(row int) bool {
	prev := p.scroll
	p.scroll = row
	p.clamp()
	return p.scroll != prev
}

func (p *page) scrollBy(delta int) bool {
	return p.scrollTo(p.scroll + delta)
}

// frame returns the per-tick input for the controllers.
func (p *page) frame() virt.Frame {
	return virt.Frame{
		ScrollTop:      p.scale.Height(p.scroll),
		ViewportHeight: p.scale.Height(p.height),
	}
}

// gridTop returns the page row where category k's grid starts.
func (p *page) gridTop(k int) int {
	return p.tops[k] + p.cats[k].HeaderRows()
}

// container returns the measurable handle of category k's grid.
func (p *page) container(k int) virt.Measurable {
	return containerHandle{p: p, k: k}
}

// items returns measurable handles for every item of category k.
func (p *page) items(k int) []virt.Measurable {
	if k < 0 || k >= len(p.cats) {
		return nil
	}
	n := len(p.cats[k].Category().Items)
	out := make([]virt.Measurable, n)
	for i := range out {
		out[i] = itemHandle{p: p, k: k, i: i}
	}
	return out
}

// sizer reports the content width of the category grids. Every category
// spans the full page width.
func (p *page) sizer() resize.Sizer {
	return resize.SizerFunc(func() (resize.Size, bool) {
		if !p.ready {
			return resize.Size{}, false
		}
		return resize.Size{
			Width:  p.scale.Width(p.width),
			Height: p.scale.Height(p.rows),
		}, true
	})
}

// view renders the viewport rows. states holds the published state of each
// category; missing entries render as hidden.
func (p *page) view(states []virt.State) string {
	if !p.ready {
		return ""
	}
	from, to := p.scroll, p.scroll+p.height
	lines := make([]string, 0, p.height)
	for k, m := range p.cats {
		top := p.tops[k]
		bottom := top + m.Rows(p.metrics[k])
		if bottom <= from || top >= to {
			continue
		}
		var s virt.State
		if k < len(states) {
			s = states[k]
		}
		lines = append(lines, m.Lines(p.metrics[k], s, from-top, to-top)...)
	}
	blank := strings.Repeat(" ", p.width)
	for len(lines) < p.height {
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}

type containerHandle struct {
	p *page
	k int
}

func (h containerHandle) Geometry() (virt.Geometry, bool) {
	p := h.p
	if !p.ready || h.k < 0 || h.k >= len(p.cats) {
		return virt.Geometry{}, false
	}
	return virt.Geometry{
		Top:    p.scale.Height(p.gridTop(h.k) - p.scroll),
		Height: p.metrics[h.k].TotalHeight,
	}, true
}

type itemHandle struct {
	p    *page
	k, i int
}

func (h itemHandle) Geometry() (virt.Geometry, bool) {
	p := h.p
	if !p.ready || h.k < 0 || h.k >= len(p.cats) {
		return virt.Geometry{}, false
	}
	m := p.cats[h.k]
	if h.i < 0 || h.i >= len(m.Category().Items) {
		return virt.Geometry{}, false
	}
	metrics := p.metrics[h.k]
	row := p.gridTop(h.k) + m.ItemRow(metrics, h.i) - p.scroll
	return virt.Geometry{
		Top:    p.scale.Height(row),
		Height: metrics.ItemHeight,
	}, true
}
