package virt

// DefaultLookahead is the margin beyond the viewport within which content is
// still treated as visible, so it mounts before it scrolls into view.
const DefaultLookahead = 250.0

// Geometry is a rectangle's vertical extent relative to the top of the
// viewport. Top is negative once the rectangle starts above the viewport.
type Geometry struct {
	Top    float64
	Height float64
}

// Measurable is an opaque element handle. ok is false while the element has
// not been placed yet.
type Measurable interface {
	Geometry() (g Geometry, ok bool)
}

// MeasurableFunc adapts a function to Measurable.
type MeasurableFunc func() (Geometry, bool)

// Geometry implements Measurable.
func (f MeasurableFunc) Geometry() (Geometry, bool) { return f() }

// IsVisible reports whether [top, top+height] overlaps
// [-offset, viewportHeight+offset].
func IsVisible(top, height, viewportHeight, offset float64) bool {
	return top+offset+height >= 0 && top-offset <= viewportHeight
}

// Measure runs IsVisible on m's current geometry. Nil or unplaced elements
// are not visible.
func Measure(m Measurable, viewportHeight, offset float64) bool {
	if m == nil {
		return false
	}
	g, ok := m.Geometry()
	if !ok {
		return false
	}
	return IsVisible(g.Top, g.Height, viewportHeight, offset)
}
