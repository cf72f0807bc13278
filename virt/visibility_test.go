package virt

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVisible(t *testing.T) {
	tests := []struct {
		name                         string
		top, height, viewport, offset float64
		want                         bool
	}{
		{"inside", 100, 50, 600, 0, true},
		{"straddles top", -20, 50, 600, 0, true},
		{"above", -100, 50, 600, 0, false},
		{"above within lookahead", -100, 50, 600, 250, true},
		{"touching top edge", -50, 50, 600, 0, true},
		{"below", 700, 50, 600, 0, false},
		{"below within lookahead", 700, 50, 600, 250, true},
		{"touching bottom edge", 600, 50, 600, 0, true},
		{"far below", 900, 50, 600, 250, false},
		{"zero height inside", 10, 0, 600, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVisible(tt.top, tt.height, tt.viewport, tt.offset))
		})
	}
}

// overlaps is the interval definition: [top, top+height] against
// [-offset, viewport+offset].
func overlaps(top, height, viewport, offset float64) bool {
	return math.Max(top, -offset) <= math.Min(top+height, viewport+offset)
}

func TestIsVisible_MatchesIntervalOverlap(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		top := float64(r.Intn(4000))
		height := float64(r.Intn(600))
		viewport := float64(r.Intn(1200))
		offset := float64(r.Intn(400))
		if r.Intn(2) == 0 {
			top = -top
		}
		assert.Equal(t, overlaps(top, height, viewport, offset),
			IsVisible(top, height, viewport, offset),
			"top=%v height=%v viewport=%v offset=%v", top, height, viewport, offset)
	}
}

func TestMeasure_FailsSafeToHidden(t *testing.T) {
	assert.False(t, Measure(nil, 600, DefaultLookahead))

	unplaced := MeasurableFunc(func() (Geometry, bool) { return Geometry{Top: 10, Height: 10}, false })
	assert.False(t, Measure(unplaced, 600, DefaultLookahead))

	placed := MeasurableFunc(func() (Geometry, bool) { return Geometry{Top: 10, Height: 10}, true })
	assert.True(t, Measure(placed, 600, DefaultLookahead))
}
