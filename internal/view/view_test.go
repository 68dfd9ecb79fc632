package view

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func almost(t *testing.T, got, want float64, what string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func TestUpdateAspect(t *testing.T) {
	// wide image in a square viewport: x fills, y letterboxes
	s := NewState(200, 100)
	s.UpdateAspect(100, 100)
	almost(t, s.AspectX, 1, "AspectX")
	almost(t, s.AspectY, 0.5, "AspectY")

	// tall image in a square viewport
	s = NewState(100, 200)
	s.UpdateAspect(100, 100)
	almost(t, s.AspectX, 0.5, "AspectX")
	almost(t, s.AspectY, 1, "AspectY")

	// degenerate viewport falls back to identity
	s.UpdateAspect(0, 0)
	almost(t, s.AspectX, 1, "AspectX")
	almost(t, s.AspectY, 1, "AspectY")
}

func TestZoomAndMove(t *testing.T) {
	s := NewState(10, 10)

	s.ZoomIn()
	almost(t, s.Zoom, 1.1, "Zoom after in")
	s.ZoomOut()
	almost(t, s.Zoom, 1, "Zoom after out")

	s.Move(Right)
	almost(t, s.OffsetX, 0.1, "OffsetX")
	s.Move(Up)
	almost(t, s.OffsetY, 0.1, "OffsetY")

	// pan step shrinks with zoom
	s.ZoomIn()
	s.Move(Left)
	almost(t, s.OffsetX, 0.1-0.1/1.1, "OffsetX after zoomed pan")

	s.ResetZoom()
	s.ResetOffset()
	almost(t, s.Zoom, 1, "Zoom after reset")
	almost(t, s.OffsetX, 0, "OffsetX after reset")
	almost(t, s.OffsetY, 0, "OffsetY after reset")
}

func TestDrag(t *testing.T) {
	s := NewState(10, 10)
	s.Drag(0.5, 0)
	almost(t, s.OffsetX, -1, "OffsetX after drag")
	s.Drag(0, -0.25)
	almost(t, s.OffsetY, 0.5, "OffsetY after drag")
}

func TestCycleFilter(t *testing.T) {
	s := NewState(1, 1)
	assert.Equal(t, FilterLinear, s.Filter)
	s.CycleFilter()
	assert.Equal(t, FilterNearest, s.Filter)
	s.CycleFilter()
	assert.Equal(t, FilterLinear, s.Filter)
}

func TestTitle(t *testing.T) {
	s := NewState(640, 480)
	got := s.Title(0, 3, "/tmp/dice.qoi")
	assert.Equal(t, "[1/3] [640x480] [100%] QoiView - dice.qoi [filter:linear]", got)

	s.ZoomIn()
	s.CycleFilter()
	got = s.Title(2, 3, "dice.qoi")
	assert.Equal(t, "[3/3] [640x480] [110%] QoiView - dice.qoi [filter:nearest]", got)
}

func TestRingNavigation(t *testing.T) {
	always := func(string) bool { return true }

	r := NewRing([]string{"a", "b", "c"}, 0)
	assert.True(t, r.Next(always))
	assert.Equal(t, "b", r.Current())
	assert.True(t, r.Next(always))
	assert.Equal(t, "c", r.Current())
	assert.True(t, r.Next(always))
	assert.Equal(t, "a", r.Current(), "ring wraps")

	assert.True(t, r.Prev(always))
	assert.Equal(t, "c", r.Current())
}

func TestRingEviction(t *testing.T) {
	bad := map[string]bool{"b": true, "c": true}
	load := func(f string) bool { return !bad[f] }

	r := NewRing([]string{"a", "b", "c", "d"}, 0)
	assert.True(t, r.Next(load))
	assert.Equal(t, "d", r.Current(), "b and c evicted on the way")
	assert.Equal(t, 2, r.Len())

	// single file ring: navigation is a no-op and keeps the file
	r = NewRing([]string{"a"}, 0)
	assert.True(t, r.Next(load))
	assert.Equal(t, "a", r.Current())

	// everything fails
	r = NewRing([]string{"b", "c"}, 0)
	assert.False(t, r.Next(func(string) bool { return false }))
	assert.Equal(t, 0, r.Len())
}
