// Package view holds the viewer's presentation state — zoom, pan, aspect
// fit, filtering and file-ring navigation — independent of any output
// device, plus a terminal renderer for it.
package view

import (
	"fmt"
	"path/filepath"
)

// Filter selects the sampling mode used when scaling the image.
type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest

	filterCount
)

func (f Filter) String() string {
	if f == FilterNearest {
		return "nearest"
	}
	return "linear"
}

// Movement is a pan direction.
type Movement int

const (
	Up Movement = iota
	Down
	Left
	Right
)

const (
	zoomStep = 1.1
	panStep  = 0.1
)

// State is the presentation state for the current image.
type State struct {
	Zoom             float64
	OffsetX, OffsetY float64
	AspectX, AspectY float64
	Filter           Filter
	ImageW, ImageH   int
}

// NewState returns the neutral state for an image of the given size.
func NewState(imageW, imageH int) State {
	return State{Zoom: 1, AspectX: 1, AspectY: 1, ImageW: imageW, ImageH: imageH}
}

// SetImage swaps the image dimensions, keeping zoom and filter.
func (s *State) SetImage(imageW, imageH int) {
	s.ImageW = imageW
	s.ImageH = imageH
}

// UpdateAspect recomputes the letterbox fit for a viewport of the given
// pixel size: the longer image edge fills the viewport, the other shrinks.
func (s *State) UpdateAspect(viewW, viewH int) {
	if viewW <= 0 || viewH <= 0 || s.ImageW <= 0 || s.ImageH <= 0 {
		s.AspectX, s.AspectY = 1, 1
		return
	}
	imageRatio := float64(s.ImageW) / float64(s.ImageH)
	viewRatio := float64(viewW) / float64(viewH)

	if imageRatio > viewRatio {
		s.AspectX = 1
		s.AspectY = viewRatio / imageRatio
	} else {
		s.AspectX = imageRatio / viewRatio
		s.AspectY = 1
	}
}

// ZoomIn and ZoomOut scale by a constant step.
func (s *State) ZoomIn()  { s.Zoom *= zoomStep }
func (s *State) ZoomOut() { s.Zoom /= zoomStep }

// Move pans by a step that shrinks as zoom grows, so movement feels uniform.
func (s *State) Move(m Movement) {
	switch m {
	case Up:
		s.OffsetY += panStep / s.Zoom
	case Down:
		s.OffsetY -= panStep / s.Zoom
	case Left:
		s.OffsetX -= panStep / s.Zoom
	case Right:
		s.OffsetX += panStep / s.Zoom
	}
}

// Drag pans by a fraction of the viewport, as a mouse drag would.
func (s *State) Drag(dx, dy float64) {
	s.OffsetX -= dx / s.AspectX / s.Zoom * 2
	s.OffsetY -= dy / s.AspectY / s.Zoom * 2
}

// CycleFilter advances to the next sampling mode.
func (s *State) CycleFilter() {
	s.Filter = (s.Filter + 1) % filterCount
}

// ResetZoom and ResetOffset restore the neutral view.
func (s *State) ResetZoom()   { s.Zoom = 1 }
func (s *State) ResetOffset() { s.OffsetX, s.OffsetY = 0, 0 }

// Title renders the window-title line for the current image.
func (s *State) Title(index, total int, file string) string {
	return fmt.Sprintf("[%d/%d] [%dx%d] [%d%%] QoiView - %s [filter:%s]",
		index+1, total, s.ImageW, s.ImageH, int(s.Zoom*100+0.5),
		filepath.Base(file), s.Filter)
}

// Ring is the circular file list the viewer navigates. Files that fail to
// load are evicted so navigation never gets stuck on them.
type Ring struct {
	files []string
	index int
}

// NewRing returns a ring positioned at start.
func NewRing(files []string, start int) *Ring {
	if start < 0 || start >= len(files) {
		start = 0
	}
	return &Ring{files: append([]string(nil), files...), index: start}
}

// Len returns the number of files still in the ring.
func (r *Ring) Len() int { return len(r.files) }

// Index returns the current position.
func (r *Ring) Index() int { return r.index }

// Current returns the current file, or "" when the ring is empty.
func (r *Ring) Current() string {
	if len(r.files) == 0 {
		return ""
	}
	return r.files[r.index]
}

// Next advances to the following loadable file. load reports whether a file
// could be shown; files it rejects are evicted. Next reports whether a
// current file remains. With a single file it is a no-op.
func (r *Ring) Next(load func(string) bool) bool {
	if len(r.files) <= 1 {
		return len(r.files) == 1
	}
	r.index = (r.index + 1) % len(r.files)
	for len(r.files) > 0 {
		r.index %= len(r.files)
		if load(r.files[r.index]) {
			return true
		}
		r.files = append(r.files[:r.index], r.files[r.index+1:]...)
	}
	return false
}

// Prev moves to the preceding loadable file, evicting failures like Next.
func (r *Ring) Prev(load func(string) bool) bool {
	if len(r.files) <= 1 {
		return len(r.files) == 1
	}
	for len(r.files) > 0 {
		r.index = (r.index + len(r.files) - 1) % len(r.files)
		if load(r.files[r.index]) {
			return true
		}
		r.files = append(r.files[:r.index], r.files[r.index+1:]...)
	}
	return false
}
