package viewport

import (
	"math"

	"github.com/dshills/codepane/internal/renderer/core"
)

// ScrollState is a snapshot of the scroll position and its bounds.
type ScrollState struct {
	Offset core.Point
	// Min holds the most negative offset allowed on each axis.
	Min core.Point

	Upper, Lower int
	LineCount    int
}

// State returns the current scroll state.
func (v *Viewport) State() ScrollState {
	v.mu.RLock()
	defer v.mu.RUnlock()

	upper, lower := v.visibleLineRange()
	return ScrollState{
		Offset:    v.offset,
		Min:       v.bounds(),
		Upper:     upper,
		Lower:     lower,
		LineCount: v.lineCount,
	}
}

// ScrollDirection is the direction the view moves over the content.
type ScrollDirection uint8

const (
	ScrollNone ScrollDirection = iota
	ScrollUp
	ScrollDown
	ScrollLeft
	ScrollRight
)

// String returns the direction name.
func (d ScrollDirection) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	case ScrollLeft:
		return "left"
	case ScrollRight:
		return "right"
	default:
		return "none"
	}
}

// DirectionOf returns the direction a content delta scrolls the view,
// using the same dominant-axis rule as Scroll. Negative Y moves the
// content up, so the view scrolls down.
func DirectionOf(delta core.Point) ScrollDirection {
	if math.Abs(delta.X) > math.Abs(delta.Y) {
		if delta.X < 0 {
			return ScrollRight
		}
		return ScrollLeft
	}
	switch {
	case delta.Y < 0:
		return ScrollDown
	case delta.Y > 0:
		return ScrollUp
	default:
		return ScrollNone
	}
}

// LinesDelta returns the content delta that scrolls the view down by n
// lines (up when n is negative).
func (v *Viewport) LinesDelta(n int) core.Point {
	return core.Point{Y: -float64(n) * v.LineHeight()}
}

// PageDelta returns the content delta for scrolling n pages, keeping two
// lines of overlap between pages.
func (v *Viewport) PageDelta(n int) core.Point {
	v.mu.RLock()
	page := max(1, int(v.size.H/v.lineHeight)-2)
	v.mu.RUnlock()
	return v.LinesDelta(n * page)
}

// ScrollPercent returns how far down the content is scrolled, from 0 to 1.
func (v *Viewport) ScrollPercent() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	b := v.bounds()
	if b.Y == 0 {
		return 0
	}
	return v.offset.Y / b.Y
}
