// Package viewport tracks the scroll offset of the text area in pixels and
// derives which buffer lines are on screen.
//
// Offsets are content displacements: both X and Y are non-positive, content
// shifted up and to the left. Y is bounded so that the last three lines can
// always stay in view, X so that the widest line stays reachable.
package viewport

import (
	"fmt"
	"math"
	"sync"

	"github.com/dshills/codepane/internal/renderer/core"
)

// trailingLines is the number of lines that stay on screen when scrolled
// all the way down.
const trailingLines = 3

// Viewport is the scrollable window onto the text content.
type Viewport struct {
	mu sync.RWMutex

	offset     core.Point
	size       core.Size
	lineHeight float64

	// Left inset of the text area inside size (the gutter).
	inset float64

	// Content bounds
	lineCount    int
	maxLineWidth float64

	// Scroll margins used by Reveal
	marginTop    int
	marginBottom int
	marginLeft   float64
	marginRight  float64
}

// New creates a viewport of the given size showing rows of lineHeight
// pixels. The content starts empty with a single line.
func New(size core.Size, lineHeight float64) *Viewport {
	if lineHeight <= 0 {
		lineHeight = 1
	}
	v := &Viewport{
		size:       clampSize(size),
		lineHeight: lineHeight,
		lineCount:  1,
	}
	v.setMarginsLocked(NoMargins())
	return v
}

func clampSize(s core.Size) core.Size {
	return core.Size{W: math.Max(0, s.W), H: math.Max(0, s.H)}
}

// Offset returns the current scroll offset.
func (v *Viewport) Offset() core.Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offset
}

// Size returns the viewport size.
func (v *Viewport) Size() core.Size {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.size
}

// LineHeight returns the height of one row.
func (v *Viewport) LineHeight() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lineHeight
}

// LineCount returns the number of content lines the viewport bounds by.
func (v *Viewport) LineCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lineCount
}

// Inset returns the left inset of the text area.
func (v *Viewport) Inset() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inset
}

// TextWidth returns the width available to text, the viewport width minus
// the inset.
func (v *Viewport) TextWidth() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.textWidth()
}

func (v *Viewport) textWidth() float64 {
	return math.Max(0, v.size.W-v.inset)
}

// Bounds returns the most negative allowed offset on each axis.
func (v *Viewport) Bounds() core.Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.bounds()
}

func (v *Viewport) bounds() core.Point {
	return core.Point{
		X: math.Min(0, v.textWidth()-v.maxLineWidth),
		Y: -float64(max(0, v.lineCount-trailingLines)) * v.lineHeight,
	}
}

// clamp pulls both axes back inside their bounds (internal, no lock).
func (v *Viewport) clamp() {
	b := v.bounds()
	v.offset.X = math.Max(b.X, math.Min(v.offset.X, 0))
	v.offset.Y = math.Max(b.Y, math.Min(v.offset.Y, 0))
}

// Scroll applies delta to the offset along its dominant axis only: if
// |delta.X| > |delta.Y| the content moves horizontally, otherwise
// vertically. Both axes add delta to the offset, so delta is the distance
// the content moves: a negative X reveals text further right and a negative
// Y reveals lines further down. Wheel deltas that follow the "scroll right"
// convention must be negated before calling. size replaces the stored
// viewport size first. It reports whether the offset changed.
func (v *Viewport) Scroll(delta core.Point, size core.Size) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	before := v.offset
	v.size = clampSize(size)
	if math.Abs(delta.X) > math.Abs(delta.Y) {
		v.offset.X += delta.X
	} else {
		v.offset.Y += delta.Y
	}
	v.clamp()
	return v.offset != before
}

// ScrollBy scrolls with the stored size.
func (v *Viewport) ScrollBy(delta core.Point) bool {
	return v.Scroll(delta, v.Size())
}

// Resize stores the new size and re-clamps the current offset without
// resetting it.
func (v *Viewport) Resize(size core.Size) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.size = clampSize(size)
	v.clamp()
}

// SetContent updates the content bounds and re-clamps.
func (v *Viewport) SetContent(lineCount int, maxLineWidth float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lineCount = max(1, lineCount)
	v.maxLineWidth = math.Max(0, maxLineWidth)
	v.clamp()
}

// SetInset sets the left inset of the text area and re-clamps.
func (v *Viewport) SetInset(inset float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.inset = math.Max(0, inset)
	v.clamp()
}

// SetLineHeight changes the row height and re-clamps.
func (v *Viewport) SetLineHeight(lineHeight float64) {
	if lineHeight <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lineHeight = lineHeight
	v.clamp()
}

// VisibleLineRange returns the half-open range [upper, lower) of lines
// on screen. upper <= lower <= line count always holds.
func (v *Viewport) VisibleLineRange() (upper, lower int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visibleLineRange()
}

func (v *Viewport) visibleLineRange() (upper, lower int) {
	upper = int(math.Floor(-v.offset.Y / v.lineHeight))
	upper = max(0, min(upper, v.lineCount))
	rows := int(math.Ceil(v.size.H / v.lineHeight))
	lower = min(v.lineCount, upper+rows)
	return upper, lower
}

// IsLineVisible reports whether line falls inside the visible range.
func (v *Viewport) IsLineVisible(line int) bool {
	upper, lower := v.VisibleLineRange()
	return line >= upper && line < lower
}

// LineY returns the screen y of the top of line.
func (v *Viewport) LineY(line int) float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return float64(line)*v.lineHeight + v.offset.Y
}

// ContentToScreen converts a point in content space (origin at the first
// line, left edge of the text) to a point on screen.
func (v *Viewport) ContentToScreen(p core.Point) core.Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return core.Point{X: p.X + v.inset + v.offset.X, Y: p.Y + v.offset.Y}
}

// ScreenToContent is the inverse of ContentToScreen.
func (v *Viewport) ScreenToContent(p core.Point) core.Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return core.Point{X: p.X - v.inset - v.offset.X, Y: p.Y - v.offset.Y}
}

// String returns a compact description for logging.
func (v *Viewport) String() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	upper, lower := v.visibleLineRange()
	return fmt.Sprintf("viewport{offset=%s size=%gx%g lines=[%d,%d) of %d}",
		v.offset, v.size.W, v.size.H, upper, lower, v.lineCount)
}
