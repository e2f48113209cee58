package viewport

import (
	"math"

	"github.com/dshills/codepane/internal/renderer/core"
)

// MarginConfig holds scroll margin configuration.
type MarginConfig struct {
	Top    int     // Lines to keep above the revealed rect
	Bottom int     // Lines to keep below the revealed rect
	Left   float64 // Pixels to keep left of the revealed rect
	Right  float64 // Pixels to keep right of the revealed rect
}

// DefaultMargins returns the margins used by the terminal frontend.
func DefaultMargins() MarginConfig {
	return MarginConfig{
		Top:    2,
		Bottom: 2,
		Left:   4,
		Right:  4,
	}
}

// NoMargins returns zero margins (the rect can touch the edge).
func NoMargins() MarginConfig {
	return MarginConfig{}
}

// SetMargins sets the scroll margins.
func (v *Viewport) SetMargins(config MarginConfig) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setMarginsLocked(config)
}

func (v *Viewport) setMarginsLocked(config MarginConfig) {
	v.marginTop = max(0, config.Top)
	v.marginBottom = max(0, config.Bottom)
	v.marginLeft = math.Max(0, config.Left)
	v.marginRight = math.Max(0, config.Right)
}

// Margins returns the configured scroll margins.
func (v *Viewport) Margins() MarginConfig {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return MarginConfig{
		Top:    v.marginTop,
		Bottom: v.marginBottom,
		Left:   v.marginLeft,
		Right:  v.marginRight,
	}
}

// maxMarginRatio limits margins to 1/3 of the viewport dimension so there
// is always usable space in the center.
const maxMarginRatio = 3

// EffectiveMargins returns margins adjusted for the viewport size.
func (v *Viewport) EffectiveMargins() MarginConfig {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.effectiveMargins()
}

// effectiveMargins returns clamped margins (internal, no lock).
func (v *Viewport) effectiveMargins() MarginConfig {
	rows := int(v.size.H/v.lineHeight) / maxMarginRatio
	width := v.textWidth() / maxMarginRatio
	return MarginConfig{
		Top:    min(v.marginTop, rows),
		Bottom: min(v.marginBottom, rows),
		Left:   math.Min(v.marginLeft, width),
		Right:  math.Min(v.marginRight, width),
	}
}

// Reveal scrolls minimally so that r, given in content space, lies inside
// the text area with the configured margins around it. The result is still
// clamped to the content bounds. It reports whether the offset changed.
func (v *Viewport) Reveal(r core.Rect) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	before := v.offset
	m := v.effectiveMargins()

	top := r.Min.Y - float64(m.Top)*v.lineHeight
	bottom := r.Max().Y + float64(m.Bottom)*v.lineHeight
	switch {
	case top < -v.offset.Y:
		v.offset.Y = -top
	case bottom > -v.offset.Y+v.size.H:
		v.offset.Y = v.size.H - bottom
	}

	left := r.Min.X - m.Left
	right := r.Max().X + m.Right
	switch {
	case left < -v.offset.X:
		v.offset.X = -left
	case right > -v.offset.X+v.textWidth():
		v.offset.X = v.textWidth() - right
	}

	v.clamp()
	return v.offset != before
}
