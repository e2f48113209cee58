package cursor

import (
	"fmt"
	"math"

	"github.com/dshills/codepane/internal/engine/buffer"
	"github.com/dshills/codepane/internal/renderer/core"
	"github.com/dshills/codepane/internal/renderer/measure"
)

// Controller owns the cursor of one buffer.
// It is not safe for concurrent use.
type Controller struct {
	buf   *buffer.Buffer
	m     measure.Measurer
	scale float64

	row, col   int
	xOffset    float64
	measureErr error
}

// NewController creates a controller with the cursor at (0, 0).
func NewController(buf *buffer.Buffer, m measure.Measurer, scale float64) *Controller {
	if scale <= 0 {
		scale = 1
	}
	c := &Controller{buf: buf, m: m, scale: scale}
	c.remeasure()
	return c
}

// Cursor returns the current cursor state.
func (c *Controller) Cursor() Cursor {
	return Cursor{Row: c.row, Col: c.col, XOffset: c.xOffset}
}

// Position returns the logical cursor position.
func (c *Controller) Position() Position {
	return Position{Row: c.row, Col: c.col}
}

// XOffset returns the cached horizontal pixel offset of the cursor.
func (c *Controller) XOffset() float64 {
	return c.xOffset
}

// Offset returns the absolute char offset of the cursor.
func (c *Controller) Offset() int {
	return c.buf.LineToChar(c.row) + c.col
}

// Scale returns the text scale used for measuring.
func (c *Controller) Scale() float64 {
	return c.scale
}

// LineHeight returns the height of one row at the current scale.
func (c *Controller) LineHeight() float64 {
	return c.m.LineHeight(c.scale)
}

// MeasureErr returns the error of the last measurement, if it failed. The
// offset falls back to 0 in that case.
func (c *Controller) MeasureErr() error {
	return c.measureErr
}

// SetMeasurer swaps the measurer and scale and re-measures.
func (c *Controller) SetMeasurer(m measure.Measurer, scale float64) {
	c.m = m
	if scale > 0 {
		c.scale = scale
	}
	c.remeasure()
}

// SetPosition moves the cursor to p. The row is clamped to the buffer and
// the column is clamped to the row and snapped back to a cluster boundary.
func (c *Controller) SetPosition(p Position) {
	c.row = max(0, min(p.Row, c.buf.LineCount()-1))
	c.col = c.buf.SnapBoundary(c.row, p.Col)
	c.remeasure()
}

// Measure re-derives the cached x offset from the current position.
func (c *Controller) Measure() error {
	c.remeasure()
	return c.measureErr
}

func (c *Controller) remeasure() {
	x, err := measure.XAt(c.m, c.buf.Line(c.row), c.col, c.scale)
	if err != nil {
		x = 0
	}
	c.xOffset = x
	c.measureErr = err
}

func (c *Controller) lastRow() int {
	return c.buf.LineCount() - 1
}

// Movement

// Up moves to the previous row. It reports whether the position changed.
func (c *Controller) Up() bool {
	before := c.Position()
	if c.row > 0 {
		c.row--
		c.col = c.buf.SnapBoundary(c.row, c.col)
	} else {
		c.col = 0
	}
	c.remeasure()
	return c.Position() != before
}

// Down moves to the next row. It reports whether the position changed.
func (c *Controller) Down() bool {
	before := c.Position()
	if c.row < c.lastRow() {
		c.row++
		c.col = c.buf.SnapBoundary(c.row, c.col)
	} else {
		c.col = c.buf.LineLen(c.row)
	}
	c.remeasure()
	return c.Position() != before
}

// Left moves one cluster back, wrapping to the end of the previous row.
func (c *Controller) Left() bool {
	switch {
	case c.col > 0:
		c.col = c.buf.PrevBoundary(c.row, c.col)
	case c.row > 0:
		c.row--
		c.col = c.buf.LineLen(c.row)
	default:
		return false
	}
	c.remeasure()
	return true
}

// Right moves one cluster forward, wrapping to the start of the next row.
// At the end of the buffer the cursor stays put.
func (c *Controller) Right() bool {
	switch {
	case c.col < c.buf.LineLen(c.row):
		c.col = c.buf.NextBoundary(c.row, c.col)
	case c.row < c.lastRow():
		c.row++
		c.col = 0
	default:
		return false
	}
	c.remeasure()
	return true
}

// Editing

// InsertChar inserts ch at the cursor and moves past it. '\r' and '\n'
// behave like Enter.
func (c *Controller) InsertChar(ch rune) (bool, error) {
	if ch == '\n' || ch == '\r' {
		return c.Enter()
	}

	if err := c.buf.InsertChar(c.Offset(), ch); err != nil {
		return false, fmt.Errorf("insert %q at %v: %w", ch, c.Position(), err)
	}
	// The new rune may have joined the cluster before it, so step to the
	// next boundary after the insertion point rather than by one rune.
	c.col = c.buf.NextBoundary(c.row, c.col)
	c.remeasure()
	return true, nil
}

// Enter splits the row at the cursor and moves to the start of the new row.
func (c *Controller) Enter() (bool, error) {
	if err := c.buf.InsertNewline(c.Offset()); err != nil {
		return false, fmt.Errorf("newline at %v: %w", c.Position(), err)
	}
	c.row++
	c.col = 0
	c.remeasure()
	return true, nil
}

// Backspace removes the cluster before the cursor. At column 0 it joins
// the row onto the previous one. It reports whether the buffer changed.
func (c *Controller) Backspace() (bool, error) {
	offset := c.Offset()
	switch {
	case c.col > 0:
		prev := c.buf.PrevBoundary(c.row, c.col)
		if err := c.buf.RemoveRange(offset-(c.col-prev), offset); err != nil {
			return false, fmt.Errorf("backspace at %v: %w", c.Position(), err)
		}
		c.col = prev
	case c.row > 0:
		joinCol := c.buf.LineLen(c.row - 1)
		if err := c.buf.RemoveRange(offset-1, offset); err != nil {
			return false, fmt.Errorf("join at %v: %w", c.Position(), err)
		}
		c.row--
		// A leading combining mark extends the last cluster of the row above.
		if !c.buf.IsBoundary(c.row, joinCol) {
			joinCol = c.buf.NextBoundary(c.row, joinCol)
		}
		c.col = joinCol
	default:
		return false, nil
	}
	c.remeasure()
	return true, nil
}

// Pointer

// Click places the cursor at pixel position pos inside the text area,
// given the current scroll offset. The row is the one under pos.y, clamped
// to the buffer. The column is the first cluster whose left edge lies past
// pos.x, or the end of the row.
func (c *Controller) Click(pos, scroll core.Point) {
	c.row = c.rowAt(pos.Y - scroll.Y)
	c.col = c.colAt(c.row, pos.X-scroll.X)
	c.remeasure()
}

func (c *Controller) rowAt(y float64) int {
	lh := c.LineHeight()
	if lh <= 0 {
		return 0
	}
	row := int(math.Floor(y / lh))
	return max(0, min(row, c.lastRow()))
}

func (c *Controller) colAt(row int, x float64) int {
	line := c.buf.Line(row)
	adv, err := c.m.Advances(line, c.scale)
	if err != nil {
		c.measureErr = err
		return 0
	}
	for _, b := range c.buf.Boundaries(row) {
		if b < len(adv) && adv[b] > x {
			return b
		}
	}
	return c.buf.LineLen(row)
}
