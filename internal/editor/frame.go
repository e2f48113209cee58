package editor

import (
	"fmt"

	"github.com/dshills/codepane/internal/renderer/core"
	"github.com/dshills/codepane/internal/renderer/highlight"
)

// Frame holds everything a renderer needs to draw one frame.
type Frame struct {
	// Runs holds the styled text of the visible lines, in line order.
	Runs []core.TextRun

	// Gutter holds the line numbers of the visible lines.
	Gutter      []core.TextRun
	GutterWidth float64

	// Cursor is the cursor rectangle in screen space.
	Cursor core.Rect

	// Scroll is the clamped scroll offset.
	Scroll core.Point

	// VisibleLines is the half-open range of lines in Runs.
	VisibleLines [2]int

	Size        core.Size
	LineHeight  float64
	Background  core.Color
	CursorColor core.Color
	GutterColor core.Color
}

// String returns a one-line summary for logging.
func (f Frame) String() string {
	return fmt.Sprintf("frame{lines=[%d,%d) runs=%d cursor=%s scroll=%s}",
		f.VisibleLines[0], f.VisibleLines[1], len(f.Runs), f.Cursor, f.Scroll)
}

// Frame produces the drawable primitives for the current state. Only lines
// in the visible range are shaped.
func (e *Editor) Frame() Frame {
	e.sync()

	upper, lower := e.view.VisibleLineRange()
	scroll := e.view.Offset()
	lh := e.view.LineHeight()
	gw := e.gutter.Width()
	c := e.cursor.Cursor()

	e.gutter.SetCurrentLine(c.Row)

	f := Frame{
		GutterWidth:  gw,
		Gutter:       e.gutter.Runs(upper, lower, scroll.Y, lh),
		Scroll:       scroll,
		VisibleLines: [2]int{upper, lower},
		Size:         e.view.Size(),
		LineHeight:   lh,
		Background:   e.theme.Background,
		CursorColor:  e.theme.Cursor,
		GutterColor:  e.theme.Gutter,
		Cursor: core.RectAt(
			gw+c.XOffset+scroll.X,
			float64(c.Row)*lh+scroll.Y,
			e.cursorWidth, lh,
		),
	}
	for row := upper; row < lower; row++ {
		f.Runs = e.appendLineRuns(f.Runs, row, gw+scroll.X, float64(row)*lh+scroll.Y)
	}
	return f
}

// appendLineRuns splits row into one run per highlight span.
func (e *Editor) appendLineRuns(runs []core.TextRun, row int, x0, y float64) []core.TextRun {
	line := e.buf.Line(row)
	if line == "" {
		return runs
	}

	adv, err := e.m.Advances(line, e.scale)
	if err != nil {
		e.log.Debug("measure row %d: %v", row, err)
		adv = nil
	}

	chars := []rune(line)
	start := e.buf.LineToChar(row)
	for _, s := range highlight.Clip(e.spans, start, start+len(chars)) {
		from, to := s.Start-start, s.End-start
		var x float64
		if from < len(adv) {
			x = adv[from]
		}
		runs = append(runs, core.TextRun{
			Text:  string(chars[from:to]),
			Color: e.theme.ColorFor(s.Category),
			Scale: e.scale,
			Pos:   core.Point{X: x0 + x, Y: y},
		})
	}
	return runs
}

// LineRuns returns the styled runs of row with positions relative to the
// line's left edge and top. It is meant for renderers that lay out text
// themselves.
func (e *Editor) LineRuns(row int) []core.TextRun {
	e.sync()
	return e.appendLineRuns(nil, row, 0, 0)
}
