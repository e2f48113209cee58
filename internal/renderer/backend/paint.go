package backend

import (
	"math"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/codepane/internal/editor"
	"github.com/dshills/codepane/internal/renderer/core"
)

// Painter draws editor frames on a Backend. Frame lengths are converted
// to cells by dividing by Cell, so the editor must measure on the same
// grid (measure.Cells with matching cell size).
type Painter struct {
	// TabWidth is the distance between tab stops in cells.
	TabWidth int

	// Cell is the size of one cell in frame units. Zero means 1x1.
	Cell core.Size
}

// Paint draws f and makes it visible.
func (p Painter) Paint(b Backend, f editor.Frame) {
	w, h := b.Size()
	b.Fill(0, 0, w, h, Cell{Content: " ", Width: 1, Fg: f.Background, Bg: f.Background})

	gw := p.col(f.GutterWidth)
	for _, r := range f.Gutter {
		p.drawRun(b, r, f.Background, 0, 0, min(gw, w), h)
	}

	origin := p.col(f.GutterWidth + f.Scroll.X)
	for _, r := range f.Runs {
		p.drawRun(b, r, f.Background, origin, gw, w, h)
	}

	cx, cy := p.col(f.Cursor.Min.X), p.row(f.Cursor.Min.Y)
	if cx >= gw && cx < w && cy >= 0 && cy < h {
		b.ShowCursor(cx, cy)
	} else {
		b.HideCursor()
	}
	b.Show()
}

// drawRun writes the clusters of r that fall inside columns [minX, maxX).
// origin is the column of the line start, where tab stops are counted
// from.
func (p Painter) drawRun(b Backend, r core.TextRun, bg core.Color, origin, minX, maxX, height int) {
	y := p.row(r.Pos.Y)
	if y < 0 || y >= height {
		return
	}

	col := p.col(r.Pos.X)
	g := uniseg.NewGraphemes(r.Text)
	for g.Next() && col < maxX {
		cluster := g.Str()
		if cluster == "\t" {
			n := p.tabStop(col-origin) - (col - origin)
			for i := 0; i < n; i++ {
				if col+i >= minX && col+i < maxX {
					b.SetCell(col+i, y, Cell{Content: " ", Width: 1, Fg: r.Color, Bg: bg})
				}
			}
			col += n
			continue
		}

		width := runewidth.StringWidth(cluster)
		if width <= 0 {
			width = uniseg.StringWidth(cluster)
		}
		if width <= 0 {
			continue
		}
		if col >= minX && col+width <= maxX {
			b.SetCell(col, y, Cell{Content: cluster, Width: width, Fg: r.Color, Bg: bg})
		}
		col += width
	}
}

func (p Painter) tabStop(col int) int {
	tw := p.TabWidth
	if tw <= 0 {
		tw = 4
	}
	return (col/tw + 1) * tw
}

func (p Painter) col(x float64) int {
	return cells(x, p.Cell.W)
}

func (p Painter) row(y float64) int {
	return cells(y, p.Cell.H)
}

func cells(v, unit float64) int {
	if unit <= 0 {
		unit = 1
	}
	return int(math.Round(v / unit))
}
