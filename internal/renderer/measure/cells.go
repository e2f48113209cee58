package measure

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cells measures text on a character-cell grid, as a terminal lays it out.
// Wide clusters (CJK, most emoji) take two cells; tabs advance to the next
// tab stop.
type Cells struct {
	// CellWidth is the width of one cell in pixels. Zero means 1.
	CellWidth float64

	// CellHeight is the height of one line in pixels. Zero means 1.
	CellHeight float64

	// TabWidth is the distance between tab stops in cells.
	TabWidth int
}

// NewCells creates a cell measurer where one cell is one unit.
func NewCells(tabWidth int) *Cells {
	return &Cells{CellWidth: 1, CellHeight: 1, TabWidth: tabWidth}
}

// Advances implements Measurer.
func (c *Cells) Advances(line string, scale float64) ([]float64, error) {
	unit := c.unit(c.CellWidth) * scale
	out := make([]float64, 0, utf8.RuneCountInString(line)+1)

	col, state := 0, -1
	for len(line) > 0 {
		var cluster string
		cluster, line, _, state = uniseg.FirstGraphemeClusterInString(line, state)
		x := float64(col) * unit
		for i, n := 0, utf8.RuneCountInString(cluster); i < n; i++ {
			out = append(out, x)
		}
		col += c.clusterCells(cluster, col)
	}
	return append(out, float64(col)*unit), nil
}

// LineHeight implements Measurer.
func (c *Cells) LineHeight(scale float64) float64 {
	return c.unit(c.CellHeight) * scale
}

// clusterCells returns how many cells cluster occupies when it starts at
// column col.
func (c *Cells) clusterCells(cluster string, col int) int {
	if cluster == "\t" {
		return tabStop(col, c.TabWidth) - col
	}
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = uniseg.StringWidth(cluster)
	}
	return max(w, 0)
}

func (c *Cells) unit(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
