package core

import "fmt"

// TextRun is a piece of text drawn in one color at a screen position. Pos
// is the top-left corner of the run's line box.
type TextRun struct {
	Text  string
	Color Color
	Scale float64
	Pos   Point
}

// String returns a compact description for debugging.
func (r TextRun) String() string {
	return fmt.Sprintf("%s %s %q", r.Pos, r.Color, r.Text)
}
