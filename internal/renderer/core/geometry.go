package core

import (
	"fmt"
	"math"
)

// Point is a position in pixel space. Y grows downward.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Size is a width and height in pixels.
type Size struct {
	W, H float64
}

// IsEmpty returns true if the size has no area.
func (s Size) IsEmpty() bool {
	return s.W <= 0 || s.H <= 0
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min  Point
	Size Size
}

// RectAt creates a rectangle with its top-left corner at (x, y).
func RectAt(x, y, w, h float64) Rect {
	return Rect{Min: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.Min.X + r.Size.W, Y: r.Min.Y + r.Size.H}
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	max := r.Max()
	return p.X >= r.Min.X && p.X < max.X && p.Y >= r.Min.Y && p.Y < max.Y
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	a, b := r.Max(), other.Max()
	return r.Min.X < b.X && other.Min.X < a.X && r.Min.Y < b.Y && other.Min.Y < a.Y
}

// Round snaps the rectangle to whole pixels, keeping its far edges in
// place as closely as possible. Cell-based backends use it.
func (r Rect) Round() Rect {
	x, y := math.Floor(r.Min.X), math.Floor(r.Min.Y)
	max := r.Max()
	return RectAt(x, y, math.Max(1, math.Round(max.X-x)), math.Max(1, math.Round(max.Y-y)))
}

// String returns a human-readable representation of the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("[%v %gx%g]", r.Min, r.Size.W, r.Size.H)
}
