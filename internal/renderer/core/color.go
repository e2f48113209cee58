package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha RGBA color with float channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	// ColorText is the default foreground for unclassified text.
	ColorText  = Color{R: 0.9, G: 0.9, B: 0.9, A: 1}
	ColorBlack = Color{A: 1}
	ColorWhite = Color{R: 1, G: 1, B: 1, A: 1}
)

// RGBA creates a color from float channels.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ColorFromHex parses "#RGB", "#RRGGBB" or "#RRGGBBAA". The leading '#' is
// optional.
func ColorFromHex(hex string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	alpha := 1.0
	if len(s) == 8 {
		a, err := strconv.ParseUint(s[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		alpha = float64(a) / 255
		s = s[:6]
	}
	if len(s) != 3 && len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color length: %q", hex)
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// RGB8 returns the color channels as bytes, ignoring alpha.
func (c Color) RGB8() (r, g, b uint8) {
	return c.colorful().Clamped().RGB255()
}

// Hex returns "#rrggbb", with an alpha byte appended when A < 1.
func (c Color) Hex() string {
	h := c.colorful().Clamped().Hex()
	if c.A < 1 {
		h += fmt.Sprintf("%02x", uint8(math.Round(math.Max(0, c.A)*255)))
	}
	return h
}

// String returns the hex representation.
func (c Color) String() string {
	return c.Hex()
}

// Blend mixes c toward other by t in [0, 1], interpolating in CIE-L*a*b*
// so that intermediate shades stay perceptually even.
func (c Color) Blend(other Color, t float64) Color {
	m := c.colorful().BlendLab(other.colorful(), t).Clamped()
	return Color{R: m.R, G: m.G, B: m.B, A: c.A + (other.A-c.A)*t}
}

// Dim returns c blended toward black by amount.
func (c Color) Dim(amount float64) Color {
	d := c.Blend(ColorBlack, amount)
	d.A = c.A
	return d
}

// Premultiplied returns the color with its channels scaled by alpha.
func (c Color) Premultiplied() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Equals reports whether two colors match to within one 8-bit step per
// channel, so a color equals itself after a hex round trip.
func (c Color) Equals(other Color) bool {
	const eps = 1.0 / 255
	return math.Abs(c.R-other.R) < eps && math.Abs(c.G-other.G) < eps &&
		math.Abs(c.B-other.B) < eps && math.Abs(c.A-other.A) < eps
}
