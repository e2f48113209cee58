package measure

import (
	"fmt"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultDPI is the resolution used when loading font files.
const DefaultDPI = 72

// Face measures text with the glyph advances and kerning of a font face.
// Positions are in pixels at the face's size, multiplied by the scale.
type Face struct {
	mu       sync.Mutex // font.Face implementations are not safe for concurrent use
	face     font.Face
	tabWidth int
}

// NewFace wraps an existing font face.
func NewFace(face font.Face, tabWidth int) *Face {
	return &Face{face: face, tabWidth: tabWidth}
}

// NewBasicFace returns a Face backed by the built-in 7x13 bitmap font.
func NewBasicFace(tabWidth int) *Face {
	return NewFace(basicfont.Face7x13, tabWidth)
}

// LoadFace parses a TrueType or OpenType file and sizes it to size points.
func LoadFace(path string, size float64, tabWidth int) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     DefaultDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("size font %s: %w", path, err)
	}
	return NewFace(face, tabWidth), nil
}

// Advances implements Measurer.
func (f *Face) Advances(line string, scale float64) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	space := f.advance(' ')
	out := make([]float64, 0, utf8.RuneCountInString(line)+1)

	var x fixed.Int26_6
	prev := rune(-1)
	state := -1
	for len(line) > 0 {
		var cluster string
		cluster, line, _, state = uniseg.FirstGraphemeClusterInString(line, state)
		first, _ := utf8.DecodeRuneInString(cluster)
		if prev >= 0 {
			x += f.face.Kern(prev, first)
		}
		for i, n := 0, utf8.RuneCountInString(cluster); i < n; i++ {
			out = append(out, toFloat(x)*scale)
		}

		if cluster == "\t" {
			// Tab stops sit on multiples of tabWidth spaces.
			if space > 0 {
				col := int(x / space)
				x = fixed.Int26_6(tabStop(col, f.tabWidth)) * space
			}
		} else {
			x += f.advance(first)
		}
		prev = first
	}
	return append(out, toFloat(x)*scale), nil
}

// LineHeight implements Measurer.
func (f *Face) LineHeight(scale float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return toFloat(f.face.Metrics().Height) * scale
}

// advance returns the advance of r, using the replacement glyph when the
// face lacks r.
func (f *Face) advance(r rune) fixed.Int26_6 {
	if adv, ok := f.face.GlyphAdvance(r); ok {
		return adv
	}
	if adv, ok := f.face.GlyphAdvance(utf8.RuneError); ok {
		return adv
	}
	adv, _ := f.face.GlyphAdvance('?')
	return adv
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
