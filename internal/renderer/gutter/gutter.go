// Package gutter lays out the line-number column to the left of the text.
//
// The gutter width is the width of the widest line number plus a padding
// inside the gutter background and a margin between the gutter and the
// text. Line numbers are right-aligned against the padding.
package gutter

import (
	"strings"
	"sync"

	"github.com/dshills/codepane/internal/renderer/core"
	"github.com/dshills/codepane/internal/renderer/measure"
)

// Default spacing in pixels.
const (
	DefaultPadding = 10
	DefaultMargin  = 10
)

// Config holds gutter configuration.
type Config struct {
	// ShowLineNumbers enables the gutter. A hidden gutter has zero width.
	ShowLineNumbers bool

	// MinDigits is the minimum number of digit cells reserved.
	MinDigits int

	// Padding is the space between the numbers and the gutter edge.
	Padding float64

	// Margin is the space between the gutter and the text.
	Margin float64

	// Mode selects absolute, relative or hybrid numbering.
	Mode LineNumberMode

	Color        core.Color
	CurrentColor core.Color
}

// DefaultConfig returns the default gutter configuration.
func DefaultConfig() Config {
	return Config{
		ShowLineNumbers: true,
		MinDigits:       1,
		Padding:         DefaultPadding,
		Margin:          DefaultMargin,
		Mode:            LineNumberAbsolute,
		Color:           core.ColorText,
		CurrentColor:    core.ColorWhite,
	}
}

// Gutter manages the line-number column.
type Gutter struct {
	mu sync.RWMutex

	config Config
	m      measure.Measurer
	scale  float64

	lineCount   int
	currentLine int
	digitWidth  float64 // Widest single digit
	numberWidth float64 // Space reserved for the widest number
}

// New creates a gutter measuring digits with m at scale.
func New(config Config, m measure.Measurer, scale float64) *Gutter {
	g := &Gutter{config: config, m: m, scale: scale, lineCount: 1}
	g.remeasure()
	return g
}

// Config returns the current configuration.
func (g *Gutter) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// SetConfig updates the configuration and recomputes the width.
func (g *Gutter) SetConfig(config Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config = config
	g.layout()
}

// SetMeasurer swaps the measurer and recomputes the width.
func (g *Gutter) SetMeasurer(m measure.Measurer, scale float64) {
	g.mu.Lock()
	g.m = m
	g.scale = scale
	g.mu.Unlock()
	g.remeasure()
}

// SetLineCount updates the number of lines to number. It reports whether
// the gutter width changed.
func (g *Gutter) SetLineCount(count int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	before := g.width()
	g.lineCount = max(1, count)
	g.layout()
	return g.width() != before
}

// SetCurrentLine sets the cursor line used for relative numbers and the
// current-line color.
func (g *Gutter) SetCurrentLine(line int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentLine = line
}

// Width returns the total gutter width including padding and margin.
func (g *Gutter) Width() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.width()
}

func (g *Gutter) width() float64 {
	if !g.config.ShowLineNumbers {
		return 0
	}
	return g.numberWidth + g.config.Padding + g.config.Margin
}

// NumberWidth returns the space reserved for line numbers alone.
func (g *Gutter) NumberWidth() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.numberWidth
}

// remeasure finds the widest digit for the current measurer.
func (g *Gutter) remeasure() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.digitWidth = 0
	for d := '0'; d <= '9'; d++ {
		g.digitWidth = max(g.digitWidth, measure.LineWidth(g.m, string(d), g.scale))
	}
	g.layout()
}

// layout recomputes the number width (internal, no lock).
func (g *Gutter) layout() {
	digits := CalculateWidth(g.lineCount, g.config.MinDigits)
	g.numberWidth = float64(digits) * g.digitWidth
}

// Runs returns one right-aligned line-number run per line in
// [upper, lower). Each run is placed at row*lineHeight + scrollY.
func (g *Gutter) Runs(upper, lower int, scrollY, lineHeight float64) []core.TextRun {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.config.ShowLineNumbers || lower <= upper {
		return nil
	}

	f := NewLineNumberFormatter(g.config.Mode, 0)
	f.SetCurrentLine(g.currentLine)

	runs := make([]core.TextRun, 0, lower-upper)
	for line := upper; line < lower; line++ {
		text, current := f.FormatWithHighlight(line)
		color := g.config.Color
		if current {
			color = g.config.CurrentColor
		}
		runs = append(runs, core.TextRun{
			Text:  text,
			Color: color,
			Scale: g.scale,
			Pos: core.Point{
				X: g.numberWidth - measure.LineWidth(g.m, text, g.scale),
				Y: float64(line)*lineHeight + scrollY,
			},
		})
	}
	return runs
}

// Text renders the visible line numbers as a newline-joined block, each
// number left-padded to the reserved digit count.
func (g *Gutter) Text(upper, lower int) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	width := CalculateWidth(g.lineCount, g.config.MinDigits)
	f := NewLineNumberFormatter(g.config.Mode, width)
	f.SetCurrentLine(g.currentLine)

	var b strings.Builder
	for line := upper; line < lower; line++ {
		if line > upper {
			b.WriteByte('\n')
		}
		b.WriteString(f.Format(line))
	}
	return b.String()
}
