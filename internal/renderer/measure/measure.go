// Package measure answers "where does each character of this line start"
// for the editing core.
//
// A Measurer turns a line and a scale into left-edge x positions. The core
// never looks at fonts or terminal cells directly; it only sees these
// positions, which keeps cursor placement and hit testing identical across
// the terminal backend and the font-based frame renderer.
package measure

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when a position cannot be resolved, for
// example a column past the end of the measured line.
var ErrUnavailable = errors.New("measurement unavailable")

// Measurer measures lines of text.
type Measurer interface {
	// Advances returns the x position of the left edge of every char in
	// line followed by the x position of the line end. The result has
	// utf8.RuneCountInString(line)+1 entries, starts at 0 and never
	// decreases. Chars inside a grapheme cluster share the cluster's
	// left edge.
	Advances(line string, scale float64) ([]float64, error)

	// LineHeight returns the height of one line at scale.
	LineHeight(scale float64) float64
}

// XAt returns the x position of column col in line.
func XAt(m Measurer, line string, col int, scale float64) (float64, error) {
	adv, err := m.Advances(line, scale)
	if err != nil {
		return 0, err
	}
	if col < 0 || col >= len(adv) {
		return 0, fmt.Errorf("column %d of %d: %w", col, len(adv)-1, ErrUnavailable)
	}
	return adv[col], nil
}

// LineWidth returns the width of line, or 0 if it cannot be measured.
func LineWidth(m Measurer, line string, scale float64) float64 {
	adv, err := m.Advances(line, scale)
	if err != nil || len(adv) == 0 {
		return 0
	}
	return adv[len(adv)-1]
}

// MaxLineWidth returns the widest of n lines produced by line.
func MaxLineWidth(m Measurer, n int, line func(int) string, scale float64) float64 {
	var widest float64
	for i := 0; i < n; i++ {
		widest = max(widest, LineWidth(m, line(i), scale))
	}
	return widest
}
