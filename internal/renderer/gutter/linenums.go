package gutter

import "strconv"

// LineNumberMode defines how line numbers are displayed.
type LineNumberMode uint8

const (
	// LineNumberAbsolute shows absolute line numbers (1, 2, 3, ...).
	LineNumberAbsolute LineNumberMode = iota

	// LineNumberRelative shows relative line numbers from cursor.
	LineNumberRelative

	// LineNumberHybrid shows absolute for current line, relative for others.
	LineNumberHybrid
)

// ParseLineNumberMode maps a config name to a mode. Unknown names are
// absolute.
func ParseLineNumberMode(name string) LineNumberMode {
	switch name {
	case "relative":
		return LineNumberRelative
	case "hybrid":
		return LineNumberHybrid
	default:
		return LineNumberAbsolute
	}
}

// String returns the config name of the mode.
func (m LineNumberMode) String() string {
	switch m {
	case LineNumberRelative:
		return "relative"
	case LineNumberHybrid:
		return "hybrid"
	default:
		return "absolute"
	}
}

// LineNumberFormatter formats line numbers according to configuration.
type LineNumberFormatter struct {
	mode        LineNumberMode
	width       int
	currentLine int
}

// NewLineNumberFormatter creates a new line number formatter.
func NewLineNumberFormatter(mode LineNumberMode, width int) *LineNumberFormatter {
	return &LineNumberFormatter{
		mode:  mode,
		width: width,
	}
}

// SetCurrentLine sets the current cursor line for relative calculations.
func (f *LineNumberFormatter) SetCurrentLine(line int) {
	f.currentLine = line
}

// Format returns the formatted line number string.
func (f *LineNumberFormatter) Format(line int) string {
	s, _ := f.FormatWithHighlight(line)
	return s
}

// FormatWithHighlight returns the formatted number and whether it is the
// current line.
func (f *LineNumberFormatter) FormatWithHighlight(line int) (string, bool) {
	num := f.calculateNumber(line)
	return PadLeft(strconv.Itoa(num), f.width), line == f.currentLine
}

// calculateNumber returns the number to display for a line.
func (f *LineNumberFormatter) calculateNumber(line int) int {
	switch f.mode {
	case LineNumberRelative:
		return absDiff(line, f.currentLine)
	case LineNumberHybrid:
		if line == f.currentLine {
			return line + 1
		}
		return absDiff(line, f.currentLine)
	default:
		return line + 1 // 1-indexed display
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// PadLeft pads a string with spaces on the left to the specified width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := make([]byte, width-len(s))
	for i := range padding {
		padding[i] = ' '
	}
	return string(padding) + s
}

// CalculateWidth returns the number of digit cells needed to number
// lineCount lines, at least minWidth.
func CalculateWidth(lineCount, minWidth int) int {
	return max(countDigits(lineCount), minWidth)
}

func countDigits(n int) int {
	if n <= 0 {
		return 1
	}
	digits := 0
	for n > 0 {
		digits++
		n /= 10
	}
	return digits
}
