package editor

import (
	"unicode"

	"github.com/dshills/codepane/internal/renderer/core"
)

// Key is a non-printable key the editor handles.
type Key uint8

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyBackspace
	KeyEnter
	KeyEscape
)

var keyNames = [...]string{
	KeyNone:      "none",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyBackspace: "backspace",
	KeyEnter:     "enter",
	KeyEscape:    "escape",
}

// String returns the key name.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// Control characters typed as text that act as keys.
const (
	charBackspace = 0x08
	charEscape    = 0x1b
	charDelete    = 0x7f
)

// HandleKey applies k. It reports whether the frame needs redrawing.
func (e *Editor) HandleKey(k Key) bool {
	var (
		changed bool
		err     error
	)
	switch k {
	case KeyUp:
		changed = e.cursor.Up()
	case KeyDown:
		changed = e.cursor.Down()
	case KeyLeft:
		changed = e.cursor.Left()
	case KeyRight:
		changed = e.cursor.Right()
	case KeyBackspace:
		changed, err = e.cursor.Backspace()
	case KeyEnter:
		changed, err = e.cursor.Enter()
	case KeyEscape:
		e.log.Debug("escape at %v", e.cursor.Cursor())
		return false
	default:
		return false
	}
	if err != nil {
		e.log.Debug("%s: %v", k, err)
	}
	return e.afterKeyboard(changed)
}

// InsertChar types ch at the cursor. '\r' and '\n' act as Enter, DEL and
// BS as Backspace, ESC as Escape. Other control characters except '\t'
// are ignored. It reports whether the frame needs redrawing.
func (e *Editor) InsertChar(ch rune) bool {
	switch ch {
	case '\r', '\n':
		return e.HandleKey(KeyEnter)
	case charDelete, charBackspace:
		return e.HandleKey(KeyBackspace)
	case charEscape:
		return e.HandleKey(KeyEscape)
	}
	if ch != '\t' && unicode.IsControl(ch) {
		return false
	}

	changed, err := e.cursor.InsertChar(ch)
	if err != nil {
		e.log.Debug("insert: %v", err)
	}
	return e.afterKeyboard(changed)
}

// afterKeyboard brings derived state up to date after a key.
func (e *Editor) afterKeyboard(changed bool) bool {
	e.sync()
	e.logMeasureErr()
	if e.autoReveal && e.reveal() {
		changed = true
	}
	return changed
}

// reveal scrolls the cursor into view.
func (e *Editor) reveal() bool {
	c := e.cursor.Cursor()
	lh := e.view.LineHeight()
	return e.view.Reveal(core.RectAt(c.XOffset, float64(c.Row)*lh, e.cursorWidth, lh))
}

// Click places the cursor under the screen point p. Points outside the
// viewport are ignored. Clicks on the gutter land at the start of the row.
func (e *Editor) Click(p core.Point) bool {
	size := e.view.Size()
	if p.X < 0 || p.Y < 0 || p.X >= size.W || p.Y >= size.H {
		return false
	}

	before := e.cursor.Position()
	text := core.Point{X: p.X - e.gutter.Width(), Y: p.Y}
	e.cursor.Click(text, e.view.Offset())
	e.logMeasureErr()
	return e.cursor.Position() != before
}

// Scroll moves the content by delta along its dominant axis.
func (e *Editor) Scroll(delta core.Point) bool {
	return e.view.Scroll(delta, e.view.Size())
}

// Resize sets the viewport size and re-clamps the scroll offset.
func (e *Editor) Resize(size core.Size) {
	e.size = size
	e.view.Resize(size)
	e.view.Scroll(core.Point{}, size)
}
