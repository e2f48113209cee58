// Package backend draws editor frames on a character-cell display.
//
// The Backend interface abstracts the terminal so that the event loop and
// the painter can be exercised without one. Terminal implements it with
// tcell; NullBackend keeps cells in memory for tests and headless use.
package backend

import (
	"github.com/dshills/codepane/internal/renderer/core"
)

// CursorStyle represents the visual style of the terminal cursor.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
	CursorHidden
)

// EventType identifies the kind of input event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventInterrupt
)

// Event is an input event from the backend.
type Event struct {
	Type EventType

	// Key events
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse events
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize events
	Width, Height int

	// Data is the payload of an interrupt posted with PostEvent.
	Data any
}

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlQ
	KeyCtrlL
)

// ModMask represents keyboard modifiers.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether m includes mod.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton represents a mouse button or wheel direction.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
)

// Cell is one character cell. Content holds a whole grapheme cluster;
// a wide cluster occupies Width cells and the cells it covers are left
// untouched.
type Cell struct {
	Content string
	Width   int
	Fg, Bg  core.Color
}

// EmptyCell returns a blank cell on bg.
func EmptyCell(bg core.Color) Cell {
	return Cell{Content: " ", Width: 1, Fg: core.ColorText, Bg: bg}
}

// Backend is a character-cell display with an input queue.
type Backend interface {
	// Init prepares the display. It must be called before anything else.
	Init() error

	// Shutdown restores the display.
	Shutdown()

	// Size returns the display size in cells.
	Size() (width, height int)

	// SetCell writes one cell. Out of range positions are ignored.
	SetCell(x, y int, cell Cell)

	// Fill writes cell to every position of the rectangle.
	Fill(x, y, width, height int, cell Cell)

	// Show makes pending writes visible.
	Show()

	ShowCursor(x, y int)
	HideCursor()
	SetCursorStyle(style CursorStyle)

	// PollEvent blocks for the next event.
	PollEvent() Event

	// PostEvent queues an event. It may be called from any goroutine.
	PostEvent(event Event)
}

// NullBackend is an in-memory Backend.
type NullBackend struct {
	width, height int
	cells         [][]Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	cursorStyle   CursorStyle
	shows         int
	events        chan Event
}

// NewNullBackend creates a backend of the given size.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.allocate()
	return nil
}

func (b *NullBackend) allocate() {
	b.cells = make([][]Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = EmptyCell(core.ColorBlack)
		}
	}
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

// GetCell returns the cell at (x, y), or a blank cell out of range.
func (b *NullBackend) GetCell(x, y int) Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return EmptyCell(core.ColorBlack)
}

func (b *NullBackend) Fill(x, y, width, height int, cell Cell) {
	for row := max(y, 0); row < y+height && row < b.height; row++ {
		for col := max(x, 0); col < x+width && col < b.width; col++ {
			b.cells[row][col] = cell
		}
	}
}

func (b *NullBackend) Show() {
	b.shows++
}

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.cursorVisible = false
}

func (b *NullBackend) SetCursorStyle(style CursorStyle) {
	b.cursorStyle = style
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
	}
}

// CursorPosition returns the cursor state.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// CursorStyleValue returns the last cursor style set.
func (b *NullBackend) CursorStyleValue() CursorStyle {
	return b.cursorStyle
}

// Shows returns how many times Show was called.
func (b *NullBackend) Shows() int {
	return b.shows
}

// Resize changes the size, clears the cells and queues a resize event.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.allocate()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

// Row returns the text of row y. Cells covered by a wide cluster
// contribute nothing.
func (b *NullBackend) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var out []byte
	for x := 0; x < b.width; {
		c := b.cells[y][x]
		out = append(out, c.Content...)
		x += max(c.Width, 1)
	}
	return string(out)
}
