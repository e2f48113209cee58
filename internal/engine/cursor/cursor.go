package cursor

import (
	"fmt"

	"github.com/dshills/codepane/internal/engine/buffer"
)

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// Cursor is a snapshot of the cursor state.
type Cursor struct {
	Row     int
	Col     int
	XOffset float64
}

// Position returns the logical position of the cursor.
func (c Cursor) Position() Position {
	return Position{Row: c.Row, Col: c.Col}
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d:%d x=%g)", c.Row, c.Col, c.XOffset)
}
