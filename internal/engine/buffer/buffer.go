package buffer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dshills/codepane/internal/engine/rope"
)

// Errors returned by buffer operations.
var (
	ErrOutOfBounds     = errors.New("offset out of bounds")
	ErrInvalidBoundary = errors.New("offset splits a grapheme cluster")
)

// LineEnding specifies the line ending style found in loaded content.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// DetectLineEnding returns the most common line ending in text.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lf, crlf, cr int
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				crlf++
				i++
			} else {
				cr++
			}
		case '\n':
			lf++
		}
	}
	switch {
	case crlf > 0 && crlf >= lf && crlf >= cr:
		return LineEndingCRLF
	case cr > 0 && cr >= lf:
		return LineEndingCR
	}
	return LineEndingLF
}

// normalizeLineEndings converts CRLF and lone CR to LF.
func normalizeLineEndings(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Buffer is the editable text of one pane.
// All methods are safe for concurrent use.
type Buffer struct {
	mu         sync.RWMutex
	rope       rope.Rope
	revision   RevisionID
	lineEnding LineEnding
}

// New creates a buffer holding text. Line endings are normalized to LF and
// the original style is remembered.
func New(text string) *Buffer {
	return &Buffer{
		rope:       rope.FromString(normalizeLineEndings(text)),
		revision:   NewRevisionID(),
		lineEnding: DetectLineEnding(text),
	}
}

// NewFromReader creates a buffer from everything r yields.
func NewFromReader(r io.Reader) (*Buffer, error) {
	// Read everything first; a CRLF pair may straddle read boundaries.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(string(data)), nil
}

// Read Operations

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.String()
}

// Bytes returns the full buffer content as bytes.
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Bytes()
}

// Len returns the length in chars.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Len()
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.IsEmpty()
}

// LineCount returns the number of lines, which is the newline count plus one.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineCount()
}

// Line returns the text of row without its newline.
// Rows outside the buffer yield "".
func (b *Buffer) Line(row int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Line(row)
}

// LineLen returns the length of row in chars.
func (b *Buffer) LineLen(row int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineLenLocked(row)
}

func (b *Buffer) lineLenLocked(row int) int {
	if row < 0 || row >= b.rope.LineCount() {
		return 0
	}
	end := b.rope.Len()
	if row+1 < b.rope.LineCount() {
		end = b.rope.LineToChar(row+1) - 1
	}
	return end - b.rope.LineToChar(row)
}

// LineToChar returns the char offset of the first char of row.
// Rows are clamped to the buffer.
func (b *Buffer) LineToChar(row int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineToChar(row)
}

// CharToLine converts a char offset to a position. Offsets are clamped to
// [0, Len()].
func (b *Buffer) CharToLine(pos int) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.charToLineLocked(pos)
}

func (b *Buffer) charToLineLocked(pos int) Position {
	pos = max(0, min(pos, b.rope.Len()))
	row := b.rope.CharToLine(pos)
	return Position{Row: row, Col: pos - b.rope.LineToChar(row)}
}

// PositionToChar converts a position to a char offset. The row is clamped
// to the buffer and the column to the row length.
func (b *Buffer) PositionToChar(p Position) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	row := max(0, min(p.Row, b.rope.LineCount()-1))
	col := max(0, min(p.Col, b.lineLenLocked(row)))
	return b.rope.LineToChar(row) + col
}

// ByteToChar converts a byte offset of the UTF-8 content to a char offset.
func (b *Buffer) ByteToChar(off int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.ByteToChar(off)
}

// CharToByte converts a char offset to a byte offset of the UTF-8 content.
func (b *Buffer) CharToByte(pos int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.CharToByte(pos)
}

// Revision returns the current revision. It increases with every mutation.
func (b *Buffer) Revision() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// LineEnding returns the line ending style the content was loaded with.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// Write Operations

// InsertChar inserts ch at char offset pos. A '\n' or '\r' is inserted as a
// newline.
func (b *Buffer) InsertChar(pos int, ch rune) error {
	if ch == '\n' || ch == '\r' {
		return b.InsertNewline(pos)
	}
	return b.insert(pos, string(ch))
}

// InsertNewline splits the line containing pos at pos.
func (b *Buffer) InsertNewline(pos int) error {
	return b.insert(pos, "\n")
}

func (b *Buffer) insert(pos int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if pos < 0 || pos > b.rope.Len() {
		return fmt.Errorf("insert at %d: %w", pos, ErrOutOfBounds)
	}
	if !b.isBoundaryLocked(pos) {
		return fmt.Errorf("insert at %d: %w", pos, ErrInvalidBoundary)
	}

	b.rope = b.rope.Insert(pos, text)
	b.revision = NewRevisionID()
	return nil
}

// RemoveRange deletes the chars in [start, end). Both ends must lie on
// grapheme cluster boundaries. Removing an empty range is a no-op that does
// not create a revision.
func (b *Buffer) RemoveRange(start, end int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || end > b.rope.Len() || start > end {
		return fmt.Errorf("remove [%d, %d): %w", start, end, ErrOutOfBounds)
	}
	if !b.isBoundaryLocked(start) || !b.isBoundaryLocked(end) {
		return fmt.Errorf("remove [%d, %d): %w", start, end, ErrInvalidBoundary)
	}
	if start == end {
		return nil
	}

	b.rope = b.rope.Delete(start, end)
	b.revision = NewRevisionID()
	return nil
}
