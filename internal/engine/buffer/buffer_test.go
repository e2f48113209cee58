package buffer

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	b := New("")

	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 1, b.LineCount())
	assert.Equal(t, "", b.Line(0))
}

func TestNewNormalizesLineEndings(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		text   string
		ending LineEnding
	}{
		{"lf", "a\nb", "a\nb", LineEndingLF},
		{"crlf", "a\r\nb\r\n", "a\nb\n", LineEndingCRLF},
		{"cr", "a\rb", "a\nb", LineEndingCR},
		{"none", "abc", "abc", LineEndingLF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.input)
			assert.Equal(t, tt.text, b.Text())
			assert.Equal(t, tt.ending, b.LineEnding())
		})
	}
}

func TestNewFromReader(t *testing.T) {
	b, err := NewFromReader(strings.NewReader("one\r\ntwo"))
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo", b.Text())
}

func TestLineAddressing(t *testing.T) {
	b := New("ab\ncd\n")

	require.Equal(t, 3, b.LineCount())
	assert.Equal(t, "ab", b.Line(0))
	assert.Equal(t, "cd", b.Line(1))
	assert.Equal(t, "", b.Line(2))
	assert.Equal(t, "", b.Line(5))

	assert.Equal(t, 2, b.LineLen(0))
	assert.Equal(t, 0, b.LineLen(2))

	assert.Equal(t, 0, b.LineToChar(0))
	assert.Equal(t, 3, b.LineToChar(1))
	assert.Equal(t, 6, b.LineToChar(2))

	assert.Equal(t, Position{0, 2}, b.CharToLine(2))
	assert.Equal(t, Position{1, 0}, b.CharToLine(3))
	assert.Equal(t, Position{2, 0}, b.CharToLine(6))
	assert.Equal(t, Position{2, 0}, b.CharToLine(99))

	assert.Equal(t, 5, b.PositionToChar(Position{1, 2}))
	assert.Equal(t, 5, b.PositionToChar(Position{1, 9}))
}

func TestCharByteConversion(t *testing.T) {
	b := New("\u00e9世\nx")

	assert.Equal(t, 0, b.CharToByte(0))
	assert.Equal(t, 2, b.CharToByte(1))
	assert.Equal(t, 5, b.CharToByte(2))
	assert.Equal(t, 2, b.ByteToChar(5))
	assert.Equal(t, 4, b.Len())
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		pos      int
		ch       rune
		expected string
	}{
		{"start", "bc", 0, 'a', "abc"},
		{"end", "ab", 2, 'c', "abc"},
		{"multibyte", "ab", 1, '世', "a世b"},
		{"newline rune", "ab", 1, '\n', "a\nb"},
		{"carriage return", "ab", 1, '\r', "a\nb"},
		{"combining mark extends cluster", "e", 1, '\u0301', "e\u0301"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.initial)
			require.NoError(t, b.InsertChar(tt.pos, tt.ch))
			assert.Equal(t, tt.expected, b.Text())
		})
	}
}

func TestInsertNewline(t *testing.T) {
	b := New("abcd")
	require.NoError(t, b.InsertNewline(2))
	assert.Equal(t, "ab\ncd", b.Text())
	assert.Equal(t, 2, b.LineCount())
}

func TestInsertErrors(t *testing.T) {
	b := New("e\u0301x")
	rev := b.Revision()

	err := b.InsertChar(-1, 'a')
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	err = b.InsertChar(4, 'a')
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	err = b.InsertChar(1, 'a')
	assert.ErrorIs(t, err, ErrInvalidBoundary)

	assert.Equal(t, "e\u0301x", b.Text())
	assert.Equal(t, rev, b.Revision())
}

func TestRemoveRange(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		start, end int
		expected   string
	}{
		{"single char", "abc", 0, 1, "bc"},
		{"join lines", "ab\ncd", 2, 3, "abcd"},
		{"whole cluster", "ae\u0301b", 1, 3, "ab"},
		{"everything", "abc", 0, 3, ""},
		{"empty range", "abc", 1, 1, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.initial)
			require.NoError(t, b.RemoveRange(tt.start, tt.end))
			assert.Equal(t, tt.expected, b.Text())
		})
	}
}

func TestRemoveRangeErrors(t *testing.T) {
	b := New("ae\u0301b")

	assert.ErrorIs(t, b.RemoveRange(2, 1), ErrOutOfBounds)
	assert.ErrorIs(t, b.RemoveRange(0, 9), ErrOutOfBounds)
	assert.ErrorIs(t, b.RemoveRange(2, 3), ErrInvalidBoundary)
	assert.ErrorIs(t, b.RemoveRange(1, 2), ErrInvalidBoundary)
	assert.Equal(t, "ae\u0301b", b.Text())
}

func TestRevisionIncreases(t *testing.T) {
	b := New("abc")
	r0 := b.Revision()

	require.NoError(t, b.InsertChar(0, 'x'))
	r1 := b.Revision()
	assert.Greater(t, r1, r0)

	require.NoError(t, b.RemoveRange(0, 1))
	assert.Greater(t, b.Revision(), r1)

	r2 := b.Revision()
	_ = b.Text()
	_ = b.Line(0)
	assert.Equal(t, r2, b.Revision())
}

func TestBoundaries(t *testing.T) {
	// "e" + combining acute, a flag (two regional indicators), then "x".
	b := New("e\u0301\U0001F1EB\U0001F1F7x")

	assert.Equal(t, []int{0, 2, 4, 5}, b.Boundaries(0))
	assert.True(t, b.IsBoundary(0, 2))
	assert.False(t, b.IsBoundary(0, 3))

	assert.Equal(t, 2, b.PrevBoundary(0, 4))
	assert.Equal(t, 2, b.PrevBoundary(0, 3))
	assert.Equal(t, 0, b.PrevBoundary(0, 0))

	assert.Equal(t, 4, b.NextBoundary(0, 2))
	assert.Equal(t, 4, b.NextBoundary(0, 3))
	assert.Equal(t, 5, b.NextBoundary(0, 5))

	assert.Equal(t, 2, b.SnapBoundary(0, 3))
	assert.Equal(t, 5, b.SnapBoundary(0, 10))
	assert.Equal(t, 0, b.SnapBoundary(0, -1))
}

func TestBufferConcurrentReads(t *testing.T) {
	b := New(strings.Repeat("line\n", 100))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Line((i + j) % b.LineCount())
				_ = b.Len()
			}
		}(i)
	}
	for j := 0; j < 50; j++ {
		_ = b.InsertChar(0, 'x')
	}
	wg.Wait()

	assert.Equal(t, strings.Repeat("x", 50)+"line", b.Line(0))
}
