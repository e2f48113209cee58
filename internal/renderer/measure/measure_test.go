package measure

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCellsAdvances(t *testing.T) {
	c := NewCells(4)

	tests := []struct {
		name string
		line string
		want []float64
	}{
		{"empty", "", []float64{0}},
		{"ascii", "abc", []float64{0, 1, 2, 3}},
		{"wide", "a世b", []float64{0, 1, 3, 4}},
		{"tab from start", "\tx", []float64{0, 4, 5}},
		{"tab mid stop", "ab\tx", []float64{0, 1, 2, 4, 5}},
		{"combining mark shares cluster", "e\u0301x", []float64{0, 0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adv, err := c.Advances(tt.line, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, adv)
		})
	}
}

func TestCellsScale(t *testing.T) {
	c := &Cells{CellWidth: 8, CellHeight: 16, TabWidth: 4}

	adv, err := c.Advances("ab", 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 16, 32}, adv)
	assert.Equal(t, 32.0, c.LineHeight(2))
}

func TestBasicFaceAdvances(t *testing.T) {
	f := NewBasicFace(4)

	adv, err := f.Advances("ab", 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 7, 14}, adv)

	adv, err = f.Advances("ab\tc", 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 7, 14, 28, 35}, adv)

	assert.Equal(t, 13.0, f.LineHeight(1))
	assert.Equal(t, 26.0, f.LineHeight(2))
}

func TestXAt(t *testing.T) {
	c := NewCells(4)

	x, err := XAt(c, "abc", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, x)

	x, err = XAt(c, "abc", 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, x)

	_, err = XAt(c, "abc", 4, 1)
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, err = XAt(c, "abc", -1, 1)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLineWidths(t *testing.T) {
	c := NewCells(4)
	lines := []string{"ab", "世界!", ""}

	assert.Equal(t, 2.0, LineWidth(c, lines[0], 1))
	assert.Equal(t, 5.0, MaxLineWidth(c, len(lines), func(i int) string { return lines[i] }, 1))
	assert.Equal(t, 0.0, MaxLineWidth(c, 0, nil, 1))
}

func TestCachedMemoizes(t *testing.T) {
	c := NewCached(NewCells(4), DefaultExpiration, DefaultCleanupInterval)

	first, err := c.Advances("hello", 1)
	require.NoError(t, err)
	second, err := c.Advances("hello", 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = c.Advances("hello", 2)
	require.NoError(t, err)

	hits, misses := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(2), misses)

	c.Flush()
	_, _ = c.Advances("hello", 1)
	_, misses = c.Stats()
	assert.Equal(t, uint64(3), misses)
	assert.Equal(t, 1.0, c.LineHeight(1))
}

func TestAdvancesMonotonic(t *testing.T) {
	measurers := map[string]Measurer{
		"cells": NewCells(4),
		"face":  NewBasicFace(4),
	}
	for name, m := range measurers {
		t.Run(name, func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				line := rapid.StringMatching(`[a-z世é\t 🌍\x{0301}]{0,40}`).Draw(t, "line")
				scale := rapid.Float64Range(0.5, 3).Draw(t, "scale")

				adv, err := m.Advances(line, scale)
				if err != nil {
					t.Fatal(err)
				}
				if len(adv) != utf8.RuneCountInString(line)+1 {
					t.Fatalf("len(adv) = %d, want %d", len(adv), utf8.RuneCountInString(line)+1)
				}
				if adv[0] != 0 {
					t.Fatalf("adv[0] = %v, want 0", adv[0])
				}
				for i := 1; i < len(adv); i++ {
					if adv[i] < adv[i-1] {
						t.Fatalf("adv[%d] = %v < adv[%d] = %v", i, adv[i], i-1, adv[i-1])
					}
				}
			})
		})
	}
}
