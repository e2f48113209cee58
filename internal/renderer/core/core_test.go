package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b uint8
		alpha   float64
		wantErr bool
	}{
		{"#FF8040", 255, 128, 64, 1, false},
		{"ff8040", 255, 128, 64, 1, false},
		{"#FFF", 255, 255, 255, 1, false},
		{"#00000080", 0, 0, 0, 128.0 / 255, false},
		{"invalid", 0, 0, 0, 0, true},
		{"#GGG", 0, 0, 0, 0, true},
		{"#12345", 0, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			c, err := ColorFromHex(tt.hex)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			r, g, b := c.RGB8()
			assert.Equal(t, [3]uint8{tt.r, tt.g, tt.b}, [3]uint8{r, g, b})
			assert.InDelta(t, tt.alpha, c.A, 1e-9)
		})
	}
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#ff8040", RGBA(1, 128.0/255, 64.0/255, 1).Hex())
	assert.Equal(t, "#00000080", RGBA(0, 0, 0, 128.0/255).Hex())

	c, err := ColorFromHex(ColorText.Hex())
	require.NoError(t, err)
	assert.True(t, c.Equals(ColorText))
}

func TestColorHexRoundTripOffByteColors(t *testing.T) {
	colors := []Color{
		ColorText,
		RGBA(0.9, 0.1, 1.0/3, 1),
		RGBA(0.002, 0.998, 0.5, 0.3),
	}
	for _, want := range colors {
		got, err := ColorFromHex(want.Hex())
		require.NoError(t, err)
		assert.True(t, got.Equals(want), "%s -> %+v", want.Hex(), got)
	}
	assert.False(t, RGBA(0.5, 0, 0, 1).Equals(RGBA(0.51, 0, 0, 1)))
}

func TestColorBlend(t *testing.T) {
	assert.True(t, ColorWhite.Blend(ColorBlack, 0).Equals(ColorWhite))
	assert.True(t, ColorWhite.Blend(ColorBlack, 1).Equals(ColorBlack))

	mid := ColorWhite.Dim(0.5)
	assert.Greater(t, mid.R, 0.0)
	assert.Less(t, mid.R, 1.0)
	assert.Equal(t, 1.0, mid.A)
}

func TestColorPremultiplied(t *testing.T) {
	c := RGBA(1, 0.5, 0, 0.5).Premultiplied()
	assert.Equal(t, RGBA(0.5, 0.25, 0, 0.5), c)
}

func TestRect(t *testing.T) {
	r := RectAt(10, 20, 30, 40)

	assert.Equal(t, Pt(40, 60), r.Max())
	assert.True(t, r.Contains(Pt(10, 20)))
	assert.True(t, r.Contains(Pt(39.9, 59.9)))
	assert.False(t, r.Contains(Pt(40, 20)))
	assert.False(t, r.Contains(Pt(9, 20)))

	assert.True(t, r.Intersects(RectAt(35, 55, 10, 10)))
	assert.False(t, r.Intersects(RectAt(40, 20, 10, 10)))
}

func TestRectRound(t *testing.T) {
	r := RectAt(3.4, 1.7, 0.2, 1).Round()
	assert.Equal(t, RectAt(3, 1, 1, 2), r)
}

func TestPointArithmetic(t *testing.T) {
	p := Pt(1, 2).Add(Pt(3, 4))
	assert.Equal(t, Pt(4, 6), p)
	assert.Equal(t, Pt(1, 2), p.Sub(Pt(3, 4)))
	assert.True(t, Size{W: 0, H: 5}.IsEmpty())
	assert.False(t, Size{W: 1, H: 5}.IsEmpty())
}
