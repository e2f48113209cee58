package viewport

import (
	"testing"

	"github.com/dshills/codepane/internal/renderer/core"
)

func TestDefaultMargins(t *testing.T) {
	m := DefaultMargins()
	if m.Top != 2 || m.Bottom != 2 {
		t.Errorf("expected vertical margins 2, got %d/%d", m.Top, m.Bottom)
	}
	if m.Left != 4 || m.Right != 4 {
		t.Errorf("expected horizontal margins 4, got %v/%v", m.Left, m.Right)
	}
}

func TestSetMarginsClampsNegative(t *testing.T) {
	v := New(core.Size{W: 100, H: 100}, 10)
	v.SetMargins(MarginConfig{Top: -1, Bottom: 3, Left: -2, Right: 5})

	got := v.Margins()
	want := MarginConfig{Top: 0, Bottom: 3, Left: 0, Right: 5}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestEffectiveMargins(t *testing.T) {
	// 6 rows and 90px of text width: at most 2 rows and 30px per side.
	v := New(core.Size{W: 100, H: 60}, 10)
	v.SetInset(10)
	v.SetMargins(MarginConfig{Top: 5, Bottom: 1, Left: 50, Right: 20})

	got := v.EffectiveMargins()
	want := MarginConfig{Top: 2, Bottom: 1, Left: 30, Right: 20}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestRevealVertical(t *testing.T) {
	v := New(core.Size{W: 100, H: 50}, 10)
	v.SetContent(100, 0)

	if !v.Reveal(core.RectAt(0, 70, 1, 10)) {
		t.Fatal("expected reveal below the view to scroll")
	}
	if got := v.Offset().Y; got != -30 {
		t.Errorf("expected y -30, got %v", got)
	}
	if !v.IsLineVisible(7) {
		t.Error("expected line 7 to be visible")
	}

	if v.Reveal(core.RectAt(0, 40, 1, 10)) {
		t.Error("expected no scroll for a visible rect")
	}

	v.Reveal(core.RectAt(0, 10, 1, 10))
	if got := v.Offset().Y; got != -10 {
		t.Errorf("expected y -10, got %v", got)
	}
}

func TestRevealWithMargins(t *testing.T) {
	v := New(core.Size{W: 100, H: 50}, 10)
	v.SetContent(100, 0)
	v.SetMargins(MarginConfig{Top: 2, Bottom: 2})

	// Five rows allow a single row of margin.
	v.Reveal(core.RectAt(0, 70, 1, 10))
	if got := v.Offset().Y; got != -40 {
		t.Errorf("expected y -40, got %v", got)
	}
}

func TestRevealHorizontal(t *testing.T) {
	v := New(core.Size{W: 100, H: 50}, 10)
	v.SetContent(10, 500)

	v.Reveal(core.RectAt(150, 0, 1, 10))
	if got := v.Offset().X; got != -51 {
		t.Errorf("expected x -51, got %v", got)
	}

	v.Reveal(core.RectAt(20, 0, 1, 10))
	if got := v.Offset().X; got != -20 {
		t.Errorf("expected x -20, got %v", got)
	}
}

func TestRevealStaysInBounds(t *testing.T) {
	v := New(core.Size{W: 100, H: 50}, 10)
	v.SetContent(5, 0)

	v.Reveal(core.RectAt(0, 1000, 1, 10))
	if got := v.Offset().Y; got != -20 {
		t.Errorf("expected y clamped to -20, got %v", got)
	}
}
