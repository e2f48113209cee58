package editor

import (
	"github.com/dshills/codepane/internal/logging"
	"github.com/dshills/codepane/internal/renderer/core"
	"github.com/dshills/codepane/internal/renderer/gutter"
	"github.com/dshills/codepane/internal/renderer/highlight"
	"github.com/dshills/codepane/internal/renderer/viewport"
)

// Default configuration values.
const (
	DefaultScale       = 1.0
	DefaultCursorWidth = 2.0
)

// DefaultSize is the viewport size used when none is given.
var DefaultSize = core.Size{W: 800, H: 600}

// Option configures an Editor during creation.
type Option func(*Editor)

// WithScale sets the text scale passed to the measurer.
func WithScale(scale float64) Option {
	return func(e *Editor) {
		if scale > 0 {
			e.scale = scale
		}
	}
}

// WithSize sets the initial viewport size.
func WithSize(size core.Size) Option {
	return func(e *Editor) {
		e.size = size
	}
}

// WithGutter sets the gutter configuration.
func WithGutter(cfg gutter.Config) Option {
	return func(e *Editor) {
		e.gutterConfig = cfg
	}
}

// WithTheme sets the color theme.
func WithTheme(t *highlight.Theme) Option {
	return func(e *Editor) {
		if t != nil {
			e.theme = t
		}
	}
}

// WithCursorWidth sets the width of the cursor rectangle.
func WithCursorWidth(w float64) Option {
	return func(e *Editor) {
		if w > 0 {
			e.cursorWidth = w
		}
	}
}

// WithLogger sets the logger. Editor messages carry component=editor.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithHighlighter replaces the highlighter chosen from the file path.
func WithHighlighter(h *highlight.Highlighter) Option {
	return func(e *Editor) {
		e.hl = h
	}
}

// WithAutoReveal scrolls the view after keyboard input so the cursor stays
// on screen, keeping margins around it.
func WithAutoReveal(margins viewport.MarginConfig) Option {
	return func(e *Editor) {
		e.autoReveal = true
		e.margins = margins
	}
}
