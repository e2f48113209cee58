// Package editor composes the text buffer, cursor, viewport, gutter and
// highlighter into a single editing surface.
//
// An Editor is driven by input calls (keys, typed characters, clicks,
// scrolls, resizes) and produces a Frame of drawable primitives. Every input
// is handled to completion before returning. Recoverable failures (edits at
// invalid offsets, missing grammars, unmeasurable positions) are logged at
// debug level and never surface to the caller.
//
// An Editor is not safe for concurrent use.
package editor

import (
	"slices"

	"github.com/dshills/codepane/internal/engine/buffer"
	"github.com/dshills/codepane/internal/engine/cursor"
	"github.com/dshills/codepane/internal/logging"
	"github.com/dshills/codepane/internal/renderer/core"
	"github.com/dshills/codepane/internal/renderer/gutter"
	"github.com/dshills/codepane/internal/renderer/highlight"
	"github.com/dshills/codepane/internal/renderer/measure"
	"github.com/dshills/codepane/internal/renderer/viewport"
)

// Editor is the editing core of one buffer.
type Editor struct {
	path string
	log  *logging.Logger

	buf    *buffer.Buffer
	cursor *cursor.Controller
	view   *viewport.Viewport
	gutter *gutter.Gutter
	hl     *highlight.Highlighter
	theme  *highlight.Theme

	m            measure.Measurer
	scale        float64
	size         core.Size
	cursorWidth  float64
	gutterConfig gutter.Config
	autoReveal   bool
	margins      viewport.MarginConfig

	// Derived from the buffer at revision rev.
	synced       bool
	rev          buffer.RevisionID
	spans        []highlight.Span
	maxLineWidth float64
	highlights   int // number of highlight runs
}

// New creates an editor over content. path selects the grammar by its
// extension; an unknown extension leaves the text unhighlighted.
func New(content, path string, m measure.Measurer, opts ...Option) *Editor {
	e := &Editor{
		path:         path,
		log:          logging.Nop(),
		m:            m,
		scale:        DefaultScale,
		size:         DefaultSize,
		cursorWidth:  DefaultCursorWidth,
		gutterConfig: gutter.DefaultConfig(),
		theme:        highlight.DefaultTheme(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithComponent("editor")

	if e.hl == nil {
		hl, err := highlight.NewForFile(path)
		if err != nil {
			e.log.Debug("unhighlighted %q: %v", path, err)
		}
		e.hl = hl
	}

	e.buf = buffer.New(content)
	e.cursor = cursor.NewController(e.buf, m, e.scale)
	e.gutter = gutter.New(e.themedGutter(), m, e.scale)
	e.view = viewport.New(e.size, m.LineHeight(e.scale))
	if e.autoReveal {
		e.view.SetMargins(e.margins)
	}
	e.sync()
	return e
}

func (e *Editor) themedGutter() gutter.Config {
	cfg := e.gutterConfig
	cfg.Color = e.theme.Gutter
	cfg.CurrentColor = e.theme.Foreground
	return cfg
}

// sync re-derives spans, widths and viewport bounds when the buffer has
// changed since the last call.
func (e *Editor) sync() {
	rev := e.buf.Revision()
	if e.synced && rev == e.rev {
		return
	}
	e.synced, e.rev = true, rev

	spans, err := e.hl.Generate(e.buf)
	if err != nil {
		e.log.Debug("highlight failed, rendering plain: %v", err)
	}
	e.spans = spans
	e.highlights++

	e.relayout()
}

// relayout recomputes the measured extents of the content.
func (e *Editor) relayout() {
	n := e.buf.LineCount()
	e.maxLineWidth = measure.MaxLineWidth(e.m, n, e.buf.Line, e.scale)
	e.gutter.SetLineCount(n)
	e.view.SetInset(e.gutter.Width())
	e.view.SetContent(n, e.maxLineWidth)
}

// Path returns the file path the editor was created with.
func (e *Editor) Path() string {
	return e.path
}

// Language returns the grammar language, or "" when unhighlighted.
func (e *Editor) Language() string {
	return e.hl.Language()
}

// Text returns the buffer content.
func (e *Editor) Text() string {
	return e.buf.Text()
}

// Buffer returns the underlying buffer for read access.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

// Cursor returns the cursor state.
func (e *Editor) Cursor() cursor.Cursor {
	return e.cursor.Cursor()
}

// Spans returns a copy of the current highlight spans.
func (e *Editor) Spans() []highlight.Span {
	return slices.Clone(e.spans)
}

// Viewport returns the viewport.
func (e *Editor) Viewport() *viewport.Viewport {
	return e.view
}

// Theme returns the current theme.
func (e *Editor) Theme() *highlight.Theme {
	return e.theme
}

// Scale returns the text scale.
func (e *Editor) Scale() float64 {
	return e.scale
}

// LineHeight returns the row height at the current scale.
func (e *Editor) LineHeight() float64 {
	return e.view.LineHeight()
}

// MaxLineWidth returns the measured width of the widest line.
func (e *Editor) MaxLineWidth() float64 {
	return e.maxLineWidth
}

// GutterWidth returns the gutter width.
func (e *Editor) GutterWidth() float64 {
	return e.gutter.Width()
}

// SetTheme replaces the color theme.
func (e *Editor) SetTheme(t *highlight.Theme) {
	if t == nil {
		return
	}
	e.theme = t
	e.gutter.SetConfig(e.themedGutter())
	e.log.Debug("theme %q", t.Name)
}

// SetGutter replaces the gutter configuration.
func (e *Editor) SetGutter(cfg gutter.Config) {
	e.gutterConfig = cfg
	e.gutter.SetConfig(e.themedGutter())
	e.view.SetInset(e.gutter.Width())
}

// SetAutoReveal turns cursor following on or off. margins apply when on.
func (e *Editor) SetAutoReveal(on bool, margins viewport.MarginConfig) {
	e.autoReveal = on
	e.margins = margins
	if on {
		e.view.SetMargins(margins)
	} else {
		e.view.SetMargins(viewport.NoMargins())
	}
}

// SetMeasurer swaps the measurer and scale, re-measuring everything that
// depends on them.
func (e *Editor) SetMeasurer(m measure.Measurer, scale float64) {
	if scale <= 0 {
		scale = e.scale
	}
	e.m, e.scale = m, scale
	e.cursor.SetMeasurer(m, scale)
	e.gutter.SetMeasurer(m, scale)
	e.view.SetLineHeight(m.LineHeight(scale))
	e.relayout()
	e.logMeasureErr()
}

func (e *Editor) logMeasureErr() {
	if err := e.cursor.MeasureErr(); err != nil {
		e.log.Debug("cursor offset unavailable at %v: %v", e.cursor.Position(), err)
	}
}
