package app

import (
	"github.com/dshills/codepane/internal/config"
	"github.com/dshills/codepane/internal/editor"
	"github.com/dshills/codepane/internal/renderer/backend"
	"github.com/dshills/codepane/internal/renderer/core"
)

// editorKeys maps backend keys to the editor keys they trigger.
var editorKeys = map[backend.Key]editor.Key{
	backend.KeyUp:        editor.KeyUp,
	backend.KeyDown:      editor.KeyDown,
	backend.KeyLeft:      editor.KeyLeft,
	backend.KeyRight:     editor.KeyRight,
	backend.KeyBackspace: editor.KeyBackspace,
	backend.KeyEnter:     editor.KeyEnter,
	backend.KeyEscape:    editor.KeyEscape,
}

func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.resize(ev.Width, ev.Height)
		return nil
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		app.handleMouseEvent(ev)
		return nil
	case backend.EventInterrupt:
		return app.handleInterrupt(ev)
	default:
		return nil
	}
}

func (app *Application) resize(w, h int) {
	s := app.Config().Editor.Scale
	app.editor.Resize(core.Size{W: float64(w) * Cell.W * s, H: float64(h) * Cell.H * s})
}

func (app *Application) handleKeyEvent(ev backend.Event) error {
	if k, ok := editorKeys[ev.Key]; ok {
		app.editor.HandleKey(k)
		return nil
	}

	view := app.editor.Viewport()
	switch ev.Key {
	case backend.KeyCtrlC, backend.KeyCtrlQ:
		return ErrQuit
	case backend.KeyRune:
		app.editor.InsertChar(ev.Rune)
	case backend.KeyTab:
		app.editor.InsertChar('\t')
	case backend.KeyPageUp:
		app.editor.Scroll(view.PageDelta(-1))
	case backend.KeyPageDown:
		app.editor.Scroll(view.PageDelta(1))
	default:
		app.log.Debug("unbound key %d", ev.Key)
	}
	return nil
}

func (app *Application) handleMouseEvent(ev backend.Event) {
	s := app.Config().Editor.Scale
	n := app.Config().Editor.ScrollLines
	view := app.editor.Viewport()

	switch ev.MouseButton {
	case backend.MouseLeft:
		app.editor.Click(core.Pt(float64(ev.MouseX)*Cell.W*s, float64(ev.MouseY)*Cell.H*s))
	case backend.MouseWheelUp:
		app.editor.Scroll(view.LinesDelta(-n))
	case backend.MouseWheelDown:
		app.editor.Scroll(view.LinesDelta(n))
	case backend.MouseWheelLeft:
		app.editor.Scroll(core.Pt(float64(n)*Cell.W*s, 0))
	case backend.MouseWheelRight:
		app.editor.Scroll(core.Pt(-float64(n)*Cell.W*s, 0))
	}
}

func (app *Application) handleInterrupt(ev backend.Event) error {
	switch req := ev.Data.(type) {
	case quitRequest:
		return ErrQuit
	case reloadRequest:
		app.reload(req)
	}
	return nil
}

// reload re-reads the config file. A file that fails to load or validate
// leaves the current settings in place.
func (app *Application) reload(req reloadRequest) {
	cfg, err := app.opts.LoadConfig(app.opts.ConfigPath)
	if err != nil {
		opErr := NewOperationError("reload", app.opts.ConfigPath, err)
		if req.event.Op != 0 {
			opErr = opErr.WithContext(req.event.Op.String())
		}
		app.log.Warn("config reload: %v", opErr)
		return
	}
	app.apply(cfg)
	app.log.Info("config reloaded after %s", req.event.Op)
}

// apply brings the editor in line with cfg.
func (app *Application) apply(cfg *config.Config) {
	old := app.Config()

	if theme, err := cfg.Theme.Resolve(app.themes); err != nil {
		app.log.Warn("theme kept: %v", err)
	} else {
		app.editor.SetTheme(theme)
	}
	app.editor.SetGutter(cfg.Gutter.Options())
	app.editor.SetAutoReveal(cfg.Editor.AutoReveal, cfg.Editor.Margins.Viewport())

	if cfg.Editor.TabWidth != old.Editor.TabWidth || cfg.Editor.Scale != old.Editor.Scale {
		app.editor.SetMeasurer(app.measurer(cfg), cfg.Editor.Scale)
		app.painter = app.newPainter(cfg)
	}
	app.log.SetLevel(cfg.LogLevel())

	app.mu.Lock()
	app.cfg = cfg
	app.mu.Unlock()

	if cfg.Editor.Scale != old.Editor.Scale {
		size := app.editor.Viewport().Size()
		ratio := cfg.Editor.Scale / old.Editor.Scale
		app.editor.Resize(core.Size{W: size.W * ratio, H: size.H * ratio})
	}
}
