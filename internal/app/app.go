package app

import (
	"errors"
	"io/fs"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/codepane/internal/config"
	"github.com/dshills/codepane/internal/config/watcher"
	"github.com/dshills/codepane/internal/editor"
	"github.com/dshills/codepane/internal/logging"
	"github.com/dshills/codepane/internal/renderer/backend"
	"github.com/dshills/codepane/internal/renderer/core"
	"github.com/dshills/codepane/internal/renderer/highlight"
	"github.com/dshills/codepane/internal/renderer/measure"
)

// Cell is the size of one terminal cell in editor units. Gutter padding
// and margins from the config are expressed in these units, so the
// defaults of 10 become one cell each.
var Cell = core.Size{W: 10, H: 20}

// Measurement cache lifetimes.
const (
	measureExpiration = 5 * time.Minute
	measureCleanup    = 10 * time.Minute
)

// Options configures an Application.
type Options struct {
	// Path is the file to edit. A missing file starts an empty buffer.
	Path string

	// Config is the resolved configuration. Nil means config.Default().
	Config *config.Config

	// ConfigPath is reloaded on request and watched when Watch is set.
	ConfigPath string
	Watch      bool

	// LoadConfig reads ConfigPath on reload. Nil means config.Load.
	LoadConfig func(path string) (*config.Config, error)

	Logger *logging.Logger
}

// Application is a terminal editing session over one file.
type Application struct {
	mu sync.RWMutex

	opts    Options
	cfg     *config.Config
	log     *logging.Logger
	themes  *highlight.ThemeRegistry
	backend backend.Backend
	painter backend.Painter
	editor  *editor.Editor

	running atomic.Bool
}

// quitRequest and reloadRequest travel through the backend event queue
// as interrupt payloads.
type (
	quitRequest   struct{}
	reloadRequest struct{ event watcher.Event }
)

// New opens opts.Path and builds the editor.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:   opts,
		cfg:    opts.Config,
		log:    opts.Logger,
		themes: highlight.NewThemeRegistry(),
	}
	if app.cfg == nil {
		app.cfg = config.Default()
	}
	if app.log == nil {
		app.log = logging.Nop()
	}
	app.log = app.log.WithComponent("app")
	if app.opts.LoadConfig == nil {
		app.opts.LoadConfig = config.Load
	}

	content, err := readContent(opts.Path)
	if err != nil {
		return nil, NewOperationError("open", opts.Path, err)
	}

	theme, err := app.cfg.Theme.Resolve(app.themes)
	if err != nil {
		return nil, NewOperationError("load", "theme", err)
	}

	editorOpts := []editor.Option{
		editor.WithScale(app.cfg.Editor.Scale),
		editor.WithTheme(theme),
		editor.WithGutter(app.cfg.Gutter.Options()),
		editor.WithCursorWidth(app.cfg.Editor.CursorWidth),
		editor.WithLogger(opts.Logger),
	}
	if app.cfg.Editor.AutoReveal {
		editorOpts = append(editorOpts, editor.WithAutoReveal(app.cfg.Editor.Margins.Viewport()))
	}
	app.editor = editor.New(content, opts.Path, app.measurer(app.cfg), editorOpts...)
	app.painter = app.newPainter(app.cfg)

	lang := app.editor.Language()
	if lang == "" {
		lang = "plain"
	}
	buf := app.editor.Buffer()
	app.log.Info("opened %s (%s, %s, %d lines)", opts.Path, lang, buf.LineEnding(), buf.LineCount())
	return app, nil
}

func readContent(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (app *Application) measurer(cfg *config.Config) measure.Measurer {
	cells := &measure.Cells{CellWidth: Cell.W, CellHeight: Cell.H, TabWidth: cfg.Editor.TabWidth}
	return measure.NewCached(cells, measureExpiration, measureCleanup)
}

func (app *Application) newPainter(cfg *config.Config) backend.Painter {
	s := cfg.Editor.Scale
	return backend.Painter{
		TabWidth: cfg.Editor.TabWidth,
		Cell:     core.Size{W: Cell.W * s, H: Cell.H * s},
	}
}

// SetBackend sets the display. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Editor returns the editing core.
func (app *Application) Editor() *editor.Editor {
	return app.editor
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// Run initializes the backend and processes events until the user quits
// or Shutdown is called.
func (app *Application) Run() error {
	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}

	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()
	b.SetCursorStyle(backend.CursorBar)

	w, h := b.Size()
	app.resize(w, h)

	if app.opts.Watch && app.opts.ConfigPath != "" {
		if cw, err := app.watchConfig(b); err != nil {
			app.log.Warn("config watch disabled: %v", err)
		} else {
			defer cw.Close()
		}
	}

	return app.eventLoop(b)
}

// Shutdown asks a running event loop to return. It may be called from any
// goroutine.
func (app *Application) Shutdown() {
	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b != nil && app.running.Load() {
		b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: quitRequest{}})
	}
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

func (app *Application) watchConfig(b backend.Backend) (*watcher.Watcher, error) {
	return watcher.New(app.opts.ConfigPath,
		func(ev watcher.Event) {
			b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: reloadRequest{event: ev}})
		},
		watcher.WithErrorHandler(func(err error) {
			app.log.Warn("config watch: %v", err)
		}),
	)
}

func (app *Application) eventLoop(b backend.Backend) error {
	for {
		app.draw(b)

		err := app.dispatch(b.PollEvent())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// dispatch handles one event. A panic in a handler is logged and the
// session continues.
func (app *Application) dispatch(ev backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			app.log.Error("event %d: %v", ev.Type, NewRecoveredPanicError(r, string(debug.Stack())))
			err = nil
		}
	}()
	return app.handleBackendEvent(ev)
}

func (app *Application) draw(b backend.Backend) {
	app.painter.Paint(b, app.editor.Frame())
}
