package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/codepane/internal/config/loader"
	"github.com/dshills/codepane/internal/logging"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "CODEPANE_"

// Config holds all codepane settings.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Gutter GutterConfig `toml:"gutter" yaml:"gutter"`
	Theme  ThemeConfig  `toml:"theme" yaml:"theme"`
	Font   FontConfig   `toml:"font" yaml:"font"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// EditorConfig holds the editing surface settings.
type EditorConfig struct {
	// Scale multiplies every measured length.
	Scale float64 `toml:"scale" yaml:"scale"`

	// TabWidth is the distance between tab stops in cells.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`

	// CursorWidth is the width of the cursor rectangle.
	CursorWidth float64 `toml:"cursor_width" yaml:"cursor_width"`

	// AutoReveal scrolls the cursor into view after keyboard input.
	AutoReveal bool `toml:"auto_reveal" yaml:"auto_reveal"`

	// ScrollLines is the number of lines one wheel step scrolls.
	ScrollLines int `toml:"scroll_lines" yaml:"scroll_lines"`

	// Margins are kept around the cursor when AutoReveal is on.
	Margins MarginsConfig `toml:"margins" yaml:"margins"`
}

// MarginsConfig holds the reveal margins in rows and width units.
type MarginsConfig struct {
	Top    int     `toml:"top" yaml:"top"`
	Bottom int     `toml:"bottom" yaml:"bottom"`
	Left   float64 `toml:"left" yaml:"left"`
	Right  float64 `toml:"right" yaml:"right"`
}

// GutterConfig holds the line number gutter settings.
type GutterConfig struct {
	Show      bool    `toml:"show" yaml:"show"`
	MinDigits int     `toml:"min_digits" yaml:"min_digits"`
	Padding   float64 `toml:"padding" yaml:"padding"`
	Margin    float64 `toml:"margin" yaml:"margin"`

	// Mode is "absolute", "relative" or "hybrid".
	Mode string `toml:"mode" yaml:"mode"`
}

// ThemeConfig selects a theme and overrides some of its colors.
type ThemeConfig struct {
	// Name is a built-in theme or a chroma style name.
	Name string `toml:"name" yaml:"name"`

	Background string `toml:"background,omitempty" yaml:"background,omitempty"`
	Foreground string `toml:"foreground,omitempty" yaml:"foreground,omitempty"`
	Cursor     string `toml:"cursor,omitempty" yaml:"cursor,omitempty"`
	Gutter     string `toml:"gutter,omitempty" yaml:"gutter,omitempty"`

	// Colors maps category names such as "keyword" or "string.special"
	// to hex colors.
	Colors map[string]string `toml:"colors,omitempty" yaml:"colors,omitempty"`
}

// FontConfig selects the face used for pixel measurement.
type FontConfig struct {
	// Path is a TrueType or OpenType file. Empty selects the built-in face.
	Path string `toml:"path,omitempty" yaml:"path,omitempty"`

	// Size is the face size in points.
	Size float64 `toml:"size" yaml:"size"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `toml:"level" yaml:"level"`

	// File receives log lines. Empty disables logging.
	File string `toml:"file,omitempty" yaml:"file,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Scale:       1,
			TabWidth:    4,
			CursorWidth: 2,
			AutoReveal:  true,
			ScrollLines: 3,
			Margins:     MarginsConfig{Top: 2, Bottom: 2, Left: 4, Right: 4},
		},
		Gutter: GutterConfig{
			Show:      true,
			MinDigits: 1,
			Padding:   10,
			Margin:    10,
			Mode:      "absolute",
		},
		Theme: ThemeConfig{Name: "codepane"},
		Font:  FontConfig{Size: 14},
		Log:   LogConfig{Level: "info"},
	}
}

// DefaultPath returns the user config file location, or "" when the
// user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "codepane", "config.toml")
}

// Load returns the defaults overlaid with the file at path and the
// CODEPANE_ environment variables. An empty path tries DefaultPath and
// tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	return LoadFS(loader.DefaultFS(), path, os.Environ())
}

// LoadFS is Load reading from fsys with the given environment.
func LoadFS(fsys loader.FileSystem, path string, environ []string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		err := loader.Load(fsys, path, cfg)
		switch {
		case err == nil:
		case !explicit && errors.Is(err, ErrFileNotFound):
		default:
			return nil, err
		}
	}

	env := loader.NewEnvLoader(EnvPrefix).WithEnviron(environ).Load()
	if err := cfg.ApplyOverrides(env); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode renders cfg in the named format ("toml" or "yaml").
func (c *Config) Encode(format string) ([]byte, error) {
	f, err := loader.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return loader.Encode(c, f)
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	if c.Editor.Scale <= 0 {
		fail("editor.scale", "must be positive", c.Editor.Scale)
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		fail("editor.tab_width", "must be between 1 and 16", c.Editor.TabWidth)
	}
	if c.Editor.CursorWidth <= 0 {
		fail("editor.cursor_width", "must be positive", c.Editor.CursorWidth)
	}
	if c.Editor.ScrollLines < 1 {
		fail("editor.scroll_lines", "must be at least 1", c.Editor.ScrollLines)
	}
	m := c.Editor.Margins
	if m.Top < 0 || m.Bottom < 0 || m.Left < 0 || m.Right < 0 {
		fail("editor.margins", "must not be negative", m)
	}

	if c.Gutter.MinDigits < 0 || c.Gutter.MinDigits > 10 {
		fail("gutter.min_digits", "must be between 0 and 10", c.Gutter.MinDigits)
	}
	if c.Gutter.Padding < 0 {
		fail("gutter.padding", "must not be negative", c.Gutter.Padding)
	}
	if c.Gutter.Margin < 0 {
		fail("gutter.margin", "must not be negative", c.Gutter.Margin)
	}
	switch c.Gutter.Mode {
	case "", "absolute", "relative", "hybrid":
	default:
		fail("gutter.mode", `must be "absolute", "relative" or "hybrid"`, c.Gutter.Mode)
	}

	errs = append(errs, c.Theme.validateColors()...)

	if c.Font.Size <= 0 {
		fail("font.size", "must be positive", c.Font.Size)
	}

	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		fail("log.level", "unknown level", c.Log.Level)
	}

	return errors.Join(errs...)
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}
