package config

import (
	"fmt"
	"sort"

	"github.com/dshills/codepane/internal/renderer/core"
	"github.com/dshills/codepane/internal/renderer/gutter"
	"github.com/dshills/codepane/internal/renderer/highlight"
	"github.com/dshills/codepane/internal/renderer/viewport"
)

// Resolve looks up the named theme in reg and applies the overrides.
// Color failures match ErrInvalidColor.
func (t ThemeConfig) Resolve(reg *highlight.ThemeRegistry) (*highlight.Theme, error) {
	name := t.Name
	if name == "" {
		name = highlight.DefaultTheme().Name
	}
	theme, err := reg.Get(name)
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w", name, err)
	}

	for _, f := range t.fixedColors() {
		if f.value == "" {
			continue
		}
		c, err := parseColor("theme."+f.name, f.value)
		if err != nil {
			return nil, err
		}
		*f.dst(theme) = c
	}

	for _, name := range sortedKeys(t.Colors) {
		c, err := parseColor("theme.colors."+name, t.Colors[name])
		if err != nil {
			return nil, err
		}
		if err := theme.SetColor(name, c); err != nil {
			return nil, &ValidationError{Path: "theme.colors." + name, Message: err.Error(), Value: name}
		}
	}
	return theme, nil
}

type fixedColor struct {
	name  string
	value string
	dst   func(*highlight.Theme) *core.Color
}

func (t ThemeConfig) fixedColors() []fixedColor {
	return []fixedColor{
		{"background", t.Background, func(th *highlight.Theme) *core.Color { return &th.Background }},
		{"foreground", t.Foreground, func(th *highlight.Theme) *core.Color { return &th.Foreground }},
		{"cursor", t.Cursor, func(th *highlight.Theme) *core.Color { return &th.Cursor }},
		{"gutter", t.Gutter, func(th *highlight.Theme) *core.Color { return &th.Gutter }},
	}
}

// validateColors checks the override colors without resolving a theme.
func (t ThemeConfig) validateColors() []error {
	var errs []error
	for _, f := range t.fixedColors() {
		if f.value == "" {
			continue
		}
		if _, err := parseColor("theme."+f.name, f.value); err != nil {
			errs = append(errs, err)
		}
	}
	for _, name := range sortedKeys(t.Colors) {
		path := "theme.colors." + name
		if _, ok := highlight.CategoryFromName(name); !ok {
			errs = append(errs, &ValidationError{Path: path, Message: "unknown highlight category", Value: name})
			continue
		}
		if _, err := parseColor(path, t.Colors[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func parseColor(path, hex string) (core.Color, error) {
	c, err := core.ColorFromHex(hex)
	if err != nil {
		return core.Color{}, &ValidationError{Path: path, Message: err.Error(), Value: hex, Err: ErrInvalidColor}
	}
	return c, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Options returns the gutter settings. Colors come from the theme.
func (g GutterConfig) Options() gutter.Config {
	cfg := gutter.DefaultConfig()
	cfg.ShowLineNumbers = g.Show
	cfg.MinDigits = g.MinDigits
	cfg.Padding = g.Padding
	cfg.Margin = g.Margin
	cfg.Mode = gutter.ParseLineNumberMode(g.Mode)
	return cfg
}

// Viewport returns the margins in viewport form.
func (m MarginsConfig) Viewport() viewport.MarginConfig {
	return viewport.MarginConfig{Top: m.Top, Bottom: m.Bottom, Left: m.Left, Right: m.Right}
}
