package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type setter func(c *Config, value string) error

func setInt(field func(*Config) *int) setter {
	return func(c *Config, value string) error {
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}
}

func setFloat(field func(*Config) *float64) setter {
	return func(c *Config, value string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}
}

func setBool(field func(*Config) *bool) setter {
	return func(c *Config, value string) error {
		v, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}
}

func setString(field func(*Config) *string) setter {
	return func(c *Config, value string) error {
		*field(c) = value
		return nil
	}
}

// overrides lists the settings that can be set by path.
var overrides = map[string]setter{
	"editor.scale":        setFloat(func(c *Config) *float64 { return &c.Editor.Scale }),
	"editor.tab_width":    setInt(func(c *Config) *int { return &c.Editor.TabWidth }),
	"editor.cursor_width": setFloat(func(c *Config) *float64 { return &c.Editor.CursorWidth }),
	"editor.auto_reveal":  setBool(func(c *Config) *bool { return &c.Editor.AutoReveal }),
	"editor.scroll_lines": setInt(func(c *Config) *int { return &c.Editor.ScrollLines }),
	"gutter.show":         setBool(func(c *Config) *bool { return &c.Gutter.Show }),
	"gutter.min_digits":   setInt(func(c *Config) *int { return &c.Gutter.MinDigits }),
	"gutter.padding":      setFloat(func(c *Config) *float64 { return &c.Gutter.Padding }),
	"gutter.margin":       setFloat(func(c *Config) *float64 { return &c.Gutter.Margin }),
	"gutter.mode":         setString(func(c *Config) *string { return &c.Gutter.Mode }),
	"theme.name":          setString(func(c *Config) *string { return &c.Theme.Name }),
	"theme.background":    setString(func(c *Config) *string { return &c.Theme.Background }),
	"theme.foreground":    setString(func(c *Config) *string { return &c.Theme.Foreground }),
	"theme.cursor":        setString(func(c *Config) *string { return &c.Theme.Cursor }),
	"theme.gutter":        setString(func(c *Config) *string { return &c.Theme.Gutter }),
	"font.path":           setString(func(c *Config) *string { return &c.Font.Path }),
	"font.size":           setFloat(func(c *Config) *float64 { return &c.Font.Size }),
	"log.level":           setString(func(c *Config) *string { return &c.Log.Level }),
	"log.file":            setString(func(c *Config) *string { return &c.Log.File }),
}

// Set assigns the setting at path ("section.key") from its string form.
func (c *Config) Set(path, value string) error {
	set, ok := overrides[path]
	if !ok {
		return fmt.Errorf("unknown setting %q", path)
	}
	if err := set(c, value); err != nil {
		return &ValidationError{Path: path, Message: err.Error(), Value: value}
	}
	return nil
}

// ApplyOverrides calls Set for each path in values, in path order. It
// stops at the first failure.
func (c *Config) ApplyOverrides(values map[string]string) error {
	paths := make([]string, 0, len(values))
	for p := range values {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if err := c.Set(p, values[p]); err != nil {
			return err
		}
	}
	return nil
}

// Settings returns the paths accepted by Set, sorted.
func Settings() []string {
	paths := make([]string, 0, len(overrides))
	for p := range overrides {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
