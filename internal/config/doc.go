// Package config provides the configuration of codepane.
//
// Settings are resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← CODEPANE_SECTION_KEY
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/codepane/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Flags are applied by the command line front end; this package handles
// the lower three layers.
//
// # Sub-packages
//
//   - loader: Configuration file decoding (TOML, YAML) and environment variables
//   - watcher: File watching for live reload
//
// # Basic Usage
//
//	cfg, err := config.Load(path)
//	if err != nil {
//	    return err
//	}
//	theme, err := cfg.Theme.Resolve(highlight.NewThemeRegistry())
//
// # File Format
//
// TOML:
//
//	[editor]
//	tab_width = 4
//	auto_reveal = true
//
//	[gutter]
//	mode = "relative"
//
//	[theme]
//	name = "monokai"
//
//	[theme.colors]
//	keyword = "#ff00ff"
//
// YAML files use the same keys.
package config
