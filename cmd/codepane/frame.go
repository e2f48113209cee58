package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/codepane/internal/config"
	"github.com/dshills/codepane/internal/editor"
	"github.com/dshills/codepane/internal/renderer/core"
	"github.com/dshills/codepane/internal/renderer/highlight"
	"github.com/dshills/codepane/internal/renderer/measure"
)

const (
	measureExpiration = 5 * time.Minute
	measureCleanup    = 10 * time.Minute
)

type frameOptions struct {
	width   float64
	height  float64
	font    string
	size    float64
	scrollX float64
	scrollY float64
	gutter  bool
}

func newFrameCmd(root *rootOptions) *cobra.Command {
	opts := &frameOptions{}

	cmd := &cobra.Command{
		Use:   "frame <file>",
		Short: "Print the drawable runs of one frame",
		Long: `Lay out a file in a pixel viewport and print the frame summary followed
by one line per text run: position, color and text.

Text is measured with the font given by --font (or font.path in the config).
Without a font the built-in 7x13 bitmap face is used.

Examples:
  # First screen of a file
  codepane frame main.go

  # Scrolled 200 pixels down in a narrow view
  codepane frame main.go --width 320 --scroll-y 200`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			e, err := openEditor(cfg, opts, args[0])
			if err != nil {
				return err
			}
			return writeFrame(cmd.OutOrStdout(), e.Frame(), opts.gutter)
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", editor.DefaultSize.W, "viewport width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", editor.DefaultSize.H, "viewport height in pixels")
	cmd.Flags().StringVar(&opts.font, "font", "", "TrueType or OpenType font file (overrides font.path)")
	cmd.Flags().Float64Var(&opts.size, "size", 0, "font size in points (overrides font.size)")
	cmd.Flags().Float64Var(&opts.scrollX, "scroll-x", 0, "scroll right by this many pixels")
	cmd.Flags().Float64Var(&opts.scrollY, "scroll-y", 0, "scroll down by this many pixels")
	cmd.Flags().BoolVar(&opts.gutter, "gutter-runs", false, "also print the line number runs")
	return cmd
}

// faceMeasurer returns the measurer for the configured font.
func faceMeasurer(cfg *config.Config, fontPath string, size float64) (measure.Measurer, error) {
	if fontPath == "" {
		fontPath = cfg.Font.Path
	}
	if size <= 0 {
		size = cfg.Font.Size
	}

	var m measure.Measurer
	if fontPath == "" {
		m = measure.NewBasicFace(cfg.Editor.TabWidth)
	} else {
		face, err := measure.LoadFace(fontPath, size, cfg.Editor.TabWidth)
		if err != nil {
			return nil, err
		}
		m = face
	}
	return measure.NewCached(m, measureExpiration, measureCleanup), nil
}

func openEditor(cfg *config.Config, opts *frameOptions, path string) (*editor.Editor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := faceMeasurer(cfg, opts.font, opts.size)
	if err != nil {
		return nil, err
	}
	theme, err := cfg.Theme.Resolve(highlight.NewThemeRegistry())
	if err != nil {
		return nil, err
	}

	e := editor.New(string(data), path, m,
		editor.WithScale(cfg.Editor.Scale),
		editor.WithSize(core.Size{W: opts.width, H: opts.height}),
		editor.WithTheme(theme),
		editor.WithGutter(cfg.Gutter.Options()),
		editor.WithCursorWidth(cfg.Editor.CursorWidth),
	)
	if opts.scrollX != 0 {
		e.Scroll(core.Pt(-opts.scrollX, 0))
	}
	if opts.scrollY != 0 {
		e.Scroll(core.Pt(0, -opts.scrollY))
	}
	return e, nil
}

func writeFrame(w io.Writer, f editor.Frame, gutterRuns bool) error {
	if _, err := fmt.Fprintln(w, f); err != nil {
		return err
	}
	if gutterRuns {
		for _, r := range f.Gutter {
			if _, err := fmt.Fprintf(w, "gutter %s\n", r); err != nil {
				return err
			}
		}
	}
	for _, r := range f.Runs {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return err
		}
	}
	return nil
}
