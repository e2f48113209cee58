package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/codepane/internal/engine/buffer"
	"github.com/dshills/codepane/internal/renderer/highlight"
)

func newSpansCmd() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "spans <file>",
		Short: "Print the highlight spans of a file",
		Long: `Classify a file and print one line per span: the char range, its
category and the text it covers.

The grammar is chosen from the file name unless --language is given.

Examples:
  codepane spans main.go
  codepane spans notes.txt --language markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			hl, err := newHighlighter(args[0], language)
			if err != nil {
				return err
			}

			buf := buffer.New(string(data))
			spans, err := hl.Generate(buf)
			if err != nil {
				return fmt.Errorf("highlight %s: %w", args[0], err)
			}

			text := []rune(buf.Text())
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "# %s\n", languageName(hl))
			for _, s := range spans {
				fmt.Fprintf(tw, "%d-%d\t%s\t%q\n", s.Start, s.End, categoryName(s.Category), string(text[s.Start:s.End]))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "grammar name (e.g. go, python)")
	return cmd
}

func newHighlighter(path, language string) (*highlight.Highlighter, error) {
	if language == "" {
		hl, _ := highlight.NewForFile(path)
		return hl, nil
	}
	g, err := highlight.ForLanguage(language)
	if err != nil {
		return nil, err
	}
	return highlight.New(g), nil
}

func languageName(hl *highlight.Highlighter) string {
	if name := hl.Language(); name != "" {
		return name
	}
	return "plain"
}

// categoryName returns the capture name, or "-" for unclassified text.
func categoryName(c highlight.Category) string {
	if c == highlight.CategoryNone {
		return "-"
	}
	return c.String()
}
