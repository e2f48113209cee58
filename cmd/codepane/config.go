package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/codepane/internal/config"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	var (
		format   string
		settings bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration codepane would run with: defaults overlaid with
the config file and CODEPANE_ environment variables.

Every setting can be overridden from the environment by upper-casing its
path and joining with underscores, e.g. editor.tab_width becomes
CODEPANE_EDITOR_TAB_WIDTH.

Examples:
  # Start a config file from the current settings
  codepane config > ~/.config/codepane/config.toml

  # List the settings the environment can override
  codepane config --settings`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if settings {
				for _, path := range config.Settings() {
					fmt.Fprintf(out, "%-24s %s\n", path, envName(path))
				}
				return nil
			}

			cfg, err := root.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			data, err := cfg.Encode(format)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml or yaml")
	cmd.Flags().BoolVar(&settings, "settings", false, "list overridable settings and their environment names")
	return cmd
}

// envName returns the environment variable that overrides a setting path.
func envName(path string) string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(path, ".", "_"))
}
