package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/codepane/internal/app"
	"github.com/dshills/codepane/internal/config"
	"github.com/dshills/codepane/internal/logging"
	"github.com/dshills/codepane/internal/renderer/backend"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
	logFile    string
	noWatch    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "codepane [file]",
		Short: "A small terminal code editor",
		Long: `codepane edits one file in the terminal with syntax highlighting,
line numbers and mouse scrolling.

Settings come from ~/.config/codepane/config.toml (or --config), overridden
by CODEPANE_SECTION_KEY environment variables. The config file is watched
and changes apply without a restart.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runEditor(opts, path)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default: ~/.config/codepane/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"log level: debug, info, warn or error (overrides the config)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "",
		"write logs to this file (overrides the config)")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false,
		"do not reload the config file when it changes")

	cmd.AddCommand(newFrameCmd(opts), newSpansCmd(), newConfigCmd(opts))
	return cmd
}

// loadConfig reads the config and applies the logging flags on top.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		if err := cfg.Set("log.level", o.logLevel); err != nil {
			return nil, err
		}
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// watchPath returns the config file to watch, or "" when there is none.
func (o *rootOptions) watchPath() string {
	if o.noWatch {
		return ""
	}
	path := o.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// newLogger builds the session logger. The terminal owns stderr while the
// editor runs, so without a log file output is discarded.
func newLogger(cfg *config.Config) (*logging.Logger, io.Closer, error) {
	if cfg.Log.File == "" {
		return logging.Nop(), nopCloser{}, nil
	}
	f, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(logging.Config{
		Level:   cfg.LogLevel(),
		Output:  f,
		Prefix:  "codepane",
		Session: true,
	})
	return log, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func runEditor(opts *rootOptions, path string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	watch := opts.watchPath()
	application, err := app.New(app.Options{
		Path:       path,
		Config:     cfg,
		ConfigPath: watch,
		Watch:      watch != "",
		Logger:     log,
	})
	if err != nil {
		return err
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	if err := application.SetBackend(term); err != nil {
		return err
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		return err
	}
	return nil
}
