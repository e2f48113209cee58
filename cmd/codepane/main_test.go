package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codepane/internal/config"
	"github.com/dshills/codepane/internal/renderer/highlight"
)

// isolate points the user config directory at an empty temp dir.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolate(t)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigPrintsDefaults(t *testing.T) {
	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[editor]")
	assert.Contains(t, out, "tab_width = 4")
	assert.Contains(t, out, "codepane")
}

func TestConfigReadsFileAsYAML(t *testing.T) {
	path := writeFile(t, "codepane.toml", "[editor]\ntab_width = 8\n")

	out, err := execute(t, "config", "--config", path, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "tab_width: 8")
}

func TestConfigEnvironmentOverride(t *testing.T) {
	t.Setenv("CODEPANE_GUTTER_MODE", "relative")

	out, err := execute(t, "config", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "mode: relative")
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"config", "--format", "json"}},
		{"missing file", []string{"config", "--config", "/nonexistent/codepane.toml"}},
		{"bad log level", []string{"config", "--log-level", "loud"}},
		{"stray argument", []string{"config", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestConfigSettings(t *testing.T) {
	out, err := execute(t, "config", "--settings")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, len(config.Settings()))
	assert.Contains(t, out, "CODEPANE_EDITOR_TAB_WIDTH")
	assert.Contains(t, out, "CODEPANE_LOG_LEVEL")
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "CODEPANE_GUTTER_MIN_DIGITS", envName("gutter.min_digits"))
}

func TestSpansGo(t *testing.T) {
	path := writeFile(t, "main.go", "package main\n")

	out, err := execute(t, "spans", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Go\n"), out)
	assert.Contains(t, out, "keyword")
	assert.Contains(t, out, `"package"`)
}

func TestSpansPlainText(t *testing.T) {
	path := writeFile(t, "notes.unknownext", "hello")

	out, err := execute(t, "spans", path)
	require.NoError(t, err)
	assert.Equal(t, "# plain\n0-5  -  \"hello\"\n", out)
}

func TestCategoryName(t *testing.T) {
	assert.Equal(t, "-", categoryName(highlight.CategoryNone))
	assert.Equal(t, "keyword", categoryName(highlight.CategoryKeyword))
}

func TestSpansLanguageFlag(t *testing.T) {
	path := writeFile(t, "script", "def f(): pass\n")

	out, err := execute(t, "spans", path, "--language", "python")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Python\n"), out)

	_, err = execute(t, "spans", path, "--language", "no-such-language")
	assert.Error(t, err)
}

func TestFramePrintsRuns(t *testing.T) {
	path := writeFile(t, "notes.txt", "hello\nworld")

	out, err := execute(t, "frame", path, "--width", "200", "--height", "100")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "frame{lines=[0,2)"), lines[0])
	assert.Contains(t, lines[1], `"hello"`)
	assert.Contains(t, lines[2], `"world"`)
}

func TestFrameGutterRuns(t *testing.T) {
	path := writeFile(t, "notes.txt", "a\nb")

	out, err := execute(t, "frame", path, "--gutter-runs")
	require.NoError(t, err)
	assert.Contains(t, out, `gutter`)
	assert.Contains(t, out, `"1"`)
	assert.Contains(t, out, `"2"`)
}

func TestFrameScrollDown(t *testing.T) {
	path := writeFile(t, "notes.txt", strings.Repeat("line\n", 100))

	out, err := execute(t, "frame", path, "--height", "100", "--scroll-y", "1000")
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(out, "frame{lines=[0,"), out)
}

func TestFrameErrors(t *testing.T) {
	path := writeFile(t, "notes.txt", "x")

	_, err := execute(t, "frame", path, "--font", "/nonexistent/font.ttf")
	assert.Error(t, err)

	_, err = execute(t, "frame", "/nonexistent/notes.txt")
	assert.Error(t, err)

	_, err = execute(t, "frame")
	assert.Error(t, err)
}

func TestRootRejectsExtraArgs(t *testing.T) {
	_, err := execute(t, "a.txt", "b.txt")
	assert.Error(t, err)
}

func TestWatchPath(t *testing.T) {
	isolate(t)
	path := writeFile(t, "codepane.toml", "")

	opts := &rootOptions{configPath: path}
	assert.Equal(t, path, opts.watchPath())

	opts.noWatch = true
	assert.Empty(t, opts.watchPath())

	opts = &rootOptions{configPath: filepath.Join(t.TempDir(), "missing.toml")}
	assert.Empty(t, opts.watchPath())

	// No user config file exists in the isolated home.
	assert.Empty(t, (&rootOptions{}).watchPath())
}

func TestNewLoggerWritesToFile(t *testing.T) {
	cfg := config.Default()
	cfg.Log.File = filepath.Join(t.TempDir(), "codepane.log")
	cfg.Log.Level = "debug"

	log, closer, err := newLogger(cfg)
	require.NoError(t, err)
	log.Debug("hello %d", 1)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello 1")
	assert.Contains(t, string(data), "session=")
}
