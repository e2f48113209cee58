package loader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

type sample struct {
	Editor struct {
		TabWidth int     `toml:"tab_width" yaml:"tab_width"`
		Scale    float64 `toml:"scale" yaml:"scale"`
	} `toml:"editor" yaml:"editor"`
	Name string `toml:"name" yaml:"name"`
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"codepane.toml", FormatTOML, false},
		{"/etc/codepane.TOML", FormatTOML, false},
		{"codepane.yaml", FormatYAML, false},
		{"codepane.yml", FormatYAML, false},
		{"codepane.json", 0, true},
		{"codepane", 0, true},
	}

	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("FormatOf(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("FormatOf(%q) = %v, %v; want %v", tt.path, got, err, tt.want)
		}
	}
}

func TestLoadKeepsUnsetFields(t *testing.T) {
	fsys := fstest.MapFS{
		"a.toml": {Data: []byte("[editor]\ntab_width = 8\n")},
		"a.yaml": {Data: []byte("editor:\n  tab_width: 2\n")},
	}

	for _, path := range []string{"a.toml", "a.yaml"} {
		var s sample
		s.Editor.Scale = 1.5
		s.Name = "default"
		if err := Load(fsys, path, &s); err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
		if s.Editor.Scale != 1.5 || s.Name != "default" {
			t.Errorf("%s: defaults overwritten: %+v", path, s)
		}
	}

	var s sample
	if err := Load(fsys, "a.toml", &s); err != nil {
		t.Fatal(err)
	}
	if s.Editor.TabWidth != 8 {
		t.Errorf("TabWidth = %d, want 8", s.Editor.TabWidth)
	}
}

func TestLoadNotFound(t *testing.T) {
	var s sample
	err := Load(fstest.MapFS{}, "missing.toml", &s)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.toml": {Data: []byte("name = \"x\"\n\n[editor]\ntab_widht = 8\n")},
		"bad.yaml": {Data: []byte("editor:\n  tab_widht: 8\n")},
	}

	for _, path := range []string{"bad.toml", "bad.yaml"} {
		var s sample
		err := Load(fsys, path, &s)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("%s: error = %v, want *ParseError", path, err)
		}
		if pe.Path != path {
			t.Errorf("%s: Path = %q", path, pe.Path)
		}
		if pe.Line == 0 {
			t.Errorf("%s: no line in %v", path, pe)
		}
		if !strings.Contains(pe.Error(), "tab_widht") {
			t.Errorf("%s: error %q does not name the key", path, pe.Error())
		}
	}
}

func TestLoadSyntaxError(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.toml": {Data: []byte("[editor\n")},
		"bad.yaml": {Data: []byte("editor:\n  tab_width: [\n")},
	}
	for _, path := range []string{"bad.toml", "bad.yaml"} {
		var s sample
		var pe *ParseError
		if err := Load(fsys, path, &s); !errors.As(err, &pe) {
			t.Errorf("%s: error = %v, want *ParseError", path, err)
		}
	}
}

func TestDecodeEmptyYAML(t *testing.T) {
	var s sample
	s.Name = "kept"
	if err := Decode("empty", nil, FormatYAML, &s); err != nil {
		t.Fatalf("Decode(empty) error = %v", err)
	}
	if s.Name != "kept" {
		t.Errorf("Name = %q", s.Name)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var in sample
	in.Editor.TabWidth = 3
	in.Editor.Scale = 2
	in.Name = "pane"

	for _, f := range []Format{FormatTOML, FormatYAML} {
		data, err := Encode(in, f)
		if err != nil {
			t.Fatalf("Encode(%s): %v", f, err)
		}
		var out sample
		if err := Decode("encoded", data, f, &out); err != nil {
			t.Fatalf("Decode(%s): %v\n%s", f, err, data)
		}
		if out != in {
			t.Errorf("%s round trip = %+v, want %+v", f, out, in)
		}
	}
}

func TestParseErrorFormat(t *testing.T) {
	tests := []struct {
		err  ParseError
		want string
	}{
		{ParseError{Path: "a", Line: 2, Column: 3, Message: "m"}, "parse error in a at line 2, column 3: m"},
		{ParseError{Path: "a", Line: 2, Message: "m"}, "parse error in a at line 2: m"},
		{ParseError{Path: "a", Message: "m"}, "parse error in a: m"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestEnvLoader(t *testing.T) {
	l := NewEnvLoader("CODEPANE_").WithEnviron([]string{
		"CODEPANE_EDITOR_TAB_WIDTH=8",
		"CODEPANE_LOG_LEVEL=debug",
		"CODEPANE_THEME_NAME=",
		"CODEPANE_BROKEN",
		"CODEPANE_X=1",
		"HOME=/root",
		"NO_COLOR=1",
	})
	l.AddMapping("NO_COLOR", "theme.monochrome")

	got := l.Load()
	want := map[string]string{
		"editor.tab_width": "8",
		"log.level":        "debug",
		"theme.name":       "",
		"theme.monochrome": "1",
	}
	if len(got) != len(want) {
		t.Fatalf("Load() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}
