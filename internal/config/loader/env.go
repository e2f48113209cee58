package loader

import (
	"os"
	"strings"
)

// EnvLoader reads configuration overrides from environment variables.
// CODEPANE_EDITOR_TAB_WIDTH maps to the path "editor.tab_width": the first
// word after the prefix is the section and the rest is the key.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "CODEPANE_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "CODEPANE_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: make(map[string]string),
		environ: os.Environ,
	}
}

// WithEnviron replaces the process environment with env, a list of
// KEY=value strings.
func (l *EnvLoader) WithEnviron(env []string) *EnvLoader {
	l.environ = func() []string { return env }
	return l
}

// AddMapping maps an environment variable to a path that the naming rule
// would not produce.
func (l *EnvLoader) AddMapping(envVar, path string) {
	l.mapping[envVar] = path
}

// Load returns the prefixed variables keyed by config path.
// Empty values are kept; they are not treated as unset.
func (l *EnvLoader) Load() map[string]string {
	out := make(map[string]string)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if path, mapped := l.mapping[name]; mapped {
			out[path] = value
			continue
		}
		if !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if path := l.envToPath(name); path != "" {
			out[path] = value
		}
	}
	return out
}

// envToPath converts CODEPANE_EDITOR_TAB_WIDTH to editor.tab_width.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}
