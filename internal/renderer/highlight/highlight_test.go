package highlight

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// textSource adapts a string to Text.
type textSource string

var _ Text = textSource("")

func (s textSource) Bytes() []byte { return []byte(s) }
func (s textSource) Len() int      { return utf8.RuneCountInString(string(s)) }
func (s textSource) ByteToChar(b int) int {
	b = clamp(b, 0, len(s))
	return utf8.RuneCountInString(string(s)[:b])
}

func identity(b int) int { return b }

func TestCategoryNames(t *testing.T) {
	assert.Len(t, Categories(), 32)
	for _, c := range Categories() {
		got, ok := CategoryFromName(c.String())
		assert.True(t, ok, c.String())
		assert.Equal(t, c, got)
	}

	_, ok := CategoryFromName("keyword.control")
	assert.False(t, ok)
	assert.Equal(t, "none", CategoryNone.String())
	assert.Equal(t, "string.special", CategoryStringSpecial.String())
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name    string
		events  []Event
		charLen int
		want    []Span
	}{
		{
			name:    "no events",
			charLen: 3,
			want:    []Span{{0, 3, CategoryNone}},
		},
		{
			name:    "empty buffer",
			charLen: 0,
			want:    nil,
		},
		{
			name: "flat",
			events: []Event{
				Start("keyword"), Source(0, 4), End(),
				Source(4, 5),
				Start("string"), Source(5, 8), End(),
			},
			charLen: 8,
			want: []Span{
				{0, 4, CategoryKeyword},
				{4, 5, CategoryNone},
				{5, 8, CategoryString},
			},
		},
		{
			name: "innermost wins",
			events: []Event{
				Start("string"), Source(0, 2),
				Start("escape"), Source(2, 4), End(),
				Source(4, 5), End(),
			},
			charLen: 5,
			want: []Span{
				{0, 2, CategoryString},
				{2, 4, CategoryEscape},
				{4, 5, CategoryString},
			},
		},
		{
			name: "unknown names render as none",
			events: []Event{
				Start("keyword.control"), Source(0, 2), End(),
				Source(2, 3),
			},
			charLen: 3,
			want:    []Span{{0, 3, CategoryNone}},
		},
		{
			name: "unknown inner name keeps the enclosing category",
			events: []Event{
				Start("string"), Source(0, 1),
				Start("string.doc"), Source(1, 3), End(),
				Source(3, 4), End(),
			},
			charLen: 4,
			want:    []Span{{0, 4, CategoryString}},
		},
		{
			name: "adjacent equal spans merge",
			events: []Event{
				Start("number"), Source(0, 1), End(),
				Start("number"), Source(1, 2), End(),
			},
			charLen: 2,
			want:    []Span{{0, 2, CategoryNumber}},
		},
		{
			name: "gap is filled and overflow clamped",
			events: []Event{
				Start("comment"), Source(2, 9), End(),
			},
			charLen: 5,
			want: []Span{
				{0, 2, CategoryNone},
				{2, 5, CategoryComment},
			},
		},
		{
			name: "unbalanced end is ignored",
			events: []Event{
				End(), Start("label"), Source(0, 1), End(), End(),
			},
			charLen: 1,
			want:    []Span{{0, 1, CategoryLabel}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.events, identity, tt.charLen))
		})
	}
}

func TestReduceConvertsBytesToChars(t *testing.T) {
	src := textSource("\"\u00e9\"")
	events := []Event{Start("string"), Source(0, 4), End()}

	spans := Reduce(events, src.ByteToChar, src.Len())
	assert.Equal(t, []Span{{0, 3, CategoryString}}, spans)
}

func TestClip(t *testing.T) {
	spans := []Span{{0, 4, CategoryKeyword}, {4, 5, CategoryNone}, {5, 9, CategoryString}}

	assert.Equal(t, []Span{{2, 4, CategoryKeyword}, {4, 5, CategoryNone}, {5, 6, CategoryString}}, Clip(spans, 2, 6))
	assert.Equal(t, []Span{{5, 9, CategoryString}}, Clip(spans, 5, 20))
	assert.Empty(t, Clip(spans, 9, 12))
	assert.Empty(t, Clip(spans, 3, 3))
}

func TestForFile(t *testing.T) {
	for _, path := range []string{"main.go", "a.py", "lib.rs", "x.cpp", "y.cc", "App.java", "app.js", "m.ts", "v.ml"} {
		g, err := ForFile(path)
		require.NoError(t, err, path)
		assert.NotEmpty(t, g.Language(), path)
	}

	_, err := ForFile("notes.unknownext")
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))

	_, err = ForLanguage("no-such-language")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func spanText(src string, s Span) string {
	r := []rune(src)
	return string(r[s.Start:s.End])
}

func TestChromaGrammarPython(t *testing.T) {
	src := "def f():\n    return \"a\\n\"\n"
	h, err := NewForFile("script.py")
	require.NoError(t, err)
	assert.Equal(t, "Python", h.Language())

	spans, err := h.Generate(textSource(src))
	require.NoError(t, err)
	assertCoverage(t, spans, utf8.RuneCountInString(src))

	var keywords, escapes []string
	for _, s := range spans {
		switch s.Category {
		case CategoryKeyword:
			keywords = append(keywords, spanText(src, s))
		case CategoryEscape:
			escapes = append(escapes, spanText(src, s))
		}
	}
	assert.Equal(t, []string{"def", "return"}, keywords)
	assert.Equal(t, []string{`\n`}, escapes)
}

func TestChromaGrammarEventsBalanced(t *testing.T) {
	g, err := ForLanguage("go")
	require.NoError(t, err)

	events, err := g.Events([]byte("package main\n\nfunc main() { x := 1 }\n"))
	require.NoError(t, err)

	depth := 0
	for _, e := range events {
		switch e.Kind {
		case EventStart:
			depth++
		case EventEnd:
			depth--
			require.GreaterOrEqual(t, depth, 0)
		}
	}
	assert.Equal(t, 0, depth)
}

func TestHighlighterPlain(t *testing.T) {
	h, err := NewForFile("README.unknownext")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.Equal(t, "", h.Language())

	spans, err := h.Generate(textSource("hello"))
	require.NoError(t, err)
	assert.Equal(t, []Span{{0, 5, CategoryNone}}, spans)
}

type failingGrammar struct{}

func (failingGrammar) Language() string { return "broken" }
func (failingGrammar) Events([]byte) ([]Event, error) {
	return nil, errors.New("boom")
}

func TestHighlighterGrammarFailure(t *testing.T) {
	spans, err := New(failingGrammar{}).Generate(textSource("abc"))
	assert.Error(t, err)
	assert.Equal(t, Plain(3), spans)
}

func TestTheme(t *testing.T) {
	theme := DefaultTheme()
	assert.Equal(t, theme.Foreground, theme.ColorFor(CategoryNone))
	assert.InDelta(t, 0.8, theme.ColorFor(CategoryKeyword).R, 1e-6)

	clone := theme.Clone()
	require.NoError(t, clone.SetColor("keyword", theme.ColorFor(CategoryString)))
	assert.Equal(t, theme.ColorFor(CategoryString), clone.ColorFor(CategoryKeyword))
	assert.NotEqual(t, theme.ColorFor(CategoryKeyword), clone.ColorFor(CategoryKeyword))

	assert.Error(t, clone.SetColor("nope", theme.Foreground))
}

func TestThemeRegistry(t *testing.T) {
	r := NewThemeRegistry()

	th, err := r.Get("codepane")
	require.NoError(t, err)
	assert.Equal(t, "codepane", th.Name)

	mono, err := r.Get("monokai")
	require.NoError(t, err)
	assert.Equal(t, "monokai", mono.Name)
	assert.Contains(t, r.Names(), "monokai")

	_, err = r.Get("no-such-theme")
	assert.Error(t, err)
}

// fataler is the part of testing.TB that rapid.T also provides.
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func assertCoverage(t fataler, spans []Span, charLen int) {
	t.Helper()
	pos := 0
	for i, s := range spans {
		if s.Start != pos || s.End <= s.Start {
			t.Fatalf("span %d = %+v, want start %d and non-empty", i, s, pos)
		}
		pos = s.End
	}
	if pos != charLen {
		t.Fatalf("spans cover [0,%d), want [0,%d)", pos, charLen)
	}
}

func TestGenerateCoverage(t *testing.T) {
	languages := []string{"go", "python", "rust", "javascript"}
	rapid.Check(t, func(t *rapid.T) {
		lang := rapid.SampledFrom(languages).Draw(t, "lang")
		src := rapid.StringMatching(`[a-z0-9 (){}"'\\/*#.,:;=+\n\té世]{0,120}`).Draw(t, "src")

		g, err := ForLanguage(lang)
		if err != nil {
			t.Fatal(err)
		}
		spans, err := New(g).Generate(textSource(src))
		if err != nil {
			t.Fatal(err)
		}
		assertCoverage(t, spans, utf8.RuneCountInString(src))
		if src != "" && len(spans) == 0 {
			t.Fatal("non-empty source produced no spans")
		}
	})
}
