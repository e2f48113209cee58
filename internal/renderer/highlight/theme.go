package highlight

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/dshills/codepane/internal/renderer/core"
)

// Theme defines the colors of a code pane.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Background is the pane background color.
	Background core.Color

	// Foreground is the color of text with no category.
	Foreground core.Color

	// Cursor is the cursor rectangle color.
	Cursor core.Color

	// Gutter is the line number color.
	Gutter core.Color

	// Colors holds one color per category. Index CategoryNone is unused.
	Colors [categoryCount]core.Color
}

// ColorFor returns the color of category c.
func (t *Theme) ColorFor(c Category) core.Color {
	if c == CategoryNone || c >= categoryCount {
		return t.Foreground
	}
	return t.Colors[c]
}

// SetColor overrides the color of the category named name.
func (t *Theme) SetColor(name string, color core.Color) error {
	c, ok := CategoryFromName(name)
	if !ok {
		return fmt.Errorf("unknown highlight category %q", name)
	}
	t.Colors[c] = color
	return nil
}

// Clone returns a copy of t that can be modified independently.
func (t *Theme) Clone() *Theme {
	c := *t
	return &c
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() *Theme {
	t := &Theme{
		Name:       "codepane",
		Background: core.RGBA(0.09, 0.09, 0.1, 1),
		Foreground: core.ColorText,
		Cursor:     core.RGBA(0.9, 0.9, 0.9, 0.8),
		Gutter:     core.RGBA(0.5, 0.5, 0.5, 1),
	}

	orange := core.RGBA(0.8, 0.47058824, 0.19607843, 1)
	teal := core.RGBA(0.278431371, 0.60784314, 0.49411765, 1)
	gold := core.RGBA(0.94117647, 0.77647059, 0.45490196, 1)
	sand := core.RGBA(0.91372549, 0.74509804, 0.40784314, 1)
	green := core.RGBA(0.50588235, 0.72941176, 0.34901961, 1)

	t.Colors = [categoryCount]core.Color{
		CategoryNone:                 core.ColorText,
		CategoryConstant:             core.RGBA(0.59607843, 0.4627451, 0.66666667, 1),
		CategoryConstantBuiltin:      core.RGBA(0.65882353, 0.33333333, 0.44705882, 1),
		CategoryTag:                  gold,
		CategoryType:                 gold,
		CategoryTypeBuiltin:          orange,
		CategoryConstructor:          sand,
		CategoryFunction:             core.ColorText,
		CategoryFunctionBuiltin:      core.ColorText,
		CategoryFunctionMethod:       sand,
		CategoryFunctionMacro:        core.RGBA(0.30588235, 0.67843137, 0.89803922, 1),
		CategoryProperty:             core.RGBA(0.59607843, 0.46666667, 0.66666667, 1),
		CategoryComment:              core.RGBA(0.47843137, 0.34509804, 0.5254902, 1),
		CategoryPunctuationBracket:   core.ColorText,
		CategoryPunctuationDelimiter: teal,
		CategoryPunctuationSpecial:   teal,
		CategoryVariable:             orange,
		CategoryVariableParameter:    core.RGBA(0.8, 0.4, 0.4, 1),
		CategoryVariableBuiltin:      orange,
		CategoryLabel:                core.RGBA(0.1254902, 0.6, 0.61568627, 1),
		CategoryKeyword:              orange,
		CategoryString:               green,
		CategoryStringSpecial:        green,
		CategoryEscape:               core.RGBA(0.52941176, 0.74117647, 0.77647059, 1),
		CategoryAttribute:            core.RGBA(0.83111111, 0.70980392, 0.16078431, 1),
		CategoryOperator:             teal,
		CategoryEmbedded:             teal,
		CategoryNumber:               teal,
		CategoryInjectionLanguage:    teal,
		CategoryInjectionContent:     teal,
		CategoryLocalScope:           teal,
		CategoryLocalDefinition:      teal,
		CategoryLocalReference:       teal,
	}
	return t
}

// representative maps each category to the chroma token type whose style
// entry best describes it.
var representative = [categoryCount]chroma.TokenType{
	CategoryNone:                 chroma.Text,
	CategoryConstant:             chroma.NameConstant,
	CategoryConstantBuiltin:      chroma.KeywordConstant,
	CategoryTag:                  chroma.NameTag,
	CategoryType:                 chroma.NameClass,
	CategoryTypeBuiltin:          chroma.KeywordType,
	CategoryConstructor:          chroma.NameClass,
	CategoryFunction:             chroma.NameFunction,
	CategoryFunctionBuiltin:      chroma.NameBuiltin,
	CategoryFunctionMethod:       chroma.NameFunction,
	CategoryFunctionMacro:        chroma.CommentPreproc,
	CategoryProperty:             chroma.NameProperty,
	CategoryComment:              chroma.Comment,
	CategoryPunctuationBracket:   chroma.Punctuation,
	CategoryPunctuationDelimiter: chroma.Punctuation,
	CategoryPunctuationSpecial:   chroma.Punctuation,
	CategoryVariable:             chroma.NameVariable,
	CategoryVariableParameter:    chroma.NameVariable,
	CategoryVariableBuiltin:      chroma.NameBuiltinPseudo,
	CategoryLabel:                chroma.NameLabel,
	CategoryKeyword:              chroma.Keyword,
	CategoryString:               chroma.LiteralString,
	CategoryStringSpecial:        chroma.LiteralStringRegex,
	CategoryEscape:               chroma.LiteralStringEscape,
	CategoryAttribute:            chroma.NameAttribute,
	CategoryOperator:             chroma.Operator,
	CategoryEmbedded:             chroma.LiteralStringInterpol,
	CategoryNumber:               chroma.LiteralNumber,
	CategoryInjectionLanguage:    chroma.Text,
	CategoryInjectionContent:     chroma.Text,
	CategoryLocalScope:           chroma.Text,
	CategoryLocalDefinition:      chroma.NameVariable,
	CategoryLocalReference:       chroma.NameVariable,
}

// ThemeFromStyle builds a theme from a named chroma style such as
// "monokai" or "dracula". Categories the style leaves uncolored use its
// foreground.
func ThemeFromStyle(name string) (*Theme, error) {
	style, ok := styles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown style %q", name)
	}

	base := DefaultTheme()
	t := &Theme{Name: name, Cursor: base.Cursor}

	bg := style.Get(chroma.Background)
	t.Background = colourOr(bg.Background, base.Background)
	t.Foreground = colourOr(bg.Colour, base.Foreground)
	t.Cursor = t.Foreground
	t.Gutter = colourOr(style.Get(chroma.LineNumbers).Colour, t.Foreground.Dim(0.4))

	for c := Category(0); c < categoryCount; c++ {
		t.Colors[c] = colourOr(style.Get(representative[c]).Colour, t.Foreground)
	}
	return t, nil
}

func colourOr(c chroma.Colour, fallback core.Color) core.Color {
	if !c.IsSet() {
		return fallback
	}
	return core.RGBA(float64(c.Red())/255, float64(c.Green())/255, float64(c.Blue())/255, 1)
}

// ThemeRegistry manages named themes.
type ThemeRegistry struct {
	mu     sync.RWMutex
	themes map[string]*Theme
}

// NewThemeRegistry creates a registry holding the default theme. Chroma
// styles are resolved on first lookup.
func NewThemeRegistry() *ThemeRegistry {
	r := &ThemeRegistry{themes: make(map[string]*Theme)}
	r.Register(DefaultTheme())
	return r
}

// Register adds or replaces a theme.
func (r *ThemeRegistry) Register(t *Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.themes[t.Name] = t
}

// Get returns a copy of the named theme.
func (r *ThemeRegistry) Get(name string) (*Theme, error) {
	r.mu.RLock()
	t, ok := r.themes[name]
	r.mu.RUnlock()
	if ok {
		return t.Clone(), nil
	}

	t, err := ThemeFromStyle(name)
	if err != nil {
		return nil, err
	}
	r.Register(t)
	return t.Clone(), nil
}

// Names returns the registered theme names and the available chroma
// styles, sorted.
func (r *ThemeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool, len(r.themes))
	names := make([]string, 0, len(r.themes)+len(styles.Registry))
	for name := range r.themes {
		seen[name] = true
		names = append(names, name)
	}
	for _, name := range styles.Names() {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
