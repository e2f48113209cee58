package highlight

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ErrUnsupportedLanguage is returned when no grammar handles a file.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Grammar produces highlight events for source text.
type Grammar interface {
	// Language returns the grammar's language name.
	Language() string

	// Events tokenizes src and returns its event stream.
	Events(src []byte) ([]Event, error)
}

// ChromaGrammar is a Grammar driven by a chroma lexer.
type ChromaGrammar struct {
	lexer chroma.Lexer
}

// NewChromaGrammar wraps lexer. Adjacent tokens of the same type are
// coalesced.
func NewChromaGrammar(lexer chroma.Lexer) *ChromaGrammar {
	return &ChromaGrammar{lexer: chroma.Coalesce(lexer)}
}

// ForFile selects a grammar from the file name of path.
func ForFile(path string) (Grammar, error) {
	name := filepath.Base(path)
	if name == "" || name == "." {
		return nil, fmt.Errorf("%q: %w", path, ErrUnsupportedLanguage)
	}
	lexer := lexers.Match(name)
	if lexer == nil {
		return nil, fmt.Errorf("%q: %w", path, ErrUnsupportedLanguage)
	}
	return NewChromaGrammar(lexer), nil
}

// ForLanguage selects a grammar by language name or alias, such as "go"
// or "python".
func ForLanguage(name string) (Grammar, error) {
	lexer := lexers.Get(name)
	if lexer == nil {
		return nil, fmt.Errorf("language %q: %w", name, ErrUnsupportedLanguage)
	}
	return NewChromaGrammar(lexer), nil
}

// Language implements Grammar.
func (g *ChromaGrammar) Language() string {
	return g.lexer.Config().Name
}

// Events implements Grammar. Every token produces the start events of its
// scope chain, one source event, and a matching end for each start.
func (g *ChromaGrammar) Events(src []byte) ([]Event, error) {
	it, err := g.lexer.Tokenise(nil, string(src))
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", g.Language(), err)
	}

	var events []Event
	offset := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		n := len(tok.Value)
		if n == 0 {
			continue
		}
		chain := scopeChain(tok)
		for _, name := range chain {
			events = append(events, Start(name))
		}
		events = append(events, Source(offset, offset+n))
		for range chain {
			events = append(events, End())
		}
		offset += n
	}
	return events, nil
}

// scopeChain returns the capture names for a token, outermost first.
func scopeChain(tok chroma.Token) []string {
	t := tok.Type
	switch {
	case t == chroma.KeywordType:
		return []string{"type.builtin"}
	case t == chroma.KeywordConstant:
		return []string{"constant.builtin"}
	case t.InCategory(chroma.Keyword), t == chroma.OperatorWord:
		return []string{"keyword"}

	case t == chroma.NameBuiltin, t == chroma.NameFunctionMagic:
		return []string{"function.builtin"}
	case t == chroma.NameBuiltinPseudo, t == chroma.NameVariableMagic:
		return []string{"variable.builtin"}
	case t == chroma.NameClass, t == chroma.NameException, t == chroma.NameNamespace:
		return []string{"type"}
	case t == chroma.NameFunction:
		return []string{"function"}
	case t == chroma.NameDecorator, t == chroma.NameAttribute:
		return []string{"attribute"}
	case t == chroma.NameTag:
		return []string{"tag"}
	case t == chroma.NameConstant, t == chroma.NameEntity:
		return []string{"constant"}
	case t == chroma.NameLabel:
		return []string{"label"}
	case t == chroma.NameProperty:
		return []string{"property"}
	case t == chroma.NameVariable, t == chroma.NameVariableAnonymous, t == chroma.NameVariableClass,
		t == chroma.NameVariableGlobal, t == chroma.NameVariableInstance:
		return []string{"variable"}

	case t == chroma.LiteralStringEscape:
		return []string{"string", "escape"}
	case t == chroma.LiteralStringInterpol:
		return []string{"string", "embedded"}
	case t == chroma.LiteralStringRegex, t == chroma.LiteralStringSymbol:
		return []string{"string.special"}
	case t.InSubCategory(chroma.LiteralString):
		return []string{"string"}
	case t.InSubCategory(chroma.LiteralNumber):
		return []string{"number"}
	case t.InCategory(chroma.Literal):
		return []string{"constant"}

	case t.InCategory(chroma.Operator):
		return []string{"operator"}
	case t == chroma.Punctuation:
		if strings.Trim(tok.Value, "()[]{}") == "" {
			return []string{"punctuation.bracket"}
		}
		return []string{"punctuation.delimiter"}

	case t == chroma.CommentPreproc, t == chroma.CommentPreprocFile:
		return []string{"function.macro"}
	case t.InCategory(chroma.Comment):
		return []string{"comment"}

	case t == chroma.GenericHeading, t == chroma.GenericSubheading:
		return []string{"tag"}
	}
	return nil
}
