package highlight

import "fmt"

// Text is the content a Highlighter classifies.
type Text interface {
	// Bytes returns the UTF-8 content.
	Bytes() []byte
	// ByteToChar converts a byte offset of the content to a char offset.
	ByteToChar(b int) int
	// Len returns the content length in chars.
	Len() int
}

// Highlighter produces spans for a whole source with one grammar.
// A Highlighter without a grammar renders everything as CategoryNone.
type Highlighter struct {
	grammar Grammar
}

// New creates a highlighter. g may be nil.
func New(g Grammar) *Highlighter {
	return &Highlighter{grammar: g}
}

// NewForFile creates a highlighter for path. When no grammar matches it
// returns a plain highlighter together with ErrUnsupportedLanguage.
func NewForFile(path string) (*Highlighter, error) {
	g, err := ForFile(path)
	if err != nil {
		return New(nil), err
	}
	return New(g), nil
}

// Language returns the grammar's language, or "" for plain text.
func (h *Highlighter) Language() string {
	if h.grammar == nil {
		return ""
	}
	return h.grammar.Language()
}

// Generate classifies the whole of src. If the grammar fails, the result
// falls back to one CategoryNone span and the error is returned alongside.
func (h *Highlighter) Generate(src Text) ([]Span, error) {
	charLen := src.Len()
	if h.grammar == nil {
		return Plain(charLen), nil
	}

	events, err := h.grammar.Events(src.Bytes())
	if err != nil {
		return Plain(charLen), fmt.Errorf("highlight: %w", err)
	}
	return Reduce(events, src.ByteToChar, charLen), nil
}
