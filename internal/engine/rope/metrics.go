package rope

import (
	"strings"
	"unicode/utf8"
)

// TextSummary holds aggregated metrics for a span of text.
// Summaries form a monoid under Add, which is what lets internal nodes
// answer offset and line queries without visiting their leaves.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the code point count.
	Chars int

	// Lines is the number of newline characters.
	Lines int
}

// ComputeSummary measures s.
func ComputeSummary(s string) TextSummary {
	return TextSummary{
		Bytes: len(s),
		Chars: utf8.RuneCountInString(s),
		Lines: strings.Count(s, "\n"),
	}
}

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
	}
}

// IsEmpty reports whether the summary describes no text.
func (s TextSummary) IsEmpty() bool {
	return s.Bytes == 0
}
