package rope

import "unicode/utf8"

// Chunk size bounds, in bytes.
const (
	// MinChunkSize is the minimum bytes per chunk (except for the last chunk).
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is an immutable run of text stored in a leaf.
type Chunk struct {
	data    string
	summary TextSummary
}

// NewChunk creates a chunk and computes its metrics eagerly.
func NewChunk(s string) Chunk {
	return Chunk{data: s, summary: ComputeSummary(s)}
}

// String returns the chunk's text.
func (c Chunk) String() string { return c.data }

// Summary returns the chunk's metrics.
func (c Chunk) Summary() TextSummary { return c.summary }

// Len returns the byte length of the chunk.
func (c Chunk) Len() int { return len(c.data) }

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool { return len(c.data) == 0 }

// Split splits the chunk at a byte offset that must be a rune boundary.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.data) {
		return c, Chunk{}
	}
	return NewChunk(c.data[:offset]), NewChunk(c.data[offset:])
}

// charToByte returns the byte offset of the n-th rune in the chunk.
func (c Chunk) charToByte(n int) int {
	if n >= c.summary.Chars {
		return len(c.data)
	}
	if c.summary.Chars == c.summary.Bytes {
		return n
	}
	i := 0
	for n > 0 && i < len(c.data) {
		_, size := utf8.DecodeRuneInString(c.data[i:])
		i += size
		n--
	}
	return i
}

// byteToChar returns the number of runes that start before byte offset b.
func (c Chunk) byteToChar(b int) int {
	if b >= len(c.data) {
		return c.summary.Chars
	}
	if c.summary.Chars == c.summary.Bytes {
		return b
	}
	return utf8.RuneCountInString(c.data[:b])
}

// nthNewlineEnd returns the byte offset just past the n-th newline (1-based).
func (c Chunk) nthNewlineEnd(n int) int {
	for i := 0; i < len(c.data); i++ {
		if c.data[i] == '\n' {
			n--
			if n == 0 {
				return i + 1
			}
		}
	}
	return len(c.data)
}

// newlinesBefore counts newlines in the first b bytes.
func (c Chunk) newlinesBefore(b int) int {
	if b > len(c.data) {
		b = len(c.data)
	}
	count := 0
	for i := 0; i < b; i++ {
		if c.data[i] == '\n' {
			count++
		}
	}
	return count
}

// splitIntoChunks cuts s into chunks near TargetChunkSize, preferring to
// cut after a newline and never inside a UTF-8 sequence.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	for len(s) > 0 {
		if len(s) <= MaxChunkSize {
			chunks = append(chunks, NewChunk(s))
			break
		}
		cut := findSplitPoint(s, TargetChunkSize)
		chunks = append(chunks, NewChunk(s[:cut]))
		s = s[cut:]
	}
	return chunks
}

// findSplitPoint picks a cut near target: after a nearby newline if there
// is one, otherwise at the closest rune start.
func findSplitPoint(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}

	window := MinChunkSize / 4
	lo := max(target-window, 1)
	hi := min(target+window, len(s))
	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos > 0 && !utf8.RuneStart(s[pos]) {
		pos--
	}
	if pos == 0 {
		pos = target
		for pos < len(s) && !utf8.RuneStart(s[pos]) {
			pos++
		}
	}
	return pos
}
