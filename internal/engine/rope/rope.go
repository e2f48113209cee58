package rope

import (
	"io"
	"strings"
)

// Rope is an immutable text rope. The zero value is an empty rope.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode(nil)}
}

// FromString creates a rope holding s.
func FromString(s string) Rope {
	chunks := splitIntoChunks(s)
	if len(chunks) == 0 {
		return New()
	}

	leaves := make([]*Node, 0, len(chunks)/MaxChunksPerLeaf+1)
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		group := make([]Chunk, end-i)
		copy(group, chunks[i:end])
		leaves = append(leaves, newLeafNode(group))
	}
	return Rope{root: buildFromNodes(leaves)}
}

// FromReader reads r to EOF and builds a rope from its content.
func FromReader(r io.Reader) (Rope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Rope{}, err
	}
	return FromString(string(data)), nil
}

func (r Rope) summary() TextSummary {
	if r.root == nil {
		return TextSummary{}
	}
	return r.root.summary
}

// Len returns the number of chars (code points).
func (r Rope) Len() int { return r.summary().Chars }

// LenBytes returns the UTF-8 byte length.
func (r Rope) LenBytes() int { return r.summary().Bytes }

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int { return r.summary().Lines + 1 }

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool { return r.summary().IsEmpty() }

// Summary returns the aggregated metrics of the whole rope.
func (r Rope) Summary() TextSummary { return r.summary() }

// String returns the full text. Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.LenBytes())
	r.root.appendTo(&sb)
	return sb.String()
}

// Bytes returns the full text as a byte slice.
func (r Rope) Bytes() []byte {
	return []byte(r.String())
}

// CharToByte converts a char offset to a byte offset, clamping to the end.
func (r Rope) CharToByte(c int) int {
	if r.root == nil || c <= 0 {
		return 0
	}
	if c >= r.Len() {
		return r.LenBytes()
	}
	return r.root.charToByte(c)
}

// ByteToChar converts a byte offset to a char offset, clamping to the end.
func (r Rope) ByteToChar(b int) int {
	if r.root == nil || b <= 0 {
		return 0
	}
	if b >= r.LenBytes() {
		return r.Len()
	}
	return r.root.byteToChar(b)
}

// lineStartByte returns the byte offset where line starts.
func (r Rope) lineStartByte(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.LenBytes()
	}
	return r.root.lineStartByte(line)
}

// LineToChar returns the char offset of the first char of line.
// Lines past the end map to Len().
func (r Rope) LineToChar(line int) int {
	return r.ByteToChar(r.lineStartByte(line))
}

// CharToLine returns the line containing char offset c. The offset just
// after a newline belongs to the following line.
func (r Rope) CharToLine(c int) int {
	if r.root == nil || c <= 0 {
		return 0
	}
	return r.root.newlinesBefore(r.CharToByte(c))
}

// ByteToLine returns the line containing byte offset b.
func (r Rope) ByteToLine(b int) int {
	if r.root == nil || b <= 0 {
		return 0
	}
	return r.root.newlinesBefore(min(b, r.LenBytes()))
}

// Line returns the text of line without its trailing newline.
func (r Rope) Line(line int) string {
	if line < 0 || line >= r.LineCount() {
		return ""
	}
	start := r.lineStartByte(line)
	end := r.LenBytes()
	if line+1 < r.LineCount() {
		end = r.lineStartByte(line+1) - 1
	}
	return r.sliceBytes(start, end)
}

func (r Rope) sliceBytes(start, end int) string {
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// Slice returns the text in the char range [start, end).
func (r Rope) Slice(start, end int) string {
	return r.sliceBytes(r.CharToByte(start), r.CharToByte(end))
}

// Insert inserts text at char offset c.
func (r Rope) Insert(c int, text string) Rope {
	if text == "" {
		return r
	}
	if r.IsEmpty() {
		return FromString(text)
	}
	if len(text) <= MaxChunkSize {
		b := r.CharToByte(c)
		if nodes, ok := r.root.edit(b, b, text); ok {
			return fromNodes(nodes)
		}
	}
	left, right := r.Split(c)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete removes the char range [start, end).
func (r Rope) Delete(start, end int) Rope {
	start = max(start, 0)
	end = min(end, r.Len())
	if r.root == nil || start >= end {
		return r
	}
	if nodes, ok := r.root.edit(r.CharToByte(start), r.CharToByte(end), ""); ok {
		return fromNodes(nodes)
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// fromNodes roots the nodes returned by an in-place edit, dropping
// single-child levels.
func fromNodes(nodes []*Node) Rope {
	var root *Node
	switch len(nodes) {
	case 0:
		return New()
	case 1:
		root = nodes[0]
	default:
		root = buildFromNodes(nodes)
	}
	for !root.IsLeaf() && len(root.children) == 1 {
		root = root.children[0]
	}
	return Rope{root: root}
}

// Split cuts the rope at char offset c into [0, c) and [c, Len()).
func (r Rope) Split(c int) (Rope, Rope) {
	if r.root == nil || c <= 0 {
		return New(), r
	}
	if c >= r.Len() {
		return r, New()
	}
	left, right := r.root.split(r.root.charToByte(c))
	return Rope{root: left}, Rope{root: right}
}

// Concat joins two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// Height returns the height of the tree, for balance checks.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}
