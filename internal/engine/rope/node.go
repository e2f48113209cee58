package rope

import "strings"

// Tree shape bounds.
const (
	// MaxChildren is the maximum children per internal node.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node is a node of the rope B+ tree. Leaves (height 0) own chunks;
// internal nodes own children and cache one summary per child.
type Node struct {
	height  uint8
	summary TextSummary

	children       []*Node
	childSummaries []TextSummary

	chunks []Chunk
}

func newLeafNode(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode(nil)
	}
	n := &Node{
		height:         children[0].height + 1,
		children:       children,
		childSummaries: make([]TextSummary, len(children)),
	}
	for i, child := range children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
	return n
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool { return n.height == 0 }

// Summary returns the aggregated metrics of the subtree.
func (n *Node) Summary() TextSummary { return n.summary }

func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, c := range n.chunks {
			sb.WriteString(c.data)
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange writes the bytes [start, end) of the subtree to sb.
func (n *Node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}
	offset := 0
	if n.IsLeaf() {
		for _, c := range n.chunks {
			cEnd := offset + c.Len()
			if cEnd > start && offset < end {
				lo := max(start-offset, 0)
				hi := min(end-offset, c.Len())
				sb.WriteString(c.data[lo:hi])
			}
			if cEnd >= end {
				return
			}
			offset = cEnd
		}
		return
	}
	for i, child := range n.children {
		cLen := n.childSummaries[i].Bytes
		cEnd := offset + cLen
		if cEnd > start && offset < end {
			child.appendRange(sb, max(start-offset, 0), min(end-offset, cLen))
		}
		if cEnd >= end {
			return
		}
		offset = cEnd
	}
}

// split cuts the subtree at byte offset b.
func (n *Node) split(b int) (*Node, *Node) {
	if b <= 0 {
		return newLeafNode(nil), n
	}
	if b >= n.summary.Bytes {
		return n, newLeafNode(nil)
	}

	offset := 0
	if n.IsLeaf() {
		var left, right []Chunk
		for _, c := range n.chunks {
			switch {
			case offset+c.Len() <= b:
				left = append(left, c)
			case offset >= b:
				right = append(right, c)
			default:
				l, r := c.Split(b - offset)
				if !l.IsEmpty() {
					left = append(left, l)
				}
				if !r.IsEmpty() {
					right = append(right, r)
				}
			}
			offset += c.Len()
		}
		return newLeafNode(left), newLeafNode(right)
	}

	var left, right []*Node
	for i, child := range n.children {
		cLen := n.childSummaries[i].Bytes
		switch {
		case offset+cLen <= b:
			left = append(left, child)
		case offset >= b:
			right = append(right, child)
		default:
			l, r := child.split(b - offset)
			if !l.summary.IsEmpty() {
				left = append(left, l)
			}
			if !r.summary.IsEmpty() {
				right = append(right, r)
			}
		}
		offset += cLen
	}
	return buildFromNodes(left), buildFromNodes(right)
}

// buildFromNodes stacks nodes into a tree, wrapping them in parents of at
// most MaxChildren. Nodes of mixed height are lifted to a common height.
func buildFromNodes(nodes []*Node) *Node {
	switch len(nodes) {
	case 0:
		return newLeafNode(nil)
	case 1:
		return nodes[0]
	}

	var top uint8
	for _, node := range nodes {
		top = max(top, node.height)
	}
	for i, node := range nodes {
		for node.height < top {
			node = newInternalNode([]*Node{node})
		}
		nodes[i] = node
	}

	for len(nodes) > 1 {
		parents := make([]*Node, 0, len(nodes)/MaxChildren+1)
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			group := make([]*Node, end-i)
			copy(group, nodes[i:end])
			parents = append(parents, newInternalNode(group))
		}
		nodes = parents
	}
	return nodes[0]
}

// concat joins two subtrees. The shorter tree is merged into the spine of
// the taller one so repeated edits do not grow the height.
func concat(left, right *Node) *Node {
	if left == nil || left.summary.IsEmpty() {
		if right == nil {
			return newLeafNode(nil)
		}
		return right
	}
	if right == nil || right.summary.IsEmpty() {
		return left
	}

	switch {
	case left.IsLeaf() && right.IsLeaf():
		chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
		chunks = append(chunks, left.chunks...)
		chunks = append(chunks, right.chunks...)
		chunks = coalesce(chunks)
		if len(chunks) <= MaxChunksPerLeaf {
			return newLeafNode(chunks)
		}
		mid := len(chunks) / 2
		return newInternalNode([]*Node{newLeafNode(chunks[:mid]), newLeafNode(chunks[mid:])})

	case left.height == right.height:
		kids := make([]*Node, 0, len(left.children)+len(right.children))
		kids = append(kids, left.children...)
		kids = append(kids, right.children...)
		return joinChildren(kids)

	case left.height > right.height:
		kids := make([]*Node, len(left.children))
		copy(kids, left.children)
		last := len(kids) - 1
		merged := concat(kids[last], right)
		if merged.height < left.height {
			kids[last] = merged
			return joinChildren(kids)
		}
		return joinChildren(append(kids[:last], merged.children...))

	default:
		kids := make([]*Node, len(right.children))
		copy(kids, right.children)
		merged := concat(left, kids[0])
		if merged.height < right.height {
			kids[0] = merged
			return joinChildren(kids)
		}
		out := make([]*Node, 0, len(merged.children)+len(kids)-1)
		out = append(out, merged.children...)
		out = append(out, kids[1:]...)
		return joinChildren(out)
	}
}

// coalesce merges neighbouring chunks whose combined size still fits in
// MaxChunkSize. Single-char inserts would otherwise leave one chunk per
// keystroke.
func coalesce(chunks []Chunk) []Chunk {
	out := chunks[:0:0]
	for _, c := range chunks {
		if c.IsEmpty() {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Len()+c.Len() <= MaxChunkSize {
			out[n-1] = NewChunk(out[n-1].data + c.data)
			continue
		}
		out = append(out, c)
	}
	return out
}

// joinChildren wraps same-height nodes in one parent, or in a new level of
// parents when there are more than MaxChildren.
func joinChildren(kids []*Node) *Node {
	if len(kids) <= MaxChildren {
		return newInternalNode(kids)
	}
	return buildFromNodes(kids)
}

// edit replaces the bytes [start, end) with text when the range lies inside
// a single chunk, copying only the path from the root to that chunk. It
// returns the replacement nodes (zero or more, all of n's height) and false
// when the range spans chunks.
func (n *Node) edit(start, end int, text string) ([]*Node, bool) {
	if n.IsLeaf() {
		if len(n.chunks) == 0 {
			if start != 0 || end != 0 {
				return nil, false
			}
			return groupChunks(splitIntoChunks(text)), true
		}
		offset := 0
		for i, c := range n.chunks {
			if start >= offset && end <= offset+c.Len() {
				data := c.data[:start-offset] + text + c.data[end-offset:]
				repl := splitIntoChunks(data)
				chunks := make([]Chunk, 0, len(n.chunks)-1+len(repl))
				chunks = append(chunks, n.chunks[:i]...)
				chunks = append(chunks, repl...)
				chunks = append(chunks, n.chunks[i+1:]...)
				return groupChunks(chunks), true
			}
			offset += c.Len()
		}
		return nil, false
	}

	offset := 0
	for i, child := range n.children {
		cLen := n.childSummaries[i].Bytes
		if start >= offset && end <= offset+cLen {
			nodes, ok := child.edit(start-offset, end-offset, text)
			if !ok {
				return nil, false
			}
			kids := make([]*Node, 0, len(n.children)-1+len(nodes))
			kids = append(kids, n.children[:i]...)
			kids = append(kids, nodes...)
			kids = append(kids, n.children[i+1:]...)
			return groupNodes(kids), true
		}
		offset += cLen
	}
	return nil, false
}

// groupChunks packs chunks into evenly filled leaves.
func groupChunks(chunks []Chunk) []*Node {
	if len(chunks) == 0 {
		return nil
	}
	groups := (len(chunks) + MaxChunksPerLeaf - 1) / MaxChunksPerLeaf
	leaves := make([]*Node, 0, groups)
	for g := 0; g < groups; g++ {
		lo, hi := g*len(chunks)/groups, (g+1)*len(chunks)/groups
		part := make([]Chunk, hi-lo)
		copy(part, chunks[lo:hi])
		leaves = append(leaves, newLeafNode(part))
	}
	return leaves
}

// groupNodes packs same-height nodes into evenly filled parents.
func groupNodes(nodes []*Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	groups := (len(nodes) + MaxChildren - 1) / MaxChildren
	parents := make([]*Node, 0, groups)
	for g := 0; g < groups; g++ {
		lo, hi := g*len(nodes)/groups, (g+1)*len(nodes)/groups
		part := make([]*Node, hi-lo)
		copy(part, nodes[lo:hi])
		parents = append(parents, newInternalNode(part))
	}
	return parents
}

// charToByte converts a char offset within the subtree to a byte offset.
func (n *Node) charToByte(c int) int {
	bytes := 0
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			if c <= chunk.summary.Chars {
				return bytes + chunk.charToByte(c)
			}
			c -= chunk.summary.Chars
			bytes += chunk.Len()
		}
		return bytes
	}
	for i, child := range n.children {
		s := n.childSummaries[i]
		if c <= s.Chars {
			return bytes + child.charToByte(c)
		}
		c -= s.Chars
		bytes += s.Bytes
	}
	return bytes
}

// byteToChar converts a byte offset within the subtree to a char offset.
func (n *Node) byteToChar(b int) int {
	chars := 0
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			if b <= chunk.Len() {
				return chars + chunk.byteToChar(b)
			}
			b -= chunk.Len()
			chars += chunk.summary.Chars
		}
		return chars
	}
	for i, child := range n.children {
		s := n.childSummaries[i]
		if b <= s.Bytes {
			return chars + child.byteToChar(b)
		}
		b -= s.Bytes
		chars += s.Chars
	}
	return chars
}

// lineStartByte returns the byte offset just past the line-th newline.
// line must be in [1, summary.Lines].
func (n *Node) lineStartByte(line int) int {
	bytes := 0
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			if line <= chunk.summary.Lines {
				return bytes + chunk.nthNewlineEnd(line)
			}
			line -= chunk.summary.Lines
			bytes += chunk.Len()
		}
		return bytes
	}
	for i, child := range n.children {
		s := n.childSummaries[i]
		if line <= s.Lines {
			return bytes + child.lineStartByte(line)
		}
		line -= s.Lines
		bytes += s.Bytes
	}
	return bytes
}

// newlinesBefore counts the newlines in the first b bytes of the subtree.
func (n *Node) newlinesBefore(b int) int {
	lines := 0
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			if b <= chunk.Len() {
				return lines + chunk.newlinesBefore(b)
			}
			b -= chunk.Len()
			lines += chunk.summary.Lines
		}
		return lines
	}
	for i, child := range n.children {
		s := n.childSummaries[i]
		if b <= s.Bytes {
			return lines + child.newlinesBefore(b)
		}
		b -= s.Bytes
		lines += s.Lines
	}
	return lines
}
