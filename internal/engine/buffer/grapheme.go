package buffer

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// clusterBoundaries returns the char offsets in line where a grapheme
// cluster starts, plus the line length. The result always begins with 0.
func clusterBoundaries(line string) []int {
	out := make([]int, 1, len(line)+1)
	pos, state := 0, -1
	for len(line) > 0 {
		var cluster string
		cluster, line, _, state = uniseg.FirstGraphemeClusterInString(line, state)
		pos += utf8.RuneCountInString(cluster)
		out = append(out, pos)
	}
	return out
}

// isBoundaryLocked reports whether char offset pos falls between two
// clusters. Line starts and ends always do.
func (b *Buffer) isBoundaryLocked(pos int) bool {
	p := b.charToLineLocked(pos)
	if p.Col == 0 {
		return true
	}
	for _, off := range clusterBoundaries(b.rope.Line(p.Row)) {
		if off == p.Col {
			return true
		}
		if off > p.Col {
			return false
		}
	}
	return false
}

// Boundaries returns the cluster boundaries of row as char columns,
// starting with 0 and ending with the row length.
func (b *Buffer) Boundaries(row int) []int {
	return clusterBoundaries(b.Line(row))
}

// IsBoundary reports whether col on row lies on a cluster boundary.
func (b *Buffer) IsBoundary(row, col int) bool {
	for _, off := range b.Boundaries(row) {
		if off == col {
			return true
		}
	}
	return false
}

// PrevBoundary returns the closest cluster boundary on row strictly before
// col, or 0.
func (b *Buffer) PrevBoundary(row, col int) int {
	prev := 0
	for _, off := range b.Boundaries(row) {
		if off >= col {
			break
		}
		prev = off
	}
	return prev
}

// NextBoundary returns the closest cluster boundary on row strictly after
// col, or the row length.
func (b *Buffer) NextBoundary(row, col int) int {
	bounds := b.Boundaries(row)
	for _, off := range bounds {
		if off > col {
			return off
		}
	}
	return bounds[len(bounds)-1]
}

// SnapBoundary clamps col to [0, row length] and moves it back to the
// start of the cluster containing it.
func (b *Buffer) SnapBoundary(row, col int) int {
	snapped := 0
	for _, off := range b.Boundaries(row) {
		if off > col {
			break
		}
		snapped = off
	}
	return snapped
}
