// Package buffer provides the editable text content of a pane.
//
// A Buffer is a rope addressed by char (code point) offsets and by
// (row, column) positions. Line endings are normalized to LF on load, so
// the line count is always the newline count plus one.
//
// Mutations refuse offsets that would split a grapheme cluster. The cluster
// helpers (PrevBoundary, NextBoundary, SnapBoundary, Boundaries) let callers
// move in user-perceived characters instead of raw code points.
package buffer
