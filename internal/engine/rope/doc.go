// Package rope provides an immutable rope for editor text storage.
//
// The rope is a B+ tree whose leaves hold bounded UTF-8 chunks and whose
// internal nodes cache aggregated metrics (bytes, runes, newlines). Those
// metrics make the three coordinate systems an editor needs cheap to convert
// between:
//
//   - byte offsets, used by grammars and tokenizers
//   - char offsets, where a char is one Unicode code point
//   - line numbers, where a line is delimited by a single '\n'
//
// All edit operations return a new Rope; the receiver is never modified.
//
//	r := rope.FromString("hello\nworld")
//	r = r.Insert(5, ",")        // "hello,\nworld"
//	r.LineCount()               // 2
//	r.Line(1)                   // "world"
//	r.CharToLine(7)             // 1
package rope
