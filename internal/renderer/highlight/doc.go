// Package highlight classifies buffer text into colored spans.
//
// A Grammar turns source bytes into a stream of nested scope events, much
// like a tree-sitter highlighter does. Reduce flattens that stream into
// Spans over char offsets that cover the whole buffer, and a Theme maps
// each span's Category to a color.
package highlight
