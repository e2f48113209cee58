// Package cursor moves the single editing cursor of a pane.
//
// The Controller holds a logical (row, column) position and caches the
// cursor's horizontal pixel offset, as measured through a
// measure.Measurer. The cache is re-derived whenever the position changes,
// so it always agrees with re-measuring the current line.
//
// Movement follows grapheme clusters:
//
//   - Left and Right step over whole clusters and wrap between rows.
//     Right at the very end of the buffer stays put.
//   - Up and Down keep the column when the target row is long enough,
//     otherwise clamp to its end. Up on the first row goes to column 0;
//     Down on the last row goes to the end of the row.
//   - Backspace removes the cluster before the cursor, or joins the row
//     with the previous one at column 0.
//   - Enter splits the row at the cursor.
//
// Editing operations report whether the buffer changed so that callers
// can re-highlight only when needed.
package cursor
