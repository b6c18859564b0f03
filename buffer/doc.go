// Package buffer implements the document model behind an equation editor.
//
// Text is held as logical lines of runes. Positions are 0-based (Row, Col)
// pairs counted in runes; linear offsets count the newline between two rows
// as a single rune. A buffer always has at least one (possibly empty) line.
package buffer
