package buffer

import "unicode/utf8"

type OffsetClampMode uint8

const (
	// OffsetError rejects offsets and positions outside the document.
	OffsetError OffsetClampMode = iota
	// OffsetClamp pulls them back into [0, Len()].
	OffsetClamp
)

type ConvertPolicy struct {
	ClampMode OffsetClampMode
}

// Len returns the document length in runes, counting each line break as one.
func (b *Buffer) Len() int {
	total := 0
	for _, line := range b.lines {
		total += len(line)
	}
	return total + len(b.lines) - 1
}

// ByteLen returns the UTF-8 length of Text().
func (b *Buffer) ByteLen() int {
	total := 0
	for _, line := range b.lines {
		total += runesByteLen(line)
	}
	return total + len(b.lines) - 1
}

// PosFromRuneOffset maps a linear rune offset to a position. An offset at
// the end of a line resolves to that line, never to the start of the next.
func (b *Buffer) PosFromRuneOffset(off int, p ConvertPolicy) (Pos, bool) {
	off, ok := clampOffset(off, b.Len(), p.ClampMode)
	if !ok {
		return Pos{}, false
	}
	for row, line := range b.lines {
		if off <= len(line) {
			return Pos{Row: row, Col: off}, true
		}
		off -= len(line) + 1
	}
	// Unreachable for in-range offsets; fall back to the last fragment.
	last := len(b.lines) - 1
	return Pos{Row: last, Col: len(b.lines[last])}, true
}

func (b *Buffer) RuneOffsetFromPos(pos Pos, p ConvertPolicy) (int, bool) {
	pos, ok := b.normalizePosForMode(pos, p.ClampMode)
	if !ok {
		return 0, false
	}
	off := pos.Col
	for row := 0; row < pos.Row; row++ {
		off += len(b.lines[row]) + 1
	}
	return off, true
}

// PosFromByteOffset maps a UTF-8 byte offset to a position. Offsets that
// fall inside a multi-byte rune are rejected in both modes.
func (b *Buffer) PosFromByteOffset(off int, p ConvertPolicy) (Pos, bool) {
	off, ok := clampOffset(off, b.ByteLen(), p.ClampMode)
	if !ok {
		return Pos{}, false
	}
	for row, line := range b.lines {
		n := runesByteLen(line)
		if off <= n {
			col := 0
			for _, r := range line {
				if off == 0 {
					break
				}
				off -= utf8.RuneLen(r)
				if off < 0 {
					return Pos{}, false
				}
				col++
			}
			return Pos{Row: row, Col: col}, true
		}
		off -= n + 1
	}
	return Pos{}, false
}

func (b *Buffer) ByteOffsetFromPos(pos Pos, p ConvertPolicy) (int, bool) {
	pos, ok := b.normalizePosForMode(pos, p.ClampMode)
	if !ok {
		return 0, false
	}
	off := runesByteLen(b.lines[pos.Row][:pos.Col])
	for row := 0; row < pos.Row; row++ {
		off += runesByteLen(b.lines[row]) + 1
	}
	return off, true
}

// CursorOffset returns the cursor as a linear rune offset.
func (b *Buffer) CursorOffset() int {
	off, _ := b.RuneOffsetFromPos(b.cursor, ConvertPolicy{ClampMode: OffsetClamp})
	return off
}

// SetCursorOffset moves the cursor to a linear rune offset clamped to
// [0, Len()] and clears the selection.
func (b *Buffer) SetCursorOffset(off int) {
	pos, _ := b.PosFromRuneOffset(off, ConvertPolicy{ClampMode: OffsetClamp})
	if pos == b.cursor && !b.sel.active {
		return
	}
	change := b.beginChange(ChangeSourceLocal)
	b.cursor = pos
	b.sel = selectionState{}
	b.version++
	b.commitChange(change)
}

func clampOffset(off, n int, mode OffsetClampMode) (int, bool) {
	switch mode {
	case OffsetError:
		if off < 0 || off > n {
			return 0, false
		}
		return off, true
	case OffsetClamp:
		return clampInt(off, 0, n), true
	default:
		return 0, false
	}
}

func (b *Buffer) normalizePosForMode(pos Pos, mode OffsetClampMode) (Pos, bool) {
	switch mode {
	case OffsetError:
		if b.clampPos(pos) != pos {
			return Pos{}, false
		}
		return pos, true
	case OffsetClamp:
		return b.clampPos(pos), true
	default:
		return Pos{}, false
	}
}

func runesByteLen(rs []rune) int {
	n := 0
	for _, r := range rs {
		n += utf8.RuneLen(r)
	}
	return n
}
