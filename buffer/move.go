package buffer

import "unicode"

type MoveUnit int

const (
	MoveRune MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // grow the selection instead of clearing it
}

func (b *Buffer) Move(m Move) {
	prevCursor := b.cursor
	prevSel := b.sel

	next := b.clampPos(b.moveCursor(prevCursor, m))

	nextSel := selectionState{}
	if m.Extend {
		anchor := prevCursor
		if prevSel.active && prevSel.anchor != prevSel.end {
			anchor = prevSel.anchor
		}
		if anchor != next {
			nextSel = selectionState{active: true, anchor: anchor, end: next}
		}
	}

	if prevCursor == next && selectionStateEqual(prevSel, nextSel) {
		return
	}

	change := b.beginChange(ChangeSourceLocal)
	b.cursor = next
	b.sel = nextSel
	b.version++
	b.commitChange(change)
}

func (b *Buffer) moveCursor(p Pos, m Move) Pos {
	switch m.Unit {
	case MoveDoc:
		switch m.Dir {
		case DirHome, DirUp, DirLeft:
			return Pos{}
		default:
			last := len(b.lines) - 1
			return Pos{Row: last, Col: len(b.lines[last])}
		}
	case MoveLine:
		switch m.Dir {
		case DirHome:
			return Pos{Row: p.Row}
		case DirEnd:
			return Pos{Row: p.Row, Col: b.lineLen(p.Row)}
		case DirUp:
			if p.Row == 0 {
				return Pos{}
			}
			return Pos{Row: p.Row - 1, Col: p.Col}
		case DirDown:
			if p.Row == len(b.lines)-1 {
				return Pos{Row: p.Row, Col: b.lineLen(p.Row)}
			}
			return Pos{Row: p.Row + 1, Col: p.Col}
		}
	case MoveWord:
		switch m.Dir {
		case DirLeft:
			return b.prevWordStart(p)
		case DirRight:
			return b.nextWordEnd(p)
		}
	}

	switch m.Dir {
	case DirLeft:
		return b.stepLeft(p)
	case DirRight:
		return b.stepRight(p)
	case DirUp:
		return b.moveCursor(p, Move{Unit: MoveLine, Dir: DirUp})
	case DirDown:
		return b.moveCursor(p, Move{Unit: MoveLine, Dir: DirDown})
	case DirHome:
		return Pos{Row: p.Row}
	case DirEnd:
		return Pos{Row: p.Row, Col: b.lineLen(p.Row)}
	}
	return p
}

func (b *Buffer) stepLeft(p Pos) Pos {
	if p.Col > 0 {
		return Pos{Row: p.Row, Col: p.Col - 1}
	}
	if p.Row > 0 {
		return Pos{Row: p.Row - 1, Col: b.lineLen(p.Row - 1)}
	}
	return p
}

func (b *Buffer) stepRight(p Pos) Pos {
	if p.Col < b.lineLen(p.Row) {
		return Pos{Row: p.Row, Col: p.Col + 1}
	}
	if p.Row < len(b.lines)-1 {
		return Pos{Row: p.Row + 1}
	}
	return p
}

// runeAt returns the rune right after p, treating line ends as '\n'.
func (b *Buffer) runeAt(p Pos) (rune, bool) {
	line := b.lines[p.Row]
	if p.Col < len(line) {
		return line[p.Col], true
	}
	if p.Row < len(b.lines)-1 {
		return '\n', true
	}
	return 0, false
}

// A backslash belongs to the word that follows it so that commands move
// as one unit.
func isWordRune(r rune) bool {
	return r == '\\' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (b *Buffer) prevWordStart(p Pos) Pos {
	for p != (Pos{}) {
		q := b.stepLeft(p)
		r, _ := b.runeAt(q)
		if isWordRune(r) {
			break
		}
		p = q
	}
	for p != (Pos{}) {
		q := b.stepLeft(p)
		r, _ := b.runeAt(q)
		if !isWordRune(r) {
			break
		}
		p = q
		if r == '\\' {
			break
		}
	}
	return p
}

func (b *Buffer) nextWordEnd(p Pos) Pos {
	for {
		r, ok := b.runeAt(p)
		if !ok || isWordRune(r) {
			break
		}
		p = b.stepRight(p)
	}
	first := true
	for {
		r, ok := b.runeAt(p)
		if !ok || !isWordRune(r) || (r == '\\' && !first) {
			break
		}
		p = b.stepRight(p)
		first = false
	}
	return p
}

// WordAt returns the word under p, or the one ending at p. A backslash
// always starts a word, so `\alpha\beta` holds two.
func (b *Buffer) WordAt(p Pos) (Range, bool) {
	p = b.clampPos(p)
	line := b.lines[p.Row]
	col := p.Col
	if col == len(line) || !isWordRune(line[col]) {
		if col == 0 || !isWordRune(line[col-1]) {
			return Range{}, false
		}
		col--
	}

	start := col
	for start > 0 && line[start] != '\\' && isWordRune(line[start-1]) {
		start--
	}
	end := col + 1
	for end < len(line) && line[end] != '\\' && isWordRune(line[end]) {
		end++
	}
	return Range{Start: Pos{Row: p.Row, Col: start}, End: Pos{Row: p.Row, Col: end}}, true
}
