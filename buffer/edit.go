package buffer

import "strings"

// InsertText inserts text at the cursor, or replaces the active selection.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		b.DeleteSelection()
		return
	}
	r, ok := b.Selection()
	if !ok {
		r = Range{Start: b.cursor, End: b.cursor}
	}
	b.replaceAndCommit(r, s)
}

// InsertRune inserts a single rune at the cursor.
func (b *Buffer) InsertRune(r rune) {
	b.InsertText(string(r))
}

// InsertNewline inserts a line break at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	switch {
	case col > 0:
		b.replaceAndCommit(Range{Start: Pos{Row: row, Col: col - 1}, End: b.cursor}, "")
	case row > 0:
		// Join with the previous line.
		prev := row - 1
		b.replaceAndCommit(Range{Start: Pos{Row: prev, Col: len(b.lines[prev])}, End: b.cursor}, "")
	}
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	switch {
	case col < len(b.lines[row]):
		b.replaceAndCommit(Range{Start: b.cursor, End: Pos{Row: row, Col: col + 1}}, "")
	case row < len(b.lines)-1:
		// Join with the next line.
		b.replaceAndCommit(Range{Start: b.cursor, End: Pos{Row: row + 1, Col: 0}}, "")
	}
}

// DeleteSelection deletes the active selection, if any.
func (b *Buffer) DeleteSelection() {
	r, ok := b.Selection()
	if !ok {
		return
	}
	b.replaceAndCommit(r, "")
}

// SelectedText returns the text covered by the active selection.
func (b *Buffer) SelectedText() string {
	r, ok := b.Selection()
	if !ok {
		return ""
	}
	return textForLinesRange(b.lines, r)
}

func (b *Buffer) replaceAndCommit(r Range, text string) {
	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)

	nextCursor, applied, changed := b.replaceRange(r, text)
	if !changed {
		return
	}
	b.cursor = nextCursor
	b.sel = selectionState{}
	b.version++
	b.textVersion++
	b.recordUndo(prev)
	change.addAppliedEdit(applied)
	b.commitChange(change)
}

func (b *Buffer) replaceRange(r Range, text string) (nextCursor Pos, applied AppliedEdit, changed bool) {
	r = NormalizeRange(ClampRange(r, len(b.lines), b.lineLen))
	deleted := textForLinesRange(b.lines, r)
	if deleted == text {
		return b.cursor, AppliedEdit{}, false
	}

	prefix := b.lines[r.Start.Row][:r.Start.Col]
	suffix := b.lines[r.End.Row][r.End.Col:]

	parts := strings.Split(text, "\n")
	repl := make([][]rune, 0, len(parts))
	for i, p := range parts {
		line := []rune(p)
		if i == 0 {
			line = append(append([]rune(nil), prefix...), line...)
		}
		if i == len(parts)-1 {
			nextCursor = Pos{Row: r.Start.Row + i, Col: len(line)}
			line = append(line, suffix...)
		}
		repl = append(repl, line)
	}

	out := make([][]rune, 0, len(b.lines)-(r.End.Row-r.Start.Row)+len(repl)-1)
	out = append(out, b.lines[:r.Start.Row]...)
	out = append(out, repl...)
	out = append(out, b.lines[r.End.Row+1:]...)
	b.lines = out

	applied = AppliedEdit{
		RangeBefore: r,
		RangeAfter:  Range{Start: r.Start, End: nextCursor},
		InsertText:  text,
		DeletedText: deleted,
	}
	return nextCursor, applied, true
}

func textForLinesRange(lines [][]rune, r Range) string {
	r = NormalizeRange(r)
	if r.IsEmpty() {
		return ""
	}
	if r.Start.Row == r.End.Row {
		return string(lines[r.Start.Row][r.Start.Col:r.End.Col])
	}

	var sb strings.Builder
	for row := r.Start.Row; row <= r.End.Row; row++ {
		if row > r.Start.Row {
			sb.WriteByte('\n')
		}
		from, to := 0, len(lines[row])
		if row == r.Start.Row {
			from = r.Start.Col
		}
		if row == r.End.Row {
			to = r.End.Col
		}
		sb.WriteString(string(lines[row][from:to]))
	}
	return sb.String()
}
