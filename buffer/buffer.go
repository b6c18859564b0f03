package buffer

import "strings"

type Options struct {
	HistoryLimit int // default: 1000; negative disables undo history
}

type selectionState struct {
	active bool
	anchor Pos
	end    Pos
}

// Buffer is the editable region: text, cursor, and selection.
//
// Version changes on any observable mutation (text, cursor or selection).
// TextVersion changes only when the text does.
type Buffer struct {
	lines       [][]rune
	version     uint64
	textVersion uint64

	cursor Pos
	sel    selectionState

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	return &Buffer{
		lines: splitLines(text),
		opt:   opt,
	}
}

func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Line returns the text of row, or "" when row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

// LineCount returns the number of logical lines (at least 1).
func (b *Buffer) LineCount() int { return len(b.lines) }

func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) TextVersion() uint64 { return b.textVersion }

func (b *Buffer) Cursor() Pos { return b.cursor }

func (b *Buffer) SetCursor(p Pos) {
	next := b.clampPos(p)
	if next == b.cursor {
		return
	}
	change := b.beginChange(ChangeSourceLocal)
	b.cursor = next
	b.version++
	b.commitChange(change)
}

func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active {
		return Range{}, false
	}
	r := NormalizeRange(Range{Start: b.sel.anchor, End: b.sel.end})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

func (b *Buffer) SetSelection(r Range) {
	clamped := ClampRange(r, len(b.lines), b.lineLen)
	next := selectionState{active: true, anchor: clamped.Start, end: clamped.End}
	if clamped.Start == clamped.End {
		next = selectionState{}
	}
	if selectionStateEqual(b.sel, next) {
		return
	}

	change := b.beginChange(ChangeSourceLocal)
	b.sel = next
	b.version++
	b.commitChange(change)
}

func (b *Buffer) ClearSelection() {
	if _, ok := b.Selection(); !ok {
		b.sel = selectionState{}
		return
	}
	change := b.beginChange(ChangeSourceLocal)
	b.sel = selectionState{}
	b.version++
	b.commitChange(change)
}

// SetText replaces the whole document in one undoable step. The cursor
// keeps its position, clamped into the new text, and the selection is
// cleared. Callers that know where the cursor belongs follow up with
// SetCursorOffset.
func (b *Buffer) SetText(text string) {
	before := b.Text()
	if before == text {
		return
	}

	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)

	b.lines = splitLines(text)
	b.cursor = b.clampPos(b.cursor)
	b.sel = selectionState{}
	b.version++
	b.textVersion++
	b.recordUndo(prev)
	if applied, ok := replacementAppliedEdit(before, text); ok {
		change.addAppliedEdit(applied)
	}
	b.commitChange(change)
}

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) clampPos(p Pos) Pos {
	return ClampPos(p, len(b.lines), b.lineLen)
}

// splitLines never returns an empty slice: an empty document is one empty
// line.
func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}
	return lines
}

func selectionStateEqual(a, b selectionState) bool {
	if !a.active && !b.active {
		return true
	}
	return a.active == b.active && a.anchor == b.anchor && a.end == b.end
}
