package editor

import (
	"github.com/iw2rmb/texcomplete/buffer"
	"github.com/iw2rmb/texcomplete/internal/grapheme"
)

// ScreenToDoc maps viewport-local cell coordinates to a document position.
// Clicks in the gutter land at column 0; coordinates outside the document
// clamp into it.
func (m Model) ScreenToDoc(x, y int) buffer.Pos {
	return (&m).screenToDocPos(x, y)
}

// DocToScreen maps a document position to viewport-local cell coordinates.
// ok is false when the position is scrolled out of view.
func (m Model) DocToScreen(pos buffer.Pos) (x, y int, ok bool) {
	if m.buf == nil {
		return 0, 0, false
	}
	row := clampInt(pos.Row, 0, m.buf.LineCount()-1)
	cs := grapheme.Layout(m.buf.Line(row), m.tabWidth())

	x = grapheme.CellForCol(cs, pos.Col) + m.gutterWidth()
	y = row - m.viewport.YOffset
	ok = y >= 0 && y < m.visibleRowCount() && x < m.viewport.Width
	return x, y, ok
}

func (m *Model) screenToDocPos(x, y int) buffer.Pos {
	if m.buf == nil {
		return buffer.Pos{}
	}
	row := clampInt(m.viewport.YOffset+y, 0, m.buf.LineCount()-1)

	cell := x - m.gutterWidth()
	if cell < 0 {
		return buffer.Pos{Row: row}
	}
	cs := grapheme.Layout(m.buf.Line(row), m.tabWidth())
	return buffer.Pos{Row: row, Col: grapheme.ColForCell(cs, cell)}
}

func (m *Model) tabWidth() int {
	if m.cfg.TabWidth > 0 {
		return m.cfg.TabWidth
	}
	return grapheme.DefaultTabWidth
}
