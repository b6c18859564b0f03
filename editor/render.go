package editor

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/texcomplete/buffer"
	"github.com/iw2rmb/texcomplete/internal/grapheme"
)

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	n := m.buf.LineCount()
	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()
	digits := gutterDigits(n)

	// Only visible lines are highlighted.
	visStart := clampInt(m.viewport.YOffset, 0, n)
	visEnd := clampInt(visStart+m.visibleRowCount(), visStart, n)

	out := make([]string, 0, n)
	for row := 0; row < n; row++ {
		line := m.buf.Line(row)

		var sb strings.Builder
		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if m.focused && row == cursor.Row {
				numStyle = m.cfg.Style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digits, row+1)))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}

		var spans []HighlightSpan
		if row >= visStart && row < visEnd {
			spans = m.highlightForLine(row, line, cursor)
		}
		sb.WriteString(m.renderLine(row, line, cursor, sel, selOK, spans))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func (m *Model) highlightForLine(row int, line string, cursor buffer.Pos) []HighlightSpan {
	if m.cfg.Highlighter == nil {
		return nil
	}

	lineLen := len([]rune(line))
	ctx := LineContext{
		Row:         row,
		Text:        line,
		CursorCol:   -1,
		DocText:     m.buf.Text(),
		TextVersion: m.buf.TextVersion(),
	}
	if cursor.Row == row {
		ctx.HasCursor = true
		ctx.CursorCol = clampInt(cursor.Col, 0, lineLen)
	}

	spans, err := m.cfg.Highlighter.HighlightLine(ctx)
	if err != nil {
		return nil
	}
	return normalizeHighlightSpans(spans, lineLen)
}

// renderLine draws one logical line cluster by cluster. The cursor covers
// the whole cluster it sits in; at line end it is a one-cell placeholder.
func (m *Model) renderLine(row int, line string, cursor buffer.Pos, sel buffer.Range, selOK bool, spans []HighlightSpan) string {
	st := m.cfg.Style
	cs := grapheme.Layout(line, m.tabWidth())
	lineLen := 0
	if len(cs) > 0 {
		lineLen = cs[len(cs)-1].EndCol
	}

	hasCursor := m.focused && row == cursor.Row
	cursorCol := clampInt(cursor.Col, 0, lineLen)
	selStart, selEnd, hasSel := selectionColsForRow(sel, selOK, row, lineLen)

	var sb strings.Builder
	for _, c := range cs {
		text := c.Text
		if text == "\t" {
			text = strings.Repeat(" ", c.Width)
		}

		switch {
		case hasCursor && cursorCol >= c.StartCol && cursorCol < c.EndCol:
			sb.WriteString(st.Cursor.Render(text))
		case hasSel && c.StartCol < selEnd && c.EndCol > selStart:
			sb.WriteString(st.Selection.Render(text))
		default:
			style := st.Text
			for _, sp := range spans {
				if c.StartCol < sp.EndCol && c.EndCol > sp.StartCol {
					style = sp.Style.Inherit(st.Text)
					break
				}
			}
			sb.WriteString(style.Render(text))
		}
	}
	if hasCursor && cursorCol == lineLen {
		sb.WriteString(st.Cursor.Render(" "))
	}
	return sb.String()
}

// selectionColsForRow returns the selected rune columns on row. A
// selection that continues past the row covers its line end.
func selectionColsForRow(sel buffer.Range, ok bool, row, lineLen int) (start, end int, has bool) {
	if !ok || row < sel.Start.Row || row > sel.End.Row {
		return 0, 0, false
	}
	start, end = 0, lineLen
	if row == sel.Start.Row {
		start = clampInt(sel.Start.Col, 0, lineLen)
	}
	if row == sel.End.Row {
		end = clampInt(sel.End.Col, 0, lineLen)
	}
	return start, end, start < end
}
