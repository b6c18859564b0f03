package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/texcomplete/buffer"
)

// doubleClickWindow is the longest gap between two presses on the same
// position that still counts as a double click.
const doubleClickWindow = 400 * time.Millisecond

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	if !m.focused || m.buf == nil {
		return m, cmd
	}

	// Only left button interactions move the cursor or select.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.mouseInBounds(msg.X, msg.Y) {
			return m, cmd
		}
		p := m.screenToDocPos(msg.X, msg.Y)
		if msg.Shift {
			anchor := m.buf.Cursor()
			if r, ok := m.buf.Selection(); ok {
				anchor = r.Start
			}
			m.mouseAnchor = anchor
			m.buf.SetCursor(p)
			m.buf.SetSelection(buffer.Range{Start: anchor, End: p})
		} else if m.isDoubleClick(p) {
			m.lastClickAt = time.Time{}
			m.selectWordAt(p)
			return m, cmd
		} else {
			m.mouseAnchor = p
			m.buf.SetCursor(p)
			m.buf.ClearSelection()
		}
		m.lastClickAt, m.lastClickPos = time.Now(), p
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, cmd
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		p := m.screenToDocPos(x, y)
		m.buf.SetCursor(p)
		m.buf.SetSelection(buffer.Range{Start: m.mouseAnchor, End: p})

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}

	return m, cmd
}

func (m Model) isDoubleClick(p buffer.Pos) bool {
	return !m.lastClickAt.IsZero() && p == m.lastClickPos && time.Since(m.lastClickAt) <= doubleClickWindow
}

// selectWordAt selects the command or word under p, so a double click on
// \alpha selects all of it including the backslash.
func (m *Model) selectWordAt(p buffer.Pos) {
	r, ok := m.buf.WordAt(p)
	if !ok {
		return
	}
	m.mouseAnchor = r.Start
	m.mouseDragging = false
	m.buf.SetCursor(r.End)
	m.buf.SetSelection(r)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}
