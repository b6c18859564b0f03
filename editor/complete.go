package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/texcomplete/internal/log"
	"github.com/iw2rmb/texcomplete/latex"
)

// Completer transforms one input event. *latex.Engine implements it.
type Completer interface {
	Process(in latex.Input) (latex.Result, bool)
}

var _ Completer = (*latex.Engine)(nil)

// cursorSettleMsg carries a deferred cursor offset. It applies only while
// the buffer is still at the version produced by the write-back.
type cursorSettleMsg struct {
	id      int64
	version uint64
	offset  int
}

// Attach binds c to m. Attaching to a model that already has a completer
// returns m unchanged.
func Attach(m Model, c Completer) Model {
	if m.completer != nil || c == nil {
		return m
	}
	m.completer = c
	return m
}

// Attached reports whether a completer is bound.
func (m Model) Attached() bool { return m.completer != nil }

// Completing reports whether a write-back is waiting for its cursor.
func (m Model) Completing() bool { return m.guard.Held() }

// runCompleter feeds the current buffer to the completer after a
// text-changing keystroke. It returns the deferred cursor command when the
// buffer was rewritten.
func (m *Model) runCompleter(deleting bool) tea.Cmd {
	if m.completer == nil || m.cfg.ReadOnly {
		return nil
	}
	if !m.guard.TryAcquire() {
		log.Debug(log.CatEditor, "completion dropped", "reason", "in progress")
		return nil
	}

	res, ok := m.completer.Process(latex.Input{
		Text:     m.buf.Text(),
		Cursor:   m.buf.CursorOffset(),
		Deleting: deleting,
	})
	if !ok {
		m.guard.Release()
		return nil
	}

	m.buf.WriteBack(res.Text)
	m.pendingActions = res.Actions

	msg := cursorSettleMsg{id: m.id, version: m.buf.Version(), offset: res.Cursor}
	log.Debug(log.CatEditor, "completion applied", "actions", res.Actions, "cursor", res.Cursor)
	return func() tea.Msg { return msg }
}

func (m *Model) settleCursor(msg cursorSettleMsg) {
	defer m.guard.Release()
	if msg.version != m.buf.Version() {
		log.Debug(log.CatEditor, "cursor settle skipped", "want", msg.version, "have", m.buf.Version())
		return
	}
	m.buf.SetCursorOffset(msg.offset)
}
