package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/texcomplete/buffer"
	"github.com/iw2rmb/texcomplete/latex"
)

type countingCompleter struct {
	calls  int
	inputs []latex.Input
	next   Completer
}

func (c *countingCompleter) Process(in latex.Input) (latex.Result, bool) {
	c.calls++
	c.inputs = append(c.inputs, in)
	return c.next.Process(in)
}

func alphaEngine() *latex.Engine {
	return latex.New(latex.Table{Commands: []latex.CommandEntry{{Command: `\alpha`}}})
}

func TestComplete_CursorSettlesAfterWriteBack(t *testing.T) {
	m := New(Config{Text: `\al`, Completer: alphaEngine()})
	m.buf.SetCursor(buffer.Pos{Col: 3})

	m, cmd := m.Update(runes("p"))
	if got := m.buf.Text(); got != `\alpha` {
		t.Fatalf("text after completion: got %q", got)
	}
	if cmd == nil {
		t.Fatalf("expected a deferred cursor command")
	}
	if got := m.buf.Cursor(); got != (buffer.Pos{Col: 4}) {
		t.Fatalf("cursor must not move before the settle message: got %v", got)
	}
	if !m.Completing() {
		t.Fatalf("guard should be held until the cursor settles")
	}

	m, _ = m.Update(cmd())
	if got := m.buf.CursorOffset(); got != 6 {
		t.Fatalf("cursor after settle: got %d, want 6", got)
	}
	if m.Completing() {
		t.Fatalf("guard should be released after the settle message")
	}
}

func TestComplete_DeletionSkipsCompletion(t *testing.T) {
	cc := &countingCompleter{next: alphaEngine()}
	m := New(Config{Text: `\alph`, Completer: cc})
	m.buf.SetCursor(buffer.Pos{Col: 5})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if cmd != nil {
		t.Fatalf("deletion must not complete")
	}
	if got := m.buf.Text(); got != `\alp` {
		t.Fatalf("text: got %q", got)
	}
	if cc.calls != 1 || !cc.inputs[0].Deleting {
		t.Fatalf("completer should see one deleting event, got %+v", cc.inputs)
	}
}

func TestComplete_MovementIsNotAnInputEvent(t *testing.T) {
	cc := &countingCompleter{next: alphaEngine()}
	m := New(Config{Text: `\al`, Completer: cc})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if cc.calls != 0 {
		t.Fatalf("completer called %d times for non-text keys", cc.calls)
	}
}

func TestComplete_NestedAttemptIsDropped(t *testing.T) {
	cc := &countingCompleter{next: alphaEngine()}
	m := New(Config{Text: `\al`, Completer: cc})
	m.buf.SetCursor(buffer.Pos{Col: 3})

	m, settle := m.Update(runes("p"))
	if settle == nil || cc.calls != 1 {
		t.Fatalf("first keystroke should complete (calls=%d)", cc.calls)
	}

	// A keystroke that lands before the cursor settles edits the buffer but
	// never reaches the completer.
	m, cmd := m.Update(runes("x"))
	if cmd != nil || cc.calls != 1 {
		t.Fatalf("nested attempt reached the completer (calls=%d)", cc.calls)
	}
	if got := m.buf.Text(); got != `\alpxha` {
		t.Fatalf("text: got %q", got)
	}

	// The stale settle message is discarded but frees the guard.
	m, _ = m.Update(settle())
	if got := m.buf.CursorOffset(); got != 5 {
		t.Fatalf("stale settle moved the cursor to %d", got)
	}
	if m.Completing() {
		t.Fatalf("guard should be released")
	}

	m, _ = m.Update(runes("y"))
	if cc.calls != 2 {
		t.Fatalf("completer should run again after release (calls=%d)", cc.calls)
	}
}

func TestComplete_SettleForOtherEditorIsIgnored(t *testing.T) {
	a := New(Config{Text: `\al`, Completer: alphaEngine()})
	b := New(Config{Text: `\al`, Completer: alphaEngine()})
	a.buf.SetCursor(buffer.Pos{Col: 3})
	b.buf.SetCursor(buffer.Pos{Col: 3})

	_, cmd := a.Update(runes("p"))
	b, _ = b.Update(cmd())
	if got := b.buf.CursorOffset(); got != 3 {
		t.Fatalf("foreign settle moved the cursor to %d", got)
	}
}

func TestComplete_TypingAnEnvironment(t *testing.T) {
	m := New(Config{Completer: latex.New(latex.DefaultTable())})

	m = typeText(t, m, `\beg`)
	if got, want := m.buf.Text(), "\\begin{}\n\n\\end{}"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got := m.buf.CursorOffset(); got != 7 {
		t.Fatalf("cursor: got %d, want 7", got)
	}

	m = typeText(t, m, "m")
	if got, want := m.buf.Text(), "\\begin{matrix}\n\n\\end{matrix}"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got := m.buf.CursorOffset(); got != 13 {
		t.Fatalf("cursor: got %d, want 13", got)
	}

	// The write-back is one undo step.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got, want := m.buf.Text(), "\\begin{m}\n\n\\end{}"; got != want {
		t.Fatalf("undo: got %q, want %q", got, want)
	}
}

func TestComplete_TypingInsideBeginName(t *testing.T) {
	m := New(Config{Text: "\\begin{aign}\n\n\\end{aign}", Completer: latex.New(latex.DefaultTable())})
	m.buf.SetCursor(buffer.Pos{Col: 8})

	m = typeText(t, m, "l")
	if got, want := m.buf.Text(), "\\begin{align}\n\n\\end{align}"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got := m.buf.CursorOffset(); got != 9 {
		t.Fatalf("cursor: got %d, want 9", got)
	}
}

func TestComplete_OnChangeReportsHostWriteBack(t *testing.T) {
	var events []ChangeEvent
	m := New(Config{
		Text:      `\al`,
		Completer: alphaEngine(),
		OnChange:  func(ev ChangeEvent) { events = append(events, ev) },
	})
	m.buf.SetCursor(buffer.Pos{Col: 3})
	events = nil

	m, cmd := m.Update(runes("p"))
	if len(events) != 1 {
		t.Fatalf("events: got %d, want 1", len(events))
	}
	ev := events[0]
	if ev.Source != buffer.ChangeSourceHost || ev.Text != `\alpha` {
		t.Fatalf("event: %+v", ev)
	}
	if len(ev.Actions) != 1 || ev.Actions[0] != latex.ActionComplete {
		t.Fatalf("actions: %v", ev.Actions)
	}

	_, _ = m.Update(cmd())
	if len(events) != 2 || events[1].Cursor != (buffer.Pos{Col: 6}) || events[1].Actions != nil {
		t.Fatalf("settle event: %+v", events)
	}
}

func TestAttach_IsIdempotent(t *testing.T) {
	first := alphaEngine()
	m := New(Config{})
	if m.Attached() {
		t.Fatalf("no completer configured")
	}

	m = Attach(m, first)
	m = Attach(m, latex.New(latex.DefaultTable()))
	if !m.Attached() || m.completer != Completer(first) {
		t.Fatalf("second attach must not replace the first completer")
	}

	m = Attach(New(Config{}), nil)
	if m.Attached() {
		t.Fatalf("attaching nil is a no-op")
	}
}
