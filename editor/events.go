package editor

import (
	"github.com/iw2rmb/texcomplete/buffer"
	"github.com/iw2rmb/texcomplete/latex"
)

type ChangeEvent struct {
	Version   uint64
	Cursor    buffer.Pos
	Selection struct {
		Range  buffer.Range
		Active bool
	}

	// Source is ChangeSourceHost when the last change was a completion
	// write-back. Actions lists what the engine did in that case.
	Source  buffer.ChangeSource
	Actions []latex.Action

	Text string
}

func buildChangeEvent(b *buffer.Buffer, actions []latex.Action) ChangeEvent {
	ev := ChangeEvent{
		Version: b.Version(),
		Cursor:  b.Cursor(),
		Text:    b.Text(),
		Actions: actions,
	}
	if c, ok := b.LastChange(); ok {
		ev.Source = c.Source
	}
	if r, ok := b.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Range = r
	}
	return ev
}
