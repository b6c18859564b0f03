// Package editor is a Bubble Tea component that edits a LaTeX equation
// buffer and drives a completion engine from its key input.
//
// Each text-changing keystroke is one input event. When a Completer is
// attached the editor hands it the text and cursor offset, writes the
// returned text back as a single undo step and schedules the returned
// cursor offset as a follow-up message, so the cursor lands only after the
// replaced text has been rendered. While that message is in flight further
// completion attempts are dropped.
package editor
