// Package latex implements LaTeX command autocompletion over a single text
// buffer.
//
// The engine is stateless: each call takes the buffer text and a cursor
// (as a rune offset) and returns the replacement text and the cursor to
// restore once the host has applied it. Hosts own all mutable state,
// including the Guard that blocks re-entrant invocations.
package latex

import (
	"sync/atomic"
	"unicode/utf8"
)

// Input is one text-changed event from the host.
type Input struct {
	Text   string
	Cursor int
	// Deleting marks a backspace/delete keystroke. Completion is skipped
	// for deletions; tag synchronization still runs.
	Deleting bool
}

// Logger receives debug traces. *log.Logger from the standard library
// satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger traces every effective transformation to l.
func WithLogger(l Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine applies command completion, environment completion and tag
// synchronization against a fixed table.
type Engine struct {
	table Table
	log   Logger
}

// New returns an engine over a private copy of t.
func New(t Table, opts ...Option) *Engine {
	e := &Engine{table: t.Clone()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns a copy of the engine's table.
func (e *Engine) Table() Table { return e.table.Clone() }

// Process runs one input event through the engine. It returns false when
// nothing changed.
func (e *Engine) Process(in Input) (Result, bool) {
	cursor := clampInt(in.Cursor, 0, utf8.RuneCountInString(in.Text))
	res := Result{Text: in.Text, Cursor: cursor}
	changed := false

	if !in.Deleting {
		if r, ok := CompleteCommand(res.Text, res.Cursor, e.table); ok {
			res = res.then(r)
			changed = true
		} else if r, ok := CompleteEnvironment(res.Text, res.Cursor, e.table); ok {
			res = res.then(r)
			changed = true
		}
	}

	if r, ok := Sync(res.Text, res.Cursor); ok {
		res = res.then(r)
		changed = true
	}

	if !changed {
		return Result{}, false
	}
	if e.log != nil {
		e.log.Printf("latex: %v cursor %d -> %d", res.Actions, cursor, res.Cursor)
	}
	return res, true
}

// Guard is a non-blocking re-entrancy flag. A host acquires it before
// applying a Result and releases it once the deferred cursor placement has
// landed; attempts made in between fail and should be dropped.
type Guard struct {
	busy atomic.Bool
}

// TryAcquire takes the guard. It reports false when already held.
func (g *Guard) TryAcquire() bool { return g.busy.CompareAndSwap(false, true) }

// Release frees the guard.
func (g *Guard) Release() { g.busy.Store(false) }

// Held reports whether the guard is taken.
func (g *Guard) Held() bool { return g.busy.Load() }
