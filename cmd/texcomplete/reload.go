package main

import (
	"errors"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/texcomplete/internal/log"
	"github.com/iw2rmb/texcomplete/internal/watcher"
	"github.com/iw2rmb/texcomplete/latex"
)

var errNoTable = errors.New("--watch needs a --table file")

// swapEngine is an editor.Completer whose engine can be replaced while the
// editor runs.
type swapEngine struct {
	cur atomic.Pointer[latex.Engine]
}

func newSwapEngine(e *latex.Engine) *swapEngine {
	s := &swapEngine{}
	s.cur.Store(e)
	return s
}

func (s *swapEngine) Store(e *latex.Engine) { s.cur.Store(e) }

func (s *swapEngine) Process(in latex.Input) (latex.Result, bool) {
	return s.cur.Load().Process(in)
}

type (
	tableChangedMsg  struct{}
	tableWatchErrMsg struct{ err error }
)

// waitForTable blocks on the next watcher event. A nil watcher yields no
// command, and a stopped one a nil message.
func waitForTable(w *watcher.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-w.Changed():
			if !ok {
				return nil
			}
			return tableChangedMsg{}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return tableWatchErrMsg{err: err}
		case <-w.Done():
			return nil
		}
	}
}

func (a *app) startTableWatch() (*watcher.Watcher, error) {
	if a.cfg.Table == "" {
		return nil, errNoTable
	}
	w, err := watcher.New(a.cfg.Table, watcher.DefaultDebounce)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		_ = w.Stop()
		return nil, err
	}
	log.Info(log.CatConfig, "watching table", "path", w.Path())
	return w, nil
}

// reloadEngine rereads the configured table. On error the caller keeps the
// current engine.
func (a *app) reloadEngine() (*latex.Engine, error) {
	t, err := a.cfg.LoadTable()
	if err != nil {
		return nil, err
	}
	log.Info(log.CatConfig, "table reloaded", "commands", len(t.Commands), "environments", len(t.Environments))
	return a.newEngine(t), nil
}
