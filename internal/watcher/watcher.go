// Package watcher reports edits to a single file, coalescing bursts of
// writes into one notification.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the file must stay quiet before a change is
// reported.
const DefaultDebounce = 250 * time.Millisecond

// Watcher signals when the watched file is written or replaced.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	changed  chan struct{}
	errs     chan error
	done     chan struct{}
	stopOnce sync.Once
	stopErr  error
}

// New watches path. A non-positive debounce uses DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		path:     abs,
		debounce: debounce,
		changed:  make(chan struct{}, 1),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start watches the file's directory, so saves that replace the file via
// rename are still seen.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	go w.loop()
	return nil
}

// Changed receives one value per quiet period after the file changed. It is
// closed once the watch loop exits.
func (w *Watcher) Changed() <-chan struct{} { return w.changed }

// Errors receives watch errors. Only the latest unread error is kept. It is
// closed once the watch loop exits.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Done is closed by Stop.
func (w *Watcher) Done() <-chan struct{} { return w.done }

// Path is the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Stop ends the watch. Later calls return the first call's result.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
		w.stopErr = w.fsw.Close()
	})
	return w.stopErr
}

func (w *Watcher) loop() {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		close(w.changed)
		close(w.errs)
	}()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.changed <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	return filepath.Clean(ev.Name) == w.path
}
