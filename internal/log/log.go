// Package log writes leveled, categorized debug lines to a file.
// The terminal belongs to the editor UI, so nothing is printed to stdout.
// Logging stays off until Init or InitWithTeaLog succeeds, which the CLI
// does only under --debug or TEXCOMPLETE_DEBUG.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatEngine Category = "engine" // completion and tag sync decisions
	CatEditor Category = "editor" // key handling, cursor settle, guard
	CatConfig Category = "config" // configuration and table loading
	CatCLI    Category = "cli"    // command dispatch
)

type Logger struct {
	mu       sync.Mutex
	closer   io.Closer
	writer   io.Writer
	enabled  bool
	minLevel Level
	now      func() time.Time
}

var (
	mu            sync.Mutex
	defaultLogger *Logger
)

// Init opens path for appending and installs it as the global logger.
// The returned cleanup closes the file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: user-chosen debug log path
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	install(&Logger{closer: f, writer: f, enabled: true, now: time.Now})
	return func() { _ = f.Close() }, nil
}

// InitWithTeaLog routes the log through tea.LogToFile so Bubble Tea's own
// debug output lands in the same file.
func InitWithTeaLog(path, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	install(&Logger{closer: f, writer: f, enabled: true, now: time.Now})
	return func() { _ = f.Close() }, nil
}

// SetOutput installs w as the log destination. Passing nil disables
// logging.
func SetOutput(w io.Writer) {
	if w == nil {
		install(nil)
		return
	}
	install(&Logger{writer: w, enabled: true, now: time.Now})
}

func install(l *Logger) {
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
}

func current() *Logger {
	mu.Lock()
	defer mu.Unlock()
	return defaultLogger
}

// Enabled reports whether log lines are currently written anywhere.
func Enabled() bool {
	l := current()
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

func Debug(cat Category, msg string, fields ...any) { write(LevelDebug, cat, msg, fields...) }

func Info(cat Category, msg string, fields ...any) { write(LevelInfo, cat, msg, fields...) }

func Warn(cat Category, msg string, fields ...any) { write(LevelWarn, cat, msg, fields...) }

func Error(cat Category, msg string, fields ...any) { write(LevelError, cat, msg, fields...) }

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel || l.writer == nil {
		return
	}

	// 2026-01-02T10:45:00 [DEBUG] [engine] message key=value
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", l.now().Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&sb, " %v=<missing>", fields[len(fields)-1])
	}
	sb.WriteByte('\n')
	_, _ = io.WriteString(l.writer, sb.String())
}

// Printer adapts a category to the Printf-style hook that latex.Engine
// accepts.
type Printer Category

func (p Printer) Printf(format string, args ...any) {
	write(LevelDebug, Category(p), fmt.Sprintf(format, args...))
}
