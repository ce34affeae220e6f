// Package notify reports the outcome of user-triggered operations. The CLI
// prints them; background work such as autosave also logs them.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Level is the severity of a notice.
type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

var symbols = map[Level]string{Info: "•", Success: "✓", Warning: "!", Error: "✗"}

// Notifier receives notices.
type Notifier interface {
	Notify(level Level, msg string)
}

// Func adapts a function to Notifier.
type Func func(level Level, msg string)

func (f Func) Notify(level Level, msg string) { f(level, msg) }

// Discard drops every notice.
var Discard Notifier = Func(func(Level, string) {})

// Writer prints notices one per line. Disabled writers still print errors,
// matching the toggle for toast popups.
type Writer struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
}

// NewWriter returns a Writer printing to w.
func NewWriter(w io.Writer, enabled bool) *Writer {
	return &Writer{w: w, enabled: enabled}
}

// SetEnabled toggles non-error notices.
func (p *Writer) SetEnabled(enabled bool) {
	p.mu.Lock()
	p.enabled = enabled
	p.mu.Unlock()
}

func (p *Writer) Notify(level Level, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled && level != Error {
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", symbols[level], msg)
}

// Logged wraps n so every notice is also written to the default logger.
func Logged(n Notifier) Notifier {
	return Func(func(level Level, msg string) {
		switch level {
		case Error:
			slog.Error(msg)
		case Warning:
			slog.Warn(msg)
		default:
			slog.Info(msg)
		}
		n.Notify(level, msg)
	})
}

// Errorf reports err with a message prefix.
func Errorf(n Notifier, err error, format string, args ...any) {
	n.Notify(Error, fmt.Sprintf(format, args...)+": "+err.Error())
}

// Notice is a recorded notification.
type Notice struct {
	Level   Level
	Message string
}

// Recorder keeps every notice it receives.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(level Level, msg string) {
	r.mu.Lock()
	r.notices = append(r.notices, Notice{Level: level, Message: msg})
	r.mu.Unlock()
}

// Notices returns a copy of what was recorded.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}
