// Package log wraps log/slog with a component-scoped logger so every line
// carries which part of the app emitted it.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Logger adds a fixed component attribute on top of slog.
type Logger struct {
	*slog.Logger
	handler   slog.Handler
	component string
}

// Options configures handler construction.
type Options struct {
	Level  slog.Level
	JSON   bool
	Output io.Writer
}

// New builds a component logger. A nil-ish Options zero value means
// info-level text logging to stdout.
func New(component string, opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	ho := &slog.HandlerOptions{Level: opts.Level}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(out, ho)
	} else {
		h = slog.NewTextHandler(out, ho)
	}
	return &Logger{
		Logger:    slog.New(h).With(FieldComponent, component),
		handler:   h,
		component: component,
	}
}

// WithComponent derives a logger for another component sharing the same
// handler. The component attribute is replaced, not stacked.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    slog.New(l.handler).With(FieldComponent, component),
		handler:   l.handler,
		component: component,
	}
}

// With returns a logger carrying extra attributes on every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), handler: l.handler, component: l.component}
}

// Component reports the component this logger is scoped to.
func (l *Logger) Component() string {
	return l.component
}

// SetDefault installs the logger as the process-wide slog default.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}
