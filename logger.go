package darklaunch

import "log/slog"

// Logger is the minimal logging surface the proxy needs: error-level
// reporting for invalid modes and swallowed internal failures.
type Logger interface {
	Error(msg string, keyvals ...any)
}

// NewSlogLogger adapts a slog.Logger to the proxy's Logger interface.
func NewSlogLogger(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

type slogLogger struct {
	l *slog.Logger
}

func (a *slogLogger) Error(msg string, keyvals ...any) {
	a.l.Error(msg, keyvals...)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Error(string, ...any) {}

// Compile-time checks.
var (
	_ Logger = (*slogLogger)(nil)
	_ Logger = NopLogger{}
)
