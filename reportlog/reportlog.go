// Package reportlog formats darklaunch discrepancy reports as single warning
// lines for a generic logger. It is a convenience collaborator: none of the
// dispatch or comparison logic depends on it.
package reportlog

import (
	"fmt"
	"log/slog"

	"github.com/rs/zerolog"

	"github.com/finops-claw-gang/darklaunch"
)

// Logger is the minimal surface the adapter writes to.
type Logger interface {
	Warn(msg string, keyvals ...any)
}

// Callback returns an OnReport function that logs each report as one warning
// line tagged with the given label.
func Callback(label string, l Logger) func(darklaunch.Report) {
	return func(r darklaunch.Report) {
		l.Warn(Line(label, r))
	}
}

// Line renders a report plus a caller-chosen label into a single
// human-readable line.
func Line(label string, r darklaunch.Report) string {
	return fmt.Sprintf("%s: %s diverged (mode=%s call=%s): old=%v in %s, new=%v in %s",
		label, r.Method, r.Mode, r.CallID,
		r.OldResult, r.OldDuration, r.NewResult, r.NewDuration)
}

// Slog adapts a slog.Logger.
func Slog(l *slog.Logger) Logger {
	return slogAdapter{l: l}
}

type slogAdapter struct {
	l *slog.Logger
}

func (a slogAdapter) Warn(msg string, keyvals ...any) {
	a.l.Warn(msg, keyvals...)
}

// Zerolog adapts a zerolog.Logger.
func Zerolog(l zerolog.Logger) Logger {
	return zerologAdapter{l: l}
}

type zerologAdapter struct {
	l zerolog.Logger
}

func (a zerologAdapter) Warn(msg string, keyvals ...any) {
	ev := a.l.Warn()
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}
		ev = ev.Interface(key, keyvals[i+1])
	}
	ev.Msg(msg)
}
