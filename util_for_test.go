package darklaunch

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// staticFlag is a provider that always yields the given string.
func staticFlag(mode string) FlagProvider {
	return func(context.Context) (string, error) {
		return mode, nil
	}
}

// constService builds a service where every named operation returns the
// corresponding fixed value.
func constService(values map[string]any) Service {
	svc := Service{}
	for name, v := range values {
		svc[name] = func(context.Context, ...any) (any, error) {
			return v, nil
		}
	}
	return svc
}

// captureLogger records Error calls for assertions.
type captureLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *captureLogger) Error(msg string, keyvals ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	parts := []string{msg}
	for _, kv := range keyvals {
		parts = append(parts, fmt.Sprint(kv))
	}
	l.entries = append(l.entries, strings.Join(parts, " "))
}

func (l *captureLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *captureLogger) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

// reportCapture records emitted discrepancy reports.
type reportCapture struct {
	mu      sync.Mutex
	reports []Report
}

func (c *reportCapture) callback() func(Report) {
	return func(r Report) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.reports = append(c.reports, r)
	}
}

func (c *reportCapture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reports)
}

func (c *reportCapture) all() []Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Report, len(c.reports))
	copy(out, c.reports)
	return out
}
