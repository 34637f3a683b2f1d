package darklaunch

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// DefaultDurationThreshold is the duration regression threshold applied when
// Config.DurationThreshold is zero.
const DefaultDurationThreshold = 100 * time.Millisecond

// Config holds caller-supplied proxy settings. The zero value is usable;
// defaults are merged in at construction and the config is immutable for the
// lifetime of the Proxy.
type Config struct {
	// DurationThreshold triggers a discrepancy report when the new execution
	// is slower than the old one by more than this amount, even if the values
	// are equal. The comparison is signed: a faster new implementation never
	// triggers a report. Zero selects DefaultDurationThreshold.
	DurationThreshold time.Duration

	// Equal decides whether the two results match. Defaults to JSONEquality.
	Equal EqualFunc

	// OnReport receives discrepancy reports from the compare modes. If nil,
	// comparisons are still timed and counted but no report is built.
	OnReport func(Report)

	// Logger receives invalid-mode warnings and swallowed internal failures.
	// Defaults to a slog adapter over slog.Default.
	Logger Logger

	// WaitForComparison blocks Call until the secondary execution, the
	// comparison, and the callback have fully settled. Off by default: the
	// caller's latency then reflects only the primary execution.
	WaitForComparison bool

	// CompareRate, when set, samples compare execution: calls that do not
	// obtain a token run the primary implementation alone.
	CompareRate *rate.Limiter

	// MaxConcurrentComparisons, when positive, caps in-flight secondary
	// executions. Calls that cannot take a slot immediately run the primary
	// implementation alone.
	MaxConcurrentComparisons int64
}

func (c Config) withDefaults() Config {
	if c.DurationThreshold == 0 {
		c.DurationThreshold = DefaultDurationThreshold
	}
	if c.Equal == nil {
		c.Equal = JSONEquality
	}
	if c.Logger == nil {
		c.Logger = NewSlogLogger(slog.Default())
	}
	return c
}
