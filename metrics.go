package darklaunch

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// metrics holds the OTel instruments recorded during compare execution.
type metrics struct {
	comparisons   metric.Int64Counter
	discrepancies metric.Int64Counter
	execDuration  metric.Float64Histogram
}

func newMetrics() (*metrics, error) {
	meter := otel.Meter("darklaunch")

	comparisons, err := meter.Int64Counter("darklaunch.comparisons",
		metric.WithDescription("Number of calls that entered compare execution"),
	)
	if err != nil {
		return nil, err
	}

	discrepancies, err := meter.Int64Counter("darklaunch.discrepancies",
		metric.WithDescription("Number of discrepancy reports emitted"),
	)
	if err != nil {
		return nil, err
	}

	execDuration, err := meter.Float64Histogram("darklaunch.execution.duration_seconds",
		metric.WithDescription("Wall-clock duration of each implementation's execution"),
	)
	if err != nil {
		return nil, err
	}

	return &metrics{
		comparisons:   comparisons,
		discrepancies: discrepancies,
		execDuration:  execDuration,
	}, nil
}

func (m *metrics) recordComparison(ctx context.Context, method string) {
	m.comparisons.Add(ctx, 1,
		metric.WithAttributes(attribute.String("method", method)),
	)
}

func (m *metrics) recordExecution(ctx context.Context, method, side string, d time.Duration) {
	m.execDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("side", side),
		),
	)
}

func (m *metrics) recordDiscrepancy(ctx context.Context, method, reason string) {
	m.discrepancies.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("reason", reason),
		),
	)
}
