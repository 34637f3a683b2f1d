// darklaunch-demo runs a stub pricing service through a darklaunch proxy,
// exercising every mode against an old and a deliberately divergent new
// implementation. Discrepancy reports are logged as warnings and proxy
// metrics are flushed to stdout on exit.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/finops-claw-gang/darklaunch"
	"github.com/finops-claw-gang/darklaunch/flagsource"
	"github.com/finops-claw-gang/darklaunch/reportlog"
)

func main() {
	mode := flag.String("mode", "new-compare", "dispatch mode (old, new, old-compare, new-compare); ignored if -flag-env is set")
	flagEnv := flag.String("flag-env", "", "environment variable to read the mode from on every call")
	calls := flag.Int("calls", 5, "number of quote calls to issue")
	threshold := flag.Duration("threshold", 50*time.Millisecond, "duration regression threshold")
	wait := flag.Bool("wait", false, "wait for comparison before returning each call")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	exporter, err := stdoutmetric.New(stdoutmetric.WithPrettyPrint())
	if err != nil {
		logger.Error("create stdout metric exporter", "error", err)
		os.Exit(2)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
	)
	otel.SetMeterProvider(mp)
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			logger.Error("metric provider shutdown", "error", err)
		}
	}()

	provider := flagsource.Static(*mode)
	if *flagEnv != "" {
		provider = flagsource.Env(*flagEnv)
	}

	proxy, err := darklaunch.New(oldPricing(), newPricing(), provider, darklaunch.Config{
		DurationThreshold: *threshold,
		WaitForComparison: *wait,
		Logger:            darklaunch.NewSlogLogger(logger),
		OnReport:          reportlog.Callback("pricing", reportlog.Slog(logger)),
	})
	if err != nil {
		logger.Error("create proxy", "error", err)
		os.Exit(2)
	}

	for i := 0; i < *calls; i++ {
		units := 3 + i
		quote, err := proxy.Call(ctx, "quote", "gp3-volume", units)
		if err != nil {
			logger.Error("quote failed", "units", units, "error", err)
			continue
		}
		logger.Info("quote", "units", units, "result", quote)

		// "discount" exists only in the old implementation, so every mode
		// falls back to it.
		discount, err := proxy.Call(ctx, "discount", units)
		if err != nil {
			logger.Error("discount failed", "units", units, "error", err)
			continue
		}
		logger.Info("discount", "units", units, "result", discount)
	}
}

// oldPricing is the incumbent implementation: per-unit price with a flat fee,
// rounded half-up to cents.
func oldPricing() darklaunch.Service {
	return darklaunch.Service{
		"quote": func(ctx context.Context, args ...any) (any, error) {
			sku, units, err := quoteArgs(args)
			if err != nil {
				return nil, err
			}
			total := math.Round((float64(units)*0.08+0.5)*100) / 100
			return map[string]any{"sku": sku, "units": units, "total": total}, nil
		},
		"discount": func(ctx context.Context, args ...any) (any, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("discount: want 1 arg, got %d", len(args))
			}
			units, ok := args[0].(int)
			if !ok {
				return nil, fmt.Errorf("discount: units must be int")
			}
			if units >= 5 {
				return 0.1, nil
			}
			return 0.0, nil
		},
	}
}

// newPricing is the replacement under test. It already applies the reduced
// flat fee that has not shipped in the old path, so quotes diverge, and it is
// a little slower. It does not implement "discount" yet.
func newPricing() darklaunch.Service {
	return darklaunch.Service{
		"quote": func(ctx context.Context, args ...any) (any, error) {
			sku, units, err := quoteArgs(args)
			if err != nil {
				return nil, err
			}
			time.Sleep(5 * time.Millisecond)
			total := math.Round((float64(units)*0.08+0.45)*100) / 100
			return map[string]any{"sku": sku, "units": units, "total": total}, nil
		},
	}
}

func quoteArgs(args []any) (string, int, error) {
	if len(args) != 2 {
		return "", 0, fmt.Errorf("quote: want 2 args, got %d", len(args))
	}
	sku, ok := args[0].(string)
	if !ok {
		return "", 0, fmt.Errorf("quote: sku must be string")
	}
	units, ok := args[1].(int)
	if !ok {
		return "", 0, fmt.Errorf("quote: units must be int")
	}
	return sku, units, nil
}
