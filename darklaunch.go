// Package darklaunch routes calls between an old and a new implementation of an
// asynchronous service, selected per call by an external flag, and can run both
// implementations side by side to surface behavioral or performance regressions
// before a full cutover.
//
// A service is a map of named operations. The proxy resolves a mode from the
// flag provider on every call, invokes one or both implementations, and in the
// compare modes reconciles the two outcomes off the caller's response path,
// reporting discrepancies through a caller-supplied callback.
package darklaunch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Operation is a single named asynchronous operation of a service. It must be
// safe to invoke from multiple goroutines; in the compare modes the proxy runs
// old and new operations concurrently with the same arguments, so operations
// compared against each other should be side-effect-free and idempotent.
type Operation func(ctx context.Context, args ...any) (any, error)

// Service is a named set of asynchronous operations. The old service is
// expected to define every operation; the new service may define a subset
// while it is being built out.
type Service map[string]Operation

// ErrUnknownOperation is returned when neither implementation resolves a
// requested operation name.
var ErrUnknownOperation = errors.New("unknown operation")

// Proxy dispatches calls to an old and a new implementation according to the
// mode resolved per call. A Proxy is immutable after construction and safe for
// concurrent use.
type Proxy struct {
	old  Service
	new  Service
	flag FlagProvider
	cfg  Config
	log  Logger

	metrics *metrics
	sem     *semaphore.Weighted
}

// New creates a Proxy over the two implementations. newSvc may be nil or
// partial; operations it does not define always fall back to oldSvc, in every
// mode. The config is merged with defaults and owned by the Proxy afterwards.
func New(oldSvc, newSvc Service, flag FlagProvider, cfg Config) (*Proxy, error) {
	if oldSvc == nil {
		return nil, errors.New("darklaunch: old service is required")
	}
	if flag == nil {
		return nil, errors.New("darklaunch: flag provider is required")
	}
	cfg = cfg.withDefaults()

	m, err := newMetrics()
	if err != nil {
		return nil, fmt.Errorf("darklaunch: create metrics: %w", err)
	}

	p := &Proxy{
		old:     oldSvc,
		new:     newSvc,
		flag:    flag,
		cfg:     cfg,
		log:     cfg.Logger,
		metrics: m,
	}
	if cfg.MaxConcurrentComparisons > 0 {
		p.sem = semaphore.NewWeighted(cfg.MaxConcurrentComparisons)
	}
	return p, nil
}

// Call resolves the current mode and invokes the operation on the
// implementation(s) the mode selects, returning the primary result.
//
// A failure of the selected implementation is returned unmodified. A failure
// of the flag provider is returned unmodified as well, since no mode could be
// determined. An invalid mode string is logged and silently downgraded to
// ModeOld.
func (p *Proxy) Call(ctx context.Context, method string, args ...any) (any, error) {
	raw, err := p.flag(ctx)
	if err != nil {
		return nil, err
	}
	mode, ok := ParseMode(raw)
	if !ok {
		p.log.Error("invalid mode from flag provider, falling back to old",
			"mode", raw, "method", method)
		mode = ModeOld
	}

	newOp, hasNew := p.new[method]
	switch {
	case mode == ModeNew && hasNew:
		return newOp(ctx, args...)
	case mode.compares() && hasNew:
		return p.compareCall(ctx, mode, method, newOp, args)
	default:
		// ModeOld, downgraded invalid modes, and every mode for operations
		// the new implementation does not define. Compare modes degrade to a
		// plain old-implementation call here: there is nothing to compare
		// against.
		oldOp, ok := p.old[method]
		if !ok {
			return nil, fmt.Errorf("darklaunch: %q: %w", method, ErrUnknownOperation)
		}
		return oldOp(ctx, args...)
	}
}
