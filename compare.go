package darklaunch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// outcome is the result of running one implementation's operation: a value or
// a captured failure, paired with the elapsed wall-clock duration. Outcomes
// are local to one call and never shared.
type outcome struct {
	value   any
	err     error
	elapsed time.Duration
}

// result returns the value the comparator sees for this side: the captured
// error when the execution failed, the value otherwise.
func (o outcome) result() any {
	if o.err != nil {
		return o.err
	}
	return o.value
}

// compareCall runs both implementations concurrently. The primary execution
// (matching the mode) runs on the caller's goroutine and its result is
// returned as-is; the secondary runs on a sibling goroutine and is reconciled
// against the primary after the primary has settled, off the response path
// unless WaitForComparison is set.
func (p *Proxy) compareCall(ctx context.Context, mode Mode, method string, newOp Operation, args []any) (any, error) {
	oldOp, ok := p.old[method]
	if !ok {
		// Nothing to compare against on the old side either; run whatever
		// the mode's primary is.
		if mode == ModeNewCompare {
			return newOp(ctx, args...)
		}
		return nil, fmt.Errorf("darklaunch: %q: %w", method, ErrUnknownOperation)
	}

	if !p.acquireComparison() {
		// Sampling or concurrency budget exhausted: primary only.
		if mode == ModeNewCompare {
			return newOp(ctx, args...)
		}
		return oldOp(ctx, args...)
	}

	primary, secondary := oldOp, newOp
	if mode == ModeNewCompare {
		primary, secondary = newOp, oldOp
	}

	callID := uuid.NewString()

	secCh := make(chan outcome, 1)
	go func() {
		secCh <- runCaptured(ctx, secondary, args)
	}()

	prim := runTimed(ctx, primary, args)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer p.releaseComparison()
		sec := <-secCh
		p.reconcile(ctx, callID, mode, method, args, prim, sec)
	}()
	if p.cfg.WaitForComparison {
		<-done
	}
	return prim.value, prim.err
}

func (p *Proxy) acquireComparison() bool {
	if p.cfg.CompareRate != nil && !p.cfg.CompareRate.Allow() {
		return false
	}
	if p.sem != nil && !p.sem.TryAcquire(1) {
		return false
	}
	return true
}

func (p *Proxy) releaseComparison() {
	if p.sem != nil {
		p.sem.Release(1)
	}
}

// runTimed invokes op with the original arguments and times it with the
// monotonic clock, from just before invocation to just after it settles.
func runTimed(ctx context.Context, op Operation, args []any) outcome {
	start := time.Now()
	v, err := op(ctx, args...)
	return outcome{value: v, err: err, elapsed: time.Since(start)}
}

// runCaptured is runTimed for the secondary execution: a panic is captured as
// the outcome's error so it can never abort the sibling execution or the call.
func runCaptured(ctx context.Context, op Operation, args []any) (out outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out = outcome{
				err:     fmt.Errorf("darklaunch: secondary execution panic: %v", r),
				elapsed: time.Since(start),
			}
		}
	}()
	v, err := op(ctx, args...)
	return outcome{value: v, err: err, elapsed: time.Since(start)}
}

// reconcile maps the two outcomes back to old/new by mode, records metrics,
// evaluates equality, and emits at most one report. Every failure in here is
// absorbed and logged; by the time reconcile runs the caller's result is
// already determined.
func (p *Proxy) reconcile(ctx context.Context, callID string, mode Mode, method string, args []any, prim, sec outcome) {
	oldOut, newOut := prim, sec
	if mode == ModeNewCompare {
		oldOut, newOut = sec, prim
	}

	p.metrics.recordComparison(ctx, method)
	p.metrics.recordExecution(ctx, method, "old", oldOut.elapsed)
	p.metrics.recordExecution(ctx, method, "new", newOut.elapsed)

	if p.cfg.OnReport == nil {
		return
	}

	oldVal, newVal := oldOut.result(), newOut.result()
	verdict, err := p.safeEqual(oldVal, newVal, args)
	if err != nil {
		p.log.Error("equality function failed, skipping discrepancy report",
			"call_id", callID, "method", method, "error", err)
		return
	}

	if verdict.Equal && newOut.elapsed-oldOut.elapsed <= p.cfg.DurationThreshold {
		return
	}

	reason := "values"
	if verdict.Equal {
		reason = "duration"
	}
	p.metrics.recordDiscrepancy(ctx, method, reason)

	p.safeEmit(callID, Report{
		CallID:      callID,
		Mode:        mode,
		Method:      method,
		Args:        args,
		OldResult:   oldVal,
		NewResult:   newVal,
		OldDuration: oldOut.elapsed,
		NewDuration: newOut.elapsed,
		Metadata:    verdict.Metadata,
	})
}

// safeEqual runs the equality function, converting a panic into an error so a
// misbehaving comparator can only ever cost us the report, not the call.
func (p *Proxy) safeEqual(oldVal, newVal any, args []any) (v Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("darklaunch: equality function panic: %v", r)
		}
	}()
	return p.cfg.Equal(oldVal, newVal, args)
}

// safeEmit invokes the discrepancy callback, absorbing panics.
func (p *Proxy) safeEmit(callID string, r Report) {
	defer func() {
		if rec := recover(); rec != nil {
			p.log.Error("discrepancy callback panic",
				"call_id", callID, "method", r.Method, "error", rec)
		}
	}()
	p.cfg.OnReport(r)
}
