package chesscom

import (
	"context"
	"time"
)

// Throttle spaces requests so that one never starts less than Interval after
// the previous one finished. It is not safe for concurrent use; the Client
// serializes access.
type Throttle struct {
	Interval time.Duration
	// Now and Sleep default to the wall clock and a context-aware sleep.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error

	last time.Time
}

func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{Interval: interval}
}

// Wait blocks until the next request may start.
func (t *Throttle) Wait(ctx context.Context) error {
	if t.last.IsZero() || t.Interval <= 0 {
		return ctx.Err()
	}
	remaining := t.Interval - t.now().Sub(t.last)
	if remaining <= 0 {
		return ctx.Err()
	}
	return t.sleep(ctx, remaining)
}

// Done records the completion time of a request, successful or not.
func (t *Throttle) Done() {
	t.last = t.now()
}

func (t *Throttle) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *Throttle) sleep(ctx context.Context, d time.Duration) error {
	if t.Sleep != nil {
		return t.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
