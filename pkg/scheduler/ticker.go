package scheduler

import (
	"context"
	"time"
)

// TickSource calls tick on a fixed cadence until ctx is cancelled
type TickSource interface {
	Start(ctx context.Context, tick func(now time.Time))
}

// IntervalTicker is a TickSource backed by time.Ticker. Dispatch hands each
// tick to the thread that owns alarm state, for example fyne.Do.
type IntervalTicker struct {
	Interval time.Duration
	Dispatch func(func())
	Now      func() time.Time
}

// NewIntervalTicker creates a ticker; a nil dispatch calls tick directly
func NewIntervalTicker(interval time.Duration, dispatch func(func())) *IntervalTicker {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &IntervalTicker{Interval: interval, Dispatch: dispatch, Now: time.Now}
}

// Start runs an immediate tick and then one per interval in a goroutine
func (t *IntervalTicker) Start(ctx context.Context, tick func(now time.Time)) {
	ticker := time.NewTicker(t.Interval)

	fire := func() {
		t.Dispatch(func() { tick(t.Now()) })
	}

	go func() {
		defer ticker.Stop()

		fire()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fire()
			}
		}
	}()
}
