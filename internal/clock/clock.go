// Package clock drives the one-second game timer. The board only counts
// ticks; this package decides when they happen.
package clock

import (
	"context"
	"time"
)

type Ticker interface {
	Tick() int
}

// Drive calls t.Tick once for every value received on ticks. It returns
// ctx.Err() when the context is cancelled and nil once ticks is closed.
func Drive(ctx context.Context, ticks <-chan time.Time, t Ticker) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			t.Tick()
		}
	}
}

type Clock struct {
	Interval time.Duration
}

func New(interval time.Duration) *Clock {
	if interval <= 0 {
		interval = time.Second
	}
	return &Clock{Interval: interval}
}

// Run ticks t every Interval until ctx is done.
func (c *Clock) Run(ctx context.Context, t Ticker) error {
	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()
	return Drive(ctx, ticker.C, t)
}
