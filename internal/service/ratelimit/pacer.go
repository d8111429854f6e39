package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Pacer serializes calls to an upstream source with a fixed inter-call
// delay. The external source rate-limits by courtesy, not by contract, so a
// fixed pause between calls is deliberate; a zero interval disables waiting,
// which is how tests run it.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewPacer creates a pacer with the given inter-call interval.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Wait blocks until at least the configured interval has passed since the
// previous Wait returned, or until ctx is done. The first call never waits.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	var sleep time.Duration
	now := time.Now()
	if !p.last.IsZero() && p.interval > 0 {
		if elapsed := now.Sub(p.last); elapsed < p.interval {
			sleep = p.interval - elapsed
		}
	}
	p.last = now.Add(sleep)
	p.mu.Unlock()

	if sleep <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(sleep)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Interval returns the configured inter-call delay.
func (p *Pacer) Interval() time.Duration { return p.interval }
