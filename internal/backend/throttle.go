package backend

import (
	"context"
	"sync"
	"time"
)

// pacer spaces checkpoint listings so a slow server is never asked twice
// within gap. A zero gap disables pacing.
type pacer struct {
	gap time.Duration

	mu       sync.Mutex
	earliest time.Time
}

func newPacer(gap time.Duration) *pacer {
	if gap < 0 {
		gap = 0
	}
	return &pacer{gap: gap}
}

// reserve claims the next slot and reports how long the caller must wait
// before using it.
func (p *pacer) reserve(now time.Time) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	slot := p.earliest
	if slot.Before(now) {
		slot = now
	}
	p.earliest = slot.Add(p.gap)
	return slot.Sub(now)
}

// wait blocks until the caller's slot arrives or ctx ends.
func (p *pacer) wait(ctx context.Context) error {
	if p == nil || p.gap == 0 {
		return ctx.Err()
	}
	delay := p.reserve(time.Now())
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
