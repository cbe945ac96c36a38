// Package ratelimiter throttles calls to quota-limited external APIs.
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter blocks until the caller may proceed.
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter allows at most limit calls per fixed window. Callers over the
// limit wait for the next window instead of failing.
type RateLimiter struct {
	mu          sync.Mutex
	limit       int
	interval    time.Duration
	count       int
	windowStart time.Time
	now         func() time.Time
}

// Compile-time check that RateLimiter implements Limiter.
var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter creates a RateLimiter. A limit below 1 disables limiting.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:       limit,
		interval:    interval,
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// reserve claims a slot and returns how long the caller must wait for it.
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for now.Sub(rl.windowStart) >= rl.interval {
		rl.windowStart = rl.windowStart.Add(rl.interval)
		rl.count = max(0, rl.count-rl.limit)
	}
	rl.count++
	if rl.count <= rl.limit {
		return 0
	}
	// Slot lies in a later window.
	windows := (rl.count - 1) / rl.limit
	return rl.windowStart.Add(time.Duration(windows) * rl.interval).Sub(now)
}

// release returns a reserved slot that was never used.
func (rl *RateLimiter) release() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.count > 0 {
		rl.count--
	}
}

// Wait returns once a slot is available or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit < 1 {
		return nil
	}
	wait := rl.reserve()
	if wait <= 0 {
		return nil
	}
	slog.Info("rate limit hit, waiting", "limit", rl.limit, "interval", rl.interval, "wait", wait)

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		rl.release()
		return ctx.Err()
	}
}
