package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result is the outcome of a single CheckLimit call.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter counts attempts per identifier in fixed windows.
// The first call for an identifier, or the first call after its window
// elapsed, starts a new window with a count of one. Further calls are
// allowed while the count is below maxAttempts.
type Limiter interface {
	CheckLimit(ctx context.Context, identifier string, maxAttempts int, window time.Duration) (Result, error)
}

type counter struct {
	count       int
	windowStart time.Time
	window      time.Duration
}

// pruneThreshold bounds how many identifiers are tracked before expired windows are dropped.
const pruneThreshold = 10000

// MemoryLimiter keeps counters in process memory. Counters are not shared
// between instances, so it only fits single-process deployments.
type MemoryLimiter struct {
	mu       sync.Mutex
	counters map[string]*counter
	now      func() time.Time
}

// NewMemoryLimiter constructs MemoryLimiter using wall clock time.
func NewMemoryLimiter() *MemoryLimiter {
	return NewMemoryLimiterWithClock(time.Now)
}

// NewMemoryLimiterWithClock constructs MemoryLimiter with a custom clock.
func NewMemoryLimiterWithClock(now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{counters: make(map[string]*counter), now: now}
}

// CheckLimit records an attempt for identifier.
func (l *MemoryLimiter) CheckLimit(_ context.Context, identifier string, maxAttempts int, window time.Duration) (Result, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.counters) >= pruneThreshold {
		l.pruneLocked(now)
	}

	c, ok := l.counters[identifier]
	if !ok || now.Sub(c.windowStart) > window {
		c = &counter{count: 1, windowStart: now, window: window}
		l.counters[identifier] = c
		return Result{Allowed: maxAttempts > 0, Remaining: remaining(maxAttempts, c.count), ResetAt: now.Add(window)}, nil
	}

	resetAt := c.windowStart.Add(window)
	if c.count >= maxAttempts {
		return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}, nil
	}
	c.count++
	return Result{Allowed: true, Remaining: remaining(maxAttempts, c.count), ResetAt: resetAt}, nil
}

// Len reports how many identifiers are tracked.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.counters)
}

func (l *MemoryLimiter) pruneLocked(now time.Time) {
	for id, c := range l.counters {
		if now.Sub(c.windowStart) > c.window {
			delete(l.counters, id)
		}
	}
}

func remaining(maxAttempts, count int) int {
	if count >= maxAttempts {
		return 0
	}
	return maxAttempts - count
}
