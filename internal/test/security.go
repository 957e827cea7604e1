package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/pkg/ratelimit"
)

// LimiterStub returns configured verdicts and counts calls.
type LimiterStub struct {
	CheckFn func(context.Context, string, int, time.Duration) (ratelimit.Result, error)
	Calls   []string
}

// CheckLimit allows every call unless overridden.
func (s *LimiterStub) CheckLimit(ctx context.Context, identifier string, maxAttempts int, window time.Duration) (ratelimit.Result, error) {
	s.Calls = append(s.Calls, identifier)
	if s.CheckFn != nil {
		return s.CheckFn(ctx, identifier, maxAttempts, window)
	}
	return ratelimit.Result{Allowed: true, Remaining: maxAttempts - 1}, nil
}

// RecorderStub captures recorded security events.
type RecorderStub struct {
	mu     sync.Mutex
	Events []model.SecurityEvent
	Err    error
}

// Record stores event.
func (s *RecorderStub) Record(ctx context.Context, event model.SecurityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, event)
	return s.Err
}

// Recorded returns a snapshot of recorded events.
func (s *RecorderStub) Recorded() []model.SecurityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.SecurityEvent(nil), s.Events...)
}

var _ ratelimit.Limiter = (*LimiterStub)(nil)
