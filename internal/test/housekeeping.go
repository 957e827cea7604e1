package test

import (
	"context"
	"sync"
	"time"
)

// HousekeeperStub records prune cutoffs per table.
type HousekeeperStub struct {
	mu          sync.Mutex
	RateLimits  []time.Time
	Events      []time.Time
	Err         error
	RowsRemoved int64
}

// PruneRateLimits records cutoff.
func (s *HousekeeperStub) PruneRateLimits(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RateLimits = append(s.RateLimits, cutoff)
	return s.RowsRemoved, s.Err
}

// PruneSecurityEvents records cutoff.
func (s *HousekeeperStub) PruneSecurityEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, cutoff)
	return s.RowsRemoved, s.Err
}

// Calls returns how many prunes ran per table.
func (s *HousekeeperStub) Calls() (rateLimits, events int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.RateLimits), len(s.Events)
}
