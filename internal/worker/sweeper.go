package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Housekeeper removes rows that no longer affect behaviour.
type Housekeeper interface {
	PruneRateLimits(ctx context.Context, cutoff time.Time) (int64, error)
	PruneSecurityEvents(ctx context.Context, cutoff time.Time) (int64, error)
}

// Retention configures how long rows are kept. A zero EventRetention keeps events forever.
type Retention struct {
	Interval       time.Duration
	RateWindow     time.Duration
	EventRetention time.Duration
}

type task struct {
	name   string
	maxAge time.Duration
	prune  func(context.Context, time.Time) (int64, error)
}

// Sweeper periodically prunes expired rate-limit windows and old security events.
type Sweeper struct {
	tasks    []task
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	jobs   chan task
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSweeper constructs a sweeper with one worker per prune task.
func NewSweeper(store Housekeeper, retention Retention, logger *slog.Logger) *Sweeper {
	interval := retention.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	tasks := []task{{name: "rate_limits", maxAge: retention.RateWindow, prune: store.PruneRateLimits}}
	if retention.EventRetention > 0 {
		tasks = append(tasks, task{name: "security_events", maxAge: retention.EventRetention, prune: store.PruneSecurityEvents})
	}
	return &Sweeper{
		tasks:    tasks,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		jobs:     make(chan task, len(tasks)),
	}
}

// Start launches background pruning.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for range s.tasks {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for in-flight prunes to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Sweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, t := range s.tasks {
				select {
				case <-ctx.Done():
					return
				case s.jobs <- t:
				}
			}
		}
	}
}

func (s *Sweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-s.jobs:
			if !ok {
				return
			}
			s.run(ctx, t)
		}
	}
}

func (s *Sweeper) run(ctx context.Context, t task) {
	cutoff := s.now().Add(-t.maxAge)
	removed, err := t.prune(ctx, cutoff)
	if err != nil {
		s.logger.Error("prune failed", slog.String("table", t.name), slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		s.logger.Debug("pruned rows", slog.String("table", t.name), slog.Int64("rows", removed))
	}
}
