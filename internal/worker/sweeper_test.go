package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	testhelpers "github.com/polkiloo/printshop/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestSweeperPrunesOnInterval(t *testing.T) {
	store := &testhelpers.HousekeeperStub{RowsRemoved: 2}
	sweeper := NewSweeper(store, Retention{
		Interval:       5 * time.Millisecond,
		RateWindow:     time.Minute,
		EventRetention: 24 * time.Hour,
	}, discardLogger())
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sweeper.now = func() time.Time { return now }

	sweeper.Start(context.Background())
	deadline := time.After(time.Second)
	for {
		limits, events := store.Calls()
		if limits > 0 && events > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("expected both prunes to run, got %d/%d", limits, events)
		case <-time.After(5 * time.Millisecond):
		}
	}
	sweeper.Stop()

	if got := store.RateLimits[0]; !got.Equal(now.Add(-time.Minute)) {
		t.Fatalf("unexpected rate limit cutoff %v", got)
	}
	if got := store.Events[0]; !got.Equal(now.Add(-24 * time.Hour)) {
		t.Fatalf("unexpected event cutoff %v", got)
	}
}

func TestSweeperKeepsEventsWithoutRetention(t *testing.T) {
	store := &testhelpers.HousekeeperStub{}
	sweeper := NewSweeper(store, Retention{RateWindow: time.Minute}, discardLogger())
	if len(sweeper.tasks) != 1 || sweeper.tasks[0].name != "rate_limits" {
		t.Fatalf("expected only rate limit task, got %+v", sweeper.tasks)
	}
	if sweeper.interval != time.Hour {
		t.Fatalf("expected default interval, got %v", sweeper.interval)
	}
}

func TestSweeperRunSurvivesErrors(t *testing.T) {
	store := &testhelpers.HousekeeperStub{Err: errors.New("db down")}
	sweeper := NewSweeper(store, Retention{RateWindow: time.Minute}, discardLogger())
	sweeper.run(context.Background(), sweeper.tasks[0])
	if limits, _ := store.Calls(); limits != 1 {
		t.Fatalf("expected prune attempt, got %d", limits)
	}
}

func TestSweeperStopWithoutStart(t *testing.T) {
	sweeper := NewSweeper(&testhelpers.HousekeeperStub{}, Retention{}, discardLogger())
	done := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop must not block before start")
	}
}
