package securitylog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/polkiloo/printshop/internal/domain/model"
)

type captureRecorder struct {
	events []model.SecurityEvent
	err    error
}

func (c *captureRecorder) Record(_ context.Context, event model.SecurityEvent) error {
	c.events = append(c.events, event)
	return c.err
}

type fakeEventRepo struct {
	appended []model.SecurityEvent
	err      error
}

func (f *fakeEventRepo) Append(_ context.Context, e model.SecurityEvent) error {
	f.appended = append(f.appended, e)
	return f.err
}

func (f *fakeEventRepo) ListRecent(context.Context, int) ([]model.SecurityEvent, error) {
	return f.appended, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestLogRecorderWritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	rec := NewLogRecorder(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := rec.Record(context.Background(), model.SecurityEvent{
		Type:     model.SecurityEventRateLimited,
		Reason:   "Too many upload attempts",
		ClientIP: "10.0.0.9",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log: %v", err)
	}
	if entry["level"] != "WARN" || entry["event_type"] != "rate_limited" || entry["client_ip"] != "10.0.0.9" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestStoreRecorderAppends(t *testing.T) {
	repo := &fakeEventRepo{}
	rec := NewStoreRecorder(repo)
	if err := rec.Record(context.Background(), model.SecurityEvent{Reason: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.appended) != 1 {
		t.Fatalf("expected append, got %d", len(repo.appended))
	}

	repo.err = errors.New("db down")
	if err := rec.Record(context.Background(), model.SecurityEvent{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestFanOutSanitizesAndStamps(t *testing.T) {
	first, second := &captureRecorder{}, &captureRecorder{}
	fan := NewFanOut(discardLogger(), Sink{Name: "a", Recorder: first}, Sink{Name: "b", Recorder: second})
	fan.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	err := fan.Record(context.Background(), model.SecurityEvent{
		Type:     model.SecurityEventSuspiciousFile,
		FileName: "../../etc/passwd\x00.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, rec := range []*captureRecorder{first, second} {
		if len(rec.events) != 1 {
			t.Fatalf("expected one event, got %d", len(rec.events))
		}
		got := rec.events[0]
		if strings.ContainsAny(got.FileName, "/\x00") {
			t.Fatalf("file name not sanitized: %q", got.FileName)
		}
		if got.OccurredAt.IsZero() {
			t.Fatal("expected timestamp")
		}
	}
}

func TestFanOutSurvivesFailingSink(t *testing.T) {
	var buf bytes.Buffer
	failing := &captureRecorder{err: errors.New("broker unavailable")}
	healthy := &captureRecorder{}
	fan := NewFanOut(slog.New(slog.NewJSONHandler(&buf, nil)),
		Sink{Name: "kafka", Recorder: failing},
		Sink{Name: "postgres", Recorder: healthy},
	)

	if err := fan.Record(context.Background(), model.SecurityEvent{Type: model.SecurityEventValidationFailed}); err != nil {
		t.Fatalf("fan-out must not fail the caller: %v", err)
	}
	if len(healthy.events) != 1 {
		t.Fatal("later sinks must still receive the event")
	}
	if !strings.Contains(buf.String(), `"sink":"kafka"`) {
		t.Fatalf("expected sink failure to be logged, got %s", buf.String())
	}
}
