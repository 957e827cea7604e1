package securitylog

import (
	"context"
	"log/slog"
	"time"

	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/domain/repository"
	"github.com/polkiloo/printshop/internal/pkg/upload"
)

// Recorder stores security events about rejected uploads.
type Recorder interface {
	Record(ctx context.Context, event model.SecurityEvent) error
}

// LogRecorder writes events to the structured application log.
type LogRecorder struct {
	logger *slog.Logger
}

// NewLogRecorder creates LogRecorder.
func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

func (r *LogRecorder) Record(ctx context.Context, event model.SecurityEvent) error {
	r.logger.LogAttrs(ctx, slog.LevelWarn, "upload security event",
		slog.String("event_type", string(event.Type)),
		slog.String("reason", event.Reason),
		slog.String("file_name", event.FileName),
		slog.Int64("file_size", event.FileSize),
		slog.String("mime_type", event.MimeType),
		slog.String("client_ip", event.ClientIP),
		slog.String("user_agent", event.UserAgent),
		slog.Time("occurred_at", event.OccurredAt),
	)
	return nil
}

// StoreRecorder appends events to the security_events table.
type StoreRecorder struct {
	repo repository.SecurityEventRepository
}

// NewStoreRecorder creates StoreRecorder.
func NewStoreRecorder(repo repository.SecurityEventRepository) *StoreRecorder {
	return &StoreRecorder{repo: repo}
}

func (r *StoreRecorder) Record(ctx context.Context, event model.SecurityEvent) error {
	return r.repo.Append(ctx, event)
}

// Sink is a named Recorder inside a FanOut.
type Sink struct {
	Name     string
	Recorder Recorder
}

// FanOut forwards each event to every sink. A failing sink is logged and
// never fails the caller.
type FanOut struct {
	sinks  []Sink
	logger *slog.Logger
	now    func() time.Time
}

// NewFanOut creates FanOut over sinks.
func NewFanOut(logger *slog.Logger, sinks ...Sink) *FanOut {
	return &FanOut{sinks: sinks, logger: logger, now: time.Now}
}

func (f *FanOut) Record(ctx context.Context, event model.SecurityEvent) error {
	if event.FileName != "" {
		event.FileName = upload.SanitizeFileName(event.FileName)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = f.now().UTC()
	}

	for _, sink := range f.sinks {
		if err := sink.Recorder.Record(ctx, event); err != nil {
			f.logger.ErrorContext(ctx, "security event sink failed",
				slog.String("sink", sink.Name),
				slog.String("event_type", string(event.Type)),
				slog.Any("error", err),
			)
		}
	}
	return nil
}
