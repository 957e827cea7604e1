package securitylog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/polkiloo/printshop/internal/domain/model"
)

const writeTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaRecorder publishes events as JSON messages keyed by client IP.
type KafkaRecorder struct {
	writer messageWriter
}

// NewKafkaRecorder creates an asynchronous producer for topic. Record only
// enqueues the message; delivery failures are reported to logger.
func NewKafkaRecorder(brokers []string, topic string, logger *slog.Logger) *KafkaRecorder {
	return &KafkaRecorder{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: writeTimeout,
		Async:        true,
		Completion:   deliveryReporter(logger, topic),
	}}
}

func deliveryReporter(logger *slog.Logger, topic string) func([]kafka.Message, error) {
	return func(messages []kafka.Message, err error) {
		if err == nil {
			return
		}
		logger.Error("security event delivery failed",
			slog.String("topic", topic),
			slog.Int("messages", len(messages)),
			slog.Any("error", err),
		)
	}
}

func (r *KafkaRecorder) Record(ctx context.Context, event model.SecurityEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.ClientIP),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := r.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write event: %w", err)
	}
	return nil
}

// Close flushes pending messages.
func (r *KafkaRecorder) Close() error {
	return r.writer.Close()
}
