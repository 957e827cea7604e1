package securitylog

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/printshop/internal/config"
	"github.com/polkiloo/printshop/internal/domain/repository"
)

// Module provides the security event Recorder.
var Module = fx.Provide(newRecorder)

type recorderParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Events    repository.SecurityEventRepository
}

func newRecorder(p recorderParams) Recorder {
	sinks := []Sink{
		{Name: "log", Recorder: NewLogRecorder(p.Logger)},
		{Name: "postgres", Recorder: NewStoreRecorder(p.Events)},
	}

	if len(p.Config.KafkaBrokers) > 0 {
		kafkaRecorder := NewKafkaRecorder(p.Config.KafkaBrokers, p.Config.SecurityEventsTopic, p.Logger)
		sinks = append(sinks, Sink{Name: "kafka", Recorder: kafkaRecorder})
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return kafkaRecorder.Close()
			},
		})
	}

	return NewFanOut(p.Logger, sinks...)
}
