package otel

import (
	"context"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"iot-capstone/backend/internal/telemetry"
)

// NewEventEmitter returns an Emitter that sends pipeline events as OTel log records via the given LoggerProvider.
// If provider is nil, returns a no-op emitter.
func NewEventEmitter(provider *sdklog.LoggerProvider) telemetry.Emitter {
	if provider == nil {
		return noopEmitter{}
	}
	return &otelEmitter{logger: provider.Logger("capstone.telemetry")}
}

// recordLogger is the subset of otellog.Logger the emitter needs.
type recordLogger interface {
	Emit(ctx context.Context, rec otellog.Record)
}

// NewEventEmitterWithLogger builds an emitter around an explicit record sink.
func NewEventEmitterWithLogger(logger recordLogger) telemetry.Emitter {
	return &otelEmitter{logger: logger}
}

type noopEmitter struct{}

func (noopEmitter) Emit(context.Context, *telemetry.Event) error { return nil }

type otelEmitter struct {
	logger recordLogger
}

// Emit converts the pipeline event to an OTel log record and emits it. Best-effort.
func (e *otelEmitter) Emit(ctx context.Context, event *telemetry.Event) error {
	if event == nil {
		return nil
	}
	rec := otellog.Record{}
	if !event.EmittedAt.IsZero() {
		rec.SetTimestamp(event.EmittedAt)
	} else {
		rec.SetTimestamp(time.Now().UTC())
	}
	if len(event.Payload) > 0 {
		rec.SetBody(otellog.BytesValue(event.Payload))
	}
	if event.Name != "" {
		rec.AddAttributes(otellog.String("event", event.Name))
	}
	e.logger.Emit(ctx, rec)
	return nil
}
