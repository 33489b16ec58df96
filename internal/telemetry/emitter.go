package telemetry

import (
	"context"
	"encoding/json"
	"time"
)

// Event is one broadcast pipeline event mirrored to downstream sinks
// (Kafka, OTel logs). Best-effort; callers log and ignore errors.
type Event struct {
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	EmittedAt time.Time       `json:"emittedAt"`
}

// Emitter mirrors pipeline events to a sink. Implementations may block
// briefly; call via EmitAsync from the pipeline.
type Emitter interface {
	Emit(ctx context.Context, event *Event) error
}

// MultiEmitter fans one event out to several sinks and reports the last error.
type MultiEmitter []Emitter

func (m MultiEmitter) Emit(ctx context.Context, event *Event) error {
	var lastErr error
	for _, e := range m {
		if e == nil {
			continue
		}
		if err := e.Emit(ctx, event); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
