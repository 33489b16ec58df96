// Package telemetry implements the reading ingest pipeline: evaluate the
// alert policy, persist, and fan derived events out to all subscribers.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"iot-capstone/backend/internal/platform/storeerr"
	"iot-capstone/backend/internal/telemetry/domain"
	"iot-capstone/backend/internal/telemetry/repository"
)

// Named channel events. Inbound and outbound alert share one name: a
// manual alert is relayed verbatim under the same event the pipeline uses
// for derived alerts.
const (
	EventReading = "dht"     // inbound: one numeric reading
	EventAck     = "esp8266" // outbound: liveness ping per reading
	EventAlert   = "alert"   // both: alert level or verbatim manual payload
	EventTemp    = "temp"    // outbound: the raw reading value
)

// Broadcaster delivers one named event to every currently connected
// subscriber, best-effort.
type Broadcaster interface {
	Broadcast(event string, data any) error
}

// Pipeline owns the alert-threshold policy and processes one reading at a
// time: ack, evaluate, persist, re-broadcast. Concurrent readings from
// different producers interleave freely; the four steps are strictly
// ordered within one reading.
type Pipeline struct {
	readings  repository.Store
	caster    Broadcaster
	threshold float64
	mirror    Emitter // optional; nil disables mirroring
	now       func() time.Time
}

// NewPipeline returns a pipeline broadcasting through caster and
// persisting readings to readings. A reading at or above threshold also
// triggers a HIGH alert broadcast. mirror may be nil.
func NewPipeline(readings repository.Store, caster Broadcaster, threshold float64, mirror Emitter) *Pipeline {
	return &Pipeline{
		readings:  readings,
		caster:    caster,
		threshold: threshold,
		mirror:    mirror,
		now:       time.Now,
	}
}

// HandleReading processes one inbound reading payload:
//
//  1. broadcast the acknowledge event unconditionally;
//  2. broadcast a HIGH alert when the value meets the threshold;
//  3. persist the reading;
//  4. broadcast the raw value as the telemetry update.
//
// The pre-persistence broadcasts are never retracted: a persistence
// failure is logged and returned, but the telemetry update still goes
// out and nothing is retried.
func (p *Pipeline) HandleReading(ctx context.Context, data json.RawMessage) error {
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("%w: reading payload %q", storeerr.ErrInvalidInput, string(data))
	}

	p.emit(EventAck, true)
	if value >= p.threshold {
		p.emit(EventAlert, string(domain.AlertHigh))
	}

	reading := &domain.Reading{Value: value, CreatedAt: p.now().UTC()}
	persistErr := p.readings.SaveReading(ctx, reading)
	if persistErr != nil {
		log.Printf("telemetry: persist reading %v failed: %v", value, persistErr)
	}

	p.emit(EventTemp, value)
	return persistErr
}

// HandleAlert relays a manual alert payload verbatim to all subscribers.
// No persistence, no acknowledge, no telemetry update: a second entry
// point into the same broadcast sink, not a separate pipeline.
func (p *Pipeline) HandleAlert(ctx context.Context, data json.RawMessage) error {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: alert payload %q", storeerr.ErrInvalidInput, string(data))
	}
	p.emit(EventAlert, payload)
	return nil
}

// emit broadcasts one event and mirrors it to the optional sink.
// Broadcast failures are logged; the pipeline never blocks on delivery.
func (p *Pipeline) emit(name string, data any) {
	if err := p.caster.Broadcast(name, data); err != nil {
		log.Printf("telemetry: broadcast %s failed: %v", name, err)
	}
	if p.mirror != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			log.Printf("telemetry: mirror marshal %s failed: %v", name, err)
			return
		}
		EmitAsync(p.mirror, &Event{Name: name, Payload: payload, EmittedAt: p.now().UTC()})
	}
}
