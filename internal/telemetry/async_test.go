package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestEmitAsync_NilEmitterOrEvent(t *testing.T) {
	// Must not panic or spawn anything.
	EmitAsync(nil, &Event{Name: "temp"})
	EmitAsync(&recordingEmitter{seen: make(chan *Event, 1)}, nil)
}

func TestEmitAsync_DeliversEvent(t *testing.T) {
	em := &recordingEmitter{seen: make(chan *Event, 1)}
	want := &Event{Name: "alert", Payload: json.RawMessage(`"HIGH"`), EmittedAt: time.Now().UTC()}

	EmitAsync(em, want)

	select {
	case got := <-em.seen:
		if got.Name != want.Name {
			t.Errorf("event name = %q, want %q", got.Name, want.Name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestEmitAsync_ErrorIsSwallowed(t *testing.T) {
	em := failingEmitter{}
	// Errors are logged, never propagated; just verify no panic.
	EmitAsync(em, &Event{Name: "temp"})
	time.Sleep(50 * time.Millisecond)
}

type failingEmitter struct{}

func (failingEmitter) Emit(context.Context, *Event) error { return errors.New("sink down") }

func TestMultiEmitter_FansOutAndReportsLastError(t *testing.T) {
	a := &recordingEmitter{seen: make(chan *Event, 1)}
	b := &recordingEmitter{seen: make(chan *Event, 1)}
	m := MultiEmitter{a, failingEmitter{}, b, nil}

	err := m.Emit(context.Background(), &Event{Name: "esp8266"})
	if err == nil {
		t.Error("Emit should report the sink error")
	}
	for i, em := range []*recordingEmitter{a, b} {
		select {
		case <-em.seen:
		default:
			t.Errorf("emitter %d did not receive the event", i)
		}
	}
}
