package goGate

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestJSONWriterSinkEmitsOneObjectPerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Now(),
		EventType: EventGateReject,
		Origin:    "/restricted",
	})
	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Now(),
		EventType: EventTokenAccepted,
		UserID:    "user-1",
	})

	dec := json.NewDecoder(&buf)

	var first, second AuditEvent
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("decode first event: %v", err)
	}
	if err := dec.Decode(&second); err != nil {
		t.Fatalf("decode second event: %v", err)
	}

	if first.EventType != EventGateReject || first.Origin != "/restricted" {
		t.Fatalf("first event = %+v", first)
	}
	if second.EventType != EventTokenAccepted || second.UserID != "user-1" {
		t.Fatalf("second event = %+v", second)
	}
}

func TestChannelSinkDropsWhenContextDone(t *testing.T) {
	sink := NewChannelSink(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink.Emit(context.Background(), AuditEvent{EventType: EventGateReject})
	// Buffer full and ctx done: must return instead of blocking.
	sink.Emit(ctx, AuditEvent{EventType: EventGateRedirect})

	event := <-sink.Events()
	if event.EventType != EventGateReject {
		t.Fatalf("event = %+v", event)
	}

	select {
	case event := <-sink.Events():
		t.Fatalf("unexpected second event: %+v", event)
	default:
	}
}
