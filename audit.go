package goGate

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Audit event types emitted by the Engine. NotAuthenticated outcomes are
// recorded as the strategy that resolved them, never as failures.
const (
	EventGateReject        = "gate_reject"
	EventGateRedirect      = "gate_redirect"
	EventGateRedirectFlash = "gate_redirect_flash"
	EventGateConfigError   = "gate_config_error"
	EventTokenAccepted     = "token_accepted"
	EventTokenRejected     = "token_rejected"
	EventStoreFailure      = "store_failure"
)

// AuditEvent is one gate or acceptance observation.
type AuditEvent struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	UserID    string    `json:"user_id,omitempty"`
	Origin    string    `json:"origin,omitempty"`
	Target    string    `json:"target,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// AuditSink receives audit events. Emit must be safe for concurrent use and
// should not block request handling.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

// NoOpSink discards every event. It is the default sink.
type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, AuditEvent) {}

// ChannelSink buffers events on a channel, for test harnesses and custom
// dispatchers. Emit drops the event if ctx is done before the buffer accepts it.
type ChannelSink struct {
	events chan AuditEvent
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan AuditEvent, buffer),
	}
}

func (s *ChannelSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *ChannelSink) Events() <-chan AuditEvent {
	return s.events
}

// JSONWriterSink writes one JSON object per event to w, serialized by a mutex.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{writer: w}
}

func (s *JSONWriterSink) Emit(_ context.Context, event AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	enc := json.NewEncoder(s.writer)
	_ = enc.Encode(event)
}
