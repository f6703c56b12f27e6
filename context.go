package goGate

import "context"

type markerContextKey struct{}
type flashScopeContextKey struct{}

// WithMarker attaches an authentication marker to ctx. The session middleware
// sets it when restoring a persisted session; [Engine.Accept] callers set it
// after a successful token acceptance.
func WithMarker(ctx context.Context, m *Marker) context.Context {
	return context.WithValue(ctx, markerContextKey{}, m)
}

// MarkerFromContext returns the authentication marker attached to ctx, if any.
func MarkerFromContext(ctx context.Context) (*Marker, bool) {
	if ctx == nil {
		return nil, false
	}

	m, ok := ctx.Value(markerContextKey{}).(*Marker)
	if !ok || m == nil {
		return nil, false
	}

	return m, true
}

// WithFlashScope attaches a flash capability to ctx. The session middleware
// registers one per request; its presence is required before a route may
// configure FlashUserNotAuth.
func WithFlashScope(ctx context.Context, w FlashWriter) context.Context {
	return context.WithValue(ctx, flashScopeContextKey{}, w)
}

func flashScopeFromContext(ctx context.Context) (FlashWriter, bool) {
	if ctx == nil {
		return nil, false
	}

	w, ok := ctx.Value(flashScopeContextKey{}).(FlashWriter)
	if !ok || w == nil {
		return nil, false
	}

	return w, true
}
