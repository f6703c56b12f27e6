package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Manager ties the cookie transport to the store: one Resolve per request
// yields a Handle bound to the caller's session id.
type Manager struct {
	store   *Store
	cookies *CookieCodec
}

func NewManager(store *Store, cookies *CookieCodec) *Manager {
	return &Manager{
		store:   store,
		cookies: cookies,
	}
}

// Resolve reads the session cookie, minting a fresh session id (and cookie)
// when none verifies, and loads any persisted marker. A Redis failure is
// returned as-is so the hosting layer can fail the request.
func (m *Manager) Resolve(w http.ResponseWriter, r *http.Request) (*Handle, *Record, error) {
	sessionID, ok := m.cookies.Read(r)
	if !ok {
		sessionID = uuid.NewString()
		if err := m.cookies.Issue(w, sessionID); err != nil {
			return nil, nil, err
		}

		return &Handle{id: sessionID, store: m.store}, nil, nil
	}

	rec, err := m.store.LoadMarker(r.Context(), sessionID)
	if err != nil {
		return nil, nil, err
	}

	return &Handle{id: sessionID, store: m.store}, rec, nil
}

// Handle is one request's view of its session. Flash satisfies the root
// package's flash capability; drained messages are never replayed.
type Handle struct {
	id    string
	store *Store
}

// ID returns the session id.
func (h *Handle) ID() string {
	return h.id
}

// SaveMarker persists rec for this session.
func (h *Handle) SaveMarker(ctx context.Context, rec *Record) error {
	return h.store.SaveMarker(ctx, h.id, rec)
}

// ClearMarker drops this session's marker.
func (h *Handle) ClearMarker(ctx context.Context) error {
	return h.store.ClearMarker(ctx, h.id)
}

// Flash enqueues a one-shot message under namespace.
func (h *Handle) Flash(ctx context.Context, namespace, message string) error {
	return h.store.EnqueueFlash(ctx, h.id, namespace, message)
}

// Drain takes and clears every message under namespace, atomically.
func (h *Handle) Drain(ctx context.Context, namespace string) ([]string, error) {
	return h.store.DrainFlash(ctx, h.id, namespace)
}

type handleContextKey struct{}

// WithHandle attaches the request's session handle to ctx.
func WithHandle(ctx context.Context, h *Handle) context.Context {
	return context.WithValue(ctx, handleContextKey{}, h)
}

// HandleFromContext returns the session handle attached by the session
// middleware, if any.
func HandleFromContext(ctx context.Context) (*Handle, bool) {
	h, ok := ctx.Value(handleContextKey{}).(*Handle)
	if !ok || h == nil {
		return nil, false
	}

	return h, true
}
