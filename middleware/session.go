package middleware

import (
	"net/http"

	goGate "github.com/MrEthical07/goGate"
	"github.com/MrEthical07/goGate/session"
)

// SessionSupport returns middleware that resolves the caller's session once
// per request: it restores a persisted authentication marker into the
// context, registers the flash capability, and exposes the session handle for
// downstream persistence. A session backend failure fails the request with a
// 500 rather than silently continuing unauthenticated.
func SessionSupport(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sessions == nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			handle, rec, err := sessions.Resolve(w, r)
			if err != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			ctx := session.WithHandle(r.Context(), handle)
			ctx = goGate.WithFlashScope(ctx, handle)
			if rec != nil {
				ctx = goGate.WithMarker(ctx, &goGate.Marker{
					UserID:   rec.UserID,
					IssuedAt: rec.IssuedAt,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
