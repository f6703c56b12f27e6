package middleware

import (
	"net/http"

	goGate "github.com/MrEthical07/goGate"
	"github.com/MrEthical07/goGate/session"
)

// AcceptToken returns middleware that runs the acceptance stage: when the
// request carries both token and uid query parameters, the pair is verified
// through the engine and, on success, the marker is attached to the context
// and persisted via the session handle when one is present.
//
// No credential, or a pair the store reports invalid, is not an error — the
// request continues unauthenticated. A token store failure fails the request
// with a 500; it is never folded into "not authenticated".
func AcceptToken(engine *goGate.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			query := r.URL.Query()
			cred := goGate.TokenCredential{
				TokenID: query.Get(engine.TokenParam()),
				UserID:  query.Get(engine.UIDParam()),
			}

			marker, err := engine.Accept(r.Context(), cred)
			if err != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			if marker == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := goGate.WithMarker(r.Context(), marker)

			if handle, ok := session.HandleFromContext(ctx); ok {
				rec := &session.Record{
					UserID:   marker.UserID,
					IssuedAt: marker.IssuedAt,
				}
				if err := handle.SaveMarker(ctx, rec); err != nil {
					http.Error(w, "internal server error", http.StatusInternalServerError)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
