package middleware

import (
	"net/http"

	goGate "github.com/MrEthical07/goGate"
)

// Restricted returns the authorization-gate middleware for one protected
// route. opts is validated once, at registration; an invalid combination
// surfaces as a 500 on every unauthenticated request through the route,
// never downgraded to a 403 or a redirect, so the misconfiguration stays
// visible during development.
//
// Per request: a present marker reaches next unconditionally with no response
// written here; an absent marker resolves to the configured rejection
// strategy (403, 302, or flash+302).
func Restricted(engine *goGate.Engine, opts goGate.RestrictedOptions) func(http.Handler) http.Handler {
	validated, cfgErr := opts.Validate()
	if cfgErr != nil {
		// Invalid combination: hand the raw options to the engine so its
		// marker-first check still lets authenticated requests through;
		// every unauthenticated request surfaces the ConfigError as a 500.
		validated = &opts
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			decision, err := engine.Evaluate(r.Context(), r.URL.RequestURI(), validated)
			if err != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			switch decision.Kind {
			case goGate.DecisionAllow:
				next.ServeHTTP(w, r)
			case goGate.DecisionReject:
				http.Error(w, "forbidden", decision.Status)
			case goGate.DecisionRedirect, goGate.DecisionRedirectFlash:
				http.Redirect(w, r, decision.Location, http.StatusFound)
			default:
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		})
	}
}
