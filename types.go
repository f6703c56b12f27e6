package goGate

import (
	"net/http"
	"time"
)

// Marker is the authentication marker: per-request evidence that the caller's
// identity has been established. Presence of a Marker on the request context
// is the sole signal of "authenticated"; the gate never mutates it.
//
// Markers are created by [Engine.Accept] or restored by the session
// collaborator. The core never persists them itself.
type Marker struct {
	UserID   string
	IssuedAt time.Time
}

// TokenCredential is a (token, user) pair presented as proof of a prior
// out-of-band passwordless login step. It exists only for the duration of one
// acceptance evaluation.
type TokenCredential struct {
	TokenID string
	UserID  string
}

// Present reports whether both fields are non-empty. An incomplete credential
// short-circuits acceptance to "nothing to verify", not an error.
func (c TokenCredential) Present() bool {
	return c.TokenID != "" && c.UserID != ""
}

// DecisionKind enumerates the possible gate outcomes.
type DecisionKind uint8

const (
	// DecisionAllow lets the request through; the gate constructs no response.
	DecisionAllow DecisionKind = iota
	// DecisionReject answers with a status code and no redirect.
	DecisionReject
	// DecisionRedirect answers with a Location header.
	DecisionRedirect
	// DecisionRedirectFlash is a redirect preceded by a flash enqueue.
	DecisionRedirectFlash
)

// Decision is the outcome of one gate evaluation. Exactly one shape is
// populated per kind: Status for rejects, Location (plus Flash for the flash
// variant) for redirects.
type Decision struct {
	Kind     DecisionKind
	Status   int
	Location string
	Flash    string
}

func allowDecision() Decision {
	return Decision{Kind: DecisionAllow}
}

func rejectDecision() Decision {
	return Decision{Kind: DecisionReject, Status: http.StatusForbidden}
}
