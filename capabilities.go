package goGate

import (
	"context"
	"time"
)

// TokenStore is the external token storage capability. goGate never
// implements it: integrators bring their own backend and own its concurrency
// discipline.
//
// Errors returned by any method are infrastructure failures and must stay
// distinguishable from a negative Verify answer; the Engine wraps them with
// [ErrTokenStoreUnavailable] and propagates, it never folds them into
// "invalid token".
type TokenStore interface {
	// Verify reports whether (tokenID, userID) is a currently valid pair.
	Verify(ctx context.Context, tokenID, userID string) (bool, error)

	// Invalidate removes a token after single-use acceptance.
	Invalidate(ctx context.Context, tokenID string) error

	// Extend pushes a reusable token's expiry to the given instant.
	Extend(ctx context.Context, tokenID string, until time.Time) error
}

// FlashWriter is the write side of the flash capability: a one-shot notice
// attached to the caller's session, drained exactly once by a later request.
// The session sub-package provides an implementation; any session layer with
// read-once message ownership can stand in.
type FlashWriter interface {
	Flash(ctx context.Context, namespace, message string) error
}
