// Package middleware exposes net/http adapters for the goGate engine:
// session restoration, token acceptance, and restricted-route enforcement.
//
// # Pipeline
//
//   - [SessionSupport] — restores the authentication marker from the signed
//     session cookie and registers the flash capability on the context.
//   - [AcceptToken] — when the request carries a token+user pair, verifies it
//     through the engine and materializes (and persists) the marker.
//   - [Restricted] — the per-route authorization gate; unauthenticated
//     requests get the configured rejection strategy.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls and Decision
// values back into responses. It does NOT implement authorization logic
// itself — all decisions are delegated to Engine.Evaluate and Engine.Accept.
//
// # What this package must NOT do
//
//   - Talk to the token store or Redis directly (the Engine and session
//     collaborator own I/O).
//   - Downgrade configuration or collaborator errors into 403/302 responses;
//     they surface as 500.
//   - Construct a response when the gate allows the request.
package middleware
