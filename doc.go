// Package goGate provides a passwordless-token authorization gate for HTTP
// request pipelines: per request it decides whether the caller is
// authenticated and, when not, resolves one of three rejection strategies
// (403, redirect, redirect with a one-shot flash notice).
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goGate is the public surface. It exposes [Engine], [Builder], [Config],
// [RestrictedOptions], and value types ([Marker], [TokenCredential],
// [Decision]). Token storage, cross-request session persistence, and flash
// storage are collaborators consumed through narrow capabilities
// ([TokenStore], [FlashWriter], and the session sub-package); the gate never
// implements them itself.
//
// # What this package must NOT do
//
//   - Issue or deliver tokens, or persist user records.
//   - Expose Redis clients or collaborator wire formats in its public API.
//   - Construct HTTP responses (the middleware sub-package owns that
//     translation; the Engine returns a [Decision]).
//
// # Decision contract
//
// Evaluate is the hot path. The Allow case performs no I/O and no side
// effects; the flash case performs exactly one flash enqueue; no case mutates
// the authentication marker. Collaborator failures and configuration errors
// are returned to the caller, never downgraded into a 403.
package goGate
