// Package session provides the bundled session collaborator: Redis-backed
// persistence of authentication markers keyed by session id, a signed session
// cookie, and one-shot flash messages with atomic take-and-clear drain.
//
// # Flash semantics
//
// Flash messages are read-once. Drain transfers ownership of every queued
// message in one atomic Redis script; a second drain of the same namespace
// returns nothing. Messages are scoped by session id, so one caller's notice
// can never leak into another caller's session.
//
// # Architecture boundaries
//
// This package owns the [Store] (Redis operations), the [CookieCodec] (signed
// session-id transport), and the per-request [Handle]. It does NOT evaluate
// authorization policy or verify tokens — those responsibilities belong to
// the Engine.
//
// # What this package must NOT do
//
//   - Import goGate (no upward imports; [Handle] satisfies the root flash
//     capability structurally).
//   - Interpret marker contents beyond storage.
//   - Replay drained flash messages.
package session
