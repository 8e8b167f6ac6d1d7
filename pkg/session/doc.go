// Package session is the client-side session container: it owns the auth
// token, its decoded claims, the derived authentication flag and the
// fetched permission set, and it is the only component allowed to write any
// of them.
//
// # Architecture
//
// A Manager sits between the persistent token store, the auth API client
// and the bearer credential the outbound transport reads:
//
//	┌───────────────┐  Load/Save/Clear  ┌────────────┐
//	│  tokenstore   │ ◄───────────────► │            │
//	└───────────────┘                   │            │   Login/Refresh/…
//	┌───────────────┐   Set/Clear       │  Manager   │ ◄───────────────► auth API
//	│  credential   │ ◄──────────────── │            │
//	└───────────────┘                   │            │
//	        ▲ 401 hook                  └────────────┘
//	        └───────────────────────────────────┘
//
// The store and the credential are caches of the manager's token field.
// They are written only inside manager transitions, so a consumer can never
// observe a request carrying a token the session has already dropped.
//
// # Lifecycle
//
// Rehydrate runs once at startup and restores a persisted session if its
// token is well formed and unexpired; otherwise the stale token is purged
// and the manager stays signed out. Login and VerifyOTP establish a session,
// Refresh rotates its token (failing closed on any error), Logout tears it
// down idempotently. A 401 on any outbound request forces exactly one
// logout transition regardless of how many requests fail concurrently.
//
// # Concurrency
//
// All operations are safe for concurrent use. Networked operations do not
// hold the state lock while on the wire; per-operation in-flight flags
// reject (login, refresh) or coalesce (logout) overlapping calls.
package session
