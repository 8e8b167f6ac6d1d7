// Package tokenstore persists the raw session token across restarts.
//
// The store holds exactly one value under a fixed key: the opaque token
// string, with no JSON envelope around it. The in-memory session manager is
// the authoritative owner of the token once hydrated; every store here is a
// cache of that field and is written only as a side effect of a session
// transition.
//
// Four implementations ship with the package:
//
//   - Memory — process-local, for tests and for degraded operation when no
//     durable medium is available
//   - File — one 0600 file holding the raw token, the desktop/CLI analog of
//     browser local storage
//   - Bolt — a bucket in a bbolt database, for hosts that already keep
//     local state there
//   - Redis — a Redis key, for headless deployments sharing one session
//     across processes
//
// Stores return typed errors instead of panicking. ErrNoToken means the
// store is empty; ErrUnavailable wraps medium failures so the session
// manager can log and fall back to memory-only operation.
package tokenstore
