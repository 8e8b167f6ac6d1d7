package tokenstore

import "context"

// Store is the durable home of the raw session token. Exactly one token is
// kept per store instance, under a fixed key; the in-memory session manager
// stays authoritative once hydrated and treats the store as a cache.
//
// Implementations never panic. When the backing medium is unavailable they
// return an error and the session degrades to in-memory-only operation.
type Store interface {
	// Save persists the raw token string, replacing any previous value.
	Save(ctx context.Context, token string) error

	// Load returns the persisted token. Returns ErrNoToken when the store
	// holds nothing.
	Load(ctx context.Context) (string, error)

	// Clear removes the persisted token. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
