package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/authkit/pkg/tokenstore"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithStore sets the persistent token store. Defaults to an in-memory store,
// in which case the session does not survive a process restart.
func WithStore(store tokenstore.Store) Option {
	return func(m *Manager) {
		if store != nil {
			m.store = store
		}
	}
}

// WithAPI sets the auth API client the manager drives.
func WithAPI(api API) Option {
	return func(m *Manager) {
		m.api = api
	}
}

// WithCredential sets the bearer credential holder the manager writes as a
// side effect of its transitions.
func WithCredential(creds CredentialWriter) Option {
	return func(m *Manager) {
		if creds != nil {
			m.creds = creds
		}
	}
}

// WithLogger sets the logger used for the degrade-and-continue paths
// (store unavailability, logout notification failure).
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithClock overrides the time source. Used by tests to pin expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
