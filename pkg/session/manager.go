package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/authkit/pkg/apierr"
	"github.com/dmitrymomot/authkit/pkg/authclient"
	"github.com/dmitrymomot/authkit/pkg/claims"
	"github.com/dmitrymomot/authkit/pkg/permissions"
	"github.com/dmitrymomot/authkit/pkg/tokenstore"
)

// API is the slice of the auth client the manager drives. *authclient.Client
// satisfies it; tests substitute fakes.
type API interface {
	Login(ctx context.Context, creds authclient.Credentials) (*authclient.LoginResponse, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) (*authclient.RefreshResponse, error)
	Permissions(ctx context.Context) ([]permissions.Grant, error)
}

// CredentialWriter is the write side of the bearer credential. The manager
// is its only writer; installs and clears happen exclusively inside manager
// transitions.
type CredentialWriter interface {
	Set(token string)
	Clear()
}

// noopCredential is used when no credential holder is wired in.
type noopCredential struct{}

func (noopCredential) Set(string) {}
func (noopCredential) Clear()     {}

// Manager owns the session: the token, its decoded claims, the derived
// authentication flag and the fetched permission set. It is the single
// writer of that state; the persistent store and the bearer credential are
// caches of its token field, written only as side effects of transitions.
type Manager struct {
	mu    sync.Mutex
	state State

	store  tokenstore.Store
	api    API
	creds  CredentialWriter
	client *authclient.Client
	log    *slog.Logger
	now    func() time.Time

	rehydrateOnce sync.Once
	rehydrateErr  error

	loginInFlight   bool
	refreshInFlight bool
	logoutInFlight  bool
}

// New creates a Manager. With no options it keeps the token in memory only
// and has no API client; wire one in with WithClient or WithAPI.
func New(opts ...Option) *Manager {
	m := &Manager{
		store: tokenstore.NewMemory(),
		creds: noopCredential{},
		log:   slog.New(slog.DiscardHandler),
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.client != nil {
		m.api = m.client
		m.creds = m.client.Credential()
		m.client.Transport().SetOnUnauthorized(m.handleUnauthorized)
	}

	return m
}

// WithClient wires a full auth client into the manager: the client becomes
// the API, its credential holder becomes the manager's credential cache, and
// the manager registers itself as the transport's unauthorized hook.
func WithClient(client *authclient.Client) Option {
	return func(m *Manager) {
		m.client = client
	}
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// IsAuthenticated reports whether the session currently authenticates. A
// token found expired at read time is purged from memory, store and
// credential in the same operation.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.state.IsAuthenticated {
		return false
	}
	if m.state.User == nil || m.state.User.IsExpired(m.now()) {
		m.resetLocked(context.Background(), ErrSessionExpired)
		return false
	}
	return true
}

// Require returns ErrNotAuthenticated when the session does not
// authenticate. Gated actions (submitting a lead form, opening a dashboard)
// call this before doing anything else.
func (m *Manager) Require() error {
	if !m.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// Rehydrate restores the session from the persistent store. It runs its
// work exactly once per Manager lifetime; later calls return the first
// result. Until Rehydrate has run the manager reports unauthenticated, so
// consumers that gate on authentication are safe to start immediately.
//
// A missing token is a no-op. A malformed or expired token clears the store
// and leaves the session signed out; neither case is surfaced as an error.
func (m *Manager) Rehydrate(ctx context.Context) error {
	m.rehydrateOnce.Do(func() {
		m.rehydrateErr = m.rehydrate(ctx)
	})
	return m.rehydrateErr
}

func (m *Manager) rehydrate(ctx context.Context) error {
	token, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, tokenstore.ErrNoToken) {
			return nil
		}
		// Store unavailable: degrade to a memory-only session.
		m.log.WarnContext(ctx, "token store unavailable, starting signed out", slog.Any("error", err))
		return nil
	}

	c, err := claims.DecodeValid(token, m.now())
	if err != nil {
		// Stale or garbage token: purge it, stay signed out, tell no one.
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.log.WarnContext(ctx, "failed to clear stale token", slog.Any("error", clearErr))
		}
		m.log.DebugContext(ctx, "discarded persisted token", slog.Any("reason", err))
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.applyTokenLocked(ctx, token, c)
	return nil
}

// Login exchanges credentials for a session. Exactly one of success or
// failure applies per attempt: success installs the token everywhere, any
// failure leaves the session signed out with the error recorded. A second
// call while one is pending is rejected with ErrLoginInFlight.
func (m *Manager) Login(ctx context.Context, creds authclient.Credentials) error {
	m.mu.Lock()
	if m.api == nil {
		m.mu.Unlock()
		return ErrNoClient
	}
	if m.loginInFlight {
		m.mu.Unlock()
		return ErrLoginInFlight
	}
	m.loginInFlight = true
	m.state.Loading = true
	m.state.Err = nil
	m.mu.Unlock()

	resp, err := m.api.Login(ctx, creds)

	var c *claims.Claims
	if err == nil {
		if c, err = claims.DecodeValid(resp.Token, m.now()); err != nil {
			err = fmt.Errorf("session: rejecting token from login: %w", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginInFlight = false
	m.state.Loading = false

	if err != nil {
		m.state.Err = err
		m.state.User = nil
		m.state.Token = ""
		m.state.IsAuthenticated = false
		m.creds.Clear()
		return err
	}

	m.applyTokenLocked(ctx, resp.Token, c)
	return nil
}

// VerifyOTP completes a mobile login: it exchanges the one-time code for a
// token and applies the same success/failure transition as Login.
func (m *Manager) VerifyOTP(ctx context.Context, mobile, countryCode, code string) error {
	m.mu.Lock()
	if m.client == nil {
		m.mu.Unlock()
		return ErrNoClient
	}
	if m.loginInFlight {
		m.mu.Unlock()
		return ErrLoginInFlight
	}
	m.loginInFlight = true
	m.state.Loading = true
	m.state.Err = nil
	m.mu.Unlock()

	resp, err := m.client.VerifyOTP(ctx, mobile, countryCode, code)

	var c *claims.Claims
	if err == nil {
		if c, err = claims.DecodeValid(resp.Token, m.now()); err != nil {
			err = fmt.Errorf("session: rejecting token from otp verify: %w", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginInFlight = false
	m.state.Loading = false

	if err != nil {
		m.state.Err = err
		m.state.User = nil
		m.state.Token = ""
		m.state.IsAuthenticated = false
		m.creds.Clear()
		return err
	}

	m.applyTokenLocked(ctx, resp.Token, c)
	return nil
}

// Logout ends the session. The server is notified best-effort with the
// still-installed token; whether or not that succeeds, the credential is
// cleared, the store purged and the state reset. Logging out while signed
// out is a no-op, and concurrent logouts coalesce.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	if m.logoutInFlight {
		m.mu.Unlock()
		return nil
	}
	if m.state.Token == "" && !m.state.IsAuthenticated {
		m.mu.Unlock()
		return nil
	}
	m.logoutInFlight = true
	m.state.Loading = true
	m.mu.Unlock()

	if m.api != nil {
		if err := m.api.Logout(ctx); err != nil {
			m.log.WarnContext(ctx, "logout notification failed", slog.Any("error", err))
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.logoutInFlight = false
	m.resetLocked(ctx, nil)
	return nil
}

// Refresh exchanges the current token for a fresh one. Any failure —
// transport, rejection, or an unusable returned token — fails closed: the
// session is torn down exactly as Logout would, and the error is returned.
// A second call while one is pending is rejected with ErrRefreshInFlight.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	if m.api == nil {
		m.mu.Unlock()
		return ErrNoClient
	}
	if m.refreshInFlight {
		m.mu.Unlock()
		return ErrRefreshInFlight
	}
	if !m.state.IsAuthenticated {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	m.refreshInFlight = true
	m.state.Loading = true
	m.state.Err = nil
	m.mu.Unlock()

	resp, err := m.api.Refresh(ctx)

	var c *claims.Claims
	if err == nil {
		if c, err = claims.DecodeValid(resp.Token, m.now()); err != nil {
			err = fmt.Errorf("session: rejecting token from refresh: %w", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInFlight = false
	m.state.Loading = false

	if err != nil {
		m.resetLocked(ctx, err)
		return err
	}

	m.applyTokenLocked(ctx, resp.Token, c)
	return nil
}

// FetchPermissions replaces the session's capability set with a freshly
// fetched one. On failure the previous set is left untouched and the error
// recorded; a fetch never partially merges.
func (m *Manager) FetchPermissions(ctx context.Context) error {
	m.mu.Lock()
	if m.api == nil {
		m.mu.Unlock()
		return ErrNoClient
	}
	if !m.state.IsAuthenticated {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	m.state.Loading = true
	m.state.Err = nil
	m.mu.Unlock()

	grants, err := m.api.Permissions(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Loading = false

	if err != nil {
		if apierr.Unauthorized(err) && !m.state.IsAuthenticated {
			// The transport hook already tore the session down.
			return ErrSessionExpired
		}
		m.state.Err = err
		return err
	}

	m.state.Permissions = permissions.BuildSet(grants)
	return nil
}

// handleUnauthorized is the transport's 401 hook. Concurrent reports
// collapse: only the first tears the session down, the rest observe a
// signed-out session and return.
func (m *Manager) handleUnauthorized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked(context.Background(), ErrSessionExpired)
}

// applyTokenLocked installs a token: state first, then the two caches
// (persistent store, bearer credential) in the same transition. A store
// failure is logged and the session continues memory-only.
func (m *Manager) applyTokenLocked(ctx context.Context, token string, c *claims.Claims) {
	m.state.User = c
	m.state.Token = token
	m.state.IsAuthenticated = true
	m.state.Err = nil

	m.creds.Set(token)
	if err := m.store.Save(ctx, token); err != nil {
		m.log.WarnContext(ctx, "failed to persist token, session will not survive restart", slog.Any("error", err))
	}
}

// resetLocked tears the session down to the signed-out default, clearing
// both caches in the same transition. It is idempotent: resetting a
// signed-out session does nothing, which is what collapses concurrent
// teardown triggers into a single transition.
func (m *Manager) resetLocked(ctx context.Context, cause error) {
	if m.state.Token == "" && !m.state.IsAuthenticated {
		return
	}

	m.creds.Clear()
	if err := m.store.Clear(ctx); err != nil {
		m.log.WarnContext(ctx, "failed to clear persisted token", slog.Any("error", err))
	}
	m.state = State{Err: cause}
}
