package authclient

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// BearerTransport is an http.RoundTripper that attaches the current bearer
// credential to every outgoing request and reports authorization failures
// back to the session layer.
//
// Requests are never mutated in place: the transport clones before adding
// headers, per the RoundTripper contract.
type BearerTransport struct {
	base  http.RoundTripper
	creds *Credential

	mu             sync.RWMutex
	onUnauthorized func()
}

// NewBearerTransport wraps base with bearer injection from creds. A nil base
// falls back to http.DefaultTransport.
func NewBearerTransport(base http.RoundTripper, creds *Credential) *BearerTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &BearerTransport{base: base, creds: creds}
}

// SetOnUnauthorized registers the hook invoked when the server rejects the
// live credential. The hook must be idempotent: concurrent requests failing
// with 401 at the same time will each report, and the session layer collapses
// them into a single logout transition.
func (t *BearerTransport) SetOnUnauthorized(fn func()) {
	t.mu.Lock()
	t.onUnauthorized = fn
	t.mu.Unlock()
}

// RoundTrip implements http.RoundTripper.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.creds.Token()

	clone := req.Clone(req.Context())
	if token != "" {
		clone.Header.Set("Authorization", "Bearer "+token)
	}
	if clone.Header.Get("X-Request-ID") == "" {
		clone.Header.Set("X-Request-ID", uuid.NewString())
	}

	resp, err := t.base.RoundTrip(clone)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		// Only report when the rejected token is still the live one. A slow
		// request carrying a credential that has since been replaced or
		// cleared must not tear down the new session.
		if t.creds.Token() == token {
			t.mu.RLock()
			fn := t.onUnauthorized
			t.mu.RUnlock()
			if fn != nil {
				fn()
			}
		}
	}

	return resp, nil
}
