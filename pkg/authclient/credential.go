package authclient

import "sync"

// Credential holds the bearer token attached to outgoing requests. It is a
// cache of the session manager's token field: the manager writes it inside
// its own transitions, everything else only reads.
type Credential struct {
	mu    sync.RWMutex
	token string
}

// NewCredential creates an empty credential.
func NewCredential() *Credential {
	return &Credential{}
}

// Set installs a bearer token.
func (c *Credential) Set(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Clear removes the bearer token. Requests issued after Clear returns carry
// no Authorization header.
func (c *Credential) Clear() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// Token returns the current bearer token, or "" when none is installed.
func (c *Credential) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}
