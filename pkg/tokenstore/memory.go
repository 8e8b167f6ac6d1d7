package tokenstore

import (
	"context"
	"sync"
)

// Memory implements Store in process memory. It is the fallback when no
// durable medium is available (the session then simply does not survive a
// restart) and the default store in tests.
type Memory struct {
	mu    sync.RWMutex
	token string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Save stores the token in memory.
func (m *Memory) Save(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

// Load returns the stored token, or ErrNoToken when empty.
func (m *Memory) Load(ctx context.Context) (string, error) {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()

	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Clear drops the stored token.
func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}
