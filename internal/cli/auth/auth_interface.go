package auth

import (
	"errors"
	"sync"
)

// TokenStore defines the interface for token storage operations.
// LoadToken returns ErrNoToken when nothing is stored.
type TokenStore interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	DeleteToken() error
}

// Peek returns the stored token or "" when absent. Other storage errors are returned.
func Peek(store TokenStore) (string, error) {
	token, err := store.LoadToken()
	if errors.Is(err, ErrNoToken) {
		return "", nil
	}
	return token, err
}

// MemoryStore keeps the token in process memory. Used in tests and as a
// fallback when no durable store is available.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates a memory store seeded with token ("" for none)
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (m *MemoryStore) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) LoadToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", ErrNoToken
	}
	return m.token, nil
}

func (m *MemoryStore) DeleteToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
