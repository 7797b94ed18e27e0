package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	// Service is the keyring service the token is stored under
	Service = "flightdeck-cli"
	// TokenKey is the single durable key holding the bearer token
	TokenKey = "token"
)

// ErrNoToken is returned by LoadToken when no token is persisted
var ErrNoToken = errors.New("not authenticated. Please run 'flightdeck login' first")

// KeyringStore persists the token securely in the OS keychain/credential manager
type KeyringStore struct {
	service string
}

// NewKeyringStore creates a keyring-backed token store for the given service name
func NewKeyringStore(service string) *KeyringStore {
	if service == "" {
		service = Service
	}
	return &KeyringStore{service: service}
}

// SaveToken persists the token
func (k *KeyringStore) SaveToken(token string) error {
	if err := keyring.Set(k.service, TokenKey, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// LoadToken retrieves the token, returning ErrNoToken when absent
func (k *KeyringStore) LoadToken() (string, error) {
	token, err := keyring.Get(k.service, TokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// DeleteToken removes the token; deleting an absent token is not an error
func (k *KeyringStore) DeleteToken() error {
	if err := keyring.Delete(k.service, TokenKey); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
