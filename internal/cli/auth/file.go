package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps the token in a 0600 file, for hosts without a keyring (CI, containers)
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultTokenPath returns ~/.config/flightdeck/token
func DefaultTokenPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "flightdeck", TokenKey), nil
}

func (f *FileStore) SaveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	// Write then rename so a concurrent reader never sees a partial token
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (f *FileStore) LoadToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (f *FileStore) DeleteToken() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
