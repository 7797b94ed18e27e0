package userconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = "flightdeck"
	configFileName = "config.yaml"
)

// UserConfig represents the user's local preferences stored in ~/.config/flightdeck/config.yaml
type UserConfig struct {
	APIURL    string `yaml:"api_url,omitempty"`
	LastEmail string `yaml:"last_email,omitempty"`
}

// Keys accepted by Set and Get
const (
	KeyAPIURL    = "api_url"
	KeyLastEmail = "last_email"
)

// ErrUnknownKey is returned for a key the config does not have
var ErrUnknownKey = errors.New("unknown config key")

// GetConfigPath returns the path to the user config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", configDirName)
	return filepath.Join(configDir, configFileName), nil
}

// Load reads the user configuration file
func Load() (*UserConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	var cfg UserConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the user configuration to a file
func Save(cfg *UserConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}

	return nil
}

// Set updates one key and saves the config
func Set(key, value string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyAPIURL:
		cfg.APIURL = strings.TrimRight(value, "/")
	case KeyLastEmail:
		cfg.LastEmail = value
	default:
		return fmt.Errorf("%w %q (known keys: %s, %s)", ErrUnknownKey, key, KeyAPIURL, KeyLastEmail)
	}

	return Save(cfg)
}

// Get returns one key's value, or "" if unset
func Get(key string) (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}

	switch key {
	case KeyAPIURL:
		return cfg.APIURL, nil
	case KeyLastEmail:
		return cfg.LastEmail, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKey, key)
}

// Preferences exposes the saved login email to views
type Preferences struct{}

// LastEmail returns the last email used to log in, or "" on any error
func (Preferences) LastEmail() string {
	email, err := Get(KeyLastEmail)
	if err != nil {
		return ""
	}
	return email
}

// RememberEmail saves email as the login default
func (Preferences) RememberEmail(email string) error {
	return Set(KeyLastEmail, email)
}
