package userconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &UserConfig{}, cfg)
}

func TestSetGet(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, Set(KeyAPIURL, " http://localhost:5000/api/ "))
	require.NoError(t, Set(KeyLastEmail, "pat@example.com"))

	got, err := Get(KeyAPIURL)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", got)

	data, err := os.ReadFile(filepath.Join(home, ".config", "flightdeck", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "api_url: http://localhost:5000/api")
	assert.Contains(t, string(data), "last_email: pat@example.com")
}

func TestUnknownKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	assert.ErrorIs(t, Set("colour", "blue"), ErrUnknownKey)
	_, err := Get("colour")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestLoad_Malformed(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "flightdeck")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: [unterminated"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestPreferences(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var p Preferences
	assert.Empty(t, p.LastEmail())
	require.NoError(t, p.RememberEmail("ann@example.com"))
	assert.Equal(t, "ann@example.com", p.LastEmail())
}
