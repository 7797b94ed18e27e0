package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultAPIURL is used when neither the environment nor the user config names a backend.
const DefaultAPIURL = "https://flight-ticket-backend-40dr.onrender.com/api"

// Token store kinds
const (
	TokenStoreKeyring = "keyring"
	TokenStoreFile    = "file"
)

// ClientConfig holds configuration for the flightdeck CLI
type ClientConfig struct {
	APIURL         string        `envconfig:"FLIGHTDECK_API_URL"`
	BackendURL     string        `envconfig:"FLIGHTDECK_BACKEND_URL"`
	RequestTimeout time.Duration `envconfig:"FLIGHTDECK_REQUEST_TIMEOUT" default:"10s"`
	TokenStore     string        `envconfig:"FLIGHTDECK_TOKEN_STORE" default:"keyring"` // keyring, file

	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"` // json, console
}

// ServerConfig holds configuration for the development booking API
type ServerConfig struct {
	Addr         string        `envconfig:"SERVER_ADDR" default:":5000"`
	DatabaseURL  string        `envconfig:"DATABASE_URL" default:"flightdeck.sqlite"`
	JWTSecret    string        `envconfig:"JWT_SECRET"`
	TokenTTL     time.Duration `envconfig:"TOKEN_TTL" default:"168h"`
	AllowOrigins []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

func loadDotEnv() {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// LoadClient loads CLI configuration from environment variables
func LoadClient() (*ClientConfig, error) {
	loadDotEnv()

	var cfg ClientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process client config: %w", err)
	}

	switch cfg.TokenStore {
	case TokenStoreKeyring, TokenStoreFile:
	default:
		return nil, fmt.Errorf("invalid FLIGHTDECK_TOKEN_STORE %q, must be one of: keyring, file", cfg.TokenStore)
	}

	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("FLIGHTDECK_REQUEST_TIMEOUT must be positive")
	}

	return &cfg, nil
}

// BaseURL resolves the backend base URL. Environment wins over the saved
// user preference, which wins over DefaultAPIURL.
func (c *ClientConfig) BaseURL(preferred string) string {
	for _, candidate := range []string{c.APIURL, c.BackendURL, preferred} {
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			return strings.TrimRight(candidate, "/")
		}
	}
	return DefaultAPIURL
}

// LoadServer loads development server configuration from environment variables
func LoadServer() (*ServerConfig, error) {
	loadDotEnv()

	var cfg ServerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process server config: %w", err)
	}

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}

	return &cfg, nil
}
