package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/flightdeck360/flightdeck/internal/cli/auth"
)

// DefaultTimeout bounds every request unless overridden
const DefaultTimeout = 10 * time.Second

// Client represents an HTTP client for the flight booking API. It attaches the
// stored token to every request and drops it when the backend rejects it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     auth.TokenStore
	logger     zerolog.Logger

	mu       sync.Mutex
	authLost []func()

	Auth     *AuthAPI
	Flights  *FlightsAPI
	Bookings *BookingsAPI
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout overrides DefaultTimeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the request logger
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

// New creates a new API client rooted at baseURL (e.g. https://host/api)
func New(baseURL string, tokens auth.TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tokens:     tokens,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthAPI{c: c}
	c.Flights = &FlightsAPI{c: c}
	c.Bookings = &BookingsAPI{c: c}
	return c
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// OnAuthLost registers fn to run when the backend rejects the stored
// credential. The token has already been removed when fn runs.
func (c *Client) OnAuthLost(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authLost = append(c.authLost, fn)
}

// request describes one API call
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// exchange marks endpoints that trade credentials for a token. A 401
	// there means bad credentials, not a stale session.
	exchange bool
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := auth.Peek(c.tokens)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to read stored token, sending request anonymously")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("method", r.method).
			Str("path", r.path).
			Str("request_id", requestID).
			Msg("Request failed without response")
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	c.logger.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID).
		Msg("API request")

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := newAPIError(resp.StatusCode, payload)
		if resp.StatusCode == http.StatusUnauthorized && !r.exchange && token != "" {
			c.credentialRejected(token)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// credentialRejected clears the stored token and notifies listeners, but only
// if the store still holds the token that was rejected. Concurrent 401s for
// the same token therefore fire once, and a 401 that races a fresh login
// leaves the new token alone.
func (c *Client) credentialRejected(sent string) {
	c.mu.Lock()
	current, err := auth.Peek(c.tokens)
	if err != nil || current != sent {
		c.mu.Unlock()
		return
	}
	if err := c.tokens.DeleteToken(); err != nil && !errors.Is(err, auth.ErrNoToken) {
		c.logger.Warn().Err(err).Msg("Failed to delete rejected token")
	}
	listeners := slices.Clone(c.authLost)
	c.mu.Unlock()

	c.logger.Info().Msg("Stored credential rejected, session cleared")
	for _, fn := range listeners {
		fn()
	}
}
