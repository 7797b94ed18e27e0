package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/flightdeck360/flightdeck/internal/cli/auth"
	"github.com/flightdeck360/flightdeck/internal/cli/client"
)

// Fallback messages when the backend gives no reason
const (
	LoginFailed        = "Login failed"
	RegistrationFailed = "Registration failed"
)

// State is a snapshot of the session. User is only set when Token is.
type State struct {
	User    *client.User
	Token   string
	Loading bool
}

// Authenticated reports whether a user is logged in
func (s State) Authenticated() bool {
	return s.User != nil
}

// IsAdmin reports whether the logged in user is an admin
func (s State) IsAdmin() bool {
	return s.User.IsAdmin()
}

// RegisterInput is the registration form payload
type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	ContactNumber string
	Role          string
}

// AuthAPI is the part of the API client the session needs
type AuthAPI interface {
	Login(ctx context.Context, creds client.Credentials) (*client.AuthResponse, error)
	Register(ctx context.Context, in client.RegisterRequest) (*client.AuthResponse, error)
	GetMe(ctx context.Context) (*client.User, error)
}

// Manager is the read and mutate surface handed to views
type Manager interface {
	State() State
	Login(ctx context.Context, email, password string) (*client.User, error)
	Register(ctx context.Context, in RegisterInput) (*client.User, error)
	Logout()
	CheckAuth(ctx context.Context)
	Invalidate()
	Ready() <-chan struct{}
	Subscribe(fn func(State)) (unsubscribe func())
}

// Error is a failed login or registration. Message is suitable for display.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Store owns the current user and token
type Store struct {
	api    AuthAPI
	tokens auth.TokenStore
	logger zerolog.Logger

	// op serializes Login, Register and CheckAuth
	op sync.Mutex

	mu    sync.RWMutex
	state State

	ready     chan struct{}
	readyOnce sync.Once

	subsMu sync.Mutex
	subs   map[int]func(State)
	nextID int
}

var _ Manager = (*Store)(nil)

// New creates a session seeded with whatever token is in storage. The session
// stays loading until CheckAuth or a successful login resolves it.
func New(api AuthAPI, tokens auth.TokenStore, log zerolog.Logger) *Store {
	token, err := auth.Peek(tokens)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read stored token")
	}

	return &Store{
		api:    api,
		tokens: tokens,
		logger: log,
		state:  State{Token: token, Loading: true},
		ready:  make(chan struct{}),
		subs:   make(map[int]func(State)),
	}
}

// State returns a snapshot of the session
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Ready is closed once the session stops loading
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Subscribe registers fn to receive the state after every change
func (s *Store) Subscribe(fn func(State)) func() {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// Login authenticates with email and password. On failure the session is unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (*client.User, error) {
	s.op.Lock()
	defer s.op.Unlock()

	resp, err := s.api.Login(ctx, client.Credentials{Email: email, Password: password})
	if err != nil {
		s.logger.Debug().Err(err).Str("email", email).Msg("Login rejected")
		return nil, &Error{Message: errorMessage(err, LoginFailed), Err: err}
	}

	if err := s.establish(resp); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", resp.User.ID).Str("role", resp.User.Role).Msg("Logged in")
	return &resp.User, nil
}

// Register creates an account and logs into it. Role defaults to passenger.
func (s *Store) Register(ctx context.Context, in RegisterInput) (*client.User, error) {
	s.op.Lock()
	defer s.op.Unlock()

	role := in.Role
	if role == "" {
		role = client.RolePassenger
	}

	resp, err := s.api.Register(ctx, client.RegisterRequest{
		Name:          in.Name,
		Email:         in.Email,
		Password:      in.Password,
		ContactNumber: in.ContactNumber,
		Role:          role,
	})
	if err != nil {
		s.logger.Debug().Err(err).Str("email", in.Email).Msg("Registration rejected")
		return nil, &Error{Message: errorMessage(err, RegistrationFailed), Err: err}
	}

	if err := s.establish(resp); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", resp.User.ID).Str("role", resp.User.Role).Msg("Registered")
	return &resp.User, nil
}

func (s *Store) establish(resp *client.AuthResponse) error {
	if err := s.tokens.SaveToken(resp.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	user := resp.User
	s.set(State{User: &user, Token: resp.Token, Loading: false})
	return nil
}

// Logout clears the stored token and the session. There is no backend call.
func (s *Store) Logout() {
	if err := s.tokens.DeleteToken(); err != nil && !errors.Is(err, auth.ErrNoToken) {
		s.logger.Warn().Err(err).Msg("Failed to delete stored token")
	}

	s.reset()
}

// Invalidate resets the session without touching storage. Used after the API
// client has already dropped a rejected token.
func (s *Store) Invalidate() {
	s.reset()
}

// CheckAuth resolves the seeded token into a user. Any failure drops the token.
// With no token there is no network call. Loading is false afterwards.
func (s *Store) CheckAuth(ctx context.Context) {
	s.op.Lock()
	defer s.op.Unlock()

	current := s.State()
	if current.Token == "" {
		s.set(State{Loading: false})
		return
	}

	user, err := s.api.GetMe(ctx)
	if err != nil {
		s.logger.Info().Err(err).Msg("Stored token rejected, clearing session")
		if delErr := s.tokens.DeleteToken(); delErr != nil && !errors.Is(delErr, auth.ErrNoToken) {
			s.logger.Warn().Err(delErr).Msg("Failed to delete stored token")
		}
		s.set(State{Loading: false})
		return
	}

	s.set(State{User: user, Token: current.Token, Loading: false})
}

func (s *Store) set(next State) {
	s.update(func(st *State) { *st = next })
}

// reset drops user and token, leaving Loading alone
func (s *Store) reset() {
	s.update(func(st *State) {
		st.User = nil
		st.Token = ""
	})
}

func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	next := s.state
	s.mu.Unlock()

	if !next.Loading {
		s.readyOnce.Do(func() { close(s.ready) })
	}

	s.subsMu.Lock()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// errorMessage picks the text to show for a failed auth call: the backend's
// message, the transport failure, the generic status text, then fallback.
func errorMessage(err error, fallback string) string {
	if client.IsTransport(err) {
		return client.NetworkErrorMessage
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return fallback
}
