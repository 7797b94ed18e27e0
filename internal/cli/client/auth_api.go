package client

import (
	"context"
	"net/http"
)

// AuthAPI groups the authentication endpoints
type AuthAPI struct {
	c *Client
}

// Login exchanges credentials for a token
func (a *AuthAPI) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	err := a.c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: creds, exchange: true}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns its token
func (a *AuthAPI) Register(ctx context.Context, in RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	err := a.c.do(ctx, request{method: http.MethodPost, path: "/auth/register", body: in, exchange: true}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMe returns the user the stored token belongs to
func (a *AuthAPI) GetMe(ctx context.Context) (*User, error) {
	var user User
	if err := a.c.do(ctx, request{method: http.MethodGet, path: "/auth/me"}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
