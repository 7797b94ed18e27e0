package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// NetworkErrorMessage is reported for every failure where no response was received
const NetworkErrorMessage = "Network error: Unable to connect to server"

var (
	// ErrUnauthorized matches any 401 response
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden matches any 403 response
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound matches any 404 response
	ErrNotFound = errors.New("not found")
)

// APIError is a non-2xx response from the backend
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Request failed with status code %d", e.Status)
}

// Unwrap lets callers match status classes with errors.Is
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// TransportError is a request that never produced a response: refused
// connection, DNS failure, timeout, cancelled context.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return NetworkErrorMessage
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a TransportError
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// errorBody is the error envelope; backends use either field
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			apiErr.Message = parsed.Message
		case parsed.Error != "":
			apiErr.Message = parsed.Error
		}
	}

	return apiErr
}
