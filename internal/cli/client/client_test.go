package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdeck360/flightdeck/internal/cli/auth"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*Client, *auth.MemoryStore) {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	store := auth.NewMemoryStore(token)
	return New(ts.URL+"/api", store), store
}

func TestDo_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"id": "u1", "name": "Ann", "role": "admin"})
	}, "tok-1")

	user, err := c.Auth.GetMe(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, user.IsAdmin())
}

func TestDo_AnonymousRequestHasNoAuthorization(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "LHR", r.URL.Query().Get("from"))
		assert.False(t, r.URL.Query().Has("to"))
		w.Write([]byte(`[]`))
	}, "")

	flights, err := c.Flights.GetAll(context.Background(), FlightFilter{From: "LHR"})
	require.NoError(t, err)
	assert.Empty(t, flights)
	assert.Empty(t, gotAuth)
}

func TestDo_UnauthorizedClearsTokenOnce(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid or expired token"}`))
	}, "stale")

	var fired atomic.Int32
	c.OnAuthLost(func() { fired.Add(1) })

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Bookings.GetMyBookings(context.Background())
			assert.ErrorIs(t, err, ErrUnauthorized)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fired.Load())
	_, err := store.LoadToken()
	assert.ErrorIs(t, err, auth.ErrNoToken)
}

func TestDo_UnauthorizedOnLoginKeepsToken(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid email or password"}`))
	}, "existing")

	fired := false
	c.OnAuthLost(func() { fired = true })

	_, err := c.Auth.Login(context.Background(), Credentials{Email: "a@b.co", Password: "nope"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
	assert.False(t, fired)

	token, err := store.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "existing", token)
}

func TestDo_UnauthorizedWithoutTokenDoesNotFire(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "")

	fired := false
	c.OnAuthLost(func() { fired = true })

	_, err := c.Auth.GetMe(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, fired)
}

func TestDo_UnauthorizedAfterRelogin(t *testing.T) {
	var store *auth.MemoryStore
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// a fresh login lands while the stale request is in flight
		assert.NoError(t, store.SaveToken("fresh"))
		w.WriteHeader(http.StatusUnauthorized)
	}, "stale")

	fired := false
	c.OnAuthLost(func() { fired = true })

	_, err := c.Bookings.GetMyBookings(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, fired)

	token, err := store.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
}

func TestDo_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		is      error
	}{
		{"message field", http.StatusBadRequest, `{"message":"Only 2 seats available"}`, "Only 2 seats available", nil},
		{"error field", http.StatusForbidden, `{"error":"Admin access required"}`, "Admin access required", ErrForbidden},
		{"message wins", http.StatusBadRequest, `{"message":"first","error":"second"}`, "first", nil},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, "", nil},
		{"not found", http.StatusNotFound, `{"message":"Flight not found"}`, "Flight not found", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, "")

			_, err := c.Flights.GetByID(context.Background(), "f1")
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			if tt.message == "" {
				assert.Contains(t, apiErr.Error(), "status code")
			}
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestDo_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := New(url+"/api", auth.NewMemoryStore("tok"))
	_, err := c.Flights.GetAll(context.Background(), FlightFilter{})
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Equal(t, NetworkErrorMessage, err.Error())
}

func TestDo_TimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, "")
	defer close(release)

	c.httpClient.Timeout = 50 * time.Millisecond

	_, err := c.Flights.GetAll(context.Background(), FlightFilter{})
	assert.True(t, IsTransport(err))
}

func TestUser_AcceptsMongoID(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"abc","name":"Ann","role":"passenger"}`), &u))
	assert.Equal(t, "abc", u.ID)
	assert.False(t, u.IsAdmin())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"xyz","_id":"abc"}`), &u))
	assert.Equal(t, "xyz", u.ID)
}

func TestBookingFlight_IDOrObject(t *testing.T) {
	var b Booking
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"b1","flight":"f1"}`), &b))
	require.NotNil(t, b.Flight)
	assert.Equal(t, "f1", b.Flight.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"_id":"b2","flight":{"_id":"f2","flightName":"Sky"}}`), &b))
	assert.Equal(t, "f2", b.Flight.ID)
	assert.Equal(t, "Sky", b.Flight.FlightName)
}

func TestAPIError_Unwrap(t *testing.T) {
	err := error(&APIError{Status: http.StatusUnauthorized})
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, errors.Is(err, ErrForbidden))
	assert.Nil(t, (&APIError{Status: http.StatusConflict}).Unwrap())
}
