package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdeck360/flightdeck/internal/cli/app"
	"github.com/flightdeck360/flightdeck/internal/cli/auth"
	"github.com/flightdeck360/flightdeck/internal/cli/client"
	"github.com/flightdeck360/flightdeck/internal/cli/views"
	"github.com/flightdeck360/flightdeck/internal/config"
	"github.com/flightdeck360/flightdeck/internal/server"
)

// noPrompter fails every prompt, like a CLI run from a script
type noPrompter struct{}

func (noPrompter) Input(string, string) (string, error) { return "", views.ErrNotInteractive }
func (noPrompter) Password(string) (string, error) { return "", views.ErrNotInteractive }
func (noPrompter) Confirm(string) (bool, error) { return false, views.ErrNotInteractive }
func (noPrompter) Select(string, []string) (int, error) { return -1, views.ErrNotInteractive }

// menuPrompter answers menu selects through choose and fails every other prompt
type menuPrompter struct {
	noPrompter
	menus  [][]string
	choose func(call int, items []string) int
}

func (p *menuPrompter) Select(label string, items []string) (int, error) {
	p.menus = append(p.menus, items)
	return p.choose(len(p.menus), items), nil
}

// testEnv is one "machine": a token store shared by every command run
type testEnv struct {
	t       *testing.T
	baseURL string
	tokens  *auth.MemoryStore
	out     *bytes.Buffer
	prompt  views.Prompter
	app     *app.App
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, nil)
}

// newTestEnvWith lets wrap sit in front of the API handler
func newTestEnvWith(t *testing.T, wrap func(http.Handler) http.Handler) *testEnv {
	t.Helper()

	srv, err := server.New(&config.ServerConfig{
		DatabaseURL: filepath.Join(t.TempDir(), "cli.sqlite"),
		JWTSecret:   "cli-secret",
		TokenTTL:    time.Hour,
	}, zerolog.Nop())
	require.NoError(t, err)

	handler := srv.Handler()
	if wrap != nil {
		handler = wrap(handler)
	}
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return &testEnv{
		t:       t,
		baseURL: ts.URL + "/api",
		tokens:  auth.NewMemoryStore(""),
		out:     &bytes.Buffer{},
		prompt:  noPrompter{},
	}
}

func (e *testEnv) factory(ctx context.Context) (*app.App, error) {
	a, err := app.New(app.Options{
		Config:   &config.ClientConfig{RequestTimeout: 5 * time.Second, TokenStore: config.TokenStoreFile},
		BaseURL:  e.baseURL,
		Logger:   zerolog.Nop(),
		Tokens:   e.tokens,
		Prompter: e.prompt,
		Out:      e.out,
		Err:      e.out,
	})
	e.app = a
	return a, err
}

// run executes cmd with args and returns what it printed
func (e *testEnv) run(newCmd func(AppFactory) *cobra.Command, args ...string) (string, error) {
	e.t.Helper()
	e.out.Reset()

	cmd := newCmd(e.factory)
	cmd.SetArgs(args)
	cmd.SetOut(e.out)
	cmd.SetErr(e.out)
	err := cmd.ExecuteContext(context.Background())
	return e.out.String(), err
}

func (e *testEnv) mustRun(newCmd func(AppFactory) *cobra.Command, args ...string) string {
	e.t.Helper()
	out, err := e.run(newCmd, args...)
	require.NoError(e.t, err, out)
	return out
}

func TestCommand_Structure(t *testing.T) {
	book := NewBookCmd(nil)
	assert.Equal(t, "book <flight-id>", book.Use)
	assert.Error(t, book.Args(book, []string{}))
	assert.NoError(t, book.Args(book, []string{"f1"}))

	admin := NewAdminCmd(nil)
	var names []string
	for _, c := range admin.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"flights", "bookings"}, names)
}

func TestWhoami_NotLoggedIn(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(NewWhoamiCmd)
	assert.Contains(t, out, "Not logged in")
}

func TestLogin_NonInteractiveNeedsPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(NewLoginCmd, "--email", "pat@example.com")
	assert.ErrorIs(t, err, views.ErrNotInteractive)
}

func TestLogin_EnvironmentCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(NewRegisterCmd, "--name", "Pat", "--email", "pat@example.com", "--password", "secret1", "--contact", "555")
	env.mustRun(NewLogoutCmd)

	t.Setenv("FLIGHTDECK_EMAIL", "pat@example.com")
	t.Setenv("FLIGHTDECK_PASSWORD", "secret1")
	out := env.mustRun(NewLoginCmd)
	assert.Contains(t, out, "Login successful!")

	out = env.mustRun(NewWhoamiCmd)
	assert.Contains(t, out, "Pat <pat@example.com>")
	assert.Contains(t, out, "Role:    passenger")
}

func TestRegister_ShortPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(NewRegisterCmd, "--name", "Pat", "--email", "pat@example.com", "--password", "abc12", "--contact", "555")
	assert.EqualError(t, err, "Password must be at least 6 characters")

	_, err = env.run(NewRegisterCmd, "--name", "Pat", "--email", "pat@example.com", "--password", "abcdef", "--confirm-password", "abcdef9", "--contact", "555")
	assert.EqualError(t, err, "Passwords do not match")
}

func TestBookingWorkflow(t *testing.T) {
	env := newTestEnv(t)

	// admin schedules a flight
	env.mustRun(NewRegisterCmd, "--name", "Ops", "--email", "ops@example.com", "--password", "secret1", "--contact", "555-0001", "--admin")
	out := env.mustRun(NewAdminCmd, "flights", "create",
		"--number", "fd101", "--name", "Morning Hop", "--from", "Lisbon", "--to", "Porto",
		"--departs", "2030-05-01T08:30", "--price", "80", "--duration", "1h", "--seats", "5")
	assert.Contains(t, out, "Flight created successfully!")

	// a passenger finds and books it
	env.mustRun(NewRegisterCmd, "--name", "Pat", "--email", "pat@example.com", "--password", "secret1", "--contact", "555-0002")
	out = env.mustRun(NewFlightsCmd, "--from", "lisbon")
	assert.Contains(t, out, "FD101")

	api := client.New(env.baseURL, env.tokens)
	flights, err := api.Flights.GetAll(context.Background(), client.FlightFilter{})
	require.NoError(t, err)
	require.Len(t, flights, 1)

	out = env.mustRun(NewBookCmd, flights[0].ID, "-n", "2")
	assert.Contains(t, out, "Total: $160.00")
	assert.Contains(t, out, "Booking submitted successfully!")
	// the booking view moves on to the bookings list
	assert.Contains(t, out, "Pending")

	// passengers cannot reach admin screens
	out = env.mustRun(NewAdminCmd, "bookings")
	assert.NotContains(t, out, "Revenue")

	mine, err := api.Bookings.GetMyBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, mine, 1)

	// the admin approves it
	env.mustRun(NewLogoutCmd)
	t.Setenv("FLIGHTDECK_PASSWORD", "secret1")
	env.mustRun(NewLoginCmd, "--email", "ops@example.com")
	out = env.mustRun(NewAdminCmd, "bookings", "set-status", mine[0].ID, "approved")
	assert.Contains(t, out, "Booking approved successfully!")

	out = env.mustRun(NewAdminCmd, "bookings")
	assert.Contains(t, out, "Approved: 1")
	assert.Contains(t, out, "Revenue: $160.00")

	_, err = env.run(NewAdminCmd, "flights", "delete", flights[0].ID, "--yes")
	assert.EqualError(t, err, "Cannot delete a flight that has bookings")
}

func TestProtectedCommand_AnonymousAsksForLogin(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(NewBookingsCmd)
	// redirected to login, which cannot prompt in a script
	assert.ErrorIs(t, err, views.ErrNotInteractive)
}

func slowSessionCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/me" {
			time.Sleep(200 * time.Millisecond)
		}
		next.ServeHTTP(w, r)
	})
}

func TestMenu_WaitsForStoredSession(t *testing.T) {
	env := newTestEnvWith(t, slowSessionCheck)
	env.mustRun(NewRegisterCmd, "--name", "Pat", "--email", "pat@example.com", "--password", "secret1", "--contact", "555")

	prompt := &menuPrompter{choose: func(_ int, items []string) int {
		return slices.Index(items, "Quit")
	}}
	env.prompt = prompt

	out := env.mustRun(NewMenuCmd)
	assert.Contains(t, out, "Loading...")
	assert.Contains(t, out, "Welcome, Pat")

	require.Len(t, prompt.menus, 1)
	assert.Contains(t, prompt.menus[0], "My Bookings")
	assert.Contains(t, prompt.menus[0], "Logout")
	assert.NotContains(t, prompt.menus[0], "Login")
}

func TestMenu_RebuildsWhenSessionEnds(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(NewRegisterCmd, "--name", "Ops", "--email", "ops@example.com", "--password", "secret1", "--contact", "555", "--admin")

	prompt := &menuPrompter{}
	prompt.choose = func(call int, items []string) int {
		if call == 1 {
			// the session is lost while the menu is open
			env.app.Session.Invalidate()
			return slices.Index(items, "Manage Bookings")
		}
		return slices.Index(items, "Quit")
	}
	env.prompt = prompt

	out := env.mustRun(NewMenuCmd)
	assert.Contains(t, out, "Your session changed.")
	assert.NotContains(t, out, "Revenue")

	require.Len(t, prompt.menus, 2)
	assert.Contains(t, prompt.menus[0], "Manage Bookings")
	assert.Contains(t, prompt.menus[1], "Login")
}
