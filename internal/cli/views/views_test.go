package views

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdeck360/flightdeck/internal/cli/auth"
	"github.com/flightdeck360/flightdeck/internal/cli/client"
	"github.com/flightdeck360/flightdeck/internal/cli/forms"
	"github.com/flightdeck360/flightdeck/internal/cli/router"
	"github.com/flightdeck360/flightdeck/internal/cli/session"
)

type fakePrompter struct {
	inputs   []string
	confirms []bool
	selects  []int
}

func (p *fakePrompter) Input(label, def string) (string, error) {
	if len(p.inputs) == 0 {
		return def, nil
	}
	v := p.inputs[0]
	p.inputs = p.inputs[1:]
	return v, nil
}

func (p *fakePrompter) Password(string) (string, error) {
	return "", ErrNotInteractive
}

func (p *fakePrompter) Confirm(string) (bool, error) {
	if len(p.confirms) == 0 {
		return false, ErrNotInteractive
	}
	v := p.confirms[0]
	p.confirms = p.confirms[1:]
	return v, nil
}

func (p *fakePrompter) Select(string, []string) (int, error) {
	if len(p.selects) == 0 {
		return -1, ErrNotInteractive
	}
	v := p.selects[0]
	p.selects = p.selects[1:]
	return v, nil
}

var (
	departure = time.Date(2030, 5, 1, 8, 30, 0, 0, time.UTC)
	flightA   = client.Flight{ID: "fa", FlightNumber: "FD1", FlightName: "Hop", From: "Lisbon", To: "Porto", JourneyDateTime: departure, Price: 50, Duration: "1h", AvailableSeats: 80}
	flightB   = client.Flight{ID: "fb", FlightNumber: "FD2", FlightName: "Skip", From: "Porto", To: "Madrid", JourneyDateTime: departure, Price: 90, Duration: "1h30m", AvailableSeats: 3}
	passenger = client.User{ID: "u1", Name: "Pat", Email: "pat@example.com", Role: client.RolePassenger, ContactNumber: "555"}
	admin     = client.User{ID: "a1", Name: "Ops", Email: "ops@example.com", Role: client.RoleAdmin}
)

// fakeBackend records the last request body per path
type fakeBackend struct {
	user     client.User
	bookings []client.Booking
	bodies   map[string]map[string]any
	deleted  []string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Body != nil && r.ContentLength > 0 {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		b.bodies[r.Method+" "+r.URL.Path] = body
	}

	enc := json.NewEncoder(w)
	switch r.Method + " " + r.URL.Path {
	case "GET /api/auth/me":
		enc.Encode(b.user)
	case "GET /api/flights":
		enc.Encode([]client.Flight{flightA, flightB})
	case "GET /api/flights/fa":
		enc.Encode(flightA)
	case "GET /api/flights/fb":
		enc.Encode(flightB)
	case "POST /api/bookings":
		enc.Encode(client.Booking{ID: "bk1", Status: client.StatusPending})
	case "GET /api/bookings", "GET /api/bookings/my-bookings":
		enc.Encode(b.bookings)
	case "PATCH /api/bookings/bk1/status":
		enc.Encode(client.Booking{ID: "bk1", Status: b.bodies["PATCH /api/bookings/bk1/status"]["status"].(string)})
	case "DELETE /api/flights/fa":
		b.deleted = append(b.deleted, "fa")
		enc.Encode(map[string]string{"message": "Flight deleted"})
	default:
		w.WriteHeader(http.StatusNotFound)
		enc.Encode(map[string]string{"message": "not found"})
	}
}

type fixture struct {
	views   *Views
	router  *router.Router
	backend *fakeBackend
	prompt  *fakePrompter
	out     *bytes.Buffer
}

func newFixture(t *testing.T, user client.User) *fixture {
	t.Helper()

	backend := &fakeBackend{user: user, bodies: map[string]map[string]any{}}
	ts := httptest.NewServer(backend)
	t.Cleanup(ts.Close)

	api := client.New(ts.URL+"/api", auth.NewMemoryStore("tok"))
	sess := session.New(api.Auth, auth.NewMemoryStore("tok"), zerolog.Nop())
	sess.CheckAuth(context.Background())
	require.True(t, sess.State().Authenticated())

	out := &bytes.Buffer{}
	prompt := &fakePrompter{}
	r := router.New(sess, out, zerolog.Nop())
	v := New(api, sess, r, prompt, nil, out, zerolog.Nop())
	v.Mount(r)

	return &fixture{views: v, router: r, backend: backend, prompt: prompt, out: out}
}

func TestMenu(t *testing.T) {
	labels := func(items []MenuItem) []string {
		var out []string
		for _, i := range items {
			out = append(out, i.Label)
		}
		return out
	}

	assert.Equal(t, []string{"Home", "Flights", "Login", "Register", "Quit"}, labels(Menu(session.State{})))
	assert.Equal(t, []string{"Home", "Flights", "My Bookings", "Logout", "Quit"}, labels(Menu(session.State{User: &passenger, Token: "t"})))
	assert.Equal(t, []string{"Home", "Flights", "Manage Flights", "Manage Bookings", "Logout", "Quit"}, labels(Menu(session.State{User: &admin, Token: "t"})))
}

func TestSeatStatus(t *testing.T) {
	assert.Equal(t, "Available", SeatStatus(51))
	assert.Equal(t, "Limited", SeatStatus(50))
	assert.Equal(t, "Limited", SeatStatus(1))
	assert.Equal(t, "Full", SeatStatus(0))
}

func TestSummaries(t *testing.T) {
	fs := SummarizeFlights([]client.Flight{flightA, flightB, {AvailableSeats: 0}})
	assert.Equal(t, FlightStats{Total: 3, Available: 1, Limited: 1, Full: 1, Seats: 83}, fs)

	bs := SummarizeBookings([]client.Booking{
		{Status: client.StatusPending, TotalAmount: 10},
		{Status: client.StatusApproved, TotalAmount: 25},
		{Status: client.StatusRejected, TotalAmount: 40},
	})
	assert.Equal(t, BookingStats{Total: 3, Pending: 1, Approved: 1, Rejected: 1, Revenue: 25}, bs)

	assert.Len(t, FilterFlights([]client.Flight{flightA, flightB}, "porto"), 2)
	assert.Len(t, FilterFlights([]client.Flight{flightA, flightB}, "fd2"), 1)
	assert.Len(t, FilterFlights([]client.Flight{flightA, flightB}, ""), 2)
	assert.Equal(t, "Approved", StatusLabel(client.StatusApproved))
}

func TestLoadDashboard(t *testing.T) {
	f := newFixture(t, admin)
	f.backend.bookings = []client.Booking{{Status: client.StatusPending}, {Status: client.StatusApproved}}

	d, err := LoadDashboard(context.Background(), f.views.api)
	require.NoError(t, err)
	assert.Equal(t, &Dashboard{Flights: 2, Bookings: 2, PendingBookings: 1}, d)
}

func TestFlights_ListsWithSeatStatus(t *testing.T) {
	f := newFixture(t, passenger)

	require.NoError(t, f.router.Navigate(context.Background(), router.PathFlights, router.Params{ParamFrom: "Lisbon"}))
	out := f.out.String()
	assert.Contains(t, out, "FD1")
	assert.Contains(t, out, "Available")
	assert.Contains(t, out, "Limited")
	assert.Contains(t, out, "flightdeck book <flight-id>")
}

func TestFlights_InteractivePickLeadsToBooking(t *testing.T) {
	f := newFixture(t, passenger)
	f.views.SetInteractive(true)

	// filters blank, pick FD2, accept prefilled passenger details, 2 passengers
	f.prompt.inputs = []string{"", "", "", "Pat", "555", "pat@example.com", "2"}
	f.prompt.selects = []int{1}
	f.prompt.confirms = []bool{false, true}

	require.NoError(t, f.router.Navigate(context.Background(), router.PathFlights, nil))

	body := f.backend.bodies["POST /api/bookings"]
	require.NotNil(t, body)
	assert.Equal(t, "fb", body["flight"])
	assert.EqualValues(t, 2, body["totalPassengers"])
	assert.Contains(t, f.out.String(), "Total: $180.00")
	assert.Contains(t, f.out.String(), "Booking submitted successfully!")
}

func TestBookFlight_NonInteractiveUsesProfile(t *testing.T) {
	f := newFixture(t, passenger)

	require.NoError(t, f.router.Navigate(context.Background(), "/book-flight/fa", router.Params{ParamPassengers: "3"}))

	body := f.backend.bodies["POST /api/bookings"]
	require.NotNil(t, body)
	assert.Equal(t, "Pat", body["passengerName"])
	assert.Equal(t, "555", body["contact"])
	assert.EqualValues(t, 3, body["totalPassengers"])
}

func TestBookFlight_TooManyPassengers(t *testing.T) {
	f := newFixture(t, passenger)

	err := f.router.Navigate(context.Background(), "/book-flight/fb", router.Params{ParamPassengers: "4"})
	require.Error(t, err)
	assert.True(t, forms.IsValidation(err))
	assert.Nil(t, f.backend.bodies["POST /api/bookings"])
}

func TestAdminBookings_SetStatus(t *testing.T) {
	f := newFixture(t, admin)

	err := f.router.Navigate(context.Background(), router.PathAdminBookings, router.Params{
		ParamAction: ActionSetStatus, ParamID: "bk1", ParamStatus: "Rejected",
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", f.backend.bodies["PATCH /api/bookings/bk1/status"]["status"])
	assert.Contains(t, f.out.String(), "Booking rejected successfully!")

	err = f.router.Navigate(context.Background(), router.PathAdminBookings, router.Params{
		ParamAction: ActionSetStatus, ParamID: "bk1", ParamStatus: "cancelled",
	})
	assert.True(t, forms.IsValidation(err))
}

func TestAdminFlights_DeleteNeedsConfirmation(t *testing.T) {
	f := newFixture(t, admin)
	ctx := context.Background()

	f.prompt.confirms = []bool{false}
	require.NoError(t, f.router.Navigate(ctx, router.PathAdminFlights, router.Params{ParamAction: ActionDelete, ParamID: "fa"}))
	assert.Empty(t, f.backend.deleted)
	assert.Contains(t, f.out.String(), "Delete cancelled.")

	require.NoError(t, f.router.Navigate(ctx, router.PathAdminFlights, router.Params{ParamAction: ActionDelete, ParamID: "fa", ParamYes: "true"}))
	assert.Equal(t, []string{"fa"}, f.backend.deleted)
}

func TestAdminFlights_ListShowsStats(t *testing.T) {
	f := newFixture(t, admin)

	require.NoError(t, f.router.Navigate(context.Background(), router.PathAdminFlights, router.Params{ParamQuery: "madrid"}))
	out := f.out.String()
	assert.Contains(t, out, "Flights: 2   Available: 1   Limited: 1   Full: 0   Open seats: 83")
	assert.Contains(t, out, "FD2")
	assert.NotContains(t, out, "FD1 ")
}
