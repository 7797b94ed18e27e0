package views

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/flightdeck360/flightdeck/internal/cli/client"
	"github.com/flightdeck360/flightdeck/internal/cli/router"
	"github.com/flightdeck360/flightdeck/internal/cli/session"
)

// MenuItem is one navigation entry
type MenuItem struct {
	Label string
	Path  string
}

// Non-route menu entries
const (
	MenuLogout = "logout"
	MenuQuit   = "quit"
)

// Menu returns the navigation entries available in state
func Menu(st session.State) []MenuItem {
	items := []MenuItem{
		{Label: "Home", Path: router.PathHome},
		{Label: "Flights", Path: router.PathFlights},
	}

	switch {
	case st.User == nil:
		items = append(items,
			MenuItem{Label: "Login", Path: router.PathLogin},
			MenuItem{Label: "Register", Path: router.PathRegister},
		)
	case st.IsAdmin():
		items = append(items,
			MenuItem{Label: "Manage Flights", Path: router.PathAdminFlights},
			MenuItem{Label: "Manage Bookings", Path: router.PathAdminBookings},
			MenuItem{Label: "Logout", Path: MenuLogout},
		)
	default:
		items = append(items,
			MenuItem{Label: "My Bookings", Path: router.PathMyBookings},
			MenuItem{Label: "Logout", Path: MenuLogout},
		)
	}

	return append(items, MenuItem{Label: "Quit", Path: MenuQuit})
}

// Dashboard is the admin overview shown on the home view
type Dashboard struct {
	Flights         int
	FullFlights     int
	Bookings        int
	PendingBookings int
}

// LoadDashboard fetches flights and bookings concurrently
func LoadDashboard(ctx context.Context, api *client.Client) (*Dashboard, error) {
	var (
		flights  []client.Flight
		bookings []client.Booking
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		flights, err = api.Flights.GetAll(ctx, client.FlightFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = api.Bookings.GetAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dashboard{Flights: len(flights), Bookings: len(bookings)}
	for _, f := range flights {
		if f.AvailableSeats == 0 {
			d.FullFlights++
		}
	}
	for _, b := range bookings {
		if b.Status == client.StatusPending {
			d.PendingBookings++
		}
	}
	return d, nil
}

// Home greets the user and lists where they can go
func (v *Views) Home(ctx context.Context, req router.Request) error {
	st := v.session.State()

	v.printf("✈  FlightDeck360\n")
	v.printf("Your Ultimate Flight Booking Experience\n\n")

	if st.User != nil {
		v.printf("Welcome, %s\n", st.User.Name)
	}

	if st.IsAdmin() {
		d, err := LoadDashboard(ctx, v.api)
		if err != nil {
			v.logger.Debug().Err(err).Msg("Failed to load dashboard")
			v.printf("Dashboard unavailable: %v\n", err)
		} else {
			v.printf("Flights: %d (%d full)   Bookings: %d (%d pending)\n",
				d.Flights, d.FullFlights, d.Bookings, d.PendingBookings)
		}
	}

	if v.interactive {
		return nil
	}

	v.printf("\n")
	for _, item := range Menu(st) {
		if cmd, ok := commandFor[item.Path]; ok {
			v.printf("  %-16s %s\n", item.Label, cmd)
		}
	}
	return nil
}

// commandFor maps menu entries to the command that reaches them
var commandFor = map[string]string{
	router.PathFlights:       "flightdeck flights",
	router.PathLogin:         "flightdeck login",
	router.PathRegister:      "flightdeck register",
	router.PathMyBookings:    "flightdeck bookings",
	router.PathAdminFlights:  "flightdeck admin flights",
	router.PathAdminBookings: "flightdeck admin bookings",
	MenuLogout:               "flightdeck logout",
}

// describe is used by views that need a one-line user summary
func describe(u *client.User) string {
	if u == nil {
		return "not logged in"
	}
	return fmt.Sprintf("%s <%s> (%s)", u.Name, u.Email, u.Role)
}
