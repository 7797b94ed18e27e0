// Package views renders the terminal screens behind each route.
package views

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/flightdeck360/flightdeck/internal/cli/client"
	"github.com/flightdeck360/flightdeck/internal/cli/guard"
	"github.com/flightdeck360/flightdeck/internal/cli/router"
	"github.com/flightdeck360/flightdeck/internal/cli/session"
)

// Parameter names views read from a navigation
const (
	ParamEmail      = "email"
	ParamPassword   = "password"
	ParamConfirm    = "confirmPassword"
	ParamName       = "name"
	ParamContact    = "contactNumber"
	ParamAdmin      = "admin"
	ParamFrom       = "from"
	ParamTo         = "to"
	ParamDate       = "date"
	ParamFlightID   = "flightId"
	ParamPassengers = "passengers"
	ParamAssistance = "assistance"
	ParamAction     = "action"
	ParamID         = "id"
	ParamStatus     = "status"
	ParamQuery      = "q"
	ParamYes        = "yes"
)

// Admin actions
const (
	ActionList      = "list"
	ActionCreate    = "create"
	ActionEdit      = "edit"
	ActionDelete    = "delete"
	ActionSetStatus = "set-status"
)

// Preferences remembers small bits of user input between runs
type Preferences interface {
	LastEmail() string
	RememberEmail(email string) error
}

// Views renders every screen. It only talks to the backend through the API
// client and to the session through its Manager.
type Views struct {
	api     *client.Client
	session session.Manager
	router  *router.Router
	prompt  Prompter
	prefs   Preferences
	out     io.Writer
	logger  zerolog.Logger

	interactive bool
}

// New creates the view set
func New(api *client.Client, sess session.Manager, r *router.Router, prompt Prompter, prefs Preferences, out io.Writer, log zerolog.Logger) *Views {
	return &Views{
		api:     api,
		session: sess,
		router:  r,
		prompt:  prompt,
		prefs:   prefs,
		out:     out,
		logger:  log,
	}
}

// SetInteractive switches views into menu mode, where they prompt for
// follow-up actions instead of returning after rendering.
func (v *Views) SetInteractive(interactive bool) {
	v.interactive = interactive
}

// Mount registers the route table on r
func (v *Views) Mount(r *router.Router) {
	r.Handle(router.PathHome, "home", guard.Public, v.Home)
	r.Handle(router.PathLogin, "login", guard.Public, v.Login)
	r.Handle(router.PathRegister, "register", guard.Public, v.Register)
	r.Handle(router.PathFlights, "flights", guard.Public, v.Flights)
	r.Handle(router.PathBookFlight, "book-flight", guard.Protected, v.BookFlight)
	r.Handle(router.PathMyBookings, "my-bookings", guard.Protected, v.MyBookings)
	r.Handle(router.PathAdminFlights, "admin-flights", guard.AdminOnly, v.AdminFlights)
	r.Handle(router.PathAdminBookings, "admin-bookings", guard.AdminOnly, v.AdminBookings)
}

func (v *Views) printf(format string, args ...any) {
	fmt.Fprintf(v.out, format, args...)
}

func (v *Views) success(format string, args ...any) {
	fmt.Fprintf(v.out, "✓ "+format+"\n", args...)
}

// ask returns the param if set, otherwise prompts with def prefilled. Outside
// menu mode a missing param falls back to def when def is usable.
func (v *Views) ask(params router.Params, key, label, def string) (string, error) {
	if value, ok := params[key]; ok && value != "" {
		return value, nil
	}
	if !v.interactive && def != "" {
		return def, nil
	}
	return v.prompt.Input(label, def)
}

func (v *Views) confirm(params router.Params, label string) (bool, error) {
	if yes, _ := strconv.ParseBool(params[ParamYes]); yes {
		return true, nil
	}
	return v.prompt.Confirm(label)
}

// SeatStatus labels a flight's remaining capacity
func SeatStatus(seats int) string {
	switch {
	case seats > 50:
		return "Available"
	case seats > 0:
		return "Limited"
	default:
		return "Full"
	}
}

// StatusLabel renders a booking status for display
func StatusLabel(status string) string {
	if status == "" {
		return "Unknown"
	}
	return strings.ToUpper(status[:1]) + status[1:]
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Mon 02 Jan 2006 15:04")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02 Jan 2006")
}

func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func route(from, to string) string {
	return from + " → " + to
}
