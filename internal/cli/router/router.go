// Package router maps CLI navigation paths to views and applies the route
// guard on every navigation.
package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/flightdeck360/flightdeck/internal/cli/guard"
	"github.com/flightdeck360/flightdeck/internal/cli/session"
)

// Route paths
const (
	PathHome           = "/"
	PathLogin          = "/login"
	PathRegister       = "/register"
	PathFlights        = "/flights"
	PathBookFlight     = "/book-flight/:flightId"
	PathMyBookings     = "/my-bookings"
	PathAdminFlights   = "/admin/flights"
	PathAdminBookings  = "/admin/bookings"
	defaultMaxRedirect = 8
)

var (
	// ErrNotFound is returned for a path no route matches
	ErrNotFound = errors.New("no such route")
	// ErrTooManyRedirects guards against redirect loops
	ErrTooManyRedirects = errors.New("too many redirects")
)

// Params are path parameters plus any values supplied by the caller
type Params map[string]string

// Request is what a view receives when it is mounted
type Request struct {
	Path    string
	Route   *Route
	Params  Params
	Session session.State
}

// Handler renders a view. Returning nil ends the navigation unless the view
// or the app asked for a redirect.
type Handler func(ctx context.Context, req Request) error

// Route is one entry of the route table
type Route struct {
	Pattern string
	Name    string
	Access  guard.Access
	Handler Handler

	segments []string
}

// Router holds the route table and performs navigations
type Router struct {
	session      session.Manager
	out          io.Writer
	logger       zerolog.Logger
	maxRedirects int

	routes []*Route

	mu      sync.Mutex
	pending string
	guarded atomic.Int32 // running views that are not public
}

// New creates a router. The loading indicator is written to out.
func New(sess session.Manager, out io.Writer, log zerolog.Logger) *Router {
	return &Router{
		session:      sess,
		out:          out,
		logger:       log,
		maxRedirects: defaultMaxRedirect,
	}
}

// Handle adds a route. Patterns use ":name" segments for parameters.
func (r *Router) Handle(pattern, name string, access guard.Access, h Handler) {
	r.routes = append(r.routes, &Route{
		Pattern:  pattern,
		Name:     name,
		Access:   access,
		Handler:  h,
		segments: split(pattern),
	})
}

// Routes returns the route table in registration order
func (r *Router) Routes() []*Route {
	return r.routes
}

// Redirect schedules a navigation to path once the running view returns
func (r *Router) Redirect(path string) {
	r.mu.Lock()
	r.pending = path
	r.mu.Unlock()
}

// Interrupt schedules a redirect only while a protected or admin view is
// running. Public views never depend on the session, so they finish
// undisturbed. It reports whether the redirect was scheduled.
func (r *Router) Interrupt(path string) bool {
	if r.guarded.Load() == 0 {
		return false
	}
	r.Redirect(path)
	return true
}

func (r *Router) takePending() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	path := r.pending
	r.pending = ""
	return path, path != ""
}

// Match finds the route for path and extracts its parameters
func (r *Router) Match(path string) (*Route, Params, bool) {
	parts := split(path)
	for _, route := range r.routes {
		if params, ok := route.match(parts); ok {
			return route, params, true
		}
	}
	return nil, nil, false
}

// Navigate runs the view for path, following guard and view redirects
func (r *Router) Navigate(ctx context.Context, path string, params Params) error {
	announced := false

	for hops := 0; ; hops++ {
		if hops > r.maxRedirects {
			return fmt.Errorf("%w while navigating to %s", ErrTooManyRedirects, path)
		}

		route, pathParams, ok := r.Match(path)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		state := r.session.State()
		decision := guard.Evaluate(state, route.Access)
		r.logger.Debug().
			Str("path", path).
			Str("route", route.Name).
			Stringer("decision", decision).
			Msg("Navigation")

		switch decision {
		case guard.Resolving:
			if !announced {
				fmt.Fprintln(r.out, "Loading...")
				announced = true
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-r.session.Ready():
			}
			continue

		case guard.RedirectLogin:
			path, params = PathLogin, nil
			continue

		case guard.RedirectHome:
			path, params = PathHome, nil
			continue
		}

		merged := Params{}
		for k, v := range params {
			merged[k] = v
		}
		for k, v := range pathParams {
			merged[k] = v
		}

		guarded := route.Access != guard.Public
		if guarded {
			r.guarded.Add(1)
		}
		err := route.Handler(ctx, Request{Path: path, Route: route, Params: merged, Session: state})
		if guarded {
			r.guarded.Add(-1)
		}

		if next, ok := r.takePending(); ok {
			if err != nil {
				r.logger.Debug().Err(err).Str("route", route.Name).Msg("View ended by redirect")
			}
			path, params = next, nil
			continue
		}
		return err
	}
}

// Path fills a pattern's parameters, e.g. Path(PathBookFlight, "flightId", id)
func Path(pattern string, kv ...string) string {
	out := pattern
	for i := 0; i+1 < len(kv); i += 2 {
		out = strings.Replace(out, ":"+kv[i], kv[i+1], 1)
	}
	return out
}

func (rt *Route) match(parts []string) (Params, bool) {
	if len(parts) != len(rt.segments) {
		return nil, false
	}
	params := Params{}
	for i, seg := range rt.segments {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if parts[i] == "" {
				return nil, false
			}
			params[name] = parts[i]
			continue
		}
		if seg != parts[i] {
			return nil, false
		}
	}
	return params, true
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
