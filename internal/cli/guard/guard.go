// Package guard decides whether a navigation may proceed.
package guard

import "github.com/flightdeck360/flightdeck/internal/cli/session"

// Access is a route's protection level
type Access int

const (
	Public Access = iota
	Protected
	AdminOnly
)

func (a Access) String() string {
	switch a {
	case Protected:
		return "protected"
	case AdminOnly:
		return "admin-only"
	default:
		return "public"
	}
}

// Decision is the outcome of evaluating a route against the session
type Decision int

const (
	// Allow mounts the view
	Allow Decision = iota
	// Resolving means the session is still loading; show a loading indicator
	Resolving
	// RedirectLogin sends an anonymous user to the login view
	RedirectLogin
	// RedirectHome sends a user lacking the admin role to the home view
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Resolving:
		return "resolving"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "allow"
	}
}

// Evaluate returns the decision for a route with the given access level.
// Public routes are always allowed, even while the session is loading.
func Evaluate(st session.State, access Access) Decision {
	if access == Public {
		return Allow
	}
	if st.Loading {
		return Resolving
	}
	if !st.Authenticated() {
		return RedirectLogin
	}
	if access == AdminOnly && !st.IsAdmin() {
		return RedirectHome
	}
	return Allow
}
