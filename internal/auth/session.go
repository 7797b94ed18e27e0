package auth

import "github.com/flightdeck360/flightdeck/internal/models"

// Caller is the authenticated user a request runs as. The role is read from
// the user row on every request, so a demoted admin loses access at once.
type Caller struct {
	UserID string
	Email  string
	Role   string
}

// CallerFor builds the caller for a loaded user
func CallerFor(u *models.User) *Caller {
	return &Caller{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func (c *Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}
