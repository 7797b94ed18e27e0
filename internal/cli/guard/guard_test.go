package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flightdeck360/flightdeck/internal/cli/client"
	"github.com/flightdeck360/flightdeck/internal/cli/session"
)

func TestEvaluate(t *testing.T) {
	admin := &client.User{ID: "a", Role: client.RoleAdmin}
	passenger := &client.User{ID: "p", Role: client.RolePassenger}

	tests := []struct {
		name   string
		state  session.State
		access Access
		want   Decision
	}{
		{"public while loading", session.State{Loading: true}, Public, Allow},
		{"public anonymous", session.State{}, Public, Allow},
		{"protected while loading", session.State{Loading: true, Token: "t"}, Protected, Resolving},
		{"admin-only while loading", session.State{Loading: true}, AdminOnly, Resolving},
		{"protected anonymous", session.State{}, Protected, RedirectLogin},
		{"admin-only anonymous", session.State{}, AdminOnly, RedirectLogin},
		{"protected passenger", session.State{User: passenger, Token: "t"}, Protected, Allow},
		{"admin-only passenger", session.State{User: passenger, Token: "t"}, AdminOnly, RedirectHome},
		{"admin-only admin", session.State{User: admin, Token: "t"}, AdminOnly, Allow},
		{"protected admin", session.State{User: admin, Token: "t"}, Protected, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.state, tt.access))
		})
	}
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "admin-only", AdminOnly.String())
	assert.Equal(t, "redirect-home", RedirectHome.String())
}
