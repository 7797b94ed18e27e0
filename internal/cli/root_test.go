package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdeck360/flightdeck/internal/cli/app"
)

func noApp(context.Context) (*app.App, error) {
	return nil, errors.New("not used")
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd(noApp)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"version", "login", "register", "logout", "whoami", "flights", "book", "bookings", "admin", "menu", "select-server"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_Version(t *testing.T) {
	root := NewRootCmd(noApp)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "flightdeck version dev\n", out.String())
}

func TestRootCmd_FactoryErrorSurfaces(t *testing.T) {
	root := NewRootCmd(noApp)
	root.SetArgs([]string{"flights"})

	err := root.Execute()
	assert.EqualError(t, err, "not used")
}
