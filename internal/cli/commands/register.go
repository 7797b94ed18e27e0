package commands

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/flightdeck360/flightdeck/internal/cli/router"
	"github.com/flightdeck360/flightdeck/internal/cli/views"
)

type registerOptions struct {
	name     string
	email    string
	password string
	confirm  string
	contact  string
	admin    bool
}

// NewRegisterCmd creates the register command
func NewRegisterCmd(newApp AppFactory) *cobra.Command {
	var opts registerOptions

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a FlightDeck account",
		Long: `Create a FlightDeck account and log in to it.

Missing fields are prompted for. Passwords are always read without echo
unless passed with --password (or FLIGHTDECK_PASSWORD).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd.Context(), newApp, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "Full name")
	cmd.Flags().StringVar(&opts.email, "email", "", "Email address (or set FLIGHTDECK_EMAIL)")
	cmd.Flags().StringVar(&opts.password, "password", "", "Password (or set FLIGHTDECK_PASSWORD)")
	cmd.Flags().StringVar(&opts.confirm, "confirm-password", "", "Password confirmation (defaults to --password)")
	cmd.Flags().StringVar(&opts.contact, "contact", "", "Contact number")
	cmd.Flags().BoolVar(&opts.admin, "admin", false, "Register as an administrator")

	return cmd
}

func runRegister(ctx context.Context, newApp AppFactory, opts registerOptions) error {
	opts.email = firstNonEmpty(opts.email, os.Getenv("FLIGHTDECK_EMAIL"))
	opts.password = firstNonEmpty(opts.password, os.Getenv("FLIGHTDECK_PASSWORD"))
	opts.confirm = firstNonEmpty(opts.confirm, opts.password)

	a, err := start(ctx, newApp)
	if err != nil {
		return err
	}

	return a.Navigate(ctx, router.PathRegister, router.Params{
		views.ParamName:     opts.name,
		views.ParamEmail:    opts.email,
		views.ParamPassword: opts.password,
		views.ParamConfirm:  opts.confirm,
		views.ParamContact:  opts.contact,
		views.ParamAdmin:    strconv.FormatBool(opts.admin),
	})
}
