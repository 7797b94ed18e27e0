package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flightdeck360/flightdeck/internal/cli/router"
	"github.com/flightdeck360/flightdeck/internal/cli/views"
)

// NewLoginCmd creates the login command
func NewLoginCmd(newApp AppFactory) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to FlightDeck",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), newApp, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set FLIGHTDECK_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set FLIGHTDECK_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(ctx context.Context, newApp AppFactory, email, password string) error {
	// Check for environment variables (useful for CI/CD)
	email = firstNonEmpty(email, os.Getenv("FLIGHTDECK_EMAIL"))
	password = firstNonEmpty(password, os.Getenv("FLIGHTDECK_PASSWORD"))

	a, err := start(ctx, newApp)
	if err != nil {
		return err
	}

	return a.Navigate(ctx, router.PathLogin, router.Params{
		views.ParamEmail:    email,
		views.ParamPassword: password,
	})
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd(newApp AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			a.Session.Logout()
			fmt.Fprintln(a.Out, "✓ Logged out")
			return nil
		},
	}
}

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd(newApp AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := start(ctx, newApp)
			if err != nil {
				return err
			}
			if err := a.WaitReady(ctx); err != nil {
				return err
			}

			st := a.Session.State()
			if !st.Authenticated() {
				fmt.Fprintln(a.Out, "Not logged in. Run 'flightdeck login' to authenticate.")
				return nil
			}

			fmt.Fprintf(a.Out, "%s <%s>\n", st.User.Name, st.User.Email)
			fmt.Fprintf(a.Out, "  Role:    %s\n", st.User.Role)
			if st.User.ContactNumber != "" {
				fmt.Fprintf(a.Out, "  Contact: %s\n", st.User.ContactNumber)
			}
			fmt.Fprintf(a.Out, "  Server:  %s\n", a.Client.BaseURL())
			return nil
		},
	}
}
