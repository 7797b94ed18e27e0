package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/flightdeck360/flightdeck/internal/cli/commands"
)

var version = "dev" // Will be set during build

// NewRootCmd builds the command tree against newApp
func NewRootCmd(newApp commands.AppFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flightdeck",
		Short: "FlightDeck - Flight booking from your terminal",
		Long: `FlightDeck CLI - Search flights, book seats and track your bookings.

Administrators can manage the flight schedule and approve or reject bookings.
Run 'flightdeck menu' to browse interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flightdeck version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewLoginCmd(newApp))
	rootCmd.AddCommand(commands.NewRegisterCmd(newApp))
	rootCmd.AddCommand(commands.NewLogoutCmd(newApp))
	rootCmd.AddCommand(commands.NewWhoamiCmd(newApp))
	rootCmd.AddCommand(commands.NewFlightsCmd(newApp))
	rootCmd.AddCommand(commands.NewBookCmd(newApp))
	rootCmd.AddCommand(commands.NewBookingsCmd(newApp))
	rootCmd.AddCommand(commands.NewAdminCmd(newApp))
	rootCmd.AddCommand(commands.NewMenuCmd(newApp))
	rootCmd.AddCommand(commands.NewSelectServerCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd(commands.DefaultApp).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
