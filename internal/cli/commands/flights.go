package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/flightdeck360/flightdeck/internal/cli/router"
	"github.com/flightdeck360/flightdeck/internal/cli/views"
)

// NewFlightsCmd creates the flights command
func NewFlightsCmd(newApp AppFactory) *cobra.Command {
	var from, to, date string

	cmd := &cobra.Command{
		Use:     "flights",
		Aliases: []string{"search"},
		Short:   "Search available flights",
		Example: `  $ flightdeck flights
  $ flightdeck flights --from Lisbon --to Porto --date 2030-05-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := start(ctx, newApp)
			if err != nil {
				return err
			}
			return a.Navigate(ctx, router.PathFlights, router.Params{
				views.ParamFrom: from,
				views.ParamTo:   to,
				views.ParamDate: date,
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Departure city")
	cmd.Flags().StringVar(&to, "to", "", "Destination city")
	cmd.Flags().StringVar(&date, "date", "", "Journey date (YYYY-MM-DD)")

	return cmd
}

// NewBookCmd creates the book command
func NewBookCmd(newApp AppFactory) *cobra.Command {
	var (
		passengers int
		assistance bool
		name       string
		contact    string
		email      string
	)

	cmd := &cobra.Command{
		Use:   "book <flight-id>",
		Short: "Book seats on a flight",
		Long: `Book seats on a flight. Passenger details default to your profile.

Requires login.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := start(ctx, newApp)
			if err != nil {
				return err
			}
			return a.Navigate(ctx, router.Path(router.PathBookFlight, views.ParamFlightID, args[0]), router.Params{
				views.ParamPassengers: strconv.Itoa(passengers),
				views.ParamAssistance: strconv.FormatBool(assistance),
				views.ParamName:       name,
				views.ParamContact:    contact,
				views.ParamEmail:      email,
			})
		},
	}

	cmd.Flags().IntVarP(&passengers, "passengers", "n", 1, "Number of passengers (1-10)")
	cmd.Flags().BoolVar(&assistance, "assistance", false, "Request special assistance")
	cmd.Flags().StringVar(&name, "name", "", "Passenger name (defaults to your name)")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact number (defaults to your profile)")
	cmd.Flags().StringVar(&email, "email", "", "Contact email (defaults to your email)")

	return cmd
}

// NewBookingsCmd creates the bookings command
func NewBookingsCmd(newApp AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:     "bookings",
		Aliases: []string{"my-bookings"},
		Short:   "List your bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := start(ctx, newApp)
			if err != nil {
				return err
			}
			return a.Navigate(ctx, router.PathMyBookings, nil)
		},
	}
}
