package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/flightdeck360/flightdeck/internal/cli/router"
	"github.com/flightdeck360/flightdeck/internal/cli/views"
)

// NewAdminCmd creates the admin command group
func NewAdminCmd(newApp AppFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage flights and bookings (admin only)",
	}

	cmd.AddCommand(newAdminFlightsCmd(newApp))
	cmd.AddCommand(newAdminBookingsCmd(newApp))

	return cmd
}

type flightFlags struct {
	number   string
	name     string
	from     string
	to       string
	departs  string
	price    string
	duration string
	seats    string
}

func (f *flightFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.number, "number", "", "Flight number")
	cmd.Flags().StringVar(&f.name, "name", "", "Flight name")
	cmd.Flags().StringVar(&f.from, "from", "", "Departure city")
	cmd.Flags().StringVar(&f.to, "to", "", "Destination city")
	cmd.Flags().StringVar(&f.departs, "departs", "", "Journey date and time (YYYY-MM-DDTHH:MM)")
	cmd.Flags().StringVar(&f.price, "price", "", "Price per passenger")
	cmd.Flags().StringVar(&f.duration, "duration", "", "Duration, e.g. 2h 15m")
	cmd.Flags().StringVar(&f.seats, "seats", "", "Available seats")
}

func (f *flightFlags) params(action, id string) router.Params {
	return router.Params{
		views.ParamAction: action,
		views.ParamID:     id,
		"flightNumber":    f.number,
		"flightName":      f.name,
		views.ParamFrom:   f.from,
		views.ParamTo:     f.to,
		"journeyDateTime": f.departs,
		"price":           f.price,
		"duration":        f.duration,
		"availableSeats":  f.seats,
	}
}

func newAdminFlightsCmd(newApp AppFactory) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "flights",
		Short: "List flights with seat statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdmin(cmd.Context(), newApp, router.PathAdminFlights, router.Params{views.ParamQuery: query}, false)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by flight number, name, origin or destination")

	var create flightFlags
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Add a flight",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdmin(cmd.Context(), newApp, router.PathAdminFlights, create.params(views.ActionCreate, ""), false)
		},
	}
	create.register(createCmd)

	var edit flightFlags
	editCmd := &cobra.Command{
		Use:   "edit <flight-id>",
		Short: "Change a flight; unset fields keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdmin(cmd.Context(), newApp, router.PathAdminFlights, edit.params(views.ActionEdit, args[0]), true)
		},
	}
	edit.register(editCmd)

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <flight-id>",
		Short: "Delete a flight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdmin(cmd.Context(), newApp, router.PathAdminFlights, router.Params{
				views.ParamAction: views.ActionDelete,
				views.ParamID:     args[0],
				views.ParamYes:    strconv.FormatBool(yes),
			}, false)
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	cmd.AddCommand(createCmd, editCmd, deleteCmd)
	return cmd
}

func newAdminBookingsCmd(newApp AppFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List every booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdmin(cmd.Context(), newApp, router.PathAdminBookings, nil, false)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "set-status <booking-id> <pending|approved|rejected>",
		Short:     "Approve, reject or reopen a booking",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"pending", "approved", "rejected"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdmin(cmd.Context(), newApp, router.PathAdminBookings, router.Params{
				views.ParamAction: views.ActionSetStatus,
				views.ParamID:     args[0],
				views.ParamStatus: args[1],
			}, false)
		},
	})

	return cmd
}

// runAdmin navigates to an admin route. Edits prompt with current values on a terminal.
func runAdmin(ctx context.Context, newApp AppFactory, path string, params router.Params, promptOnTerminal bool) error {
	a, err := start(ctx, newApp)
	if err != nil {
		return err
	}
	if promptOnTerminal {
		a.Views.SetInteractive(a.Interactive())
	}
	return a.Navigate(ctx, path, params)
}
