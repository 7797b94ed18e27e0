package views

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/flightdeck360/flightdeck/internal/cli/client"
	"github.com/flightdeck360/flightdeck/internal/cli/router"
)

// MyBookings lists the logged in user's bookings
func (v *Views) MyBookings(ctx context.Context, req router.Request) error {
	bookings, err := v.api.Bookings.GetMyBookings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}

	if len(bookings) == 0 {
		v.printf("You haven't made any bookings yet.\n")
		v.printf("Find a flight with: flightdeck flights\n")
		return nil
	}

	v.printBookings(bookings, false)
	return nil
}

func (v *Views) printBookings(bookings []client.Booking, withPassenger bool) {
	w := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)
	if withPassenger {
		fmt.Fprintln(w, "ID\tFLIGHT\tROUTE\tDATE\tPASSENGER\tEMAIL\tPAX\tTOTAL\tASSIST\tSTATUS")
		fmt.Fprintln(w, "──\t──────\t─────\t────\t─────────\t─────\t───\t─────\t──────\t──────")
	} else {
		fmt.Fprintln(w, "ID\tFLIGHT\tROUTE\tDATE\tPAX\tTOTAL\tBOOKED\tSTATUS")
		fmt.Fprintln(w, "──\t──────\t─────\t────\t───\t─────\t──────\t──────")
	}

	for _, b := range bookings {
		flight := b.FlightNumber
		if b.Flight != nil && b.Flight.FlightName != "" {
			flight += " " + b.Flight.FlightName
		}

		if withPassenger {
			assist := "no"
			if b.AssistanceRequired {
				assist = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
				b.ID, flight, route(b.From, b.To), formatDate(b.JourneyDate),
				b.PassengerName, b.Email, b.TotalPassengers, formatMoney(b.TotalAmount),
				assist, StatusLabel(b.Status),
			)
			continue
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			b.ID, flight, route(b.From, b.To), formatDate(b.JourneyDate),
			b.TotalPassengers, formatMoney(b.TotalAmount), formatDate(b.CreatedAt),
			StatusLabel(b.Status),
		)
	}

	w.Flush()
}
