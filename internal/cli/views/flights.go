package views

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/flightdeck360/flightdeck/internal/cli/client"
	"github.com/flightdeck360/flightdeck/internal/cli/router"
)

// Flights searches flights. In menu mode it asks for filters and offers to
// book one of the results.
func (v *Views) Flights(ctx context.Context, req router.Request) error {
	filter := client.FlightFilter{
		From:        req.Params[ParamFrom],
		To:          req.Params[ParamTo],
		JourneyDate: req.Params[ParamDate],
	}

	if v.interactive {
		var err error
		if filter.From, err = v.prompt.Input("From (blank for any)", filter.From); err != nil {
			return err
		}
		if filter.To, err = v.prompt.Input("To (blank for any)", filter.To); err != nil {
			return err
		}
		if filter.JourneyDate, err = v.prompt.Input("Journey date YYYY-MM-DD (blank for any)", filter.JourneyDate); err != nil {
			return err
		}
	}

	flights, err := v.api.Flights.GetAll(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load flights: %w", err)
	}

	if len(flights) == 0 {
		v.printf("No flights found matching your criteria.\n")
		return nil
	}

	v.printFlights(flights)

	if !v.interactive {
		v.printf("\nBook a flight with: flightdeck book <flight-id>\n")
		return nil
	}

	items := make([]string, 0, len(flights)+1)
	for _, f := range flights {
		items = append(items, fmt.Sprintf("%s  %s  %s  %s", f.FlightNumber, route(f.From, f.To), formatDateTime(f.JourneyDateTime), formatMoney(f.Price)))
	}
	items = append(items, "Back")

	idx, err := v.prompt.Select("Book a flight", items)
	if err != nil {
		return err
	}
	if idx == len(flights) {
		return nil
	}

	chosen := flights[idx]
	if chosen.AvailableSeats <= 0 {
		v.printf("Flight %s is fully booked.\n", chosen.FlightNumber)
		return nil
	}

	v.router.Redirect(router.Path(router.PathBookFlight, ParamFlightID, chosen.ID))
	return nil
}

func (v *Views) printFlights(flights []client.Flight) {
	w := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFLIGHT\tNAME\tROUTE\tDEPARTS\tDURATION\tPRICE\tSEATS\tSTATUS")
	fmt.Fprintln(w, "──\t──────\t────\t─────\t───────\t────────\t─────\t─────\t──────")

	for _, f := range flights {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			f.ID,
			f.FlightNumber,
			f.FlightName,
			route(f.From, f.To),
			formatDateTime(f.JourneyDateTime),
			f.Duration,
			formatMoney(f.Price),
			f.AvailableSeats,
			SeatStatus(f.AvailableSeats),
		)
	}

	w.Flush()
}
