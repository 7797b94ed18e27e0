package views

import (
	"context"
	"fmt"
	"strconv"

	"github.com/flightdeck360/flightdeck/internal/cli/forms"
	"github.com/flightdeck360/flightdeck/internal/cli/router"
)

// BookFlight shows a flight and submits a booking for it
func (v *Views) BookFlight(ctx context.Context, req router.Request) error {
	flightID := req.Params[ParamFlightID]

	flight, err := v.api.Flights.GetByID(ctx, flightID)
	if err != nil {
		return fmt.Errorf("failed to load flight: %w", err)
	}

	v.printf("%s  %s\n", flight.FlightNumber, flight.FlightName)
	v.printf("  Route:    %s\n", route(flight.From, flight.To))
	v.printf("  Departs:  %s\n", formatDateTime(flight.JourneyDateTime))
	v.printf("  Duration: %s\n", flight.Duration)
	v.printf("  Price:    %s per passenger\n", formatMoney(flight.Price))
	v.printf("  Seats:    %d (%s)\n\n", flight.AvailableSeats, SeatStatus(flight.AvailableSeats))

	limit := forms.MaxPassengers(flight)
	if limit <= 0 {
		return fmt.Errorf("flight %s is fully booked", flight.FlightNumber)
	}

	form := forms.NewBookingForm(req.Session.User)
	if form.PassengerName, err = v.ask(req.Params, ParamName, "Passenger name", form.PassengerName); err != nil {
		return err
	}
	if form.Contact, err = v.ask(req.Params, ParamContact, "Contact number", form.Contact); err != nil {
		return err
	}
	if form.Email, err = v.ask(req.Params, ParamEmail, "Email", form.Email); err != nil {
		return err
	}

	passengers, err := v.ask(req.Params, ParamPassengers, fmt.Sprintf("Passengers (1-%d)", limit), "1")
	if err != nil {
		return err
	}
	if form.TotalPassengers, err = strconv.Atoi(passengers); err != nil {
		return &forms.ValidationError{Field: "TotalPassengers", Message: fmt.Sprintf("Number of passengers must be between 1 and %d", limit)}
	}

	if assistance, ok := req.Params[ParamAssistance]; ok {
		form.AssistanceRequired, _ = strconv.ParseBool(assistance)
	} else if v.interactive {
		if form.AssistanceRequired, err = v.prompt.Confirm("Special assistance required"); err != nil {
			return err
		}
	}

	if err := form.Validate(flight); err != nil {
		return err
	}

	v.printf("Total: %s for %d passenger(s)\n", formatMoney(form.Total(flight)), form.TotalPassengers)
	if v.interactive {
		ok, err := v.confirm(req.Params, "Confirm booking")
		if err != nil {
			return err
		}
		if !ok {
			v.printf("Booking cancelled.\n")
			return nil
		}
	}

	booking, err := v.api.Bookings.Create(ctx, form.Input(flight))
	if err != nil {
		return fmt.Errorf("booking failed: %w", err)
	}

	v.success("Booking submitted successfully!")
	v.printf("  Booking: %s (%s)\n", booking.ID, StatusLabel(booking.Status))

	v.router.Redirect(router.PathMyBookings)
	return nil
}
