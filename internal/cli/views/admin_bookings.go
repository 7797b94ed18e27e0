package views

import (
	"context"
	"fmt"

	"github.com/flightdeck360/flightdeck/internal/cli/client"
	"github.com/flightdeck360/flightdeck/internal/cli/forms"
	"github.com/flightdeck360/flightdeck/internal/cli/router"
)

// BookingStats counts bookings by status
type BookingStats struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
	Revenue  float64
}

// SummarizeBookings counts bookings by status. Revenue only includes approved bookings.
func SummarizeBookings(bookings []client.Booking) BookingStats {
	var s BookingStats
	for _, b := range bookings {
		s.Total++
		switch b.Status {
		case client.StatusPending:
			s.Pending++
		case client.StatusApproved:
			s.Approved++
			s.Revenue += b.TotalAmount
		case client.StatusRejected:
			s.Rejected++
		}
	}
	return s
}

var statusChoices = []string{client.StatusApproved, client.StatusRejected, client.StatusPending}

// AdminBookings lists every booking and changes booking statuses
func (v *Views) AdminBookings(ctx context.Context, req router.Request) error {
	if req.Params[ParamAction] == ActionSetStatus {
		return v.setBookingStatus(ctx, req.Params[ParamID], req.Params[ParamStatus])
	}

	for {
		// The session can be lost while this screen is open
		if !v.session.State().IsAdmin() {
			return nil
		}

		bookings, err := v.api.Bookings.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to load bookings: %w", err)
		}

		stats := SummarizeBookings(bookings)
		v.printf("Bookings: %d   Pending: %d   Approved: %d   Rejected: %d   Revenue: %s\n\n",
			stats.Total, stats.Pending, stats.Approved, stats.Rejected, formatMoney(stats.Revenue))

		if len(bookings) == 0 {
			v.printf("No bookings yet.\n")
			return nil
		}
		v.printBookings(bookings, true)

		if !v.interactive {
			return nil
		}

		items := make([]string, 0, len(bookings)+1)
		for _, b := range bookings {
			items = append(items, fmt.Sprintf("%s  %s  %s  %s", b.FlightNumber, b.PassengerName, route(b.From, b.To), StatusLabel(b.Status)))
		}
		items = append(items, "Back")

		idx, err := v.prompt.Select("Update booking", items)
		if err != nil {
			return err
		}
		if idx == len(bookings) {
			return nil
		}

		labels := make([]string, len(statusChoices))
		for i, s := range statusChoices {
			labels[i] = StatusLabel(s)
		}
		choice, err := v.prompt.Select("New status", labels)
		if err != nil {
			return err
		}

		if err := v.setBookingStatus(ctx, bookings[idx].ID, statusChoices[choice]); err != nil {
			v.printf("Error: %v\n\n", err)
		}
	}
}

func (v *Views) setBookingStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return fmt.Errorf("booking id is required")
	}

	form := forms.StatusForm{Status: status}
	if err := form.Validate(); err != nil {
		return err
	}

	booking, err := v.api.Bookings.UpdateStatus(ctx, id, form.Status)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	v.success("Booking %s successfully!", booking.Status)
	return nil
}
