package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/flightdeck360/flightdeck/internal/cli/client"
	"github.com/flightdeck360/flightdeck/internal/cli/forms"
	"github.com/flightdeck360/flightdeck/internal/cli/router"
)

// FlightStats summarizes the admin flight list
type FlightStats struct {
	Total     int
	Available int
	Limited   int
	Full      int
	Seats     int
}

// SummarizeFlights counts flights by seat status
func SummarizeFlights(flights []client.Flight) FlightStats {
	var s FlightStats
	for _, f := range flights {
		s.Total++
		s.Seats += f.AvailableSeats
		switch SeatStatus(f.AvailableSeats) {
		case "Available":
			s.Available++
		case "Limited":
			s.Limited++
		default:
			s.Full++
		}
	}
	return s
}

// FilterFlights keeps flights whose number, name, origin or destination
// contains query, ignoring case
func FilterFlights(flights []client.Flight, query string) []client.Flight {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return flights
	}

	var out []client.Flight
	for _, f := range flights {
		for _, field := range []string{f.FlightNumber, f.FlightName, f.From, f.To} {
			if strings.Contains(strings.ToLower(field), query) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// AdminFlights lists flights and runs create, edit and delete actions
func (v *Views) AdminFlights(ctx context.Context, req router.Request) error {
	action := req.Params[ParamAction]
	if action != "" && action != ActionList {
		return v.runFlightAction(ctx, req.Params, action, req.Params[ParamID])
	}

	for {
		// The session can be lost while this screen is open
		if !v.session.State().IsAdmin() {
			return nil
		}

		flights, err := v.api.Flights.GetAll(ctx, client.FlightFilter{})
		if err != nil {
			return fmt.Errorf("failed to load flights: %w", err)
		}

		stats := SummarizeFlights(flights)
		v.printf("Flights: %d   Available: %d   Limited: %d   Full: %d   Open seats: %d\n\n",
			stats.Total, stats.Available, stats.Limited, stats.Full, stats.Seats)

		shown := FilterFlights(flights, req.Params[ParamQuery])
		if len(shown) == 0 {
			v.printf("No flights found.\n")
		} else {
			v.printFlights(shown)
		}

		if !v.interactive {
			return nil
		}

		idx, err := v.prompt.Select("Action", []string{"Add flight", "Edit flight", "Delete flight", "Back"})
		if err != nil {
			return err
		}

		var id string
		switch idx {
		case 0:
			action = ActionCreate
		case 1, 2:
			if len(shown) == 0 {
				continue
			}
			picked, err := v.pickFlight(shown)
			if err != nil {
				return err
			}
			if picked < 0 {
				continue
			}
			id = shown[picked].ID
			action = ActionEdit
			if idx == 2 {
				action = ActionDelete
			}
		default:
			return nil
		}

		if err := v.runFlightAction(ctx, req.Params, action, id); err != nil {
			// Stay on the screen; the error is reported and the list reloads
			v.printf("Error: %v\n\n", err)
		}
	}
}

func (v *Views) pickFlight(flights []client.Flight) (int, error) {
	items := make([]string, 0, len(flights)+1)
	for _, f := range flights {
		items = append(items, fmt.Sprintf("%s  %s  %s", f.FlightNumber, route(f.From, f.To), formatDateTime(f.JourneyDateTime)))
	}
	items = append(items, "Cancel")

	idx, err := v.prompt.Select("Flight", items)
	if err != nil {
		return -1, err
	}
	if idx == len(flights) {
		return -1, nil
	}
	return idx, nil
}

func (v *Views) runFlightAction(ctx context.Context, params router.Params, action, id string) error {
	switch action {
	case ActionCreate:
		form := forms.FlightForm{AvailableSeats: forms.DefaultAvailableSeats}
		if err := v.fillFlightForm(params, &form); err != nil {
			return err
		}
		flight, err := v.api.Flights.Create(ctx, form.Input())
		if err != nil {
			return err
		}
		v.success("Flight created successfully!")
		v.printf("  %s (%s)\n", flight.FlightNumber, flight.ID)
		return nil

	case ActionEdit:
		current, err := v.api.Flights.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load flight: %w", err)
		}
		form := forms.FlightFormFrom(current)
		if err := v.fillFlightForm(params, &form); err != nil {
			return err
		}
		if _, err := v.api.Flights.Update(ctx, id, form.Input()); err != nil {
			return err
		}
		v.success("Flight updated successfully!")
		return nil

	case ActionDelete:
		if id == "" {
			return fmt.Errorf("flight id is required")
		}
		ok, err := v.confirm(params, fmt.Sprintf("Delete flight %s", id))
		if err != nil {
			return err
		}
		if !ok {
			v.printf("Delete cancelled.\n")
			return nil
		}
		if err := v.api.Flights.Delete(ctx, id); err != nil {
			return err
		}
		v.success("Flight deleted successfully!")
		return nil
	}

	return fmt.Errorf("unknown flight action %q", action)
}

// fillFlightForm reads each field from params or prompts with the current value
func (v *Views) fillFlightForm(params router.Params, form *forms.FlightForm) error {
	var err error
	if form.FlightNumber, err = v.ask(params, "flightNumber", "Flight number", form.FlightNumber); err != nil {
		return err
	}
	if form.FlightName, err = v.ask(params, "flightName", "Flight name", form.FlightName); err != nil {
		return err
	}
	if form.From, err = v.ask(params, ParamFrom, "From", form.From); err != nil {
		return err
	}
	if form.To, err = v.ask(params, ParamTo, "To", form.To); err != nil {
		return err
	}
	if form.JourneyDateTime, err = v.ask(params, "journeyDateTime", "Journey date and time (YYYY-MM-DDTHH:MM)", form.JourneyDateTime); err != nil {
		return err
	}

	price := ""
	if form.Price > 0 {
		price = strconv.FormatFloat(form.Price, 'f', -1, 64)
	}
	if price, err = v.ask(params, "price", "Price", price); err != nil {
		return err
	}
	if form.Price, err = strconv.ParseFloat(strings.TrimSpace(price), 64); err != nil {
		return &forms.ValidationError{Field: "Price", Message: "Price must be a number"}
	}

	if form.Duration, err = v.ask(params, "duration", "Duration", form.Duration); err != nil {
		return err
	}

	seats, err := v.ask(params, "availableSeats", "Available seats", strconv.Itoa(form.AvailableSeats))
	if err != nil {
		return err
	}
	if form.AvailableSeats, err = strconv.Atoi(strings.TrimSpace(seats)); err != nil {
		return &forms.ValidationError{Field: "AvailableSeats", Message: "Available seats must be a whole number"}
	}

	return form.Validate()
}
