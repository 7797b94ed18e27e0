// Package forms validates user input before it reaches the network.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/flightdeck360/flightdeck/internal/cli/client"
)

// Limits
const (
	MinPasswordLength       = 6
	MaxPassengersPerBooking = 10
)

// Messages shown for the register form's password checks
const (
	MsgPasswordMismatch = "Passwords do not match"
	MsgPasswordTooShort = "Password must be at least 6 characters"
)

// ValidationError is a form that failed client-side checks
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their label so messages read naturally
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})

	v.RegisterValidation("journeytime", func(fl validator.FieldLevel) bool {
		_, err := ParseJourneyDateTime(fl.Field().String())
		return err == nil
	})

	return v
}

// check runs struct validation and returns the first failure as a ValidationError
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate form: %w", err)
	}

	fe := fieldErrs[0]
	return &ValidationError{Field: fe.StructField(), Message: message(fe)}
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email address"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "journeytime":
		return label + " must look like 2025-12-31T14:30"
	}
	return fmt.Sprintf("%s is invalid", label)
}

// journeyLayouts are the accepted encodings of a departure time
var journeyLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"}

// ParseJourneyDateTime parses a departure time as typed by a user
func ParseJourneyDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range journeyLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid journey date and time %q", value)
}

// LoginForm is the login view's input
type LoginForm struct {
	Email    string `label:"Email" validate:"required,email"`
	Password string `label:"Password" validate:"required"`
}

// Validate checks the form
func (f *LoginForm) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	return check(f)
}

// RegisterForm is the registration view's input
type RegisterForm struct {
	Name            string `label:"Full name" validate:"required"`
	Email           string `label:"Email" validate:"required,email"`
	Password        string `label:"Password"`
	ConfirmPassword string `label:"Confirm password"`
	ContactNumber   string `label:"Contact number" validate:"required"`
	Admin           bool   `label:"Admin"`
}

// Validate checks the password pair first, then the remaining fields
func (f *RegisterForm) Validate() error {
	if f.Password != f.ConfirmPassword {
		return &ValidationError{Field: "ConfirmPassword", Message: MsgPasswordMismatch}
	}
	if len(f.Password) < MinPasswordLength {
		return &ValidationError{Field: "Password", Message: MsgPasswordTooShort}
	}

	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.ContactNumber = strings.TrimSpace(f.ContactNumber)
	return check(f)
}

// Role returns the role requested by the form
func (f *RegisterForm) Role() string {
	if f.Admin {
		return client.RoleAdmin
	}
	return client.RolePassenger
}

// BookingForm is the book-flight view's input
type BookingForm struct {
	PassengerName      string `label:"Passenger name" validate:"required"`
	Contact            string `label:"Contact number" validate:"required"`
	Email              string `label:"Email" validate:"required,email"`
	TotalPassengers    int    `label:"Number of passengers" validate:"gte=1"`
	AssistanceRequired bool   `label:"Assistance required"`
}

// NewBookingForm prefills a booking from the logged in user
func NewBookingForm(user *client.User) BookingForm {
	f := BookingForm{TotalPassengers: 1}
	if user != nil {
		f.PassengerName = user.Name
		f.Contact = user.ContactNumber
		f.Email = user.Email
	}
	return f
}

// MaxPassengers is the most passengers one booking may carry on flight
func MaxPassengers(flight *client.Flight) int {
	return min(flight.AvailableSeats, MaxPassengersPerBooking)
}

// Validate checks the form against the flight's remaining seats
func (f *BookingForm) Validate(flight *client.Flight) error {
	f.PassengerName = strings.TrimSpace(f.PassengerName)
	f.Contact = strings.TrimSpace(f.Contact)
	f.Email = strings.TrimSpace(f.Email)
	if err := check(f); err != nil {
		return err
	}

	if limit := MaxPassengers(flight); f.TotalPassengers > limit {
		if limit <= 0 {
			return &ValidationError{Field: "TotalPassengers", Message: "This flight is fully booked"}
		}
		return &ValidationError{
			Field:   "TotalPassengers",
			Message: fmt.Sprintf("Number of passengers must be between 1 and %d", limit),
		}
	}
	return nil
}

// Input converts the form into the booking request for flight
func (f *BookingForm) Input(flight *client.Flight) client.BookingInput {
	return client.BookingInput{
		Flight:             flight.ID,
		PassengerName:      f.PassengerName,
		Contact:            f.Contact,
		Email:              f.Email,
		TotalPassengers:    f.TotalPassengers,
		AssistanceRequired: f.AssistanceRequired,
	}
}

// Total is the amount a booking of f on flight costs
func (f *BookingForm) Total(flight *client.Flight) float64 {
	return flight.Price * float64(f.TotalPassengers)
}

// FlightForm is the admin create and edit flight input
type FlightForm struct {
	FlightNumber    string  `label:"Flight number" validate:"required"`
	FlightName      string  `label:"Flight name" validate:"required"`
	From            string  `label:"From" validate:"required"`
	To              string  `label:"To" validate:"required"`
	JourneyDateTime string  `label:"Journey date and time" validate:"required,journeytime"`
	Price           float64 `label:"Price" validate:"gt=0"`
	Duration        string  `label:"Duration" validate:"required"`
	AvailableSeats  int     `label:"Available seats" validate:"gte=0"`
}

// DefaultAvailableSeats prefills a new flight's capacity
const DefaultAvailableSeats = 180

// FlightFormFrom prefills the form for editing flight
func FlightFormFrom(flight *client.Flight) FlightForm {
	return FlightForm{
		FlightNumber:    flight.FlightNumber,
		FlightName:      flight.FlightName,
		From:            flight.From,
		To:              flight.To,
		JourneyDateTime: flight.JourneyDateTime.Format("2006-01-02T15:04"),
		Price:           flight.Price,
		Duration:        flight.Duration,
		AvailableSeats:  flight.AvailableSeats,
	}
}

// Validate checks the form
func (f *FlightForm) Validate() error {
	f.FlightNumber = strings.ToUpper(strings.TrimSpace(f.FlightNumber))
	f.FlightName = strings.TrimSpace(f.FlightName)
	f.From = strings.TrimSpace(f.From)
	f.To = strings.TrimSpace(f.To)
	if err := check(f); err != nil {
		return err
	}
	if strings.EqualFold(f.From, f.To) {
		return &ValidationError{Field: "To", Message: "Origin and destination must differ"}
	}
	return nil
}

// Input converts the form into the flight request body
func (f *FlightForm) Input() client.FlightInput {
	return client.FlightInput{
		FlightNumber:    f.FlightNumber,
		FlightName:      f.FlightName,
		From:            f.From,
		To:              f.To,
		JourneyDateTime: strings.TrimSpace(f.JourneyDateTime),
		Price:           f.Price,
		Duration:        f.Duration,
		AvailableSeats:  f.AvailableSeats,
	}
}

// StatusForm is the admin booking status change
type StatusForm struct {
	Status string `label:"Status" validate:"required,oneof=pending approved rejected"`
}

// Validate checks the form
func (f *StatusForm) Validate() error {
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	return check(f)
}
