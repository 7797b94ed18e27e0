package client

import (
	"encoding/json"
	"time"
)

// Roles
const (
	RolePassenger = "passenger"
	RoleAdmin     = "admin"
)

// Booking statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// User is the authenticated account as returned by the backend
type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	ContactNumber string `json:"contactNumber,omitempty"`
}

// UnmarshalJSON accepts document-store style "_id" as well as "id"
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var aux struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Credentials are the transient login inputs. Never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ContactNumber string `json:"contactNumber"`
	Role          string `json:"role"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Flight represents a bookable flight
type Flight struct {
	ID              string    `json:"_id"`
	FlightNumber    string    `json:"flightNumber"`
	FlightName      string    `json:"flightName"`
	From            string    `json:"from"`
	To              string    `json:"to"`
	JourneyDateTime time.Time `json:"journeyDateTime"`
	Price           float64   `json:"price"`
	Duration        string    `json:"duration"`
	AvailableSeats  int       `json:"availableSeats"`
}

// FlightInput is the body of create and update flight calls
type FlightInput struct {
	FlightNumber    string  `json:"flightNumber"`
	FlightName      string  `json:"flightName"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	JourneyDateTime string  `json:"journeyDateTime"`
	Price           float64 `json:"price"`
	Duration        string  `json:"duration"`
	AvailableSeats  int     `json:"availableSeats"`
}

// FlightFilter narrows GET /flights. Empty fields are omitted.
type FlightFilter struct {
	From        string
	To          string
	JourneyDate string // YYYY-MM-DD
}

// BookingFlight is the flight reference inside a booking. The backend may send
// either the bare id or the populated flight document.
type BookingFlight struct {
	ID         string `json:"_id"`
	FlightName string `json:"flightName"`
}

// UnmarshalJSON accepts a string id or an object
func (f *BookingFlight) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		f.ID = id
		return nil
	}
	type plain BookingFlight
	return json.Unmarshal(data, (*plain)(f))
}

// Booking represents a seat request on a flight
type Booking struct {
	ID                 string         `json:"_id"`
	Flight             *BookingFlight `json:"flight,omitempty"`
	FlightNumber       string         `json:"flightNumber"`
	From               string         `json:"from"`
	To                 string         `json:"to"`
	JourneyDate        time.Time      `json:"journeyDate"`
	PassengerName      string         `json:"passengerName"`
	Contact            string         `json:"contact"`
	Email              string         `json:"email"`
	TotalPassengers    int            `json:"totalPassengers"`
	AssistanceRequired bool           `json:"assistanceRequired"`
	TotalAmount        float64        `json:"totalAmount"`
	Status             string         `json:"status"`
	CreatedAt          time.Time      `json:"createdAt"`
}

// BookingInput is the body of a booking submission
type BookingInput struct {
	Flight             string `json:"flight"`
	PassengerName      string `json:"passengerName"`
	Contact            string `json:"contact"`
	Email              string `json:"email"`
	TotalPassengers    int    `json:"totalPassengers"`
	AssistanceRequired bool   `json:"assistanceRequired"`
}
