package models

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Roles
const (
	RolePassenger = "passenger"
	RoleAdmin     = "admin"
)

// Booking statuses
const (
	BookingPending  = "pending"
	BookingApproved = "approved"
	BookingRejected = "rejected"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// User represents a registered passenger or administrator
type User struct {
	BaseModel
	Email         string    `json:"email" gorm:"unique;not null"`
	PasswordHash  string    `json:"-" gorm:"not null"`
	Name          string    `json:"name" gorm:"not null"`
	ContactNumber string    `json:"contactNumber"`
	Role          string    `json:"role" gorm:"not null;default:passenger"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Flight represents a scheduled flight that passengers can book
type Flight struct {
	BaseModel
	FlightNumber    string    `json:"flightNumber" gorm:"unique;not null"`
	FlightName      string    `json:"flightName" gorm:"not null"`
	From            string    `json:"from" gorm:"column:origin;not null;index"`
	To              string    `json:"to" gorm:"column:destination;not null;index"`
	JourneyDateTime time.Time `json:"journeyDateTime" gorm:"not null;index"`
	Price           float64   `json:"price" gorm:"not null"`
	Duration        string    `json:"duration"`
	AvailableSeats  int       `json:"availableSeats" gorm:"not null;default:180"`
	UpdatedAt       time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Booking represents a seat request on a flight. Route fields are copied from
// the flight at booking time so history survives later flight edits.
type Booking struct {
	BaseModel
	FlightID           string    `json:"-" gorm:"type:varchar(26);not null;index"`
	Flight             *Flight   `json:"flight,omitempty" gorm:"foreignKey:FlightID"`
	UserID             string    `json:"user" gorm:"type:varchar(26);not null;index"`
	FlightNumber       string    `json:"flightNumber"`
	From               string    `json:"from" gorm:"column:origin"`
	To                 string    `json:"to" gorm:"column:destination"`
	JourneyDate        time.Time `json:"journeyDate"`
	PassengerName      string    `json:"passengerName" gorm:"not null"`
	Contact            string    `json:"contact" gorm:"not null"`
	Email              string    `json:"email" gorm:"not null"`
	TotalPassengers    int       `json:"totalPassengers" gorm:"not null"`
	AssistanceRequired bool      `json:"assistanceRequired" gorm:"not null;default:false"`
	TotalAmount        float64   `json:"totalAmount" gorm:"not null"`
	Status             string    `json:"status" gorm:"not null;default:pending;index"`
	UpdatedAt          time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// HoldsSeats reports whether the booking currently consumes flight capacity
func (b *Booking) HoldsSeats() bool {
	return b.Status != BookingRejected
}

// ValidBookingStatus reports whether status is one of the known booking statuses
func ValidBookingStatus(status string) bool {
	switch strings.ToLower(status) {
	case BookingPending, BookingApproved, BookingRejected:
		return true
	}
	return false
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	// Collect all models
	models := []interface{}{
		&User{}, &Flight{}, &Booking{},
	}

	return db.AutoMigrate(models...)
}

// FindByID safely finds a record by string ID
func FindByID[T any](db *gorm.DB, id string, model *T) error {
	return db.Where("id = ?", id).First(model).Error
}

// FindByIDWithPreload finds a record by ID with preloading
func FindByIDWithPreload[T any](db *gorm.DB, id string, model *T, preloads ...string) error {
	query := db
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	return query.Where("id = ?", id).First(model).Error
}
