package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/flightdeck360/flightdeck/internal/models"
)

// maxPassengersPerBooking matches the cap the booking form offers
const maxPassengersPerBooking = 10

var (
	errFlightNotFound  = errors.New("flight not found")
	errBookingNotFound = errors.New("booking not found")
)

// seatsError reports a booking that asks for more seats than remain
type seatsError struct {
	available int
}

func (e *seatsError) Error() string {
	return fmt.Sprintf("Only %d seats available", e.available)
}

// CreateBookingRequest is the body of a booking submission
type CreateBookingRequest struct {
	Flight             string `json:"flight" binding:"required"`
	PassengerName      string `json:"passengerName" binding:"required"`
	Contact            string `json:"contact" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	TotalPassengers    int    `json:"totalPassengers" binding:"required,min=1"`
	AssistanceRequired bool   `json:"assistanceRequired"`
}

// UpdateBookingStatusRequest is the body of an admin status change
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) createBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.TotalPassengers > maxPassengersPerBooking {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("At most %d passengers per booking", maxPassengersPerBooking)})
		return
	}

	caller, _ := currentCaller(c)

	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var flight models.Flight
		if err := models.FindByID(tx, req.Flight, &flight); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errFlightNotFound
			}
			return err
		}

		if flight.AvailableSeats < req.TotalPassengers {
			return &seatsError{available: flight.AvailableSeats}
		}

		flight.AvailableSeats -= req.TotalPassengers
		if err := tx.Model(&flight).Update("available_seats", flight.AvailableSeats).Error; err != nil {
			return err
		}

		booking = models.Booking{
			FlightID:           flight.ID,
			UserID:             caller.UserID,
			FlightNumber:       flight.FlightNumber,
			From:               flight.From,
			To:                 flight.To,
			JourneyDate:        flight.JourneyDateTime,
			PassengerName:      strings.TrimSpace(req.PassengerName),
			Contact:            strings.TrimSpace(req.Contact),
			Email:              strings.TrimSpace(req.Email),
			TotalPassengers:    req.TotalPassengers,
			AssistanceRequired: req.AssistanceRequired,
			TotalAmount:        flight.Price * float64(req.TotalPassengers),
			Status:             models.BookingPending,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		booking.Flight = &flight
		return nil
	})

	if err != nil {
		var seatsErr *seatsError
		switch {
		case errors.Is(err, errFlightNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Flight not found"})
		case errors.As(err, &seatsErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": seatsErr.Error()})
		default:
			s.logger.Error().Err(err).Msg("Failed to create booking")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create booking"})
		}
		return
	}

	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("flight_id", booking.FlightID).
		Int("passengers", booking.TotalPassengers).
		Msg("Booking created")

	c.JSON(http.StatusCreated, booking)
}

func (s *Server) listMyBookings(c *gin.Context) {
	caller, _ := currentCaller(c)

	var bookings []models.Booking
	if err := s.db.Preload("Flight").
		Where("user_id = ?", caller.UserID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (s *Server) listBookings(c *gin.Context) {
	var bookings []models.Booking
	if err := s.db.Preload("Flight").Order("created_at DESC").Find(&bookings).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (s *Server) updateBookingStatus(c *gin.Context) {
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	if !models.ValidBookingStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status must be one of: pending, approved, rejected"})
		return
	}

	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := models.FindByIDWithPreload(tx, c.Param("id"), &booking, "Flight"); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errBookingNotFound
			}
			return err
		}

		held := booking.HoldsSeats()
		booking.Status = status
		holds := booking.HoldsSeats()

		// Rejection releases seats; reinstating a rejected booking takes them back
		if booking.Flight != nil && held != holds {
			seats := booking.Flight.AvailableSeats
			if holds {
				if seats < booking.TotalPassengers {
					return &seatsError{available: seats}
				}
				seats -= booking.TotalPassengers
			} else {
				seats += booking.TotalPassengers
			}
			if err := tx.Model(booking.Flight).Update("available_seats", seats).Error; err != nil {
				return err
			}
			booking.Flight.AvailableSeats = seats
		}

		return tx.Model(&booking).Update("status", status).Error
	})

	if err != nil {
		var seatsErr *seatsError
		switch {
		case errors.Is(err, errBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		case errors.As(err, &seatsErr):
			c.JSON(http.StatusConflict, gin.H{"message": seatsErr.Error()})
		default:
			s.logger.Error().Err(err).Msg("Failed to update booking status")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update booking status"})
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}
