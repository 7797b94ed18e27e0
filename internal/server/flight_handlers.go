package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/flightdeck360/flightdeck/internal/models"
)

const defaultAvailableSeats = 180

// journeyLayouts are the accepted encodings of journeyDateTime. The second is
// what an HTML datetime-local input submits.
var journeyLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// FlightRequest is the body of create and update flight calls
type FlightRequest struct {
	FlightNumber    string  `json:"flightNumber" binding:"required"`
	FlightName      string  `json:"flightName" binding:"required"`
	From            string  `json:"from" binding:"required"`
	To              string  `json:"to" binding:"required"`
	JourneyDateTime string  `json:"journeyDateTime" binding:"required"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	Duration        string  `json:"duration"`
	AvailableSeats  *int    `json:"availableSeats" binding:"omitempty,min=0"`
}

func parseJourneyDateTime(value string) (time.Time, error) {
	for _, layout := range journeyLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid journeyDateTime %q", value)
}

func (r *FlightRequest) apply(flight *models.Flight) error {
	journey, err := parseJourneyDateTime(r.JourneyDateTime)
	if err != nil {
		return err
	}

	if strings.EqualFold(strings.TrimSpace(r.From), strings.TrimSpace(r.To)) {
		return errors.New("Origin and destination must differ")
	}

	flight.FlightNumber = strings.ToUpper(strings.TrimSpace(r.FlightNumber))
	flight.FlightName = strings.TrimSpace(r.FlightName)
	flight.From = strings.TrimSpace(r.From)
	flight.To = strings.TrimSpace(r.To)
	flight.JourneyDateTime = journey
	flight.Price = r.Price
	flight.Duration = strings.TrimSpace(r.Duration)
	if r.AvailableSeats != nil {
		flight.AvailableSeats = *r.AvailableSeats
	}
	return nil
}

func (s *Server) listFlights(c *gin.Context) {
	query := s.db.Model(&models.Flight{})

	if from := strings.TrimSpace(c.Query("from")); from != "" {
		query = query.Where("LOWER(origin) LIKE ?", "%"+strings.ToLower(from)+"%")
	}
	if to := strings.TrimSpace(c.Query("to")); to != "" {
		query = query.Where("LOWER(destination) LIKE ?", "%"+strings.ToLower(to)+"%")
	}
	if day := strings.TrimSpace(c.Query("journeyDate")); day != "" {
		start, err := time.Parse("2006-01-02", day)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "journeyDate must be YYYY-MM-DD"})
			return
		}
		query = query.Where("journey_date_time >= ? AND journey_date_time < ?", start, start.Add(24*time.Hour))
	}

	var flights []models.Flight
	if err := query.Order("journey_date_time ASC").Find(&flights).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list flights")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, flights)
}

func (s *Server) getFlight(c *gin.Context) {
	var flight models.Flight
	if err := models.FindByID(s.db, c.Param("id"), &flight); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Flight not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to get flight")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, flight)
}

func (s *Server) flightNumberTaken(number, exceptID string) (bool, error) {
	var count int64
	query := s.db.Model(&models.Flight{}).Where("flight_number = ?", number)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Server) createFlight(c *gin.Context) {
	var req FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := models.Flight{AvailableSeats: defaultAvailableSeats}
	if err := req.apply(&flight); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	taken, err := s.flightNumberTaken(flight.FlightNumber, "")
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to check flight number")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Flight number already exists"})
		return
	}

	if err := s.db.Create(&flight).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create flight")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create flight"})
		return
	}

	s.logger.Info().Str("flight_id", flight.ID).Str("flight_number", flight.FlightNumber).Msg("Flight created")

	c.JSON(http.StatusCreated, flight)
}

func (s *Server) updateFlight(c *gin.Context) {
	var req FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var flight models.Flight
	if err := models.FindByID(s.db, c.Param("id"), &flight); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Flight not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to get flight")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if err := req.apply(&flight); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	taken, err := s.flightNumberTaken(flight.FlightNumber, flight.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to check flight number")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Flight number already exists"})
		return
	}

	if err := s.db.Save(&flight).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update flight")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update flight"})
		return
	}

	c.JSON(http.StatusOK, flight)
}

func (s *Server) deleteFlight(c *gin.Context) {
	flightID := c.Param("id")

	var flight models.Flight
	if err := models.FindByID(s.db, flightID, &flight); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Flight not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to get flight")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	var bookings int64
	if err := s.db.Model(&models.Booking{}).Where("flight_id = ?", flightID).Count(&bookings).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to count bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if bookings > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Cannot delete a flight that has bookings"})
		return
	}

	if err := s.db.Delete(&flight).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete flight")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete flight"})
		return
	}

	caller, _ := currentCaller(c)
	s.logger.Info().
		Str("flight_id", flightID).
		Str("deleted_by", caller.UserID).
		Msg("Flight deleted")

	c.JSON(http.StatusOK, gin.H{"message": "Flight deleted successfully"})
}
