package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/flightdeck360/flightdeck/internal/auth"
	"github.com/flightdeck360/flightdeck/internal/models"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a self-service registration request
type RegisterRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	ContactNumber string `json:"contactNumber" binding:"required"`
	Role          string `json:"role" binding:"omitempty,oneof=passenger admin"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	Token string      `json:"token"`
	User  *UserDetail `json:"user"`
}

// UserDetail represents user information returned in responses
type UserDetail struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	ContactNumber string    `json:"contactNumber"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newUserDetail(user *models.User) *UserDetail {
	return &UserDetail{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		ContactNumber: user.ContactNumber,
		CreatedAt:     user.CreatedAt,
	}
}

func (s *Server) issueToken(c *gin.Context, user *models.User, status int) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(status, AuthResponse{
		Token: token,
		User:  newUserDetail(user),
	})
}

func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if err := auth.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User logged in")

	s.issueToken(c, &user, http.StatusOK)
}

func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to count users")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists with this email"})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RolePassenger
	}

	user := &models.User{
		Email:         email,
		PasswordHash:  passwordHash,
		Name:          strings.TrimSpace(req.Name),
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		Role:          role,
	}

	if err := s.db.Create(user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("User registered")

	s.issueToken(c, user, http.StatusCreated)
}

func (s *Server) getCurrentUser(c *gin.Context) {
	caller, exists := currentCaller(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	if err := models.FindByID(s.db, caller.UserID, &user); err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID).Msg("Failed to find user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, newUserDetail(&user))
}
