package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/flightdeck360/flightdeck/internal/auth"
	"github.com/flightdeck360/flightdeck/internal/models"
)

const callerKey = "caller"

var (
	ErrNoToken       = errors.New("no bearer token")
	ErrInvalidToken  = errors.New("invalid token")
	ErrUnknownCaller = errors.New("token subject no longer exists")
)

// bearerToken returns the token from an "Authorization: Bearer <token>" header
func bearerToken(header string) (string, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", ErrNoToken
	}
	return strings.TrimSpace(token), nil
}

// currentCaller returns the caller stored by requireAuth
func currentCaller(c *gin.Context) (*auth.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil, false
	}
	caller, ok := v.(*auth.Caller)
	return caller, ok
}

func (s *Server) deny(c *gin.Context, status int, err error, message string) {
	s.logger.Warn().
		Err(err).
		Str("path", c.Request.URL.Path).
		Str("request_id", c.GetHeader("X-Request-ID")).
		Msg(message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// requireAuth rejects requests without a valid token for an existing user
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			s.deny(c, http.StatusUnauthorized, err, "Not authorized, no token")
			return
		}

		claims, err := s.tokens.ValidateToken(token)
		if err != nil {
			s.deny(c, http.StatusUnauthorized, errors.Join(ErrInvalidToken, err), "Invalid or expired token")
			return
		}

		var user models.User
		if err := models.FindByID(s.db, claims.UserID, &user); err != nil {
			s.deny(c, http.StatusUnauthorized, ErrUnknownCaller, "Invalid or expired token")
			return
		}

		c.Set(callerKey, auth.CallerFor(&user))
		c.Next()
	}
}

// requireAdmin must run after requireAuth
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := currentCaller(c)
		if !ok {
			s.deny(c, http.StatusUnauthorized, ErrNoToken, "Not authorized, no token")
			return
		}
		if !caller.IsAdmin() {
			s.deny(c, http.StatusForbidden, errors.New("role "+caller.Role), "Admin access required")
			return
		}
		c.Next()
	}
}
