// Package server is a development stand-in for the flight booking REST API.
// It implements the same contract the CLI consumes so the client can be run
// and tested end to end without the hosted backend.
package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/flightdeck360/flightdeck/internal/auth"
	"github.com/flightdeck360/flightdeck/internal/config"
	"github.com/flightdeck360/flightdeck/internal/models"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	db     *gorm.DB
	config *config.ServerConfig
	logger zerolog.Logger
	tokens *auth.TokenManager
}

// New creates a new server instance backed by the configured SQLite database
func New(cfg *config.ServerConfig, zlog zerolog.Logger) (*Server, error) {
	db, err := OpenDatabase(cfg.DatabaseURL, zlog)
	if err != nil {
		return nil, err
	}
	return NewWithDB(cfg, db, zlog)
}

// NewWithDB creates a server on an already opened database
func NewWithDB(cfg *config.ServerConfig, db *gorm.DB, zlog zerolog.Logger) (*Server, error) {
	// Run database migrations
	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	secret := cfg.JWTSecret
	if secret == "" {
		// Tokens will not survive a restart
		generated, err := randomSecret()
		if err != nil {
			return nil, err
		}
		secret = generated
		zlog.Warn().Msg("JWT_SECRET not set - using a random secret for this process")
	}

	server := &Server{
		db:     db,
		config: cfg,
		logger: zlog,
		tokens: auth.NewTokenManager(secret, cfg.TokenTTL),
	}

	// Setup router
	server.setupRouter()

	return server, nil
}

func randomSecret() (string, error) {
	// 64 hex characters = 32 bytes of randomness
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// gormLog forwards gorm's slow query and error lines to zerolog
type gormLog struct {
	log zerolog.Logger
}

func (g gormLog) Printf(format string, args ...interface{}) {
	g.log.Warn().Str("component", "gorm").Msgf(format, args...)
}

// OpenDatabase opens the SQLite file at path. Bookings decrement seats inside
// a transaction, so writers queue on the busy timeout instead of failing.
func OpenDatabase(path string, zlog zerolog.Logger) (*gorm.DB, error) {
	const busyTimeoutMS = 5000

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.New(gormLog{log: zlog}, logger.Config{
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			SlowThreshold:             200 * time.Millisecond,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// WAL mode must be set first for optimal concurrency
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeoutMS),
		"PRAGMA foreign_keys=1",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			zlog.Warn().Str("pragma", pragma).Err(err).Msg("Failed to apply pragma")
		}
	}

	return db, nil
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	// Add middleware
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	// CORS for the browser front end
	if len(s.config.AllowOrigins) > 0 {
		s.router.Use(cors.New(cors.Config{
			AllowOrigins:     s.config.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api")

	// Public endpoints
	api.POST("/auth/login", s.login)
	api.POST("/auth/register", s.register)
	api.GET("/flights", s.listFlights)
	api.GET("/flights/:id", s.getFlight)

	// Authenticated endpoints (JWT required)
	authed := api.Group("")
	authed.Use(s.requireAuth())
	{
		authed.GET("/auth/me", s.getCurrentUser)

		authed.POST("/bookings", s.createBooking)
		authed.GET("/bookings/my-bookings", s.listMyBookings)

		// Administration
		admin := authed.Group("")
		admin.Use(s.requireAdmin())
		{
			admin.POST("/flights", s.createFlight)
			admin.PUT("/flights/:id", s.updateFlight)
			admin.DELETE("/flights/:id", s.deleteFlight)

			admin.GET("/bookings", s.listBookings)
			admin.PATCH("/bookings/:id/status", s.updateBookingStatus)
		}
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Str("request_id", c.GetHeader("X-Request-ID")).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "flightdeck-api",
	})
}

// Handler returns the HTTP handler, used by tests to mount the API in httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API until ctx is cancelled, then drains in-flight requests
// and closes the database.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.config.Addr).Msg("Listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	s.logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	// Flush the WAL before exit
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Error closing database")
		}
	}
	return nil
}
