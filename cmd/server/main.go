package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/flightdeck360/flightdeck/internal/config"
	"github.com/flightdeck360/flightdeck/internal/logger"
	"github.com/flightdeck360/flightdeck/internal/server"
)

var version = "dev" // Will be set during build with -ldflags

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("version", version).Str("database", cfg.DatabaseURL).Msg("Starting FlightDeck development API")
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Server stopped")
		os.Exit(1)
	}
}
