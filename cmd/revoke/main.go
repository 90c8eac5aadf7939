package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dolla-nz/centsync/internal/app"
	"github.com/dolla-nz/centsync/internal/connect"
	"github.com/dolla-nz/centsync/internal/logger"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	a, err := app.Bootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	connected, err := connect.Revoke(ctx, a.API, a.Props)
	if err != nil {
		log.Fatal().Err(err).Msg("Revocation failed")
	}
	if !connected {
		fmt.Println("No user connected; nothing to revoke.")
		return
	}

	fmt.Println("Connection revoked.")
}
