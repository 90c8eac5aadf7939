package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dolla-nz/centsync/internal/app"
	"github.com/dolla-nz/centsync/internal/categories"
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

	names, groups, err := categories.Refresh(ctx, a.API, a.Props)
	if err != nil {
		log.Fatal().Err(err).Msg("Category refresh failed")
	}

	fmt.Printf("Category vocabularies refreshed: %d categories, %d groups.\n", len(names), len(groups))
}
