package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dolla-nz/centsync/internal/app"
	"github.com/dolla-nz/centsync/internal/logger"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	token := flag.String("token", "", "Store this user token before syncing (optional)")
	flag.Parse()

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	a, err := app.Bootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	if *token != "" {
		if err := a.Props.SetUserToken(*token); err != nil {
			log.Fatal().Err(err).Msg("Failed to store user token")
		}
		log.Info().Msg("User token stored")
	}

	res, err := a.Orchestrator.RunCycle(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Sync cycle failed")
	}
	if res.Skipped {
		log.Warn().Msg("No user connected; run with --token to connect")
		return
	}

	for _, w := range res.Warnings {
		log.Warn().Str("stage", w).Msg("Sync stage degraded")
	}
	fmt.Printf("Sync completed: %d new accounts, %d balance snapshots, %d transactions, %d rule updates.\n",
		res.NewAccounts, res.Balances, res.Transactions, res.RuleUpdates)
}
