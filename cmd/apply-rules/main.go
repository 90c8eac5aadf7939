package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dolla-nz/centsync/internal/app"
	"github.com/dolla-nz/centsync/internal/logger"
	"github.com/dolla-nz/centsync/internal/rules"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	strict := flag.Bool("strict-fields", false, "Match columns without a matching text field never match instead of always matching")
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

	engine := a.RuleEngine
	if *strict {
		engine = rules.NewEngine(a.Rules, a.Transactions, rules.WithLooseFields(false))
	}

	updated, err := engine.Apply(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Rule application failed")
	}

	fmt.Printf("Rules applied: %d rows updated.\n", updated)
}
