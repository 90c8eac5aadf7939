// Package orchestrator runs one full sync cycle over the backing user
// connection: accounts, balance history, transactions, then the
// categorization rules.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/dolla-nz/centsync/internal/logger"
	"github.com/dolla-nz/centsync/internal/props"
)

// Lookback windows for transaction ingestion. A cycle that discovered new
// accounts backfills further so their history is captured.
const (
	backfillDays    = 90
	incrementalDays = 30
)

// Ingestor syncs upstream data into the backing tables.
type Ingestor interface {
	SyncAccounts(ctx context.Context, token string) (int, error)
	SyncBalances(ctx context.Context, token string) (int, error)
	SyncTransactions(ctx context.Context, token string, days int) (int, error)
}

// RuleApplier applies the categorization rules to the transaction table.
type RuleApplier interface {
	Apply(ctx context.Context) (int, error)
}

// TokenSource yields the user's bearer token.
type TokenSource interface {
	UserToken() (string, error)
}

// Result summarizes one sync cycle.
type Result struct {
	// Skipped is set when no user token is stored and the cycle did
	// nothing.
	Skipped bool

	NewAccounts  int
	Balances     int
	Transactions int
	RuleUpdates  int

	// Warnings lists ingestion stages that failed without aborting the
	// cycle.
	Warnings []string
}

// Orchestrator drives sync cycles.
type Orchestrator struct {
	tokens TokenSource
	ingest Ingestor
	rules  RuleApplier
}

// New creates an orchestrator.
func New(tokens TokenSource, ingest Ingestor, rules RuleApplier) *Orchestrator {
	return &Orchestrator{tokens: tokens, ingest: ingest, rules: rules}
}

// RunCycle executes one sync cycle. Ingestion stages degrade to warnings so
// that one flaky upstream call does not abort the whole cycle; a rule
// application failure is returned as an error because it risks leaving the
// transaction table partially categorized.
func (o *Orchestrator) RunCycle(ctx context.Context) (Result, error) {
	log := logger.FromContext(ctx)

	token, err := o.tokens.UserToken()
	if err != nil {
		if errors.Is(err, props.ErrNotConnected) {
			log.Info().Msg("No user connected, skipping sync cycle")
			return Result{Skipped: true}, nil
		}
		return Result{}, fmt.Errorf("RunCycle: reading token: %w", err)
	}

	var res Result

	newAccounts, err := o.ingest.SyncAccounts(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("Account sync failed")
		res.Warnings = append(res.Warnings, fmt.Sprintf("account sync: %v", err))
	}
	res.NewAccounts = newAccounts

	balances, err := o.ingest.SyncBalances(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("Balance sync failed")
		res.Warnings = append(res.Warnings, fmt.Sprintf("balance sync: %v", err))
	}
	res.Balances = balances

	days := incrementalDays
	if newAccounts > 0 {
		days = backfillDays
	}
	transactions, err := o.ingest.SyncTransactions(ctx, token, days)
	if err != nil {
		log.Warn().Err(err).Msg("Transaction sync failed")
		res.Warnings = append(res.Warnings, fmt.Sprintf("transaction sync: %v", err))
	}
	res.Transactions = transactions

	updates, err := o.rules.Apply(ctx)
	if err != nil {
		return res, fmt.Errorf("RunCycle: applying rules: %w", err)
	}
	res.RuleUpdates = updates

	log.Info().
		Int("new_accounts", res.NewAccounts).
		Int("balances", res.Balances).
		Int("transactions", res.Transactions).
		Int("rule_updates", res.RuleUpdates).
		Int("warnings", len(res.Warnings)).
		Msg("Sync cycle completed")
	return res, nil
}
