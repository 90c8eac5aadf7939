package ingest

import (
	"context"
	"fmt"

	"github.com/dolla-nz/centsync/internal/logger"
	"github.com/dolla-nz/centsync/internal/store"
)

// SyncBalances appends one balance snapshot per active account, all sharing
// a single capture timestamp. The balance tab is append-only: existing rows
// are never updated or deduplicated.
func (e *Engine) SyncBalances(ctx context.Context, token string) (int, error) {
	log := logger.FromContext(ctx)

	fetched, err := e.api.ListAccounts(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("SyncBalances: %w", err)
	}

	now := e.now()
	var rows [][]any
	for _, acc := range fetched {
		if acc.ID == "" || acc.Status != store.StatusActive {
			continue
		}
		snap := store.BalanceSnapshot{
			AccountID:   acc.ID,
			Institution: acc.Connection.Name,
			Name:        acc.Name,
			Number:      acc.FormattedAccount,
			Type:        acc.Type,
			Current:     acc.Balance.Current,
			Available:   acc.Balance.Available,
			CapturedAt:  now,
		}
		rows = append(rows, snap.Row())
	}

	if err := e.balances.Append(ctx, rows); err != nil {
		return 0, fmt.Errorf("SyncBalances: appending snapshots: %w", err)
	}

	log.Info().Int("snapshots", len(rows)).Msg("Balance sync completed")
	return len(rows), nil
}
