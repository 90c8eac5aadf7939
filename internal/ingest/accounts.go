package ingest

import (
	"context"
	"fmt"

	"github.com/dolla-nz/centsync/internal/logger"
	"github.com/dolla-nz/centsync/internal/store"
)

// SyncAccounts upserts the current account list into the account tab and
// soft-deletes rows for accounts missing from the response. Returns the
// number of newly appended accounts; the orchestrator uses it to pick the
// transaction backfill window.
func (e *Engine) SyncAccounts(ctx context.Context, token string) (int, error) {
	log := logger.FromContext(ctx)

	existingIDs, err := e.accounts.IDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("SyncAccounts: reading existing ids: %w", err)
	}

	fetched, err := e.api.ListAccounts(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("SyncAccounts: %w", err)
	}
	log.Info().Int("fetched", len(fetched)).Msg("Fetched accounts")

	fetchedIDs := make(map[string]bool, len(fetched))
	for _, acc := range fetched {
		if acc.ID != "" {
			fetchedIDs[acc.ID] = true
		}
	}

	// Linear scan of existing rows: anything no longer in the response is
	// soft-deleted in place. Rows are never removed.
	var deleted int
	for i, id := range existingIDs {
		if id == "" || fetchedIDs[id] {
			continue
		}
		if err := e.accounts.UpdateCell(ctx, i, store.AccountColStatus, store.StatusDeleted); err != nil {
			return 0, fmt.Errorf("SyncAccounts: marking row %d deleted: %w", i, err)
		}
		log.Info().Str("account_id", id).Int("row", i).Msg("Marked account deleted")
		deleted++
	}

	rowIndex := make(map[string]int, len(existingIDs))
	for i, id := range existingIDs {
		if id != "" {
			rowIndex[id] = i
		}
	}

	now := e.now()
	var newRows [][]any
	for _, acc := range fetched {
		if acc.ID == "" {
			// Entities without an external ID are dropped.
			continue
		}
		rec := accountRecord(acc)

		if idx, ok := rowIndex[acc.ID]; ok {
			// In-place replace of the first nine columns; Date Added
			// keeps its original value.
			if err := e.accounts.UpdateRow(ctx, idx, rec.Row()); err != nil {
				return 0, fmt.Errorf("SyncAccounts: updating row %d: %w", idx, err)
			}
			continue
		}
		newRows = append(newRows, rec.RowWithAdded(now))
	}

	if err := e.accounts.Append(ctx, newRows); err != nil {
		return 0, fmt.Errorf("SyncAccounts: appending new rows: %w", err)
	}

	log.Info().
		Int("new", len(newRows)).
		Int("updated", len(fetched)-len(newRows)).
		Int("deleted", deleted).
		Msg("Account sync completed")
	return len(newRows), nil
}
