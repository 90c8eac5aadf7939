package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/dolla-nz/centsync/internal/centapi"
	"github.com/dolla-nz/centsync/internal/logger"
	"github.com/dolla-nz/centsync/internal/store"
)

// SyncTransactions ingests transactions dated within the last days days,
// deduplicated against the IDs already in the transaction tab. Each page is
// committed in one append; a fetch failure mid-pagination is logged as a
// warning and stops further ingestion without discarding committed rows,
// while a failure before anything was ingested is returned to the caller.
//
// After ingestion only the freshly appended span is sorted by date. Earlier
// rows keep whatever order they already had, so the tab as a whole is only
// locally sorted.
func (e *Engine) SyncTransactions(ctx context.Context, token string, days int) (int, error) {
	log := logger.FromContext(ctx)

	now := e.now()
	start := now.Add(-time.Duration(days) * 24 * time.Hour)
	log.Info().Int("days", days).Time("start", start).Msg("Starting transaction sync")

	existingIDs, err := e.transactions.IDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("SyncTransactions: reading existing ids: %w", err)
	}
	known := make(map[string]bool, len(existingIDs))
	for _, id := range existingIDs {
		if id != "" {
			known[id] = true
		}
	}
	prevLen := len(existingIDs)

	// The account list resolves counterparty names and numbers for the
	// whole batch. Without it there is nothing useful to ingest.
	accounts, err := e.api.ListAccounts(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("SyncTransactions: fetching accounts: %w", err)
	}
	accountByID := make(map[string]centapi.Account, len(accounts))
	for _, acc := range accounts {
		accountByID[acc.ID] = acc
	}

	var appended int
	cursor := ""
	for {
		page, err := e.api.ListTransactions(ctx, token, start, cursor)
		if err != nil {
			// Keep everything committed so far; the next run's dedup
			// picks up from here.
			log.Warn().Err(err).Int("appended", appended).Msg("Error fetching transactions, stopping early")
			break
		}
		log.Info().Int("fetched", len(page.Items)).Msg("Fetched transaction page")

		var rows [][]any
		for _, item := range page.Items {
			if item.ID == "" {
				continue
			}
			if known[item.ID] {
				continue
			}
			known[item.ID] = true
			rows = append(rows, transactionRecord(item, accountByID, now).Row())
		}

		if len(rows) > 0 {
			if err := e.transactions.Append(ctx, rows); err != nil {
				return appended, fmt.Errorf("SyncTransactions: appending page: %w", err)
			}
			appended += len(rows)
			log.Info().Int("inserted", len(rows)).Msg("Inserted transaction rows")
		}

		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	if appended > 0 {
		if err := e.transactions.SortRange(ctx, prevLen, appended, store.TransactionColDate); err != nil {
			return appended, fmt.Errorf("SyncTransactions: sorting appended rows: %w", err)
		}
	}

	log.Info().Int("appended", appended).Msg("Transaction sync completed")
	return appended, nil
}

// transactionRecord builds the stored record for one fetched transaction,
// resolving its linked account for the counterparty name and number.
func transactionRecord(item centapi.Transaction, accountByID map[string]centapi.Account, now time.Time) store.Transaction {
	acc := accountByID[item.AccountID]
	return store.Transaction{
		ID:            item.ID,
		Date:          item.Date,
		Description:   item.Description,
		Amount:        item.Amount,
		AccountName:   acc.Name,
		AccountNumber: acc.FormattedAccount,
		Balance:       item.Balance,
		Type:          item.Type,
		Merchant:      item.MerchantName(),
		Category:      item.CategoryGroupName(),
		NZFCC:         item.CategoryName(),
		OtherAccount:  item.Meta.OtherAccount,
		Particulars:   item.Meta.Particulars,
		Code:          item.Meta.Code,
		Reference:     item.Meta.Reference,
		Added:         now,
	}
}
