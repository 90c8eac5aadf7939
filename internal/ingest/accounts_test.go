package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/dolla-nz/centsync/internal/centapi"
	"github.com/dolla-nz/centsync/internal/store"
)

func TestSyncAccounts_AppendsNewAccounts(t *testing.T) {
	ctx := context.Background()
	accounts, balances, transactions := testTables()
	api := &fakeAPI{accounts: testAccounts("acc_1", "acc_2")}

	now := time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC)
	e := NewEngine(api, accounts, balances, transactions, fixedClock(now))

	newCount, err := e.SyncAccounts(ctx, "tok")
	if err != nil {
		t.Fatalf("SyncAccounts failed: %v", err)
	}
	if newCount != 2 {
		t.Errorf("expected 2 new accounts, got %d", newCount)
	}

	rows, _ := accounts.Rows(ctx)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Date Added is the run timestamp.
	if rows[0][9] != now.Format(time.RFC3339) {
		t.Errorf("expected date added %s, got %v", now.Format(time.RFC3339), rows[0][9])
	}
}

func TestSyncAccounts_SoftDeleteCorrectness(t *testing.T) {
	ctx := context.Background()
	accounts, balances, transactions := testTables()

	// First sync sees acc_1 and acc_2; second sees only acc_2.
	api := &fakeAPI{accounts: testAccounts("acc_1", "acc_2")}
	e := NewEngine(api, accounts, balances, transactions)
	if _, err := e.SyncAccounts(ctx, "tok"); err != nil {
		t.Fatalf("first sync failed: %v", err)
	}

	api.accounts = testAccounts("acc_2")
	if _, err := e.SyncAccounts(ctx, "tok"); err != nil {
		t.Fatalf("second sync failed: %v", err)
	}

	rows, _ := accounts.Rows(ctx)
	if len(rows) != 2 {
		t.Fatalf("soft delete must keep rows, got %d", len(rows))
	}
	if rows[0][store.AccountColStatus] != store.StatusDeleted {
		t.Errorf("expected acc_1 DELETED, got %v", rows[0][store.AccountColStatus])
	}
	if rows[1][store.AccountColStatus] != store.StatusActive {
		t.Errorf("still-present account must keep fetched status, got %v", rows[1][store.AccountColStatus])
	}
}

func TestSyncAccounts_UpsertPreservesDateAdded(t *testing.T) {
	ctx := context.Background()
	accounts, balances, transactions := testTables()
	api := &fakeAPI{accounts: testAccounts("acc_1")}

	first := time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)
	e := NewEngine(api, accounts, balances, transactions, fixedClock(first))
	if _, err := e.SyncAccounts(ctx, "tok"); err != nil {
		t.Fatalf("first sync failed: %v", err)
	}

	// Re-sync later with a changed account name.
	api.accounts[0].Name = "Renamed"
	second := first.Add(24 * time.Hour)
	e2 := NewEngine(api, accounts, balances, transactions, fixedClock(second))
	newCount, err := e2.SyncAccounts(ctx, "tok")
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if newCount != 0 {
		t.Errorf("expected 0 new accounts, got %d", newCount)
	}

	rows, _ := accounts.Rows(ctx)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][2] != "Renamed" {
		t.Errorf("expected in-place field update, got %v", rows[0][2])
	}
	if rows[0][9] != first.Format(time.RFC3339) {
		t.Errorf("Date Added must be preserved on update, got %v", rows[0][9])
	}
}

func TestSyncAccounts_DropsItemsWithoutID(t *testing.T) {
	ctx := context.Background()
	accounts, balances, transactions := testTables()
	api := &fakeAPI{accounts: append(testAccounts("acc_1"), testAccount("", "ghost", "ACTIVE"))}

	e := NewEngine(api, accounts, balances, transactions)
	newCount, err := e.SyncAccounts(ctx, "tok")
	if err != nil {
		t.Fatalf("SyncAccounts failed: %v", err)
	}
	if newCount != 1 {
		t.Errorf("expected 1 new account, got %d", newCount)
	}
}

func TestSyncBalances_AppendsOnlyActive(t *testing.T) {
	ctx := context.Background()
	accounts, balances, transactions := testTables()
	api := &fakeAPI{accounts: []centapi.Account{
		testAccount("acc_1", "Everyday", "ACTIVE"),
		testAccount("acc_2", "Closed", "INACTIVE"),
	}}

	now := time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC)
	e := NewEngine(api, accounts, balances, transactions, fixedClock(now))

	count, err := e.SyncBalances(ctx, "tok")
	if err != nil {
		t.Fatalf("SyncBalances failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 snapshot, got %d", count)
	}

	// A second sync appends again without deduplication.
	if _, err := e.SyncBalances(ctx, "tok"); err != nil {
		t.Fatalf("second SyncBalances failed: %v", err)
	}
	rows, _ := balances.Rows(ctx)
	if len(rows) != 2 {
		t.Fatalf("balance tab must be append-only, got %d rows", len(rows))
	}
	if rows[0][7] != now.Format(time.RFC3339) {
		t.Errorf("expected shared capture timestamp, got %v", rows[0][7])
	}
}
