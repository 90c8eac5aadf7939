package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/dolla-nz/centsync/internal/centapi"
	"github.com/dolla-nz/centsync/internal/store"
	"github.com/dolla-nz/centsync/internal/tabular"
	"github.com/shopspring/decimal"
)

// fakeAPI is a mock sync API for engine tests. Transaction pages are keyed
// by cursor; "" selects the first page.
type fakeAPI struct {
	accounts    []centapi.Account
	accountsErr error

	pages    map[string]centapi.TransactionPage
	pageErrs map[string]error
	txCalls  int
}

func (f *fakeAPI) ListAccounts(ctx context.Context, token string) ([]centapi.Account, error) {
	if f.accountsErr != nil {
		return nil, f.accountsErr
	}
	return f.accounts, nil
}

func (f *fakeAPI) ListTransactions(ctx context.Context, token string, start time.Time, cursor string) (centapi.TransactionPage, error) {
	f.txCalls++
	if err := f.pageErrs[cursor]; err != nil {
		return centapi.TransactionPage{}, err
	}
	page, ok := f.pages[cursor]
	if !ok {
		return centapi.TransactionPage{}, fmt.Errorf("no page for cursor %q", cursor)
	}
	return page, nil
}

func (f *fakeAPI) FetchCategoryTaxonomy(ctx context.Context) ([]centapi.TaxonomyEntry, error) {
	return nil, nil
}

func (f *fakeAPI) RevokeToken(ctx context.Context, token string) error {
	return nil
}

var _ centapi.Service = (*fakeAPI)(nil)

func testTables() (accounts, balances, transactions *tabular.MemTable) {
	accounts = tabular.NewMemTable(store.Accounts.Sheet, store.Accounts.Header())
	balances = tabular.NewMemTable(store.BalanceHistory.Sheet, store.BalanceHistory.Header())
	transactions = tabular.NewMemTable(store.Transactions.Sheet, store.Transactions.Header())
	return accounts, balances, transactions
}

func testAccount(id, name, status string) centapi.Account {
	return centapi.Account{
		ID:               id,
		Connection:       centapi.Connection{Name: "ANZ"},
		Name:             name,
		FormattedAccount: "01-0101-0000001-00",
		Type:             "CHECKING",
		Status:           status,
		Balance: centapi.Balance{
			Current:   decimal.NewFromInt(100),
			Available: decimal.NewFromInt(90),
		},
		Refreshed: centapi.Refreshed{Balance: time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC)},
	}
}

func testTransaction(id string, date time.Time, amount string, description string) centapi.Transaction {
	return centapi.Transaction{
		ID:          id,
		AccountID:   "acc_1",
		Date:        date,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Balance:     decimal.NewFromInt(50),
		Type:        "EFTPOS",
	}
}

// testAccounts returns one ACTIVE account per id.
func testAccounts(ids ...string) []centapi.Account {
	out := make([]centapi.Account, 0, len(ids))
	for _, id := range ids {
		out = append(out, testAccount(id, "Everyday", store.StatusActive))
	}
	return out
}

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}
