package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceHistory is the schema of the balance-snapshot tab. The tab is
// append-only: one row per active account per sync, never updated.
var BalanceHistory = Schema{
	Sheet: "CentBalanceHistory",
	Columns: []Column{
		{Title: "ID", Kind: KindID},
		{Title: "Institution Name", Kind: KindString},
		{Title: "Account Name", Kind: KindString},
		{Title: "Account Number", Kind: KindString},
		{Title: "Type", Kind: KindString},
		{Title: "Current Balance", Kind: KindMoney},
		{Title: "Available Balance", Kind: KindMoney},
		{Title: "Date", Kind: KindTime},
	},
}

// BalanceSnapshot is one captured balance row. The account ID is a
// non-unique key here: each sync appends a fresh snapshot.
type BalanceSnapshot struct {
	AccountID   string
	Institution string
	Name        string
	Number      string
	Type        string
	Current     decimal.Decimal
	Available   decimal.Decimal
	CapturedAt  time.Time
}

// Row maps the snapshot to a balance-history row.
func (b BalanceSnapshot) Row() []any {
	return []any{
		b.AccountID,
		b.Institution,
		b.Name,
		b.Number,
		b.Type,
		moneyCell(b.Current),
		moneyCell(b.Available),
		timeCell(b.CapturedAt),
	}
}
