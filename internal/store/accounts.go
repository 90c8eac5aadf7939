package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// Accounts is the schema of the account tab. Accounts are upserted in
// place by external ID; Date Added is written once on first appearance.
var Accounts = Schema{
	Sheet: "CentAccounts",
	Columns: []Column{
		{Title: "ID", Kind: KindID},
		{Title: "Institution Name", Kind: KindString},
		{Title: "Account Name", Kind: KindString},
		{Title: "Account Number", Kind: KindString},
		{Title: "Type", Kind: KindString},
		{Title: "Current Balance", Kind: KindMoney},
		{Title: "Available Balance", Kind: KindMoney},
		{Title: "Status", Kind: KindString},
		{Title: "Date Refreshed", Kind: KindTime},
		{Title: "Date Added", Kind: KindTime},
	},
}

// Column indexes of the account tab used by the ingestion engine.
const (
	AccountColStatus = 7
)

// StatusDeleted is the soft-delete marker written to the status column of
// accounts that disappear from a sync response. Rows are never removed.
const StatusDeleted = "DELETED"

// StatusActive is the status of accounts included in balance snapshots.
const StatusActive = "ACTIVE"

// Account is the typed record stored in the account tab.
type Account struct {
	ID          string
	Institution string
	Name        string
	Number      string
	Type        string
	Current     decimal.Decimal
	Available   decimal.Decimal
	Status      string
	Refreshed   time.Time
}

// Row maps the account to the first nine columns. Date Added is excluded so
// an in-place update leaves the original first-seen timestamp untouched.
func (a Account) Row() []any {
	return []any{
		a.ID,
		a.Institution,
		a.Name,
		a.Number,
		a.Type,
		moneyCell(a.Current),
		moneyCell(a.Available),
		a.Status,
		timeCell(a.Refreshed),
	}
}

// RowWithAdded maps the account to a full row including Date Added, used
// when the account is appended for the first time.
func (a Account) RowWithAdded(added time.Time) []any {
	return append(a.Row(), timeCell(added))
}
