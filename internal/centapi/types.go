package centapi

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents one bank account as returned by the sync API.
// Field names mirror the wire format of the upstream aggregator.
type Account struct {
	ID               string     `json:"_id"`
	Connection       Connection `json:"connection"`
	Name             string     `json:"name"`
	FormattedAccount string     `json:"formatted_account"`
	Type             string     `json:"type"`
	Status           string     `json:"status"`
	Balance          Balance    `json:"balance"`
	Refreshed        Refreshed  `json:"refreshed"`
}

// Connection identifies the institution an account belongs to.
type Connection struct {
	Name string `json:"name"`
}

// Balance carries the current and available balances of an account.
type Balance struct {
	Current   decimal.Decimal `json:"current"`
	Available decimal.Decimal `json:"available"`
}

// Refreshed carries the per-feed refresh timestamps of an account.
type Refreshed struct {
	Balance time.Time `json:"balance"`
}

// Transaction represents one bank transaction as returned by the sync API.
// Amount is signed: positive values are credits.
type Transaction struct {
	ID          string          `json:"_id"`
	AccountID   string          `json:"_account"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
	Type        string          `json:"type"`
	Merchant    *Merchant       `json:"merchant,omitempty"`
	Category    *Category       `json:"category,omitempty"`
	Meta        Meta            `json:"meta"`
}

// Merchant is the enriched merchant attached to a transaction.
type Merchant struct {
	Name string `json:"name"`
}

// Category is the enriched category attached to a transaction. Name is the
// raw taxonomy name; Groups carries the personal-finance parent group.
type Category struct {
	Name   string `json:"name"`
	Groups Groups `json:"groups"`
}

// Groups holds the group hierarchies a category belongs to.
type Groups struct {
	PersonalFinance *Group `json:"personal_finance,omitempty"`
}

// Group is a single named category group.
type Group struct {
	Name string `json:"name"`
}

// Meta carries NZ bank statement fields attached to a transaction.
type Meta struct {
	OtherAccount string `json:"other_account"`
	Particulars  string `json:"particulars"`
	Code         string `json:"code"`
	Reference    string `json:"reference"`
}

// MerchantName returns the merchant name or "" when no merchant is attached.
func (t Transaction) MerchantName() string {
	if t.Merchant == nil {
		return ""
	}
	return t.Merchant.Name
}

// CategoryName returns the raw taxonomy category name, or "".
func (t Transaction) CategoryName() string {
	if t.Category == nil {
		return ""
	}
	return t.Category.Name
}

// CategoryGroupName returns the personal-finance group name, or "".
func (t Transaction) CategoryGroupName() string {
	if t.Category == nil || t.Category.Groups.PersonalFinance == nil {
		return ""
	}
	return t.Category.Groups.PersonalFinance.Name
}

// TransactionPage is one page of a paginated transaction listing.
// NextCursor is "" when there are no further pages.
type TransactionPage struct {
	Items      []Transaction
	NextCursor string
}

// TaxonomyEntry is one entry of the public category taxonomy.
type TaxonomyEntry struct {
	Name   string `json:"name"`
	Groups Groups `json:"groups"`
}

// GroupName returns the personal-finance group name of the entry, or "".
func (e TaxonomyEntry) GroupName() string {
	if e.Groups.PersonalFinance == nil {
		return ""
	}
	return e.Groups.PersonalFinance.Name
}

type accountsResponse struct {
	Items []Account `json:"items"`
}

type transactionsResponse struct {
	Items  []Transaction `json:"items"`
	Cursor struct {
		Next *string `json:"next"`
	} `json:"cursor"`
}
