package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transactions is the schema of the transaction tab. Rows are append-only
// and deduplicated by the ID column; the rule engine may overwrite any other
// column after insertion.
var Transactions = Schema{
	Sheet: "CentTransactions",
	Columns: []Column{
		{Title: "ID", Kind: KindID},
		{Title: "Date", Kind: KindTime},
		{Title: "Description", Kind: KindString},
		{Title: "Amount", Kind: KindMoney},
		{Title: "Account Name", Kind: KindString},
		{Title: "Account Number", Kind: KindString},
		{Title: "Balance", Kind: KindMoney},
		{Title: "Type", Kind: KindString},
		{Title: "Merchant Name", Kind: KindString},
		{Title: "Category", Kind: KindString},
		{Title: "NZFCC.org", Kind: KindString},
		{Title: "Other Account", Kind: KindString},
		{Title: "Particulars", Kind: KindString},
		{Title: "Code", Kind: KindString},
		{Title: "Reference", Kind: KindString},
		{Title: "Date Added", Kind: KindTime},
	},
}

// Column indexes of the transaction tab used by the engines.
const (
	TransactionColDate   = 1
	TransactionColAmount = 3
)

// Transaction is the typed record stored in the transaction tab. Category
// holds the personal-finance group name; NZFCC holds the raw taxonomy name.
type Transaction struct {
	ID            string
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	AccountName   string
	AccountNumber string
	Balance       decimal.Decimal
	Type          string
	Merchant      string
	Category      string
	NZFCC         string
	OtherAccount  string
	Particulars   string
	Code          string
	Reference     string
	Added         time.Time
}

// Row maps the transaction to a full transaction-tab row.
func (t Transaction) Row() []any {
	return []any{
		t.ID,
		timeCell(t.Date),
		t.Description,
		moneyCell(t.Amount),
		t.AccountName,
		t.AccountNumber,
		moneyCell(t.Balance),
		t.Type,
		t.Merchant,
		t.Category,
		t.NZFCC,
		t.OtherAccount,
		t.Particulars,
		t.Code,
		t.Reference,
		timeCell(t.Added),
	}
}

// TransactionFromRow maps a transaction-tab row back to a typed record.
func TransactionFromRow(row []any) Transaction {
	get := func(i int) any {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return Transaction{
		ID:            CellString(get(0)),
		Date:          CellTime(get(1)),
		Description:   CellString(get(2)),
		Amount:        CellDecimal(get(3)),
		AccountName:   CellString(get(4)),
		AccountNumber: CellString(get(5)),
		Balance:       CellDecimal(get(6)),
		Type:          CellString(get(7)),
		Merchant:      CellString(get(8)),
		Category:      CellString(get(9)),
		NZFCC:         CellString(get(10)),
		OtherAccount:  CellString(get(11)),
		Particulars:   CellString(get(12)),
		Code:          CellString(get(13)),
		Reference:     CellString(get(14)),
		Added:         CellTime(get(15)),
	}
}

// TxAmount returns the amount cell of a raw transaction row.
func TxAmount(row []any) decimal.Decimal {
	if TransactionColAmount < len(row) {
		return CellDecimal(row[TransactionColAmount])
	}
	return decimal.Zero
}

// TxDate returns the date cell of a raw transaction row.
func TxDate(row []any) time.Time {
	if TransactionColDate < len(row) {
		return CellTime(row[TransactionColDate])
	}
	return time.Time{}
}
