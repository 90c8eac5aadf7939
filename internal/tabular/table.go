// Package tabular abstracts a mutable, row-oriented table with stable row
// identity. Row 1 of every table is a header row; data rows are addressed by
// 0-based index from row 2. Column A holds the entity's external ID.
//
// Cell values are restricted to string, float64 and bool. Timestamps are
// written as RFC3339 strings so that date columns sort correctly both in the
// in-memory implementation and in the backing spreadsheet.
package tabular

import "context"

// Table is the persistence substrate for accounts, balances, transactions
// and rules.
type Table interface {
	// Name returns the table (sheet tab) name.
	Name() string

	// Header returns the header row, lowercased by callers as needed.
	Header(ctx context.Context) ([]string, error)

	// Rows returns all data rows. Short rows are padded to header width.
	Rows(ctx context.Context) ([][]any, error)

	// IDs returns the values of column A for every data row, in row order.
	// Rows without an ID yield "".
	IDs(ctx context.Context) ([]string, error)

	// Len returns the number of data rows.
	Len(ctx context.Context) (int, error)

	// Append adds rows at the bottom of the table in one write.
	Append(ctx context.Context, rows [][]any) error

	// UpdateRow overwrites row index starting at column A. Writing fewer
	// values than the table is wide leaves the trailing columns untouched.
	UpdateRow(ctx context.Context, index int, values []any) error

	// UpdateCell overwrites a single cell of row index. col is 0-based.
	UpdateCell(ctx context.Context, index, col int, value any) error

	// SortRange sorts count data rows starting at index ascending by col.
	// Rows outside the range keep their positions.
	SortRange(ctx context.Context, index, count, col int) error
}
