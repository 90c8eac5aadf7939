// Package store defines the column schemas of the four sheet tabs and the
// typed records mapped onto their rows. It is the only place that knows how
// an entity is laid out as a row.
package store

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the semantic type of a column.
type Kind int

const (
	// KindID is the external-ID column. Always column A.
	KindID Kind = iota
	// KindString is a free-text column.
	KindString
	// KindMoney is a signed money amount.
	KindMoney
	// KindTime is a timestamp, stored as an RFC3339 string.
	KindTime
	// KindBool is a yes/no flag.
	KindBool
)

// Column is one named, typed column of a table schema.
type Column struct {
	Title string
	Kind  Kind
}

// Schema is the ordered column list of one sheet tab.
type Schema struct {
	Sheet   string
	Columns []Column
}

// Header returns the header row titles in order.
func (s Schema) Header() []string {
	header := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		header[i] = c.Title
	}
	return header
}

// ColumnIndex returns the index of the column whose title matches name
// case-insensitively, or -1 when there is no such column.
func (s Schema) ColumnIndex(name string) int {
	for i, c := range s.Columns {
		if strings.EqualFold(c.Title, name) {
			return i
		}
	}
	return -1
}

// Cell parsing helpers. Sheet cells may come back as strings or numbers
// depending on render options and user edits, so every accessor is tolerant:
// an unparseable cell yields the zero value.

// CellString returns the cell as a string.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return strings.TrimSpace(strings.TrimSuffix(decimalFrom(v).String(), ".0"))
	}
}

// CellDecimal returns the cell as a decimal amount.
func CellDecimal(v any) decimal.Decimal {
	return decimalFrom(v)
}

func decimalFrom(v any) decimal.Decimal {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero
		}
		return d
	case decimal.Decimal:
		return x
	default:
		return decimal.Zero
	}
}

// CellTime returns the cell as a timestamp. RFC3339 and date-only forms are
// accepted; anything else yields the zero time.
func CellTime(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

// IsBlank reports whether the cell is empty for the purpose of the
// non-overwriting rule setter.
func IsBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// timeCell serializes a timestamp for storage. Zero times become "".
func timeCell(t time.Time) any {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// moneyCell serializes an amount for storage as a sheet number.
func moneyCell(d decimal.Decimal) any {
	return d.InexactFloat64()
}
