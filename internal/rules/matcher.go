package rules

import (
	"context"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/dolla-nz/centsync/internal/logger"
	"github.com/dolla-nz/centsync/internal/store"
)

// Reserved match-column titles, lowercased the way ParseRule stores them.
const (
	matchMinimum = "minimum"
	matchMaximum = "maximum"
	matchBefore  = "before"
	matchAfter   = "after"
)

// matches reports whether the transaction row satisfies every match field of
// the rule. A rule without match fields matches every row.
func (e *Engine) matches(ctx context.Context, rule store.Rule, txHeader []string, row []any) bool {
	for field, want := range rule.Match {
		switch field {
		case matchMinimum:
			if store.TxAmount(row).LessThan(store.CellDecimal(want)) {
				return false
			}
		case matchMaximum:
			if store.TxAmount(row).GreaterThan(store.CellDecimal(want)) {
				return false
			}
		case matchBefore:
			date, bound, ok := dateBound(row, want)
			if !ok || date.After(bound) {
				return false
			}
		case matchAfter:
			date, bound, ok := dateBound(row, want)
			if !ok || date.Before(bound) {
				return false
			}
		default:
			if !e.matchField(ctx, txHeader, row, field, want) {
				return false
			}
		}
	}
	return true
}

// matchField matches one free-form rule column against the like-named
// transaction column by case-insensitive substring. Columns that do not
// resolve to a text field never match unless loose fields are enabled.
func (e *Engine) matchField(ctx context.Context, txHeader []string, row []any, field string, want any) bool {
	idx := headerIndex(txHeader, field)
	if idx >= 0 && idx < len(row) {
		if cell, ok := row[idx].(string); ok {
			needle := strings.ToLower(store.CellString(want))
			return strings.Contains(strings.ToLower(cell), needle)
		}
	}
	if e.allowLooseFields {
		log := logger.FromContext(ctx)
		log.Warn().Str("field", field).Msg("Match field is not a text column, treating as matched")
		return true
	}
	return false
}

// dateBound resolves the transaction date and a rule bound as calendar
// dates. Comparisons are date-granular, so a bound of 2024-01-01 includes
// the whole of that day.
func dateBound(row []any, want any) (date, bound civil.Date, ok bool) {
	txTime := store.TxDate(row)
	if txTime.IsZero() {
		return date, bound, false
	}
	date = civil.DateOf(txTime)

	if s, isStr := want.(string); isStr {
		if d, err := civil.ParseDate(strings.TrimSpace(s)); err == nil {
			return date, d, true
		}
	}
	boundTime := store.CellTime(want)
	if boundTime.IsZero() {
		return date, bound, false
	}
	return date, civil.DateOf(boundTime), true
}
