// Package rules applies user-maintained categorization rules to ingested
// transactions. The rule tab is header-driven: any column whose title starts
// with "Set " names a target field, the reserved titles Minimum, Maximum,
// Before and After constrain amount and date, Overwrite Existing controls
// whether populated targets are replaced, and every other column matches its
// like-named transaction field by case-insensitive substring.
package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/dolla-nz/centsync/internal/logger"
	"github.com/dolla-nz/centsync/internal/store"
	"github.com/dolla-nz/centsync/internal/tabular"
)

// Engine applies the rule tab to the transaction tab.
type Engine struct {
	rules        tabular.Table
	transactions tabular.Table

	allowLooseFields bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLooseFields controls what a match column that does not resolve to a
// text field does: true (the default) makes it match every transaction,
// false makes it match none.
func WithLooseFields(allow bool) Option {
	return func(e *Engine) { e.allowLooseFields = allow }
}

// NewEngine creates a rule engine over the given rule and transaction tabs.
func NewEngine(rules, transactions tabular.Table, opts ...Option) *Engine {
	e := &Engine{rules: rules, transactions: transactions, allowLooseFields: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply runs every rule in tab order and returns the number of row updates
// written. The transaction tab is re-read before each rule, so a later rule
// observes the writes of earlier ones.
func (e *Engine) Apply(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	header, err := e.rules.Header(ctx)
	if err != nil {
		return 0, fmt.Errorf("Apply: reading rule header: %w", err)
	}
	ruleRows, err := e.rules.Rows(ctx)
	if err != nil {
		return 0, fmt.Errorf("Apply: reading rules: %w", err)
	}
	log.Info().Int("rules", len(ruleRows)).Msg("Applying categorization rules")

	var updated int
	for i, row := range ruleRows {
		rule := store.ParseRule(header, row)
		if len(rule.Set) == 0 {
			log.Warn().Int("rule", i+1).Msg("Rule has no set targets, skipping")
			continue
		}

		n, err := e.applyRule(ctx, rule)
		if err != nil {
			return updated, fmt.Errorf("Apply: rule %d: %w", i+1, err)
		}
		log.Info().Int("rule", i+1).Int("updated", n).Msg("Applied rule")
		updated += n
	}

	log.Info().Int("updated", updated).Msg("Rule application completed")
	return updated, nil
}

// applyRule matches one compiled rule against every transaction row and
// writes back only the rows it changed.
func (e *Engine) applyRule(ctx context.Context, rule store.Rule) (int, error) {
	txHeader, err := e.transactions.Header(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading transaction header: %w", err)
	}
	txRows, err := e.transactions.Rows(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading transactions: %w", err)
	}

	targets := make(map[string]int, len(rule.Set))
	for field := range rule.Set {
		idx := headerIndex(txHeader, field)
		if idx < 0 {
			log := logger.FromContext(ctx)
			log.Warn().Str("field", field).Msg("Set target does not match a transaction column, ignoring")
			continue
		}
		targets[field] = idx
	}
	if len(targets) == 0 {
		return 0, nil
	}

	var updated int
	for i, row := range txRows {
		if !e.matches(ctx, rule, txHeader, row) {
			continue
		}

		dirty := false
		for field, idx := range targets {
			if idx >= len(row) {
				continue
			}
			if !rule.Overwrite && !store.IsBlank(row[idx]) {
				continue
			}
			if row[idx] != rule.Set[field] {
				row[idx] = rule.Set[field]
				dirty = true
			}
		}
		if !dirty {
			continue
		}
		if err := e.transactions.UpdateRow(ctx, i, row); err != nil {
			return updated, fmt.Errorf("updating row %d: %w", i, err)
		}
		updated++
	}
	return updated, nil
}

// headerIndex returns the index of the column titled name, compared
// case-insensitively, or -1.
func headerIndex(header []string, name string) int {
	for i, title := range header {
		if strings.EqualFold(strings.TrimSpace(title), name) {
			return i
		}
	}
	return -1
}
