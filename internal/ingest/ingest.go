// Package ingest drives incremental sync of accounts, balance snapshots and
// transactions from the remote aggregation API into the tabular store.
// Every run re-reads current store state; nothing is cached across runs, so
// dedup by external ID makes re-ingestion idempotent.
package ingest

import (
	"time"

	"github.com/dolla-nz/centsync/internal/centapi"
	"github.com/dolla-nz/centsync/internal/store"
	"github.com/dolla-nz/centsync/internal/tabular"
)

// Engine performs the three sync operations against one set of tables.
type Engine struct {
	api          centapi.Service
	accounts     tabular.Table
	balances     tabular.Table
	transactions tabular.Table
	now          func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an ingestion engine over the given API client and tables.
func NewEngine(api centapi.Service, accounts, balances, transactions tabular.Table, opts ...Option) *Engine {
	e := &Engine{
		api:          api,
		accounts:     accounts,
		balances:     balances,
		transactions: transactions,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// accountRecord maps an API account onto the stored record shape.
func accountRecord(acc centapi.Account) store.Account {
	return store.Account{
		ID:          acc.ID,
		Institution: acc.Connection.Name,
		Name:        acc.Name,
		Number:      acc.FormattedAccount,
		Type:        acc.Type,
		Current:     acc.Balance.Current,
		Available:   acc.Balance.Available,
		Status:      acc.Status,
		Refreshed:   acc.Refreshed.Balance,
	}
}
