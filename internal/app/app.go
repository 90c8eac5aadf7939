// Package app is the composition root shared by the command binaries. It
// loads configuration and wires the API client, the property store, the
// spreadsheet tables and the engines that run over them.
package app

import (
	"context"
	"fmt"

	"github.com/dolla-nz/centsync/internal/centapi"
	"github.com/dolla-nz/centsync/internal/config"
	"github.com/dolla-nz/centsync/internal/ingest"
	"github.com/dolla-nz/centsync/internal/orchestrator"
	"github.com/dolla-nz/centsync/internal/props"
	"github.com/dolla-nz/centsync/internal/rules"
	"github.com/dolla-nz/centsync/internal/store"
	"github.com/dolla-nz/centsync/internal/tabular"
)

// App bundles the wired services of one binary.
type App struct {
	Config config.Config
	API    centapi.Service
	Props  *props.Store

	Accounts     tabular.Table
	Balances     tabular.Table
	Transactions tabular.Table
	Rules        tabular.Table

	Ingest       *ingest.Engine
	RuleEngine   *rules.Engine
	Orchestrator *orchestrator.Orchestrator
}

// Bootstrap loads configuration and wires every service against the
// configured spreadsheet.
func Bootstrap(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("Bootstrap: %w", err)
	}

	properties, err := props.Open(cfg.State.Path)
	if err != nil {
		return nil, fmt.Errorf("Bootstrap: %w", err)
	}

	sheets, err := tabular.NewSheetsStore(ctx, cfg.Spreadsheet.ID, cfg.Spreadsheet.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("Bootstrap: %w", err)
	}

	a := &App{
		Config: cfg,
		API:    centapi.NewClient(cfg.API.BaseURL, cfg.API.TaxonomyURL),
		Props:  properties,

		Accounts:     sheets.Table(store.Accounts.Sheet, store.Accounts.Header()),
		Balances:     sheets.Table(store.BalanceHistory.Sheet, store.BalanceHistory.Header()),
		Transactions: sheets.Table(store.Transactions.Sheet, store.Transactions.Header()),
		Rules:        sheets.Table(store.CustomCategories.Sheet, store.CustomCategories.Header()),
	}

	a.Ingest = ingest.NewEngine(a.API, a.Accounts, a.Balances, a.Transactions)
	a.RuleEngine = rules.NewEngine(a.Rules, a.Transactions)
	a.Orchestrator = orchestrator.New(a.Props, a.Ingest, a.RuleEngine)

	return a, nil
}
