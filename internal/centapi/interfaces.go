package centapi

import (
	"context"
	"time"
)

// Service defines the interface for the remote sync API.
// This interface enables mocking and testing of the ingestion and
// orchestration logic without network access.
type Service interface {
	// ListAccounts fetches the full current account list. The API returns
	// the list in a single page.
	ListAccounts(ctx context.Context, token string) ([]Account, error)

	// ListTransactions fetches one page of transactions dated on or after
	// start. cursor must be the NextCursor of the previous page, or "" for
	// the first page.
	ListTransactions(ctx context.Context, token string, start time.Time, cursor string) (TransactionPage, error)

	// FetchCategoryTaxonomy fetches the public category taxonomy. No
	// authentication is required.
	FetchCategoryTaxonomy(ctx context.Context) ([]TaxonomyEntry, error)

	// RevokeToken revokes the stored bearer token upstream.
	RevokeToken(ctx context.Context, token string) error
}
