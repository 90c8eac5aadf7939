package centapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL     = "https://api.cent.nz/v1"
	defaultTaxonomyURL = "https://nzfcc.org/downloads/categories.json"
	defaultTimeout     = 60 * time.Second

	accountsPath     = "/sync/accounts"
	transactionsPath = "/sync/transactions"
	authPath         = "/auth"
)

// Client handles communication with the sync API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	taxonomyURL string
}

// Ensure Client implements Service
var _ Service = (*Client)(nil)

// NewClient creates a new sync API client. Empty baseURL or taxonomyURL
// select the production endpoints.
func NewClient(baseURL, taxonomyURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if taxonomyURL == "" {
		taxonomyURL = defaultTaxonomyURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:     baseURL,
		taxonomyURL: taxonomyURL,
	}
}

// ListAccounts fetches the full current account list.
func (c *Client) ListAccounts(ctx context.Context, token string) ([]Account, error) {
	body, err := c.get(ctx, c.baseURL+accountsPath, token)
	if err != nil {
		return nil, fmt.Errorf("ListAccounts: %w", err)
	}

	var resp accountsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ListAccounts: parsing response: %w", err)
	}
	return resp.Items, nil
}

// ListTransactions fetches one page of transactions with the given date floor.
// The returned NextCursor is "" once pagination is complete; the upstream API
// signals completion with a missing cursor or the literal string "null".
func (c *Client) ListTransactions(ctx context.Context, token string, start time.Time, cursor string) (TransactionPage, error) {
	q := url.Values{}
	q.Set("start", start.UTC().Format(time.RFC3339))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	body, err := c.get(ctx, c.baseURL+transactionsPath+"?"+q.Encode(), token)
	if err != nil {
		return TransactionPage{}, fmt.Errorf("ListTransactions: %w", err)
	}

	var resp transactionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return TransactionPage{}, fmt.Errorf("ListTransactions: parsing response: %w", err)
	}

	page := TransactionPage{Items: resp.Items}
	if resp.Cursor.Next != nil && *resp.Cursor.Next != "null" {
		page.NextCursor = *resp.Cursor.Next
	}
	return page, nil
}

// FetchCategoryTaxonomy fetches the public category taxonomy from the
// taxonomy host. The endpoint is unauthenticated.
func (c *Client) FetchCategoryTaxonomy(ctx context.Context) ([]TaxonomyEntry, error) {
	body, err := c.get(ctx, c.taxonomyURL, "")
	if err != nil {
		return nil, fmt.Errorf("FetchCategoryTaxonomy: %w", err)
	}

	var entries []TaxonomyEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("FetchCategoryTaxonomy: parsing response: %w", err)
	}
	return entries, nil
}

// RevokeToken revokes the bearer token upstream.
func (c *Client) RevokeToken(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+authPath, nil)
	if err != nil {
		return fmt.Errorf("RevokeToken: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("RevokeToken: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("RevokeToken: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// get performs an authenticated GET and returns the response body. An empty
// token sends no Authorization header.
func (c *Client) get(ctx context.Context, rawURL, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
