package centapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestListAccounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sync/accounts" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("unexpected auth header: %q", got)
		}
		fmt.Fprint(w, `{"items":[
			{"_id":"acc_1","connection":{"name":"ANZ"},"name":"Everyday","formatted_account":"01-0101-0000001-00",
			 "type":"CHECKING","status":"ACTIVE","balance":{"current":150.55,"available":120},
			 "refreshed":{"balance":"2024-03-01T04:00:00Z"}},
			{"_id":"acc_2","connection":{"name":"Kiwibank"},"name":"Savings","formatted_account":"38-9000-0000002-00",
			 "type":"SAVINGS","status":"INACTIVE","balance":{"current":10,"available":10},
			 "refreshed":{"balance":"2024-03-01T04:00:00Z"}}
		]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	accounts, err := c.ListAccounts(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].ID != "acc_1" || accounts[0].Connection.Name != "ANZ" {
		t.Errorf("unexpected first account: %+v", accounts[0])
	}
	if !accounts[0].Balance.Current.Equal(mustDecimal(t, "150.55")) {
		t.Errorf("unexpected balance: %s", accounts[0].Balance.Current)
	}
}

func TestListTransactions_PaginationTermination(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("start") == "" {
			t.Error("expected start query parameter")
		}
		switch r.URL.Query().Get("cursor") {
		case "":
			fmt.Fprint(w, `{"items":[{"_id":"t1","_account":"acc_1","date":"2024-02-01T00:00:00Z","description":"one","amount":-5}],"cursor":{"next":"abc"}}`)
		case "abc":
			fmt.Fprint(w, `{"items":[{"_id":"t2","_account":"acc_1","date":"2024-02-02T00:00:00Z","description":"two","amount":-6}],"cursor":{"next":"def"}}`)
		case "def":
			fmt.Fprint(w, `{"items":[{"_id":"t3","_account":"acc_1","date":"2024-02-03T00:00:00Z","description":"three","amount":-7}],"cursor":{"next":"null"}}`)
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	cursor := ""
	for {
		page, err := c.ListTransactions(context.Background(), "tok", start, cursor)
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		for _, item := range page.Items {
			ids = append(ids, item.ID)
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	if calls != 3 {
		t.Errorf("expected exactly 3 fetch calls, got %d", calls)
	}
	if len(ids) != 3 || ids[0] != "t1" || ids[2] != "t3" {
		t.Errorf("unexpected ids: %v", ids)
	}
}

func TestListTransactions_MissingCursorEndsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	page, err := c.ListTransactions(context.Background(), "tok", time.Now(), "")
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if page.NextCursor != "" {
		t.Errorf("expected empty cursor, got %q", page.NextCursor)
	}
}

func TestListAccounts_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": not json`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.ListAccounts(context.Background(), "tok"); err == nil {
		t.Error("expected error for malformed response")
	}
}

func TestListAccounts_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.ListAccounts(context.Background(), "bad"); err == nil {
		t.Error("expected error for 401 response")
	}
}

func TestFetchCategoryTaxonomy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("taxonomy fetch must be unauthenticated")
		}
		fmt.Fprint(w, `[
			{"name":"Supermarkets","groups":{"personal_finance":{"name":"Food"}}},
			{"name":"Cafes","groups":{"personal_finance":{"name":"Food"}}},
			{"name":"Mystery"}
		]`)
	}))
	defer srv.Close()

	c := NewClient("", srv.URL)
	entries, err := c.FetchCategoryTaxonomy(context.Background())
	if err != nil {
		t.Fatalf("FetchCategoryTaxonomy failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].GroupName() != "Food" {
		t.Errorf("unexpected group: %q", entries[0].GroupName())
	}
	if entries[2].GroupName() != "" {
		t.Errorf("expected empty group for entry without groups, got %q", entries[2].GroupName())
	}
}

func TestRevokeToken(t *testing.T) {
	var gotMethod, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if err := c.RevokeToken(context.Background(), "tok-x"); err != nil {
		t.Fatalf("RevokeToken failed: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("expected DELETE, got %s", gotMethod)
	}
	if gotAuth != "Bearer tok-x" {
		t.Errorf("unexpected auth header: %q", gotAuth)
	}
}
