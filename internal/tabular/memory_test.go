package tabular

import (
	"context"
	"testing"
)

func TestMemTable_AppendAndRows(t *testing.T) {
	ctx := context.Background()
	m := NewMemTable("Test", []string{"ID", "Name", "Amount"})

	if err := m.Append(ctx, [][]any{
		{"a", "one", 1.0},
		{"b", "two"},
	}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	rows, err := m.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Short rows are padded to header width.
	if len(rows[1]) != 3 || rows[1][2] != "" {
		t.Errorf("expected padded row, got %v", rows[1])
	}

	ids, err := m.IDs(ctx)
	if err != nil {
		t.Fatalf("IDs failed: %v", err)
	}
	if ids[0] != "a" || ids[1] != "b" {
		t.Errorf("unexpected ids: %v", ids)
	}
}

func TestMemTable_UpdateRowPartialWidth(t *testing.T) {
	ctx := context.Background()
	m := NewMemTable("Test", []string{"ID", "Name", "Extra"})
	if err := m.Append(ctx, [][]any{{"a", "one", "keep"}}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// A two-column update must leave the third column alone.
	if err := m.UpdateRow(ctx, 0, []any{"a", "renamed"}); err != nil {
		t.Fatalf("UpdateRow failed: %v", err)
	}

	rows, _ := m.Rows(ctx)
	if rows[0][1] != "renamed" {
		t.Errorf("expected renamed, got %v", rows[0][1])
	}
	if rows[0][2] != "keep" {
		t.Errorf("expected trailing column untouched, got %v", rows[0][2])
	}
}

func TestMemTable_UpdateCell(t *testing.T) {
	ctx := context.Background()
	m := NewMemTable("Test", []string{"ID", "Status"})
	if err := m.Append(ctx, [][]any{{"a", "ACTIVE"}}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if err := m.UpdateCell(ctx, 0, 1, "DELETED"); err != nil {
		t.Fatalf("UpdateCell failed: %v", err)
	}
	rows, _ := m.Rows(ctx)
	if rows[0][1] != "DELETED" {
		t.Errorf("expected DELETED, got %v", rows[0][1])
	}

	if err := m.UpdateCell(ctx, 5, 1, "x"); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestMemTable_SortRange(t *testing.T) {
	ctx := context.Background()
	m := NewMemTable("Test", []string{"ID", "Date"})
	if err := m.Append(ctx, [][]any{
		{"old", "2024-01-05T00:00:00Z"}, // outside the sorted span
		{"c", "2024-02-03T00:00:00Z"},
		{"a", "2024-02-01T00:00:00Z"},
		{"b", "2024-02-02T00:00:00Z"},
	}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Sort only the last three rows by the date column.
	if err := m.SortRange(ctx, 1, 3, 1); err != nil {
		t.Fatalf("SortRange failed: %v", err)
	}

	ids, _ := m.IDs(ctx)
	want := []string{"old", "a", "b", "c"}
	for i, w := range want {
		if ids[i] != w {
			t.Fatalf("row %d: expected %s, got %s (all: %v)", i, w, ids[i], ids)
		}
	}
}
