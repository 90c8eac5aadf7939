package tabular

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemTable is an in-memory Table implementation. It is used by the engine
// tests and is safe for concurrent use.
type MemTable struct {
	mu     sync.RWMutex
	name   string
	header []string
	rows   [][]any
}

var _ Table = (*MemTable)(nil)

// NewMemTable creates an empty in-memory table with the given header.
func NewMemTable(name string, header []string) *MemTable {
	return &MemTable{
		name:   name,
		header: append([]string(nil), header...),
	}
}

// Name returns the table name.
func (m *MemTable) Name() string {
	return m.name
}

// Header returns the header row.
func (m *MemTable) Header(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.header...), nil
}

// Rows returns a copy of all data rows padded to header width.
func (m *MemTable) Rows(ctx context.Context) ([][]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([][]any, len(m.rows))
	for i, r := range m.rows {
		row := make([]any, len(m.header))
		copy(row, r)
		for j := len(r); j < len(m.header); j++ {
			row[j] = ""
		}
		out[i] = row
	}
	return out, nil
}

// IDs returns column A for every data row.
func (m *MemTable) IDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, len(m.rows))
	for i, r := range m.rows {
		if len(r) > 0 {
			ids[i] = fmt.Sprint(r[0])
		}
	}
	return ids, nil
}

// Len returns the number of data rows.
func (m *MemTable) Len(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows), nil
}

// Append adds rows at the bottom of the table.
func (m *MemTable) Append(ctx context.Context, rows [][]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range rows {
		m.rows = append(m.rows, append([]any(nil), r...))
	}
	return nil
}

// UpdateRow overwrites row index starting at column A.
func (m *MemTable) UpdateRow(ctx context.Context, index int, values []any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.rows) {
		return fmt.Errorf("UpdateRow: row %d out of range (%d rows)", index, len(m.rows))
	}
	row := m.rows[index]
	for len(row) < len(values) {
		row = append(row, "")
	}
	copy(row, values)
	m.rows[index] = row
	return nil
}

// UpdateCell overwrites a single cell.
func (m *MemTable) UpdateCell(ctx context.Context, index, col int, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.rows) {
		return fmt.Errorf("UpdateCell: row %d out of range (%d rows)", index, len(m.rows))
	}
	row := m.rows[index]
	for len(row) <= col {
		row = append(row, "")
	}
	row[col] = value
	m.rows[index] = row
	return nil
}

// SortRange sorts count rows starting at index ascending by col. Numeric
// cells compare numerically, everything else compares as strings.
func (m *MemTable) SortRange(ctx context.Context, index, count, col int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || count < 0 || index+count > len(m.rows) {
		return fmt.Errorf("SortRange: range [%d,%d) out of bounds (%d rows)", index, index+count, len(m.rows))
	}

	span := m.rows[index : index+count]
	sort.SliceStable(span, func(i, j int) bool {
		return lessCell(cellAt(span[i], col), cellAt(span[j], col))
	})
	return nil
}

func cellAt(row []any, col int) any {
	if col < len(row) {
		return row[col]
	}
	return ""
}

func lessCell(a, b any) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af < bf
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}
