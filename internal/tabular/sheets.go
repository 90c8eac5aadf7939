package tabular

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsStore wraps one Google Sheets spreadsheet and hands out Table views
// over its tabs. It holds a shared Sheets service to avoid creating a new
// connection for each operation.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsStore creates a SheetsStore for the given spreadsheet using a
// service-account credentials file.
func NewSheetsStore(ctx context.Context, spreadsheetID, credentialsFile string) (*SheetsStore, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("NewSheetsStore: creating service: %w", err)
	}
	return &SheetsStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
	}, nil
}

// Table returns a Table over the named tab. The tab is created with the
// given header row (and a frozen first row) on first use.
func (s *SheetsStore) Table(name string, header []string) *SheetsTable {
	return &SheetsTable{
		store:  s,
		name:   name,
		header: append([]string(nil), header...),
	}
}

// SheetsTable is a Table backed by one tab of a Google Sheets spreadsheet.
type SheetsTable struct {
	store  *SheetsStore
	name   string
	header []string

	mu      sync.Mutex
	sheetID int64
	ensured bool
}

var _ Table = (*SheetsTable)(nil)

// Name returns the tab name.
func (t *SheetsTable) Name() string {
	return t.name
}

// ensure resolves the tab's sheet ID, creating the tab with its header row
// if it does not exist yet.
func (t *SheetsTable) ensure(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ensured {
		return nil
	}

	doc, err := t.store.svc.Spreadsheets.Get(t.store.spreadsheetID).
		Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ensure %s: fetching spreadsheet: %w", t.name, err)
	}

	for _, sh := range doc.Sheets {
		if sh.Properties != nil && sh.Properties.Title == t.name {
			t.sheetID = sh.Properties.SheetId
			t.ensured = true
			return nil
		}
	}

	// Tab is missing: add it and write the header row.
	resp, err := t.store.svc.Spreadsheets.BatchUpdate(t.store.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: t.name,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 1,
					},
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ensure %s: adding sheet: %w", t.name, err)
	}
	t.sheetID = resp.Replies[0].AddSheet.Properties.SheetId

	headerRow := make([]any, len(t.header))
	for i, h := range t.header {
		headerRow[i] = h
	}
	_, err = t.store.svc.Spreadsheets.Values.Update(t.store.spreadsheetID,
		fmt.Sprintf("'%s'!A1", t.name),
		&sheets.ValueRange{Values: [][]any{headerRow}},
	).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ensure %s: writing header: %w", t.name, err)
	}

	t.ensured = true
	return nil
}

// Header returns the header row as stored in the sheet.
func (t *SheetsTable) Header(ctx context.Context) ([]string, error) {
	if err := t.ensure(ctx); err != nil {
		return nil, err
	}

	vr, err := t.store.svc.Spreadsheets.Values.Get(t.store.spreadsheetID,
		fmt.Sprintf("'%s'!1:1", t.name),
	).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("Header %s: %w", t.name, err)
	}
	if len(vr.Values) == 0 {
		return append([]string(nil), t.header...), nil
	}

	header := make([]string, len(vr.Values[0]))
	for i, v := range vr.Values[0] {
		header[i] = fmt.Sprint(v)
	}
	return header, nil
}

// Rows returns all data rows padded to header width.
func (t *SheetsTable) Rows(ctx context.Context) ([][]any, error) {
	if err := t.ensure(ctx); err != nil {
		return nil, err
	}

	vr, err := t.store.svc.Spreadsheets.Values.Get(t.store.spreadsheetID,
		fmt.Sprintf("'%s'!A2:%s", t.name, columnName(len(t.header)-1)),
	).ValueRenderOption("UNFORMATTED_VALUE").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("Rows %s: %w", t.name, err)
	}

	rows := make([][]any, len(vr.Values))
	for i, r := range vr.Values {
		row := make([]any, len(t.header))
		copy(row, r)
		for j := len(r); j < len(t.header); j++ {
			row[j] = ""
		}
		rows[i] = row
	}
	return rows, nil
}

// IDs returns column A for every data row.
func (t *SheetsTable) IDs(ctx context.Context) ([]string, error) {
	if err := t.ensure(ctx); err != nil {
		return nil, err
	}

	vr, err := t.store.svc.Spreadsheets.Values.Get(t.store.spreadsheetID,
		fmt.Sprintf("'%s'!A2:A", t.name),
	).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("IDs %s: %w", t.name, err)
	}

	ids := make([]string, len(vr.Values))
	for i, r := range vr.Values {
		if len(r) > 0 {
			ids[i] = fmt.Sprint(r[0])
		}
	}
	return ids, nil
}

// Len returns the number of data rows.
func (t *SheetsTable) Len(ctx context.Context) (int, error) {
	ids, err := t.IDs(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Append adds rows at the bottom of the tab in a single write.
func (t *SheetsTable) Append(ctx context.Context, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	if err := t.ensure(ctx); err != nil {
		return err
	}

	_, err := t.store.svc.Spreadsheets.Values.Append(t.store.spreadsheetID,
		fmt.Sprintf("'%s'!A1", t.name),
		&sheets.ValueRange{Values: rows},
	).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("Append %s: %w", t.name, err)
	}
	return nil
}

// UpdateRow overwrites row index starting at column A. Only len(values)
// columns are written.
func (t *SheetsTable) UpdateRow(ctx context.Context, index int, values []any) error {
	if err := t.ensure(ctx); err != nil {
		return err
	}

	rng := fmt.Sprintf("'%s'!A%d:%s%d", t.name, index+2, columnName(len(values)-1), index+2)
	_, err := t.store.svc.Spreadsheets.Values.Update(t.store.spreadsheetID, rng,
		&sheets.ValueRange{Values: [][]any{values}},
	).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("UpdateRow %s: %w", t.name, err)
	}
	return nil
}

// UpdateCell overwrites a single cell of row index.
func (t *SheetsTable) UpdateCell(ctx context.Context, index, col int, value any) error {
	if err := t.ensure(ctx); err != nil {
		return err
	}

	rng := fmt.Sprintf("'%s'!%s%d", t.name, columnName(col), index+2)
	_, err := t.store.svc.Spreadsheets.Values.Update(t.store.spreadsheetID, rng,
		&sheets.ValueRange{Values: [][]any{{value}}},
	).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("UpdateCell %s: %w", t.name, err)
	}
	return nil
}

// SortRange sorts count data rows starting at index ascending by col using a
// server-side sort, leaving the rest of the tab untouched.
func (t *SheetsTable) SortRange(ctx context.Context, index, count, col int) error {
	if count <= 0 {
		return nil
	}
	if err := t.ensure(ctx); err != nil {
		return err
	}

	_, err := t.store.svc.Spreadsheets.BatchUpdate(t.store.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			SortRange: &sheets.SortRangeRequest{
				Range: &sheets.GridRange{
					SheetId:          t.sheetID,
					StartRowIndex:    int64(index + 1),
					EndRowIndex:      int64(index + 1 + count),
					StartColumnIndex: 0,
					EndColumnIndex:   int64(len(t.header)),
				},
				SortSpecs: []*sheets.SortSpec{{
					DimensionIndex: int64(col),
					SortOrder:      "ASCENDING",
				}},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("SortRange %s: %w", t.name, err)
	}
	return nil
}

// columnName converts a 0-based column index to its A1 letter form.
func columnName(col int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return name
}
