package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.API.BaseURL != "https://api.cent.nz/v1" {
		t.Errorf("unexpected api base url: %s", c.API.BaseURL)
	}
	if c.API.TaxonomyURL != "https://nzfcc.org/downloads/categories.json" {
		t.Errorf("unexpected taxonomy url: %s", c.API.TaxonomyURL)
	}
	if c.Sync.Timezone != "Pacific/Auckland" {
		t.Errorf("unexpected timezone: %s", c.Sync.Timezone)
	}
	if c.Sync.Hour != 1 {
		t.Errorf("unexpected sync hour: %d", c.Sync.Hour)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CENTSYNC_SPREADSHEET_ID", "sheet-123")
	t.Setenv("CENTSYNC_SYNC_HOUR", "6")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Spreadsheet.ID != "sheet-123" {
		t.Errorf("expected env override for spreadsheet id, got %q", c.Spreadsheet.ID)
	}
	if c.Sync.Hour != 6 {
		t.Errorf("expected env override for sync hour, got %d", c.Sync.Hour)
	}
}

func TestLoad_InvalidHour(t *testing.T) {
	t.Setenv("CENTSYNC_SYNC_HOUR", "25")

	if _, err := Load(); err == nil {
		t.Error("expected error for out-of-range sync hour")
	}
}
