package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SessionName != "2026" || cfg.SessionLISCode != "20261" {
		t.Errorf("defaults = %q/%q", cfg.SessionName, cfg.SessionLISCode)
	}
	if cfg.BillsFeedURL != DefaultBillsFeedURL {
		t.Errorf("BillsFeedURL = %q", cfg.BillsFeedURL)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `{"session_name": "2027", "change_log_cap": 50}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SessionName != "2027" {
		t.Errorf("SessionName = %q, want override", cfg.SessionName)
	}
	if cfg.SessionLISCode != "20261" {
		t.Errorf("SessionLISCode = %q, want default", cfg.SessionLISCode)
	}
	if cfg.ChangeLogCap != 50 {
		t.Errorf("ChangeLogCap = %d", cfg.ChangeLogCap)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Errorf("Load accepted malformed config")
	}
}

func TestSession(t *testing.T) {
	cfg := &Config{SessionName: "2026", SessionLISCode: "20261"}
	s := cfg.Session()
	if s.BillURL("HB9") != "https://lis.virginia.gov/bill-details/20261/HB9" {
		t.Errorf("BillURL = %q", s.BillURL("HB9"))
	}
}

func TestTrackedBillsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	// Missing file is an empty list.
	ids, err := LoadTrackedBills(dir)
	if err != nil {
		t.Fatalf("LoadTrackedBills: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want empty", ids)
	}

	// Save canonicalizes, dedupes, and sorts.
	if err := SaveTrackedBills(dir, []string{"hb9", "HB0009", "sb2", "HB1"}); err != nil {
		t.Fatalf("SaveTrackedBills: %v", err)
	}
	ids, err = LoadTrackedBills(dir)
	if err != nil {
		t.Fatalf("LoadTrackedBills: %v", err)
	}
	want := []string{"HB1", "HB9", "SB2"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestLoadTrackedBillsNormalizesExistingFile(t *testing.T) {
	dir := t.TempDir()
	content := `{"bills": ["hb0001", "HB1", " sb0200 "]}`
	if err := os.WriteFile(filepath.Join(dir, "bills.json"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	ids, err := LoadTrackedBills(dir)
	if err != nil {
		t.Fatalf("LoadTrackedBills: %v", err)
	}
	want := []string{"HB1", "SB200"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}
