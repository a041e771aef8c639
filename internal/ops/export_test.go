package ops

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
	"github.com/ulucaydin/virginia-bill-tracker/internal/db"
	"github.com/ulucaydin/virginia-bill-tracker/internal/track"
)

func TestExportWritesDocument(t *testing.T) {
	baseDir := t.TempDir()
	database := testDB(t)
	cfg := testConfig()

	snapshot := bill.Snapshot{
		"HB9": {BillID: "HB9", Status: bill.StatusInCommittee, Summary: "s", URL: "u", Found: true},
	}
	events := []track.Event{{
		ID:      "01JEXPORTEVENT000000000001",
		Bill:    "HB9",
		Kind:    track.KindNewTracking,
		Message: "Started tracking HB9",
	}}
	if err := db.SaveRun(database, snapshot, events, 1000); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	path := filepath.Join(baseDir, "out.json")
	out, err := Export(database, cfg, ExportInput{Path: path})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if out.Path != path || out.BillCount != 1 || out.LogLength != 1 {
		t.Errorf("out = %+v", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var doc struct {
		Session string        `json:"session"`
		Bills   []bill.Record `json:"bills"`
		Changes []track.Event `json:"changes"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc.Session != "2026" || len(doc.Bills) != 1 || len(doc.Changes) != 1 {
		t.Errorf("doc = %+v", doc)
	}
}

func TestExportDefaultPath(t *testing.T) {
	baseDir := t.TempDir()
	database := testDB(t)

	out, err := Export(database, testConfig(), ExportInput{BaseDir: baseDir})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Dir(out.Path) != filepath.Join(baseDir, "exports") {
		t.Errorf("Path = %q, want under exports dir", out.Path)
	}
	if _, err := os.Stat(out.Path); err != nil {
		t.Errorf("export file missing: %v", err)
	}
}
