package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
	"github.com/ulucaydin/virginia-bill-tracker/internal/config"
	"github.com/ulucaydin/virginia-bill-tracker/internal/db"
	"github.com/ulucaydin/virginia-bill-tracker/internal/track"
)

// testSetup creates a temporary database, config, and base dir.
func testSetup(t *testing.T) (*sql.DB, *config.Config, string) {
	t.Helper()

	baseDir := t.TempDir()
	database, err := db.Init(baseDir)
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database, config.DefaultConfig(), baseDir
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// resultText extracts the text payload from a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatalf("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func seedSnapshot(t *testing.T, database *sql.DB) {
	t.Helper()
	snapshot := bill.Snapshot{
		"HB9": {
			BillID:     "HB9",
			Status:     bill.StatusInCommittee,
			Summary:    "Courts of Justice; procedure.",
			LastAction: "Referred to Courts",
			URL:        "https://lis.virginia.gov/bill-details/20261/HB9",
			Found:      true,
		},
	}
	events := []track.Event{{
		ID:      "01JMCPEVENT000000000000001",
		Bill:    "HB9",
		Kind:    track.KindNewTracking,
		Message: "Started tracking HB9",
	}}
	if err := db.SaveRun(database, snapshot, events, 1000); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
}

func TestHandleStatus(t *testing.T) {
	database, cfg, baseDir := testSetup(t)
	seedSnapshot(t, database)
	h := NewHandlers(database, cfg, baseDir)

	result, err := h.HandleStatus(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleStatus: %v", err)
	}
	if result.IsError {
		t.Fatalf("IsError: %s", resultText(t, result))
	}

	var out struct {
		Session string        `json:"session"`
		Bills   []bill.Record `json:"bills"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Session != "2026" || len(out.Bills) != 1 || out.Bills[0].BillID != "HB9" {
		t.Errorf("out = %+v", out)
	}
}

func TestHandleStatusSingleBillNotFound(t *testing.T) {
	database, cfg, baseDir := testSetup(t)
	h := NewHandlers(database, cfg, baseDir)

	result, err := h.HandleStatus(context.Background(), makeRequest(map[string]any{"bill": "HB404"}))
	if err != nil {
		t.Fatalf("HandleStatus: %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected error result")
	}
	if !strings.Contains(resultText(t, result), "NOT_FOUND") {
		t.Errorf("payload = %s", resultText(t, result))
	}
}

func TestHandleChanges(t *testing.T) {
	database, cfg, baseDir := testSetup(t)
	seedSnapshot(t, database)
	h := NewHandlers(database, cfg, baseDir)

	result, err := h.HandleChanges(context.Background(), makeRequest(map[string]any{"limit": 5}))
	if err != nil {
		t.Fatalf("HandleChanges: %v", err)
	}
	if result.IsError {
		t.Fatalf("IsError: %s", resultText(t, result))
	}
	if !strings.Contains(resultText(t, result), "Started tracking HB9") {
		t.Errorf("payload = %s", resultText(t, result))
	}
}

func TestHandleTrackAndUntrack(t *testing.T) {
	database, cfg, baseDir := testSetup(t)
	h := NewHandlers(database, cfg, baseDir)

	result, err := h.HandleTrack(context.Background(), makeRequest(map[string]any{
		"bills": []any{"hb0009", "SB2"},
	}))
	if err != nil {
		t.Fatalf("HandleTrack: %v", err)
	}
	if result.IsError {
		t.Fatalf("IsError: %s", resultText(t, result))
	}

	tracked, err := config.LoadTrackedBills(baseDir)
	if err != nil {
		t.Fatalf("LoadTrackedBills: %v", err)
	}
	if len(tracked) != 2 || tracked[0] != "HB9" {
		t.Errorf("tracked = %v", tracked)
	}

	result, err = h.HandleUntrack(context.Background(), makeRequest(map[string]any{
		"bills": []any{"SB2"},
	}))
	if err != nil {
		t.Fatalf("HandleUntrack: %v", err)
	}
	if result.IsError {
		t.Fatalf("IsError: %s", resultText(t, result))
	}

	tracked, err = config.LoadTrackedBills(baseDir)
	if err != nil {
		t.Fatalf("LoadTrackedBills: %v", err)
	}
	if len(tracked) != 1 || tracked[0] != "HB9" {
		t.Errorf("tracked = %v", tracked)
	}
}

func TestHandleTrackRequiresBills(t *testing.T) {
	database, cfg, baseDir := testSetup(t)
	h := NewHandlers(database, cfg, baseDir)

	result, err := h.HandleTrack(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleTrack: %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected error result")
	}
	if !strings.Contains(resultText(t, result), "INVALID_REQUEST") {
		t.Errorf("payload = %s", resultText(t, result))
	}
}

func TestHandleReport(t *testing.T) {
	database, cfg, baseDir := testSetup(t)
	seedSnapshot(t, database)
	h := NewHandlers(database, cfg, baseDir)

	result, err := h.HandleReport(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleReport: %v", err)
	}
	if result.IsError {
		t.Fatalf("IsError: %s", resultText(t, result))
	}
	if !strings.Contains(resultText(t, result), "Virginia Bill Tracker") {
		t.Errorf("payload = %s", resultText(t, result))
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"bills_status", "bogus_tool"})
	if len(unknown) != 1 || unknown[0] != "bogus_tool" {
		t.Errorf("unknown = %v", unknown)
	}
}

func TestNewServerHonorsDisabledTools(t *testing.T) {
	database, cfg, baseDir := testSetup(t)
	cfg.DisabledTools = []string{"bills_track", "bills_untrack"}

	s := NewServer(database, cfg, baseDir, "test")
	if s == nil {
		t.Fatalf("NewServer returned nil")
	}
}
