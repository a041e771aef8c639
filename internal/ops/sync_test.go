package ops

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
	"github.com/ulucaydin/virginia-bill-tracker/internal/config"
	"github.com/ulucaydin/virginia-bill-tracker/internal/db"
	"github.com/ulucaydin/virginia-bill-tracker/internal/errors"
	"github.com/ulucaydin/virginia-bill-tracker/internal/track"
)

var syncNow = time.Date(2026, 2, 1, 6, 0, 0, 0, time.UTC)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testConfig() *config.Config {
	return config.DefaultConfig()
}

func hb9Row(passedHouse string) bill.RawBillRow {
	return bill.RawBillRow{
		BillID:              "HB0009",
		Description:         "Courts of Justice; procedure.",
		Patron:              "Smith",
		LastHouseAction:     "Referred to Courts",
		LastHouseActionDate: "26/01/14",
		PassedHouse:         passedHouse,
	}
}

func TestSyncFirstRunEmitsNewTracking(t *testing.T) {
	database := testDB(t)

	out, err := Sync(database, testConfig(), SyncInput{
		TrackedBills: []string{"hb9"},
		BillRows:     []bill.RawBillRow{hb9Row("N")},
		Now:          syncNow,
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if out.BillCount != 1 {
		t.Errorf("BillCount = %d, want 1", out.BillCount)
	}
	if len(out.Events) != 1 || out.Events[0].Kind != track.KindNewTracking {
		t.Fatalf("Events = %+v, want single new_tracking", out.Events)
	}
	if out.ChangeLogLen != 1 {
		t.Errorf("ChangeLogLen = %d, want 1", out.ChangeLogLen)
	}
}

func TestSyncDetectsStatusChange(t *testing.T) {
	database := testDB(t)
	cfg := testConfig()

	// Seed a previous run where HB9 sits in committee.
	previous := bill.Snapshot{
		"HB9": {
			BillID:     "HB9",
			Status:     bill.StatusInCommittee,
			LastAction: "Referred to Courts",
			Found:      true,
		},
	}
	if err := db.SaveRun(database, previous, nil, 1000); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	out, err := Sync(database, cfg, SyncInput{
		TrackedBills: []string{"HB9"},
		BillRows:     []bill.RawBillRow{hb9Row("Y")},
		Now:          syncNow,
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if len(out.Events) != 1 {
		t.Fatalf("got %d events, want exactly 1: %+v", len(out.Events), out.Events)
	}
	e := out.Events[0]
	if e.Kind != track.KindStatusChange || e.Bill != "HB9" {
		t.Errorf("event = %+v", e)
	}
	if e.PreviousStatus != bill.StatusInCommittee || e.CurrentStatus != bill.StatusPassedHouse {
		t.Errorf("status pair = %q -> %q", e.PreviousStatus, e.CurrentStatus)
	}
}

func TestSyncIdempotentWhenNothingChanges(t *testing.T) {
	database := testDB(t)
	cfg := testConfig()
	input := SyncInput{
		TrackedBills: []string{"HB9"},
		BillRows:     []bill.RawBillRow{hb9Row("N")},
		Now:          syncNow,
	}

	if _, err := Sync(database, cfg, input); err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	out, err := Sync(database, cfg, input)
	if err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if len(out.Events) != 0 {
		t.Errorf("second identical sync produced events: %+v", out.Events)
	}
	if out.ChangeLogLen != 1 {
		t.Errorf("ChangeLogLen = %d, want 1 (only the first run's event)", out.ChangeLogLen)
	}
}

func TestSyncEmptyFeedIsDataUnavailable(t *testing.T) {
	database := testDB(t)
	cfg := testConfig()

	out, err := Sync(database, cfg, SyncInput{
		TrackedBills: []string{"HB9", "SB2"},
		Now:          syncNow,
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	// Unresolvable records produce no events but are persisted.
	if len(out.Events) != 0 {
		t.Errorf("events = %+v, want none", out.Events)
	}

	status, err := Status(database, cfg, StatusInput{})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	for _, rec := range status.Bills {
		if rec.Status != bill.StatusDataUnavailable {
			t.Errorf("%s status = %q, want %q", rec.BillID, rec.Status, bill.StatusDataUnavailable)
		}
	}
}

func TestSyncRequiresTrackedBills(t *testing.T) {
	database := testDB(t)
	_, err := Sync(database, testConfig(), SyncInput{Now: syncNow})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestSyncPersistedSnapshotFeedsNextRun(t *testing.T) {
	database := testDB(t)
	cfg := testConfig()

	if _, err := Sync(database, cfg, SyncInput{
		TrackedBills: []string{"HB9"},
		BillRows:     []bill.RawBillRow{hb9Row("N")},
		Now:          syncNow,
	}); err != nil {
		t.Fatalf("first Sync: %v", err)
	}

	// Same bill, new action text: exactly one action_update.
	row := hb9Row("N")
	row.LastHouseAction = "Reported from Courts (12-Y 10-N)"
	row.LastHouseActionDate = "26/01/20"
	out, err := Sync(database, cfg, SyncInput{
		TrackedBills: []string{"HB9"},
		BillRows:     []bill.RawBillRow{row},
		Now:          syncNow.Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if len(out.Events) != 1 || out.Events[0].Kind != track.KindActionUpdate {
		t.Fatalf("events = %+v, want single action_update", out.Events)
	}
	if out.Events[0].CurrentAction != "Reported from Courts (12-Y 10-N)" {
		t.Errorf("CurrentAction = %q", out.Events[0].CurrentAction)
	}
}
