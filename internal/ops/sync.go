package ops

import (
	"database/sql"
	"time"

	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
	"github.com/ulucaydin/virginia-bill-tracker/internal/config"
	"github.com/ulucaydin/virginia-bill-tracker/internal/db"
	"github.com/ulucaydin/virginia-bill-tracker/internal/errors"
	"github.com/ulucaydin/virginia-bill-tracker/internal/track"
)

// SyncInput contains parameters for the Sync operation. Feed rows
// arrive already parsed; retrieval belongs to the caller so that a
// run's state transition stays free of I/O concerns. Empty BillRows is
// valid and resolves every bill to "Data unavailable".
type SyncInput struct {
	TrackedBills []string
	BillRows     []bill.RawBillRow
	SummaryRows  []bill.RawSummaryRow
	Now          time.Time // zero means time.Now
}

// SyncOutput contains the result of the Sync operation.
type SyncOutput struct {
	Session      string        `json:"session"`
	BillCount    int           `json:"bill_count"`
	Events       []track.Event `json:"changes"`
	ChangeLogLen int           `json:"change_log_len"`
}

// Sync runs one tracking pass: resolve the current snapshot from the
// feeds, diff it against the previous run, and persist snapshot plus
// appended change log in a single transaction. The saved snapshot
// becomes the next run's previous state verbatim.
func Sync(database *sql.DB, cfg *config.Config, input SyncInput) (*SyncOutput, error) {
	if len(input.TrackedBills) == 0 {
		return nil, errors.NewInvalidRequest("no bills are being tracked; add some with the track command")
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	previous, err := db.LoadSnapshot(database)
	if err != nil {
		return nil, err
	}

	current := bill.Resolve(input.TrackedBills, input.BillRows, input.SummaryRows, cfg.Session())
	events := track.Diff(previous, current, now)

	if err := db.SaveRun(database, current, events, cfg.ChangeLogCap); err != nil {
		return nil, err
	}

	logLen, err := db.CountEvents(database)
	if err != nil {
		return nil, err
	}

	if events == nil {
		events = []track.Event{}
	}
	return &SyncOutput{
		Session:      cfg.SessionName,
		BillCount:    len(current),
		Events:       events,
		ChangeLogLen: logLen,
	}, nil
}
