package ops

import (
	"database/sql"
	"sort"

	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
	"github.com/ulucaydin/virginia-bill-tracker/internal/config"
	"github.com/ulucaydin/virginia-bill-tracker/internal/db"
	"github.com/ulucaydin/virginia-bill-tracker/internal/errors"
)

// StatusInput contains parameters for the Status operation.
type StatusInput struct {
	// BillID limits the output to one bill (canonical or raw form).
	BillID string
}

// StatusOutput contains the result of the Status operation.
type StatusOutput struct {
	Session string        `json:"session"`
	Bills   []bill.Record `json:"bills"`
}

// Status returns the most recent snapshot, sorted by canonical bill ID,
// or a single bill when input.BillID is set.
func Status(database *sql.DB, cfg *config.Config, input StatusInput) (*StatusOutput, error) {
	snapshot, err := db.LoadSnapshot(database)
	if err != nil {
		return nil, err
	}

	if input.BillID != "" {
		id := bill.NormalizeID(input.BillID)
		rec, ok := snapshot[id]
		if !ok {
			return nil, errors.NewNotFound(id)
		}
		return &StatusOutput{
			Session: cfg.SessionName,
			Bills:   []bill.Record{rec},
		}, nil
	}

	bills := make([]bill.Record, 0, len(snapshot))
	for _, rec := range snapshot {
		bills = append(bills, rec)
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].BillID < bills[j].BillID })

	return &StatusOutput{
		Session: cfg.SessionName,
		Bills:   bills,
	}, nil
}
