package db

import (
	"database/sql"
	"time"

	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
	"github.com/ulucaydin/virginia-bill-tracker/internal/errors"
	"github.com/ulucaydin/virginia-bill-tracker/internal/track"
)

// LoadSnapshot reads the previous run's full snapshot. An empty table
// (first run) is an empty snapshot, not an error.
func LoadSnapshot(db *sql.DB) (bill.Snapshot, error) {
	rows, err := db.Query(`
		SELECT bill_id, status, summary, last_action, last_action_date,
			sponsor, bill_url, found
		FROM snapshots
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	snapshot := bill.Snapshot{}
	for rows.Next() {
		var rec bill.Record
		var sponsor sql.NullString
		var found int
		if err := rows.Scan(&rec.BillID, &rec.Status, &rec.Summary,
			&rec.LastAction, &rec.LastActionDate, &sponsor, &rec.URL, &found); err != nil {
			return nil, errors.NewInternal(err)
		}
		rec.Sponsor = sponsor.String
		rec.Found = found != 0
		snapshot[rec.BillID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return snapshot, nil
}

// SaveRun replaces the snapshot and appends this run's events in one
// transaction. Snapshot and change log always land together so a crash
// can never persist one without the other. The cap is applied by
// track.AppendCapped over the stored log in append order, then the log
// is rewritten wholesale, so a later-appended event is never evicted
// before an earlier one.
func SaveRun(db *sql.DB, snapshot bill.Snapshot, events []track.Event, logCap int) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	existing, err := loadLog(tx)
	if err != nil {
		return err
	}
	log := track.AppendCapped(existing, events, logCap)

	if _, err := tx.Exec(`DELETE FROM snapshots`); err != nil {
		return errors.NewInternal(err)
	}

	insertRec, err := tx.Prepare(`
		INSERT INTO snapshots (
			bill_id, status, summary, last_action, last_action_date,
			sponsor, bill_url, found
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer insertRec.Close()

	for _, rec := range snapshot {
		sponsor := sql.NullString{String: rec.Sponsor, Valid: rec.Sponsor != ""}
		found := 0
		if rec.Found {
			found = 1
		}
		if _, err := insertRec.Exec(rec.BillID, string(rec.Status), rec.Summary,
			rec.LastAction, rec.LastActionDate, sponsor, rec.URL, found); err != nil {
			return errors.NewInternal(err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM change_log`); err != nil {
		return errors.NewInternal(err)
	}

	insertEvent, err := tx.Prepare(`
		INSERT INTO change_log (
			id, bill_id, kind, message, recorded_at,
			previous_status, current_status, previous_action, current_action
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer insertEvent.Close()

	for _, e := range log {
		if _, err := insertEvent.Exec(e.ID, e.Bill, string(e.Kind), e.Message,
			e.Timestamp.Unix(),
			toNullString(string(e.PreviousStatus)), toNullString(string(e.CurrentStatus)),
			toNullString(e.PreviousAction), toNullString(e.CurrentAction)); err != nil {
			return errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// loadLog reads the stored change log in append order. Event IDs are
// monotonic ULIDs, so id order is append order.
func loadLog(tx *sql.Tx) ([]track.Event, error) {
	rows, err := tx.Query(`
		SELECT id, bill_id, kind, message, recorded_at,
			previous_status, current_status, previous_action, current_action
		FROM change_log
		ORDER BY id
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListEvents returns change-log entries newest first.
func ListEvents(db *sql.DB, limit, offset int) ([]track.Event, error) {
	rows, err := db.Query(`
		SELECT id, bill_id, kind, message, recorded_at,
			previous_status, current_status, previous_action, current_action
		FROM change_log
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// scanEvents reads change-log rows into events.
func scanEvents(rows *sql.Rows) ([]track.Event, error) {
	events := make([]track.Event, 0)
	for rows.Next() {
		var e track.Event
		var recordedAt int64
		var prevStatus, curStatus, prevAction, curAction sql.NullString
		if err := rows.Scan(&e.ID, &e.Bill, &e.Kind, &e.Message, &recordedAt,
			&prevStatus, &curStatus, &prevAction, &curAction); err != nil {
			return nil, errors.NewInternal(err)
		}
		e.Timestamp = time.Unix(recordedAt, 0).UTC()
		e.PreviousStatus = bill.Status(prevStatus.String)
		e.CurrentStatus = bill.Status(curStatus.String)
		e.PreviousAction = prevAction.String
		e.CurrentAction = curAction.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return events, nil
}

// CountEvents returns the change-log length.
func CountEvents(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM change_log`).Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// toNullString converts an empty string to NULL.
func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
