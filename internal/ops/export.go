package ops

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
	"github.com/ulucaydin/virginia-bill-tracker/internal/config"
	"github.com/ulucaydin/virginia-bill-tracker/internal/db"
	"github.com/ulucaydin/virginia-bill-tracker/internal/errors"
	"github.com/ulucaydin/virginia-bill-tracker/internal/track"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	// Path for the export file. Empty means
	// <BaseDir>/exports/<session>-<timestamp>.json.
	Path    string
	BaseDir string
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path      string `json:"path"`
	BillCount int    `json:"bill_count"`
	LogLength int    `json:"log_length"`
}

// exportDoc is the file shape: the full snapshot plus the change log,
// enough to rebuild state elsewhere or archive a session.
type exportDoc struct {
	Session     string        `json:"session"`
	GeneratedAt time.Time     `json:"generated_at"`
	Bills       []bill.Record `json:"bills"`
	Changes     []track.Event `json:"changes"`
}

// Export writes the current snapshot and change log to a JSON file.
func Export(database *sql.DB, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	status, err := Status(database, cfg, StatusInput{})
	if err != nil {
		return nil, err
	}

	total, err := db.CountEvents(database)
	if err != nil {
		return nil, err
	}
	events, err := db.ListEvents(database, MaxChangesLimit, 0)
	if err != nil {
		return nil, err
	}
	for len(events) < total {
		page, err := db.ListEvents(database, MaxChangesLimit, len(events))
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		events = append(events, page...)
	}

	path := input.Path
	if path == "" {
		dir := filepath.Join(input.BaseDir, "exports")
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, errors.NewInternal(err)
		}
		name := fmt.Sprintf("%s-%s.json", cfg.SessionName, time.Now().UTC().Format("20060102-150405"))
		path = filepath.Join(dir, name)
	}

	doc := exportDoc{
		Session:     cfg.SessionName,
		GeneratedAt: time.Now().UTC(),
		Bills:       status.Bills,
		Changes:     events,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &ExportOutput{
		Path:      path,
		BillCount: len(status.Bills),
		LogLength: len(events),
	}, nil
}
