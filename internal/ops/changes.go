package ops

import (
	"database/sql"

	"github.com/ulucaydin/virginia-bill-tracker/internal/db"
	"github.com/ulucaydin/virginia-bill-tracker/internal/track"
)

// ChangesInput contains parameters for the Changes operation.
type ChangesInput struct {
	Limit  int
	Offset int
}

// ChangesOutput contains the result of the Changes operation.
type ChangesOutput struct {
	Events     []track.Event `json:"changes"`
	Pagination Pagination    `json:"pagination"`
}

// Changes lists change-log entries, newest first.
func Changes(database *sql.DB, input ChangesInput) (*ChangesOutput, error) {
	limit := clampLimit(input.Limit, DefaultChangesLimit, MaxChangesLimit)
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	total, err := db.CountEvents(database)
	if err != nil {
		return nil, err
	}

	events, err := db.ListEvents(database, limit, offset)
	if err != nil {
		return nil, err
	}

	return &ChangesOutput{
		Events: events,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(events) < total,
			Total:   total,
		},
	}, nil
}
