// Package track compares successive bill snapshots and maintains the
// resulting change feed.
package track

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
)

// EventKind classifies one detected change.
type EventKind string

const (
	KindNewTracking  EventKind = "new_tracking"
	KindStatusChange EventKind = "status_change"
	KindActionUpdate EventKind = "action_update"
)

// Event is one immutable change-log entry. Before/after fields are
// populated per kind: status_change carries the status pair,
// action_update the action pair, new_tracking only the current status.
type Event struct {
	ID             string      `json:"id"`
	Bill           string      `json:"bill"`
	Kind           EventKind   `json:"type"`
	Message        string      `json:"message"`
	Timestamp      time.Time   `json:"timestamp"`
	PreviousStatus bill.Status `json:"previous_status,omitempty"`
	CurrentStatus  bill.Status `json:"current_status,omitempty"`
	PreviousAction string      `json:"previous_action,omitempty"`
	CurrentAction  string      `json:"current_action,omitempty"`
}

// eventEntropy is shared by every event ID. A run's events carry the
// same timestamp, so only the monotonic entropy keeps their ULIDs
// increasing in append order; a fresh source per call would randomize
// the order the store later reads them back in.
var eventEntropy = &ulid.LockedMonotonicReader{
	MonotonicReader: ulid.Monotonic(rand.Reader, 0),
}

// newEventID generates a ULID so log entries sort by creation time,
// and by append order within the same millisecond.
func newEventID(now time.Time) string {
	id, err := ulid.New(ulid.Timestamp(now), eventEntropy)
	if err != nil {
		// ulid.New only fails on entropy exhaustion; fall back to a
		// zero-entropy id rather than failing the diff.
		return ulid.MustNew(ulid.Timestamp(now), zeroReader{}).String()
	}
	return id.String()
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}
