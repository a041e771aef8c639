package track

import (
	"fmt"
	"sort"
	"time"

	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
)

// Diff compares the previous run's snapshot against the current one and
// returns change events ordered by canonical bill ID. Records the feed
// couldn't produce (found=false) are skipped. A bill new to the
// snapshot yields exactly one new_tracking event; afterwards status and
// last-action changes are independent checks and can both fire in one
// run. Bills present previously but absent now emit nothing; whether
// disappearance deserves its own event is an open product question, so
// the observed silent behavior is kept.
func Diff(previous, current bill.Snapshot, now time.Time) []Event {
	ids := make([]string, 0, len(current))
	for id := range current {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var events []Event
	for _, id := range ids {
		cur := current[id]
		if !cur.Found {
			continue
		}

		prev, tracked := previous[id]
		if !tracked {
			events = append(events, Event{
				ID:            newEventID(now),
				Bill:          id,
				Kind:          KindNewTracking,
				Message:       fmt.Sprintf("Started tracking %s", id),
				Timestamp:     now,
				CurrentStatus: cur.Status,
			})
			continue
		}

		if prev.Status != cur.Status {
			events = append(events, Event{
				ID:             newEventID(now),
				Bill:           id,
				Kind:           KindStatusChange,
				Message:        fmt.Sprintf("%s status changed: %s → %s", id, prev.Status, cur.Status),
				Timestamp:      now,
				PreviousStatus: prev.Status,
				CurrentStatus:  cur.Status,
			})
		}

		if prev.LastAction != cur.LastAction {
			events = append(events, Event{
				ID:             newEventID(now),
				Bill:           id,
				Kind:           KindActionUpdate,
				Message:        fmt.Sprintf("%s new action: %s", id, cur.LastAction),
				Timestamp:      now,
				PreviousAction: prev.LastAction,
				CurrentAction:  cur.LastAction,
			})
		}
	}

	return events
}
