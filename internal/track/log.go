package track

// DefaultLogCap is how many change-log entries survive a run.
const DefaultLogCap = 1000

// AppendCapped appends new events to the existing log in order, then
// drops the oldest entries beyond limit. Existing entries are never
// reordered. A limit <= 0 falls back to DefaultLogCap.
func AppendCapped(log, events []Event, limit int) []Event {
	if limit <= 0 {
		limit = DefaultLogCap
	}
	merged := make([]Event, 0, len(log)+len(events))
	merged = append(merged, log...)
	merged = append(merged, events...)
	if len(merged) > limit {
		merged = merged[len(merged)-limit:]
	}
	return merged
}
