package ops

import (
	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
	"github.com/ulucaydin/virginia-bill-tracker/internal/config"
	"github.com/ulucaydin/virginia-bill-tracker/internal/errors"
)

// TrackInput contains parameters for the Track and Untrack operations.
type TrackInput struct {
	BaseDir string
	Bills   []string
}

// TrackOutput contains the resulting tracked-bill list.
type TrackOutput struct {
	Tracked []string `json:"tracked"`
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

// Track adds bills to the tracked list. IDs are canonicalized before
// comparison, so "hb0009" and "HB9" are the same bill.
func Track(input TrackInput) (*TrackOutput, error) {
	if len(input.Bills) == 0 {
		return nil, errors.NewInvalidRequest("at least one bill id is required")
	}

	tracked, err := config.LoadTrackedBills(input.BaseDir)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	have := make(map[string]bool, len(tracked))
	for _, id := range tracked {
		have[id] = true
	}

	var added []string
	for _, raw := range input.Bills {
		id := bill.NormalizeID(raw)
		if id == "" {
			return nil, errors.NewInvalidRequest("bill id must not be empty")
		}
		if !have[id] {
			have[id] = true
			tracked = append(tracked, id)
			added = append(added, id)
		}
	}

	if err := config.SaveTrackedBills(input.BaseDir, tracked); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Re-load to report the canonical sorted list.
	tracked, err = config.LoadTrackedBills(input.BaseDir)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &TrackOutput{Tracked: tracked, Added: added}, nil
}

// Untrack removes bills from the tracked list. Removing an untracked
// bill is not an error; the operation reports what actually changed.
func Untrack(input TrackInput) (*TrackOutput, error) {
	if len(input.Bills) == 0 {
		return nil, errors.NewInvalidRequest("at least one bill id is required")
	}

	tracked, err := config.LoadTrackedBills(input.BaseDir)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	drop := make(map[string]bool, len(input.Bills))
	for _, raw := range input.Bills {
		drop[bill.NormalizeID(raw)] = true
	}

	var kept, removed []string
	for _, id := range tracked {
		if drop[id] {
			removed = append(removed, id)
			continue
		}
		kept = append(kept, id)
	}

	if err := config.SaveTrackedBills(input.BaseDir, kept); err != nil {
		return nil, errors.NewInternal(err)
	}

	if kept == nil {
		kept = []string{}
	}
	return &TrackOutput{Tracked: kept, Removed: removed}, nil
}
