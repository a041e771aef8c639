package ops

import (
	"reflect"
	"testing"

	"github.com/ulucaydin/virginia-bill-tracker/internal/errors"
)

func TestTrackAddsAndCanonicalizes(t *testing.T) {
	baseDir := t.TempDir()

	out, err := Track(TrackInput{BaseDir: baseDir, Bills: []string{"hb0009", "sb2", "HB9"}})
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	if !reflect.DeepEqual(out.Tracked, []string{"HB9", "SB2"}) {
		t.Errorf("Tracked = %v", out.Tracked)
	}
	if !reflect.DeepEqual(out.Added, []string{"HB9", "SB2"}) {
		t.Errorf("Added = %v", out.Added)
	}

	// Adding an already-tracked bill is a no-op.
	out, err = Track(TrackInput{BaseDir: baseDir, Bills: []string{"HB0009"}})
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	if len(out.Added) != 0 {
		t.Errorf("Added = %v, want none", out.Added)
	}
	if len(out.Tracked) != 2 {
		t.Errorf("Tracked = %v", out.Tracked)
	}
}

func TestTrackRequiresBills(t *testing.T) {
	_, err := Track(TrackInput{BaseDir: t.TempDir()})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestUntrack(t *testing.T) {
	baseDir := t.TempDir()
	if _, err := Track(TrackInput{BaseDir: baseDir, Bills: []string{"HB1", "HB2", "SB3"}}); err != nil {
		t.Fatalf("Track: %v", err)
	}

	out, err := Untrack(TrackInput{BaseDir: baseDir, Bills: []string{"hb0002", "HB404"}})
	if err != nil {
		t.Fatalf("Untrack: %v", err)
	}
	if !reflect.DeepEqual(out.Tracked, []string{"HB1", "SB3"}) {
		t.Errorf("Tracked = %v", out.Tracked)
	}
	if !reflect.DeepEqual(out.Removed, []string{"HB2"}) {
		t.Errorf("Removed = %v", out.Removed)
	}
}

func TestUntrackToEmpty(t *testing.T) {
	baseDir := t.TempDir()
	if _, err := Track(TrackInput{BaseDir: baseDir, Bills: []string{"HB1"}}); err != nil {
		t.Fatalf("Track: %v", err)
	}
	out, err := Untrack(TrackInput{BaseDir: baseDir, Bills: []string{"HB1"}})
	if err != nil {
		t.Fatalf("Untrack: %v", err)
	}
	if len(out.Tracked) != 0 {
		t.Errorf("Tracked = %v, want empty", out.Tracked)
	}
}
