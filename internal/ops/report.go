package ops

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ulucaydin/virginia-bill-tracker/internal/config"
)

// reportRecentChanges is how many change-log entries the digest shows.
const reportRecentChanges = 10

// ReportInput contains parameters for the Report operation.
type ReportInput struct {
	// Now overrides the report timestamp; zero means time.Now.
	Now time.Time
}

// ReportOutput contains the rendered markdown digest.
type ReportOutput struct {
	Markdown string `json:"markdown"`
}

// Report renders a markdown digest of the current snapshot and the
// most recent changes, suitable for the web report page or pasting
// into a status update.
func Report(database *sql.DB, cfg *config.Config, input ReportInput) (*ReportOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	status, err := Status(database, cfg, StatusInput{})
	if err != nil {
		return nil, err
	}
	changes, err := Changes(database, ChangesInput{Limit: reportRecentChanges})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Virginia Bill Tracker — %s Session\n\n", cfg.SessionName)
	fmt.Fprintf(&b, "Generated %s\n\n", now.Format("January 2, 2006 at 15:04 MST"))

	if len(status.Bills) == 0 {
		b.WriteString("No bills are being tracked. Add bill IDs with the track command.\n")
		return &ReportOutput{Markdown: b.String()}, nil
	}

	b.WriteString("## Tracked Bills\n\n")
	b.WriteString("| Bill | Status | Last Action | Sponsor |\n")
	b.WriteString("|------|--------|-------------|--------|\n")
	for _, rec := range status.Bills {
		action := rec.LastAction
		if action == "" {
			action = "—"
		}
		sponsor := rec.Sponsor
		if sponsor == "" {
			sponsor = "—"
		}
		fmt.Fprintf(&b, "| [%s](%s) | %s | %s | %s |\n",
			rec.BillID, rec.URL, rec.Status, action, sponsor)
	}
	b.WriteString("\n")

	b.WriteString("## Recent Changes\n\n")
	if len(changes.Events) == 0 {
		b.WriteString("No changes recorded yet.\n")
	} else {
		for _, e := range changes.Events {
			fmt.Fprintf(&b, "- %s — %s\n", e.Timestamp.Format("2006-01-02"), e.Message)
		}
	}

	return &ReportOutput{Markdown: b.String()}, nil
}
