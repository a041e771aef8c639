package bill

import (
	"fmt"
	"strings"
)

// Resolve joins the bill-metadata feed against the summaries feed and
// produces exactly one Record per requested identifier, keyed by
// canonical ID. The summaries feed is optional; when a bill has no
// feed summary its own description is used, then a literal fallback.
//
// An empty bills feed marks every requested bill "Data unavailable"; a
// non-empty feed missing a requested bill marks that bill "Not Found".
// The two are distinct states and both carry found=false.
func Resolve(requested []string, rows []RawBillRow, summaries []RawSummaryRow, session Session) Snapshot {
	// Last write wins on duplicate feed rows, matching feed order.
	rowsByID := make(map[string]RawBillRow, len(rows))
	for _, row := range rows {
		rowsByID[NormalizeID(row.BillID)] = row
	}

	summariesByID := make(map[string]string, len(summaries))
	for _, s := range summaries {
		summariesByID[NormalizeID(s.BillID)] = Sanitize(s.Summary)
	}

	current := make(Snapshot, len(requested))
	for _, raw := range requested {
		id := NormalizeID(raw)

		if len(rows) == 0 {
			current[id] = Record{
				BillID:  id,
				Status:  StatusDataUnavailable,
				Summary: fmt.Sprintf("No feed data available for the %s session", session.Name),
				URL:     session.BillURL(id),
			}
			continue
		}

		row, ok := rowsByID[id]
		if !ok {
			current[id] = Record{
				BillID:  id,
				Status:  StatusNotFound,
				Summary: fmt.Sprintf("Bill %s not found in the %s session", id, session.Name),
				URL:     session.BillURL(id),
			}
			continue
		}

		summary := summariesByID[id]
		if summary == "" {
			summary = Sanitize(row.Description)
		}
		if summary == "" {
			summary = "No summary available"
		}

		action, date := latestAction(row)

		current[id] = Record{
			BillID:         id,
			Status:         Classify(row),
			Summary:        summary,
			LastAction:     action,
			LastActionDate: date,
			Sponsor:        strings.TrimSpace(row.Patron),
			URL:            session.BillURL(id),
			Found:          true,
		}
	}

	return current
}

// latestAction picks the more recent of the house/senate actions.
// Dates compare as strings, which is only chronological because both
// columns use the same fixed-width date format in the LIS feed; do not
// swap in a date parser without confirming the feed format.
func latestAction(row RawBillRow) (action, date string) {
	senateWins := row.LastSenateActionDate != "" &&
		(row.LastHouseActionDate == "" || row.LastSenateActionDate >= row.LastHouseActionDate)
	if senateWins {
		return Sanitize(row.LastSenateAction), row.LastSenateActionDate
	}
	return Sanitize(row.LastHouseAction), row.LastHouseActionDate
}
