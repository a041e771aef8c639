// Package bill holds the bill data model and the pure functions that
// turn raw Virginia LIS feed rows into canonical tracked-bill records:
// identifier normalization, text sanitization, status classification,
// and record resolution. Every function in this package is total over
// its input domain; malformed data degrades, it never errors.
package bill

// Status is a bill's derived life-cycle state.
type Status string

// Status values, from the classifier's closed set plus the two degraded
// resolver states. NotFound (bill absent from a live feed) and
// DataUnavailable (feed absent entirely) are distinct on purpose and
// must stay that way.
const (
	StatusSignedIntoLaw   Status = "Signed into Law"
	StatusVetoed          Status = "Vetoed"
	StatusPassedBoth      Status = "Passed Both Chambers"
	StatusPassedHouse     Status = "Passed House"
	StatusPassedSenate    Status = "Passed Senate"
	StatusLeftInCommittee Status = "Left in Committee"
	StatusContinued       Status = "Continued"
	StatusFailed          Status = "Failed"
	StatusInCommittee     Status = "In Committee"
	StatusPending         Status = "Pending"
	StatusNotFound        Status = "Not Found"
	StatusDataUnavailable Status = "Data unavailable"
)

// RawBillRow is one row of the LIS bill-metadata feed. All fields are
// free text exactly as they appear in the feed.
type RawBillRow struct {
	BillID               string
	Description          string
	Patron               string
	LastHouseAction      string
	LastHouseActionDate  string
	LastSenateAction     string
	LastSenateActionDate string
	PassedHouse          string // "Y" when passed
	PassedSenate         string // "Y" when passed
	GovernorAction       string
}

// RawSummaryRow is one row of the LIS summaries feed, keyed by the
// zero-padded bill number (e.g. "HB0009") and carrying markup.
type RawSummaryRow struct {
	BillID  string
	Summary string
}

// Record is the resolved, per-tracked-bill entity. A snapshot is the
// mapping of canonical bill ID to Record for one run; the previous
// run's snapshot is the sole durable input besides the feeds.
type Record struct {
	BillID         string `json:"bill_number"`
	Status         Status `json:"status"`
	Summary        string `json:"summary"`
	LastAction     string `json:"last_action"`
	LastActionDate string `json:"last_action_date"`
	Sponsor        string `json:"sponsor,omitempty"`
	URL            string `json:"bill_url"`
	Found          bool   `json:"found"`
}

// Snapshot maps canonical bill ID to its resolved Record.
type Snapshot map[string]Record

// Session identifies the legislative session a run is scoped to.
// Name is human-readable ("2026"); LISCode is the path segment used in
// bill detail URLs ("20261" for the 2026 regular session).
type Session struct {
	Name    string
	LISCode string
}

// BillURL returns the LIS bill-details link for a canonical bill ID.
func (s Session) BillURL(id string) string {
	return "https://lis.virginia.gov/bill-details/" + s.LISCode + "/" + id
}
