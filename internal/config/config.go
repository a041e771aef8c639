package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
)

// Default feed endpoints: the CSV exports behind the LIS bill search.
const (
	DefaultBillsFeedURL     = "https://lis.virginia.gov/SiteInformation/csv/BILLS.CSV"
	DefaultSummariesFeedURL = "https://lis.virginia.gov/SiteInformation/csv/SUMMARIES.CSV"
)

// Config holds application configuration.
type Config struct {
	// SessionName is the human-readable session label ("2026").
	SessionName string `json:"session_name"`

	// SessionLISCode is the LIS URL segment for the session ("20261"
	// for the 2026 regular session).
	SessionLISCode string `json:"session_lis_code"`

	// BillsFeedURL and SummariesFeedURL override the LIS CSV endpoints.
	BillsFeedURL     string `json:"bills_feed_url,omitempty"`
	SummariesFeedURL string `json:"summaries_feed_url,omitempty"`

	// ChangeLogCap bounds the persisted change log. 0 means the
	// built-in default of 1000.
	ChangeLogCap int `json:"change_log_cap,omitempty"`

	// DBMaxOpenConns limits open database connections. If set to 1,
	// all database access is serialized. 0 means the sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits idle database connections. 0 means the
	// sql.DB default.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from
	// registration. Unknown names are ignored at registration time.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// Session returns the session value threaded through resolution.
func (c *Config) Session() bill.Session {
	return bill.Session{Name: c.SessionName, LISCode: c.SessionLISCode}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SessionName:      "2026",
		SessionLISCode:   "20261",
		BillsFeedURL:     DefaultBillsFeedURL,
		SummariesFeedURL: DefaultSummariesFeedURL,
	}
}

// Load loads configuration from baseDir/config.json, applying defaults
// for anything unset. A missing file yields the defaults. The baseDir
// parameter allows tests to use t.TempDir() instead of ~/.billtracker.
func Load(baseDir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs. Overlay values take
// precedence for scalars; arrays are concatenated and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.SessionName = overlay.SessionName
	if result.SessionName == "" {
		result.SessionName = base.SessionName
	}
	result.SessionLISCode = overlay.SessionLISCode
	if result.SessionLISCode == "" {
		result.SessionLISCode = base.SessionLISCode
	}
	result.BillsFeedURL = overlay.BillsFeedURL
	if result.BillsFeedURL == "" {
		result.BillsFeedURL = base.BillsFeedURL
	}
	result.SummariesFeedURL = overlay.SummariesFeedURL
	if result.SummariesFeedURL == "" {
		result.SummariesFeedURL = base.SummariesFeedURL
	}

	result.ChangeLogCap = overlay.ChangeLogCap
	if result.ChangeLogCap == 0 {
		result.ChangeLogCap = base.ChangeLogCap
	}
	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}
	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// billsFile is the tracked-bills list inside the base directory.
const billsFile = "bills.json"

// billsDoc is the on-disk shape of bills.json.
type billsDoc struct {
	Bills []string `json:"bills"`
}

// LoadTrackedBills reads the tracked-bill list from baseDir/bills.json.
// IDs come back canonicalized, deduplicated, and sorted. A missing
// file is an empty list, not an error.
func LoadTrackedBills(baseDir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, billsFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var doc billsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return canonicalize(doc.Bills), nil
}

// SaveTrackedBills writes the tracked-bill list to baseDir/bills.json,
// canonicalized, deduplicated, and sorted.
func SaveTrackedBills(baseDir string, ids []string) error {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return err
	}
	doc := billsDoc{Bills: canonicalize(ids)}
	if doc.Bills == nil {
		doc.Bills = []string{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(baseDir, billsFile), append(data, '\n'), 0600)
}

// canonicalize normalizes, deduplicates, and sorts bill IDs.
func canonicalize(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := bill.NormalizeID(raw)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// mergeStringSlice combines two slices and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
