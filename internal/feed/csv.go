// Package feed retrieves and parses the LIS CSV exports that back the
// bill search: the bill-metadata feed and the summaries feed. It is
// the I/O collaborator in front of the pure resolution core; every
// failure here degrades to an empty row set at the call site.
package feed

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
	"github.com/ulucaydin/virginia-bill-tracker/internal/errors"
)

// Bill feed column headers as they appear in BILLS.CSV.
const (
	colBillID               = "Bill_id"
	colDescription          = "Bill_description"
	colPatron               = "Patron_name"
	colLastHouseAction      = "Last_house_action"
	colLastHouseActionDate  = "Last_house_action_date"
	colLastSenateAction     = "Last_senate_action"
	colLastSenateActionDate = "Last_senate_action_date"
	colPassedHouse          = "Passed_house"
	colPassedSenate         = "Passed_senate"
	colGovernorAction       = "Governor_action"
)

// Summaries feed column headers as they appear in SUMMARIES.CSV.
const (
	colSummaryBillID = "SUM_BILNO"
	colSummaryText   = "SUMMARY_TEXT"
)

// ParseBills reads the bill-metadata feed from r. Columns are located
// by header name so LIS can reorder or add columns without breaking
// the parse; rows shorter than the header are skipped.
func ParseBills(r io.Reader) ([]bill.RawBillRow, error) {
	records, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	rows := make([]bill.RawBillRow, 0, len(records))
	for _, rec := range records {
		get := fieldGetter(header, rec)
		if get(colBillID) == "" {
			continue
		}
		rows = append(rows, bill.RawBillRow{
			BillID:               get(colBillID),
			Description:          get(colDescription),
			Patron:               get(colPatron),
			LastHouseAction:      get(colLastHouseAction),
			LastHouseActionDate:  get(colLastHouseActionDate),
			LastSenateAction:     get(colLastSenateAction),
			LastSenateActionDate: get(colLastSenateActionDate),
			PassedHouse:          get(colPassedHouse),
			PassedSenate:         get(colPassedSenate),
			GovernorAction:       get(colGovernorAction),
		})
	}
	return rows, nil
}

// ParseSummaries reads the summaries feed from r. Summary text keeps
// its markup here; sanitization happens during resolution.
func ParseSummaries(r io.Reader) ([]bill.RawSummaryRow, error) {
	records, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	rows := make([]bill.RawSummaryRow, 0, len(records))
	for _, rec := range records {
		get := fieldGetter(header, rec)
		if get(colSummaryBillID) == "" {
			continue
		}
		rows = append(rows, bill.RawSummaryRow{
			BillID:  get(colSummaryBillID),
			Summary: get(colSummaryText),
		})
	}
	return rows, nil
}

// ParseBillsFile parses the bill feed from a local CSV file.
func ParseBillsFile(path string) ([]bill.RawBillRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFeedUnavailable(path, err)
	}
	defer f.Close()
	return ParseBills(f)
}

// ParseSummariesFile parses the summaries feed from a local CSV file.
func ParseSummariesFile(path string) ([]bill.RawSummaryRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFeedUnavailable(path, err)
	}
	defer f.Close()
	return ParseSummaries(f)
}

// readCSV reads all records and returns them with a header index.
// The LIS exports occasionally pad rows, so per-record field counts
// are not enforced.
func readCSV(r io.Reader) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, errors.NewInternal(err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}

	header := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		header[strings.TrimSpace(name)] = i
	}
	return all[1:], header, nil
}

// fieldGetter returns a lookup over one record by header name,
// trimming whitespace and tolerating short rows.
func fieldGetter(header map[string]int, record []string) func(string) string {
	return func(name string) string {
		i, ok := header[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
}
