package normalize

import (
	"errors"
	"strings"
	"time"

	"adpulse/domain/ads"
)

var errBadDate = errors.New("unparseable date")

// headerScanLimit bounds how many leading rows are inspected when looking
// for the header row.
const headerScanLimit = 10

// DetectHeaderRow scans the first rows of a raw sheet and returns the
// index of the first row containing a cell whose lowercased text contains
// "impression" or "day". Falls back to row 0.
func DetectHeaderRow(rows [][]string) int {
	limit := headerScanLimit
	if len(rows) < limit {
		limit = len(rows)
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			lower := strings.ToLower(cell)
			if strings.Contains(lower, "impression") || strings.Contains(lower, "day") {
				return i
			}
		}
	}
	return 0
}

// ResolveColumns maps canonical fields to column indexes by testing each
// field's synonyms, in order, against all headers. A field with no match
// is absent from the result.
func ResolveColumns(headers []string) map[string]int {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	mapping := make(map[string]int)
	for field, synonyms := range columnSynonyms {
		for _, syn := range synonyms {
			for idx, col := range lowered {
				if col != "" && strings.Contains(col, syn) {
					mapping[field] = idx
					break
				}
			}
			if _, ok := mapping[field]; ok {
				break
			}
		}
	}
	return mapping
}

// Sheet normalizes one raw spreadsheet sheet into canonical rows plus
// free-text notes. Rejected sheets return a SheetResult with zero rows
// (notes preserved where the date column resolved) and a sheet-rejection
// error; callers skip the source and continue.
func Sheet(name string, raw [][]string) (ads.SheetResult, error) {
	result := ads.SheetResult{Source: name}
	if len(raw) == 0 {
		return result, ads.ErrNoDateColumn
	}

	headerIdx := DetectHeaderRow(raw)
	headers := raw[headerIdx]
	body := raw[headerIdx+1:]

	cols := ResolveColumns(headers)
	dateCol, ok := cols[FieldDate]
	if !ok {
		return result, ads.ErrNoDateColumn
	}

	// Split data rows from free-text notes before checking the remaining
	// columns, so a rejected sheet still surfaces its notes.
	var dataRows [][]string
	for _, row := range body {
		cell := cellAt(row, dateCol)
		if _, err := ParseDate(cell); err == nil {
			dataRows = append(dataRows, row)
			continue
		}
		txt := strings.TrimSpace(cell)
		lower := strings.ToLower(txt)
		if txt != "" && lower != "nan" && lower != "none" {
			result.Notes = append(result.Notes, txt)
		}
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := cols[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return result, ads.NewMissingColumnsError(missing)
	}

	for _, row := range dataRows {
		date, err := ParseDate(cellAt(row, dateCol))
		if err != nil {
			// Classified as data above but uncoercible now means the cell
			// is unusable; drop the row from the numeric table.
			continue
		}
		result.Rows = append(result.Rows, ads.Row{
			Date:        date,
			EntityName:  name,
			Impressions: parseCount(cellAt(row, cols[FieldImpressions])),
			Clicks:      parseCount(cellAt(row, cols[FieldClicks])),
			LPViews:     parseCount(cellAt(row, cols[FieldLPViews])),
			AddsToCart:  parseCount(cellAt(row, cols[FieldAddsToCart])),
			Checkouts:   parseCount(cellAt(row, cols[FieldCheckouts])),
			Purchases:   parseCount(cellAt(row, cols[FieldPurchases])),
			Spend:       parseAmount(cellAt(row, cols[FieldSpend])),
		})
	}

	return result, nil
}

// Sheets normalizes every sheet of a workbook, skipping rejected sources.
// The combined row set may be empty; callers surface that as the "no data"
// condition rather than an error.
func Sheets(sheets map[string][][]string, order []string) ([]ads.Row, map[string][]string) {
	var rows []ads.Row
	notes := make(map[string][]string)

	for _, name := range order {
		raw, ok := sheets[name]
		if !ok {
			continue
		}
		result, err := Sheet(name, raw)
		if err != nil && !ads.IsSheetRejection(err) {
			continue
		}
		if len(result.Notes) > 0 {
			notes[name] = result.Notes
		}
		rows = append(rows, result.Rows...)
	}
	return rows, notes
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// dateLayouts covers the formats ad-platform exports and hand-edited
// sheets actually use.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	time.RFC3339,
}

// ParseDate coerces a cell into a calendar date (day precision, UTC).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errBadDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errBadDate
}
