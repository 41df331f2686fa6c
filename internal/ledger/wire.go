package ledger

import (
	"strings"

	"homeledger/internal/core"
)

// The persisted table has exactly these five columns, in this order, with a
// header row first and data starting at row 2.
var header = []string{"Name", "Date", "Category", "Amount", "Notes"}

// Header returns the wire-format column names.
func Header() []string {
	return append([]string(nil), header...)
}

// ParseRow converts one wire row into a record. Reads are best-effort: a
// date that does not parse becomes the unknown date, a category outside the
// closed set is kept verbatim only if it matches case-insensitively, and a
// row whose amount cannot be parsed is reported as not-ok so callers can
// skip it. Short rows are padded with empty columns.
func ParseRow(cols []string) (core.Record, bool) {
	for len(cols) < len(header) {
		cols = append(cols, "")
	}

	owner := core.Person(strings.TrimSpace(cols[0]))
	if owner == "" {
		return core.Record{}, false
	}

	date, err := core.ParseDate(cols[1])
	if err != nil {
		date = core.Date{}
	}

	category, err := core.ParseCategory(cols[2])
	if err != nil {
		category = core.CategoryOther
	}

	amount, err := core.ParseAmount(cols[3])
	if err != nil {
		return core.Record{}, false
	}

	return core.Record{
		Owner:    owner,
		Date:     date,
		Category: category,
		Amount:   amount,
		Notes:    strings.TrimSpace(cols[4]),
	}, true
}

// FormatRow serializes a record into the five wire columns.
func FormatRow(r core.Record) []string {
	return []string{
		string(r.Owner),
		r.Date.String(),
		string(r.Category),
		core.FormatAmount(r.Amount),
		r.Notes,
	}
}
