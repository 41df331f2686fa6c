package google

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseRows_PhysicalRowMapping(t *testing.T) {
	// Row 3 is a hand-edited row the parser rejects; the records around it
	// must still point at their real sheet rows.
	values := [][]any{
		{"Greg", "2026-08-01", "Food", "60.00", "lunch"}, // sheet row 2
		{"", "", "", "scribbled over", ""},               // sheet row 3, skipped
		{"Tyler", "2026-08-02", "Bills", "250.00", ""},   // sheet row 4
	}

	rows := parseRows(values)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	if rows[0].record.Owner != "Greg" || rows[0].row != 2 {
		t.Errorf("rows[0] = owner %s row %d, want Greg at sheet row 2", rows[0].record.Owner, rows[0].row)
	}
	if rows[1].record.Owner != "Tyler" || rows[1].row != 4 {
		t.Errorf("rows[1] = owner %s row %d, want Tyler at sheet row 4", rows[1].record.Owner, rows[1].row)
	}
	if !rows[1].record.Amount.Equal(decimal.RequireFromString("250")) {
		t.Errorf("rows[1].Amount = %s, want 250", rows[1].record.Amount)
	}
}

func TestParseRows_Empty(t *testing.T) {
	if rows := parseRows(nil); len(rows) != 0 {
		t.Errorf("parseRows(nil) = %v, want empty", rows)
	}
}
