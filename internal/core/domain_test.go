package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "Food", want: CategoryFood},
		{input: "food", want: CategoryFood},
		{input: "  BILLS  ", want: CategoryBills},
		{input: "entertainment", want: CategoryEntertainment},
		{input: "Groceries", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidCategory) {
				t.Errorf("ParseCategory(%q) error = %v, want ErrInvalidCategory", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCategory(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Unknown() {
		t.Error("parsed date reported as unknown")
	}
	if got := d.String(); got != "2026-08-15" {
		t.Errorf("String() = %q, want 2026-08-15", got)
	}

	empty, err := ParseDate("")
	if err != nil {
		t.Fatalf("ParseDate(\"\"): %v", err)
	}
	if !empty.Unknown() {
		t.Error("empty input should yield the unknown date")
	}
	if got := empty.String(); got != "" {
		t.Errorf("unknown date String() = %q, want empty", got)
	}

	if _, err := ParseDate("15/08/2026"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("ParseDate(15/08/2026) error = %v, want ErrInvalidDate", err)
	}
	if _, err := ParseDate("not a date"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("ParseDate(not a date) error = %v, want ErrInvalidDate", err)
	}
}

func TestRecord_Validate(t *testing.T) {
	valid := Record{
		Owner:    "Greg",
		Date:     NewDate(2026, 8, 15),
		Category: CategoryFood,
		Amount:   decimal.RequireFromString("12.50"),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(Record) Record
		wantErr error
	}{
		{
			name:    "empty owner",
			mutate:  func(r Record) Record { r.Owner = "  "; return r },
			wantErr: ErrEmptyOwner,
		},
		{
			name:    "unknown category",
			mutate:  func(r Record) Record { r.Category = "Snacks"; return r },
			wantErr: ErrInvalidCategory,
		},
		{
			name:    "negative amount",
			mutate:  func(r Record) Record { r.Amount = decimal.RequireFromString("-1"); return r },
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.mutate(valid).Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
