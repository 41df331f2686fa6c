package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeHousehold(t *testing.T) {
	members := []MemberSummary{
		{
			Person: "Greg",
			Inputs: BudgetInputs{
				Income:        dec(t, "4788"),
				FixedCosts:    dec(t, "400"),
				Subscriptions: dec(t, "80"),
			},
			Tracked: dec(t, "100"),
		},
		{
			Person: "Tyler",
			Inputs: BudgetInputs{
				Income:        dec(t, "3600"),
				FixedCosts:    dec(t, "250"),
				Subscriptions: dec(t, "40"),
			},
			Tracked: dec(t, "250"),
		},
	}
	shared := SharedCosts{Rent: dec(t, "1440"), Utilities: dec(t, "300")}

	got := ComputeHousehold(members, shared)

	if !got.Income.Equal(dec(t, "8388")) {
		t.Errorf("Income = %s, want 8388", got.Income)
	}

	// Shared costs appear once, whole; per-member lines keep the name.
	wantLines := map[string]string{
		"Rent":                   "1440",
		"Utilities":              "300",
		"Greg Fixed Costs":       "400",
		"Greg Subscriptions":     "80",
		"Greg Tracked Expenses":  "100",
		"Tyler Fixed Costs":      "250",
		"Tyler Subscriptions":    "40",
		"Tyler Tracked Expenses": "250",
	}
	if len(got.Lines) != len(wantLines) {
		t.Fatalf("got %d lines, want %d", len(got.Lines), len(wantLines))
	}
	for _, l := range got.Lines {
		want, ok := wantLines[l.Label]
		if !ok {
			t.Errorf("unexpected line %q", l.Label)
			continue
		}
		if !l.Amount.Equal(dec(t, want)) {
			t.Errorf("line[%s] = %s, want %s", l.Label, l.Amount, want)
		}
	}

	if !got.TotalExpenses.Equal(dec(t, "2860")) {
		t.Errorf("TotalExpenses = %s, want 2860", got.TotalExpenses)
	}
	if !got.Leftover.Equal(dec(t, "5528")) {
		t.Errorf("Leftover = %s, want 5528", got.Leftover)
	}
	if want := PercentOf(got.Leftover, got.Income); !got.SavingsRate.Equal(want) {
		t.Errorf("SavingsRate = %s, want %s", got.SavingsRate, want)
	}
}

func TestComputeHousehold_LeftoverClamp(t *testing.T) {
	members := []MemberSummary{
		{Person: "Greg", Inputs: BudgetInputs{Income: dec(t, "500")}},
	}
	shared := SharedCosts{Rent: dec(t, "2000")}

	got := ComputeHousehold(members, shared)
	if !got.Leftover.IsZero() {
		t.Errorf("Leftover = %s, want 0", got.Leftover)
	}
	if !got.SavingsRate.IsZero() {
		t.Errorf("SavingsRate = %s, want 0", got.SavingsRate)
	}
}

func TestComputeHousehold_Empty(t *testing.T) {
	got := ComputeHousehold(nil, SharedCosts{})
	if !got.Income.IsZero() || !got.TotalExpenses.IsZero() || !got.Leftover.IsZero() {
		t.Errorf("empty household should be all zero, got income=%s total=%s leftover=%s",
			got.Income, got.TotalExpenses, got.Leftover)
	}
	if !got.SavingsRate.Equal(decimal.Zero) {
		t.Errorf("SavingsRate = %s, want 0", got.SavingsRate)
	}
}
