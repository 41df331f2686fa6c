package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestComputeBudget_Scenario(t *testing.T) {
	in := BudgetInputs{
		Income:        dec(t, "4788"),
		FixedCosts:    dec(t, "400"),
		Subscriptions: dec(t, "80"),
	}
	shared := SharedCosts{Rent: dec(t, "1440"), Utilities: dec(t, "300")}

	b, err := ComputeBudget(in, shared, decimal.Zero, DefaultAllocationPlan(), 2, 2)
	if err != nil {
		t.Fatalf("ComputeBudget: %v", err)
	}

	wantBreakdown := map[string]string{
		LineRent:          "720",
		LineUtilities:     "150",
		LineFixedCosts:    "400",
		LineSubscriptions: "80",
		LineTracked:       "0",
	}
	if len(b.Breakdown) != len(wantBreakdown) {
		t.Fatalf("breakdown has %d lines, want %d", len(b.Breakdown), len(wantBreakdown))
	}
	for _, l := range b.Breakdown {
		want, ok := wantBreakdown[l.Label]
		if !ok {
			t.Errorf("unexpected breakdown line %q", l.Label)
			continue
		}
		if !l.Amount.Equal(dec(t, want)) {
			t.Errorf("breakdown[%s] = %s, want %s", l.Label, l.Amount, want)
		}
	}

	if !b.TotalExpenses.Equal(dec(t, "1350")) {
		t.Errorf("TotalExpenses = %s, want 1350", b.TotalExpenses)
	}
	if !b.Leftover.Equal(dec(t, "3438")) {
		t.Errorf("Leftover = %s, want 3438", b.Leftover)
	}

	wantAllocations := map[string]string{
		"Credit Card Payment": "859.50",
		"Savings":             "1375.20",
		"Spending Money":      "687.60",
		"Investments":         "515.70",
	}
	for _, l := range b.Allocations {
		if !l.Amount.Equal(dec(t, wantAllocations[l.Label])) {
			t.Errorf("allocation[%s] = %s, want %s", l.Label, l.Amount, wantAllocations[l.Label])
		}
	}
}

func TestComputeBudget_SumInvariant(t *testing.T) {
	in := BudgetInputs{
		Income:        dec(t, "3210.55"),
		FixedCosts:    dec(t, "123.45"),
		Subscriptions: dec(t, "67.89"),
	}
	shared := SharedCosts{Rent: dec(t, "999.99"), Utilities: dec(t, "87.31")}

	b, err := ComputeBudget(in, shared, dec(t, "210.10"), DefaultAllocationPlan(), 2, 2)
	if err != nil {
		t.Fatalf("ComputeBudget: %v", err)
	}

	if !b.Breakdown.Total().Equal(b.TotalExpenses) {
		t.Errorf("breakdown sums to %s, TotalExpenses is %s", b.Breakdown.Total(), b.TotalExpenses)
	}
}

func TestComputeBudget_AllocationCompleteness(t *testing.T) {
	// Shares sum to exactly 1, so the allocations must reassemble the
	// leftover without a remainder.
	in := BudgetInputs{Income: dec(t, "5123.33")}
	b, err := ComputeBudget(in, SharedCosts{}, dec(t, "611.11"), DefaultAllocationPlan(), 2, 2)
	if err != nil {
		t.Fatalf("ComputeBudget: %v", err)
	}

	sum := decimal.Zero
	for _, l := range b.Allocations {
		sum = sum.Add(l.Amount)
	}
	if !sum.Equal(b.Leftover) {
		t.Errorf("allocations sum to %s, leftover is %s", sum, b.Leftover)
	}
}

func TestComputeBudget_PerPaycheckHalving(t *testing.T) {
	in := BudgetInputs{Income: dec(t, "4788")}
	b, err := ComputeBudget(in, SharedCosts{Rent: dec(t, "1440")}, decimal.Zero, DefaultAllocationPlan(), 2, 2)
	if err != nil {
		t.Fatalf("ComputeBudget: %v", err)
	}

	two := decimal.NewFromInt(2)
	for i, l := range b.PerPaycheck {
		want := b.Allocations[i].Amount.Div(two)
		if l.Label != b.Allocations[i].Label {
			t.Errorf("per-paycheck label %q does not match allocation label %q", l.Label, b.Allocations[i].Label)
		}
		if !l.Amount.Equal(want) {
			t.Errorf("perPaycheck[%s] = %s, want %s", l.Label, l.Amount, want)
		}
	}
}

func TestComputeBudget_LeftoverClamp(t *testing.T) {
	in := BudgetInputs{
		Income:     dec(t, "1000"),
		FixedCosts: dec(t, "2000"),
	}
	b, err := ComputeBudget(in, SharedCosts{}, decimal.Zero, DefaultAllocationPlan(), 2, 2)
	if err != nil {
		t.Fatalf("ComputeBudget: %v", err)
	}

	if !b.Leftover.IsZero() {
		t.Errorf("Leftover = %s, want 0", b.Leftover)
	}
	// The expense total itself is never clamped.
	if !b.TotalExpenses.Equal(dec(t, "2000")) {
		t.Errorf("TotalExpenses = %s, want 2000", b.TotalExpenses)
	}
	for _, l := range b.Allocations {
		if !l.Amount.IsZero() {
			t.Errorf("allocation[%s] = %s, want 0", l.Label, l.Amount)
		}
	}
}

func TestComputeBudget_ZeroIncome(t *testing.T) {
	in := BudgetInputs{FixedCosts: dec(t, "500"), Subscriptions: dec(t, "50")}
	b, err := ComputeBudget(in, SharedCosts{Rent: dec(t, "800")}, dec(t, "75"), DefaultAllocationPlan(), 2, 2)
	if err != nil {
		t.Fatalf("ComputeBudget: %v", err)
	}

	if !b.Leftover.IsZero() {
		t.Errorf("Leftover = %s, want 0", b.Leftover)
	}
	for _, l := range b.PercentOfIncome {
		if !l.Amount.IsZero() {
			t.Errorf("percentOfIncome[%s] = %s, want 0", l.Label, l.Amount)
		}
	}
}

func TestComputeBudget_InvalidParameters(t *testing.T) {
	in := BudgetInputs{Income: dec(t, "1000")}

	if _, err := ComputeBudget(in, SharedCosts{}, decimal.Zero, DefaultAllocationPlan(), 0, 2); !errors.Is(err, ErrBadPaychecks) {
		t.Errorf("paychecks=0: got %v, want ErrBadPaychecks", err)
	}
	if _, err := ComputeBudget(in, SharedCosts{}, decimal.Zero, DefaultAllocationPlan(), 2, 0); !errors.Is(err, ErrBadHouseholdSize) {
		t.Errorf("members=0: got %v, want ErrBadHouseholdSize", err)
	}
}

func TestAllocationPlan_Validate(t *testing.T) {
	tests := []struct {
		name    string
		plan    AllocationPlan
		wantErr bool
	}{
		{
			name:    "default plan",
			plan:    DefaultAllocationPlan(),
			wantErr: false,
		},
		{
			name: "single bucket of one",
			plan: AllocationPlan{
				{Name: "Savings", Share: decimal.NewFromInt(1)},
			},
			wantErr: false,
		},
		{
			name:    "empty plan",
			plan:    AllocationPlan{},
			wantErr: true,
		},
		{
			name: "shares below one",
			plan: AllocationPlan{
				{Name: "Savings", Share: decimal.New(50, -2)},
				{Name: "Spending", Share: decimal.New(40, -2)},
			},
			wantErr: true,
		},
		{
			name: "negative share",
			plan: AllocationPlan{
				{Name: "Savings", Share: decimal.New(150, -2)},
				{Name: "Debt", Share: decimal.New(-50, -2)},
			},
			wantErr: true,
		},
		{
			name: "unnamed bucket",
			plan: AllocationPlan{
				{Name: "", Share: decimal.NewFromInt(1)},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrBadAllocationPlan) {
				t.Errorf("Validate() error = %v, want ErrBadAllocationPlan", err)
			}
		})
	}
}
