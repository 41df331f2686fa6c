package core

import "github.com/shopspring/decimal"

type (
	// MemberSummary is one person's contribution to the household view:
	// their manual inputs plus their tracked total, exactly as already
	// computed for the per-person budget. The household view never re-reads
	// the ledger with its own filtering.
	MemberSummary struct {
		Person  Person
		Inputs  BudgetInputs
		Tracked decimal.Decimal
	}

	// HouseholdSummary is the combined two-person view.
	HouseholdSummary struct {
		Income        decimal.Decimal
		Lines         Breakdown
		TotalExpenses decimal.Decimal
		Leftover      decimal.Decimal
		SavingsRate   decimal.Decimal
	}
)

// ComputeHousehold combines the members' budgets into a joint summary.
// Shared rent and utilities appear once, whole (not halved, not doubled);
// every personal line stays individually labeled.
func ComputeHousehold(members []MemberSummary, shared SharedCosts) HouseholdSummary {
	lines := Breakdown{
		{Label: "Rent", Amount: shared.Rent},
		{Label: "Utilities", Amount: shared.Utilities},
	}

	income := decimal.Zero
	for _, m := range members {
		income = income.Add(m.Inputs.Income)
		name := string(m.Person)
		lines = append(lines,
			Line{Label: name + " Fixed Costs", Amount: m.Inputs.FixedCosts},
			Line{Label: name + " Subscriptions", Amount: m.Inputs.Subscriptions},
			Line{Label: name + " Tracked Expenses", Amount: m.Tracked},
		)
	}

	total := lines.Total()
	leftover := income.Sub(total)
	if leftover.IsNegative() {
		leftover = decimal.Zero
	}

	return HouseholdSummary{
		Income:        income,
		Lines:         lines,
		TotalExpenses: total,
		Leftover:      leftover,
		SavingsRate:   PercentOf(leftover, income),
	}
}
