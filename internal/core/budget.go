package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Breakdown labels. Insertion order is display order.
const (
	LineRent          = "Rent (Shared)"
	LineUtilities     = "Utilities (Shared)"
	LineFixedCosts    = "Fixed Costs"
	LineSubscriptions = "Subscriptions"
	LineTracked       = "Tracked Expenses"
)

type (
	// Line is a labeled amount inside a breakdown or allocation table.
	Line struct {
		Label  string
		Amount decimal.Decimal
	}

	// Breakdown is an ordered list of expense lines.
	Breakdown []Line

	// BudgetInputs are the manually entered monthly figures for one person,
	// as opposed to the tracked total derived from the ledger.
	BudgetInputs struct {
		Income        decimal.Decimal
		FixedCosts    decimal.Decimal
		Subscriptions decimal.Decimal
	}

	// SharedCosts are household-level expenses split evenly between members.
	SharedCosts struct {
		Rent      decimal.Decimal
		Utilities decimal.Decimal
	}

	// AllocationBucket names one destination for leftover money and the
	// share of the leftover it receives.
	AllocationBucket struct {
		Name  string
		Share decimal.Decimal
	}

	// AllocationPlan is an ordered set of buckets whose shares must sum to
	// exactly 1.
	AllocationPlan []AllocationBucket

	// Budget is everything derived for one person in one computation pass.
	Budget struct {
		Breakdown       Breakdown
		TotalExpenses   decimal.Decimal
		Leftover        decimal.Decimal
		PercentOfIncome []Line
		Allocations     []Line
		PerPaycheck     []Line
	}
)

var (
	ErrBadAllocationPlan = errors.New("allocation shares must sum to 1")
	ErrBadPaychecks      = errors.New("paychecks per month must be positive")
	ErrBadHouseholdSize  = errors.New("household must have at least one member")
)

// DefaultAllocationPlan is the 25/40/20/15 leftover split.
func DefaultAllocationPlan() AllocationPlan {
	return AllocationPlan{
		{Name: "Credit Card Payment", Share: decimal.New(25, -2)},
		{Name: "Savings", Share: decimal.New(40, -2)},
		{Name: "Spending Money", Share: decimal.New(20, -2)},
		{Name: "Investments", Share: decimal.New(15, -2)},
	}
}

func (p AllocationPlan) Validate() error {
	if len(p) == 0 {
		return ErrBadAllocationPlan
	}
	sum := decimal.Zero
	for _, b := range p {
		if b.Name == "" {
			return fmt.Errorf("%w: unnamed bucket", ErrBadAllocationPlan)
		}
		if b.Share.IsNegative() {
			return fmt.Errorf("%w: negative share for %q", ErrBadAllocationPlan, b.Name)
		}
		sum = sum.Add(b.Share)
	}
	if !sum.Equal(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: got %s", ErrBadAllocationPlan, sum)
	}
	return nil
}

// PerMember returns one member's share of the shared costs.
func (s SharedCosts) PerMember(members int) (rent, utilities decimal.Decimal) {
	n := decimal.NewFromInt(int64(members))
	return s.Rent.Div(n), s.Utilities.Div(n)
}

// Total sums all lines of the breakdown.
func (b Breakdown) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range b {
		sum = sum.Add(l.Amount)
	}
	return sum
}

// ComputeBudget derives one person's monthly budget from manual inputs, the
// shared household costs and the tracked-expense total from the ledger.
//
// It is a pure function: no ledger access, no ambient state. The leftover is
// clamped at zero (a negative "leftover" is never shown), while the expense
// total itself is never clamped. With a zero income every percentage is
// defined as zero instead of failing on division.
func ComputeBudget(in BudgetInputs, shared SharedCosts, tracked decimal.Decimal, plan AllocationPlan, paychecks, members int) (Budget, error) {
	if err := plan.Validate(); err != nil {
		return Budget{}, err
	}
	if paychecks < 1 {
		return Budget{}, ErrBadPaychecks
	}
	if members < 1 {
		return Budget{}, ErrBadHouseholdSize
	}

	rent, utilities := shared.PerMember(members)
	breakdown := Breakdown{
		{Label: LineRent, Amount: rent},
		{Label: LineUtilities, Amount: utilities},
		{Label: LineFixedCosts, Amount: in.FixedCosts},
		{Label: LineSubscriptions, Amount: in.Subscriptions},
		{Label: LineTracked, Amount: tracked},
	}

	total := breakdown.Total()
	leftover := in.Income.Sub(total)
	if leftover.IsNegative() {
		leftover = decimal.Zero
	}

	percents := make([]Line, len(breakdown))
	for i, l := range breakdown {
		percents[i] = Line{Label: l.Label, Amount: PercentOf(l.Amount, in.Income)}
	}

	periods := decimal.NewFromInt(int64(paychecks))
	allocations := make([]Line, len(plan))
	perPaycheck := make([]Line, len(plan))
	for i, b := range plan {
		amt := leftover.Mul(b.Share)
		allocations[i] = Line{Label: b.Name, Amount: amt}
		perPaycheck[i] = Line{Label: b.Name, Amount: amt.Div(periods)}
	}

	return Budget{
		Breakdown:       breakdown,
		TotalExpenses:   total,
		Leftover:        leftover,
		PercentOfIncome: percents,
		Allocations:     allocations,
		PerPaycheck:     perPaycheck,
	}, nil
}
