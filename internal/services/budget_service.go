package services

import (
	"context"

	"homeledger/internal/core"
)

type (
	// MemberInputs pairs a household member with their manual monthly
	// figures for one computation pass. The caller (the presentation
	// layer) owns these values; nothing here is session state.
	MemberInputs struct {
		Person core.Person
		Inputs core.BudgetInputs
	}

	// BudgetService derives per-person and household views from the ledger
	// plus manual inputs. It holds only configuration, never amounts.
	BudgetService struct {
		ledger    *LedgerService
		plan      core.AllocationPlan
		paychecks int
	}
)

func NewBudgetService(ledger *LedgerService, plan core.AllocationPlan, paychecks int) *BudgetService {
	return &BudgetService{
		ledger:    ledger,
		plan:      plan,
		paychecks: paychecks,
	}
}

// PersonBudget computes one member's budget from their inputs, the shared
// costs and their tracked total from the ledger.
func (s *BudgetService) PersonBudget(ctx context.Context, person core.Person, in core.BudgetInputs, shared core.SharedCosts) (core.Budget, error) {
	tracked, err := s.ledger.TotalFor(ctx, person)
	if err != nil {
		return core.Budget{}, err
	}
	return core.ComputeBudget(in, shared, tracked, s.plan, s.paychecks, len(s.ledger.Household()))
}

// Household combines all members into the joint summary. Tracked totals
// come from the same TotalFor the per-person views use, so the combined
// tracked sum always equals the sum of the per-person sums.
func (s *BudgetService) Household(ctx context.Context, members []MemberInputs, shared core.SharedCosts) (core.HouseholdSummary, error) {
	summaries := make([]core.MemberSummary, len(members))
	for i, m := range members {
		tracked, err := s.ledger.TotalFor(ctx, m.Person)
		if err != nil {
			return core.HouseholdSummary{}, err
		}
		summaries[i] = core.MemberSummary{Person: m.Person, Inputs: m.Inputs, Tracked: tracked}
	}
	return core.ComputeHousehold(summaries, shared), nil
}
