package http

import (
	"fmt"
	"net/http"
	"strings"

	"homeledger/internal/report"
	"homeledger/internal/services"
)

func (s *Server) handlePersonBudget(w http.ResponseWriter, r *http.Request) {
	person, err := s.ledger.Member(r.PathValue("person"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	inputs, shared, err := budgetQuery(r.URL.Query(), "")
	if err != nil {
		writeError(w, r, err)
		return
	}
	budget, err := s.budget.PersonBudget(r.Context(), person, inputs, shared)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := budgetJSON(budget)
	out["person"] = string(person)
	out["income"] = inputs.Income.String()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHousehold(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Per-person inputs arrive suffixed with the member name
	// (income_greg, fixed_greg, ...); rent and utilities are
	// household-level and read once.
	members := make([]services.MemberInputs, 0, len(s.ledger.Household()))
	for _, person := range s.ledger.Household() {
		inputs, _, err := budgetQuery(q, string(person))
		if err != nil {
			writeError(w, r, err)
			return
		}
		members = append(members, services.MemberInputs{Person: person, Inputs: inputs})
	}

	_, shared, err := budgetQuery(q, "")
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := s.budget.Household(r.Context(), members, shared)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"income":         summary.Income.String(),
		"lines":          linesJSON(summary.Lines),
		"total_expenses": summary.TotalExpenses.String(),
		"leftover":       summary.Leftover.String(),
		"savings_rate":   summary.SavingsRate.String(),
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	person, err := s.ledger.Member(r.PathValue("person"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	inputs, shared, err := budgetQuery(r.URL.Query(), "")
	if err != nil {
		writeError(w, r, err)
		return
	}
	budget, err := s.budget.PersonBudget(r.Context(), person, inputs, shared)
	if err != nil {
		writeError(w, r, err)
		return
	}

	doc := report.Build(person, budget)
	pdf, err := report.RenderPDF(doc)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s_budget.pdf", strings.ToLower(string(person)))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
