package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"homeledger/internal/core"
	"homeledger/internal/ledger"
	applog "homeledger/internal/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the ledger error taxonomy onto HTTP statuses: rejected
// writes are 400, stale identifiers 404, an unreachable backend 503.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ledger.ErrUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, ledger.ErrNothingToArchive):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldError, err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// expensePayload is the JSON body for create and update.
type expensePayload struct {
	Owner    string `json:"owner"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Notes    string `json:"notes"`
}

// toRecord coerces the payload fields, rejecting anything that cannot be
// coerced so no partial write reaches the store.
func (p expensePayload) toRecord() (core.Record, error) {
	date, err := core.ParseDate(p.Date)
	if err != nil {
		return core.Record{}, errors.Join(ledger.ErrValidation, err)
	}
	amount, err := core.ParseAmount(p.Amount)
	if err != nil {
		return core.Record{}, errors.Join(ledger.ErrValidation, err)
	}
	return core.Record{
		Owner:    core.Person(strings.TrimSpace(p.Owner)),
		Date:     date,
		Category: core.Category(p.Category),
		Amount:   amount,
		Notes:    p.Notes,
	}, nil
}

// queryAmount reads a decimal query parameter, zero when absent.
func queryAmount(q url.Values, key string) (decimal.Decimal, error) {
	v, err := core.ParseAmount(q.Get(key))
	if err != nil {
		return decimal.Zero, errors.Join(ledger.ErrValidation, errors.New("parameter "+key))
	}
	return v, nil
}

// budgetQuery reads one person's manual inputs plus the shared costs from
// query parameters. The HTTP caller owns these values between requests;
// the calculator itself stays pure.
func budgetQuery(q url.Values, suffix string) (core.BudgetInputs, core.SharedCosts, error) {
	key := func(name string) string {
		if suffix == "" {
			return name
		}
		return name + "_" + strings.ToLower(suffix)
	}

	var in core.BudgetInputs
	var shared core.SharedCosts
	var err error
	if in.Income, err = queryAmount(q, key("income")); err != nil {
		return in, shared, err
	}
	if in.FixedCosts, err = queryAmount(q, key("fixed")); err != nil {
		return in, shared, err
	}
	if in.Subscriptions, err = queryAmount(q, key("subscriptions")); err != nil {
		return in, shared, err
	}
	if shared.Rent, err = queryAmount(q, "rent"); err != nil {
		return in, shared, err
	}
	if shared.Utilities, err = queryAmount(q, "utilities"); err != nil {
		return in, shared, err
	}
	return in, shared, nil
}

func linesJSON(lines []core.Line) []map[string]string {
	out := make([]map[string]string, len(lines))
	for i, l := range lines {
		out[i] = map[string]string{"label": l.Label, "amount": l.Amount.String()}
	}
	return out
}

func budgetJSON(b core.Budget) map[string]any {
	return map[string]any{
		"breakdown":         linesJSON(b.Breakdown),
		"total_expenses":    b.TotalExpenses.String(),
		"leftover":          b.Leftover.String(),
		"percent_of_income": linesJSON(b.PercentOfIncome),
		"allocations":       linesJSON(b.Allocations),
		"per_paycheck":      linesJSON(b.PerPaycheck),
	}
}
