package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"homeledger/internal/ledger"
	"homeledger/internal/services"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

type expenseJSON struct {
	ID       string `json:"id"`
	Owner    string `json:"owner"`
	Date     string `json:"date,omitempty"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Notes    string `json:"notes,omitempty"`
}

func entryJSON(e services.Entry) expenseJSON {
	return expenseJSON{
		ID:       e.ID,
		Owner:    string(e.Record.Owner),
		Date:     e.Record.Date.String(),
		Category: string(e.Record.Category),
		Amount:   e.Record.Amount.String(),
		Notes:    e.Record.Notes,
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	entries, err := s.ledger.All(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]expenseJSON, len(entries))
	for i, e := range entries {
		out[i] = entryJSON(e)
	}
	writeJSON(w, http.StatusOK, map[string]any{"expenses": out})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var payload expensePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, errors.Join(ledger.ErrValidation, err))
		return
	}
	record, err := payload.toRecord()
	if err != nil {
		writeError(w, r, err)
		return
	}
	entry, err := s.ledger.Add(r.Context(), record)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entryJSON(entry))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var payload expensePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, errors.Join(ledger.ErrValidation, err))
		return
	}
	record, err := payload.toRecord()
	if err != nil {
		writeError(w, r, err)
		return
	}
	entry, err := s.ledger.Update(r.Context(), r.PathValue("id"), record)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entryJSON(entry))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearExpenses(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Clear(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExpenseSummary(w http.ResponseWriter, r *http.Request) {
	switch by := r.URL.Query().Get("by"); by {
	case "", "category":
		totals, err := s.ledger.ByCategory(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		out := make([]map[string]string, len(totals))
		for i, t := range totals {
			out[i] = map[string]string{"category": string(t.Category), "total": t.Total.String()}
		}
		writeJSON(w, http.StatusOK, map[string]any{"by_category": out})

	case "date":
		totals, err := s.ledger.ByDate(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		out := make([]map[string]string, len(totals))
		for i, t := range totals {
			out[i] = map[string]string{"date": t.Date.String(), "total": t.Total.String()}
		}
		writeJSON(w, http.StatusOK, map[string]any{"by_date": out})

	case "person":
		out := make([]map[string]string, 0, len(s.ledger.Household()))
		for _, p := range s.ledger.Household() {
			total, err := s.ledger.TotalFor(r.Context(), p)
			if err != nil {
				writeError(w, r, err)
				return
			}
			out = append(out, map[string]string{"person": string(p), "total": total.String()})
		}
		writeJSON(w, http.StatusOK, map[string]any{"by_person": out})

	default:
		writeError(w, r, errors.Join(ledger.ErrValidation, errors.New("by must be category, date or person")))
	}
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	dest, err := s.ledger.Archive(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"archived_to": dest})
}
