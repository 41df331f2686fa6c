// Package http serves the JSON API over the ledger and budget services.
package http

import (
	"context"
	"net/http"

	"homeledger/internal/services"
)

type Server struct {
	http.Server

	ledger      *services.LedgerService
	budget      *services.BudgetService
	rateLimiter *rateLimiter
}

func NewServer(addr string, ledger *services.LedgerService, budget *services.BudgetService) *Server {
	s := &Server{
		ledger:      ledger,
		budget:      budget,
		rateLimiter: newRateLimiter(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("DELETE /api/expenses", s.handleClearExpenses)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("GET /api/expenses/summary", s.handleExpenseSummary)
	mux.HandleFunc("POST /api/archive", s.handleArchive)
	mux.HandleFunc("GET /api/budget/{person}", s.handlePersonBudget)
	mux.HandleFunc("GET /api/household", s.handleHousehold)
	mux.HandleFunc("GET /api/report/{person}", s.handleReport)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.withMiddleware(mux),
	}
	return s
}

// Shutdown stops the rate limiter's cleanup goroutine along with the
// listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.rateLimiter.stop()
	return s.Server.Shutdown(ctx)
}
