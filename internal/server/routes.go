package server

import (
	"net/http"
	"strings"
	"time"
)

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Auth
	mux.HandleFunc("/api/auth/register", s.handleAuthRegister)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/me", s.handleAuthMe)

	// Transactions
	mux.HandleFunc("/api/transactions/bulk-update", s.handleTransactionsBulkUpdate)
	mux.HandleFunc("/api/transactions/bulk-delete", s.handleTransactionsBulkDelete)
	mux.HandleFunc("/api/transactions/", s.routeTransactions)
	mux.HandleFunc("/api/transactions", s.handleTransactionsRoot)

	// Imports
	mux.HandleFunc("/api/import/preview", s.handleImportPreview)
	mux.HandleFunc("/api/import/commit", s.handleImportCommit)

	// Reference entities
	mux.HandleFunc("/api/categories/", s.routeCategories)
	mux.HandleFunc("/api/categories", s.handleCategoriesRoot)
	mux.HandleFunc("/api/accounts/", s.routeAccounts)
	mux.HandleFunc("/api/accounts", s.handleAccountsRoot)
	mux.HandleFunc("/api/trips/", s.routeTrips)
	mux.HandleFunc("/api/trips", s.handleTripsRoot)
	mux.HandleFunc("/api/family-members/", s.routeFamilyMembers)
	mux.HandleFunc("/api/family-members", s.handleFamilyMembersRoot)

	// Analytics
	mux.HandleFunc("/api/analytics/summary", s.handleAnalyticsSummary)
	mux.HandleFunc("/api/analytics/categories", s.handleAnalyticsCategories)
	mux.HandleFunc("/api/analytics/expenses/chart.png", s.handleAnalyticsExpensesChart)
	mux.HandleFunc("/api/analytics/expenses", s.handleAnalyticsExpenses)
	mux.HandleFunc("/api/analytics/income", s.handleAnalyticsIncome)
	mux.HandleFunc("/api/analytics/savings", s.handleAnalyticsSavings)
	mux.HandleFunc("/api/analytics/investments/rolling", s.handleAnalyticsInvestmentsRolling)
	mux.HandleFunc("/api/analytics/investments", s.handleAnalyticsInvestments)
	mux.HandleFunc("/api/analytics/trips", s.handleAnalyticsTrips)

	// Portfolio
	mux.HandleFunc("/api/investments/accounts", s.handleInvestmentAccountIndex)
	mux.HandleFunc("/api/investments/valuation", s.handleInvestmentValuation)
	mux.HandleFunc("/api/investments/", s.routeInvestments)
	mux.HandleFunc("/api/investments", s.handleInvestmentsRoot)
}

// routeTransactions dispatches GET/PUT/DELETE for /api/transactions/{id}.
func (s *Server) routeTransactions(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "transaction id is required in path")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleTransactionGet(w, r, id)
	case http.MethodPut:
		s.handleTransactionUpdate(w, r, id)
	case http.MethodDelete:
		s.handleTransactionDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// routeInvestments dispatches /api/investments/{id} and /api/investments/{id}/values.
func (s *Server) routeInvestments(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/investments/")
	if path == "" {
		WriteError(w, http.StatusBadRequest, "investment id is required in path")
		return
	}

	if strings.HasSuffix(path, "/values") {
		id := strings.TrimSuffix(path, "/values")
		switch r.Method {
		case http.MethodGet:
			s.handleInvestmentValuesList(w, r, id)
		case http.MethodDelete:
			s.handleInvestmentValuesDelete(w, r, id)
		default:
			RequireMethod(w, r, http.MethodGet, http.MethodDelete)
		}
		return
	}

	if strings.Contains(path, "/") {
		WriteError(w, http.StatusNotFound, "unknown investment route")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleInvestmentGet(w, r, path)
	case http.MethodPut:
		s.handleInvestmentUpdate(w, r, path)
	case http.MethodDelete:
		s.handleInvestmentDelete(w, r, path)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
