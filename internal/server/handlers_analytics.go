package server

import (
	"net/http"
	"time"
)

// --- Analytics handlers ---

// monthParam parses an optional ?month=YYYY-MM query parameter, defaulting to
// the current month.
func monthParam(r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return time.Now(), true
	}
	month, err := time.Parse("2006-01", raw)
	if err != nil {
		return time.Time{}, false
	}
	return month, true
}

// handleAnalyticsSummary handles GET /api/analytics/summary.
func (s *Server) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	stats, err := s.app.AnalyticsService.MonthlyStats(r.Context(), userID, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute monthly stats")
		WriteError(w, http.StatusInternalServerError, "failed to compute monthly stats")
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// handleAnalyticsCategories handles GET /api/analytics/categories?month=YYYY-MM.
func (s *Server) handleAnalyticsCategories(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	month, ok := monthParam(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "month must be in YYYY-MM format")
		return
	}

	breakdown, err := s.app.AnalyticsService.CategoryBreakdown(r.Context(), userID, month)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute category breakdown")
		WriteError(w, http.StatusInternalServerError, "failed to compute category breakdown")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": breakdown})
}

// handleAnalyticsExpenses handles GET /api/analytics/expenses.
func (s *Server) handleAnalyticsExpenses(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	series, err := s.app.AnalyticsService.ExpensesOverTime(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute expenses over time")
		WriteError(w, http.StatusInternalServerError, "failed to compute expenses over time")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"series": series})
}

// handleAnalyticsIncome handles GET /api/analytics/income.
func (s *Server) handleAnalyticsIncome(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	points, err := s.app.AnalyticsService.IncomeOverTime(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute income over time")
		WriteError(w, http.StatusInternalServerError, "failed to compute income over time")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"points": points})
}

// handleAnalyticsSavings handles GET /api/analytics/savings.
func (s *Server) handleAnalyticsSavings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	points, err := s.app.AnalyticsService.SavingsOverTime(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute savings over time")
		WriteError(w, http.StatusInternalServerError, "failed to compute savings over time")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"points": points})
}

// handleAnalyticsInvestments handles GET /api/analytics/investments.
func (s *Server) handleAnalyticsInvestments(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	points, err := s.app.AnalyticsService.InvestmentsOverTime(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute investments over time")
		WriteError(w, http.StatusInternalServerError, "failed to compute investments over time")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"points": points})
}

// handleAnalyticsInvestmentsRolling handles GET /api/analytics/investments/rolling.
func (s *Server) handleAnalyticsInvestmentsRolling(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	rolling, err := s.app.AnalyticsService.InvestmentsRolling12(r.Context(), userID, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute rolling investments")
		WriteError(w, http.StatusInternalServerError, "failed to compute rolling investments")
		return
	}

	WriteJSON(w, http.StatusOK, rolling)
}

// handleAnalyticsTrips handles GET /api/analytics/trips.
func (s *Server) handleAnalyticsTrips(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	points, err := s.app.AnalyticsService.TripBreakdown(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute trip breakdown")
		WriteError(w, http.StatusInternalServerError, "failed to compute trip breakdown")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"trips": points})
}

// handleAnalyticsExpensesChart handles GET /api/analytics/expenses/chart.png.
func (s *Server) handleAnalyticsExpensesChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	png, err := s.app.AnalyticsService.ExpensesChartPNG(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to render expenses chart")
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
