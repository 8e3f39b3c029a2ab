package server

import (
	"net/http"
	"time"

	"github.com/skander-fourati/zawali/internal/interfaces"
	"github.com/skander-fourati/zawali/internal/models"
)

// --- Portfolio handlers ---

// investmentView decorates a holding with its latest valuation for listings.
type investmentView struct {
	*models.Investment
	CurrentValue *float64   `json:"current_value,omitempty"`
	ValuedAt     *time.Time `json:"valued_at,omitempty"`
	AccountID    string     `json:"account_id,omitempty"`
}

// handleInvestmentsRoot handles GET (list) /api/investments.
func (s *Server) handleInvestmentsRoot(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	ctx := r.Context()
	store := s.app.Storage.InvestmentStore()

	investments, err := store.List(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list investments")
		WriteError(w, http.StatusInternalServerError, "failed to list investments")
		return
	}

	accountIndex, err := s.app.PortfolioService.AccountIndex(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to build investment account index")
		accountIndex = map[string]string{}
	}

	views := make([]investmentView, 0, len(investments))
	for _, inv := range investments {
		view := investmentView{Investment: inv, AccountID: accountIndex[inv.ID]}
		if latest, err := store.LatestMarketValue(ctx, userID, inv.ID); err == nil {
			view.CurrentValue = &latest.MarketValue
			view.ValuedAt = &latest.UpdatedAt
		}
		views = append(views, view)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"investments": views,
		"count":       len(views),
	})
}

// handleInvestmentValuation handles POST /api/investments/valuation.
// Creates the holding if needed and back-fills its monthly valuation history
// from the growth inputs.
func (s *Server) handleInvestmentValuation(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req struct {
		Ticker         string  `json:"ticker"`
		InvestmentType string  `json:"investment_type"`
		AccountID      string  `json:"account_id"`
		AccountName    string  `json:"account_name"`
		CurrentValue   float64 `json:"current_value"`
		PurchaseDate   string  `json:"purchase_date"` // ISO YYYY-MM-DD
		TotalGrowthPct float64 `json:"total_growth_pct"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	if req.CurrentValue <= 0 {
		WriteError(w, http.StatusBadRequest, "current_value must be positive")
		return
	}
	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "purchase_date must be in YYYY-MM-DD format")
		return
	}

	input := interfaces.ValuationInput{
		Ticker:         req.Ticker,
		InvestmentType: req.InvestmentType,
		AccountID:      req.AccountID,
		AccountName:    req.AccountName,
		CurrentValue:   req.CurrentValue,
		PurchaseDate:   purchaseDate,
		TotalGrowthPct: req.TotalGrowthPct,
	}

	investment, err := s.app.PortfolioService.SaveWithHistory(r.Context(), userID, input)
	if err != nil {
		s.logger.Error().Err(err).Str("ticker", req.Ticker).Msg("Failed to save valuation")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, investment)
}

// handleInvestmentAccountIndex handles GET /api/investments/accounts.
func (s *Server) handleInvestmentAccountIndex(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	index, err := s.app.PortfolioService.AccountIndex(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to build investment account index")
		WriteError(w, http.StatusInternalServerError, "failed to build account index")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"accounts": index})
}

func (s *Server) handleInvestmentGet(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	investment, err := s.app.Storage.InvestmentStore().Get(r.Context(), userID, id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "investment not found")
		return
	}

	WriteJSON(w, http.StatusOK, investment)
}

func (s *Server) handleInvestmentUpdate(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req struct {
		Ticker         string `json:"ticker"`
		Name           string `json:"name"`
		InvestmentType string `json:"investment_type"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	store := s.app.Storage.InvestmentStore()
	investment, err := store.Get(r.Context(), userID, id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "investment not found")
		return
	}

	investment.Ticker = req.Ticker
	investment.Name = req.Name
	investment.InvestmentType = req.InvestmentType
	investment.UpdatedAt = time.Now()

	if err := store.Update(r.Context(), investment); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to update investment")
		WriteError(w, http.StatusInternalServerError, "failed to update investment")
		return
	}

	WriteJSON(w, http.StatusOK, investment)
}

// handleInvestmentDelete removes the holding and its valuation history.
func (s *Server) handleInvestmentDelete(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	ctx := r.Context()
	store := s.app.Storage.InvestmentStore()

	if _, err := store.Get(ctx, userID, id); err != nil {
		WriteError(w, http.StatusNotFound, "investment not found")
		return
	}

	deleted, err := store.DeleteMarketValues(ctx, userID, id)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to delete valuation history")
		WriteError(w, http.StatusInternalServerError, "failed to delete valuation history")
		return
	}

	if err := store.Delete(ctx, userID, id); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to delete investment")
		WriteError(w, http.StatusInternalServerError, "failed to delete investment")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "deleted",
		"id":             id,
		"values_deleted": deleted,
	})
}

// handleInvestmentValuesList handles GET /api/investments/{id}/values.
func (s *Server) handleInvestmentValuesList(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	values, err := s.app.Storage.InvestmentStore().ListMarketValues(r.Context(), userID, id)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to list market values")
		WriteError(w, http.StatusInternalServerError, "failed to list market values")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"values": values,
		"count":  len(values),
	})
}

// handleInvestmentValuesDelete handles DELETE /api/investments/{id}/values.
func (s *Server) handleInvestmentValuesDelete(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	deleted, err := s.app.Storage.InvestmentStore().DeleteMarketValues(r.Context(), userID, id)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to delete market values")
		WriteError(w, http.StatusInternalServerError, "failed to delete market values")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "deleted",
		"id":      id,
		"deleted": deleted,
	})
}
