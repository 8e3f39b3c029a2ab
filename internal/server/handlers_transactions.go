package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skander-fourati/zawali/internal/interfaces"
	"github.com/skander-fourati/zawali/internal/models"
)

// --- Transaction handlers ---

// transactionRequest is the write payload for create and update.
type transactionRequest struct {
	Date             string                  `json:"date"` // ISO YYYY-MM-DD
	Description      string                  `json:"description"`
	Amount           float64                 `json:"amount"`
	Currency         models.Currency         `json:"currency"`
	TransactionType  models.TransactionType  `json:"transaction_type"`
	Category         string                  `json:"category"`
	CategoryID       string                  `json:"category_id"`
	Account          string                  `json:"account"`
	AccountID        string                  `json:"account_id"`
	Trip             string                  `json:"trip"`
	TripID           string                  `json:"trip_id"`
	FamilyMemberID   string                  `json:"family_member_id"`
	InvestmentID     string                  `json:"investment_id"`
	EncordExpensable bool                    `json:"encord_expensable"`
}

// validate checks required fields and parses the date.
func (req *transactionRequest) validate() (time.Time, string) {
	if req.Date == "" {
		return time.Time{}, "date is required"
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, "date must be in YYYY-MM-DD format"
	}
	if len(req.Description) < 2 {
		return time.Time{}, "description must be at least 2 characters"
	}
	if req.Amount == 0 {
		return time.Time{}, "amount must be non-zero"
	}
	if req.TransactionType != "" && !models.ValidTransactionType(req.TransactionType) {
		return time.Time{}, fmt.Sprintf("unknown transaction type '%s'", req.TransactionType)
	}
	return date, ""
}

// apply copies the request onto a transaction, converting to GBP.
func (req *transactionRequest) apply(tx *models.Transaction, date time.Time) {
	currency := req.Currency
	if currency == "" {
		currency = models.CurrencyGBP
	}
	rate := 1.0
	if currency == models.CurrencyUSD {
		rate = models.USDToGBPRate
	}

	tx.Date = date
	tx.Description = req.Description
	tx.Amount = req.Amount
	tx.Currency = currency
	tx.ExchangeRate = rate
	tx.AmountGBP = req.Amount * rate
	tx.Category = req.Category
	tx.CategoryID = req.CategoryID
	tx.Account = req.Account
	tx.AccountID = req.AccountID
	tx.Trip = req.Trip
	tx.TripID = req.TripID
	tx.FamilyMemberID = req.FamilyMemberID
	tx.InvestmentID = req.InvestmentID
	tx.EncordExpensable = req.EncordExpensable

	if req.TransactionType != "" {
		tx.TransactionType = req.TransactionType
	} else if tx.TransactionType == "" {
		tx.TransactionType = models.DeriveTransactionType(tx.AmountGBP)
	}
}

// handleTransactionsRoot handles GET (list) and POST (create) /api/transactions.
func (s *Server) handleTransactionsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleTransactionList(w, r)
	case http.MethodPost:
		s.handleTransactionCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	txns, err := s.app.Storage.TransactionStore().List(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list transactions")
		WriteError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txns,
		"count":        len(txns),
	})
}

func (s *Server) handleTransactionCreate(w http.ResponseWriter, r *http.Request) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req transactionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	date, errMsg := req.validate()
	if errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	now := time.Now()
	tx := &models.Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(tx, date)

	if err := s.app.Storage.TransactionStore().Create(r.Context(), tx); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create transaction")
		WriteError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}

	WriteJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleTransactionGet(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	tx, err := s.app.Storage.TransactionStore().Get(r.Context(), userID, id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "transaction not found")
		return
	}

	WriteJSON(w, http.StatusOK, tx)
}

func (s *Server) handleTransactionUpdate(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req transactionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	date, errMsg := req.validate()
	if errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	store := s.app.Storage.TransactionStore()
	tx, err := store.Get(r.Context(), userID, id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "transaction not found")
		return
	}

	req.apply(tx, date)
	tx.UpdatedAt = time.Now()

	if err := store.Update(r.Context(), tx); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to update transaction")
		WriteError(w, http.StatusInternalServerError, "failed to update transaction")
		return
	}

	WriteJSON(w, http.StatusOK, tx)
}

func (s *Server) handleTransactionDelete(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	if err := s.app.Storage.TransactionStore().Delete(r.Context(), userID, id); err != nil {
		WriteError(w, http.StatusNotFound, "transaction not found")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "deleted", "id": id})
}

// handleTransactionsBulkUpdate handles POST /api/transactions/bulk-update.
func (s *Server) handleTransactionsBulkUpdate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req struct {
		IDs   []string `json:"ids"`
		Patch struct {
			Category         *string                 `json:"category"`
			CategoryID       *string                 `json:"category_id"`
			Account          *string                 `json:"account"`
			AccountID        *string                 `json:"account_id"`
			Trip             *string                 `json:"trip"`
			TripID           *string                 `json:"trip_id"`
			TransactionType  *models.TransactionType `json:"transaction_type"`
			EncordExpensable *bool                   `json:"encord_expensable"`
		} `json:"patch"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		WriteError(w, http.StatusBadRequest, "ids are required")
		return
	}
	if req.Patch.TransactionType != nil && !models.ValidTransactionType(*req.Patch.TransactionType) {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("unknown transaction type '%s'", *req.Patch.TransactionType))
		return
	}

	patch := interfaces.TransactionPatch{
		Category:         req.Patch.Category,
		CategoryID:       req.Patch.CategoryID,
		Account:          req.Patch.Account,
		AccountID:        req.Patch.AccountID,
		Trip:             req.Patch.Trip,
		TripID:           req.Patch.TripID,
		TransactionType:  req.Patch.TransactionType,
		EncordExpensable: req.Patch.EncordExpensable,
	}

	result, err := s.app.PortfolioService.BulkUpdateTransactions(r.Context(), userID, req.IDs, patch)
	if err != nil {
		s.logger.Error().Err(err).Msg("Bulk update failed")
		WriteError(w, http.StatusInternalServerError, "bulk update failed")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleTransactionsBulkDelete handles POST /api/transactions/bulk-delete.
func (s *Server) handleTransactionsBulkDelete(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req struct {
		IDs []string `json:"ids"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		WriteError(w, http.StatusBadRequest, "ids are required")
		return
	}

	result, err := s.app.PortfolioService.BulkDeleteTransactions(r.Context(), userID, req.IDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("Bulk delete failed")
		WriteError(w, http.StatusInternalServerError, "bulk delete failed")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
