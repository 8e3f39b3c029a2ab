package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skander-fourati/zawali/internal/common"
	"github.com/skander-fourati/zawali/internal/interfaces"
	"github.com/skander-fourati/zawali/internal/models"
)

// Service implements interfaces.PortfolioService.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
	now     func() time.Time
}

// NewService creates a new portfolio service.
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{storage: storage, logger: logger, now: time.Now}
}

// WithClock overrides the service clock. Used by tests to pin "now".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SaveWithHistory creates or reuses the holding, back-fills its monthly
// valuation series from the growth inputs, then writes the linking
// transaction. The steps run sequentially with no compensating rollback:
// a failure stops the chain, earlier writes persist, and the error names
// the failing step.
func (s *Service) SaveWithHistory(ctx context.Context, userID string, input interfaces.ValuationInput) (*models.Investment, error) {
	if input.Ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	now := s.now()

	invStore := s.storage.InvestmentStore()
	inv, err := invStore.GetByTicker(ctx, userID, input.Ticker)
	if err != nil || inv == nil {
		inv = &models.Investment{
			ID:             uuid.New().String(),
			UserID:         userID,
			Ticker:         input.Ticker,
			InvestmentType: input.InvestmentType,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := invStore.Create(ctx, inv); err != nil {
			return nil, fmt.Errorf("failed to create investment: %w", err)
		}
	}

	months := WholeMonthsBetween(input.PurchaseDate, now)
	purchase := PurchaseAmount(input.CurrentValue, input.TotalGrowthPct, months)
	rate := MonthlyRate(input.TotalGrowthPct, months)
	series := SyntheticSeries(purchase, rate, input.PurchaseDate, months)

	for i, point := range series {
		mv := &models.InvestmentMarketValue{
			ID:           uuid.New().String(),
			UserID:       userID,
			InvestmentID: inv.ID,
			MarketValue:  point.Value,
			UpdatedAt:    point.Date,
			AccountID:    input.AccountID,
		}
		if err := invStore.CreateMarketValue(ctx, mv); err != nil {
			return nil, fmt.Errorf("failed to save valuation point %d of %d (earlier points persist): %w", i+1, len(series), err)
		}
	}

	// Linking transaction: this is what ties the holding to an account, since
	// no direct relation is stored.
	tx := &models.Transaction{
		ID:              uuid.New().String(),
		UserID:          userID,
		Date:            input.PurchaseDate,
		Description:     fmt.Sprintf("%s purchase", input.Ticker),
		Amount:          purchase,
		AmountGBP:       purchase,
		Currency:        models.CurrencyGBP,
		ExchangeRate:    1,
		TransactionType: models.TxTypeTransfer,
		Category:        models.CategoryInvestment,
		Account:         input.AccountName,
		AccountID:       input.AccountID,
		InvestmentID:    inv.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.storage.TransactionStore().Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save linking transaction (valuation history persists): %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("ticker", input.Ticker).
		Int("valuation_points", len(series)).
		Float64("purchase_amount", purchase).
		Msg("Investment saved with back-filled history")

	return inv, nil
}

// AccountIndex loads the user's transactions and reconstructs the
// investment-to-account mapping in one pass.
func (s *Service) AccountIndex(ctx context.Context, userID string) (map[string]string, error) {
	txns, err := s.storage.TransactionStore().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return BuildAccountIndex(txns), nil
}

// BulkUpdateTransactions applies the patch to each transaction in turn.
// Items fail independently; the result always carries both the success count
// and the failure list.
func (s *Service) BulkUpdateTransactions(ctx context.Context, userID string, ids []string, patch interfaces.TransactionPatch) (*models.BulkResult, error) {
	store := s.storage.TransactionStore()
	result := &models.BulkResult{Failures: []models.BulkFailure{}}

	for _, id := range ids {
		tx, err := store.Get(ctx, userID, id)
		if err != nil {
			result.Failures = append(result.Failures, models.BulkFailure{ID: id, Error: err.Error()})
			continue
		}

		applyPatch(tx, patch)
		tx.UpdatedAt = s.now()

		if err := store.Update(ctx, tx); err != nil {
			result.Failures = append(result.Failures, models.BulkFailure{
				ID:          id,
				Description: tx.Description,
				Date:        tx.Date.Format("2006-01-02"),
				Error:       err.Error(),
			})
			continue
		}
		result.SuccessCount++
	}

	s.logger.Info().
		Str("user_id", userID).
		Int("success", result.SuccessCount).
		Int("failed", len(result.Failures)).
		Msg("Bulk update finished")
	return result, nil
}

// BulkDeleteTransactions deletes each transaction in turn with per-item
// failure tracking.
func (s *Service) BulkDeleteTransactions(ctx context.Context, userID string, ids []string) (*models.BulkResult, error) {
	store := s.storage.TransactionStore()
	result := &models.BulkResult{Failures: []models.BulkFailure{}}

	for _, id := range ids {
		failure := models.BulkFailure{ID: id}
		if tx, err := store.Get(ctx, userID, id); err == nil {
			failure.Description = tx.Description
			failure.Date = tx.Date.Format("2006-01-02")
		}
		if err := store.Delete(ctx, userID, id); err != nil {
			failure.Error = err.Error()
			result.Failures = append(result.Failures, failure)
			continue
		}
		result.SuccessCount++
	}

	s.logger.Info().
		Str("user_id", userID).
		Int("success", result.SuccessCount).
		Int("failed", len(result.Failures)).
		Msg("Bulk delete finished")
	return result, nil
}

// applyPatch copies the non-nil patch fields onto the transaction. The
// transaction type is accepted as given, with no re-derivation from the
// amount sign.
func applyPatch(tx *models.Transaction, patch interfaces.TransactionPatch) {
	if patch.Category != nil {
		tx.Category = *patch.Category
	}
	if patch.CategoryID != nil {
		tx.CategoryID = *patch.CategoryID
	}
	if patch.Account != nil {
		tx.Account = *patch.Account
	}
	if patch.AccountID != nil {
		tx.AccountID = *patch.AccountID
	}
	if patch.Trip != nil {
		tx.Trip = *patch.Trip
	}
	if patch.TripID != nil {
		tx.TripID = *patch.TripID
	}
	if patch.TransactionType != nil {
		tx.TransactionType = *patch.TransactionType
	}
	if patch.EncordExpensable != nil {
		tx.EncordExpensable = *patch.EncordExpensable
	}
}
