package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/skander-fourati/zawali/internal/common"
	"github.com/skander-fourati/zawali/internal/models"
)

// InvestmentStore manages holdings and their market value time series.
type InvestmentStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewInvestmentStore(db *surrealdb.DB, logger *common.Logger) *InvestmentStore {
	return &InvestmentStore{db: db, logger: logger}
}

func (s *InvestmentStore) Create(ctx context.Context, inv *models.Investment) error {
	if inv.ID == "" || inv.UserID == "" {
		return fmt.Errorf("investment ID and user ID are required")
	}
	if inv.Ticker == "" {
		return fmt.Errorf("investment ticker is required")
	}
	return upsertRecord(ctx, s.db, "investments", inv.ID, inv)
}

func (s *InvestmentStore) Get(ctx context.Context, userID, id string) (*models.Investment, error) {
	inv, err := selectRecord[models.Investment](ctx, s.db, "investments", id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.UserID != userID {
		return nil, ErrNotFound
	}
	return inv, nil
}

func (s *InvestmentStore) GetByTicker(ctx context.Context, userID, ticker string) (*models.Investment, error) {
	sql := "SELECT * FROM investments WHERE user_id = $user_id AND ticker = $ticker LIMIT 1"
	vars := map[string]any{"user_id": userID, "ticker": ticker}
	invs, err := queryRecords[models.Investment](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to look up investment by ticker: %w", err)
	}
	if len(invs) == 0 {
		return nil, ErrNotFound
	}
	return invs[0], nil
}

func (s *InvestmentStore) List(ctx context.Context, userID string) ([]*models.Investment, error) {
	return listByUser[models.Investment](ctx, s.db, "investments", userID)
}

func (s *InvestmentStore) Update(ctx context.Context, inv *models.Investment) error {
	if _, err := s.Get(ctx, inv.UserID, inv.ID); err != nil {
		return err
	}
	return upsertRecord(ctx, s.db, "investments", inv.ID, inv)
}

func (s *InvestmentStore) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return deleteRecord[models.Investment](ctx, s.db, "investments", id)
}

func (s *InvestmentStore) CreateMarketValue(ctx context.Context, mv *models.InvestmentMarketValue) error {
	if mv.ID == "" || mv.UserID == "" || mv.InvestmentID == "" {
		return fmt.Errorf("market value ID, user ID, and investment ID are required")
	}
	return upsertRecord(ctx, s.db, "investment_market_values", mv.ID, mv)
}

func (s *InvestmentStore) ListMarketValues(ctx context.Context, userID, investmentID string) ([]*models.InvestmentMarketValue, error) {
	sql := "SELECT * FROM investment_market_values WHERE user_id = $user_id AND investment_id = $investment_id ORDER BY updated_at ASC"
	vars := map[string]any{"user_id": userID, "investment_id": investmentID}
	return queryRecords[models.InvestmentMarketValue](ctx, s.db, sql, vars)
}

// LatestMarketValue returns the newest point, which is treated as the
// holding's current value.
func (s *InvestmentStore) LatestMarketValue(ctx context.Context, userID, investmentID string) (*models.InvestmentMarketValue, error) {
	sql := "SELECT * FROM investment_market_values WHERE user_id = $user_id AND investment_id = $investment_id ORDER BY updated_at DESC LIMIT 1"
	vars := map[string]any{"user_id": userID, "investment_id": investmentID}
	mvs, err := queryRecords[models.InvestmentMarketValue](ctx, s.db, sql, vars)
	if err != nil {
		return nil, err
	}
	if len(mvs) == 0 {
		return nil, ErrNotFound
	}
	return mvs[0], nil
}

func (s *InvestmentStore) DeleteMarketValues(ctx context.Context, userID, investmentID string) (int, error) {
	sql := "DELETE investment_market_values WHERE user_id = $user_id AND investment_id = $investment_id RETURN BEFORE"
	vars := map[string]any{"user_id": userID, "investment_id": investmentID}
	deleted, err := queryRecords[models.InvestmentMarketValue](ctx, s.db, sql, vars)
	if err != nil {
		return 0, fmt.Errorf("failed to delete market values: %w", err)
	}
	return len(deleted), nil
}
