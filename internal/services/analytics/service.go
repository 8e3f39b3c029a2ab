package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/skander-fourati/zawali/internal/common"
	"github.com/skander-fourati/zawali/internal/interfaces"
	"github.com/skander-fourati/zawali/internal/models"
)

// Service implements interfaces.AnalyticsService by loading the user's
// transactions once per call and delegating to the pure aggregation
// functions in this package.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new analytics service.
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{storage: storage, logger: logger}
}

func (s *Service) load(ctx context.Context, userID string) ([]*models.Transaction, error) {
	txns, err := s.storage.TransactionStore().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return txns, nil
}

func (s *Service) MonthlyStats(ctx context.Context, userID string, now time.Time) (*models.MonthlyStats, error) {
	txns, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return MonthlyStats(txns, now), nil
}

func (s *Service) CategoryBreakdown(ctx context.Context, userID string, month time.Time) ([]models.CategoryBreakdownEntry, error) {
	txns, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return CategoryBreakdown(txns, month), nil
}

func (s *Service) ExpensesOverTime(ctx context.Context, userID string) ([]models.MonthSeries, error) {
	txns, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ExpensesOverTime(txns), nil
}

func (s *Service) IncomeOverTime(ctx context.Context, userID string) ([]models.ChartPoint, error) {
	txns, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return IncomeOverTime(txns), nil
}

func (s *Service) SavingsOverTime(ctx context.Context, userID string) ([]models.ChartPoint, error) {
	txns, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return SavingsOverTime(txns), nil
}

func (s *Service) InvestmentsOverTime(ctx context.Context, userID string) ([]models.ChartPoint, error) {
	txns, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return InvestmentsOverTime(txns), nil
}

func (s *Service) TripBreakdown(ctx context.Context, userID string) ([]models.ChartPoint, error) {
	txns, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return TripBreakdown(txns), nil
}

func (s *Service) InvestmentsRolling12(ctx context.Context, userID string, now time.Time) (*models.RollingInvestments, error) {
	txns, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return InvestmentsRolling12(txns, now), nil
}

func (s *Service) ExpensesChartPNG(ctx context.Context, userID string) ([]byte, error) {
	txns, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return RenderExpensesChart(ExpenseTotalsOverTime(txns))
}
