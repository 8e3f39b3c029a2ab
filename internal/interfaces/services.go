package interfaces

import (
	"context"
	"time"

	"github.com/skander-fourati/zawali/internal/models"
)

// ImportService runs the statement import pipeline: parse, validate, detect,
// commit.
type ImportService interface {
	// Preview parses raw CSV text and returns the review payload. Malformed
	// rows are dropped (never a file-level error); validation errors are
	// blocking, suspicious flags advisory.
	Preview(ctx context.Context, raw string, format models.StatementFormat) (*models.ImportPreview, error)

	// Commit persists reviewed rows for the user, deriving transaction type
	// and exchange rate per row. Per-row failures are aggregated, not retried.
	Commit(ctx context.Context, userID string, rows []*models.ParsedTransaction) (*models.BulkResult, error)
}

// AnalyticsService derives all dashboard and insights metrics. Each method
// loads the user's transactions once and computes pure functions over them;
// the reference time is injected for month-boundary logic.
type AnalyticsService interface {
	MonthlyStats(ctx context.Context, userID string, now time.Time) (*models.MonthlyStats, error)
	CategoryBreakdown(ctx context.Context, userID string, month time.Time) ([]models.CategoryBreakdownEntry, error)
	ExpensesOverTime(ctx context.Context, userID string) ([]models.MonthSeries, error)
	IncomeOverTime(ctx context.Context, userID string) ([]models.ChartPoint, error)
	SavingsOverTime(ctx context.Context, userID string) ([]models.ChartPoint, error)
	InvestmentsOverTime(ctx context.Context, userID string) ([]models.ChartPoint, error)
	TripBreakdown(ctx context.Context, userID string) ([]models.ChartPoint, error)
	InvestmentsRolling12(ctx context.Context, userID string, now time.Time) (*models.RollingInvestments, error)
	ExpensesChartPNG(ctx context.Context, userID string) ([]byte, error)
}

// ValuationInput is the user-entered basis for back-filling a holding's
// valuation history.
type ValuationInput struct {
	Ticker         string
	InvestmentType string
	AccountID      string
	AccountName    string
	CurrentValue   float64
	PurchaseDate   time.Time
	TotalGrowthPct float64 // total since purchase, not annualized
}

// PortfolioService manages holdings, synthetic valuation history, and bulk
// transaction operations.
type PortfolioService interface {
	// SaveWithHistory creates (or reuses) the holding, back-fills a monthly
	// valuation series from the growth inputs, and writes the linking
	// transaction. Steps run sequentially with no rollback: on failure the
	// earlier writes persist and the failing step is reported.
	SaveWithHistory(ctx context.Context, userID string, input ValuationInput) (*models.Investment, error)

	// AccountIndex reconstructs the investment-to-account mapping by a single
	// pass over the user's transactions.
	AccountIndex(ctx context.Context, userID string) (map[string]string, error)

	BulkUpdateTransactions(ctx context.Context, userID string, ids []string, patch TransactionPatch) (*models.BulkResult, error)
	BulkDeleteTransactions(ctx context.Context, userID string, ids []string) (*models.BulkResult, error)
}

// TransactionPatch holds the optional fields a bulk edit may set. Nil fields
// are left unchanged.
type TransactionPatch struct {
	Category         *string
	CategoryID       *string
	Account          *string
	AccountID        *string
	Trip             *string
	TripID           *string
	TransactionType  *models.TransactionType
	EncordExpensable *bool
}
