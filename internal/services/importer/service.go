package importer

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skander-fourati/zawali/internal/common"
	"github.com/skander-fourati/zawali/internal/interfaces"
	"github.com/skander-fourati/zawali/internal/models"
)

// Service implements interfaces.ImportService.
type Service struct {
	storage interfaces.StorageManager
	parser  *Parser
	logger  *common.Logger
	now     func() time.Time
}

// NewService creates a new import service.
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		parser:  NewParser(logger),
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the service clock. Used by tests to pin "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Preview parses raw CSV text and assembles the review payload. Detection
// only runs once every row passes validation; until then the advisory flags
// stay empty so the user fixes blocking errors first.
func (s *Service) Preview(ctx context.Context, raw string, format models.StatementFormat) (*models.ImportPreview, error) {
	now := s.now()

	txns, err := s.parser.Parse(raw, format, now)
	if err != nil {
		return nil, err
	}

	preview := &models.ImportPreview{
		Format:       format,
		Transactions: txns,
	}

	validation := ValidateBatch(txns, format, now)
	for _, v := range validation {
		if !v.Valid() {
			preview.Validation = append(preview.Validation, v)
		}
	}

	if len(preview.Validation) == 0 {
		preview.Suspicious = DetectSuspicious(txns, format)
	}

	s.logger.Info().
		Str("format", string(format)).
		Int("parsed", len(txns)).
		Int("invalid", len(preview.Validation)).
		Int("suspicious", len(preview.Suspicious)).
		Msg("Statement preview built")

	return preview, nil
}

// Commit persists reviewed rows for the user. Each row is written
// independently; failures are collected into the result rather than aborting
// the batch, so a partial-failure import reports exactly what landed.
func (s *Service) Commit(ctx context.Context, userID string, rows []*models.ParsedTransaction) (*models.BulkResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	categoryIDs, accountIDs, err := s.loadReferenceIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &models.BulkResult{Failures: []models.BulkFailure{}}
	store := s.storage.TransactionStore()

	for _, row := range rows {
		tx, err := s.toTransaction(userID, row, categoryIDs, accountIDs)
		if err == nil {
			err = store.Create(ctx, tx)
		}
		if err != nil {
			result.Failures = append(result.Failures, models.BulkFailure{
				Description: row.Description,
				Date:        row.Date,
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
		Msg("Import committed")

	return result, nil
}

// loadReferenceIDs builds name→ID lookups for the user's categories and
// accounts so committed transactions carry references, not just names.
func (s *Service) loadReferenceIDs(ctx context.Context, userID string) (map[string]string, map[string]string, error) {
	categories, err := s.storage.CategoryStore().List(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load categories: %w", err)
	}
	accounts, err := s.storage.AccountStore().List(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	categoryIDs := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryIDs[strings.ToLower(c.Name)] = c.ID
	}
	accountIDs := make(map[string]string, len(accounts))
	for _, a := range accounts {
		accountIDs[strings.ToLower(a.Name)] = a.ID
	}
	return categoryIDs, accountIDs, nil
}

// toTransaction converts a reviewed row into a persistable transaction.
// Type derives from the GBP sign here and only here; later edits may decouple
// it. GBP amounts are rounded to pence at this boundary.
func (s *Service) toTransaction(userID string, row *models.ParsedTransaction, categoryIDs, accountIDs map[string]string) (*models.Transaction, error) {
	date, err := time.Parse("2006-01-02", row.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", row.Date)
	}

	now := s.now()
	tx := &models.Transaction{
		ID:               uuid.New().String(),
		UserID:           userID,
		Date:             date,
		Description:      row.Description,
		AmountGBP:        roundPence(row.AmountGBP),
		Currency:         row.Currency,
		TransactionType:  models.DeriveTransactionType(row.AmountGBP),
		Category:         row.Category,
		Account:          row.Account,
		Trip:             row.Trip,
		CategoryID:       categoryIDs[strings.ToLower(row.Category)],
		AccountID:        accountIDs[strings.ToLower(row.Account)],
		EncordExpensable: row.EncordExpensable,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if row.Currency == models.CurrencyUSD && row.AmountUSD != nil {
		tx.Amount = roundPence(*row.AmountUSD)
		tx.ExchangeRate = models.USDToGBPRate
	} else {
		tx.Amount = tx.AmountGBP
		tx.ExchangeRate = 1
	}
	return tx, nil
}

// roundPence rounds to 2 decimal places at the persistence boundary.
func roundPence(v float64) float64 {
	return math.Round(v*100) / 100
}
