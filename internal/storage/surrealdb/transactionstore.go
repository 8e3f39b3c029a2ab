package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/skander-fourati/zawali/internal/common"
	"github.com/skander-fourati/zawali/internal/models"
)

// TransactionStore manages persisted transactions.
type TransactionStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewTransactionStore(db *surrealdb.DB, logger *common.Logger) *TransactionStore {
	return &TransactionStore{db: db, logger: logger}
}

func (s *TransactionStore) Create(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if tx.UserID == "" {
		return fmt.Errorf("transaction user ID is required")
	}
	return upsertRecord(ctx, s.db, "transactions", tx.ID, tx)
}

// CreateBatch writes transactions one by one; the first failure aborts and is
// returned. Callers needing per-item tracking drive Create themselves.
func (s *TransactionStore) CreateBatch(ctx context.Context, txs []*models.Transaction) error {
	for i, tx := range txs {
		if err := s.Create(ctx, tx); err != nil {
			return fmt.Errorf("batch insert failed at item %d of %d: %w", i+1, len(txs), err)
		}
	}
	return nil
}

func (s *TransactionStore) Get(ctx context.Context, userID, id string) (*models.Transaction, error) {
	tx, err := selectRecord[models.Transaction](ctx, s.db, "transactions", id)
	if err != nil {
		return nil, err
	}
	if tx == nil || tx.UserID != userID {
		return nil, ErrNotFound
	}
	return tx, nil
}

func (s *TransactionStore) List(ctx context.Context, userID string) ([]*models.Transaction, error) {
	return listByUser[models.Transaction](ctx, s.db, "transactions", userID)
}

func (s *TransactionStore) Update(ctx context.Context, tx *models.Transaction) error {
	if _, err := s.Get(ctx, tx.UserID, tx.ID); err != nil {
		return err
	}
	return upsertRecord(ctx, s.db, "transactions", tx.ID, tx)
}

func (s *TransactionStore) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return deleteRecord[models.Transaction](ctx, s.db, "transactions", id)
}
