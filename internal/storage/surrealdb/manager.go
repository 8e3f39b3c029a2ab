// Package surrealdb implements the storage contracts over SurrealDB.
// Every domain table is keyed by UUID and scoped by user_id on read.
package surrealdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"

	"github.com/skander-fourati/zawali/internal/common"
	"github.com/skander-fourati/zawali/internal/interfaces"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	userStore         *UserStore
	transactionStore  *TransactionStore
	categoryStore     *CategoryStore
	accountStore      *AccountStore
	tripStore         *TripStore
	familyMemberStore *FamilyMemberStore
	investmentStore   *InvestmentStore
}

// tables defined up front; SurrealDB v3 errors on querying missing tables.
var tables = []string{
	"user",
	"transactions",
	"categories",
	"accounts",
	"trips",
	"family_members",
	"investments",
	"investment_market_values",
}

// NewManager connects to SurrealDB and initializes all entity stores.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}
	m.userStore = NewUserStore(db, logger)
	m.transactionStore = NewTransactionStore(db, logger)
	m.categoryStore = NewCategoryStore(db, logger)
	m.accountStore = NewAccountStore(db, logger)
	m.tripStore = NewTripStore(db, logger)
	m.familyMemberStore = NewFamilyMemberStore(db, logger)
	m.investmentStore = NewInvestmentStore(db, logger)

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

func (m *Manager) UserStore() interfaces.UserStore                 { return m.userStore }
func (m *Manager) TransactionStore() interfaces.TransactionStore   { return m.transactionStore }
func (m *Manager) CategoryStore() interfaces.CategoryStore         { return m.categoryStore }
func (m *Manager) AccountStore() interfaces.AccountStore           { return m.accountStore }
func (m *Manager) TripStore() interfaces.TripStore                 { return m.tripStore }
func (m *Manager) FamilyMemberStore() interfaces.FamilyMemberStore { return m.familyMemberStore }
func (m *Manager) InvestmentStore() interfaces.InvestmentStore     { return m.investmentStore }

func (m *Manager) Close() error {
	return m.db.Close(context.Background())
}

// isNotFoundError reports whether err is SurrealDB's record-missing error.
func isNotFoundError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "not found")
}
