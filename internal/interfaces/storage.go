// Package interfaces defines service and storage contracts for zawali
package interfaces

import (
	"context"

	"github.com/skander-fourati/zawali/internal/models"
)

// StorageManager coordinates all entity stores. Every read issued through a
// store is scoped by user ID; there are no cross-user queries.
type StorageManager interface {
	UserStore() UserStore
	TransactionStore() TransactionStore
	CategoryStore() CategoryStore
	AccountStore() AccountStore
	TripStore() TripStore
	FamilyMemberStore() FamilyMemberStore
	InvestmentStore() InvestmentStore

	Close() error
}

// UserStore manages application accounts.
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error
}

// TransactionStore manages persisted transactions.
type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	CreateBatch(ctx context.Context, txs []*models.Transaction) error
	Get(ctx context.Context, userID, id string) (*models.Transaction, error)
	List(ctx context.Context, userID string) ([]*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, userID, id string) error
}

// CategoryStore manages category reference entities.
type CategoryStore interface {
	Create(ctx context.Context, c *models.Category) error
	List(ctx context.Context, userID string) ([]*models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, userID, id string) error
}

// AccountStore manages account reference entities.
type AccountStore interface {
	Create(ctx context.Context, a *models.Account) error
	List(ctx context.Context, userID string) ([]*models.Account, error)
	Update(ctx context.Context, a *models.Account) error
	Delete(ctx context.Context, userID, id string) error
}

// TripStore manages trip reference entities.
type TripStore interface {
	Create(ctx context.Context, t *models.Trip) error
	List(ctx context.Context, userID string) ([]*models.Trip, error)
	Update(ctx context.Context, t *models.Trip) error
	Delete(ctx context.Context, userID, id string) error
}

// FamilyMemberStore manages family member reference entities.
type FamilyMemberStore interface {
	Create(ctx context.Context, m *models.FamilyMember) error
	List(ctx context.Context, userID string) ([]*models.FamilyMember, error)
	Update(ctx context.Context, m *models.FamilyMember) error
	Delete(ctx context.Context, userID, id string) error
}

// InvestmentStore manages holdings and their market value time series.
type InvestmentStore interface {
	Create(ctx context.Context, inv *models.Investment) error
	Get(ctx context.Context, userID, id string) (*models.Investment, error)
	GetByTicker(ctx context.Context, userID, ticker string) (*models.Investment, error)
	List(ctx context.Context, userID string) ([]*models.Investment, error)
	Update(ctx context.Context, inv *models.Investment) error
	Delete(ctx context.Context, userID, id string) error

	CreateMarketValue(ctx context.Context, mv *models.InvestmentMarketValue) error
	ListMarketValues(ctx context.Context, userID, investmentID string) ([]*models.InvestmentMarketValue, error)
	LatestMarketValue(ctx context.Context, userID, investmentID string) (*models.InvestmentMarketValue, error)
	DeleteMarketValues(ctx context.Context, userID, investmentID string) (int, error)
}
