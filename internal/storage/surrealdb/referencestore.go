package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/skander-fourati/zawali/internal/common"
	"github.com/skander-fourati/zawali/internal/models"
)

// The four reference entities (categories, accounts, trips, family members)
// share identical storage behavior; each store is a thin wrapper over the
// record helpers against its own table.

// CategoryStore manages category reference entities.
type CategoryStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewCategoryStore(db *surrealdb.DB, logger *common.Logger) *CategoryStore {
	return &CategoryStore{db: db, logger: logger}
}

func (s *CategoryStore) Create(ctx context.Context, c *models.Category) error {
	if c.ID == "" || c.UserID == "" {
		return fmt.Errorf("category ID and user ID are required")
	}
	return upsertRecord(ctx, s.db, "categories", c.ID, c)
}

func (s *CategoryStore) List(ctx context.Context, userID string) ([]*models.Category, error) {
	return listByUser[models.Category](ctx, s.db, "categories", userID)
}

func (s *CategoryStore) Update(ctx context.Context, c *models.Category) error {
	existing, err := selectRecord[models.Category](ctx, s.db, "categories", c.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != c.UserID {
		return ErrNotFound
	}
	return upsertRecord(ctx, s.db, "categories", c.ID, c)
}

func (s *CategoryStore) Delete(ctx context.Context, userID, id string) error {
	existing, err := selectRecord[models.Category](ctx, s.db, "categories", id)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != userID {
		return ErrNotFound
	}
	return deleteRecord[models.Category](ctx, s.db, "categories", id)
}

// AccountStore manages account reference entities.
type AccountStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewAccountStore(db *surrealdb.DB, logger *common.Logger) *AccountStore {
	return &AccountStore{db: db, logger: logger}
}

func (s *AccountStore) Create(ctx context.Context, a *models.Account) error {
	if a.ID == "" || a.UserID == "" {
		return fmt.Errorf("account ID and user ID are required")
	}
	return upsertRecord(ctx, s.db, "accounts", a.ID, a)
}

func (s *AccountStore) List(ctx context.Context, userID string) ([]*models.Account, error) {
	return listByUser[models.Account](ctx, s.db, "accounts", userID)
}

func (s *AccountStore) Update(ctx context.Context, a *models.Account) error {
	existing, err := selectRecord[models.Account](ctx, s.db, "accounts", a.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != a.UserID {
		return ErrNotFound
	}
	return upsertRecord(ctx, s.db, "accounts", a.ID, a)
}

func (s *AccountStore) Delete(ctx context.Context, userID, id string) error {
	existing, err := selectRecord[models.Account](ctx, s.db, "accounts", id)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != userID {
		return ErrNotFound
	}
	return deleteRecord[models.Account](ctx, s.db, "accounts", id)
}

// TripStore manages trip reference entities.
type TripStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewTripStore(db *surrealdb.DB, logger *common.Logger) *TripStore {
	return &TripStore{db: db, logger: logger}
}

func (s *TripStore) Create(ctx context.Context, t *models.Trip) error {
	if t.ID == "" || t.UserID == "" {
		return fmt.Errorf("trip ID and user ID are required")
	}
	return upsertRecord(ctx, s.db, "trips", t.ID, t)
}

func (s *TripStore) List(ctx context.Context, userID string) ([]*models.Trip, error) {
	return listByUser[models.Trip](ctx, s.db, "trips", userID)
}

func (s *TripStore) Update(ctx context.Context, t *models.Trip) error {
	existing, err := selectRecord[models.Trip](ctx, s.db, "trips", t.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != t.UserID {
		return ErrNotFound
	}
	return upsertRecord(ctx, s.db, "trips", t.ID, t)
}

func (s *TripStore) Delete(ctx context.Context, userID, id string) error {
	existing, err := selectRecord[models.Trip](ctx, s.db, "trips", id)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != userID {
		return ErrNotFound
	}
	return deleteRecord[models.Trip](ctx, s.db, "trips", id)
}

// FamilyMemberStore manages family member reference entities.
type FamilyMemberStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewFamilyMemberStore(db *surrealdb.DB, logger *common.Logger) *FamilyMemberStore {
	return &FamilyMemberStore{db: db, logger: logger}
}

func (s *FamilyMemberStore) Create(ctx context.Context, m *models.FamilyMember) error {
	if m.ID == "" || m.UserID == "" {
		return fmt.Errorf("family member ID and user ID are required")
	}
	if m.Status == "" {
		m.Status = models.FamilyMemberActive
	}
	return upsertRecord(ctx, s.db, "family_members", m.ID, m)
}

func (s *FamilyMemberStore) List(ctx context.Context, userID string) ([]*models.FamilyMember, error) {
	return listByUser[models.FamilyMember](ctx, s.db, "family_members", userID)
}

func (s *FamilyMemberStore) Update(ctx context.Context, m *models.FamilyMember) error {
	existing, err := selectRecord[models.FamilyMember](ctx, s.db, "family_members", m.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != m.UserID {
		return ErrNotFound
	}
	return upsertRecord(ctx, s.db, "family_members", m.ID, m)
}

func (s *FamilyMemberStore) Delete(ctx context.Context, userID, id string) error {
	existing, err := selectRecord[models.FamilyMember](ctx, s.db, "family_members", id)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != userID {
		return ErrNotFound
	}
	return deleteRecord[models.FamilyMember](ctx, s.db, "family_members", id)
}
