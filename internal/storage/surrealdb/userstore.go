package surrealdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/skander-fourati/zawali/internal/common"
	"github.com/skander-fourati/zawali/internal/models"
)

// ErrNotFound is returned when a scoped lookup finds no record.
var ErrNotFound = errors.New("record not found")

// UserStore manages application accounts.
type UserStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewUserStore(db *surrealdb.DB, logger *common.Logger) *UserStore {
	return &UserStore{db: db, logger: logger}
}

func (s *UserStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := selectRecord[models.User](ctx, s.db, "user", userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql := "SELECT * FROM user WHERE email = $email LIMIT 1"
	users, err := queryRecords[models.User](ctx, s.db, sql, map[string]any{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return users[0], nil
}

func (s *UserStore) SaveUser(ctx context.Context, user *models.User) error {
	return upsertRecord(ctx, s.db, "user", user.ID, user)
}

func (s *UserStore) DeleteUser(ctx context.Context, userID string) error {
	return deleteRecord[models.User](ctx, s.db, "user", userID)
}
