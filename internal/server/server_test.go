package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/skander-fourati/zawali/internal/app"
	"github.com/skander-fourati/zawali/internal/common"
	"github.com/skander-fourati/zawali/internal/interfaces"
	"github.com/skander-fourati/zawali/internal/models"
	"github.com/skander-fourati/zawali/internal/services/analytics"
	"github.com/skander-fourati/zawali/internal/services/importer"
	"github.com/skander-fourati/zawali/internal/services/portfolio"
)

// --- in-memory storage for handler tests ---

type memUserStore struct {
	users map[string]*models.User
}

func (m *memUserStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (m *memUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (m *memUserStore) SaveUser(_ context.Context, user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memUserStore) DeleteUser(_ context.Context, userID string) error {
	delete(m.users, userID)
	return nil
}

type memTransactionStore struct {
	txns map[string]*models.Transaction
}

func (m *memTransactionStore) Create(_ context.Context, tx *models.Transaction) error {
	m.txns[tx.ID] = tx
	return nil
}

func (m *memTransactionStore) CreateBatch(ctx context.Context, txs []*models.Transaction) error {
	for _, tx := range txs {
		if err := m.Create(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

func (m *memTransactionStore) Get(_ context.Context, userID, id string) (*models.Transaction, error) {
	tx, ok := m.txns[id]
	if !ok || tx.UserID != userID {
		return nil, fmt.Errorf("transaction not found")
	}
	return tx, nil
}

func (m *memTransactionStore) List(_ context.Context, userID string) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, tx := range m.txns {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *memTransactionStore) Update(_ context.Context, tx *models.Transaction) error {
	if _, ok := m.txns[tx.ID]; !ok {
		return fmt.Errorf("transaction not found")
	}
	m.txns[tx.ID] = tx
	return nil
}

func (m *memTransactionStore) Delete(_ context.Context, userID, id string) error {
	tx, ok := m.txns[id]
	if !ok || tx.UserID != userID {
		return fmt.Errorf("transaction not found")
	}
	delete(m.txns, id)
	return nil
}

type memCategoryStore struct {
	categories map[string]*models.Category
}

func (m *memCategoryStore) Create(_ context.Context, c *models.Category) error {
	m.categories[c.ID] = c
	return nil
}

func (m *memCategoryStore) List(_ context.Context, userID string) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range m.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCategoryStore) Update(_ context.Context, c *models.Category) error {
	if _, ok := m.categories[c.ID]; !ok {
		return fmt.Errorf("category not found")
	}
	m.categories[c.ID] = c
	return nil
}

func (m *memCategoryStore) Delete(_ context.Context, userID, id string) error {
	c, ok := m.categories[id]
	if !ok || c.UserID != userID {
		return fmt.Errorf("category not found")
	}
	delete(m.categories, id)
	return nil
}

type memAccountStore struct {
	accounts map[string]*models.Account
}

func (m *memAccountStore) Create(_ context.Context, a *models.Account) error {
	m.accounts[a.ID] = a
	return nil
}

func (m *memAccountStore) List(_ context.Context, userID string) ([]*models.Account, error) {
	var out []*models.Account
	for _, a := range m.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAccountStore) Update(_ context.Context, a *models.Account) error {
	if _, ok := m.accounts[a.ID]; !ok {
		return fmt.Errorf("account not found")
	}
	m.accounts[a.ID] = a
	return nil
}

func (m *memAccountStore) Delete(_ context.Context, userID, id string) error {
	a, ok := m.accounts[id]
	if !ok || a.UserID != userID {
		return fmt.Errorf("account not found")
	}
	delete(m.accounts, id)
	return nil
}

type memTripStore struct {
	trips map[string]*models.Trip
}

func (m *memTripStore) Create(_ context.Context, tr *models.Trip) error {
	m.trips[tr.ID] = tr
	return nil
}

func (m *memTripStore) List(_ context.Context, userID string) ([]*models.Trip, error) {
	var out []*models.Trip
	for _, tr := range m.trips {
		if tr.UserID == userID {
			out = append(out, tr)
		}
	}
	return out, nil
}

func (m *memTripStore) Update(_ context.Context, tr *models.Trip) error {
	if _, ok := m.trips[tr.ID]; !ok {
		return fmt.Errorf("trip not found")
	}
	m.trips[tr.ID] = tr
	return nil
}

func (m *memTripStore) Delete(_ context.Context, userID, id string) error {
	tr, ok := m.trips[id]
	if !ok || tr.UserID != userID {
		return fmt.Errorf("trip not found")
	}
	delete(m.trips, id)
	return nil
}

type memFamilyMemberStore struct {
	members map[string]*models.FamilyMember
}

func (m *memFamilyMemberStore) Create(_ context.Context, fm *models.FamilyMember) error {
	m.members[fm.ID] = fm
	return nil
}

func (m *memFamilyMemberStore) List(_ context.Context, userID string) ([]*models.FamilyMember, error) {
	var out []*models.FamilyMember
	for _, fm := range m.members {
		if fm.UserID == userID {
			out = append(out, fm)
		}
	}
	return out, nil
}

func (m *memFamilyMemberStore) Update(_ context.Context, fm *models.FamilyMember) error {
	if _, ok := m.members[fm.ID]; !ok {
		return fmt.Errorf("family member not found")
	}
	m.members[fm.ID] = fm
	return nil
}

func (m *memFamilyMemberStore) Delete(_ context.Context, userID, id string) error {
	fm, ok := m.members[id]
	if !ok || fm.UserID != userID {
		return fmt.Errorf("family member not found")
	}
	delete(m.members, id)
	return nil
}

type memInvestmentStore struct {
	investments map[string]*models.Investment
	values      []*models.InvestmentMarketValue
}

func (m *memInvestmentStore) Create(_ context.Context, inv *models.Investment) error {
	m.investments[inv.ID] = inv
	return nil
}

func (m *memInvestmentStore) Get(_ context.Context, userID, id string) (*models.Investment, error) {
	inv, ok := m.investments[id]
	if !ok || inv.UserID != userID {
		return nil, fmt.Errorf("investment not found")
	}
	return inv, nil
}

func (m *memInvestmentStore) GetByTicker(_ context.Context, userID, ticker string) (*models.Investment, error) {
	for _, inv := range m.investments {
		if inv.UserID == userID && inv.Ticker == ticker {
			return inv, nil
		}
	}
	return nil, fmt.Errorf("investment not found")
}

func (m *memInvestmentStore) List(_ context.Context, userID string) ([]*models.Investment, error) {
	var out []*models.Investment
	for _, inv := range m.investments {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memInvestmentStore) Update(_ context.Context, inv *models.Investment) error {
	if _, ok := m.investments[inv.ID]; !ok {
		return fmt.Errorf("investment not found")
	}
	m.investments[inv.ID] = inv
	return nil
}

func (m *memInvestmentStore) Delete(_ context.Context, userID, id string) error {
	inv, ok := m.investments[id]
	if !ok || inv.UserID != userID {
		return fmt.Errorf("investment not found")
	}
	delete(m.investments, id)
	return nil
}

func (m *memInvestmentStore) CreateMarketValue(_ context.Context, mv *models.InvestmentMarketValue) error {
	m.values = append(m.values, mv)
	return nil
}

func (m *memInvestmentStore) ListMarketValues(_ context.Context, userID, investmentID string) ([]*models.InvestmentMarketValue, error) {
	var out []*models.InvestmentMarketValue
	for _, mv := range m.values {
		if mv.UserID == userID && mv.InvestmentID == investmentID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (m *memInvestmentStore) LatestMarketValue(_ context.Context, userID, investmentID string) (*models.InvestmentMarketValue, error) {
	var latest *models.InvestmentMarketValue
	for _, mv := range m.values {
		if mv.UserID != userID || mv.InvestmentID != investmentID {
			continue
		}
		if latest == nil || mv.UpdatedAt.After(latest.UpdatedAt) {
			latest = mv
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("no market values")
	}
	return latest, nil
}

func (m *memInvestmentStore) DeleteMarketValues(_ context.Context, userID, investmentID string) (int, error) {
	var kept []*models.InvestmentMarketValue
	deleted := 0
	for _, mv := range m.values {
		if mv.UserID == userID && mv.InvestmentID == investmentID {
			deleted++
			continue
		}
		kept = append(kept, mv)
	}
	m.values = kept
	return deleted, nil
}

type memStorage struct {
	users         *memUserStore
	txns          *memTransactionStore
	categories    *memCategoryStore
	accounts      *memAccountStore
	trips         *memTripStore
	familyMembers *memFamilyMemberStore
	investments   *memInvestmentStore
}

func newMemStorage() *memStorage {
	return &memStorage{
		users:         &memUserStore{users: make(map[string]*models.User)},
		txns:          &memTransactionStore{txns: make(map[string]*models.Transaction)},
		categories:    &memCategoryStore{categories: make(map[string]*models.Category)},
		accounts:      &memAccountStore{accounts: make(map[string]*models.Account)},
		trips:         &memTripStore{trips: make(map[string]*models.Trip)},
		familyMembers: &memFamilyMemberStore{members: make(map[string]*models.FamilyMember)},
		investments:   &memInvestmentStore{investments: make(map[string]*models.Investment)},
	}
}

func (m *memStorage) UserStore() interfaces.UserStore                 { return m.users }
func (m *memStorage) TransactionStore() interfaces.TransactionStore   { return m.txns }
func (m *memStorage) CategoryStore() interfaces.CategoryStore         { return m.categories }
func (m *memStorage) AccountStore() interfaces.AccountStore           { return m.accounts }
func (m *memStorage) TripStore() interfaces.TripStore                 { return m.trips }
func (m *memStorage) FamilyMemberStore() interfaces.FamilyMemberStore { return m.familyMembers }
func (m *memStorage) InvestmentStore() interfaces.InvestmentStore     { return m.investments }
func (m *memStorage) Close() error                                    { return nil }

// --- harness ---

func newTestServer(t *testing.T) (*Server, *memStorage) {
	t.Helper()

	storage := newMemStorage()
	logger := common.NewSilentLogger()

	config := common.NewDefaultConfig()
	config.Auth.JWTSecret = "test-secret-key"
	config.Auth.TokenExpiry = "1h"

	a := &app.App{
		Config:           config,
		Logger:           logger,
		Storage:          storage,
		ImportService:    importer.NewService(storage, logger),
		AnalyticsService: analytics.NewService(storage, logger),
		PortfolioService: portfolio.NewService(storage, logger),
	}
	return NewServer(a), storage
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	return bytes.NewReader(data)
}

// createTestUser persists a user with a bcrypt-hashed password.
func createTestUser(t *testing.T, storage *memStorage, id, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		ID:           id,
		Email:        email,
		Name:         "Test User",
		PasswordHash: string(hash),
	}
	if err := storage.users.SaveUser(context.Background(), user); err != nil {
		t.Fatalf("failed to save user: %v", err)
	}
	return user
}

// asUser attaches an authenticated user context to the request.
func asUser(r *http.Request, userID string) *http.Request {
	uc := &common.UserContext{UserID: userID, Email: userID + "@example.com", Name: "Test User"}
	return r.WithContext(common.WithUserContext(r.Context(), uc))
}

func decodeResponse(t *testing.T, body io.Reader, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}
