package common

import (
	"context"
	"fmt"
	"sync"

	"github.com/skander-fourati/zawali/internal/interfaces"
	"github.com/skander-fourati/zawali/internal/models"
)

// MemoryStorage is a StorageManager backed by maps. It mirrors the ownership
// semantics of the SurrealDB stores: reads are scoped by user ID and misses
// return errors, never nil records.
type MemoryStorage struct {
	mu            sync.Mutex
	users         map[string]*models.User
	txns          map[string]*models.Transaction
	categories    map[string]*models.Category
	accounts      map[string]*models.Account
	trips         map[string]*models.Trip
	familyMembers map[string]*models.FamilyMember
	investments   map[string]*models.Investment
	marketValues  []*models.InvestmentMarketValue
}

// NewMemoryStorage returns an empty in-memory storage manager.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:         make(map[string]*models.User),
		txns:          make(map[string]*models.Transaction),
		categories:    make(map[string]*models.Category),
		accounts:      make(map[string]*models.Account),
		trips:         make(map[string]*models.Trip),
		familyMembers: make(map[string]*models.FamilyMember),
		investments:   make(map[string]*models.Investment),
	}
}

func (m *MemoryStorage) UserStore() interfaces.UserStore                 { return (*userStore)(m) }
func (m *MemoryStorage) TransactionStore() interfaces.TransactionStore   { return (*transactionStore)(m) }
func (m *MemoryStorage) CategoryStore() interfaces.CategoryStore         { return (*categoryStore)(m) }
func (m *MemoryStorage) AccountStore() interfaces.AccountStore           { return (*accountStore)(m) }
func (m *MemoryStorage) TripStore() interfaces.TripStore                 { return (*tripStore)(m) }
func (m *MemoryStorage) FamilyMemberStore() interfaces.FamilyMemberStore { return (*familyMemberStore)(m) }
func (m *MemoryStorage) InvestmentStore() interfaces.InvestmentStore     { return (*investmentStore)(m) }
func (m *MemoryStorage) Close() error                                    { return nil }

// --- users ---

type userStore MemoryStorage

func (s *userStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s not found", userID)
	}
	return u, nil
}

func (s *userStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user with email %s not found", email)
}

func (s *userStore) SaveUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *userStore) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
	return nil
}

// --- transactions ---

type transactionStore MemoryStorage

func (s *transactionStore) Create(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns[tx.ID] = tx
	return nil
}

func (s *transactionStore) CreateBatch(ctx context.Context, txs []*models.Transaction) error {
	for _, tx := range txs {
		if err := s.Create(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

func (s *transactionStore) Get(_ context.Context, userID, id string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txns[id]
	if !ok || tx.UserID != userID {
		return nil, fmt.Errorf("transaction %s not found", id)
	}
	return tx, nil
}

func (s *transactionStore) List(_ context.Context, userID string) ([]*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Transaction
	for _, tx := range s.txns {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *transactionStore) Update(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txns[tx.ID]; !ok {
		return fmt.Errorf("transaction %s not found", tx.ID)
	}
	s.txns[tx.ID] = tx
	return nil
}

func (s *transactionStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txns[id]
	if !ok || tx.UserID != userID {
		return fmt.Errorf("transaction %s not found", id)
	}
	delete(s.txns, id)
	return nil
}

// --- categories ---

type categoryStore MemoryStorage

func (s *categoryStore) Create(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
	return nil
}

func (s *categoryStore) List(_ context.Context, userID string) ([]*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Category
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *categoryStore) Update(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.ID]; !ok {
		return fmt.Errorf("category %s not found", c.ID)
	}
	s.categories[c.ID] = c
	return nil
}

func (s *categoryStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return fmt.Errorf("category %s not found", id)
	}
	delete(s.categories, id)
	return nil
}

// --- accounts ---

type accountStore MemoryStorage

func (s *accountStore) Create(_ context.Context, a *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
	return nil
}

func (s *accountStore) List(_ context.Context, userID string) ([]*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Account
	for _, a := range s.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *accountStore) Update(_ context.Context, a *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.ID]; !ok {
		return fmt.Errorf("account %s not found", a.ID)
	}
	s.accounts[a.ID] = a
	return nil
}

func (s *accountStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok || a.UserID != userID {
		return fmt.Errorf("account %s not found", id)
	}
	delete(s.accounts, id)
	return nil
}

// --- trips ---

type tripStore MemoryStorage

func (s *tripStore) Create(_ context.Context, t *models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips[t.ID] = t
	return nil
}

func (s *tripStore) List(_ context.Context, userID string) ([]*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Trip
	for _, t := range s.trips {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *tripStore) Update(_ context.Context, t *models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trips[t.ID]; !ok {
		return fmt.Errorf("trip %s not found", t.ID)
	}
	s.trips[t.ID] = t
	return nil
}

func (s *tripStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[id]
	if !ok || t.UserID != userID {
		return fmt.Errorf("trip %s not found", id)
	}
	delete(s.trips, id)
	return nil
}

// --- family members ---

type familyMemberStore MemoryStorage

func (s *familyMemberStore) Create(_ context.Context, fm *models.FamilyMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.familyMembers[fm.ID] = fm
	return nil
}

func (s *familyMemberStore) List(_ context.Context, userID string) ([]*models.FamilyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.FamilyMember
	for _, fm := range s.familyMembers {
		if fm.UserID == userID {
			out = append(out, fm)
		}
	}
	return out, nil
}

func (s *familyMemberStore) Update(_ context.Context, fm *models.FamilyMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.familyMembers[fm.ID]; !ok {
		return fmt.Errorf("family member %s not found", fm.ID)
	}
	s.familyMembers[fm.ID] = fm
	return nil
}

func (s *familyMemberStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fm, ok := s.familyMembers[id]
	if !ok || fm.UserID != userID {
		return fmt.Errorf("family member %s not found", id)
	}
	delete(s.familyMembers, id)
	return nil
}

// --- investments ---

type investmentStore MemoryStorage

func (s *investmentStore) Create(_ context.Context, inv *models.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.investments[inv.ID] = inv
	return nil
}

func (s *investmentStore) Get(_ context.Context, userID, id string) (*models.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.investments[id]
	if !ok || inv.UserID != userID {
		return nil, fmt.Errorf("investment %s not found", id)
	}
	return inv, nil
}

func (s *investmentStore) GetByTicker(_ context.Context, userID, ticker string) (*models.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.investments {
		if inv.UserID == userID && inv.Ticker == ticker {
			return inv, nil
		}
	}
	return nil, fmt.Errorf("investment %s not found", ticker)
}

func (s *investmentStore) List(_ context.Context, userID string) ([]*models.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Investment
	for _, inv := range s.investments {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *investmentStore) Update(_ context.Context, inv *models.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.investments[inv.ID]; !ok {
		return fmt.Errorf("investment %s not found", inv.ID)
	}
	s.investments[inv.ID] = inv
	return nil
}

func (s *investmentStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.investments[id]
	if !ok || inv.UserID != userID {
		return fmt.Errorf("investment %s not found", id)
	}
	delete(s.investments, id)
	return nil
}

func (s *investmentStore) CreateMarketValue(_ context.Context, mv *models.InvestmentMarketValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marketValues = append(s.marketValues, mv)
	return nil
}

func (s *investmentStore) ListMarketValues(_ context.Context, userID, investmentID string) ([]*models.InvestmentMarketValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.InvestmentMarketValue
	for _, mv := range s.marketValues {
		if mv.UserID == userID && mv.InvestmentID == investmentID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (s *investmentStore) LatestMarketValue(_ context.Context, userID, investmentID string) (*models.InvestmentMarketValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *models.InvestmentMarketValue
	for _, mv := range s.marketValues {
		if mv.UserID != userID || mv.InvestmentID != investmentID {
			continue
		}
		if latest == nil || mv.UpdatedAt.After(latest.UpdatedAt) {
			latest = mv
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("no market values for investment %s", investmentID)
	}
	return latest, nil
}

func (s *investmentStore) DeleteMarketValues(_ context.Context, userID, investmentID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []*models.InvestmentMarketValue
	deleted := 0
	for _, mv := range s.marketValues {
		if mv.UserID == userID && mv.InvestmentID == investmentID {
			deleted++
			continue
		}
		kept = append(kept, mv)
	}
	s.marketValues = kept
	return deleted, nil
}
