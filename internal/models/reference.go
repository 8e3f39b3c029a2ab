package models

import "time"

// CategoryOther is the fallback canonical category for unmapped vendor strings.
const CategoryOther = "Other / Unknown"

// Canonical category names with special meaning in filtering and imports.
const (
	CategoryIncome         = "Income"
	CategoryInvestment     = "Investment"
	CategoryFamilyTransfer = "Family Transfer"
	CategoryTransfers      = "Transfers"
)

// ProtectedCategories cannot be renamed or deleted through the management API.
// Enforced at the handler layer, not in the store.
var ProtectedCategories = map[string]bool{
	CategoryIncome:         true,
	CategoryInvestment:     true,
	CategoryFamilyTransfer: true,
}

// Category is a reference entity for transaction classification.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Account is a reference entity for the source account of a transaction.
type Account struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Trip groups transactions for travel breakdowns.
type Trip struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FamilyMemberStatus tracks settlement state for family transfer balances.
type FamilyMemberStatus string

const (
	FamilyMemberActive   FamilyMemberStatus = "active"
	FamilyMemberSettled  FamilyMemberStatus = "settled"
	FamilyMemberArchived FamilyMemberStatus = "archived"
)

// ValidFamilyMemberStatus returns true if s is a known status.
func ValidFamilyMemberStatus(s FamilyMemberStatus) bool {
	switch s {
	case FamilyMemberActive, FamilyMemberSettled, FamilyMemberArchived:
		return true
	default:
		return false
	}
}

// FamilyMember is a reference entity for tracking money owed to or by family.
type FamilyMember struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Name      string             `json:"name"`
	Color     string             `json:"color,omitempty"`
	Status    FamilyMemberStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
