package models

import "time"

// Currency identifies the denomination of a transaction amount.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// USDToGBPRate is the fixed conversion rate applied to USD statements.
// Multi-currency rate fetching is out of scope; a single constant is used.
const USDToGBPRate = 0.79

// TransactionType categorizes the direction of a transaction.
type TransactionType string

const (
	TxTypeIncome   TransactionType = "income"
	TxTypeExpense  TransactionType = "expense"
	TxTypeTransfer TransactionType = "transfer"
)

// validTransactionTypes lists all accepted transaction types.
var validTransactionTypes = map[TransactionType]bool{
	TxTypeIncome:   true,
	TxTypeExpense:  true,
	TxTypeTransfer: true,
}

// ValidTransactionType returns true if t is a valid transaction type.
func ValidTransactionType(t TransactionType) bool {
	return validTransactionTypes[t]
}

// DeriveTransactionType returns the type implied by the sign of a GBP amount
// at import time. The field stays independently editable afterwards; the edit
// path does not re-derive it from the sign (accepted inconsistency).
func DeriveTransactionType(amountGBP float64) TransactionType {
	if amountGBP > 0 {
		return TxTypeIncome
	}
	return TxTypeExpense
}

// Transaction is a persisted ledger entry. Amounts are signed: negative is a
// debit, positive a credit. AmountGBP = Amount * ExchangeRate when the native
// currency is not GBP, and equals Amount when it is.
type Transaction struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	Amount          float64         `json:"amount"`
	AmountGBP       float64         `json:"amount_gbp"`
	Currency        Currency        `json:"currency"`
	ExchangeRate    float64         `json:"exchange_rate"`
	TransactionType TransactionType `json:"transaction_type"`

	// Resolved reference names, denormalized onto the transaction so derived
	// metrics never need joins.
	Category string `json:"category"`
	Account  string `json:"account"`
	Trip     string `json:"trip,omitempty"`

	CategoryID     string `json:"category_id,omitempty"`
	AccountID      string `json:"account_id,omitempty"`
	TripID         string `json:"trip_id,omitempty"`
	FamilyMemberID string `json:"family_member_id,omitempty"`
	InvestmentID   string `json:"investment_id,omitempty"`

	EncordExpensable bool `json:"encord_expensable"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MonthKey returns the YYYY-MM bucket key for the transaction date.
func (t *Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}
