package models

import "time"

// InvestmentTypes is the canonical list offered for classification. The field
// itself is an open string so imported holdings outside the list still load.
var InvestmentTypes = []string{
	"Stocks",
	"ETF",
	"Index Fund",
	"Bonds",
	"Crypto",
	"Pension",
	"Cash ISA",
	"Other",
}

// Investment is a holding identified by ticker, unique per user. The
// relationship to accounts is not stored: it is reconstructed by scanning
// transactions that carry both investment_id and account_id (see portfolio
// account index).
type Investment struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Ticker         string    `json:"ticker"`
	Name           string    `json:"name,omitempty"`
	InvestmentType string    `json:"investment_type"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// InvestmentMarketValue is one point in a holding's valuation time series.
// The latest point by UpdatedAt is the current value. Points produced by the
// valuation back-fill are synthetic, not observed prices.
type InvestmentMarketValue struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	InvestmentID string    `json:"investment_id"`
	MarketValue  float64   `json:"market_value"`
	UpdatedAt    time.Time `json:"updated_at"`
	AccountID    string    `json:"account_id,omitempty"`
}
