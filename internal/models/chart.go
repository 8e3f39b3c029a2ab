package models

// ChartPoint is the shape every aggregation returns: plain label/amount pairs
// ready for chart consumption, with an optional series color. Derived metrics
// never expose chart-library types.
type ChartPoint struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Color  string  `json:"color,omitempty"`
}

// CategoryBreakdownEntry is one category's net spending for a month, with an
// optional comparison against the prior calendar month. ChangePct is nil when
// no comparison is defined (prior month had no spending and this month has none
// either, or prior net was negative).
type CategoryBreakdownEntry struct {
	Label     string   `json:"label"`
	Amount    float64  `json:"amount"`
	Color     string   `json:"color,omitempty"`
	ChangePct *float64 `json:"change_pct,omitempty"`
}

// MonthSeries is one category's (or measure's) value per month bucket.
type MonthSeries struct {
	Label  string       `json:"label"`
	Color  string       `json:"color,omitempty"`
	Points []ChartPoint `json:"points"`
}

// MonthlyStats are the dashboard headline numbers.
type MonthlyStats struct {
	TotalBalance    float64 `json:"total_balance"`
	MonthlyIncome   float64 `json:"monthly_income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	Month           string  `json:"month"` // YYYY-MM
}

// RollingInvestments is the fixed 12-month investment view.
type RollingInvestments struct {
	Points  []ChartPoint `json:"points"` // always exactly 12
	Total   float64      `json:"total"`
	Average float64      `json:"average"` // total / 12 unconditionally
}
