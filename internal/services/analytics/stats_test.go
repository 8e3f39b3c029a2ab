package analytics

import (
	"testing"
	"time"

	"github.com/skander-fourati/zawali/internal/models"
)

func TestMonthlyStats(t *testing.T) {
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	txns := []*models.Transaction{
		// History.
		tx("2024-01-25", 3000, models.CategoryIncome),
		tx("2024-01-10", -500, "Bills"),
		// Current month.
		tx("2024-03-25", 3100, models.CategoryIncome),
		tx("2024-03-10", -200, "Groceries"),
		tx("2024-03-12", 50, "Groceries"), // refund
		// Excluded everywhere.
		tx("2024-03-15", -999, models.CategoryTransfers),
		txExpensable("2024-03-16", -80, "Dining"),
	}

	stats := MonthlyStats(txns, now)

	if stats.Month != "2024-03" {
		t.Errorf("Month = %q, want 2024-03", stats.Month)
	}
	// Balance is the signed sum over all base-filtered rows, all time.
	want := 3000.0 - 500 + 3100 - 200 + 50
	if stats.TotalBalance != want {
		t.Errorf("TotalBalance = %v, want %v", stats.TotalBalance, want)
	}
	if stats.MonthlyIncome != 3100 {
		t.Errorf("MonthlyIncome = %v, want 3100", stats.MonthlyIncome)
	}
	if stats.MonthlyExpenses != 150 {
		t.Errorf("MonthlyExpenses = %v, want 150 (net of refunds)", stats.MonthlyExpenses)
	}
}

func TestMonthlyStatsEmpty(t *testing.T) {
	stats := MonthlyStats(nil, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
	if stats.TotalBalance != 0 || stats.MonthlyIncome != 0 || stats.MonthlyExpenses != 0 {
		t.Errorf("empty input should yield zero stats: %+v", stats)
	}
}
