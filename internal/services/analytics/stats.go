package analytics

import (
	"time"

	"github.com/skander-fourati/zawali/internal/models"
)

// MonthlyStats computes the dashboard headline numbers: cumulative balance
// over every base-filtered transaction, plus income and net expenses for the
// current calendar month.
func MonthlyStats(txns []*models.Transaction, now time.Time) *models.MonthlyStats {
	monthKey := now.Format("2006-01")
	stats := &models.MonthlyStats{Month: monthKey}

	for _, tx := range BaseFilter(txns) {
		stats.TotalBalance += tx.AmountGBP
	}

	for _, tx := range filterMonth(IncomeFilter(txns), monthKey) {
		if tx.AmountGBP > 0 {
			stats.MonthlyIncome += tx.AmountGBP
		}
	}

	expenses := groupNet(filterMonth(ExpenseFilter(txns), monthKey), func(tx *models.Transaction) string {
		return monthKey
	})
	if g, ok := expenses[monthKey]; ok {
		stats.MonthlyExpenses = g.net()
	}

	return stats
}
