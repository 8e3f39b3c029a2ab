package analytics

import (
	"sort"
	"time"

	"github.com/skander-fourati/zawali/internal/models"
)

// monthLabel formats a YYYY-MM bucket key for display.
func monthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

// sortedMonthKeys returns the map's keys ascending. Month keys are YYYY-MM so
// lexical order is chronological.
func sortedMonthKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExpensesOverTime groups expense-filtered spending by calendar month and
// category, netting debits against refunds. One series per category, points
// in ascending month order.
func ExpensesOverTime(txns []*models.Transaction) []models.MonthSeries {
	expenses := ExpenseFilter(txns)

	// category -> month -> net
	byCategory := make(map[string]map[string]*netAmounts)
	for _, tx := range expenses {
		if byCategory[tx.Category] == nil {
			byCategory[tx.Category] = make(map[string]*netAmounts)
		}
		months := byCategory[tx.Category]
		key := tx.MonthKey()
		g, ok := months[key]
		if !ok {
			g = &netAmounts{label: key}
			months[key] = g
		}
		if tx.AmountGBP < 0 {
			g.debits += -tx.AmountGBP
		} else {
			g.refunds += tx.AmountGBP
		}
	}

	var series []models.MonthSeries
	for category, months := range byCategory {
		s := models.MonthSeries{Label: category}
		for _, key := range sortedMonthKeys(months) {
			s.Points = append(s.Points, models.ChartPoint{
				Label:  monthLabel(key),
				Amount: months[key].net(),
			})
		}
		series = append(series, s)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Label < series[j].Label
	})
	return series
}

// ExpenseTotalsOverTime nets all expense-filtered spending per month, in
// ascending month order. This is the single-line view the chart endpoint
// renders.
func ExpenseTotalsOverTime(txns []*models.Transaction) []models.ChartPoint {
	groups := groupNet(ExpenseFilter(txns), func(tx *models.Transaction) string {
		return tx.MonthKey()
	})

	var points []models.ChartPoint
	for _, key := range sortedMonthKeys(groups) {
		points = append(points, models.ChartPoint{
			Label:  monthLabel(key),
			Amount: groups[key].net(),
		})
	}
	return points
}

// IncomeOverTime sums income-filtered credits per month, ascending.
func IncomeOverTime(txns []*models.Transaction) []models.ChartPoint {
	months := make(map[string]float64)
	for _, tx := range IncomeFilter(txns) {
		if tx.AmountGBP > 0 {
			months[tx.MonthKey()] += tx.AmountGBP
		}
	}

	var points []models.ChartPoint
	for _, key := range sortedMonthKeys(months) {
		points = append(points, models.ChartPoint{Label: monthLabel(key), Amount: months[key]})
	}
	return points
}

// SavingsOverTime computes per-month savings: income credits minus net
// spending, where spending is netted over savings-filtered rows excluding
// Income and floored at zero.
func SavingsOverTime(txns []*models.Transaction) []models.ChartPoint {
	income := make(map[string]float64)
	spending := make(map[string]*netAmounts)

	for _, tx := range SavingsFilter(txns) {
		key := tx.MonthKey()
		if tx.Category == models.CategoryIncome {
			if tx.AmountGBP > 0 {
				income[key] += tx.AmountGBP
			}
			continue
		}
		g, ok := spending[key]
		if !ok {
			g = &netAmounts{label: key}
			spending[key] = g
		}
		if tx.AmountGBP < 0 {
			g.debits += -tx.AmountGBP
		} else {
			g.refunds += tx.AmountGBP
		}
	}

	keys := make(map[string]bool)
	for k := range income {
		keys[k] = true
	}
	for k := range spending {
		keys[k] = true
	}

	var points []models.ChartPoint
	for _, key := range sortedMonthKeys(keys) {
		expense := 0.0
		if g, ok := spending[key]; ok {
			if net := g.net(); net > 0 {
				expense = net
			}
		}
		points = append(points, models.ChartPoint{
			Label:  monthLabel(key),
			Amount: income[key] - expense,
		})
	}
	return points
}

// InvestmentsOverTime nets invested minus withdrawn per month, ascending.
// For investment rows, positive amounts are contributions and negative
// amounts withdrawals.
func InvestmentsOverTime(txns []*models.Transaction) []models.ChartPoint {
	months := make(map[string]float64)
	for _, tx := range InvestmentFilter(txns) {
		months[tx.MonthKey()] += tx.AmountGBP
	}

	var points []models.ChartPoint
	for _, key := range sortedMonthKeys(months) {
		points = append(points, models.ChartPoint{Label: monthLabel(key), Amount: months[key]})
	}
	return points
}

// InvestmentsRolling12 produces the fixed 12-month investment view ending at
// the current month: always exactly 12 buckets, zero-filled, with the average
// computed over all 12 regardless of sparsity.
func InvestmentsRolling12(txns []*models.Transaction, now time.Time) *models.RollingInvestments {
	months := make(map[string]float64)
	for _, tx := range InvestmentFilter(txns) {
		months[tx.MonthKey()] += tx.AmountGBP
	}

	result := &models.RollingInvestments{}
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	for i := 0; i < 12; i++ {
		m := start.AddDate(0, i, 0)
		key := m.Format("2006-01")
		amount := months[key]
		result.Points = append(result.Points, models.ChartPoint{
			Label:  m.Format("Jan 2006"),
			Amount: amount,
		})
		result.Total += amount
	}
	result.Average = result.Total / 12
	return result
}
