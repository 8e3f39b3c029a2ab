package analytics

import (
	"sort"
	"time"

	"github.com/skander-fourati/zawali/internal/models"
)

// netAmounts accumulates gross debits and refunds for one grouping key.
type netAmounts struct {
	label   string
	debits  float64 // |sum of negative amounts|
	refunds float64 // sum of positive amounts
}

func (n netAmounts) net() float64 {
	return n.debits - n.refunds
}

// groupNet nets debits against refunds per key over the given rows.
// keyFn returns the grouping key; labels keep the first-seen casing.
func groupNet(txns []*models.Transaction, keyFn func(*models.Transaction) string) map[string]*netAmounts {
	groups := make(map[string]*netAmounts)
	for _, tx := range txns {
		key := keyFn(tx)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &netAmounts{label: key}
			groups[key] = g
		}
		if tx.AmountGBP < 0 {
			g.debits += -tx.AmountGBP
		} else {
			g.refunds += tx.AmountGBP
		}
	}
	return groups
}

// CategoryBreakdown splits the month's expense-filtered spending per category
// (net of refunds) and compares each category against the prior calendar
// month. Categories netting to zero or less are excluded. The comparison is
// only defined when the prior month had positive net spend, except that going
// from nothing to something is reported as exactly +100%.
func CategoryBreakdown(txns []*models.Transaction, month time.Time) []models.CategoryBreakdownEntry {
	expenses := ExpenseFilter(txns)
	monthKey := month.Format("2006-01")
	prevKey := month.AddDate(0, -1, 0).Format("2006-01")

	current := groupNet(filterMonth(expenses, monthKey), categoryKey)
	previous := groupNet(filterMonth(expenses, prevKey), categoryKey)

	var entries []models.CategoryBreakdownEntry
	for key, g := range current {
		net := g.net()
		if net <= 0 {
			continue
		}
		entry := models.CategoryBreakdownEntry{
			Label:  g.label,
			Amount: net,
		}
		if prev, ok := previous[key]; ok && prev.net() > 0 {
			change := (net - prev.net()) / prev.net() * 100
			entry.ChangePct = &change
		} else if !ok || prev.net() == 0 {
			change := 100.0
			entry.ChangePct = &change
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Amount != entries[j].Amount {
			return entries[i].Amount > entries[j].Amount
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

// TripBreakdown nets expense-filtered spending per trip, largest first.
// Trips netting to zero or less are excluded.
func TripBreakdown(txns []*models.Transaction) []models.ChartPoint {
	groups := groupNet(ExpenseFilter(txns), func(tx *models.Transaction) string {
		return tx.Trip
	})

	var points []models.ChartPoint
	for _, g := range groups {
		net := g.net()
		if net <= 0 {
			continue
		}
		points = append(points, models.ChartPoint{Label: g.label, Amount: net})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Amount != points[j].Amount {
			return points[i].Amount > points[j].Amount
		}
		return points[i].Label < points[j].Label
	})
	return points
}

func filterMonth(txns []*models.Transaction, monthKey string) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range txns {
		if tx.MonthKey() == monthKey {
			out = append(out, tx)
		}
	}
	return out
}

func categoryKey(tx *models.Transaction) string {
	return tx.Category
}
