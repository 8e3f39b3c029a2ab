// Package portfolio manages investment holdings: synthetic valuation
// history, the scan-derived account mapping, and bulk transaction
// operations.
package portfolio

import (
	"math"
	"time"

	"github.com/skander-fourati/zawali/internal/models"
)

// WholeMonthsBetween returns the number of whole calendar months from
// purchase to now, never negative.
func WholeMonthsBetween(purchase, now time.Time) int {
	months := (now.Year()-purchase.Year())*12 + int(now.Month()) - int(purchase.Month())
	if now.Day() < purchase.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// PurchaseAmount backs the original purchase out of the current value and
// the total (not annualized) growth since purchase. With no whole months
// elapsed or zero growth there is nothing to back out and the current value
// is returned as-is.
func PurchaseAmount(currentValue, totalGrowthPct float64, months int) float64 {
	if months <= 0 || totalGrowthPct == 0 {
		return currentValue
	}
	return currentValue / (1 + totalGrowthPct/100)
}

// MonthlyRate solves (1+r)^months = 1 + totalGrowthPct/100 for r.
func MonthlyRate(totalGrowthPct float64, months int) float64 {
	if months <= 0 || totalGrowthPct == 0 {
		return 0
	}
	return math.Pow(1+totalGrowthPct/100, 1/float64(months)) - 1
}

// ValuationPoint is one synthetic monthly value in a back-filled series.
type ValuationPoint struct {
	Date  time.Time
	Value float64
}

// SyntheticSeries fabricates one valuation point per whole month from the
// purchase date to now inclusive, compounding the purchase amount at the
// monthly rate. This stands in for unavailable historical prices; it is
// interpolated, not observed, data.
func SyntheticSeries(purchaseAmount, monthlyRate float64, purchaseDate time.Time, months int) []ValuationPoint {
	points := make([]ValuationPoint, 0, months+1)
	for i := 0; i <= months; i++ {
		points = append(points, ValuationPoint{
			Date:  purchaseDate.AddDate(0, i, 0),
			Value: purchaseAmount * math.Pow(1+monthlyRate, float64(i)),
		})
	}
	return points
}

// BuildAccountIndex reconstructs the investment-to-account mapping with a
// single pass over the transaction list. There is no stored relation: a
// holding belongs to whichever account's Investment transactions reference
// it. The same ticker may map to different accounts through distinct
// investment records.
func BuildAccountIndex(txns []*models.Transaction) map[string]string {
	index := make(map[string]string)
	for _, tx := range txns {
		if tx.Category != models.CategoryInvestment || tx.InvestmentID == "" || tx.AccountID == "" {
			continue
		}
		if _, ok := index[tx.InvestmentID]; !ok {
			index[tx.InvestmentID] = tx.AccountID
		}
	}
	return index
}
