package importer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/skander-fourati/zawali/internal/models"
)

// investmentAccountKeywords flag accounts that should normally carry the
// Investment category.
var investmentAccountKeywords = []string{
	"vanguard",
	"fidelity",
	"wealthfront",
	"investment",
	"dodl",
	"lisa",
}

const (
	duplicateWindowDays = 3
	outlierMultiplier   = 3.0
	largeAmountGBP      = 100.0
)

// DetectSuspicious evaluates the advisory rule set over one import batch and
// returns the flagged rows in input order. Every rule runs independently for
// every row; reasons accumulate in rule order. Flags never block an upload.
func DetectSuspicious(txns []*models.ParsedTransaction, format models.StatementFormat) []*models.ParsedTransaction {
	categoryMeans := batchCategoryMeans(txns)

	var flagged []*models.ParsedTransaction
	for i, tx := range txns {
		var reasons []string

		// Rule 1: duplicate within the batch.
		if dup := findDuplicate(txns, i); dup != nil {
			reasons = append(reasons, fmt.Sprintf("Duplicate: matches %q on %s", dup.Description, dup.Date))
		}

		// Rule 2: round amount (GBP, then USD independently for USD sources).
		if isRoundAmount(tx.AmountGBP) {
			reasons = append(reasons, fmt.Sprintf("Round amount (£%.0f)", math.Abs(tx.AmountGBP)))
		}
		if format == models.FormatPersonalCapital && tx.AmountUSD != nil && isRoundAmount(*tx.AmountUSD) {
			reasons = append(reasons, fmt.Sprintf("Round amount ($%.0f)", math.Abs(*tx.AmountUSD)))
		}

		// Rule 3: outlier against the batch-local category average.
		mean := categoryMeans[strings.ToLower(tx.Category)]
		if mean > 0 && math.Abs(tx.AmountGBP) > outlierMultiplier*mean {
			reasons = append(reasons, fmt.Sprintf("Amount is over %.0fx the %s average for this batch", outlierMultiplier, tx.Category))
		}

		// Rule 4: investment account, non-investment category.
		if hasInvestmentKeyword(tx.Account) && tx.Category != models.CategoryInvestment {
			reasons = append(reasons, fmt.Sprintf("Investment account but category is %q", tx.Category))
		}

		// Rule 5: large amount.
		if math.Abs(tx.AmountGBP) > largeAmountGBP {
			reasons = append(reasons, fmt.Sprintf("Large amount (£%.2f)", math.Abs(tx.AmountGBP)))
		}

		// Rule 6: unmapped category.
		if tx.Category == models.CategoryOther {
			reasons = append(reasons, "Uncategorized")
		}

		if len(reasons) > 0 {
			tx.SuspiciousReasons = reasons
			flagged = append(flagged, tx)
		}
	}
	return flagged
}

// findDuplicate returns the first other row with equal absolute GBP amount,
// case-insensitively equal description, and a date within ±3 days. The check
// is symmetric, evaluated independently per row.
func findDuplicate(txns []*models.ParsedTransaction, idx int) *models.ParsedTransaction {
	tx := txns[idx]
	txDate, err := time.Parse("2006-01-02", tx.Date)
	if err != nil {
		return nil
	}

	for j, other := range txns {
		if j == idx {
			continue
		}
		if !amountsEqual(math.Abs(tx.AmountGBP), math.Abs(other.AmountGBP)) {
			continue
		}
		if !strings.EqualFold(tx.Description, other.Description) {
			continue
		}
		otherDate, err := time.Parse("2006-01-02", other.Date)
		if err != nil {
			continue
		}
		days := math.Abs(txDate.Sub(otherDate).Hours() / 24)
		if days <= duplicateWindowDays {
			return other
		}
	}
	return nil
}

// isRoundAmount reports whether |v| is a non-zero multiple of 50, at least 50.
// Comparison happens in integer pence to dodge float modulo noise.
func isRoundAmount(v float64) bool {
	pence := int64(math.Round(math.Abs(v) * 100))
	return pence >= 5000 && pence%5000 == 0
}

// batchCategoryMeans computes the per-category mean of |amount_gbp| over the
// whole batch, keyed by lower-cased category.
func batchCategoryMeans(txns []*models.ParsedTransaction) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, tx := range txns {
		key := strings.ToLower(tx.Category)
		sums[key] += math.Abs(tx.AmountGBP)
		counts[key]++
	}
	means := make(map[string]float64, len(sums))
	for key, sum := range sums {
		means[key] = sum / float64(counts[key])
	}
	return means
}

func hasInvestmentKeyword(account string) bool {
	lower := strings.ToLower(account)
	for _, kw := range investmentAccountKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// amountsEqual compares GBP amounts at sub-penny tolerance.
func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}
