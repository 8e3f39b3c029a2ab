// Package analytics derives all dashboard and insights metrics from a flat
// transaction list. Every function here is pure: identical input (and
// injected reference time) yields identical output.
package analytics

import (
	"github.com/skander-fourati/zawali/internal/models"
)

// BaseFilter applies the universal exclusions: work-expensable rows and
// transfer categories never count toward any metric.
func BaseFilter(txns []*models.Transaction) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range txns {
		if tx.EncordExpensable {
			continue
		}
		if tx.Category == models.CategoryTransfers || tx.Category == models.CategoryFamilyTransfer {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// ExpenseFilter narrows Base to spending rows: Income and Investment drop out.
func ExpenseFilter(txns []*models.Transaction) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range BaseFilter(txns) {
		if tx.Category == models.CategoryIncome || tx.Category == models.CategoryInvestment {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// IncomeFilter narrows Base to Income rows.
func IncomeFilter(txns []*models.Transaction) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range BaseFilter(txns) {
		if tx.Category == models.CategoryIncome {
			out = append(out, tx)
		}
	}
	return out
}

// InvestmentFilter narrows Base to Investment rows.
func InvestmentFilter(txns []*models.Transaction) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range BaseFilter(txns) {
		if tx.Category == models.CategoryInvestment {
			out = append(out, tx)
		}
	}
	return out
}

// SavingsFilter narrows Base by dropping Investment rows only; Income stays
// in so savings can be computed as income minus net spending.
func SavingsFilter(txns []*models.Transaction) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range BaseFilter(txns) {
		if tx.Category == models.CategoryInvestment {
			continue
		}
		out = append(out, tx)
	}
	return out
}
