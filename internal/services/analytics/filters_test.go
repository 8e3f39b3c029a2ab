package analytics

import (
	"testing"
	"time"

	"github.com/skander-fourati/zawali/internal/models"
)

// tx builds a minimal transaction for the pure-function tests.
func tx(date string, amountGBP float64, category string) *models.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return &models.Transaction{
		Date:      d,
		AmountGBP: amountGBP,
		Category:  category,
	}
}

func txExpensable(date string, amountGBP float64, category string) *models.Transaction {
	t := tx(date, amountGBP, category)
	t.EncordExpensable = true
	return t
}

func txTrip(date string, amountGBP float64, category, trip string) *models.Transaction {
	t := tx(date, amountGBP, category)
	t.Trip = trip
	return t
}

func categories(txns []*models.Transaction) []string {
	var out []string
	for _, t := range txns {
		out = append(out, t.Category)
	}
	return out
}

func TestBaseFilter(t *testing.T) {
	input := []*models.Transaction{
		tx("2024-01-01", -10, "Groceries"),
		txExpensable("2024-01-02", -20, "Dining"),
		tx("2024-01-03", -30, models.CategoryTransfers),
		tx("2024-01-04", -40, models.CategoryFamilyTransfer),
		tx("2024-01-05", 100, models.CategoryIncome),
		tx("2024-01-06", -50, models.CategoryInvestment),
	}

	got := categories(BaseFilter(input))
	want := []string{"Groceries", models.CategoryIncome, models.CategoryInvestment}
	if len(got) != len(want) {
		t.Fatalf("BaseFilter kept %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("BaseFilter[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLayeredFilters(t *testing.T) {
	input := []*models.Transaction{
		tx("2024-01-01", -10, "Groceries"),
		tx("2024-01-02", 100, models.CategoryIncome),
		tx("2024-01-03", -50, models.CategoryInvestment),
		tx("2024-01-04", -30, models.CategoryTransfers),
	}

	if got := categories(ExpenseFilter(input)); len(got) != 1 || got[0] != "Groceries" {
		t.Errorf("ExpenseFilter = %v", got)
	}
	if got := categories(IncomeFilter(input)); len(got) != 1 || got[0] != models.CategoryIncome {
		t.Errorf("IncomeFilter = %v", got)
	}
	if got := categories(InvestmentFilter(input)); len(got) != 1 || got[0] != models.CategoryInvestment {
		t.Errorf("InvestmentFilter = %v", got)
	}
	// Savings keeps Income, drops only Investment (and the base exclusions).
	got := categories(SavingsFilter(input))
	if len(got) != 2 || got[0] != "Groceries" || got[1] != models.CategoryIncome {
		t.Errorf("SavingsFilter = %v", got)
	}
}
