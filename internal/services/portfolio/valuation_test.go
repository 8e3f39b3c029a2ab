package portfolio

import (
	"math"
	"testing"
	"time"

	"github.com/skander-fourati/zawali/internal/models"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestWholeMonthsBetween(t *testing.T) {
	tests := []struct {
		purchase string
		now      string
		want     int
	}{
		{"2024-01-15", "2024-07-15", 6},
		{"2024-01-15", "2024-07-14", 5}, // day not reached yet
		{"2024-01-15", "2024-07-20", 6},
		{"2024-01-15", "2024-02-15", 1},
		{"2024-01-15", "2024-01-20", 0},
		{"2024-01-15", "2023-06-01", 0}, // future purchase clamps to zero
		{"2020-03-10", "2024-03-10", 48},
	}

	for _, tt := range tests {
		got := WholeMonthsBetween(date(tt.purchase), date(tt.now))
		if got != tt.want {
			t.Errorf("WholeMonthsBetween(%s, %s) = %d, want %d", tt.purchase, tt.now, got, tt.want)
		}
	}
}

func TestPurchaseAmount(t *testing.T) {
	// 25% total growth on a current value of 125 backs out to 100.
	if got := PurchaseAmount(125, 25, 12); math.Abs(got-100) > 1e-9 {
		t.Errorf("PurchaseAmount(125, 25%%) = %v, want 100", got)
	}
	// Negative growth inflates the basis.
	if got := PurchaseAmount(80, -20, 12); math.Abs(got-100) > 1e-9 {
		t.Errorf("PurchaseAmount(80, -20%%) = %v, want 100", got)
	}
	// Zero months or zero growth leaves the value untouched.
	if got := PurchaseAmount(125, 25, 0); got != 125 {
		t.Errorf("PurchaseAmount with 0 months = %v, want 125", got)
	}
	if got := PurchaseAmount(125, 0, 12); got != 125 {
		t.Errorf("PurchaseAmount with 0 growth = %v, want 125", got)
	}
}

func TestMonthlyRate(t *testing.T) {
	// Compounding the solved rate over the period must reproduce the total.
	rate := MonthlyRate(25, 12)
	if rate <= 0 {
		t.Fatalf("rate = %v, want positive", rate)
	}
	total := math.Pow(1+rate, 12)
	if math.Abs(total-1.25) > 1e-9 {
		t.Errorf("(1+r)^12 = %v, want 1.25", total)
	}

	if MonthlyRate(0, 12) != 0 {
		t.Error("zero growth should yield zero rate")
	}
	if MonthlyRate(25, 0) != 0 {
		t.Error("zero months should yield zero rate")
	}

	// Negative growth yields a negative rate.
	if r := MonthlyRate(-20, 12); r >= 0 {
		t.Errorf("negative growth rate = %v, want negative", r)
	}
}

func TestSyntheticSeries(t *testing.T) {
	purchase := date("2024-01-15")
	rate := MonthlyRate(25, 12)
	series := SyntheticSeries(100, rate, purchase, 12)

	// months+1 points: purchase month through the current month inclusive.
	if len(series) != 13 {
		t.Fatalf("expected 13 points, got %d", len(series))
	}
	if !series[0].Date.Equal(purchase) || series[0].Value != 100 {
		t.Errorf("first point = %+v", series[0])
	}
	if !series[12].Date.Equal(date("2025-01-15")) {
		t.Errorf("last point date = %v", series[12].Date)
	}
	if math.Abs(series[12].Value-125) > 1e-9 {
		t.Errorf("last point value = %v, want 125", series[12].Value)
	}

	// Values are monotonically increasing under positive growth.
	for i := 1; i < len(series); i++ {
		if series[i].Value <= series[i-1].Value {
			t.Errorf("series not increasing at %d: %v <= %v", i, series[i].Value, series[i-1].Value)
		}
	}
}

func TestSyntheticSeriesZeroMonths(t *testing.T) {
	series := SyntheticSeries(500, 0, date("2024-06-01"), 0)
	if len(series) != 1 {
		t.Fatalf("expected single point, got %d", len(series))
	}
	if series[0].Value != 500 {
		t.Errorf("value = %v, want 500", series[0].Value)
	}
}

func TestBuildAccountIndex(t *testing.T) {
	txns := []*models.Transaction{
		{Category: models.CategoryInvestment, InvestmentID: "inv-1", AccountID: "acc-1"},
		{Category: models.CategoryInvestment, InvestmentID: "inv-1", AccountID: "acc-2"}, // first wins
		{Category: models.CategoryInvestment, InvestmentID: "inv-2", AccountID: "acc-2"},
		{Category: "Groceries", InvestmentID: "inv-3", AccountID: "acc-1"}, // wrong category
		{Category: models.CategoryInvestment, InvestmentID: "", AccountID: "acc-1"},
		{Category: models.CategoryInvestment, InvestmentID: "inv-4", AccountID: ""},
	}

	index := BuildAccountIndex(txns)
	if len(index) != 2 {
		t.Fatalf("index = %v, want 2 entries", index)
	}
	if index["inv-1"] != "acc-1" {
		t.Errorf("inv-1 = %q, want acc-1 (first mapping wins)", index["inv-1"])
	}
	if index["inv-2"] != "acc-2" {
		t.Errorf("inv-2 = %q, want acc-2", index["inv-2"])
	}
}
