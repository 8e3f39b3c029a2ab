package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/skander-fourati/zawali/internal/models"
)

func month(s string) time.Time {
	t, _ := time.Parse("2006-01", s)
	return t
}

func TestCategoryBreakdownNetsRefunds(t *testing.T) {
	txns := []*models.Transaction{
		tx("2024-03-05", -80, "Shopping"),
		tx("2024-03-12", 30, "Shopping"), // refund
		tx("2024-03-15", -45.50, "Groceries"),
	}

	entries := CategoryBreakdown(txns, month("2024-03"))
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(entries), entries)
	}

	// Sorted descending by net amount: Shopping 50, Groceries 45.50.
	if entries[0].Label != "Shopping" || entries[0].Amount != 50 {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Label != "Groceries" || entries[1].Amount != 45.50 {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestCategoryBreakdownExcludesNonPositive(t *testing.T) {
	txns := []*models.Transaction{
		tx("2024-03-05", -20, "Shopping"),
		tx("2024-03-12", 35, "Shopping"), // refunds exceed spending
		tx("2024-03-15", -10, "Groceries"),
		tx("2024-03-16", 10, "Groceries"), // nets to exactly zero
	}

	entries := CategoryBreakdown(txns, month("2024-03"))
	if len(entries) != 0 {
		t.Errorf("non-positive categories should be excluded, got %v", entries)
	}
}

func TestCategoryBreakdownChangePct(t *testing.T) {
	txns := []*models.Transaction{
		// Prior month: Groceries 100, Dining nets negative.
		tx("2024-02-10", -100, "Groceries"),
		tx("2024-02-11", -10, "Dining"),
		tx("2024-02-12", 25, "Dining"),
		// Current month.
		tx("2024-03-10", -150, "Groceries"), // +50% vs prior
		tx("2024-03-11", -40, "Dining"),     // prior net < 0: undefined
		tx("2024-03-12", -60, "Shopping"),   // no prior data: +100%
	}

	entries := CategoryBreakdown(txns, month("2024-03"))
	byLabel := make(map[string]models.CategoryBreakdownEntry)
	for _, e := range entries {
		byLabel[e.Label] = e
	}

	groceries := byLabel["Groceries"]
	if groceries.ChangePct == nil || math.Abs(*groceries.ChangePct-50) > 1e-9 {
		t.Errorf("Groceries change = %v, want 50", groceries.ChangePct)
	}

	dining := byLabel["Dining"]
	if dining.ChangePct != nil {
		t.Errorf("Dining change should be undefined when prior net is negative, got %v", *dining.ChangePct)
	}

	shopping := byLabel["Shopping"]
	if shopping.ChangePct == nil || *shopping.ChangePct != 100 {
		t.Errorf("Shopping change = %v, want exactly 100", shopping.ChangePct)
	}
}

func TestTripBreakdown(t *testing.T) {
	txns := []*models.Transaction{
		txTrip("2024-01-05", -200, "Extras", "Portugal"),
		txTrip("2024-02-10", -50, "Dining", "Portugal"),
		txTrip("2024-03-01", -80, "Extras", "Japan"),
		tx("2024-03-02", -999, "Extras"), // no trip: excluded
		txTrip("2024-03-03", 120, "Extras", "Refunded"),
	}

	points := TripBreakdown(txns)
	if len(points) != 2 {
		t.Fatalf("expected 2 trips, got %d: %v", len(points), points)
	}
	if points[0].Label != "Portugal" || points[0].Amount != 250 {
		t.Errorf("point 0 = %+v", points[0])
	}
	if points[1].Label != "Japan" || points[1].Amount != 80 {
		t.Errorf("point 1 = %+v", points[1])
	}
}
