package importer

import (
	"math"
	"testing"
	"time"

	"github.com/skander-fourati/zawali/internal/common"
	"github.com/skander-fourati/zawali/internal/models"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestParser() *Parser {
	return NewParser(common.NewSilentLogger())
}

func TestParsePersonalCapital(t *testing.T) {
	raw := "Date,Account,Description,Category,Tags,Amount\n" +
		"01/15/2024,Capital One Quicksilver,STARBUCKS COFFEE,Restaurants,,-5.00\n"

	txns := newTestParser().ParsePersonalCapital(raw, testNow)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}

	tx := txns[0]
	if tx.Date != "2024-01-15" {
		t.Errorf("Date = %q, want 2024-01-15", tx.Date)
	}
	if tx.Description != "STARBUCKS COFFEE" {
		t.Errorf("Description = %q", tx.Description)
	}
	if tx.Category != "Dining" {
		t.Errorf("Category = %q, want Dining", tx.Category)
	}
	if tx.Account != "Capital One" {
		t.Errorf("Account = %q, want Capital One", tx.Account)
	}
	if tx.Currency != models.CurrencyUSD {
		t.Errorf("Currency = %q, want USD", tx.Currency)
	}
	// -5.00 * 0.79 must be exactly -3.95, no float drift.
	if tx.AmountGBP != -3.95 {
		t.Errorf("AmountGBP = %v, want -3.95", tx.AmountGBP)
	}
	if tx.AmountUSD == nil || *tx.AmountUSD != -5.00 {
		t.Errorf("AmountUSD = %v, want -5.00", tx.AmountUSD)
	}
}

func TestParsePersonalCapitalInvestmentOverride(t *testing.T) {
	raw := "Date,Account,Description,Category,Tags,Amount\n" +
		"01/15/2024,Vanguard Brokerage,VTSAX PURCHASE,Investments,,-500.00\n" +
		"01/15/2024,Chase Freedom,TRANSFER TO BROKERAGE,Investments,,-500.00\n"

	txns := newTestParser().ParsePersonalCapital(raw, testNow)
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}

	// Investment category survives only on allowlisted investment accounts.
	if txns[0].Category != models.CategoryInvestment {
		t.Errorf("allowlisted account category = %q, want Investment", txns[0].Category)
	}
	if txns[1].Category != models.CategoryTransfers {
		t.Errorf("non-allowlisted account category = %q, want Transfers", txns[1].Category)
	}
}

func TestParseMoneyhub(t *testing.T) {
	raw := "Date,Amount,Description,Category,Category2,Account\n" +
		"2024-01-15,-45.50,TESCO STORES 2041,Groceries,,HSBC Checking\n"

	txns := newTestParser().ParseMoneyhub(raw, testNow)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}

	tx := txns[0]
	if tx.Date != "2024-01-15" {
		t.Errorf("Date = %q, want 2024-01-15", tx.Date)
	}
	if tx.Category != "Groceries" {
		t.Errorf("Category = %q, want Groceries", tx.Category)
	}
	if tx.Account != "HSBC Checkings" {
		t.Errorf("Account = %q, want HSBC Checkings", tx.Account)
	}
	if tx.Currency != models.CurrencyGBP {
		t.Errorf("Currency = %q, want GBP", tx.Currency)
	}
	if tx.AmountGBP != -45.50 {
		t.Errorf("AmountGBP = %v, want -45.50", tx.AmountGBP)
	}
	if tx.AmountUSD != nil {
		t.Errorf("AmountUSD should be nil for GBP sources")
	}
}

func TestParseDropsMalformedRows(t *testing.T) {
	raw := "Date,Amount,Description,Category,Category2,Account\n" +
		"2024-01-15,-45.50,TESCO,Groceries,,HSBC\n" +
		"2024-01-16,not-a-number,BAD ROW,Groceries,,HSBC\n" +
		"2024-01-17,only,three,columns\n" +
		"2024-01-18,-10.00,COSTA,Coffee,,Monzo\n"

	txns := newTestParser().ParseMoneyhub(raw, testNow)
	if len(txns) != 2 {
		t.Fatalf("expected 2 surviving transactions, got %d", len(txns))
	}
	if txns[0].Description != "TESCO" || txns[1].Description != "COSTA" {
		t.Errorf("unexpected survivors: %q, %q", txns[0].Description, txns[1].Description)
	}
}

func TestParseEmptyAndHeaderOnly(t *testing.T) {
	p := newTestParser()
	if txns := p.ParseMoneyhub("", testNow); txns != nil {
		t.Errorf("empty input should produce nil, got %v", txns)
	}
	if txns := p.ParseMoneyhub("Date,Amount,Description,Category,Category2,Account\n", testNow); txns != nil {
		t.Errorf("header-only input should produce nil, got %v", txns)
	}
}

func TestParseAmountSymbols(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"-5.00", -5},
		{"$1,234.56", 1234.56},
		{"£45.50", 45.50},
		{" -0.79 ", -0.79},
	}
	for _, tt := range tests {
		d, err := parseAmount(tt.raw)
		if err != nil {
			t.Errorf("parseAmount(%q) error: %v", tt.raw, err)
			continue
		}
		if got := d.InexactFloat64(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("parseAmount(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	if _, err := parseAmount("  "); err == nil {
		t.Error("parseAmount should reject empty input")
	}
	if _, err := parseAmount("abc"); err == nil {
		t.Error("parseAmount should reject non-numeric input")
	}
}

func TestParseUnknownFormat(t *testing.T) {
	if _, err := newTestParser().Parse("x", models.StatementFormat("csv"), testNow); err == nil {
		t.Error("expected error for unknown format")
	}
}
