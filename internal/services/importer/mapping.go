// Package importer implements the bank statement import pipeline:
// CSV parsing, category/account normalization, blocking validation,
// and suspicious-transaction detection.
package importer

import (
	"strings"

	"github.com/skander-fourati/zawali/internal/models"
)

// personalCapitalCategoryMap maps lower-cased Personal Capital vendor
// categories to canonical names. "travel" is absent: it is amount-conditional
// and handled in MapCategory.
var personalCapitalCategoryMap = map[string]string{
	"restaurants":            "Dining",
	"fast food":              "Dining",
	"coffee shops":           "Dining",
	"alcohol & bars":         "Dining",
	"groceries":              "Groceries",
	"supermarkets":           "Groceries",
	"gasoline/fuel":          "Commute",
	"public transportation":  "Commute",
	"taxi":                   "Commute",
	"parking":                "Commute",
	"utilities":              "Bills",
	"mobile phone":           "Bills",
	"internet":               "Bills",
	"rent":                   "Bills",
	"insurance":              "Bills",
	"healthcare/medical":     "Health",
	"pharmacy":               "Health",
	"gym":                    "Health",
	"entertainment":          "Entertainment",
	"movies & dvds":          "Entertainment",
	"music":                  "Entertainment",
	"shopping":               "Shopping",
	"clothing":               "Shopping",
	"electronics & software": "Shopping",
	"hobbies":                "Shopping",
	"subscription":           "Subscriptions",
	"streaming services":     "Subscriptions",
	"online services":        "Subscriptions",
	"paycheck":               models.CategoryIncome,
	"salary":                 models.CategoryIncome,
	"interest income":        models.CategoryIncome,
	"dividends received":     models.CategoryIncome,
	"investments":            models.CategoryInvestment,
	"securities trades":      models.CategoryInvestment,
	"retirement contributions": models.CategoryInvestment,
	"transfer":               models.CategoryTransfers,
	"credit card payment":    models.CategoryTransfers,
	"atm/cash":               "Extras",
	"gifts":                  "Extras",
	"charity":                "Extras",
	"hotels":                 "Extras",
}

// moneyhubCategoryMap maps lower-cased Moneyhub vendor categories to canonical
// names. "travel" and "securities" are conditional and handled in MapCategory.
var moneyhubCategoryMap = map[string]string{
	"eating out":     "Dining",
	"takeaway":       "Dining",
	"coffee":         "Dining",
	"groceries":      "Groceries",
	"supermarket":    "Groceries",
	"bills":          "Bills",
	"utilities":      "Bills",
	"rent":           "Bills",
	"council tax":    "Bills",
	"insurance":      "Bills",
	"transport":      "Commute",
	"fuel":           "Commute",
	"holidays":       "Extras",
	"cash":           "Extras",
	"gifts":          "Extras",
	"charity":        "Extras",
	"entertainment":  "Entertainment",
	"shopping":       "Shopping",
	"clothes":        "Shopping",
	"personal care":  "Health",
	"health":         "Health",
	"fitness":        "Health",
	"subscriptions":  "Subscriptions",
	"salary":         models.CategoryIncome,
	"income":         models.CategoryIncome,
	"interest":       models.CategoryIncome,
	"refunds":        models.CategoryIncome,
	"transfers":      models.CategoryTransfers,
	"family":         models.CategoryFamilyTransfer,
	"family support": models.CategoryFamilyTransfer,
}

// moneyhubBillsDescriptions force the Bills category regardless of the vendor
// category when found in the description (case-insensitive substring).
var moneyhubBillsDescriptions = []string{
	"rent",
	"splitwise",
}

// accountMapping is an ordered lookup entry. Matching tries exact first across
// the whole table, then bidirectional substring containment in table order;
// the first substring match wins, so order is significant.
type accountMapping struct {
	key  string // lower-cased match key
	name string // canonical account name
}

var personalCapitalAccountMap = []accountMapping{
	{"capital one", "Capital One"},
	{"chase", "Chase Checking"},
	{"american express", "Amex"},
	{"amex", "Amex"},
	{"vanguard", "Vanguard"},
	{"fidelity", "Fidelity"},
	{"wealthfront", "Wealthfront"},
	{"venmo", "Venmo"},
}

var moneyhubAccountMap = []accountMapping{
	{"hsbc", "HSBC Checkings"},
	{"monzo", "Monzo"},
	{"revolut", "Revolut"},
	{"barclays", "Barclays"},
	{"dodl", "Dodl"},
	{"moneybox", "Moneybox LISA"},
	{"lisa", "Moneybox LISA"},
	{"vanguard", "Vanguard UK"},
}

const (
	defaultPersonalCapitalAccount = "Capital One"
	defaultMoneyhubAccount        = "HSBC Checkings"
)

// investmentAccountAllowlist holds the Personal Capital accounts allowed to
// carry the Investment category. Investment rows resolved to any other account
// are recategorized as Transfers.
var investmentAccountAllowlist = map[string]bool{
	"Vanguard":    true,
	"Fidelity":    true,
	"Wealthfront": true,
}

// gbpTravelThreshold splits travel rows into Extras (large) vs Commute.
const gbpTravelThreshold = 100.0

// MapCategory resolves a raw vendor category to a canonical name. Amount is
// the signed GBP amount and drives the conditional rules; description drives
// the Moneyhub keyword overrides. Unknown categories map to "Other / Unknown",
// never an error.
func MapCategory(vendorCategory string, format models.StatementFormat, amountGBP float64, description string) string {
	cat := strings.ToLower(strings.TrimSpace(vendorCategory))

	if format == models.FormatMoneyhub {
		desc := strings.ToLower(description)
		for _, kw := range moneyhubBillsDescriptions {
			if strings.Contains(desc, kw) {
				return "Bills"
			}
		}
	}

	if cat == "travel" {
		if abs(amountGBP) >= gbpTravelThreshold {
			return "Extras"
		}
		return "Commute"
	}

	if format == models.FormatMoneyhub {
		if cat == "securities" {
			if amountGBP > 0 {
				return models.CategoryInvestment
			}
			return models.CategoryTransfers
		}
		if mapped, ok := moneyhubCategoryMap[cat]; ok {
			return mapped
		}
		return models.CategoryOther
	}

	if mapped, ok := personalCapitalCategoryMap[cat]; ok {
		return mapped
	}
	return models.CategoryOther
}

// MapAccount resolves a raw vendor account to a canonical name: exact match
// first, then bidirectional substring containment in table order, then the
// per-vendor default.
func MapAccount(vendorAccount string, format models.StatementFormat) string {
	table := personalCapitalAccountMap
	fallback := defaultPersonalCapitalAccount
	if format == models.FormatMoneyhub {
		table = moneyhubAccountMap
		fallback = defaultMoneyhubAccount
	}

	raw := strings.ToLower(strings.TrimSpace(vendorAccount))
	if raw == "" {
		return fallback
	}

	for _, m := range table {
		if raw == m.key {
			return m.name
		}
	}
	for _, m := range table {
		if strings.Contains(raw, m.key) || strings.Contains(m.key, raw) {
			return m.name
		}
	}
	return fallback
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
