package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/skander-fourati/zawali/internal/models"
)

// maxTransactionAge bounds how far back an imported date may reach.
const maxTransactionAge = 10 // years

// ValidateBatch runs the blocking per-row checks that must pass before the
// suspicious review or upload steps. Every violation is field-attributed;
// nothing is auto-corrected.
func ValidateBatch(txns []*models.ParsedTransaction, format models.StatementFormat, now time.Time) []models.RowValidation {
	results := make([]models.RowValidation, len(txns))
	today := now.Truncate(24 * time.Hour)
	oldest := today.AddDate(-maxTransactionAge, 0, 0)

	for i, tx := range txns {
		v := models.RowValidation{Row: i}

		if strings.TrimSpace(tx.Date) == "" {
			v.Errors = append(v.Errors, models.FieldError{Field: "date", Message: "date is required"})
		} else if d, err := time.Parse("2006-01-02", tx.Date); err != nil {
			v.Errors = append(v.Errors, models.FieldError{Field: "date", Message: fmt.Sprintf("invalid date %q", tx.Date)})
		} else if d.After(today) {
			v.Errors = append(v.Errors, models.FieldError{Field: "date", Message: "date is in the future"})
		} else if d.Before(oldest) {
			v.Errors = append(v.Errors, models.FieldError{Field: "date", Message: fmt.Sprintf("date is more than %d years in the past", maxTransactionAge)})
		}

		if len(strings.TrimSpace(tx.Description)) < 2 {
			v.Errors = append(v.Errors, models.FieldError{Field: "description", Message: "description must be at least 2 characters"})
		}
		if strings.TrimSpace(tx.Category) == "" {
			v.Errors = append(v.Errors, models.FieldError{Field: "category", Message: "category is required"})
		}
		if strings.TrimSpace(tx.Account) == "" {
			v.Errors = append(v.Errors, models.FieldError{Field: "account", Message: "account is required"})
		}
		if tx.AmountGBP == 0 {
			v.Errors = append(v.Errors, models.FieldError{Field: "amount_gbp", Message: "amount must be non-zero"})
		}
		if format == models.FormatPersonalCapital {
			if tx.AmountUSD == nil {
				v.Errors = append(v.Errors, models.FieldError{Field: "amount_usd", Message: "USD amount is required for this format"})
			} else if *tx.AmountUSD == 0 {
				v.Errors = append(v.Errors, models.FieldError{Field: "amount_usd", Message: "USD amount must be non-zero"})
			}
		}

		results[i] = v
	}
	return results
}

// AllValid reports whether every row passed validation.
func AllValid(results []models.RowValidation) bool {
	for _, r := range results {
		if !r.Valid() {
			return false
		}
	}
	return true
}
