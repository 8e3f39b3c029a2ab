package models

// StatementFormat identifies which vendor CSV layout a batch came from.
type StatementFormat string

const (
	// FormatPersonalCapital is the 6-column USD layout:
	// Date, Account, Description, Category, Tags, Amount.
	FormatPersonalCapital StatementFormat = "personal_capital"
	// FormatMoneyhub is the 6-column GBP layout:
	// Date, Amount, Description, Category, Category2, Account.
	FormatMoneyhub StatementFormat = "moneyhub"
)

// ParsedTransaction is the normalized output of the CSV parsers and the unit
// of interactive review. It lives in memory between parse and commit.
type ParsedTransaction struct {
	Date             string   `json:"date"` // ISO YYYY-MM-DD
	Description      string   `json:"description"`
	AmountGBP        float64  `json:"amount_gbp"`
	AmountUSD        *float64 `json:"amount_usd,omitempty"` // present only for USD sources
	Currency         Currency `json:"currency"`
	Category         string   `json:"category"`
	Account          string   `json:"account"`
	EncordExpensable bool     `json:"encord_expensable"`
	Trip             string   `json:"trip"`

	// SuspiciousReasons is populated by the detector; a row may carry several.
	SuspiciousReasons []string `json:"suspicious_reasons,omitempty"`
}

// FieldError attributes a validation failure to a single field of a row.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RowValidation carries the blocking validation result for one parsed row.
type RowValidation struct {
	Row    int          `json:"row"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Valid reports whether the row passed all checks.
func (v RowValidation) Valid() bool {
	return len(v.Errors) == 0
}

// ImportPreview is the review payload returned before commit: parsed rows,
// per-row validation, and non-blocking suspicious flags.
type ImportPreview struct {
	Format       StatementFormat      `json:"format"`
	Transactions []*ParsedTransaction `json:"transactions"`
	Validation   []RowValidation      `json:"validation,omitempty"`
	Suspicious   []*ParsedTransaction `json:"suspicious,omitempty"`
}
