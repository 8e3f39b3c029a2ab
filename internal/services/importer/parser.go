package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skander-fourati/zawali/internal/common"
	"github.com/skander-fourati/zawali/internal/models"
)

// usdToGBP is the fixed statement conversion rate as a decimal, so the
// USD→GBP multiplication is exact; rounding happens only at the persistence
// boundary.
var usdToGBP = decimal.NewFromFloat(models.USDToGBPRate)

// Parser turns raw statement CSV text into normalized ParsedTransactions.
// Parsing never fails for the whole file: malformed rows are dropped with a
// warning and the rest of the batch goes through.
type Parser struct {
	logger *common.Logger
}

// NewParser creates a statement parser.
func NewParser(logger *common.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse dispatches to the vendor-specific parser for the given format.
func (p *Parser) Parse(raw string, format models.StatementFormat, now time.Time) ([]*models.ParsedTransaction, error) {
	switch format {
	case models.FormatPersonalCapital:
		return p.ParsePersonalCapital(raw, now), nil
	case models.FormatMoneyhub:
		return p.ParseMoneyhub(raw, now), nil
	default:
		return nil, fmt.Errorf("unknown statement format %q", format)
	}
}

// ParsePersonalCapital parses the 6-column USD layout:
// Date, Account, Description, Category, Tags, Amount.
func (p *Parser) ParsePersonalCapital(raw string, now time.Time) []*models.ParsedTransaction {
	rows := splitRows(raw)
	if len(rows) <= 1 {
		return nil
	}

	var out []*models.ParsedTransaction
	for i, line := range rows[1:] { // row 0 is the header
		tx, err := p.parsePersonalCapitalRow(line, now)
		if err != nil {
			p.logger.Warn().Int("row", i+2).Err(err).Msg("Dropping malformed statement row")
			continue
		}
		out = append(out, tx)
	}
	return out
}

func (p *Parser) parsePersonalCapitalRow(line string, now time.Time) (*models.ParsedTransaction, error) {
	fields := splitFields(line)
	if len(fields) != 6 {
		return nil, fmt.Errorf("expected 6 columns, got %d", len(fields))
	}

	usd, err := parseAmount(fields[5])
	if err != nil {
		return nil, fmt.Errorf("bad amount %q: %w", fields[5], err)
	}

	gbp := usd.Mul(usdToGBP)
	account := MapAccount(fields[1], models.FormatPersonalCapital)
	category := MapCategory(fields[3], models.FormatPersonalCapital, gbp.InexactFloat64(), fields[2])

	// Investment rows outside the investment account allowlist are transfers
	// between accounts, not purchases.
	if category == models.CategoryInvestment && !investmentAccountAllowlist[account] {
		category = models.CategoryTransfers
	}

	usdVal := usd.InexactFloat64()
	return &models.ParsedTransaction{
		Date:        normalizeDate(fields[0], now),
		Description: truncateDescription(fields[2]),
		AmountGBP:   gbp.InexactFloat64(),
		AmountUSD:   &usdVal,
		Currency:    models.CurrencyUSD,
		Category:    category,
		Account:     account,
	}, nil
}

// ParseMoneyhub parses the 6-column GBP layout:
// Date, Amount, Description, Category, Category2, Account.
func (p *Parser) ParseMoneyhub(raw string, now time.Time) []*models.ParsedTransaction {
	rows := splitRows(raw)
	if len(rows) <= 1 {
		return nil
	}

	var out []*models.ParsedTransaction
	for i, line := range rows[1:] {
		tx, err := p.parseMoneyhubRow(line, now)
		if err != nil {
			p.logger.Warn().Int("row", i+2).Err(err).Msg("Dropping malformed statement row")
			continue
		}
		out = append(out, tx)
	}
	return out
}

func (p *Parser) parseMoneyhubRow(line string, now time.Time) (*models.ParsedTransaction, error) {
	fields := splitFields(line)
	if len(fields) != 6 {
		return nil, fmt.Errorf("expected 6 columns, got %d", len(fields))
	}

	gbp, err := parseAmount(fields[1])
	if err != nil {
		return nil, fmt.Errorf("bad amount %q: %w", fields[1], err)
	}

	return &models.ParsedTransaction{
		Date:        normalizeDate(fields[0], now),
		Description: truncateDescription(fields[2]),
		AmountGBP:   gbp.InexactFloat64(),
		Currency:    models.CurrencyGBP,
		Category:    MapCategory(fields[3], models.FormatMoneyhub, gbp.InexactFloat64(), fields[2]),
		Account:     MapAccount(fields[5], models.FormatMoneyhub),
	}, nil
}

// parseAmount parses a statement amount, tolerating currency symbols and
// thousands separators.
func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "£", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	return decimal.NewFromString(s)
}
