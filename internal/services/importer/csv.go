package importer

import (
	"strings"
	"time"
)

// splitFields splits one CSV line on commas, honoring quoted fields with
// embedded commas. Quote handling is deliberately minimal (toggle on '"',
// no escaped-quote support) to match the statement exports this consumes;
// encoding/csv is stricter than the rows we must keep.
func splitFields(line string) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(b.String()))
	return fields
}

// splitRows breaks raw CSV text into non-empty lines.
func splitRows(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	var rows []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			rows = append(rows, line)
		}
	}
	return rows
}

var dateLayouts = []string{
	"2006-01-02", // already ISO
	"01/02/2006", // MM/DD/YYYY
	"01/02/06",   // MM/DD/YY
}

// normalizeDate parses a statement date into ISO form. Unparseable dates fall
// back to today's date silently; the row itself is kept. (Known sharp edge —
// changing it to reject the row alters observed import behavior.)
func normalizeDate(raw string, now time.Time) string {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("2006-01-02")
		}
	}
	return now.Format("2006-01-02")
}

// truncateDescription caps descriptions at the persisted column width.
func truncateDescription(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 255 {
		return s[:255]
	}
	return s
}
