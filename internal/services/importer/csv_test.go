package importer

import (
	"reflect"
	"testing"
	"time"
)

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "a,b,c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "quoted comma stays in field",
			line: `2024-01-15,"AMAZON, INC",-12.99`,
			want: []string{"2024-01-15", "AMAZON, INC", "-12.99"},
		},
		{
			name: "whitespace trimmed",
			line: " a , b ,c ",
			want: []string{"a", "b", "c"},
		},
		{
			name: "empty trailing field",
			line: "a,b,",
			want: []string{"a", "b", ""},
		},
		{
			name: "quotes stripped",
			line: `"hello","world"`,
			want: []string{"hello", "world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitFields(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitFields(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitRows(t *testing.T) {
	raw := "header\r\nrow1\n\n  \nrow2\n"
	rows := splitRows(raw)
	want := []string{"header", "row1", "row2"}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("splitRows = %v, want %v", rows, want)
	}
}

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want string
	}{
		{"2024-01-15", "2024-01-15"},
		{"01/15/2024", "2024-01-15"},
		{"01/15/24", "2024-01-15"},
		{"12/31/2023", "2023-12-31"},
		// Unparseable dates fall back to today, silently.
		{"not-a-date", "2024-06-15"},
		{"", "2024-06-15"},
		// DD/MM is not a supported layout, so a day > 12 falls back too.
		{"15/01/2024", "2024-06-15"},
	}

	for _, tt := range tests {
		if got := normalizeDate(tt.raw, now); got != tt.want {
			t.Errorf("normalizeDate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestTruncateDescription(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	if got := truncateDescription(string(long)); len(got) != 255 {
		t.Errorf("truncateDescription length = %d, want 255", len(got))
	}
	if got := truncateDescription("  short  "); got != "short" {
		t.Errorf("truncateDescription = %q, want %q", got, "short")
	}
}
