package core

import (
	"testing"
	"time"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOK    bool
		wantValue float64
	}{
		{"positive integer", "123", true, 123},
		{"zero", "0", true, 0},
		{"negative", "-4.5", true, -4.5},
		{"decimal", "19.99", true, 19.99},
		{"leading decimal point", ".5", true, 0.5},
		{"surrounding whitespace", " 12.5 ", true, 12.5},
		{"scientific notation", "1e3", true, 1000},
		{"empty", "", false, 0},
		{"word", "abc", false, 0},
		{"trailing garbage", "12x", false, 0},
		{"thousands separator", "1,234", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseNumber(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.wantValue {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.wantValue)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOK    bool
		wantValue int
	}{
		{"positive", "42", true, 42},
		{"zero", "0", true, 0},
		{"negative", "-7", true, -7},
		{"surrounding whitespace", " 9 ", true, 9},
		{"decimal rejected", "3.0", false, 0},
		{"empty", "", false, 0},
		{"word", "five", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInt(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseInt(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.wantValue {
				t.Errorf("ParseInt(%q) = %d, want %d", tt.input, got, tt.wantValue)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   time.Time
	}{
		{"valid ISO date", "2026-01-31", true, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)},
		{"leap day", "2024-02-29", true, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"whitespace trimmed", " 2026-06-01 ", true, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"month out of range", "2026-13-01", false, time.Time{}},
		{"day out of range", "2026-02-30", false, time.Time{}},
		{"US format rejected", "01/31/2026", false, time.Time{}},
		{"missing zero padding", "2026-1-31", false, time.Time{}},
		{"date with time rejected", "2026-01-31 12:00:00", false, time.Time{}},
		{"empty", "", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "A1", "A1"},
		{"whitespace", "  A1 ", "A1"},
		{"bom", "A1", "A1"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
