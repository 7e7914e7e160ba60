package csvimport

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"iso", "2024-01-15", day(2024, time.January, 15)},
		{"iso single digit", "2024-1-5", day(2024, time.January, 5)},
		{"us slashes", "1/15/2024", day(2024, time.January, 15)},
		{"us dashes", "1-15-2024", day(2024, time.January, 15)},
		{"day first when month impossible", "15-01-2024", day(2024, time.January, 15)},
		{"ambiguous resolves month first", "03-04-2024", day(2024, time.March, 4)},
		{"noise stripped", " 2024-01-15 ", day(2024, time.January, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if err != nil {
				t.Fatalf("ParseDate(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, input := range []string{"", "not a date", "2024-13-40", "99/99/2024"} {
		if _, err := ParseDate(input); err == nil {
			t.Errorf("ParseDate(%q) expected error", input)
		}
	}
}

func TestInferType(t *testing.T) {
	tests := []struct {
		name        string
		typeField   string
		negative    bool
		description string
		want        core.TransactionType
	}{
		{"type column income", "Income", false, "whatever", core.Income},
		{"type column credit", "CREDIT", true, "whatever", core.Income},
		{"type column expense", "debit", false, "Salary Deposit", core.Expense},
		{"income keyword", "", false, "ACME Corp Salary", core.Income},
		{"deposit keyword", "", false, "Direct Deposit", core.Income},
		{"refund keyword", "", false, "Amazon refund", core.Income},
		{"negative never keyword income", "", true, "Salary clawback", core.Expense},
		{"plain purchase", "", false, "Starbucks Coffee", core.Expense},
		{"negative amount", "", true, "Grocery Store", core.Expense},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferType(tt.typeField, tt.negative, tt.description)
			if got != tt.want {
				t.Errorf("InferType(%q, %v, %q) = %v, want %v",
					tt.typeField, tt.negative, tt.description, got, tt.want)
			}
		})
	}
}
