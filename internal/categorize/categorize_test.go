package categorize

import (
	"testing"

	"fintrack/internal/core"
)

func TestCategorizeExpenses(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"Starbucks Coffee #1234", FoodDining},
		{"DOORDASH ORDER", FoodDining},
		{"Whole Foods Grocery", FoodDining},
		{"UBER TRIP 4521", Transportation},
		{"Shell Gas Station", Transportation},
		{"Delta Airline Ticket", Transportation},
		{"Netflix.com subscription", Entertainment},
		{"Spotify Premium", Entertainment},
		{"AMC Cinema", Entertainment},
		{"AMAZON MARKETPLACE", Shopping},
		{"Target Store 0042", Shopping},
		{"Unrecognized merchant", Shopping}, // default bucket
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := Categorize(tt.description, core.Expense); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.description, got, tt.want)
			}
		})
	}
}

func TestCategorizeIncomeAlwaysIncome(t *testing.T) {
	// Even descriptions matching expense keywords land in Income when the
	// transaction is income.
	for _, desc := range []string{"ACME Corp Salary", "Starbucks refund", "Uber driver payout"} {
		if got := Categorize(desc, core.Income); got != Income {
			t.Errorf("Categorize(%q, income) = %q, want %q", desc, got, Income)
		}
	}
}

func TestCategorizeFirstRuleWins(t *testing.T) {
	// "Gas station coffee shop" matches food keywords before transportation
	// is even consulted; rule order is fixed.
	if got := Categorize("Coffee at the gas station", core.Expense); got != FoodDining {
		t.Errorf("Categorize = %q, want %q", got, FoodDining)
	}
}

func TestSeeds(t *testing.T) {
	seeds := Seeds()
	if len(seeds) != 5 {
		t.Fatalf("Seeds() returned %d entries, want 5", len(seeds))
	}
	names := map[string]bool{}
	for _, s := range seeds {
		if s.Name == "" || s.Icon == "" || s.Color == "" {
			t.Errorf("seed %+v has empty fields", s)
		}
		names[s.Name] = true
	}
	for _, want := range []string{FoodDining, Transportation, Entertainment, Shopping, Income} {
		if !names[want] {
			t.Errorf("Seeds() missing %q", want)
		}
	}
}
