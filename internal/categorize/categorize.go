// Package categorize assigns seed categories to transactions from keyword
// heuristics over the description text.
package categorize

import (
	"strings"

	"fintrack/internal/core"
)

// Canonical seed category names. Every new user gets this fixed set.
const (
	FoodDining     = "Food & Dining"
	Transportation = "Transportation"
	Entertainment  = "Entertainment"
	Shopping       = "Shopping"
	Income         = "Income"
)

// Seed describes one category from the fixed starter set.
type Seed struct {
	Name  string
	Icon  string
	Color string
}

// Seeds returns the starter categories created for a new user.
func Seeds() []Seed {
	return []Seed{
		{Name: FoodDining, Icon: "utensils", Color: "#FF6B6B"},
		{Name: Transportation, Icon: "car", Color: "#4ECDC4"},
		{Name: Entertainment, Icon: "film", Color: "#A29BFE"},
		{Name: Shopping, Icon: "shopping-bag", Color: "#F7B731"},
		{Name: Income, Icon: "dollar-sign", Color: "#2ECC71"},
	}
}

// rules are evaluated in declaration order; the first category with a
// substring match wins. No scoring, no multi-match resolution.
var rules = []struct {
	category string
	keywords []string
}{
	{FoodDining, []string{
		"restaurant", "food", "dining", "starbucks", "coffee", "cafe",
		"pizza", "burger", "meal", "grocery", "doordash", "mcdonald",
		"chipotle", "bakery",
	}},
	{Transportation, []string{
		"uber", "lyft", "gas", "fuel", "parking", "transit", "metro",
		"taxi", "toll", "shell", "chevron", "airline", "flight",
	}},
	{Entertainment, []string{
		"netflix", "spotify", "movie", "cinema", "theater", "concert",
		"game", "steam", "hulu", "disney",
	}},
	{Shopping, []string{
		"amazon", "walmart", "target", "store", "shop", "purchase",
		"ebay", "mall", "clothing",
	}},
}

// Categorize maps a description and type to a seed category name. Income
// transactions always land in Income; expenses fall through the keyword
// table and default to Shopping. The function is total: every input gets
// exactly one category.
func Categorize(description string, t core.TransactionType) string {
	if t == core.Income {
		return Income
	}
	desc := strings.ToLower(description)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.category
			}
		}
	}
	return Shopping
}
