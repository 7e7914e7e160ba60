package csvimport

import (
	"fmt"
	"strings"
	"time"

	"fintrack/internal/core"
)

// Date layouts tried in order after the generic ISO attempt. The numeric
// shape NN-NN-YYYY is ambiguous between US and day-first ordering; MM-DD is
// tried first, so DD-MM only wins when the first number cannot be a month.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"1/2/2006",
	"1-2-2006",
	"2-1-2006",
}

// ParseDate normalizes a raw date field into a calendar timestamp.
// Non-digit, non-separator characters are stripped before matching.
func ParseDate(raw string) (time.Time, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '-', r == '/':
			return r
		default:
			return -1
		}
	}, raw)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("Invalid date format: %s", raw)
}

// Keywords that mark a positive untyped amount as income.
var incomeKeywords = []string{
	"salary", "payroll", "paycheck", "deposit", "refund", "reimburse",
	"interest", "dividend", "bonus",
}

// Type column values that classify as income.
var incomeTypeMarkers = []string{"income", "deposit", "credit"}

// InferType classifies a row as income or expense. When a type column value
// is present it wins; otherwise a positive amount with an income-style
// keyword in the description is income, and everything else is an expense.
func InferType(typeField string, negative bool, description string) core.TransactionType {
	if v := strings.ToLower(strings.TrimSpace(typeField)); v != "" {
		for _, marker := range incomeTypeMarkers {
			if strings.Contains(v, marker) {
				return core.Income
			}
		}
		return core.Expense
	}

	if !negative {
		desc := strings.ToLower(description)
		for _, kw := range incomeKeywords {
			if strings.Contains(desc, kw) {
				return core.Income
			}
		}
	}
	return core.Expense
}
