// Package analytics computes aggregate views over a user's stored data.
// Every function is pure and stateless: absent or empty input degrades to
// zero-valued results, never an error.
package analytics

import (
	"math"
	"sort"
	"time"

	"fintrack/internal/core"
)

// Summary is the aggregate financial snapshot computed on demand.
type Summary struct {
	TotalIncome     core.Money
	TotalExpenses   core.Money
	TotalBalance    core.Money
	MonthlySpending core.Money
	SavingsProgress int // rounded percent across all goals
	BudgetRemaining core.Money
}

// CategorySpending is one category's expense total with display metadata.
type CategorySpending struct {
	ID     string
	Name   string
	Amount core.Money
	Color  string
}

// MonthlyPoint is one (year, month) bucket of the trend view.
type MonthlyPoint struct {
	Year     int
	Month    time.Month
	Income   core.Money
	Expenses core.Money
}

// Summarize computes the snapshot for one user's data set. BudgetRemaining
// uses the independently tracked Spent field, never sums from transactions.
func Summarize(txs []core.Transaction, budgets []core.Budget, goals []core.SavingsGoal, now time.Time) Summary {
	var s Summary

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			s.TotalIncome.Cents += tx.Amount.Cents
		case core.Expense:
			s.TotalExpenses.Cents += tx.Amount.Cents
			if !tx.Date.Before(monthStart) && !tx.Date.After(now) {
				s.MonthlySpending.Cents += tx.Amount.Cents
			}
		}
	}
	s.TotalBalance.Cents = s.TotalIncome.Cents - s.TotalExpenses.Cents

	var current, target int64
	for _, g := range goals {
		current += g.CurrentAmount.Cents
		target += g.TargetAmount.Cents
	}
	if target > 0 {
		s.SavingsProgress = int(math.Round(100 * float64(current) / float64(target)))
	}

	for _, b := range budgets {
		s.BudgetRemaining.Cents += b.Amount.Cents - b.Spent.Cents
	}
	return s
}

// SpendingByCategory sums expense amounts per category, emitting only
// categories with a positive total, in the order the categories are given.
func SpendingByCategory(txs []core.Transaction, categories []core.Category) []CategorySpending {
	sums := sumExpensesByCategory(txs)

	out := make([]CategorySpending, 0, len(categories))
	for _, c := range categories {
		if cents := sums[c.ID]; cents > 0 {
			out = append(out, CategorySpending{
				ID:     c.ID,
				Name:   c.Name,
				Amount: core.Money{Cents: cents},
				Color:  c.Color,
			})
		}
	}
	return out
}

// MonthlyTrend groups transactions by calendar month, summing income and
// expenses separately, sorted chronologically.
func MonthlyTrend(txs []core.Transaction) []MonthlyPoint {
	type key struct {
		year  int
		month time.Month
	}
	buckets := map[key]*MonthlyPoint{}
	for _, tx := range txs {
		k := key{tx.Date.Year(), tx.Date.Month()}
		p, ok := buckets[k]
		if !ok {
			p = &MonthlyPoint{Year: k.year, Month: k.month}
			buckets[k] = p
		}
		switch tx.Type {
		case core.Income:
			p.Income.Cents += tx.Amount.Cents
		case core.Expense:
			p.Expenses.Cents += tx.Amount.Cents
		}
	}

	out := make([]MonthlyPoint, 0, len(buckets))
	for _, p := range buckets {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// Breakdown is SpendingByCategory restricted to a trailing window of whole
// months (1, 3, 6 or 12), measured from the first of the appropriate month,
// sorted descending by amount.
func Breakdown(txs []core.Transaction, categories []core.Category, months int, now time.Time) []CategorySpending {
	if months < 1 {
		months = 1
	}
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(months - 1), 0)

	var windowed []core.Transaction
	for _, tx := range txs {
		if !tx.Date.Before(windowStart) {
			windowed = append(windowed, tx)
		}
	}

	out := SpendingByCategory(windowed, categories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

func sumExpensesByCategory(txs []core.Transaction) map[string]int64 {
	sums := map[string]int64{}
	for _, tx := range txs {
		if tx.Type != core.Expense || tx.CategoryID == nil {
			continue
		}
		sums[*tx.CategoryID] += tx.Amount.Cents
	}
	return sums
}
