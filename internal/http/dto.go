package http

import (
	"math"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/csvimport"
)

// Wire dates are plain calendar days; timestamps use RFC 3339.
const dateLayout = "2006-01-02"

// Amounts cross the wire as decimal numbers and are stored as cents.
func dollarsToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

type transactionJSON struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	CategoryID  *string `json:"categoryId,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

func toTransactionJSON(tx core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount.Float64(),
		Date:        tx.Date.Format(dateLayout),
		Type:        string(tx.Type),
		CategoryID:  tx.CategoryID,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
}

func toTransactionsJSON(txs []core.Transaction) []transactionJSON {
	out := make([]transactionJSON, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionJSON(tx)
	}
	return out
}

type categoryJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func toCategoryJSON(c core.Category) categoryJSON {
	return categoryJSON{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color}
}

type budgetJSON struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Spent      float64 `json:"spent"`
	CategoryID *string `json:"categoryId,omitempty"`
	Period     string  `json:"period"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate,omitempty"`
}

func toBudgetJSON(b core.Budget) budgetJSON {
	out := budgetJSON{
		ID:         b.ID,
		Name:       b.Name,
		Amount:     b.Amount.Float64(),
		Spent:      b.Spent.Float64(),
		CategoryID: b.CategoryID,
		Period:     string(b.Period),
		StartDate:  b.StartDate.Format(dateLayout),
	}
	if !b.EndDate.IsZero() {
		out.EndDate = b.EndDate.Format(dateLayout)
	}
	return out
}

type goalJSON struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	TargetDate    string  `json:"targetDate,omitempty"`
}

func toGoalJSON(g core.SavingsGoal) goalJSON {
	out := goalJSON{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount.Float64(),
		CurrentAmount: g.CurrentAmount.Float64(),
	}
	if g.TargetDate != nil {
		out.TargetDate = g.TargetDate.Format(dateLayout)
	}
	return out
}

type summaryJSON struct {
	TotalIncome     float64 `json:"totalIncome"`
	TotalExpenses   float64 `json:"totalExpenses"`
	TotalBalance    float64 `json:"totalBalance"`
	MonthlySpending float64 `json:"monthlySpending"`
	SavingsProgress int     `json:"savingsProgress"`
	BudgetRemaining float64 `json:"budgetRemaining"`
}

func toSummaryJSON(s analytics.Summary) summaryJSON {
	return summaryJSON{
		TotalIncome:     s.TotalIncome.Float64(),
		TotalExpenses:   s.TotalExpenses.Float64(),
		TotalBalance:    s.TotalBalance.Float64(),
		MonthlySpending: s.MonthlySpending.Float64(),
		SavingsProgress: s.SavingsProgress,
		BudgetRemaining: s.BudgetRemaining.Float64(),
	}
}

type categorySpendingJSON struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Color  string  `json:"color"`
}

func toCategorySpendingJSON(in []analytics.CategorySpending) []categorySpendingJSON {
	out := make([]categorySpendingJSON, len(in))
	for i, c := range in {
		out[i] = categorySpendingJSON{
			ID:     c.ID,
			Name:   c.Name,
			Amount: c.Amount.Float64(),
			Color:  c.Color,
		}
	}
	return out
}

type monthlyPointJSON struct {
	Month    string  `json:"month"` // "2024-03"
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

func toMonthlyTrendJSON(in []analytics.MonthlyPoint) []monthlyPointJSON {
	out := make([]monthlyPointJSON, len(in))
	for i, p := range in {
		out[i] = monthlyPointJSON{
			Month:    time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
			Income:   p.Income.Float64(),
			Expenses: p.Expenses.Float64(),
		}
	}
	return out
}

type importResultJSON struct {
	Transactions []transactionJSON `json:"transactions"`
	Errors       []string          `json:"errors"`
	TotalRows    int               `json:"totalRows"`
	ValidRows    int               `json:"validRows"`
}

func toImportResultJSON(res csvimport.Result) importResultJSON {
	out := importResultJSON{
		Transactions: toTransactionsJSON(res.Transactions),
		Errors:       res.Errors,
		TotalRows:    res.TotalRows,
		ValidRows:    res.ValidRows,
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	return out
}
