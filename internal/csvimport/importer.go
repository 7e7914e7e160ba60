package csvimport

import (
	"fmt"
	"strings"
	"time"

	"fintrack/internal/core"
)

// CategorizeFunc maps a description and transaction type to a category id.
// A nil result leaves the transaction uncategorized.
type CategorizeFunc func(description string, t core.TransactionType) *string

// Result is the outcome of assembling one CSV upload. Errors holds one entry
// per rejected row plus any structural problems; ValidRows always equals
// len(Transactions).
type Result struct {
	Transactions []core.Transaction
	Errors       []string
	TotalRows    int
	ValidRows    int
}

// Assemble converts parsed data rows into transactions, collecting per-row
// errors without aborting the batch. Row numbers in error messages are
// 1-based and include the header row offset, so the first data row is row 2.
func Assemble(rows [][]string, cols Columns, userID string, categorize CategorizeFunc, now time.Time) Result {
	res := Result{TotalRows: len(rows)}

	maxIdx := cols.Date
	for _, idx := range []int{cols.Description, cols.Amount, cols.Type} {
		if idx > maxIdx {
			maxIdx = idx
		}
	}

	for i, row := range rows {
		rowNum := i + 2 // header occupies row 1

		if len(row) <= maxIdx {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: insufficient columns", rowNum))
			continue
		}

		date, err := ParseDate(field(row, cols.Date))
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		description := strings.TrimSpace(field(row, cols.Description))
		if description == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: missing description", rowNum))
			continue
		}

		rawAmount := field(row, cols.Amount)
		cents, negative, err := core.ParseAmount(rawAmount)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: Invalid amount: %s", rowNum, rawAmount))
			continue
		}

		txType := InferType(field(row, cols.Type), negative, description)

		tx := core.Transaction{
			Description: description,
			Amount:      core.Money{Cents: cents},
			Date:        date,
			Type:        txType,
			UserID:      userID,
			CreatedAt:   now,
		}
		if categorize != nil {
			tx.CategoryID = categorize(description, txType)
		}
		res.Transactions = append(res.Transactions, tx)
	}

	res.ValidRows = len(res.Transactions)
	return res
}

// field returns the value at idx, or "" when the column is unresolved.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
