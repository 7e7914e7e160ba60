package csvimport

import "strings"

// Columns holds the resolved zero-based index of each semantic column.
// A value of -1 means the column was not found in the header.
type Columns struct {
	Date        int
	Description int
	Amount      int
	Type        int
}

// Accepted header aliases per semantic column. Matching is case-insensitive
// and accepts exact, header-contains-alias and alias-contains-header.
var (
	dateAliases = []string{
		"date", "transaction date", "trans_date", "trans date", "posted",
		"posting date", "booking date",
	}
	descriptionAliases = []string{
		"description", "memo", "payee", "merchant", "details", "narrative",
		"reference", "name",
	}
	amountAliases = []string{
		"amount", "value", "sum", "total", "debit", "price",
	}
	typeAliases = []string{
		"type", "transaction type", "direction", "dr/cr", "credit/debit",
	}
)

// ResolveColumn returns the index of the first header entry that
// case-insensitively equals, contains, or is contained by one of the
// aliases, or -1 when none match.
func ResolveColumn(header []string, aliases []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		for _, a := range aliases {
			if h == a || strings.Contains(h, a) || strings.Contains(a, h) {
				return i
			}
		}
	}
	return -1
}

// ResolveColumns maps the header row onto the four semantic columns.
// Date, description and amount are required; a missing one is reported as a
// structural error for the whole upload. Type is optional and inferred per
// row when absent.
func ResolveColumns(header []string) (Columns, []string) {
	cols := Columns{
		Date:        ResolveColumn(header, dateAliases),
		Description: ResolveColumn(header, descriptionAliases),
		Amount:      ResolveColumn(header, amountAliases),
		Type:        ResolveColumn(header, typeAliases),
	}

	var missing []string
	if cols.Date == -1 {
		missing = append(missing, "date")
	}
	if cols.Description == -1 {
		missing = append(missing, "description")
	}
	if cols.Amount == -1 {
		missing = append(missing, "amount")
	}

	var errs []string
	if len(missing) > 0 {
		errs = append(errs, "CSV is missing required columns: "+strings.Join(missing, ", "))
	}
	return cols, errs
}
