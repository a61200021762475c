package tracker

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matsen/expense-tracker/internal/expense"
)

// Column widths for the expense table.
const (
	idWidth          = 4
	monthWidth       = 10
	descriptionWidth = 30
	categoryWidth    = 15
	amountWidth      = 12
)

// ExpenseView is the JSON form of an expense.
type ExpenseView struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Month       string `json:"month"`
	Category    string `json:"category"`
}

func toExpenseViews(expenses []expense.Expense) []ExpenseView {
	views := make([]ExpenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, ExpenseView{
			ID:          e.ID,
			Description: e.Description,
			Amount:      expense.FormatNumber(e.Amount),
			Month:       e.Month.String(),
			Category:    e.Category,
		})
	}
	return views
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeExpenseTable(w io.Writer, expenses []expense.Expense, currency string) error {
	row := fmt.Sprintf("%%-%ds %%-%ds %%-%ds %%-%ds %%%ds\n",
		idWidth, monthWidth, descriptionWidth, categoryWidth, amountWidth)

	if _, err := fmt.Fprintf(w, row, "ID", "Month", "Description", "Category", "Amount"); err != nil {
		return err
	}
	for _, e := range expenses {
		_, err := fmt.Fprintf(w, row,
			fmt.Sprintf("%d", e.ID),
			e.Month.String(),
			truncateString(e.Description, descriptionWidth),
			truncateString(e.Category, categoryWidth),
			expense.FormatAmount(e.Amount, currency),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// truncateString shortens s to at most maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
