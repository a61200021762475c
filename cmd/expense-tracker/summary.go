package main

import (
	"github.com/matsen/expense-tracker/internal/expense"
	"github.com/spf13/cobra"
)

var (
	summaryMonth    string
	summaryCategory string
)

func init() {
	addMonthFlag(summaryCmd, &summaryMonth, "Only total this month (e.g. March)")
	summaryCmd.Flags().StringVar(&summaryCategory, "category", "", "Only total this category (case-insensitive)")
	rootCmd.AddCommand(summaryCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the total of expenses",
	Long: `Print the sum of all expenses, or of those matching the filters.

Examples:
  expense-tracker summary
  expense-tracker summary --month March
  expense-tracker summary --month March --category Food`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	if err := validateMonthFlag(summaryMonth); err != nil {
		return err
	}

	h := mustNewHandler()
	exitOnError(h.Summary(expense.Filter{Month: summaryMonth, Category: summaryCategory}))
	return nil
}
