package main

import (
	"github.com/matsen/expense-tracker/internal/expense"
	"github.com/spf13/cobra"
)

var (
	listMonth    string
	listCategory string
)

func init() {
	addMonthFlag(listCmd, &listMonth, "Only expenses from this month (e.g. March)")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only expenses in this category (case-insensitive)")
	addJSONFlag(listCmd)
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses",
	Long: `List expenses as a table, optionally filtered by month and category.
When both filters are given an expense must match both.

Examples:
  expense-tracker list
  expense-tracker list --month march --category food
  expense-tracker list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	if err := validateMonthFlag(listMonth); err != nil {
		return err
	}

	h := mustNewHandler()
	exitOnError(h.List(expense.Filter{Month: listMonth, Category: listCategory}))
	return nil
}
