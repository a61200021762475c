package main

import (
	"time"

	"github.com/matsen/expense-tracker/internal/expense"
	"github.com/spf13/cobra"
)

var reportMonth string

func init() {
	addMonthFlag(reportCmd, &reportMonth, "Only report this month (e.g. March)")
	addJSONFlag(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show totals per category",
	Long: `Show the number of expenses and their total for each category,
largest total first, followed by a grand total. Categories are grouped
ignoring case.

Examples:
  expense-tracker report
  expense-tracker report --month April`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := validateMonthFlag(reportMonth); err != nil {
		return err
	}

	var month time.Month
	if reportMonth != "" {
		month, _ = expense.ParseMonth(reportMonth)
	}

	h := mustNewHandler()
	exitOnError(h.Report(month))
	return nil
}
