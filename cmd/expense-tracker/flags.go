package main

import (
	"fmt"
	"strings"

	"github.com/matsen/expense-tracker/internal/expense"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// parseAmount parses the --amount flag as a decimal number.
// Range checks are left to the handler so the store is loaded in the usual order.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid argument %q for \"--amount\" flag: not a number", s)
	}
	return d, nil
}

// validateMonthFlag accepts an empty value or one of the twelve month names,
// ignoring case.
func validateMonthFlag(s string) error {
	if s == "" {
		return nil
	}
	if _, err := expense.ParseMonth(s); err != nil {
		return fmt.Errorf("invalid argument %q for \"--month\" flag: must be one of %s",
			s, strings.Join(expense.MonthNames, ", "))
	}
	return nil
}

// addMonthFlag registers --month with shell completion of the month names.
func addMonthFlag(cmd *cobra.Command, target *string, usage string) {
	cmd.Flags().StringVar(target, "month", "", usage)
	_ = cmd.RegisterFlagCompletionFunc("month", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return expense.MonthNames, cobra.ShellCompDirectiveNoFileComp
	})
}

// addJSONFlag registers --json on commands that support machine-readable output.
func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of a table")
}
