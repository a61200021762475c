package main

import (
	"github.com/spf13/cobra"
)

var (
	addDescription string
	addCategory    string
	addAmount      string
)

func init() {
	addCmd.Flags().StringVar(&addDescription, "description", "", "Expense description (required)")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Expense category (required)")
	addCmd.Flags().StringVar(&addAmount, "amount", "", "Expense amount, at least 1 (required)")
	addCmd.MarkFlagRequired("description")
	addCmd.MarkFlagRequired("category")
	addCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new expense",
	Long: `Add a new expense dated to the current month.

The expense gets the next free ID (one more than the largest ID in the store).

Examples:
  expense-tracker add --description "Lunch" --category Food --amount 12.5`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(addAmount)
	if err != nil {
		return err
	}

	h := mustNewHandler()
	exitOnError(h.Add(addDescription, addCategory, amount))
	return nil
}
