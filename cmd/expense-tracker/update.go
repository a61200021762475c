package main

import (
	"github.com/spf13/cobra"
)

var (
	updateID          int64
	updateDescription string
	updateCategory    string
	updateAmount      string
)

func init() {
	updateCmd.Flags().Int64Var(&updateID, "id", 0, "ID of the expense to update (required)")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "New description (required)")
	updateCmd.Flags().StringVar(&updateCategory, "category", "", "New category (required)")
	updateCmd.Flags().StringVar(&updateAmount, "amount", "", "New amount, at least 1 (required)")
	updateCmd.MarkFlagRequired("id")
	updateCmd.MarkFlagRequired("description")
	updateCmd.MarkFlagRequired("category")
	updateCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update an expense",
	Long: `Replace the description, category and amount of an existing expense.
The ID and month are never changed.

Examples:
  expense-tracker update --id 3 --description "Dinner" --category Food --amount 40`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(updateAmount)
	if err != nil {
		return err
	}

	h := mustNewHandler()
	exitOnError(h.Update(updateID, updateDescription, updateCategory, amount))
	return nil
}
