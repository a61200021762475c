package main

import (
	"github.com/spf13/cobra"
)

var deleteID int64

func init() {
	deleteCmd.Flags().Int64Var(&deleteID, "id", 0, "ID of the expense to delete (required)")
	deleteCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an expense",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h := mustNewHandler()
		exitOnError(h.Delete(deleteID))
		return nil
	},
}
