package main

import (
	"github.com/spf13/cobra"
)

func init() {
	addJSONFlag(rebuildCmd)
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query index from the CSV file",
	Long: `Rebuild the ephemeral SQLite index (the store path with a .db extension)
from the CSV source of truth. report does this automatically when the CSV
has changed; rebuild forces it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h := mustNewHandler()
		_, err := h.Rebuild()
		exitOnError(err)
		return nil
	},
}
