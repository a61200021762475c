package main

import (
	"github.com/spf13/cobra"
)

func init() {
	addJSONFlag(checkCmd)
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify store integrity",
	Long: `Verify store integrity, checking for duplicate IDs and records that
add would reject (empty description or category, amount below 1).

Issues are reported as warnings; the exit status is 0 unless the file
cannot be read.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h := mustNewHandler()
		_, err := h.Check()
		exitOnError(err)
		return nil
	},
}
