package main

import (
	"fmt"

	"github.com/matsen/expense-tracker/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the expenses file",
	Long: `Create the expenses CSV file with only its header row.

Every command does this on demand; init is useful to create the file
(and its parent directory) up front. An existing file is never modified.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	settings := mustResolveSettings()
	store := storage.New(settings.StorePath)

	created, err := store.Initialize()
	if err != nil {
		exitWithError(ExitError, "initializing store: %v", err)
	}

	if created {
		fmt.Printf("Initialized store: %s\n", store.Path())
	} else {
		fmt.Printf("Store already exists: %s\n", store.Path())
	}
	return nil
}
