package main

import (
	"fmt"

	"github.com/matsen/expense-tracker/internal/config"
	"github.com/matsen/expense-tracker/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set values in ~/.config/expense-tracker/config.yml.

Usage:
  expense-tracker config                         # Show effective config
  expense-tracker config currency                # Get value from config file
  expense-tracker config currency EUR            # Set value
  expense-tracker config store-path ~/money.csv  # Set default store

Keys:
  store-path  Default expenses CSV file (overridden by EXPENSE_TRACKER_FILE and --file)
  currency    ISO 4217 code used to display amounts (overridden by EXPENSE_TRACKER_CURRENCY)`,
	Args: cobra.MaximumNArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.ValidKeys, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveDefault
	},
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show the effective settings and where they came from
	if len(args) == 0 {
		settings := mustResolveSettings()
		fmt.Printf("config file: %s\n", config.GlobalConfigPath())
		status := ""
		if !storage.New(settings.StorePath).Exists() {
			status = ", not created yet"
		}
		fmt.Printf("store-path:  %s (%s%s)\n", settings.StorePath, settings.StorePathSource, status)
		fmt.Printf("currency:    %s (%s)\n", settings.Currency, settings.CurrencySource)
		return nil
	}

	key := args[0]

	if len(args) == 1 {
		value, err := cfg.Get(key)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		fmt.Println(value)
		return nil
	}

	if err := cfg.Set(key, args[1]); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	value, _ := cfg.Get(key)
	fmt.Printf("Set %s = %s\n", config.NormalizeKey(key), value)
	return nil
}
