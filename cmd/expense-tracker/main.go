// Package main provides the expense-tracker CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/matsen/expense-tracker/internal/config"
	applog "github.com/matsen/expense-tracker/internal/log"
	"github.com/matsen/expense-tracker/internal/storage"
	"github.com/matsen/expense-tracker/internal/tracker"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// storeFlag overrides the store path from the environment and config file
	storeFlag string
	// verbose enables debug diagnostics on stderr
	verbose bool
	// jsonOutput switches list, report and check to JSON
	jsonOutput bool
)

func main() {
	config.LoadEnvFile()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "expense-tracker",
	Short: "Track personal expenses in a CSV file",
	Long: `expense-tracker records spending entries (description, amount, month,
category) in a CSV file and can add, update, delete, list and summarize them.

The CSV file is the source of truth. Reports use an ephemeral SQLite index
kept next to it, rebuilt automatically whenever the CSV changes.`,
	Args: cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{
		UnknownFlags: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		// No or unknown command: the store is still initialized, then a soft no-op.
		mustOpenStore()
		fmt.Println("Invalid command")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&storeFlag, "file", "f", "", "Path to the expenses CSV file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	rootCmd.Version = Version
}

// logger is built on first use from the --verbose flag.
var logger *slog.Logger

func getLogger() *slog.Logger {
	if logger == nil {
		cfg := applog.DefaultConfig()
		if verbose {
			cfg = applog.VerboseConfig()
		}
		logger = applog.New(cfg)
		applog.SetDefault(logger)
	}
	return logger
}

// mustResolveSettings resolves configuration or exits with ExitConfigError.
func mustResolveSettings() *config.Settings {
	settings, err := config.Resolve(storeFlag)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	getLogger().Debug("resolved config",
		applog.FieldComponent, applog.ComponentConfig,
		applog.FieldPath, settings.StorePath,
		"path_source", settings.StorePathSource,
		"currency", settings.Currency)
	return settings
}

// mustOpenStore resolves the store location and creates the file if absent.
func mustOpenStore() (*storage.Store, *config.Settings) {
	settings := mustResolveSettings()
	store := storage.New(settings.StorePath)

	created, err := store.Initialize()
	if err != nil {
		exitWithError(ExitError, "initializing store: %v", err)
	}
	if created {
		getLogger().Debug("created store", applog.FieldComponent, applog.ComponentStorage, applog.FieldPath, store.Path())
	}
	return store, settings
}

// mustNewHandler opens the store and returns a handler writing to stdout.
func mustNewHandler() *tracker.Handler {
	store, settings := mustOpenStore()

	h := tracker.New(store, os.Stdout)
	h.Currency = settings.Currency
	h.JSON = jsonOutput
	h.Logger = applog.WithComponent(getLogger(), applog.ComponentTracker)
	return h
}
