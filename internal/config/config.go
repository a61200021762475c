// Package config resolves where the expense store lives and how amounts are shown.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/matsen/expense-tracker/internal/expense"
)

// DefaultStoreFile is the store location when nothing else is configured,
// relative to the working directory.
const DefaultStoreFile = "expenses.csv"

// Environment variables, also read from a .env file in the working directory.
const (
	EnvStoreFile = "EXPENSE_TRACKER_FILE"
	EnvCurrency  = "EXPENSE_TRACKER_CURRENCY"
)

// Config sources, reported by the config command.
const (
	SourceFlag    = "flag"
	SourceEnv     = "env"
	SourceFile    = "config"
	SourceDefault = "default"
)

// Settings is the resolved configuration for one invocation.
type Settings struct {
	StorePath       string
	StorePathSource string
	Currency        string
	CurrencySource  string
}

// Keys accepted by the config command.
const (
	KeyStorePath = "store-path"
	KeyCurrency  = "currency"
)

// ValidKeys lists the configuration keys in display order.
var ValidKeys = []string{KeyStorePath, KeyCurrency}

// LoadEnvFile loads .env from the working directory.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Resolve determines the settings for this invocation.
// Store path precedence: flag, environment, config file, default.
func Resolve(flagPath string) (*Settings, error) {
	global, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}

	s := &Settings{
		StorePath:       DefaultStoreFile,
		StorePathSource: SourceDefault,
		Currency:        expense.DefaultCurrency,
		CurrencySource:  SourceDefault,
	}

	switch {
	case flagPath != "":
		s.StorePath, s.StorePathSource = ExpandPath(flagPath), SourceFlag
	case os.Getenv(EnvStoreFile) != "":
		s.StorePath, s.StorePathSource = ExpandPath(os.Getenv(EnvStoreFile)), SourceEnv
	case global.StorePath != "":
		s.StorePath, s.StorePathSource = global.StorePath, SourceFile
	}

	switch {
	case os.Getenv(EnvCurrency) != "":
		s.Currency, s.CurrencySource = os.Getenv(EnvCurrency), SourceEnv
	case global.Currency != "":
		s.Currency, s.CurrencySource = global.Currency, SourceFile
	}
	s.Currency = strings.ToUpper(s.Currency)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the resolved settings.
func (s *Settings) Validate() error {
	var errors []string

	if strings.TrimSpace(s.StorePath) == "" {
		errors = append(errors, "store path cannot be empty")
	} else if info, err := os.Stat(s.StorePath); err == nil && info.IsDir() {
		errors = append(errors, fmt.Sprintf("store path is a directory: %s", s.StorePath))
	}

	if err := expense.ValidateCurrency(s.Currency); err != nil {
		errors = append(errors, fmt.Sprintf("invalid currency (from %s): %v", s.CurrencySource, err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// NormalizeKey converts key formats (store-path, store_path, Store-Path) to the canonical form.
func NormalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.ReplaceAll(key, "_", "-")
}

// Get returns the value stored in the config file for key.
func (c *GlobalConfig) Get(key string) (string, error) {
	switch NormalizeKey(key) {
	case KeyStorePath:
		return c.StorePath, nil
	case KeyCurrency:
		return c.Currency, nil
	}
	return "", fmt.Errorf("unknown configuration key: %s (valid: %v)", key, ValidKeys)
}

// Set validates and assigns value to key. The caller saves the config.
func (c *GlobalConfig) Set(key, value string) error {
	switch NormalizeKey(key) {
	case KeyStorePath:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("store path cannot be empty")
		}
		c.StorePath = ExpandPath(value)
		return nil
	case KeyCurrency:
		if err := expense.ValidateCurrency(value); err != nil {
			return err
		}
		c.Currency = strings.ToUpper(value)
		return nil
	}
	return fmt.Errorf("unknown configuration key: %s (valid: %v)", key, ValidKeys)
}
