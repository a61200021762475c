package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/matsen/expense-tracker/internal/storage"
)

// exitWithError writes an error to stderr and exits.
func exitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(code)
}

// exitCodeFor maps a handler error to an exit code.
func exitCodeFor(err error) int {
	if errors.Is(err, storage.ErrMalformed) {
		return ExitDataError
	}
	return ExitError
}

// exitOnError exits with the matching code when err is non-nil.
func exitOnError(err error) {
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
}
