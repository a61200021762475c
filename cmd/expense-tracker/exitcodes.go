package main

// Exit codes. Validation messages (low amount, unknown ID) and
// "Invalid command" are not errors and exit with ExitSuccess.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, I/O failure)
	ExitConfigError = 2 // Configuration error (bad config file, unknown currency, store path is a directory)
	ExitDataError   = 3 // Data error (malformed CSV store)
)
