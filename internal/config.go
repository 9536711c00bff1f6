package internal

import (
	"strconv"
	"sync/atomic"
)

// Output modes for the kiln CLI. The atomics are the single source of truth:
// they are seeded from linker flags at startup and overwritten with the
// resolved values once command-line parsing finishes, so the logger and any
// later reader observe the same state.
var (
	quietMode   atomic.Bool // Suppresses informational output.
	debugMode   atomic.Bool // Enables debug logging.
	verboseMode atomic.Bool // Enables source locations in log records.
)

// Seeds the output modes from the rawQuiet, rawDebug, and rawVerbose linker
// flags. An unset or malformed flag leaves its mode disabled.
func init() {
	quietMode.Store(parseMode(rawQuiet))
	debugMode.Store(parseMode(rawDebug))
	verboseMode.Store(parseMode(rawVerbose))
}

func parseMode(raw string) bool {
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

// Enables or disables quiet mode.
func SetQuiet(enabled bool) {
	quietMode.Store(enabled)
}

// Returns true if quiet mode is enabled.
func IsQuiet() bool {
	return quietMode.Load()
}

// Enables or disables debug mode.
func SetDebug(enabled bool) {
	debugMode.Store(enabled)
}

// Returns true if debug mode is enabled.
func IsDebug() bool {
	return debugMode.Load()
}

// Enables or disables verbose logging.
func SetVerbose(enabled bool) {
	verboseMode.Store(enabled)
}

// Returns true if verbose logging is enabled.
func IsVerbose() bool {
	return verboseMode.Load()
}
