package sandbox

import (
	"sort"
	"strings"
)

// A single external command as a structured value.
//
// Program and Args are passed to the operating system verbatim; no shell is
// involved unless the program itself is a shell. Dir is the host working
// directory for the process. Env entries are overlaid on the invoking
// process environment.
type Command struct {
	Program string            // Executable name or path.
	Args    []string          // Arguments, not including the program itself.
	Dir     string            // Working directory. Empty means inherit.
	Env     map[string]string // Environment overrides.
}

// Returns the command line as a single string for log and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// Formats an environment map as a sorted list of "key=value" strings
// suitable for passing to the process environment.
func environ(env map[string]string) []string {
	entries := make([]string, 0, len(env))
	for k, v := range env {
		entries = append(entries, k+"="+v)
	}
	sort.Strings(entries)
	return entries
}

// Merges override env vars on top of a base env map into a new map.
func mergeEnv(base, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
