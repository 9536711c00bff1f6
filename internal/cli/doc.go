// Parses flags and configures logging for the kiln CLI.
//
// The tool accepts the following global flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output.
//	-d, --debug     Enable debug output.
//
// The run command drives the build pipeline from a manifest file. Every
// stage toggle defaults to enabled; stages are disabled per run with
// --skip or the KILN_SKIP environment variable, never by editing source.
// Flags override build-time defaults set via linker flags. After parsing,
// the global logger is reconfigured to reflect the final level before the
// pipeline starts.
package cli
