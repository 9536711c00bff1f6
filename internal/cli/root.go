package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/hearthbuild/kiln/internal"
)

// Represents the root command for the kiln CLI.
var RootCmd struct {
	Quiet   bool       `short:"q" help:"Suppress informational output."`
	Verbose bool       `short:"v" help:"Enable verbose output."`
	Debug   bool       `short:"d" help:"Enable debug output."`
	Run     RunCmd     `cmd:"" help:"Run the build pipeline."`
	Stages  StagesCmd  `cmd:"" help:"List the pipeline stages in order."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Staged package builds inside an isolated root filesystem.\n\nDrives the build through bootstrap, dependency installation, source checkout, build, install, packaging, and cleanup, halting on the first failure."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Resolves the output modes from CLI flags and reconfigures the global
// logger. The resolved modes are stored back so the package-level getters
// keep reporting the effective state.
func configureLogger() {
	internal.SetDebug(RootCmd.Debug || internal.IsDebug())
	internal.SetQuiet(RootCmd.Quiet || internal.IsQuiet())
	internal.SetVerbose(RootCmd.Verbose || internal.IsVerbose())

	level := slog.LevelInfo
	if internal.IsDebug() {
		level = slog.LevelDebug
	} else if internal.IsQuiet() {
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: internal.IsVerbose(),
	})
	slog.SetDefault(slog.New(handler).WithGroup(internal.Name))
}
