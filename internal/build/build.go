package build

import (
	"context"
	"log/slog"

	"github.com/hearthbuild/kiln/internal/pipeline"
	"github.com/hearthbuild/kiln/internal/sandbox"
)

// Executes the build described by the manifest.
//
// Stages run in fixed order with toggles resolved from the manifest. A
// returned error means setup failed before any stage ran; stage failures are
// reported through the outcome instead, so callers can see exactly which
// stage failed.
func Run(ctx context.Context, m *Manifest) (*pipeline.Outcome, error) {
	return run(ctx, m, sandbox.NewRunner())
}

// Variant of [Run] with an injectable runner, used by tests to substitute
// output streams.
func run(ctx context.Context, m *Manifest, runner *sandbox.Runner) (*pipeline.Outcome, error) {
	b, err := newBuilder(m, runner)
	if err != nil {
		return nil, err
	}

	slog.Info("building package",
		"package", m.Package,
		"base", m.BaseDir,
		"artifact", m.Artifact,
		"isolated", b.sandbox.Isolated(),
	)

	return pipeline.New(b.stages()...).Run(ctx), nil
}
