package cli

import (
	"context"

	"github.com/hearthbuild/kiln/internal/build"
	"github.com/hearthbuild/kiln/internal/pipeline"
)

// Represents the 'kiln run' command.
type RunCmd struct {
	Manifest string   `short:"m" help:"Path to the build manifest." default:"kiln.yaml" env:"KILN_MANIFEST" placeholder:"PATH"`
	Skip     []string `help:"Stages to skip this run." env:"KILN_SKIP" placeholder:"STAGE,..."`
	Base     string   `help:"Override the base build directory." placeholder:"DIR"`
	Output   string   `short:"o" help:"Override the artifact output path." placeholder:"PATH"`
	Jobs     int      `short:"j" help:"Parallel jobs for the build executor." placeholder:"N"`
}

// Executes the run command.
//
// Loads the manifest, applies the per-run overrides, executes the pipeline,
// and verifies the artifact. The toggle state is resolved here, once, before
// the pipeline is constructed; stages never read ambient configuration.
func (c *RunCmd) Run(ctx context.Context) error {
	m, err := build.Load(c.Manifest)
	if err != nil {
		return err
	}

	if c.Base != "" {
		m.BaseDir = c.Base
	}
	if c.Output != "" {
		m.Artifact = c.Output
	}
	if c.Jobs > 0 {
		m.Jobs = c.Jobs
	}
	if err := m.Disable(c.Skip...); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}

	outcome, err := build.Run(ctx, m)
	if err != nil {
		return err
	}

	return pipeline.Verify(outcome, m.Artifact)
}
