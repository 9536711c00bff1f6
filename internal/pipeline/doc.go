// Package pipeline sequences toggleable build stages and verifies the result.
//
// A [Pipeline] holds an ordered list of stages fixed at construction. The
// declared order encodes real filesystem dependencies between stages, so
// stages run strictly sequentially: each stage's toggle is evaluated, a
// disabled stage is skipped with a one-line notice, and the first failure
// halts the run. The [Outcome] records which stages completed, which were
// skipped, and the failure if one occurred.
//
// Skipping a stage does not validate that the on-disk state later stages
// expect actually exists. The order is a deliberately simple fixed total
// order; a dependency graph could replace it without changing the stage
// contract.
//
// [Verify] performs the post-run artifact check and distinguishes a stage
// failure from a run that reported success but produced no artifact.
//
// Example usage:
//
//	p := pipeline.New(
//	    pipeline.Stage{Name: "build", Enabled: true, Run: buildFn},
//	    pipeline.Stage{Name: "package", Enabled: true, Run: packageFn},
//	)
//
//	outcome := p.Run(ctx)
//	if err := pipeline.Verify(outcome, artifactPath); err != nil {
//	    os.Exit(pipeline.ExitStatus(err))
//	}
package pipeline
