package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/hearthbuild/kiln/internal/paths"
	"github.com/hearthbuild/kiln/internal/pipeline"
)

// Canonical stage names, in execution order.
const (
	StageBootstrap   = "bootstrap"
	StageInstallDeps = "install_deps"
	StageClone       = "clone"
	StageBuild       = "build"
	StageInstall     = "install"
	StagePackage     = "package"
	StageCleanup     = "cleanup"
)

// The fixed stage order. Later stages consume filesystem state produced by
// earlier ones, so the order is the dependency encoding.
var stageOrder = []string{
	StageBootstrap,
	StageInstallDeps,
	StageClone,
	StageBuild,
	StageInstall,
	StagePackage,
	StageCleanup,
}

// Returns the canonical stage names in execution order.
func StageNames() []string {
	return slices.Clone(stageOrder)
}

// Reports whether name is a canonical stage name.
func knownStage(name string) bool {
	return slices.Contains(stageOrder, name)
}

// Returns the pipeline stages for this build, toggles resolved from the
// manifest.
func (b *builder) stages() []pipeline.Stage {
	descriptors := []struct {
		name string
		run  pipeline.StageFunc
	}{
		{StageBootstrap, b.bootstrap},
		{StageInstallDeps, b.installDeps},
		{StageClone, b.clone},
		{StageBuild, b.build},
		{StageInstall, b.install},
		{StagePackage, b.pack},
		{StageCleanup, b.cleanup},
	}

	stages := make([]pipeline.Stage, 0, len(descriptors))
	for _, d := range descriptors {
		stages = append(stages, pipeline.Stage{
			Name:    d.name,
			Enabled: b.manifest.Enabled(d.name),
			Run:     d.run,
		})
	}
	return stages
}

// Creates the base tree and populates the isolated root with the
// environment bootstrapper. Runs on the host: the root does not exist yet.
func (b *builder) bootstrap(ctx context.Context) error {
	if err := os.MkdirAll(b.sandbox.Root(), paths.DefaultDirMode); err != nil {
		return err
	}

	cmd, err := b.command(b.manifest.Commands.Bootstrap)
	if err != nil {
		return err
	}

	_, err = b.runner.Execute(ctx, cmd)
	return err
}

// Installs the manifest's build dependencies with the package manager
// inside the isolated root.
func (b *builder) installDeps(ctx context.Context) error {
	if len(b.manifest.Dependencies) == 0 {
		slog.Info("no dependencies to install")
		return nil
	}

	cmd, err := b.command(b.manifest.Commands.InstallDeps)
	if err != nil {
		return err
	}

	_, err = b.runner.Execute(ctx, b.sandbox.Wrap(cmd))
	return err
}

// Clones the source repository and checks out the selected version.
//
// The version is a derived step: the tag listing is captured, filtered by
// the version pattern, and the highest numeric dot-separated precedence
// wins. No qualifying tag is a fatal selection error.
func (b *builder) clone(ctx context.Context) error {
	cloneCmd, err := b.command(b.manifest.Commands.Clone)
	if err != nil {
		return err
	}
	if _, err := b.runner.Execute(ctx, b.sandbox.Wrap(cloneCmd)); err != nil {
		return err
	}

	listCmd, err := b.command(b.manifest.Commands.ListTags)
	if err != nil {
		return err
	}
	listing, err := b.runner.Capture(ctx, b.sandbox.Wrap(listCmd))
	if err != nil {
		return err
	}

	tag, err := selectVersion(candidateLines(listing.Stdout), b.pattern)
	if err != nil {
		return err
	}
	b.tag = tag
	slog.Info("selected version", "tag", tag)

	checkoutCmd, err := b.command(b.manifest.Commands.Checkout)
	if err != nil {
		return err
	}
	_, err = b.runner.Execute(ctx, b.sandbox.Wrap(checkoutCmd))
	return err
}

// Generates the build files and runs the parallel build executor inside the
// isolated root. The executor's own parallelism is opaque here; only its
// aggregate exit code matters.
//
// An optional smoke-test command runs tolerated afterwards: its failure is
// reported but does not halt the pipeline.
func (b *builder) build(ctx context.Context) error {
	generateCmd, err := b.command(b.manifest.Commands.Generate)
	if err != nil {
		return err
	}
	if _, err := b.runner.Execute(ctx, b.sandbox.Wrap(generateCmd)); err != nil {
		return err
	}

	buildCmd, err := b.command(b.manifest.Commands.Build)
	if err != nil {
		return err
	}
	if _, err := b.runner.Execute(ctx, b.sandbox.Wrap(buildCmd)); err != nil {
		return err
	}

	if b.manifest.SmokeTest != "" {
		smokeCmd, err := b.command(b.manifest.SmokeTest)
		if err != nil {
			return err
		}
		if _, err := b.runner.ExecuteTolerant(ctx, b.sandbox.Wrap(smokeCmd)); err != nil {
			return err
		}
	}

	return nil
}

// Installs the build output into the staging tree inside the isolated root.
func (b *builder) install(ctx context.Context) error {
	cmd, err := b.command(b.manifest.Commands.Install)
	if err != nil {
		return err
	}

	_, err = b.runner.Execute(ctx, b.sandbox.Wrap(cmd))
	return err
}

// Converts the staging tree into the single artifact file.
//
// Runs on the host: the artifact lands outside the base directory so that
// it survives cleanup. The packaging tool is opaque; whether it actually
// produced the file is checked afterwards by the result verifier.
func (b *builder) pack(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(b.manifest.Artifact), paths.DefaultDirMode); err != nil {
		return err
	}

	cmd, err := b.command(b.manifest.Commands.Package)
	if err != nil {
		return err
	}

	_, err = b.runner.Execute(ctx, cmd)
	return err
}

// Removes the base directory to reclaim disk space.
//
// Destructive, so it is doubly guarded: the stage only runs when its toggle
// is enabled, and it only removes the tree when the artifact already exists.
// After a failure the pipeline never reaches this stage, which preserves the
// partial build state for diagnosis. Removal is idempotent: a second run
// finds nothing and succeeds.
func (b *builder) cleanup(_ context.Context) error {
	if _, err := os.Stat(b.manifest.Artifact); err != nil {
		slog.Info("artifact not present, keeping build tree", "base", b.manifest.BaseDir)
		return nil
	}

	slog.Info("removing build tree", "base", b.manifest.BaseDir)
	if err := os.RemoveAll(b.manifest.BaseDir); err != nil {
		return fmt.Errorf("removing %s: %w", b.manifest.BaseDir, err)
	}
	return nil
}
