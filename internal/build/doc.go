// Package build defines the concrete stages of the kiln pipeline.
//
// A build is described by a [Manifest]: the package to build, where its
// source lives, which versions qualify, and where the isolated root and the
// final artifact go. The manifest is loaded once from static configuration,
// resolved against toggle overrides, and passed immutably into the pipeline.
//
// Seven stages run in fixed order: bootstrap the isolated root, install
// dependencies, clone the source and check out the selected version, run the
// build, install into the staging tree, package the staging tree into the
// artifact, and clean up the base directory. Each stage issues structured
// commands through the sandbox, and every external tool (package manager,
// version control client, build generator, build executor, packaging tool)
// is an opaque command whose exit status is all the pipeline observes.
//
// Example usage:
//
//	m, err := build.Load("kiln.yaml")
//	if err != nil {
//	    return err
//	}
//
//	outcome, err := build.Run(ctx, m)
//	if err != nil {
//	    return err
//	}
//
//	return pipeline.Verify(outcome, m.Artifact)
package build
