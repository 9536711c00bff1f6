// Package sandbox runs build commands inside an isolated root filesystem.
//
// A [Context] describes the isolated environment: the root path, the entry
// command used to enter it, and environment variable overrides. The context
// is immutable once constructed. Commands are structured values (program,
// argument list, working directory, environment map) and are never assembled
// from interpolated shell text.
//
// A [Runner] executes commands and observes their exit status. A required
// command that exits non-zero produces an error wrapping [ErrCommandFailed];
// a command that cannot be started at all produces an error wrapping
// [ErrSetup]. Tolerated commands report a non-zero exit as data instead.
// Standard output and error are forwarded to the operator's streams so the
// external tools remain visible while they run.
//
// Example usage:
//
//	sb, err := sandbox.New("/tmp/build/rootfs", "chroot {root}", nil)
//	if err != nil {
//	    return err
//	}
//
//	runner := sandbox.NewRunner()
//	cmd := sandbox.Command{Program: "make", Args: []string{"-C", "/build/src", "-j4"}}
//	if _, err := runner.Execute(ctx, sb.Wrap(cmd)); err != nil {
//	    return err
//	}
package sandbox
