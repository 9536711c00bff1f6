package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// Outcome of a single command execution.
type Result struct {
	ExitCode int    // Exit code of the process.
	Stdout   string // Captured standard output. Only set by [Runner.Capture].
}

// Reports whether the command exited with code zero.
func (r *Result) Succeeded() bool {
	return r.ExitCode == 0
}

// Executes external commands and observes their exit status.
//
// Stdout and Stderr default to the invoking process streams so the operator
// sees external tool output as it happens. Tests substitute their own
// writers.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Creates a runner that forwards output to the process streams.
func NewRunner() *Runner {
	return &Runner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Runs a required command.
//
// A non-zero exit code is returned as an error wrapping [ErrCommandFailed]
// that names the command and the code. This is the fail-fast path: the
// error propagates up through the stage to the pipeline and halts the run.
func (r *Runner) Execute(ctx context.Context, cmd Command) (*Result, error) {
	result, err := r.run(ctx, cmd, r.Stdout)
	if err != nil {
		return nil, err
	}
	if !result.Succeeded() {
		return nil, fmt.Errorf("%w: %s: exit code %d", ErrCommandFailed, cmd, result.ExitCode)
	}
	return result, nil
}

// Runs a best-effort command whose failure is expected to be non-critical.
//
// A non-zero exit code is returned as data, not as an error. The only error
// condition is a command that cannot be started at all.
func (r *Runner) ExecuteTolerant(ctx context.Context, cmd Command) (*Result, error) {
	result, err := r.run(ctx, cmd, r.Stdout)
	if err != nil {
		return nil, err
	}
	if !result.Succeeded() {
		slog.Warn("tolerated command failed", "command", cmd.String(), "exit_code", result.ExitCode)
	}
	return result, nil
}

// Runs a required command and retains its standard output.
//
// Used for derived steps that consume a listing (e.g. selecting a version
// tag). Standard error is still forwarded. Fails fast like [Runner.Execute].
func (r *Runner) Capture(ctx context.Context, cmd Command) (*Result, error) {
	var stdout bytes.Buffer
	result, err := r.run(ctx, cmd, &stdout)
	if err != nil {
		return nil, err
	}
	if !result.Succeeded() {
		return nil, fmt.Errorf("%w: %s: exit code %d", ErrCommandFailed, cmd, result.ExitCode)
	}
	result.Stdout = stdout.String()
	return result, nil
}

// Starts the process and waits for it to exit.
//
// A non-zero exit code is not treated as an error here; the caller decides.
// A process that cannot be located or started is a setup error, distinct
// from a command that ran and failed.
func (r *Runner) run(ctx context.Context, cmd Command, stdout io.Writer) (*Result, error) {
	proc := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	proc.Dir = cmd.Dir
	proc.Stdout = stdout
	proc.Stderr = r.Stderr

	if len(cmd.Env) > 0 {
		proc.Env = append(os.Environ(), environ(cmd.Env)...)
	}

	slog.Debug("exec", "command", cmd.String(), "dir", cmd.Dir)

	err := proc.Run()

	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return &Result{ExitCode: exit.ExitCode()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSetup, cmd.Program, err)
	}

	return &Result{}, nil
}
