package sandbox

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

// Returns a runner that keeps test output quiet.
func testRunner() *Runner {
	return &Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
}

func TestExecuteSuccess(t *testing.T) {
	r := testRunner()

	result, err := r.Execute(context.Background(), Command{Program: "true"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Succeeded() {
		t.Fatalf("ExitCode = %d, want 0", result.ExitCode)
	}
}

func TestExecuteFailsFast(t *testing.T) {
	r := testRunner()

	_, err := r.Execute(context.Background(), Command{Program: "sh", Args: []string{"-c", "exit 3"}})
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("err = %v, want ErrCommandFailed", err)
	}
	if !strings.Contains(err.Error(), "exit code 3") {
		t.Fatalf("err = %v, want the exit code in the message", err)
	}
	if !strings.Contains(err.Error(), "sh -c exit 3") {
		t.Fatalf("err = %v, want the command in the message", err)
	}
}

func TestExecuteMissingProgram(t *testing.T) {
	r := testRunner()

	_, err := r.Execute(context.Background(), Command{Program: "definitely-not-a-real-tool"})
	if !errors.Is(err, ErrSetup) {
		t.Fatalf("err = %v, want ErrSetup", err)
	}
	if errors.Is(err, ErrCommandFailed) {
		t.Fatal("a start failure must be distinct from a command failure")
	}
}

func TestExecuteTolerantReturnsFailureAsData(t *testing.T) {
	r := testRunner()

	result, err := r.ExecuteTolerant(context.Background(), Command{Program: "false"})
	if err != nil {
		t.Fatalf("ExecuteTolerant: %v", err)
	}
	if result.Succeeded() {
		t.Fatal("false should not report success")
	}
	if result.ExitCode == 0 {
		t.Fatalf("ExitCode = %d, want non-zero", result.ExitCode)
	}
}

func TestExecuteTolerantMissingProgram(t *testing.T) {
	r := testRunner()

	if _, err := r.ExecuteTolerant(context.Background(), Command{Program: "definitely-not-a-real-tool"}); !errors.Is(err, ErrSetup) {
		t.Fatalf("err = %v, want ErrSetup", err)
	}
}

func TestCaptureRetainsStdout(t *testing.T) {
	var forwarded bytes.Buffer
	r := &Runner{Stdout: &forwarded, Stderr: &bytes.Buffer{}}

	result, err := r.Capture(context.Background(), Command{Program: "sh", Args: []string{"-c", "echo one; echo two"}})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if result.Stdout != "one\ntwo\n" {
		t.Fatalf("Stdout = %q, want lines one and two", result.Stdout)
	}
	if forwarded.Len() != 0 {
		t.Fatal("captured output must not also be forwarded")
	}
}

func TestCaptureFailsFast(t *testing.T) {
	r := testRunner()

	if _, err := r.Capture(context.Background(), Command{Program: "false"}); !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("err = %v, want ErrCommandFailed", err)
	}
}

func TestExecuteForwardsOutput(t *testing.T) {
	var stdout bytes.Buffer
	r := &Runner{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	if _, err := r.Execute(context.Background(), Command{Program: "echo", Args: []string{"visible"}}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := stdout.String(); got != "visible\n" {
		t.Fatalf("forwarded stdout = %q, want visible", got)
	}
}

func TestExecuteAppliesEnvAndDir(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	r := &Runner{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	cmd := Command{
		Program: "sh",
		Args:    []string{"-c", `printf '%s %s' "$KILN_TEST_VALUE" "$PWD"`},
		Dir:     dir,
		Env:     map[string]string{"KILN_TEST_VALUE": "injected"},
	}
	if _, err := r.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := stdout.String()
	if !strings.HasPrefix(got, "injected ") {
		t.Fatalf("output = %q, want injected env value", got)
	}
	if !strings.Contains(got, dir) {
		t.Fatalf("output = %q, want working directory %q", got, dir)
	}
}
