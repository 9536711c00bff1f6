package build

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hearthbuild/kiln/internal/sandbox"
)

// Returns a runner that keeps test output quiet.
func testRunner() *sandbox.Runner {
	return &sandbox.Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
}

// Builds a manifest with the given base dir, host execution, and defaults.
func hostManifest(t *testing.T, base string) *Manifest {
	t.Helper()
	m := &Manifest{
		Package:    "zlib",
		Repository: "https://example.com/zlib.git",
		BaseDir:    base,
		Artifact:   filepath.Join(filepath.Dir(base), "zlib.pkg.tar.gz"),
		Sandbox:    SandboxManifest{Entry: "none"},
		Jobs:       4,
	}
	m.ApplyDefaults()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return m
}

func TestCommandExpansion(t *testing.T) {
	base := filepath.Join(t.TempDir(), "base")
	b, err := newBuilder(hostManifest(t, base), testRunner())
	if err != nil {
		t.Fatalf("newBuilder: %v", err)
	}

	cmd, err := b.command("make -C {build} -j{jobs}")
	if err != nil {
		t.Fatalf("command: %v", err)
	}

	if cmd.Program != "make" {
		t.Fatalf("Program = %q, want make", cmd.Program)
	}
	wantBuild := filepath.Join(base, "rootfs", buildPath)
	if cmd.Args[1] != wantBuild {
		t.Fatalf("Args[1] = %q, want %q (host context resolves under the root)", cmd.Args[1], wantBuild)
	}
	if cmd.Args[2] != "-j4" {
		t.Fatalf("Args[2] = %q, want -j4 (embedded token)", cmd.Args[2])
	}
}

func TestCommandExpansionIsolatedPaths(t *testing.T) {
	m := hostManifest(t, filepath.Join(t.TempDir(), "base"))
	m.Sandbox.Entry = "chroot {root}"
	b, err := newBuilder(m, testRunner())
	if err != nil {
		t.Fatalf("newBuilder: %v", err)
	}

	cmd, err := b.command("cmake -S {src} -B {build}")
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	if cmd.Args[1] != srcPath {
		t.Fatalf("Args[1] = %q, want %q (isolated context uses inside paths)", cmd.Args[1], srcPath)
	}
	if cmd.Args[3] != buildPath {
		t.Fatalf("Args[3] = %q, want %q", cmd.Args[3], buildPath)
	}
}

func TestCommandDepsSplice(t *testing.T) {
	m := hostManifest(t, filepath.Join(t.TempDir(), "base"))
	m.Dependencies = []string{"cmake", "make", "git"}
	b, err := newBuilder(m, testRunner())
	if err != nil {
		t.Fatalf("newBuilder: %v", err)
	}

	cmd, err := b.command("pacman -S --needed {deps}")
	if err != nil {
		t.Fatalf("command: %v", err)
	}

	want := []string{"-S", "--needed", "cmake", "make", "git"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("Args = %v, want %v", cmd.Args, want)
	}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Fatalf("Args[%d] = %q, want %q", i, cmd.Args[i], want[i])
		}
	}
}

func TestCommandQuotedArguments(t *testing.T) {
	b, err := newBuilder(hostManifest(t, filepath.Join(t.TempDir(), "base")), testRunner())
	if err != nil {
		t.Fatalf("newBuilder: %v", err)
	}

	cmd, err := b.command(`sh -c "echo {jobs} jobs"`)
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	if len(cmd.Args) != 2 {
		t.Fatalf("Args = %v, want the quoted script as one argument", cmd.Args)
	}
	if cmd.Args[1] != "echo 4 jobs" {
		t.Fatalf("Args[1] = %q, want tokens expanded inside the quoted argument", cmd.Args[1])
	}
}

func TestCommandEmptyTemplate(t *testing.T) {
	b, err := newBuilder(hostManifest(t, filepath.Join(t.TempDir(), "base")), testRunner())
	if err != nil {
		t.Fatalf("newBuilder: %v", err)
	}

	if _, err := b.command("   "); !errors.Is(err, ErrManifest) {
		t.Fatalf("err = %v, want ErrManifest", err)
	}
}

func TestNewBuilderBadEntry(t *testing.T) {
	m := hostManifest(t, filepath.Join(t.TempDir(), "base"))
	m.Sandbox.Entry = `chroot "unterminated`

	if _, err := newBuilder(m, testRunner()); !errors.Is(err, sandbox.ErrSetup) {
		t.Fatalf("err = %v, want sandbox.ErrSetup", err)
	}
}

func TestStagesFollowManifestToggles(t *testing.T) {
	m := hostManifest(t, filepath.Join(t.TempDir(), "base"))
	if err := m.Disable(StageClone, StageCleanup); err != nil {
		t.Fatalf("Disable: %v", err)
	}

	b, err := newBuilder(m, testRunner())
	if err != nil {
		t.Fatalf("newBuilder: %v", err)
	}

	stages := b.stages()
	if len(stages) != len(StageNames()) {
		t.Fatalf("len(stages) = %d, want %d", len(stages), len(StageNames()))
	}
	for i, stage := range stages {
		if stage.Name != stageOrder[i] {
			t.Fatalf("stages[%d] = %q, want %q (fixed order)", i, stage.Name, stageOrder[i])
		}
		wantEnabled := stage.Name != StageClone && stage.Name != StageCleanup
		if stage.Enabled != wantEnabled {
			t.Fatalf("stage %q enabled = %v, want %v", stage.Name, stage.Enabled, wantEnabled)
		}
	}
}
