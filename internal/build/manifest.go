package build

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hearthbuild/kiln/internal/paths"
)

// Default pattern a version tag must match: pure dot-separated numeric form.
const defaultVersionPattern = `^[0-9]+(\.[0-9]+)*$`

// Default command templates for the external tools each stage invokes.
//
// Tokens in braces are expanded per-argument after shell-style splitting;
// the templates are never passed through a shell. "{deps}" expands to one
// argument per dependency.
const (
	defaultBootstrap   = "pacstrap -c -K {root} base base-devel"
	defaultInstallDeps = "pacman -S --noconfirm --needed {deps}"
	defaultClone       = "git clone {repo} {src}"
	defaultListTags    = "git -C {src} tag --list"
	defaultCheckout    = "git -C {src} checkout {tag}"
	defaultGenerate    = "cmake -S {src} -B {build} -DCMAKE_BUILD_TYPE=Release -DCMAKE_INSTALL_PREFIX=/usr"
	defaultBuild       = "make -C {build} -j{jobs}"
	defaultInstall     = "make -C {build} DESTDIR={staging} install"
	defaultPackage     = "tar -czf {artifact} -C {hoststaging} ."
	defaultEntry       = "chroot {root}"
)

// Describes one build: what to build, where, and with which tools.
//
// A manifest is loaded once at startup, adjusted by CLI overrides, and then
// treated as immutable for the duration of the run.
type Manifest struct {
	Package        string           `yaml:"package"`         // Package name, used for default paths and the artifact.
	Repository     string           `yaml:"repository"`      // Source repository URL for the clone stage.
	Dependencies   []string         `yaml:"dependencies"`    // Build dependencies installed into the root.
	VersionPattern string           `yaml:"version_pattern"` // Regexp a candidate version tag must match.
	Jobs           int              `yaml:"jobs"`            // Parallel jobs requested from the build executor.
	BaseDir        string           `yaml:"base_dir"`        // Base directory holding the isolated root and build trees.
	Artifact       string           `yaml:"artifact"`        // Final artifact path, outside the base directory.
	SmokeTest      string           `yaml:"smoke_test"`      // Optional best-effort command run after the build.
	Sandbox        SandboxManifest  `yaml:"sandbox"`         // Isolated environment settings.
	Stages         map[string]bool  `yaml:"stages"`          // Per-stage toggles. Absent stages default to enabled.
	Commands       CommandOverrides `yaml:"commands"`        // Per-stage command template overrides.
}

// Isolated environment settings.
type SandboxManifest struct {
	Entry string            `yaml:"entry"` // Entry command template, e.g. "chroot {root}". Empty runs on the host.
	Env   map[string]string `yaml:"env"`   // Environment variables injected into every command.
}

// Command template overrides for the external tools. Empty fields keep the
// defaults.
type CommandOverrides struct {
	Bootstrap   string `yaml:"bootstrap"`
	InstallDeps string `yaml:"install_deps"`
	Clone       string `yaml:"clone"`
	ListTags    string `yaml:"list_tags"`
	Checkout    string `yaml:"checkout"`
	Generate    string `yaml:"generate"`
	Build       string `yaml:"build"`
	Install     string `yaml:"install"`
	Package     string `yaml:"package"`
}

// Loads a manifest from a YAML file, applies defaults, and validates it.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifest, path, err)
	}

	m.ApplyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Fills unset fields with their defaults.
//
// The default sandbox entry is "chroot {root}". Overriding it with an empty
// string in the manifest is not distinguishable from leaving it unset; host
// execution is selected with "entry: none".
func (m *Manifest) ApplyDefaults() {
	if m.VersionPattern == "" {
		m.VersionPattern = defaultVersionPattern
	}
	if m.Jobs <= 0 {
		m.Jobs = runtime.NumCPU()
	}
	if m.BaseDir == "" && m.Package != "" {
		m.BaseDir = paths.Base(m.Package)
	}
	if m.Artifact == "" && m.Package != "" {
		m.Artifact = paths.Artifact(m.Package)
	}
	if m.Sandbox.Entry == "" {
		m.Sandbox.Entry = defaultEntry
	}
	if m.Stages == nil {
		m.Stages = make(map[string]bool)
	}

	apply := func(field *string, fallback string) {
		if *field == "" {
			*field = fallback
		}
	}
	apply(&m.Commands.Bootstrap, defaultBootstrap)
	apply(&m.Commands.InstallDeps, defaultInstallDeps)
	apply(&m.Commands.Clone, defaultClone)
	apply(&m.Commands.ListTags, defaultListTags)
	apply(&m.Commands.Checkout, defaultCheckout)
	apply(&m.Commands.Generate, defaultGenerate)
	apply(&m.Commands.Build, defaultBuild)
	apply(&m.Commands.Install, defaultInstall)
	apply(&m.Commands.Package, defaultPackage)
}

// Checks the manifest for configuration errors.
//
// The artifact path must lie outside the base directory so that it survives
// the cleanup stage's removal of the base tree.
func (m *Manifest) Validate() error {
	if m.Package == "" {
		return fmt.Errorf("%w: package name is required", ErrManifest)
	}
	if m.Repository == "" && m.Enabled(StageClone) {
		return fmt.Errorf("%w: repository is required when the clone stage is enabled", ErrManifest)
	}
	if m.BaseDir == "" {
		return fmt.Errorf("%w: base directory is required", ErrManifest)
	}
	if m.Artifact == "" {
		return fmt.Errorf("%w: artifact path is required", ErrManifest)
	}

	if _, err := regexp.Compile(m.VersionPattern); err != nil {
		return fmt.Errorf("%w: version pattern: %v", ErrManifest, err)
	}

	if insideDir(m.Artifact, m.BaseDir) {
		return fmt.Errorf("%w: artifact %s must be outside the base directory %s", ErrManifest, m.Artifact, m.BaseDir)
	}

	for name := range m.Stages {
		if !knownStage(name) {
			return fmt.Errorf("%w: unknown stage %q", ErrManifest, name)
		}
	}

	return nil
}

// Reports whether the named stage is enabled. Stages absent from the toggle
// map default to enabled: the default run executes every stage.
func (m *Manifest) Enabled(stage string) bool {
	enabled, ok := m.Stages[stage]
	if !ok {
		return true
	}
	return enabled
}

// Disables the named stages. Unknown names are an error so that a typo does
// not silently run the stage it meant to skip.
func (m *Manifest) Disable(stages ...string) error {
	for _, name := range stages {
		if !knownStage(name) {
			return fmt.Errorf("%w: unknown stage %q", ErrManifest, name)
		}
		m.Stages[name] = false
	}
	return nil
}

// Returns the sandbox entry template, treating the explicit value "none" as
// host execution.
func (m *Manifest) entryTemplate() string {
	if strings.EqualFold(strings.TrimSpace(m.Sandbox.Entry), "none") {
		return ""
	}
	return m.Sandbox.Entry
}

// Reports whether path lies inside dir after cleaning both.
func insideDir(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
