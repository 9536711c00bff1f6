package build

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/hearthbuild/kiln/internal/sandbox"
)

// Fixed locations beneath the isolated root, as seen from inside it.
//
// The source checkout lives under the build tree, the build output beneath
// the source checkout, and the staging tree beside the source so that the
// install stage can assemble the artifact layout without touching the
// checkout.
const (
	srcPath     = "/build/src"
	buildPath   = "/build/src/build"
	stagingPath = "/build/staging"
)

// Token in command templates expanded to one argument per dependency.
const depsPlaceholder = "{deps}"

// Holds shared state for running all stages of a build.
type builder struct {
	manifest *Manifest        // Immutable build description.
	sandbox  *sandbox.Context // Isolated environment commands run inside.
	runner   *sandbox.Runner  // Executes commands and observes exit status.
	pattern  *regexp.Regexp   // Compiled version pattern.
	tag      string           // Version selected by the clone stage.
}

// Creates a builder from the manifest.
//
// Constructing the sandbox context is the setup step: when it fails, the
// error is fatal and no stages run.
func newBuilder(m *Manifest, runner *sandbox.Runner) (*builder, error) {
	sb, err := sandbox.New(filepath.Join(m.BaseDir, "rootfs"), m.entryTemplate(), m.Sandbox.Env)
	if err != nil {
		return nil, err
	}

	pattern, err := regexp.Compile(m.VersionPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: version pattern: %v", ErrManifest, err)
	}

	return &builder{
		manifest: m,
		sandbox:  sb,
		runner:   runner,
		pattern:  pattern,
	}, nil
}

// Returns the host path of a location that is addressed from inside the
// isolated root. For a host context the location resolves beneath the root
// directory instead.
func (b *builder) inside(path string) string {
	if b.sandbox.Isolated() {
		return path
	}
	return filepath.Join(b.sandbox.Root(), path)
}

// Returns the host view of the staging tree, used by the packaging stage
// which runs outside the isolated root.
func (b *builder) hostStaging() string {
	return filepath.Join(b.sandbox.Root(), stagingPath)
}

// Returns the expansion map for command templates.
func (b *builder) expansions() map[string]string {
	return map[string]string{
		"root":        b.sandbox.Root(),
		"base":        b.manifest.BaseDir,
		"src":         b.inside(srcPath),
		"build":       b.inside(buildPath),
		"staging":     b.inside(stagingPath),
		"hoststaging": b.hostStaging(),
		"artifact":    b.manifest.Artifact,
		"repo":        b.manifest.Repository,
		"jobs":        strconv.Itoa(b.manifest.Jobs),
		"tag":         b.tag,
	}
}

// Builds a structured command from a template.
//
// The template is split with shell-style word rules, then each argument has
// its brace tokens substituted. An argument that is exactly "{deps}" is
// spliced into one argument per dependency. No shell ever sees the result.
func (b *builder) command(template string) (sandbox.Command, error) {
	argv, err := shlex.Split(template)
	if err != nil {
		return sandbox.Command{}, fmt.Errorf("%w: command %q: %v", ErrManifest, template, err)
	}
	if len(argv) == 0 {
		return sandbox.Command{}, fmt.Errorf("%w: command %q is empty", ErrManifest, template)
	}

	expansions := b.expansions()

	expanded := make([]string, 0, len(argv))
	for _, arg := range argv {
		if arg == depsPlaceholder {
			expanded = append(expanded, b.manifest.Dependencies...)
			continue
		}
		expanded = append(expanded, expand(arg, expansions))
	}

	return sandbox.Command{Program: expanded[0], Args: expanded[1:]}, nil
}

// Substitutes every "{key}" occurrence in an argument.
func expand(arg string, expansions map[string]string) string {
	for key, value := range expansions {
		arg = strings.ReplaceAll(arg, "{"+key+"}", value)
	}
	return arg
}
