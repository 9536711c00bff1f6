package sandbox

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// Placeholder in entry command templates replaced with the root path.
const rootPlaceholder = "{root}"

// The isolated environment all build commands run inside.
//
// A context is constructed once from static configuration and never mutated
// afterwards. Commands routed through [Context.Wrap] execute inside the
// isolated root by being prefixed with the entry command argv.
type Context struct {
	root  string            // Host path to the isolated root filesystem.
	entry []string          // Entry command argv. Empty means host execution.
	env   map[string]string // Environment overrides injected into every command.
}

// Creates a context for the isolated root at the given host path.
//
// The entry template is split into an argv with shell-style word rules, and
// every occurrence of "{root}" in an argument is replaced with the root
// path. The template is not passed through a shell, so no other expansion
// takes place. An empty template produces a host context whose commands run
// unwrapped; a template that splits to nothing is a setup error.
func New(root, entryTemplate string, env map[string]string) (*Context, error) {
	c := &Context{
		root: root,
		env:  mergeEnv(env, nil),
	}

	if strings.TrimSpace(entryTemplate) == "" {
		return c, nil
	}

	argv, err := shlex.Split(entryTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: entry command %q: %v", ErrSetup, entryTemplate, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: entry command %q is empty", ErrSetup, entryTemplate)
	}

	for i, arg := range argv {
		argv[i] = strings.ReplaceAll(arg, rootPlaceholder, root)
	}
	c.entry = argv

	return c, nil
}

// Returns the host path to the isolated root filesystem.
func (c *Context) Root() string {
	return c.root
}

// Reports whether commands are routed through an entry command.
func (c *Context) Isolated() bool {
	return len(c.entry) > 0
}

// Routes a command through the entry command and injects the context's
// environment overrides.
//
// The command's own env entries win over the context's. For a host context
// only the environment is injected. The working directory is preserved as
// the host working directory of the entry command; paths meant to be
// resolved inside the root must be passed as arguments.
func (c *Context) Wrap(cmd Command) Command {
	wrapped := cmd
	wrapped.Env = mergeEnv(c.env, cmd.Env)

	if !c.Isolated() {
		return wrapped
	}

	args := make([]string, 0, len(c.entry)-1+1+len(cmd.Args))
	args = append(args, c.entry[1:]...)
	args = append(args, cmd.Program)
	args = append(args, cmd.Args...)

	wrapped.Program = c.entry[0]
	wrapped.Args = args

	return wrapped
}
