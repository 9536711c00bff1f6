package cli

import (
	"context"
	"fmt"

	"github.com/hearthbuild/kiln/internal/build"
)

// Represents the 'kiln stages' command.
type StagesCmd struct{}

// Executes the stages command, printing the canonical stage names in
// execution order.
func (c *StagesCmd) Run(ctx context.Context) error {
	for _, name := range build.StageNames() {
		fmt.Println(name)
	}
	return nil
}
