package pipeline

import (
	"context"
	"fmt"
)

// The work performed by a stage when it is enabled.
//
// A stage function issues one or more command executions in a fixed internal
// order and returns the first error unhandled. Errors are not caught at the
// stage level; they propagate to the pipeline and halt the run.
type StageFunc func(ctx context.Context) error

// A named, independently toggleable unit of the build pipeline.
//
// The ordered stage list is fixed when the pipeline is constructed. Enabled
// is the only per-run toggle; a disabled stage is skipped, which is not an
// error.
type Stage struct {
	Name    string    // Unique name, also used in log and error messages.
	Enabled bool      // Whether the stage runs this time.
	Run     StageFunc // The stage's work.
}

// A stage failure: which stage failed and why.
type Failure struct {
	Stage string // Name of the failed stage.
	Err   error  // Underlying error.
}

// Formats the failure with the stage name for operator messages.
func (f *Failure) Error() string {
	return fmt.Sprintf("stage %s: %v", f.Stage, f.Err)
}

// Returns the underlying error for errors.Is / errors.As inspection.
func (f *Failure) Unwrap() error {
	return f.Err
}
