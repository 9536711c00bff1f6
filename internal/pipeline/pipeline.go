package pipeline

import (
	"context"
	"log/slog"
)

// The ordered list of stages for one run.
type Pipeline struct {
	stages []Stage // Declared order, never reordered at runtime.
}

// Creates a pipeline from the given stages.
//
// The order of the arguments is the execution order. The list is copied so
// the pipeline cannot be reordered after construction.
func New(stages ...Stage) *Pipeline {
	p := &Pipeline{stages: make([]Stage, len(stages))}
	copy(p.stages, stages)
	return p
}

// Returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, stage := range p.stages {
		names[i] = stage.Name
	}
	return names
}

// Accumulated record of a pipeline run.
type Outcome struct {
	Completed []string // Names of stages that ran to completion, in order.
	Skipped   []string // Names of stages whose toggle was disabled, in order.
	Failure   *Failure // Set when a stage failed; nil on a clean run.
}

// Reports whether the run recorded a stage failure.
func (o *Outcome) Failed() bool {
	return o.Failure != nil
}

// Executes the stages strictly in declared order.
//
// Disabled stages are skipped with a one-line notice and the run proceeds.
// The first stage error stops the run immediately: later stages are never
// invoked, and the failure is recorded in the outcome together with the
// stages that completed before it. There is no retry and no skipping ahead.
func (p *Pipeline) Run(ctx context.Context) *Outcome {
	outcome := &Outcome{}

	for _, stage := range p.stages {
		if !stage.Enabled {
			slog.Info("skipping stage", "stage", stage.Name)
			outcome.Skipped = append(outcome.Skipped, stage.Name)
			continue
		}

		slog.Info("running stage", "stage", stage.Name)

		if err := stage.Run(ctx); err != nil {
			outcome.Failure = &Failure{Stage: stage.Name, Err: err}
			slog.Error("stage failed", "stage", stage.Name, "error", err)
			return outcome
		}

		outcome.Completed = append(outcome.Completed, stage.Name)
	}

	return outcome
}
