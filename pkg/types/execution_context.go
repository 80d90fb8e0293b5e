package types

import "context"

// ExecutionContext contains the context needed for step execution
type ExecutionContext struct {
	Step      StepSpec
	Index     int // 0-based position of Step in the run
	Page      Page
	Artifacts Capturer
	Logger    Logger
}

// Capturer persists a screenshot of scope under name and returns where it lives.
type Capturer interface {
	Capture(ctx context.Context, scope Screenshotter, name string) (Artifact, error)
}
