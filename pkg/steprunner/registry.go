package steprunner

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/stepshot/pkg/types"
)

var (
	ErrUnrecognizedAction = errors.New("action not recognized")
	ErrMissingParameters  = errors.New("missing required parameters")
)

// GetRunner returns the StepRunner for the step's action kind. Unknown verbs
// yield ErrUnrecognizedAction.
func GetRunner(ctx types.ExecutionContext) (StepRunner, error) {
	if ctx.Logger == nil {
		ctx.Logger = types.NopLogger()
	}

	switch kind := ctx.Step.Kind(); kind {
	case types.ActionClick:
		return &ClickRunner{StepCtx: ctx}, nil
	case types.ActionFillInput:
		return &FillRunner{StepCtx: ctx}, nil
	case types.ActionAssertText:
		return &AssertTextRunner{StepCtx: ctx}, nil
	case types.ActionUnknown:
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedAction, ctx.Step.Action)
	default:
		return nil, fmt.Errorf("%w: unhandled kind %v", ErrUnrecognizedAction, kind)
	}
}
