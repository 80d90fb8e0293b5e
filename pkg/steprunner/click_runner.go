package steprunner

import (
	"context"
	"fmt"

	"github.com/arnavsurve/stepshot/pkg/types"
)

type ClickRunner struct {
	StepCtx types.ExecutionContext
}

func (cr *ClickRunner) Validate() error {
	step := cr.StepCtx.Step
	if step.Selector == "" {
		return fmt.Errorf("%w: %s step %d must define 'selector'", ErrMissingParameters, step.Action, cr.StepCtx.Index+1)
	}
	return nil
}

func (cr *ClickRunner) Run(ctx context.Context) (*types.StepResult, error) {
	step := cr.StepCtx.Step
	page := cr.StepCtx.Page
	logger := cr.StepCtx.Logger

	el, err := page.QueryFirst(ctx, step.Selector)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", step.Selector, err)
	}
	if el == nil {
		logger.Warn().Str("selector", step.Selector).Msg("No element matched selector")
		return elementNotFound(step), nil
	}

	if err := el.Click(ctx); err != nil {
		return nil, fmt.Errorf("clicking %q: %w", step.Selector, err)
	}
	logger.Info().Str("selector", step.Selector).Msg("Clicked element")

	artifact, err := cr.StepCtx.Artifacts.Capture(ctx, page, ArtifactName(types.ArtifactPrefixClick, cr.StepCtx.Index+1))
	if err != nil {
		return nil, fmt.Errorf("capturing page after click: %w", err)
	}

	result := succeeded(step, "Clicked %s", step.Selector)
	result.Artifacts = []types.Artifact{artifact}
	return result, nil
}
