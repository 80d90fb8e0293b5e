package steprunner

import (
	"context"
	"fmt"

	"github.com/arnavsurve/stepshot/pkg/types"
)

type FillRunner struct {
	StepCtx types.ExecutionContext
}

func (fr *FillRunner) Validate() error {
	step := fr.StepCtx.Step
	if step.Selector == "" {
		return fmt.Errorf("%w: %s step %d must define 'selector'", ErrMissingParameters, step.Action, fr.StepCtx.Index+1)
	}
	if step.Value == "" {
		return fmt.Errorf("%w: %s step %d must define 'value'", ErrMissingParameters, step.Action, fr.StepCtx.Index+1)
	}
	return nil
}

func (fr *FillRunner) Run(ctx context.Context) (*types.StepResult, error) {
	step := fr.StepCtx.Step
	page := fr.StepCtx.Page
	logger := fr.StepCtx.Logger

	el, err := page.QueryFirst(ctx, step.Selector)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", step.Selector, err)
	}
	if el == nil {
		logger.Warn().Str("selector", step.Selector).Msg("No element matched selector")
		return elementNotFound(step), nil
	}

	if err := el.Fill(ctx, step.Value); err != nil {
		return nil, fmt.Errorf("filling %q: %w", step.Selector, err)
	}
	logger.Info().Str("selector", step.Selector).Str("value", step.Value).Msg("Filled element")

	artifact, err := fr.StepCtx.Artifacts.Capture(ctx, page, ArtifactName(types.ArtifactPrefixFillInput, fr.StepCtx.Index+1))
	if err != nil {
		return nil, fmt.Errorf("capturing page after fill: %w", err)
	}

	result := succeeded(step, "Filled %s with %q", step.Selector, step.Value)
	result.Artifacts = []types.Artifact{artifact}
	return result, nil
}
