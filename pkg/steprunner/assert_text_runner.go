package steprunner

import (
	"context"
	"fmt"

	"github.com/arnavsurve/stepshot/pkg/types"
)

// AssertTextRunner reads the text of every element matching the selector and
// captures each one. One outcome covers all matches.
type AssertTextRunner struct {
	StepCtx types.ExecutionContext
}

func (ar *AssertTextRunner) Validate() error {
	step := ar.StepCtx.Step
	if step.Selector == "" {
		return fmt.Errorf("%w: %s step %d must define 'selector'", ErrMissingParameters, step.Action, ar.StepCtx.Index+1)
	}
	return nil
}

func (ar *AssertTextRunner) Run(ctx context.Context) (*types.StepResult, error) {
	step := ar.StepCtx.Step
	page := ar.StepCtx.Page
	logger := ar.StepCtx.Logger

	elements, err := page.QueryAll(ctx, step.Selector)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", step.Selector, err)
	}
	if len(elements) == 0 {
		logger.Warn().Str("selector", step.Selector).Msg("No element matched selector")
		return failed(step, fmt.Sprintf("%s No element found with selector %s", MarkFailure, step.Selector)), nil
	}

	result := succeeded(step, "Text found in %s", step.Selector)
	for j, el := range elements {
		text, err := el.TextContent(ctx)
		if err != nil {
			return result, fmt.Errorf("reading text of match %d for %q: %w", j+1, step.Selector, err)
		}
		result.ExtractedTexts = append(result.ExtractedTexts, text)

		name := ArtifactName(types.ArtifactPrefixAssertText, ar.StepCtx.Index+1, j+1)
		artifact, err := ar.StepCtx.Artifacts.Capture(ctx, el, name)
		if err != nil {
			return result, fmt.Errorf("capturing match %d for %q: %w", j+1, step.Selector, err)
		}
		result.Artifacts = append(result.Artifacts, artifact)
	}

	logger.Info().
		Str("selector", step.Selector).
		Int("matches", len(elements)).
		Msg("Extracted text from matching elements")
	return result, nil
}
