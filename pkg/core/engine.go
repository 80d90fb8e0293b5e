package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/arnavsurve/stepshot/pkg/steprunner"
	"github.com/arnavsurve/stepshot/pkg/types"
)

// ErrorLabel labels the synthetic outcome recorded when a run stops early.
const ErrorLabel = "error"

// ErrStepPanicked wraps a panic recovered from a step runner.
var ErrStepPanicked = errors.New("step panicked")

// Executor performs use cases against a page strictly in order.
type Executor struct {
	Logger Logger
}

func NewExecutor(logger Logger) *Executor {
	if logger == nil {
		logger = types.NopLogger()
	}
	return &Executor{
		Logger: logger,
	}
}

// HardFailureOutcome is the trailing outcome recorded for an unexpected error.
func HardFailureOutcome(err error) types.StepOutcome {
	return types.StepOutcome{
		Label:   ErrorLabel,
		Message: fmt.Sprintf("%s Error while running use cases: %v", steprunner.MarkFailure, err),
	}
}

// Execute runs every step against page and never fails as a whole. A step
// whose target is missing records a failing outcome and the run continues. An
// unexpected error records one trailing ErrorLabel outcome and stops the run;
// the error itself is kept in the report's Err.
func (e *Executor) Execute(ctx context.Context, page types.Page, steps []UseCase, capturer types.Capturer) *RunReport {
	report := types.NewRunReport(len(steps))

	for i, step := range steps {
		stepLogger := e.Logger.With().Int("step_index", i+1).Str("action", step.Action).Logger()
		stepLogger.Debug().Str("selector", step.Selector).Msg("Running use case")

		execCtx := types.ExecutionContext{
			Step:      step,
			Index:     i,
			Page:      page,
			Artifacts: capturer,
			Logger:    stepLogger,
		}

		res, err := e.runStep(ctx, execCtx)
		if err != nil {
			// Texts and artifacts gathered before the failure still belong to
			// the run so their files get disposed of.
			report.Merge(res)
			report.Err = fmt.Errorf("step %d (%s): %w", i+1, step.Label(), err)
			report.Outcomes = append(report.Outcomes, HardFailureOutcome(err))
			stepLogger.Error().Err(err).Msgf("Stopping run, %d of %d use cases not attempted", len(steps)-i-1, len(steps))
			break
		}

		report.Append(res)
		if res.Outcome.Succeeded {
			stepLogger.Info().Str("result", "passed").Msg(res.Outcome.Message)
		} else {
			stepLogger.Warn().Str("result", "failed").Msg(res.Outcome.Message)
		}
	}

	return report
}

func (e *Executor) runStep(ctx context.Context, execCtx types.ExecutionContext) (res *types.StepResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: %v", ErrStepPanicked, r)
		}
	}()

	runner, err := steprunner.GetRunner(execCtx)
	if err != nil {
		execCtx.Logger.Debug().Err(err).Msg("No runner for use case")
		return steprunner.UnrecognizedResult(execCtx.Step), nil
	}
	if err := runner.Validate(); err != nil {
		execCtx.Logger.Debug().Err(err).Msg("Use case is incomplete")
		return steprunner.UnrecognizedResult(execCtx.Step), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return runner.Run(ctx)
}
