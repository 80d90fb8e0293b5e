// Package orchestrator ties a browser page, the use case executor and the
// artifact store together for a single run.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/arnavsurve/stepshot/pkg/core"
	"github.com/arnavsurve/stepshot/pkg/types"
	"github.com/google/uuid"
)

// PageProvider hands out an isolated page per run.
type PageProvider interface {
	OpenPage(ctx context.Context) (types.SessionPage, error)
}

// Scheduler takes ownership of a run's artifacts for later deletion.
type Scheduler interface {
	Schedule(artifacts []types.Artifact)
}

type Orchestrator struct {
	pages    PageProvider
	capturer types.Capturer
	disposer Scheduler
	logger   types.Logger
}

func New(pages PageProvider, capturer types.Capturer, disposer Scheduler, logger types.Logger) *Orchestrator {
	if logger == nil {
		logger = types.NopLogger()
	}
	return &Orchestrator{
		pages:    pages,
		capturer: capturer,
		disposer: disposer,
		logger:   logger,
	}
}

// Run opens a page, navigates to url and performs steps on it. The page is
// closed before Run returns, whatever happened, and the run's artifacts are
// handed to the disposer afterwards. An error means no report exists: the
// page could not be opened or the navigation failed.
func (o *Orchestrator) Run(ctx context.Context, url string, steps []core.UseCase) (*core.RunReport, error) {
	runID := uuid.NewString()
	logger := o.logger.With().Str("run_id", runID).Logger()
	logger.Info().Str("url", url).Int("usecases", len(steps)).Msg("Starting run")

	start := time.Now()
	report, err := o.execute(ctx, logger, url, steps)
	recordRunDuration(time.Since(start))
	if err != nil {
		return nil, err
	}

	o.disposer.Schedule(report.Artifacts)
	recordOutcomes(steps, report)

	if report.Err != nil {
		recordRunResult("aborted")
		logger.Warn().Err(report.Err).Int("outcomes", len(report.Outcomes)).Msg("Run stopped early")
	} else {
		recordRunResult("completed")
		logger.Info().
			Int("outcomes", len(report.Outcomes)).
			Int("artifacts", len(report.Artifacts)).
			Int("texts", len(report.ExtractedTexts)).
			Msgf("Run finished in %s", time.Since(start).Round(time.Millisecond))
	}
	return report, nil
}

func (o *Orchestrator) execute(ctx context.Context, logger types.Logger, url string, steps []core.UseCase) (*core.RunReport, error) {
	page, err := o.pages.OpenPage(ctx)
	if err != nil {
		recordRunResult("unavailable")
		logger.Error().Err(err).Msg("Could not open a page")
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close page")
		}
	}()

	if err := page.Navigate(ctx, url); err != nil {
		recordRunResult("navigation_failed")
		logger.Error().Err(err).Msg("Navigation failed")
		return nil, err
	}

	return core.NewExecutor(logger).Execute(ctx, page, steps, o.capturer), nil
}
