package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/arnavsurve/stepshot/pkg/artifact"
	"github.com/arnavsurve/stepshot/pkg/browser"
	"github.com/arnavsurve/stepshot/pkg/core"
	"github.com/arnavsurve/stepshot/pkg/orchestrator"
	"github.com/arnavsurve/stepshot/pkg/security"
	"github.com/arnavsurve/stepshot/pkg/types"
	"github.com/google/uuid"
)

type RunCmd struct {
	BrowserFlags

	Suite   string   `arg:"" optional:"" help:"Suite file to run." type:"path"`
	Varfile string   `help:"The YAML varfile for suite inputs." default:"stepshot.vars.yml"`
	URL     string   `help:"Target page. Required with --step, overrides the suite url otherwise."`
	Step    []string `short:"s" help:"Use case line such as \"klik #submit\" or \"input #name with Ana\". Repeatable." sep:"none"`
	Keep    bool     `help:"Keep screenshots after the command exits."`
	Output  string   `short:"o" help:"Write the JSON report to this file instead of stdout." type:"path"`
}

func (r *RunCmd) Run(g *Globals) error {
	runID := uuid.New().String()

	logFile := g.LogFile
	if logFile == "" {
		logFile = filepath.Join(".stepshot", "logs", runID+".json")
	}
	logRouter, cmdLogger, err := setupLogging(g, logFile)
	if err != nil {
		return err
	}
	defer closeLogging(cmdLogger, logRouter)
	cmdLogger = cmdLogger.With().Str("invocation_id", runID).Logger()
	cmdLogger.Info().Msgf("Logs will be saved to %q", logFile)

	url, steps, redactor, err := r.plan(cmdLogger)
	if err != nil {
		return err
	}
	if redactor != nil {
		logRouter.SetRedactor(redactor)
	}
	if err := core.ValidateRequest(core.RunRequest{URL: url, Usecases: steps}); err != nil {
		cmdLogger.Error().Err(err).Msg("Nothing to run")
		return err
	}
	cmdLogger.Debug().Interface("usecases", redactor.RedactSteps(steps)).Msg("Planned use cases")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager, err := artifact.NewManager(r.PublicDir, cmdLogger)
	if err != nil {
		return err
	}

	// Without --keep, screenshots are deleted when Close flushes on exit.
	var disposeAfter time.Duration
	if !r.Keep {
		disposeAfter = time.Hour
	}
	disposer := artifact.NewDisposer(disposeAfter, cmdLogger)
	defer disposer.Close()

	provider := browser.NewProvider(r.options(), cmdLogger)
	defer func() {
		if err := provider.Close(); err != nil {
			cmdLogger.Warn().Err(err).Msg("Failed to close browser")
		}
	}()

	report, err := orchestrator.New(provider, manager, disposer, cmdLogger).Run(ctx, url, steps)
	if err != nil {
		cmdLogger.Error().Err(err).Msg("Run failed")
		return err
	}

	if err := r.writeReport(report, redactor); err != nil {
		return err
	}
	return summarize(report)
}

// plan works out what to run, either from the suite file or from --step lines.
// The returned redactor is nil when no suite declares secrets.
func (r *RunCmd) plan(logger types.Logger) (string, []core.UseCase, *security.Redactor, error) {
	if r.Suite == "" {
		steps, err := core.ParseUseCaseLines(r.Step)
		if err != nil {
			return "", nil, nil, err
		}
		return r.URL, steps, nil, nil
	}
	if len(r.Step) > 0 {
		return "", nil, nil, fmt.Errorf("--step cannot be combined with a suite file")
	}

	suite, err := core.LoadSuiteFromFile(r.Suite)
	if err != nil {
		logger.Error().Err(err).Msgf("Failed to load suite file %s", r.Suite)
		return "", nil, nil, fmt.Errorf("loading suite file %q: %w", r.Suite, err)
	}
	logger.Info().Msgf("Successfully loaded suite: %q", suite.Name)

	varCtx := loadVarfile(logger, r.Varfile)
	varCtx = core.ApplyInputDefaults(suite, varCtx)
	if err := core.ValidateRequiredInputs(suite, varCtx); err != nil {
		logger.Error().Err(err).Msg("Required input validation failed")
		return "", nil, nil, err
	}
	redactor := security.NewRedactor(suite.Inputs, varCtx)

	resolved, err := core.ResolveSuite(suite, varCtx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to resolve suite variables")
		return "", nil, nil, fmt.Errorf("resolving suite variables: %w", err)
	}

	suiteAbsPath, err := filepath.Abs(r.Suite)
	if err != nil {
		return "", nil, nil, fmt.Errorf("determining absolute path for suite file %q: %w", r.Suite, err)
	}
	url := core.ResolveSuiteURL(filepath.Dir(suiteAbsPath), resolved.URL)
	if r.URL != "" {
		url = r.URL
	}
	return url, resolved.Usecases, redactor, nil
}

// loadVarfile returns an empty context when the varfile is absent or broken.
func loadVarfile(logger types.Logger, path string) core.VarContext {
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		logger.Warn().Msgf("Varfile %s not found. Proceeding without variables.", path)
		return make(core.VarContext)
	}
	varCtx, err := core.ResolveVarfile(path, logger)
	if err != nil {
		logger.Warn().Err(err).Msgf("Could not resolve varfile %q", path)
		return make(core.VarContext)
	}
	logger.Info().Msgf("Successfully loaded and resolved varfile: %s", path)
	return varCtx
}

func (r *RunCmd) writeReport(report *core.RunReport, redactor *security.Redactor) error {
	resp := types.NewRunResponse(report)
	results := make([]types.StepOutcome, len(resp.Results))
	for i, o := range resp.Results {
		o.Label = redactor.Redact(o.Label)
		o.Message = redactor.Redact(o.Message)
		results[i] = o
	}
	resp.Results = results

	var out io.Writer = os.Stdout
	if r.Output != "" {
		f, err := os.Create(r.Output)
		if err != nil {
			return fmt.Errorf("creating report file %q: %w", r.Output, err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// summarize turns a report with failures into a non-zero exit.
func summarize(report *core.RunReport) error {
	if report.Err != nil {
		return fmt.Errorf("run stopped early: %w", report.Err)
	}
	failed := 0
	for _, o := range report.Outcomes {
		if !o.Succeeded {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d use cases failed", failed, len(report.Outcomes))
	}
	return nil
}
