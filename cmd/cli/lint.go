package cli

import (
	"fmt"

	"github.com/arnavsurve/stepshot/pkg/core"
	"github.com/arnavsurve/stepshot/pkg/steprunner"
	"github.com/arnavsurve/stepshot/pkg/types"
)

type LintCmd struct {
	Suite   string `arg:"" help:"Suite file to validate." type:"path"`
	Varfile string `help:"The YAML varfile for suite inputs." default:"stepshot.vars.yml"`
}

func (l *LintCmd) Run(g *Globals) error {
	logRouter, cmdLogger, err := setupLogging(g, g.LogFile)
	if err != nil {
		return err
	}
	defer closeLogging(cmdLogger, logRouter)

	cmdLogger.Info().Msgf("Validating %s using %s", l.Suite, l.Varfile)

	suite, err := core.LoadSuiteFromFile(l.Suite)
	if err != nil {
		cmdLogger.Error().Err(err).Msgf("Failed to load suite file %s", l.Suite)
		return fmt.Errorf("loading suite file %q: %w", l.Suite, err)
	}
	cmdLogger.Info().Msgf("Successfully loaded suite: %s", suite.Name)

	varCtx := core.ApplyInputDefaults(suite, loadVarfile(cmdLogger, l.Varfile))
	if err := core.ValidateRequiredInputs(suite, varCtx); err != nil {
		cmdLogger.Error().Err(err).Msg("Required input validation failed")
		return fmt.Errorf("validating required inputs: %w", err)
	}
	cmdLogger.Info().Msg("Required input validation passed")

	validationSuite, err := core.InjectVarsIntoSuite(suite, varCtx)
	if err != nil {
		cmdLogger.Error().Err(err).Msg("Could not resolve variables for suite validation")
		return fmt.Errorf("resolving variables for suite: %w", err)
	}

	cmdLogger.Info().Msg("Validating individual use cases...")
	for i, uc := range validationSuite.Usecases {
		stepLogger := cmdLogger.With().
			Int("step_index", i+1).
			Str("action", uc.Action).
			Logger()

		execCtx := types.ExecutionContext{
			Step:   uc,
			Index:  i,
			Logger: stepLogger,
		}

		runner, err := steprunner.GetRunner(execCtx)
		if err != nil {
			stepLogger.Error().Err(err).Msg("Error getting runner for use case")
			return fmt.Errorf("getting runner for usecase %d (%s): %w", i+1, uc.Label(), err)
		}

		if err := runner.Validate(); err != nil {
			stepLogger.Error().Err(err).Msg("Use case validation failed")
			return fmt.Errorf("validating usecase %d: %w", i+1, err)
		}

		stepLogger.Debug().Str("selector", uc.Selector).Msg("Use case validation passed")
	}

	cmdLogger.Info().Msg("Successfully validated suite ✅")
	return nil
}
