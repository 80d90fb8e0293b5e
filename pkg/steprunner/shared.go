package steprunner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arnavsurve/stepshot/pkg/types"
)

const (
	MarkSuccess = "✅"
	MarkFailure = "❌"
)

// UnrecognizedMessage is reported for unknown verbs and for known verbs that
// lack a selector or value.
const UnrecognizedMessage = MarkFailure + " Use case not recognized or missing parameters"

// UnrecognizedResult is the failing result for a step no runner can perform.
func UnrecognizedResult(step types.StepSpec) *types.StepResult {
	return failed(step, UnrecognizedMessage)
}

// ArtifactName builds the positional artifact name: prefix, 1-based step number,
// then any sub-indices, joined with underscores.
func ArtifactName(prefix string, stepNumber int, sub ...int) string {
	parts := []string{prefix, strconv.Itoa(stepNumber)}
	for _, s := range sub {
		parts = append(parts, strconv.Itoa(s))
	}
	return strings.Join(parts, "_")
}

func succeeded(step types.StepSpec, format string, args ...any) *types.StepResult {
	return &types.StepResult{
		Outcome: types.StepOutcome{
			Label:     step.Label(),
			Message:   MarkSuccess + " " + fmt.Sprintf(format, args...),
			Succeeded: true,
		},
	}
}

func failed(step types.StepSpec, message string) *types.StepResult {
	return &types.StepResult{
		Outcome: types.StepOutcome{
			Label:   step.Label(),
			Message: message,
		},
	}
}

func elementNotFound(step types.StepSpec) *types.StepResult {
	return failed(step, fmt.Sprintf("%s Failed, element %s not found", MarkFailure, step.Selector))
}
