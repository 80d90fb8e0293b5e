package steprunner

import (
	"context"

	"github.com/arnavsurve/stepshot/pkg/types"
)

// StepRunner performs one use case against a page.
//
// Validate reports missing parameters without touching the page. Run returns
// a failing outcome with a nil error for soft failures such as an unmatched
// selector; a non-nil error means the step could not be carried out at all,
// and any partial result returned alongside it still carries the texts and
// artifacts captured before the fault.
type StepRunner interface {
	Validate() error
	Run(ctx context.Context) (*types.StepResult, error)
}
