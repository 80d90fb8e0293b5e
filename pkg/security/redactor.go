package security

import (
	"sort"
	"strings"

	"github.com/arnavsurve/stepshot/pkg/core"
	"github.com/arnavsurve/stepshot/pkg/types"
)

const mask = "********"

// Redactor masks the values of secret suite inputs wherever they appear in
// log output.
type Redactor struct {
	Secrets []string
}

// NewRedactor collects the resolved value of every input marked secret. An
// input missing from varCtx falls back to its default.
func NewRedactor(inputs []core.Input, varCtx core.VarContext) *Redactor {
	var secretValues []string
	for _, input := range inputs {
		if !input.Secret {
			continue
		}
		val, ok := varCtx[input.Name]
		if !ok {
			val = input.Default
		}
		if val != "" {
			secretValues = append(secretValues, val)
		}
	}
	return newSorted(secretValues)
}

func newSorted(secrets []string) *Redactor {
	// Longer secrets first so a secret that contains another is masked whole.
	sort.SliceStable(secrets, func(i, j int) bool {
		return len(secrets[i]) > len(secrets[j])
	})
	return &Redactor{Secrets: secrets}
}

func (r *Redactor) Redact(s string) string {
	if r == nil || len(r.Secrets) == 0 {
		return s
	}
	for _, secret := range r.Secrets {
		if secret == "" {
			continue
		}
		s = strings.ReplaceAll(s, secret, mask)
	}
	return s
}

// RedactSteps returns copies of steps whose selectors and values are safe to log.
func (r *Redactor) RedactSteps(steps []types.StepSpec) []types.StepSpec {
	out := make([]types.StepSpec, len(steps))
	for i, step := range steps {
		step.Selector = r.Redact(step.Selector)
		step.Value = r.Redact(step.Value)
		out[i] = step
	}
	return out
}
