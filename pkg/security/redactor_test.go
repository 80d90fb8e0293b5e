package security_test

import (
	"testing"

	"github.com/arnavsurve/stepshot/pkg/core"
	"github.com/arnavsurve/stepshot/pkg/security"
	"github.com/arnavsurve/stepshot/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestRedactor_Redact(t *testing.T) {
	tests := []struct {
		name   string
		inputs []core.Input
		varCtx core.VarContext
		input  string
		want   string
	}{
		{
			name:   "exact match",
			inputs: []core.Input{{Name: "password", Secret: true}},
			varCtx: core.VarContext{"password": "supersecret"},
			input:  "The password is supersecret",
			want:   "The password is ********",
		},
		{
			name:   "multiple occurrences",
			inputs: []core.Input{{Name: "api_key", Secret: true}},
			varCtx: core.VarContext{"api_key": "abcdef"},
			input:  "API key: abcdef is being used. Backup key: abcdef should be stored.",
			want:   "API key: ******** is being used. Backup key: ******** should be stored.",
		},
		{
			name: "non-secret inputs are left alone",
			inputs: []core.Input{
				{Name: "username", Secret: false},
				{Name: "password", Secret: true},
			},
			varCtx: core.VarContext{"username": "alice", "password": "pass123"},
			input:  "alice logs in with pass123",
			want:   "alice logs in with ********",
		},
		{
			name:   "default value is used when varfile omits the secret",
			inputs: []core.Input{{Name: "token", Secret: true, Default: "tok-default"}},
			varCtx: core.VarContext{},
			input:  "Bearer tok-default",
			want:   "Bearer ********",
		},
		{
			name: "empty secret is skipped",
			inputs: []core.Input{
				{Name: "empty_secret", Secret: true},
				{Name: "valid_secret", Secret: true},
			},
			varCtx: core.VarContext{"empty_secret": "", "valid_secret": "valid"},
			input:  "Empty: , Valid: valid",
			want:   "Empty: , Valid: ********",
		},
		{
			name:   "no secrets returns original string",
			inputs: []core.Input{},
			varCtx: core.VarContext{},
			input:  "Original string",
			want:   "Original string",
		},
		{
			name: "overlapping secrets",
			inputs: []core.Input{
				{Name: "short", Secret: true},
				{Name: "long", Secret: true},
			},
			varCtx: core.VarContext{"short": "secret", "long": "supersecret"},
			input:  "This contains supersecret and secret values",
			want:   "This contains ******** and ******** values",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := security.NewRedactor(tt.inputs, tt.varCtx)
			assert.Equal(t, tt.want, r.Redact(tt.input))
		})
	}
}

func TestRedactor_NilIsPassthrough(t *testing.T) {
	var r *security.Redactor
	assert.Equal(t, "plain", r.Redact("plain"))
}

func TestRedactor_RedactSteps(t *testing.T) {
	r := security.NewRedactor(
		[]core.Input{{Name: "password", Secret: true}},
		core.VarContext{"password": "s3cret"},
	)
	steps := []types.StepSpec{
		{Action: "input", Selector: "#password", Value: "s3cret"},
		{Action: "klik", Selector: "#submit"},
	}

	redacted := r.RedactSteps(steps)

	assert.Equal(t, "********", redacted[0].Value)
	assert.Equal(t, "#password", redacted[0].Selector)
	assert.Equal(t, "s3cret", steps[0].Value, "original steps must not be modified")
	assert.Equal(t, steps[1], redacted[1])
}
