package core_test

import (
	"strings"
	"testing"

	"github.com/arnavsurve/stepshot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRunRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		want    int
	}{
		{name: "valid", body: `{"url":"https://example.com","usecases":[{"action":"klik","selector":"#a"}]}`, want: 1},
		{name: "partial use cases are accepted", body: `{"url":"https://example.com","usecases":[{"action":"input"},{"action":"zoom"}]}`, want: 2},
		{name: "missing url", body: `{"usecases":[{"action":"klik"}]}`, wantErr: true},
		{name: "blank url", body: `{"url":"  ","usecases":[{"action":"klik"}]}`, wantErr: true},
		{name: "missing usecases", body: `{"url":"https://example.com"}`, wantErr: true},
		{name: "null usecases", body: `{"url":"https://example.com","usecases":null}`, wantErr: true},
		{name: "empty usecases", body: `{"url":"https://example.com","usecases":[]}`, wantErr: true},
		{name: "usecases not a list", body: `{"url":"https://example.com","usecases":"klik #a"}`, wantErr: true},
		{name: "usecase not an object", body: `{"url":"https://example.com","usecases":[42]}`, wantErr: true},
		{name: "not json", body: `url=https://example.com`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := core.DecodeRunRequest(strings.NewReader(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			assert.Len(t, req.Usecases, tt.want)
		})
	}
}

func TestValidateSuiteStructure(t *testing.T) {
	valid := func() *core.Suite {
		return &core.Suite{
			Name:     "s",
			URL:      "https://example.com",
			Inputs:   []core.Input{{Name: "a"}},
			Usecases: []core.UseCase{{Action: "klik", Selector: "#a"}},
		}
	}

	tests := []struct {
		name     string
		mutate   func(s *core.Suite)
		errorMsg string
	}{
		{name: "valid", mutate: func(s *core.Suite) {}},
		{name: "no name", mutate: func(s *core.Suite) { s.Name = "" }, errorMsg: "missing 'name'"},
		{name: "no url", mutate: func(s *core.Suite) { s.URL = "" }, errorMsg: "missing 'url'"},
		{name: "unnamed input", mutate: func(s *core.Suite) { s.Inputs = append(s.Inputs, core.Input{}) }, errorMsg: "input 1 is missing 'name'"},
		{name: "duplicate input", mutate: func(s *core.Suite) { s.Inputs = append(s.Inputs, core.Input{Name: "a"}) }, errorMsg: "duplicate input name"},
		{name: "no usecases", mutate: func(s *core.Suite) { s.Usecases = nil }, errorMsg: "defines no usecases"},
		{name: "usecase without action", mutate: func(s *core.Suite) { s.Usecases[0].Action = "" }, errorMsg: "usecase 1 is missing 'action'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := core.ValidateSuiteStructure(s)
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestValidateRequiredInputs(t *testing.T) {
	s := &core.Suite{Inputs: []core.Input{
		{Name: "token", Required: true},
		{Name: "user", Required: true, Default: "demo"},
	}}

	assert.NoError(t, core.ValidateRequiredInputs(s, core.VarContext{"token": "t"}))

	err := core.ValidateRequiredInputs(s, core.VarContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"token"`)
}

func TestValidateSuiteRunners_Unknown(t *testing.T) {
	s := &core.Suite{Usecases: []core.UseCase{{Action: "hover", Selector: "#a"}}}
	err := core.ValidateSuiteRunners(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usecase 1 (hover #a)")
}
