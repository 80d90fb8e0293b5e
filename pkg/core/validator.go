package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arnavsurve/stepshot/pkg/steprunner"
	"github.com/arnavsurve/stepshot/pkg/types"
)

// ErrInvalidRequest marks a boundary failure: nothing was sent to the browser.
var ErrInvalidRequest = errors.New("missing parameters or invalid usecases format")

// ValidateRequest checks the boundary contract: a url and a non-empty,
// ordered list of use cases. Individual use cases are not inspected here;
// incomplete ones become failing outcomes during the run.
func ValidateRequest(req RunRequest) error {
	if strings.TrimSpace(req.URL) == "" {
		return fmt.Errorf("%w: 'url' is required", ErrInvalidRequest)
	}
	if len(req.Usecases) == 0 {
		return fmt.Errorf("%w: 'usecases' must be a non-empty list", ErrInvalidRequest)
	}
	return nil
}

// DecodeRunRequest reads a JSON run request and validates it. A usecases
// value that is not a list of objects is rejected the same way as a missing one.
func DecodeRunRequest(r io.Reader) (RunRequest, error) {
	var raw struct {
		URL      string          `json:"url"`
		Usecases json.RawMessage `json:"usecases"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return RunRequest{}, fmt.Errorf("%w: decoding body: %v", ErrInvalidRequest, err)
	}

	req := RunRequest{URL: raw.URL}
	trimmed := bytes.TrimSpace(raw.Usecases)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if trimmed[0] != '[' {
			return RunRequest{}, fmt.Errorf("%w: 'usecases' must be a list", ErrInvalidRequest)
		}
		if err := json.Unmarshal(trimmed, &req.Usecases); err != nil {
			return RunRequest{}, fmt.Errorf("%w: decoding usecases: %v", ErrInvalidRequest, err)
		}
	}

	if err := ValidateRequest(req); err != nil {
		return RunRequest{}, err
	}
	return req, nil
}

// ValidateSuiteStructure checks fields at the suite level: name, url, input
// uniqueness and that there is something to run.
func ValidateSuiteStructure(s *Suite) error {
	if s.Name == "" {
		return fmt.Errorf("suite is missing 'name'")
	}
	if s.URL == "" {
		return fmt.Errorf("suite %q is missing 'url'", s.Name)
	}

	inputNames := make(map[string]bool)
	for i, input := range s.Inputs {
		if input.Name == "" {
			return fmt.Errorf("input %d is missing 'name'", i)
		}
		if inputNames[input.Name] {
			return fmt.Errorf("duplicate input name: %q", input.Name)
		}
		inputNames[input.Name] = true
	}

	if len(s.Usecases) == 0 {
		return fmt.Errorf("suite %q defines no usecases", s.Name)
	}
	for i, uc := range s.Usecases {
		if uc.Action == "" {
			return fmt.Errorf("usecase %d is missing 'action'", i+1)
		}
	}

	return nil
}

func ValidateRequiredInputs(s *Suite, varCtx VarContext) error {
	for _, input := range s.Inputs {
		if input.Required {
			if _, exists := varCtx[input.Name]; !exists && input.Default == "" {
				return fmt.Errorf("required input %q is missing from the varfile and no default value is provided", input.Name)
			}
		}
	}
	return nil
}

// ValidateSuiteRunners checks that every use case has a runner and the
// parameters that runner needs. A run tolerates such use cases; lint does not.
func ValidateSuiteRunners(s *Suite) error {
	for i, uc := range s.Usecases {
		ctx := types.ExecutionContext{
			Step:  uc,
			Index: i,
		}

		runner, err := steprunner.GetRunner(ctx)
		if err != nil {
			return fmt.Errorf("getting runner for usecase %d (%s): %w", i+1, uc.Label(), err)
		}

		if err = runner.Validate(); err != nil {
			return fmt.Errorf("validating usecase %d: %w", i+1, err)
		}
	}

	return nil
}
