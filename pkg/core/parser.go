package core

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyUseCase is returned for a blank use-case line.
var ErrEmptyUseCase = errors.New("empty use case")

func LoadSuiteFromFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite file %q: %w", path, err)
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing suite YAML: %w", err)
	}

	if err := ValidateSuiteStructure(&s); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}

	return &s, nil
}

// ParseUseCaseLine turns a free-text line such as "input #name with Ana Lee"
// into a use case. Tokens are split on single spaces: the first is the
// action, the second the selector, and everything after the third (a
// connector word) is the value. Missing parts are left empty.
func ParseUseCaseLine(line string) (UseCase, error) {
	if strings.TrimSpace(line) == "" {
		return UseCase{}, ErrEmptyUseCase
	}

	parts := strings.Split(line, " ")
	uc := UseCase{Action: parts[0]}
	if len(parts) > 1 {
		uc.Selector = parts[1]
	}
	if len(parts) > 3 {
		uc.Value = strings.Join(parts[3:], " ")
	}
	return uc, nil
}

// ParseUseCaseLines parses each line in order, skipping blank ones.
func ParseUseCaseLines(lines []string) ([]UseCase, error) {
	usecases := make([]UseCase, 0, len(lines))
	for i, line := range lines {
		uc, err := ParseUseCaseLine(line)
		if errors.Is(err, ErrEmptyUseCase) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("parsing use case %d: %w", i+1, err)
		}
		usecases = append(usecases, uc)
	}
	return usecases, nil
}
