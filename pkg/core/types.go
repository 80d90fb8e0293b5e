package core

import "github.com/arnavsurve/stepshot/pkg/types"

// Input declares a placeholder a suite expects from its varfile.
type Input struct {
	Name     string `yaml:"name"`
	Required bool   `yaml:"required,omitempty"`
	Secret   bool   `yaml:"secret,omitempty"`
	Default  string `yaml:"default,omitempty"`
}

// Suite is a saved run: a target page plus the use cases to perform on it.
type Suite struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	URL         string    `yaml:"url"`
	Inputs      []Input   `yaml:"inputs,omitempty"`
	Usecases    []UseCase `yaml:"usecases"`
}

type UseCase = types.StepSpec

// RunRequest is the boundary input of a run.
type RunRequest struct {
	URL      string    `json:"url"`
	Usecases []UseCase `json:"usecases"`
}

type RunReport = types.RunReport

type StepOutcome = types.StepOutcome

type Level = types.Level

// Level constants
const (
	DebugLevel = types.DebugLevel
	InfoLevel  = types.InfoLevel
	WarnLevel  = types.WarnLevel
	ErrorLevel = types.ErrorLevel
	FatalLevel = types.FatalLevel
)
