package types

// ActionKind is the closed set of actions a use case can request.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionClick
	ActionFillInput
	ActionAssertText
)

// Vocabulary accepted on the wire for each ActionKind.
const (
	VerbClick      = "klik"
	VerbFillInput  = "input"
	VerbAssertText = "cek"
)

// Artifact name prefixes. Text assertions capture under "teks", not their verb.
const (
	ArtifactPrefixClick      = "klik"
	ArtifactPrefixFillInput  = "input"
	ArtifactPrefixAssertText = "teks"
)

// ParseActionKind maps a use-case verb to its ActionKind. Unrecognised verbs
// yield ActionUnknown rather than an error.
func ParseActionKind(verb string) ActionKind {
	switch verb {
	case VerbClick:
		return ActionClick
	case VerbFillInput:
		return ActionFillInput
	case VerbAssertText:
		return ActionAssertText
	default:
		return ActionUnknown
	}
}

func (k ActionKind) String() string {
	switch k {
	case ActionClick:
		return VerbClick
	case ActionFillInput:
		return VerbFillInput
	case ActionAssertText:
		return VerbAssertText
	default:
		return "unknown"
	}
}

// StepSpec is one requested use case. Action holds the verb exactly as it was
// received so outcome labels stay traceable for unknown verbs too.
type StepSpec struct {
	Action   string `json:"action" yaml:"action"`
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Kind returns the parsed ActionKind of the step.
func (s StepSpec) Kind() ActionKind {
	return ParseActionKind(s.Action)
}

// Label identifies the step in outcomes: the verb followed by the selector.
func (s StepSpec) Label() string {
	return s.Action + " " + s.Selector
}

// StepOutcome is the per-step verdict reported back to the caller.
type StepOutcome struct {
	Label     string `json:"action"`
	Message   string `json:"message"`
	Succeeded bool   `json:"succeeded"`
}

// Artifact is one captured screenshot. Reference is the public path a client
// fetches; StorageLocation is the file on disk used for cleanup.
type Artifact struct {
	Reference       string `json:"reference"`
	StorageLocation string `json:"-"`
}

// StepResult is what a single runner hands back to the executor. Every step
// yields an ordered, possibly empty, list of artifacts.
type StepResult struct {
	Outcome        StepOutcome
	ExtractedTexts []string
	Artifacts      []Artifact
}

// RunReport aggregates the outcomes of a whole run.
type RunReport struct {
	Outcomes       []StepOutcome `json:"results"`
	ExtractedTexts []string      `json:"extractedTexts"`
	Artifacts      []Artifact    `json:"-"`

	// Err is the unexpected failure that stopped the run early, if any.
	Err error `json:"-"`
}

// NewRunReport returns an empty report whose slices encode as [] rather than null.
func NewRunReport(capacity int) *RunReport {
	return &RunReport{
		Outcomes:       make([]StepOutcome, 0, capacity),
		ExtractedTexts: make([]string, 0),
		Artifacts:      make([]Artifact, 0),
	}
}

// ArtifactReferences lists the public references of every captured artifact,
// in capture order.
func (r *RunReport) ArtifactReferences() []string {
	refs := make([]string, 0, len(r.Artifacts))
	for _, a := range r.Artifacts {
		refs = append(refs, a.Reference)
	}
	return refs
}

// Append folds a step result into the report.
func (r *RunReport) Append(res *StepResult) {
	r.Outcomes = append(r.Outcomes, res.Outcome)
	r.Merge(res)
}

// Merge keeps texts and artifacts from a step result without recording its outcome.
func (r *RunReport) Merge(res *StepResult) {
	if res == nil {
		return
	}
	r.ExtractedTexts = append(r.ExtractedTexts, res.ExtractedTexts...)
	r.Artifacts = append(r.Artifacts, res.Artifacts...)
}

// RunResponse is the success body of a run as sent to clients.
type RunResponse struct {
	Status         string        `json:"status"`
	Results        []StepOutcome `json:"results"`
	ExtractedTexts []string      `json:"extractedTexts"`
	ScreenshotURLs []string      `json:"screenshotUrls"`
}

func NewRunResponse(r *RunReport) RunResponse {
	return RunResponse{
		Status:         "success",
		Results:        r.Outcomes,
		ExtractedTexts: r.ExtractedTexts,
		ScreenshotURLs: r.ArtifactReferences(),
	}
}
