package types_test

import (
	"encoding/json"
	"testing"

	"github.com/arnavsurve/stepshot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionKind(t *testing.T) {
	tests := []struct {
		verb string
		want types.ActionKind
	}{
		{"klik", types.ActionClick},
		{"input", types.ActionFillInput},
		{"cek", types.ActionAssertText},
		{"click", types.ActionUnknown},
		{"Klik", types.ActionUnknown},
		{"", types.ActionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.verb, func(t *testing.T) {
			assert.Equal(t, tt.want, types.ParseActionKind(tt.verb))
		})
	}
	assert.Equal(t, "unknown", types.ActionUnknown.String())
	assert.Equal(t, "cek", types.ActionAssertText.String())
}

func TestStepSpecLabel(t *testing.T) {
	assert.Equal(t, "klik #submit", types.StepSpec{Action: "klik", Selector: "#submit"}.Label())
	assert.Equal(t, "hover ", types.StepSpec{Action: "hover"}.Label())
}

func TestRunReportAppendAndMerge(t *testing.T) {
	r := types.NewRunReport(2)
	r.Append(&types.StepResult{
		Outcome:        types.StepOutcome{Label: "cek .a", Succeeded: true},
		ExtractedTexts: []string{"x", "y"},
		Artifacts:      []types.Artifact{{Reference: "/a.png"}, {Reference: "/b.png"}},
	})
	r.Merge(&types.StepResult{
		Outcome:   types.StepOutcome{Label: "ignored"},
		Artifacts: []types.Artifact{{Reference: "/c.png"}},
	})
	r.Merge(nil)

	require.Len(t, r.Outcomes, 1)
	assert.Equal(t, []string{"x", "y"}, r.ExtractedTexts)
	assert.Equal(t, []string{"/a.png", "/b.png", "/c.png"}, r.ArtifactReferences())
}

func TestRunResponseJSON(t *testing.T) {
	r := types.NewRunReport(0)
	r.Append(&types.StepResult{
		Outcome:   types.StepOutcome{Label: "klik #a", Message: "ok", Succeeded: true},
		Artifacts: []types.Artifact{{Reference: "/screenshot_klik_1.png", StorageLocation: "/srv/public/screenshot_klik_1.png"}},
	})

	data, err := json.Marshal(types.NewRunResponse(r))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"status": "success",
		"results": [{"action": "klik #a", "message": "ok", "succeeded": true}],
		"extractedTexts": [],
		"screenshotUrls": ["/screenshot_klik_1.png"]
	}`, string(data))
}
