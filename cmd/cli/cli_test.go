package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/arnavsurve/stepshot/pkg/core"
	"github.com/arnavsurve/stepshot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var c CLI
	parser, err := kong.New(&c, kong.Name("stepshot"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &c, ctx
}

func TestServeDefaults(t *testing.T) {
	for _, key := range []string{"STEPSHOT_ADDR", "STEPSHOT_PUBLIC_DIR", "STEPSHOT_DISPOSE_AFTER", "STEPSHOT_HEADLESS", "STEPSHOT_NAV_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	c, ctx := parse(t, "serve")
	assert.Equal(t, "serve", ctx.Command())
	assert.Equal(t, ":3000", c.Serve.Addr)
	assert.Equal(t, "public", c.Serve.PublicDir)
	assert.Equal(t, 5*time.Second, c.Serve.DisposeAfter)
	assert.Equal(t, 30*time.Second, c.Serve.NavTimeout)
	assert.True(t, c.Serve.Headless)

	opts := c.Serve.options()
	assert.True(t, opts.Headless)
	assert.Equal(t, 30*time.Second, opts.NavigationTimeout)
	assert.Equal(t, []string{"--no-sandbox", "--disable-dev-shm-usage"}, opts.Args)
}

func TestServeFromEnv(t *testing.T) {
	t.Setenv("STEPSHOT_ADDR", ":8080")
	t.Setenv("STEPSHOT_DISPOSE_AFTER", "1m")

	c, _ := parse(t, "serve", "--no-headless")
	assert.Equal(t, ":8080", c.Serve.Addr)
	assert.Equal(t, time.Minute, c.Serve.DisposeAfter)
	assert.False(t, c.Serve.Headless)
}

func TestRunSteps(t *testing.T) {
	c, ctx := parse(t, "run", "--url", "https://example.com", "-s", "klik button#submit", "-s", "input #name with Ana Lee, Jr")
	assert.Equal(t, "run", ctx.Command())

	url, steps, redactor, err := c.Run.plan(types.NopLogger())
	require.NoError(t, err)
	assert.Nil(t, redactor)
	assert.Equal(t, "https://example.com", url)
	assert.Equal(t, []core.UseCase{
		{Action: "klik", Selector: "button#submit"},
		{Action: "input", Selector: "#name", Value: "Ana Lee, Jr"},
	}, steps)
}

func TestRunSuite(t *testing.T) {
	dir := t.TempDir()
	suitePath := filepath.Join(dir, "suite.yml")
	require.NoError(t, os.WriteFile(suitePath, []byte(`
name: local page
url: pages/form.html
inputs:
  - name: password
    required: true
    secret: true
usecases:
  - action: input
    selector: "#pw"
    value: "{{ password }}"
`), 0644))
	varfile := filepath.Join(dir, "vars.yml")
	require.NoError(t, os.WriteFile(varfile, []byte("password: hunter2\n"), 0644))

	c, _ := parse(t, "run", suitePath, "--varfile", varfile)
	url, steps, redactor, err := c.Run.plan(types.NopLogger())
	require.NoError(t, err)

	assert.Equal(t, "file://"+filepath.ToSlash(filepath.Join(dir, "pages", "form.html")), url)
	assert.Equal(t, []core.UseCase{{Action: "input", Selector: "#pw", Value: "hunter2"}}, steps)
	require.NotNil(t, redactor)
	assert.Equal(t, `Filled #pw with "********"`, redactor.Redact(`Filled #pw with "hunter2"`))
}

func TestRunSuiteMissingInput(t *testing.T) {
	c, _ := parse(t, "run", "../../pkg/core/test_fixtures/login_suite.yml", "--varfile", filepath.Join(t.TempDir(), "none.yml"))
	_, _, _, err := c.Run.plan(types.NopLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required input")
}

func TestRunSuiteAndStepsConflict(t *testing.T) {
	c, _ := parse(t, "run", "../../pkg/core/test_fixtures/login_suite.yml", "-s", "klik #a")
	_, _, _, err := c.Run.plan(types.NopLogger())
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	ok := types.NewRunReport(1)
	ok.Outcomes = append(ok.Outcomes, types.StepOutcome{Succeeded: true})
	assert.NoError(t, summarize(ok))

	soft := types.NewRunReport(2)
	soft.Outcomes = append(soft.Outcomes, types.StepOutcome{Succeeded: true}, types.StepOutcome{})
	err := summarize(soft)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 use cases failed", err.Error())

	cause := errors.New("crashed")
	hard := types.NewRunReport(1)
	hard.Outcomes = append(hard.Outcomes, core.HardFailureOutcome(cause))
	hard.Err = cause
	assert.ErrorIs(t, summarize(hard), cause)
}
