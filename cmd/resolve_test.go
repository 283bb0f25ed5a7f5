package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gooze.dev/pkg/optset/internal/adapter"
	"gooze.dev/pkg/optset/internal/controller"
	"gooze.dev/pkg/optset/internal/domain"
	domainmocks "gooze.dev/pkg/optset/internal/domain/mocks"
	m "gooze.dev/pkg/optset/internal/model"
)

func lookup(t *testing.T, raw domain.RawInput, name string) any {
	t.Helper()

	value, ok := raw.Lookup(name)
	require.True(t, ok, "raw input has no %q", name)

	return value
}

func TestResolveCmd_PassesChangedFlags(t *testing.T) {
	isolateLog(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newResolveCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	var got domain.ResolveArgs

	mockWorkflow.On("Resolve", mock.Anything, mock.AnythingOfType("domain.ResolveArgs")).
		Run(func(args mock.Arguments) { got = args.Get(1).(domain.ResolveArgs) }).
		Return(nil)

	cmd.SetArgs([]string{
		"resolve",
		"--bail=3", "--notify", "-u", "--ci",
		"--coverage", "--env", "jsdom",
		"--testMatch", "a/*.js", "--testMatch", "b/*.js",
		"-w", "4",
		"src/app",
	})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "3", lookup(t, got.Argv, "bail"))
	assert.Equal(t, true, lookup(t, got.Argv, "notify"))
	assert.Equal(t, true, lookup(t, got.Argv, "updateSnapshot"))
	assert.Equal(t, true, lookup(t, got.Argv, "ci"))
	assert.Equal(t, true, lookup(t, got.Argv, "collectCoverage"))
	assert.Equal(t, "jsdom", lookup(t, got.Argv, "testEnvironment"))
	assert.Equal(t, []string{"a/*.js", "b/*.js"}, lookup(t, got.Argv, "testMatch"))
	assert.Equal(t, 4, lookup(t, got.Argv, "maxWorkers"))
	assert.Equal(t, []string{"src/app"}, lookup(t, got.Argv, "nonFlagArgs"))
	assert.Equal(t, []string{"src/app"}, lookup(t, got.Argv, "testPathPattern"))
	assert.Equal(t, controller.FormatYAML, got.Format)

	_, ok := got.Argv.Lookup("watch")
	assert.False(t, ok, "unchanged flags stay absent")
}

func TestResolveCmd_BareBailMeansTrue(t *testing.T) {
	isolateLog(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newResolveCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Resolve", mock.Anything, mock.MatchedBy(func(args domain.ResolveArgs) bool {
		value, ok := args.Argv.Lookup("bail")
		return ok && value == "true"
	})).Return(nil)

	cmd.SetArgs([]string{"resolve", "--bail"})
	require.NoError(t, cmd.Execute())
}

func TestResolveCmd_ExplicitPatternWinsOverPositionals(t *testing.T) {
	isolateLog(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newResolveCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Resolve", mock.Anything, mock.MatchedBy(func(args domain.ResolveArgs) bool {
		pattern, _ := args.Argv.Lookup("testPathPattern")
		rest, _ := args.Argv.Lookup("nonFlagArgs")

		return assert.ObjectsAreEqual([]string{"^unit"}, pattern) &&
			assert.ObjectsAreEqual([]string{"a", "b"}, rest) &&
			args.Format == controller.FormatJSON &&
			args.ConfigPath == m.Path("conf/optset.json")
	})).Return(nil)

	cmd.SetArgs([]string{"resolve", "-c", "conf/optset.json", "--format", "json", "--testPathPattern", "^unit", "a", "b"})
	require.NoError(t, cmd.Execute())
}

func TestResolveCmd_RejectsUnknownFormat(t *testing.T) {
	isolateLog(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newResolveCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cmd.SetArgs([]string{"resolve", "--format", "xml"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestNewResolveCmd(t *testing.T) {
	cmd := newResolveCmd()

	assert.Equal(t, "resolve [testPathPattern...]", cmd.Use)
	assert.Equal(t, resolveLongDescription, cmd.Long)

	for _, name := range []string{"bail", "coverageThreshold", "notify", "notifyMode", "updateSnapshot", "coverage", "env", "ci", "runInBand", "all", "format"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing --%s", name)
	}

	assert.Equal(t, "u", cmd.Flags().Lookup("updateSnapshot").Shorthand)
	assert.Equal(t, "i", cmd.Flags().Lookup("runInBand").Shorthand)
	assert.Nil(t, cmd.Flags().Lookup("extraGlobals"), "config-only options have no flag")
}

func runResolve(t *testing.T, configBody string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	isolateLog(t)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "optset.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configBody), 0o644))

	cmd := newRootCmd()
	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newValidateCmd())

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	originalWorkflow := workflow
	workflow = domain.NewWorkflow(adapter.NewLocalConfigStore(), controller.NewSimpleUI(cmd, false), domain.NewResolver(registry))
	t.Cleanup(func() { workflow = originalWorkflow })

	cmd.SetArgs(append(args, "-c", configPath))
	err = cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestResolveCmd_EndToEnd(t *testing.T) {
	config := `
notifyMode: failure
moduleNameMapper:
  "^b$": one
  "^a$": two
projects:
  - displayName: unit
    testEnvironment: jsdom
  - displayName: lint
    runner: jest-runner-eslint
`

	stdout, _, err := runResolve(t, config, "resolve", "--format", "json", "--bail", "--notify", "--runInBand")
	require.NoError(t, err)

	var res m.Resolved
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))

	assert.Equal(t, 1, res.Global.Bail)
	assert.True(t, res.Global.Notify)
	assert.Equal(t, m.NotifyFailure, res.Global.NotifyMode)
	assert.Equal(t, 1, res.Global.MaxWorkers)

	require.Len(t, res.Projects, 2)
	assert.Equal(t, "jsdom", res.Projects[0].TestEnvironment)
	assert.Equal(t, "node", res.Projects[1].TestEnvironment)
	assert.Equal(t, "jest-runner-eslint", res.Projects[1].Runner)
	assert.Equal(t, []m.Pair{{Pattern: "^b$", Target: "one"}, {Pattern: "^a$", Target: "two"}}, res.Projects[0].ModuleNameMapper)
	assert.Equal(t, res.Global.SharedOptions, res.Projects[0].SharedOptions)
}

func TestValidateCmd_ReportsEveryError(t *testing.T) {
	config := `
notifyMode: sometimes
watch: true
watchAll: true
`

	stdout, stderr, err := runResolve(t, config, "validate", "--testFailureExitCode", "abc")
	require.Error(t, err)
	assert.Empty(t, stdout)

	var errs domain.Errors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 3)
	assert.Contains(t, stderr, "Configuration has three errors:")
	assert.Contains(t, stderr, `option "testFailureExitCode" (cli): cannot parse "abc"`)
	assert.Contains(t, stderr, `option "notifyMode": "sometimes" is not one of`)
	assert.Contains(t, stderr, `option "watchAll": cannot be combined with watch`)

	_, stderr, err = runResolve(t, config, "validate")
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, stderr, "Configuration has two errors:")
	assert.Contains(t, stderr, `option "notifyMode": "sometimes" is not one of`)
	assert.Contains(t, stderr, `option "watchAll": cannot be combined with watch`)
}

func TestValidateCmd_Valid(t *testing.T) {
	stdout, stderr, err := runResolve(t, "testEnvironment: jsdom\n", "validate")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Equal(t, "Configuration is valid (one project).\n", stdout)
}
