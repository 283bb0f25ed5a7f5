package domain

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/optset/internal/adapter"
	m "gooze.dev/pkg/optset/internal/model"
)

const examplesDir = "../../examples"

func resolveExample(t *testing.T, name string) (*m.Resolved, error) {
	t.Helper()

	store := adapter.NewLocalConfigStore()
	ctx := context.Background()

	path, ok, err := store.Find(ctx, m.Path(filepath.Join(examplesDir, name)))
	require.NoError(t, err)
	require.True(t, ok, "no config in example %s", name)

	config, err := store.Load(ctx, path)
	require.NoError(t, err)

	return NewResolver(DefaultRegistry()).Resolve(ctx, Input{Argv: NewRawInput(nil), Config: config})
}

func TestExamples_Basic(t *testing.T) {
	res, err := resolveExample(t, "basic")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Global.Bail)
	assert.Equal(t, m.CoverageThreshold{"global": {"lines": 80, "branches": 70}}, res.Global.CoverageThreshold)
	require.Len(t, res.Projects, 1)
	assert.Equal(t, "jsdom", res.Projects[0].TestEnvironment)
	assert.Equal(t, []m.Pair{
		{Pattern: "^@app/(.*)$", Target: "<rootDir>/src/$1"},
		{Pattern: `\.(css|less)$`, Target: "identity-obj-proxy"},
	}, res.Projects[0].ModuleNameMapper)
}

func TestExamples_Projects(t *testing.T) {
	res, err := resolveExample(t, "projects")
	require.NoError(t, err)

	assert.Equal(t, m.NotifyFailure, res.Global.NotifyMode)
	assert.Equal(t, []m.Glob{"packages/legacy/*"}, res.Global.Projects)
	require.Len(t, res.Projects, 2)

	api, web := res.Projects[0], res.Projects[1]
	assert.Equal(t, &m.DisplayName{Name: "API", Color: "blue"}, api.DisplayName)
	assert.Equal(t, m.TimersReal, api.Timers)
	assert.Equal(t, m.TimersFake, web.Timers)
	assert.Equal(t, []m.Path{"./jest.setup.js"}, web.SetupFilesAfterEnv)
	assert.Empty(t, api.SetupFilesAfterEnv)
}

func TestExamples_HCL(t *testing.T) {
	res, err := resolveExample(t, "hcl")
	require.NoError(t, err)

	assert.Equal(t, 4, res.Global.MaxWorkers)
	assert.Equal(t, []string{`(/__tests__/.*|\.spec)\.js$`}, res.Projects[0].TestRegex)
	assert.Equal(t, []m.Pair{
		{Pattern: "^@lib/(.*)$", Target: "<rootDir>/lib/$1"},
		{Pattern: "^@app/(.*)$", Target: "<rootDir>/src/$1"},
	}, res.Projects[0].ModuleNameMapper)
	assert.Equal(t, []m.Pair{{Pattern: `\.tsx?$`, Target: "ts-jest"}}, res.Projects[0].Transform)
}

func TestExamples_JSON(t *testing.T) {
	res, err := resolveExample(t, "json")
	require.NoError(t, err)

	assert.Equal(t, []m.Glob{"**/*.test.js"}, res.Global.TestMatch)
	assert.Equal(t, m.SnapshotNone, res.Global.UpdateSnapshot)
	assert.Equal(t, []m.ReporterConfig{
		{Path: "default"},
		{Path: "jest-junit", Options: map[string]any{"outputDirectory": "reports"}},
	}, res.Global.Reporters)
	assert.Equal(t, map[string]any{"__DEV__": true}, res.Projects[0].Globals)
}

func TestExamples_Invalid(t *testing.T) {
	_, err := resolveExample(t, "invalid")

	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []string{
		`option "notifyMode": "sometimes" is not one of always, failure, success, change, success-change, failure-change`,
		`option "watchAll": cannot be combined with watch; pick one`,
		`option "timers" in project web: "slow" is not one of real, fake`,
	}, messages(errs))
}
