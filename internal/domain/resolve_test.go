package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "gooze.dev/pkg/optset/internal/model"
	"gooze.dev/pkg/optset/pkg"
)

func resolve(t *testing.T, argv map[string]any, config string) (*m.Resolved, error) {
	t.Helper()

	var payload pkg.Object

	if config != "" {
		decoded, err := pkg.DecodeJSON(config)
		require.NoError(t, err)

		payload = decoded.(pkg.Object)
	}

	return NewResolver(DefaultRegistry()).Resolve(context.Background(), Input{Argv: NewRawInput(argv), Config: payload})
}

func TestResolve_Defaults(t *testing.T) {
	res, err := resolve(t, nil, "")
	require.NoError(t, err)

	assert.Equal(t, 0, res.Global.Bail)
	assert.Equal(t, m.NotifyFailureChange, res.Global.NotifyMode)
	assert.Equal(t, m.SnapshotNew, res.Global.UpdateSnapshot)
	assert.Equal(t, 5, res.Global.MaxConcurrency)
	require.Len(t, res.Projects, 1)
	assert.Equal(t, "node", res.Projects[0].TestEnvironment)
	assert.Equal(t, []string{"js", "json", "jsx", "ts", "tsx", "node"}, res.Projects[0].ModuleFileExtensions)
}

func TestResolve_ArgvOnly(t *testing.T) {
	res, err := resolve(t, map[string]any{"bail": true, "notify": true, "notifyMode": "failure"}, "")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Global.Bail)
	assert.True(t, res.Global.Notify)
	assert.Equal(t, m.NotifyFailure, res.Global.NotifyMode)
}

func TestResolve_Precedence(t *testing.T) {
	config := `{"bail": 2, "verbose": true, "testEnvironment": "jsdom", "timers": "fake"}`

	res, err := resolve(t, map[string]any{"bail": "5"}, config)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Global.Bail, "cli beats config")
	assert.Equal(t, ptr(true), res.Global.Verbose, "config beats default")
	assert.Equal(t, m.TimersFake, res.Projects[0].Timers)
	assert.Equal(t, "jsdom", res.Projects[0].TestEnvironment)
	assert.Equal(t, m.Path("coverage"), res.Global.CoverageDirectory)
}

func TestResolve_CLIOverridesConfig(t *testing.T) {
	res, err := resolve(t, map[string]any{"testEnvironment": "node"}, `{"testEnvironment": "jsdom"}`)
	require.NoError(t, err)
	assert.Equal(t, "node", res.Projects[0].TestEnvironment)

	res, err = resolve(t, nil, `{"testEnvironment": "jsdom"}`)
	require.NoError(t, err)
	assert.Equal(t, "jsdom", res.Projects[0].TestEnvironment)
}

func TestResolve_CoverageThreshold(t *testing.T) {
	_, err := resolve(t,
		map[string]any{"collectCoverage": true, "coverageThreshold": `{"./src": {"lines": 80}}`}, "")

	var errs Errors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)

	var validationErr *ValidationError
	require.ErrorAs(t, errs[0], &validationErr)
	assert.Equal(t, "coverageThreshold", validationErr.Option)

	res, err := resolve(t,
		map[string]any{"collectCoverage": true, "coverageThreshold": `{"global": {"lines": 80}}`}, "")
	require.NoError(t, err)
	assert.Equal(t, m.CoverageThreshold{"global": {"lines": 80}}, res.Global.CoverageThreshold)
}

func TestResolve_SharedOptionsMatchEverywhere(t *testing.T) {
	config := `{
		"rootDir": "/repo",
		"extraGlobals": ["Math"],
		"projects": [{"name": "a"}, {"name": "b", "testEnvironment": "jsdom"}]
	}`

	res, err := resolve(t, map[string]any{"detectLeaks": true}, config)
	require.NoError(t, err)
	require.Len(t, res.Projects, 2)

	for _, p := range res.Projects {
		assert.Equal(t, res.Global.SharedOptions, p.SharedOptions)
	}

	assert.Equal(t, m.Path("/repo"), res.Global.RootDir)
	assert.True(t, res.Global.DetectLeaks)

	res.Projects[0].ExtraGlobals[0] = "changed"
	assert.Equal(t, []string{"Math"}, res.Global.ExtraGlobals, "records do not share storage")
}

func TestResolve_InlineProjects(t *testing.T) {
	config := `{
		"testEnvironment": "node",
		"projects": ["packages/*", {"name": "web", "testEnvironment": "jsdom"}, {"timers": "fake"}]
	}`

	res, err := resolve(t, nil, config)
	require.NoError(t, err)

	assert.Equal(t, []m.Glob{"packages/*"}, res.Global.Projects)
	require.Len(t, res.Projects, 2)
	assert.Equal(t, "web", res.Projects[0].Name)
	assert.Equal(t, "jsdom", res.Projects[0].TestEnvironment)
	assert.Equal(t, "node", res.Projects[1].TestEnvironment, "root config fills gaps")
	assert.Equal(t, m.TimersFake, res.Projects[1].Timers)
}

func TestResolve_ProjectErrorsKeepOrder(t *testing.T) {
	config := `{"projects": [
		{"name": "a", "timers": "slow"},
		{"name": "b", "bail": 1},
		{"name": "c", "testRegex": 5}
	]}`

	_, err := resolve(t, nil, config)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []string{
		`option "bail" in project b: global option cannot be set per project`,
		`option "testRegex" in project c (config): cannot parse "5": expected a list of strings, got a number`,
		`option "timers" in project a: "slow" is not one of real, fake`,
	}, messages(errs))
}

func TestResolve_ParseAndValidationErrorsTogether(t *testing.T) {
	tests := []struct {
		name   string
		argv   map[string]any
		config string
		want   []string
	}{
		{
			name: "cli parse error with validation errors",
			argv: map[string]any{"bail": "abc", "notifyMode": "bogus", "watch": true, "watchAll": true},
			want: []string{
				`option "bail" (cli): cannot parse "abc": expected a boolean or a number of failures`,
				`option "notifyMode": "bogus" is not one of always, failure, success, change, success-change, failure-change`,
				`option "watchAll": cannot be combined with watch; pick one`,
			},
		},
		{
			name:   "failed root option is not validated again",
			config: `{"timers": 5, "notifyMode": "bogus"}`,
			want: []string{
				`option "timers" (config): cannot parse "5": expected a string, got a number`,
				`option "notifyMode": "bogus" is not one of always, failure, success, change, success-change, failure-change`,
			},
		},
		{
			name:   "failed project option is not validated again",
			config: `{"projects": [{"name": "a", "timers": 5}, {"name": "b", "timers": "slow"}]}`,
			want: []string{
				`option "timers" in project a (config): cannot parse "5": expected a string, got a number`,
				`option "timers" in project b: "slow" is not one of real, fake`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolve(t, tt.argv, tt.config)

			var errs Errors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, tt.want, messages(errs))
		})
	}
}

func TestResolve_ParseErrorKinds(t *testing.T) {
	_, err := resolve(t, map[string]any{"bail": "abc", "watch": true, "watchAll": true}, "")

	var errs Errors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 2)

	var parseErr *ParseError
	require.ErrorAs(t, errs[0], &parseErr)
	assert.Equal(t, "bail", parseErr.Option)

	var validationErr *ValidationError
	require.ErrorAs(t, errs[1], &validationErr)
	assert.Equal(t, "watchAll", validationErr.Option)
}

func TestResolve_ReportsEveryValidationError(t *testing.T) {
	_, err := resolve(t, map[string]any{"watch": true, "watchAll": true, "notifyMode": "bogus"}, `{"timers": "slow"}`)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 3)
}

func TestResolve_ModuleNameMapperOrder(t *testing.T) {
	res, err := resolve(t, nil, `{"moduleNameMapper": {"^z$": "1", "^a$": "2", "^m$": "3"}}`)
	require.NoError(t, err)

	assert.Equal(t, []m.Pair{
		{Pattern: "^z$", Target: "1"},
		{Pattern: "^a$", Target: "2"},
		{Pattern: "^m$", Target: "3"},
	}, res.Projects[0].ModuleNameMapper)
}

func TestResolve_Directives(t *testing.T) {
	res, err := resolve(t, map[string]any{"ci": true}, "")
	require.NoError(t, err)
	assert.Equal(t, m.SnapshotNone, res.Global.UpdateSnapshot)

	res, err = resolve(t, map[string]any{"ci": true}, `{"updateSnapshot": "all"}`)
	require.NoError(t, err)
	assert.Equal(t, m.SnapshotAll, res.Global.UpdateSnapshot, "config beats the ci default")

	res, err = resolve(t, map[string]any{"runInBand": true}, `{"maxWorkers": 4}`)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Global.MaxWorkers)

	res, err = resolve(t, map[string]any{"all": true}, `{"onlyChanged": true}`)
	require.NoError(t, err)
	assert.False(t, res.Global.OnlyChanged)
}

func TestResolve_IsDeterministic(t *testing.T) {
	argv := map[string]any{"bail": "2", "moduleNameMapper": `{"^b$":"1","^a$":"2"}`}
	config := `{"projects": [{"name": "a"}, {"name": "b"}, {"name": "c"}, {"name": "d"}]}`

	first, err := resolve(t, argv, config)
	require.NoError(t, err)

	for range 10 {
		again, err := resolve(t, argv, config)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolve_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewResolver(DefaultRegistry()).Resolve(ctx, Input{Argv: NewRawInput(nil)})
	require.ErrorIs(t, err, context.Canceled)
}

func TestExplain_Provenance(t *testing.T) {
	config, err := pkg.DecodeJSON(`{"verbose": true, "projects": [{"timers": "fake"}]}`)
	require.NoError(t, err)

	_, prov, err := NewResolver(DefaultRegistry()).Explain(context.Background(), Input{
		Argv:   NewRawInput(map[string]any{"bail": 1}),
		Config: config.(pkg.Object),
	})
	require.NoError(t, err)

	assert.Equal(t, SourceCLI, prov.Global["bail"])
	assert.Equal(t, SourceConfig, prov.Global["verbose"])
	assert.Equal(t, SourceDefault, prov.Global["rootDir"])
	require.Len(t, prov.Projects, 1)
	assert.Equal(t, SourceConfig, prov.Projects[0]["timers"])
	assert.Equal(t, SourceDefault, prov.Projects[0]["cache"])
}

func TestProjectLabel(t *testing.T) {
	assert.Equal(t, "web", ProjectLabel("web", 3))
	assert.Equal(t, "#4", ProjectLabel("", 3))
}
