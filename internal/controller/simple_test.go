package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "gooze.dev/pkg/optset/internal/model"
)

func newTestUI(styled bool) (*SimpleUI, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	return NewSimpleUI(cmd, styled), &stdout, &stderr
}

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()

	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func sampleResolved() *m.Resolved {
	return &m.Resolved{
		Global: m.GlobalOptions{
			SharedOptions: m.SharedOptions{RootDir: "/repo"},
			Bail:          1,
			NotifyMode:    m.NotifyFailure,
		},
		Projects: []m.ProjectOptions{{
			SharedOptions:   m.SharedOptions{RootDir: "/repo"},
			Name:            "web",
			TestEnvironment: "jsdom",
			ModuleNameMapper: []m.Pair{
				{Pattern: "^z$", Target: "one"},
				{Pattern: "^a$", Target: "two"},
			},
		}},
	}
}

func TestSimpleUI_DisplayErrors(t *testing.T) {
	ui, stdout, stderr := newTestUI(false)

	ui.DisplayErrors(context.Background(), []error{
		errors.New(`option "notifyMode": "bogus" is not one of always, failure`),
		errors.New(`option "watchAll" in project web: cannot be combined with watch; pick one`),
	})

	assert.Empty(t, stdout.String())
	newGoldie(t).Assert(t, "errors_plain", stderr.Bytes())
}

func TestSimpleUI_DisplaySingleError(t *testing.T) {
	ui, _, stderr := newTestUI(false)

	ui.DisplayErrors(context.Background(), []error{
		errors.New(`option "bail" (cli): cannot parse "abc": expected a boolean or a number of failures`),
	})

	newGoldie(t).Assert(t, "errors_single", stderr.Bytes())
}

func TestSimpleUI_DisplayErrorsStyled(t *testing.T) {
	ui, _, stderr := newTestUI(true)

	ui.DisplayErrors(context.Background(), []error{errors.New("broken")})

	assert.Contains(t, stderr.String(), "Configuration has one error:")
	assert.Contains(t, stderr.String(), "✖")
	assert.Contains(t, stderr.String(), "broken")
}

func TestSimpleUI_DisplayErrorsCanceled(t *testing.T) {
	ui, _, stderr := newTestUI(false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui.DisplayErrors(ctx, []error{errors.New("broken")})
	assert.Empty(t, stderr.String())
}

func TestSimpleUI_DisplayValid(t *testing.T) {
	ui, stdout, _ := newTestUI(false)

	ui.DisplayValid(context.Background(), 3)

	newGoldie(t).Assert(t, "valid_three", stdout.Bytes())
}

func TestSimpleUI_DisplayResolvedJSON(t *testing.T) {
	ui, stdout, _ := newTestUI(false)

	require.NoError(t, ui.DisplayResolved(context.Background(), sampleResolved(), FormatJSON))

	var decoded struct {
		Global struct {
			Bail       int    `json:"bail"`
			NotifyMode string `json:"notifyMode"`
			RootDir    string `json:"rootDir"`
		} `json:"global"`
		Projects []struct {
			Name             string   `json:"name"`
			ModuleNameMapper []m.Pair `json:"moduleNameMapper"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))

	assert.Equal(t, 1, decoded.Global.Bail)
	assert.Equal(t, "failure", decoded.Global.NotifyMode)
	assert.Equal(t, "/repo", decoded.Global.RootDir)
	require.Len(t, decoded.Projects, 1)
	assert.Equal(t, "web", decoded.Projects[0].Name)
	assert.Equal(t, sampleResolved().Projects[0].ModuleNameMapper, decoded.Projects[0].ModuleNameMapper)
	assert.Contains(t, stdout.String(), "\n  \"global\": {")
}

func TestSimpleUI_DisplayResolvedYAML(t *testing.T) {
	ui, stdout, _ := newTestUI(false)

	require.NoError(t, ui.DisplayResolved(context.Background(), sampleResolved(), FormatYAML))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &decoded))
	assert.Contains(t, decoded, "global")
	assert.Contains(t, decoded, "projects")
	assert.Contains(t, stdout.String(), "testEnvironment: jsdom")
}

func TestSimpleUI_DisplayOptions(t *testing.T) {
	ui, stdout, _ := newTestUI(false)

	err := ui.DisplayOptions(context.Background(), []m.OptionInfo{
		{Name: "bail", Scope: "global", Kind: "raw", Flag: "-b, --bail", Default: "0"},
		{Name: "timers", Scope: "project", Kind: "raw", Flag: "--timers", Default: `"real"`},
	})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "Option")
	assert.Contains(t, out, "-b, --bail")
	assert.Contains(t, out, `"real"`)
	assert.Contains(t, out, "two options")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"YML", FormatYAML, false},
		{" json ", FormatJSON, false},
		{"toml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.EqualError(t, err, `unknown output format "toml" (want yaml or json)`)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTTY(f))
}
