package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateLog keeps command tests from writing log files into the package dir.
func isolateLog(t *testing.T) {
	t.Helper()
	t.Setenv("OPTSET_LOG_FILENAME", filepath.Join(t.TempDir(), "optset.log"))
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "optset", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Equal(t, rootLongDescription, cmd.Long)

	configFlag := cmd.PersistentFlags().Lookup(configFlagName)
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.NotNil(t, cmd.PersistentFlags().Lookup(logFileFlagName))
	assert.NotNil(t, cmd.PersistentFlags().Lookup(logVerboseFlagName))
}

func TestRootCmd_HelpOutput(t *testing.T) {
	isolateLog(t)

	cmd := newRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "highest precedence first")
}

func TestInit(t *testing.T) {
	assert.NotNil(t, ui)
	assert.NotNil(t, configStore)
	assert.NotNil(t, resolver)
	assert.NotNil(t, workflow)
	assert.NotNil(t, registry)

	names := []string{}
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"resolve", "validate", "options", "init", "version"})
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd
	defer func() { rootCmd = originalRootCmd }()

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	Execute()
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		mockCmd := &cobra.Command{
			Use:           "test",
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		rootCmd = mockCmd

		Execute()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	require.Error(t, err)
	assert.Contains(t, string(output), "Error: command failed")

	exitErr, ok := err.(*exec.ExitError)
	require.True(t, ok)
	assert.Equal(t, 1, exitErr.ExitCode())
}
