// Package cmd provides the root command and CLI setup for optset.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gooze.dev/pkg/optset/internal/adapter"
	"gooze.dev/pkg/optset/internal/controller"
	"gooze.dev/pkg/optset/internal/domain"
)

var registry = domain.DefaultRegistry()

var configStore adapter.ConfigStore
var resolver *domain.Resolver
var workflow domain.Workflow
var ui controller.UI

var configPathFlag string
var logFileFlag string
var logVerboseFlag bool

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	configStore = adapter.NewLocalConfigStore()
	resolver = domain.NewResolver(registry)
	workflow = domain.NewWorkflow(configStore, ui, resolver)
}

const precedenceHelp = `Values are taken, highest precedence first, from:
  - command-line flags
  - the project's entry in the config file's projects list
  - the config file (optset.yaml, optset.yml, optset.json or optset.hcl)
  - built-in defaults`

const rootLongDescription = `Optset resolves the options of a test run from command-line flags and
config files into one record for the run and one record per project,
and reports every invalid value at once.

` + precedenceHelp

const resolveLongDescription = `Resolve all options and print the result.

Positional arguments become non-flag arguments and, unless --testPathPattern
is given, the test path pattern.

` + precedenceHelp

const validateLongDescription = `Resolve all options and report whether they are valid.

` + precedenceHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "optset",
		Short:         "Test-run option resolver",
		Long:          rootLongDescription,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if settingsErr != nil {
				return settingsErr
			}

			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configPathFlag, configFlagName, "c", "", "option config file (default: optset.{yaml,yml,json,hcl} in the current directory)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(configFlagName), configFlagName)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file (default "+defaultLogFilename+")")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVar(&logVerboseFlag, logVerboseFlagName, false, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logVerboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	// Configuration errors were already listed by the UI.
	var errs domain.Errors
	if !errors.As(err, &errs) {
		rootCmd.PrintErrln("Error:", err)
	}

	os.Exit(1)
}
