package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/optset/internal/controller"
	"gooze.dev/pkg/optset/internal/domain"
	m "gooze.dev/pkg/optset/internal/model"
)

var formatFlag string

// resolveCmd represents the resolve command.
var resolveCmd = newResolveCmd()

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [testPathPattern...]",
		Short: "Print the resolved options",
		Long:  resolveLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := controller.ParseFormat(viper.GetString(formatFlagName))
			if err != nil {
				return err
			}

			resolveArgs := resolveArgsFromCmd(cmd, args)
			resolveArgs.Format = format

			return workflow.Resolve(cmd.Context(), resolveArgs)
		},
	}

	bindOptionFlags(cmd.Flags(), registry)
	configureResolveFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func configureResolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&formatFlag, formatFlagName, defaultFormat, "output format: yaml or json")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), formatFlagName)
}

func resolveArgsFromCmd(cmd *cobra.Command, args []string) domain.ResolveArgs {
	return domain.ResolveArgs{
		Argv:       rawInputFromFlags(cmd.Flags(), registry, args),
		ConfigPath: m.Path(viper.GetString(configFlagName)),
		Dir:        m.Path(settingsFolderPath),
	}
}
