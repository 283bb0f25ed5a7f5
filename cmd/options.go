package cmd

import (
	"github.com/spf13/cobra"
)

// optionsCmd represents the options command.
var optionsCmd = newOptionsCmd()

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List every recognized option",
		Long: `List every recognized option with its scope, kind, command-line flag
and default value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Options(cmd.Context())
		},
	}
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}
