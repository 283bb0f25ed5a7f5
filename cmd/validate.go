package cmd

import (
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command.
var validateCmd = newValidateCmd()

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [testPathPattern...]",
		Short: "Check that the options resolve without errors",
		Long:  validateLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Validate(cmd.Context(), resolveArgsFromCmd(cmd, args))
		},
	}

	bindOptionFlags(cmd.Flags(), registry)

	return cmd
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
